package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/profile-annotator/internal/annotate"
	"github.com/fpang/profile-annotator/internal/baseimage"
	"github.com/fpang/profile-annotator/internal/config"
	"github.com/fpang/profile-annotator/internal/logging"
	"github.com/fpang/profile-annotator/internal/profile"
)

// CLI flags
var portFlag int

var rootCmd = &cobra.Command{
	Use:   "profile-web",
	Short: "HTTP service that renders annotated behavioural profile images",
	Long: `Profile Web serves the behavioural questionnaire image endpoint. It accepts
the animal archetype and brain quadrant percentage sets in one request and
returns both boards annotated with the percentages, the dominant trait
highlighted.

Examples:
  profile-web
  profile-web --port 9090`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on (overrides PROFILE_PORT)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, args []string) {
	start := time.Now()
	logging.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	port := cfg.Port
	if portFlag != 0 {
		port = portFlag
	}

	// Register the label font before serving. Parse failure degrades label
	// legibility but is not fatal; it is reported here, once.
	fontErr := annotate.RegisterFont()

	sources := map[profile.Shape]baseimage.SourceConfig{
		profile.ShapeAnimal: {Path: cfg.AnimalImagePath, URL: cfg.AnimalImageURL},
		profile.ShapeBrain:  {Path: cfg.BrainImagePath, URL: cfg.BrainImageURL},
	}
	srv := newRenderServer(baseimage.NewLoader(sources, cfg.FetchTimeout))

	logging.NewStartupLogger("profile-web").
		ImageSource("animal", sourceOrigin(sources[profile.ShapeAnimal])).
		ImageSource("brain", sourceOrigin(sources[profile.ShapeBrain])).
		Feature("boldFont", fontErr == nil).
		Config("port", strconv.Itoa(port)).
		Config("fetchTimeout", cfg.FetchTimeout.String()).
		InitDuration(time.Since(start)).
		Log()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/profile-images", srv.handleProfileImages)

	handler := withLogging(withCORS(mux))

	addr := fmt.Sprintf(":%d", port)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpSrv.Shutdown(ctx)
	}()

	log.Info().Int("port", port).Msg("Starting profile image server")

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func sourceOrigin(src baseimage.SourceConfig) string {
	switch {
	case src.Path != "":
		return "file"
	case src.URL != "":
		return "url"
	default:
		return "embedded"
	}
}

// --- Middleware ---

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		next.ServeHTTP(w, r)
		if strings.HasPrefix(r.URL.Path, "/api/") {
			log.Info().
				Str("requestId", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("API request")
		}
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only allow localhost origins for local development.
		origin := r.Header.Get("Origin")
		if origin != "" && (strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
