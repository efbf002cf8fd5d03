// Package baseimage resolves the base board image for each shape. A shape's
// image comes from a configured local file, a configured URL, or the embedded
// default, in that precedence order. Decoded images are cached for the
// process lifetime; renders receive the shared decoded image read-only.
package baseimage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fpang/profile-annotator/internal/assets"
	"github.com/fpang/profile-annotator/internal/profile"
)

// maxFetchBytes caps remote base image downloads.
const maxFetchBytes = 8 * 1024 * 1024

// SourceConfig selects where one shape's base image comes from. Empty fields
// fall through: Path wins over URL, URL over the embedded default.
type SourceConfig struct {
	Path string
	URL  string
}

// Loader loads and caches base images per shape.
type Loader struct {
	client  *http.Client
	sources map[profile.Shape]SourceConfig

	mu    sync.Mutex
	cache map[profile.Shape]image.Image
}

// NewLoader builds a Loader. sources may be nil or sparse; unset shapes use
// the embedded defaults.
func NewLoader(sources map[profile.Shape]SourceConfig, fetchTimeout time.Duration) *Loader {
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	return &Loader{
		client:  &http.Client{Timeout: fetchTimeout},
		sources: sources,
		cache:   make(map[profile.Shape]image.Image),
	}
}

// Load returns the decoded base image for a shape. The first call per shape
// resolves and decodes the source; later calls return the cached image. Any
// read or decode failure is wrapped with the shape name and is fatal to the
// render that needed it.
func (l *Loader) Load(ctx context.Context, shape profile.Shape) (image.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if img, ok := l.cache[shape]; ok {
		return img, nil
	}

	data, origin, err := l.fetch(ctx, shape)
	if err != nil {
		return nil, fmt.Errorf("%s base image: %w", shape, err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s base image: decode: %w", shape, err)
	}

	log.Debug().
		Stringer("shape", shape).
		Str("origin", origin).
		Str("format", format).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Msg("Base image loaded")

	l.cache[shape] = img
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, shape profile.Shape) ([]byte, string, error) {
	src := l.sources[shape]

	if src.Path != "" {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", src.Path, err)
		}
		return data, "file", nil
	}

	if src.URL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
		if err != nil {
			return nil, "", fmt.Errorf("build request: %w", err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, "", fmt.Errorf("fetch %s: %w", src.URL, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("fetch %s: unexpected status %s", src.URL, resp.Status)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
		if err != nil {
			return nil, "", fmt.Errorf("fetch %s: %w", src.URL, err)
		}
		return data, "url", nil
	}

	if shape == profile.ShapeBrain {
		return assets.BrainBaseImage, "embedded", nil
	}
	return assets.AnimalBaseImage, "embedded", nil
}
