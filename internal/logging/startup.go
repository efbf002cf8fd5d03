package logging

import (
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// StartupLogger collects the service identity, configuration, and feature
// state, then emits a single structured zerolog event summarising the state
// at startup. One event makes it easy to see exactly how the process was
// configured when troubleshooting from logs.
type StartupLogger struct {
	name         string
	initDuration time.Duration

	imageSources map[string]string
	features     map[string]bool
	config       map[string]string
}

// NewStartupLogger creates a StartupLogger for the given service name.
func NewStartupLogger(name string) *StartupLogger {
	return &StartupLogger{
		name:         name,
		imageSources: make(map[string]string),
		features:     make(map[string]bool),
		config:       make(map[string]string),
	}
}

// ImageSource registers where a shape's base image comes from
// (embedded, file, url).
func (s *StartupLogger) ImageSource(shape, origin string) *StartupLogger {
	s.imageSources[shape] = origin
	return s
}

// Feature registers a boolean feature flag (e.g. "boldFont").
func (s *StartupLogger) Feature(name string, enabled bool) *StartupLogger {
	s.features[name] = enabled
	return s
}

// Config registers a non-sensitive configuration key-value pair.
func (s *StartupLogger) Config(key, value string) *StartupLogger {
	s.config[key] = value
	return s
}

// InitDuration records how long process initialisation took.
func (s *StartupLogger) InitDuration(d time.Duration) *StartupLogger {
	s.initDuration = d
	return s
}

// Log emits a single structured INFO log event with all collected information.
func (s *StartupLogger) Log() {
	evt := log.Info()

	evt = evt.Dict("service", zerolog.Dict().
		Str("name", s.name).
		Str("goVersion", runtime.Version()).
		Str("arch", runtime.GOARCH).
		Str("logLevel", os.Getenv("PROFILE_LOG_LEVEL")))

	if len(s.imageSources) > 0 {
		evt = evt.Dict("imageSources", dictFromMap(s.imageSources))
	}
	if len(s.features) > 0 {
		d := zerolog.Dict()
		for k, v := range s.features {
			d = d.Bool(k, v)
		}
		evt = evt.Dict("features", d)
	}
	if len(s.config) > 0 {
		evt = evt.Dict("config", dictFromMap(s.config))
	}
	if s.initDuration > 0 {
		evt = evt.Dur("initDuration", s.initDuration)
	}

	evt.Msg("Startup complete")
}

// dictFromMap converts a map[string]string into a zerolog.Event (Dict).
func dictFromMap(m map[string]string) *zerolog.Event {
	d := zerolog.Dict()
	for k, v := range m {
		d = d.Str(k, v)
	}
	return d
}
