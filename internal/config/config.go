// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the environment-driven settings of the profile image service.
// The log level is read separately by the logging package.
type Config struct {
	Port int `envconfig:"PROFILE_PORT" default:"8080"`

	// Optional base image overrides. A path wins over a URL; when both are
	// empty the embedded board is used.
	AnimalImagePath string `envconfig:"PROFILE_ANIMAL_IMAGE_PATH"`
	AnimalImageURL  string `envconfig:"PROFILE_ANIMAL_IMAGE_URL"`
	BrainImagePath  string `envconfig:"PROFILE_BRAIN_IMAGE_PATH"`
	BrainImageURL   string `envconfig:"PROFILE_BRAIN_IMAGE_URL"`

	FetchTimeout time.Duration `envconfig:"PROFILE_FETCH_TIMEOUT" default:"10s"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
