package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Env is the process configuration read from the environment. Command-line
// flags override it.
type Env struct {
	Precision int    `env:"BOLTZMANN_PRECISION" envDefault:"1000"` // significant decimal digits
	LogLevel  string `env:"BOLTZMANN_LOG_LEVEL" envDefault:"info"`
	Config    string `env:"BOLTZMANN_CONFIG"    envDefault:"boltzmann.cfg"`
	Workers   int    `env:"BOLTZMANN_WORKERS"   envDefault:"1"`
	Backend   string `env:"BOLTZMANN_BACKEND"   envDefault:"bigfloat"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (e Env) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", e.LogLevel, err)
	}
	return l, nil
}
