// Package tuning loads engine and server settings from a YAML file.
package tuning

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hexboard/internal/engine"
)

// Tuning is the full settings file.
type Tuning struct {
	Engine Engine `yaml:"engine"`
	Server Server `yaml:"server"`

	// RandomOrgAPIKey enables true-random seeding. Usually set from the
	// environment rather than the file.
	RandomOrgAPIKey string `yaml:"random_org_api_key"`
}

// Engine mirrors engine.Config with YAML names. Durations are written
// like "100ms".
type Engine struct {
	MinAttempts        int           `yaml:"min_attempts"`
	MinTime            time.Duration `yaml:"min_time"`
	ColdStartMinTime   time.Duration `yaml:"cold_start_min_time"`
	MaxFailures        int           `yaml:"max_failures"`
	BestSpotWeight     float64       `yaml:"best_spot_weight"`
	CalibrationSamples int           `yaml:"calibration_samples"`
	Seed               int64         `yaml:"seed"`
}

// Server configures the HTTP API and its history database.
type Server struct {
	Addr string `yaml:"addr"`
	// RateLimit is generated boards per minute per client IP.
	RateLimit   int      `yaml:"rate_limit"`
	CORSOrigins []string `yaml:"cors_origins"`
	DBPath      string   `yaml:"db_path"`
}

// Default returns the settings used when no file exists.
func Default() Tuning {
	ec := engine.DefaultConfig()
	return Tuning{
		Engine: Engine{
			MinAttempts:        ec.MinAttempts,
			MinTime:            ec.MinTime,
			ColdStartMinTime:   ec.ColdStartMinTime,
			MaxFailures:        ec.MaxFailures,
			BestSpotWeight:     ec.BestSpotWeight,
			CalibrationSamples: ec.CalibrationSamples,
		},
		Server: Server{
			Addr:      ":8080",
			RateLimit: 30,
			DBPath:    "data/hexboard.db",
		},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error; an empty path skips the file.
func Load(path string) (Tuning, error) {
	t := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return t, err
		default:
			if err := yaml.Unmarshal(raw, &t); err != nil {
				return t, fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	t.applyEnv()
	return t, nil
}

func (t *Tuning) applyEnv() {
	if v := os.Getenv("HEXBOARD_DB"); v != "" {
		t.Server.DBPath = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		t.Server.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				t.Server.CORSOrigins = append(t.Server.CORSOrigins, o)
			}
		}
	}
	if v := os.Getenv("RANDOM_ORG_API_KEY"); v != "" {
		t.RandomOrgAPIKey = v
	}
}

// EngineConfig converts the engine section for engine.New.
func (t Tuning) EngineConfig() engine.Config {
	return engine.Config{
		MinAttempts:        t.Engine.MinAttempts,
		MinTime:            t.Engine.MinTime,
		ColdStartMinTime:   t.Engine.ColdStartMinTime,
		MaxFailures:        t.Engine.MaxFailures,
		BestSpotWeight:     t.Engine.BestSpotWeight,
		CalibrationSamples: t.Engine.CalibrationSamples,
		Seed:               t.Engine.Seed,
	}
}
