// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tikz/vsdalign/http"
	"github.com/tikz/vsdalign/pipeline"
	"github.com/tikz/vsdalign/residue"
	"github.com/tikz/vsdalign/store"
)

// EnvPrefix prefixes the environment variables read into the settings, e.g. VSDALIGN_DB_DSN.
const EnvPrefix = "VSDALIGN"

// FetchConfig is for structure downloads
type FetchConfig struct {
	// attempts per URL, transport failures only
	Attempts int `mapstructure:"attempts"`

	// wait between attempts
	Delay time.Duration `mapstructure:"delay"`

	// timeout of a single request
	Timeout time.Duration `mapstructure:"timeout"`
}

// ReferenceConfig is for reference structures
type ReferenceConfig struct {
	// path to a PDB file with water molecules, used when an alignment has no curated reference
	Water string `mapstructure:"water"`
}

// LogConfig is for the process logger
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn or error
	Format string `mapstructure:"format"` // text or json
}

// Config is the root-level settings struct and is a mix
// of settings available in the settings file, the environment
// and those available from the command line
type Config struct {
	DB        store.Config    `mapstructure:"db"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Reference ReferenceConfig `mapstructure:"reference"`
	Log       LogConfig       `mapstructure:"log"`

	// entries superposed concurrently
	Workers int `mapstructure:"workers"`

	// match symbol that flags a mutated residue
	Mismatch string `mapstructure:"mismatch"`

	// look up UniProt for structures when an accession has none stored
	Discover bool `mapstructure:"discover"`
}

// SetDefaults registers the default settings and the environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", store.DriverSQLite)
	v.SetDefault("db.dsn", "vsd.db")
	v.SetDefault("fetch.attempts", http.DefaultAttempts)
	v.SetDefault("fetch.delay", http.DefaultDelay)
	v.SetDefault("fetch.timeout", http.DefaultTimeout)
	v.SetDefault("reference.water", "")
	v.SetDefault("workers", pipeline.DefaultWorkers)
	v.SetDefault("mismatch", residue.DefaultMismatch)
	v.SetDefault("discover", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// New returns a new Config struct populated by the Viper settings.
func New(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return c, c.Validate()
}

// Validate checks the settings for values no component can work with.
func (c Config) Validate() error {
	var errs []error
	if c.DB.Driver != store.DriverSQLite && c.DB.Driver != store.DriverPostgres {
		errs = append(errs, fmt.Errorf("unknown db.driver %q", c.DB.Driver))
	}
	if c.DB.DSN == "" {
		errs = append(errs, errors.New("db.dsn is empty"))
	}
	if c.Fetch.Attempts < 1 {
		errs = append(errs, fmt.Errorf("fetch.attempts must be at least 1, got %d", c.Fetch.Attempts))
	}
	if c.Fetch.Delay < 0 || c.Fetch.Timeout < 0 {
		errs = append(errs, errors.New("fetch.delay and fetch.timeout cannot be negative"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if len([]rune(c.Mismatch)) != 1 {
		errs = append(errs, fmt.Errorf("mismatch must be a single character, got %q", c.Mismatch))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Water reads the fallback water reference, nil if none is configured.
func (c Config) Water() ([]byte, error) {
	if c.Reference.Water == "" {
		return nil, nil
	}
	b, err := os.ReadFile(c.Reference.Water)
	if err != nil {
		return nil, fmt.Errorf("water reference: %w", err)
	}
	return b, nil
}

// Client returns the structure downloader.
func (c Config) Client() *http.Client {
	return http.NewClient(c.Fetch.Attempts, c.Fetch.Delay, c.Fetch.Timeout)
}

// Logger returns a logger writing to w at the configured level and format.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}
