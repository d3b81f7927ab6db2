// Package config loads restore-time tuning knobs with Viper, the way
// the teacher codebase loads its own device configuration: a named
// config file searched across a few conventional paths, environment
// variable overrides, and explicit defaults so a missing file is never
// an error.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// RestoreConfig holds the knobs the restore pipeline and its CLI front
// end read at startup.
type RestoreConfig struct {
	// StrictScan makes a mid-area corrupt record a fatal error that
	// fails the whole restore instead of being treated as silent
	// end-of-log for that area.
	StrictScan bool `mapstructure:"strict_scan"`

	// ReadOnly suppresses every on-disk write the restore pipeline would
	// otherwise make, namely the corruption recoverer's reformat of a
	// stale GC twin into the new scratch area. The in-RAM graph is still
	// fully reconstructed and validated; only the backing device is left
	// untouched. fsck sets this so diagnosing an image never mutates it.
	ReadOnly bool `mapstructure:"read_only"`

	// MaxAreas bounds how many area descriptors Restore will accept in
	// one call.
	MaxAreas int `mapstructure:"max_areas"`

	// ScratchMinBytes is the minimum size the corruption recoverer will
	// accept when reformatting a bad area as the new scratch area.
	ScratchMinBytes int `mapstructure:"scratch_min_bytes"`

	// PoolCapacity bounds how many live inodes or blocks the object
	// pools will hold at once; exceeding it surfaces as OOM.
	PoolCapacity int `mapstructure:"pool_capacity"`

	// AreaSize is the fixed size, in bytes, of each area on a device the
	// CLI front end opens directly by path. It has no effect on the
	// restore package itself, which always takes explicit descriptors.
	AreaSize int64 `mapstructure:"area_size"`
}

// Load reads nffsrestore-config.{yaml,json,...} from the working
// directory, a ./config subdirectory, or $HOME/.nffsrestore, falling
// back to defaults when no file is found. Environment variables
// prefixed NFFSRESTORE_ override both.
func Load() (*RestoreConfig, error) {
	v := viper.New()
	v.SetConfigName("nffsrestore-config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.nffsrestore")

	v.SetDefault("strict_scan", false)
	v.SetDefault("read_only", false)
	v.SetDefault("max_areas", 8)
	v.SetDefault("scratch_min_bytes", 4096)
	v.SetDefault("pool_capacity", 4096)
	v.SetDefault("area_size", 65536)

	v.SetEnvPrefix("NFFSRESTORE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading restore config: %w", err)
		}
	}

	cfg := &RestoreConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling restore config: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in defaults, bypassing file/env discovery.
// Tests use this so they are not sensitive to the working directory.
func Default() *RestoreConfig {
	return &RestoreConfig{
		StrictScan:      false,
		ReadOnly:        false,
		MaxAreas:        8,
		ScratchMinBytes: 4096,
		PoolCapacity:    4096,
		AreaSize:        65536,
	}
}
