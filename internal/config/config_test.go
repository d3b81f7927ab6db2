package config_test

import (
	"os"
	"testing"

	"github.com/flashfs/nffsrestore/internal/config"
)

func TestDefaultMatchesDocumentedValues(t *testing.T) {
	cfg := config.Default()
	if cfg.StrictScan {
		t.Error("StrictScan should default to false")
	}
	if cfg.ReadOnly {
		t.Error("ReadOnly should default to false")
	}
	if cfg.MaxAreas != 8 {
		t.Errorf("MaxAreas = %d, want 8", cfg.MaxAreas)
	}
	if cfg.ScratchMinBytes != 4096 {
		t.Errorf("ScratchMinBytes = %d, want 4096", cfg.ScratchMinBytes)
	}
	if cfg.PoolCapacity != 4096 {
		t.Errorf("PoolCapacity = %d, want 4096", cfg.PoolCapacity)
	}
	if cfg.AreaSize != 65536 {
		t.Errorf("AreaSize = %d, want 65536", cfg.AreaSize)
	}
}

func TestLoadWithNoConfigFileFallsBackToDefaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(wd)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxAreas != 8 {
		t.Errorf("MaxAreas = %d, want default 8", cfg.MaxAreas)
	}
}
