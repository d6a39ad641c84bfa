package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewSettings_Defaults(t *testing.T) {
	settings := NewSettings()

	if settings.GetDatabaseDir() == "" {
		t.Error("Database directory should not be empty")
	}

	if settings.GetVipsBin() != DefaultVipsBin {
		t.Errorf("Expected default vips binary %q, got %q", DefaultVipsBin, settings.GetVipsBin())
	}

	if settings.GetLogMode() != DefaultLogMode {
		t.Errorf("Expected default log mode %q, got %q", DefaultLogMode, settings.GetLogMode())
	}

	if settings.GetSkipSmokeTest() {
		t.Error("Smoke test should not be skipped by default")
	}

	cmd := settings.GetSmokeCommand()
	if len(cmd) != len(DefaultSmokeCommand) {
		t.Fatalf("Expected smoke command of %d parts, got %d", len(DefaultSmokeCommand), len(cmd))
	}
	for i, part := range DefaultSmokeCommand {
		if cmd[i] != part {
			t.Errorf("Smoke command part %d: expected %q, got %q", i, part, cmd[i])
		}
	}
}

func TestDatabaseDir(t *testing.T) {
	settings := NewSettings()

	customDir := "/custom/test_database"
	settings.SetDatabaseDir(customDir)

	if settings.GetDatabaseDir() != customDir {
		t.Errorf("Expected database dir %s, got %s", customDir, settings.GetDatabaseDir())
	}
}

func TestSlidePath_DerivedFromDatabaseDir(t *testing.T) {
	settings := NewSettings()
	settings.SetDatabaseDir("/data/test_database")

	expected := filepath.Join("/data/test_database", "x40_svs", "JP2K-33003-2.svs")
	if settings.GetSlidePath() != expected {
		t.Errorf("Expected derived slide path %s, got %s", expected, settings.GetSlidePath())
	}

	// Explicit slide path wins over the derived default
	settings.SetSlidePath("/slides/custom.svs")
	if settings.GetSlidePath() != "/slides/custom.svs" {
		t.Errorf("Expected explicit slide path, got %s", settings.GetSlidePath())
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SLIDECHECK_VIPS_BIN", "/opt/vips/bin/vips")

	settings := NewSettings()
	if settings.GetVipsBin() != "/opt/vips/bin/vips" {
		t.Errorf("Expected env override for vips binary, got %s", settings.GetVipsBin())
	}
}

func TestLoadFile(t *testing.T) {
	tempDir := t.TempDir()
	cfgPath := filepath.Join(tempDir, "slidecheck.yaml")

	content := "database_dir: /srv/slides/test_database\nlog_mode: prod\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	settings := NewSettings()
	if err := settings.LoadFile(cfgPath); err != nil {
		t.Fatalf("Failed to load config file: %v", err)
	}

	if settings.GetDatabaseDir() != "/srv/slides/test_database" {
		t.Errorf("Expected database dir from config file, got %s", settings.GetDatabaseDir())
	}

	if settings.GetLogMode() != "prod" {
		t.Errorf("Expected log mode from config file, got %s", settings.GetLogMode())
	}
}

func TestLoadFile_Missing(t *testing.T) {
	settings := NewSettings()

	err := settings.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}
