package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/collagely/collagely/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, appName, configFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Page != "" || cfg.Gap != nil {
		t.Errorf("missing config should be zero, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	writeConfig(t, `
page = "a3-landscape"
gap = 0
fit = "contain"
formats = ["png", "pdf"]
redis_url = "redis://localhost:6379/0"
`)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Page != "a3-landscape" {
		t.Errorf("Page = %q", cfg.Page)
	}
	if cfg.Gap == nil || *cfg.Gap != 0 {
		t.Errorf("Gap = %v, want explicit 0", cfg.Gap)
	}
	if cfg.Fit != "contain" {
		t.Errorf("Fit = %q", cfg.Fit)
	}
	if len(cfg.Formats) != 2 {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
}

func TestConfigApplyFlagsWin(t *testing.T) {
	gap := 20
	cfg := Config{Page: "a5", Gap: &gap, Fit: "contain"}

	cmd := &cobra.Command{}
	cmd.Flags().String("page", "", "")
	cmd.Flags().Int("gap", 0, "")
	cmd.Flags().String("fit", "", "")
	if err := cmd.Flags().Set("page", "a3"); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{Page: "a3"}
	cfg.apply(&opts, cmd)

	if opts.Page != "a3" {
		t.Errorf("flag value overwritten: Page = %q", opts.Page)
	}
	if opts.Gap != 20 {
		t.Errorf("config gap not applied: Gap = %d", opts.Gap)
	}
	if opts.Fit != "contain" {
		t.Errorf("config fit not applied: Fit = %q", opts.Fit)
	}
}

func TestConfigApplyZeroGap(t *testing.T) {
	gap := 0
	cfg := Config{Gap: &gap}

	cmd := &cobra.Command{}
	cmd.Flags().Int("gap", 0, "")

	opts := pipeline.Options{}
	cfg.apply(&opts, cmd)
	opts.SetLayoutDefaults()

	if opts.Gap != 0 {
		t.Errorf("explicit zero gap from config was replaced by default: %d", opts.Gap)
	}
}
