package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.SilenceGap != 2.0 {
		t.Errorf("SilenceGap = %v, want 2.0", cfg.SilenceGap)
	}
	if cfg.PrimaryWindow != 15.0 {
		t.Errorf("PrimaryWindow = %v, want 15.0", cfg.PrimaryWindow)
	}
	if cfg.FallbackWindow != 60.0 {
		t.Errorf("FallbackWindow = %v, want 60.0", cfg.FallbackWindow)
	}
	if cfg.AcceptScore != 0.6 {
		t.Errorf("AcceptScore = %v, want 0.6", cfg.AcceptScore)
	}
	if cfg.FallbackScore <= cfg.AcceptScore {
		t.Error("FallbackScore must exceed AcceptScore")
	}
	if cfg.SimilarityWeight+cfg.ConfidenceWeight != 1.0 {
		t.Error("score weights should sum to 1")
	}
	if cfg.AnchorConfidence != 0.75 {
		t.Errorf("AnchorConfidence = %v, want 0.75", cfg.AnchorConfidence)
	}
	if cfg.MinLineSpacing != 0.5 {
		t.Errorf("MinLineSpacing = %v, want 0.5", cfg.MinLineSpacing)
	}
	if cfg.InterpolatedConfidence != 0.5 {
		t.Errorf("InterpolatedConfidence = %v, want 0.5", cfg.InterpolatedConfidence)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "silence_gap: 3.5\nprimary_window: 20\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.SilenceGap != 3.5 {
		t.Errorf("SilenceGap = %v, want 3.5", cfg.SilenceGap)
	}
	if cfg.PrimaryWindow != 20 {
		t.Errorf("PrimaryWindow = %v, want 20", cfg.PrimaryWindow)
	}
	// Untouched fields keep defaults.
	if cfg.AcceptScore != 0.6 {
		t.Errorf("AcceptScore = %v, want default 0.6", cfg.AcceptScore)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("silence_gap: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
