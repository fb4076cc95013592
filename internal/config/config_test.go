package config

import (
	"testing"

	"fraudreport/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Data.Path != "creditcard.csv" {
		t.Errorf("data path %q, want creditcard.csv", cfg.Data.Path)
	}
	if cfg.Pipeline.Seed != 123 || cfg.Pipeline.Folds != 5 {
		t.Errorf("pipeline defaults %d/%d, want 123/5", cfg.Pipeline.Seed, cfg.Pipeline.Folds)
	}
	if cfg.Pipeline.TrainFraction != 0.7 || cfg.Pipeline.MinorityRatio != 0.5 || cfg.Pipeline.KeepFraction != 0.1 {
		t.Errorf("unexpected pipeline fractions %+v", cfg.Pipeline)
	}
	if cfg.Database.URL != "" {
		t.Errorf("database should default to disabled, got %q", cfg.Database.URL)
	}
	if cfg.Server.Port != 8080 || cfg.Report.Dir != "out" {
		t.Errorf("server/report defaults %d/%q", cfg.Server.Port, cfg.Report.Dir)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SEED", "777")
	t.Setenv("TRAIN_FRACTION", "0.8")
	t.Setenv("FOLDS", "10")
	t.Setenv("DATA_PATH", "/data/txns.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Pipeline.Seed != 777 {
		t.Errorf("seed %d, want 777", cfg.Pipeline.Seed)
	}
	if cfg.Pipeline.TrainFraction != 0.8 {
		t.Errorf("train fraction %v, want 0.8", cfg.Pipeline.TrainFraction)
	}
	if cfg.Pipeline.Folds != 10 {
		t.Errorf("folds %d, want 10", cfg.Pipeline.Folds)
	}
	if cfg.Data.Path != "/data/txns.csv" {
		t.Errorf("data path %q, want /data/txns.csv", cfg.Data.Path)
	}
}

func TestLoad_FailsFastOnInvalidValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"TRAIN_FRACTION", "1.5"},
		{"TRAIN_FRACTION", "0"},
		{"FOLDS", "1"},
		{"MINORITY_RATIO", "1"},
		{"KEEP_FRACTION", "0"},
		{"SERVER_PORT", "-1"},
	}
	for _, c := range cases {
		t.Run(c.key+"="+c.value, func(t *testing.T) {
			t.Setenv(c.key, c.value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected a validation error, got success")
			}
			if errors.GetCode(err) != errors.CodeConfigInvalid {
				t.Errorf("expected code %s, got %s", errors.CodeConfigInvalid, errors.GetCode(err))
			}
		})
	}
}

func TestLoad_MalformedNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("SEED", "not-a-number")
	t.Setenv("FOLDS", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Pipeline.Seed != 123 || cfg.Pipeline.Folds != 5 {
		t.Errorf("expected defaults for malformed values, got %d/%d", cfg.Pipeline.Seed, cfg.Pipeline.Folds)
	}
}
