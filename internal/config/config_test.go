package config

import (
	"os"
	"path/filepath"
	"testing"

	"soilqc/domain/series"
	"soilqc/domain/thresholds"
)

func TestApplyOverridesReplacesBoundsFromCSV(t *testing.T) {
	original, _ := thresholds.Lookup(series.VarSoilMoisture)
	t.Cleanup(func() { thresholds.Override(series.VarSoilMoisture, original) })

	path := filepath.Join(t.TempDir(), "overrides.csv")
	if err := os.WriteFile(path, []byte("soil_moisture,0.1,0.55\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture CSV: %v", err)
	}

	if err := ApplyOverrides(path); err != nil {
		t.Fatalf("ApplyOverrides returned an error: %v", err)
	}

	got, ok := thresholds.Lookup(series.VarSoilMoisture)
	if !ok || got.Lower != 0.1 || got.Upper != 0.55 {
		t.Fatalf("expected overridden bounds {0.1 0.55}, got %+v ok=%v", got, ok)
	}
}

func TestApplyOverridesRejectsMissingFile(t *testing.T) {
	if err := ApplyOverrides(filepath.Join(t.TempDir(), "does-not-exist.csv")); err == nil {
		t.Fatalf("expected an error for a missing overrides file")
	}
}
