package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"battery-sim-data/internal/model"
)

// PriceFilePath returns the fixed-pattern artifact path for a year's prices.
func PriceFilePath(dir string, year int) string {
	return filepath.Join(dir, fmt.Sprintf("prices_%d.json", year))
}

// ConsumptionFilePath returns the artifact path for a consumption profile.
func ConsumptionFilePath(dir string, year int, profile model.Profile) string {
	return filepath.Join(dir, fmt.Sprintf("consumption_%d_%s.json", year, profile))
}

// SolarFilePath returns the artifact path for a solar system size.
func SolarFilePath(dir string, year, kwp int) string {
	return filepath.Join(dir, fmt.Sprintf("solar_%d_%dkwp.json", year, kwp))
}

// WritePriceFile persists a year series to its fixed-pattern path,
// overwriting any existing file. The write is atomic (temp file + rename) so
// a crash mid-write never leaves a partial artifact at the destination.
// Returns the path and file size.
func WritePriceFile(dir string, series *model.YearSeries) (string, int64, error) {
	path := PriceFilePath(dir, series.Year)
	size, err := writeJSONAtomic(path, series)
	if err != nil {
		return "", 0, err
	}
	return path, size, nil
}

// LoadPriceFile reads a persisted year series.
func LoadPriceFile(path string) (*model.YearSeries, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var series model.YearSeries
	if err := json.Unmarshal(raw, &series); err != nil {
		return nil, fmt.Errorf("parse price file %s: %w", path, err)
	}
	return &series, nil
}

// WriteConsumptionFile persists a synthetic consumption series.
func WriteConsumptionFile(dir string, series *model.ConsumptionSeries, profile model.Profile) (string, error) {
	path := ConsumptionFilePath(dir, series.Year, profile)
	if _, err := writeJSONAtomic(path, series); err != nil {
		return "", err
	}
	return path, nil
}

// WriteSolarFile persists a synthetic solar series.
func WriteSolarFile(dir string, series *model.SolarSeries, kwp int) (string, error) {
	path := SolarFilePath(dir, series.Year, kwp)
	if _, err := writeJSONAtomic(path, series); err != nil {
		return "", err
	}
	return path, nil
}

// writeJSONAtomic marshals v compactly and renames a temp file over path.
func writeJSONAtomic(path string, v any) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("marshal %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("rename temp file: %w", err)
	}
	return int64(len(raw)), nil
}
