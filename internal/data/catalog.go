package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Dataset describes one produced artifact in the catalog.
type Dataset struct {
	Kind    string `json:"kind"` // "prices", "consumption", "solar"
	Year    int    `json:"year"`
	Variant string `json:"variant,omitempty"` // profile name or "<n>kwp"
	File    string `json:"file"`
	Count   int    `json:"count"`
}

// Catalog is an index of all dataset files in the output directory. The
// front end reads it to discover which years and profiles are available.
type Catalog struct {
	UpdatedAt string    `json:"updated_at"` // ISO 8601
	Datasets  []Dataset `json:"datasets"`
}

// CatalogPath returns the catalog file path inside the data directory.
func CatalogPath(dir string) string {
	return filepath.Join(dir, "catalog.json")
}

// LoadCatalog reads a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return &c, nil
}

// SaveCatalog writes the catalog, sorted for stable diffs.
func SaveCatalog(c *Catalog, path string) error {
	c.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	sort.Slice(c.Datasets, func(i, j int) bool {
		a, b := c.Datasets[i], c.Datasets[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Variant < b.Variant
	})
	if _, err := writeJSONAtomic(path, c); err != nil {
		return err
	}
	return nil
}

// Upsert replaces the entry matching (kind, year, variant) or appends a new
// one.
func (c *Catalog) Upsert(d Dataset) {
	for i, existing := range c.Datasets {
		if existing.Kind == d.Kind && existing.Year == d.Year && existing.Variant == d.Variant {
			c.Datasets[i] = d
			return
		}
	}
	c.Datasets = append(c.Datasets, d)
}

// UpdateCatalog loads the catalog from dir (or starts an empty one), applies
// the entries, and saves it back.
func UpdateCatalog(dir string, entries ...Dataset) error {
	path := CatalogPath(dir)
	catalog, err := LoadCatalog(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		catalog = &Catalog{}
	}
	for _, d := range entries {
		catalog.Upsert(d)
	}
	return SaveCatalog(catalog, path)
}

// BuildCatalog scans a data directory and indexes every dataset file found.
// Used by the API as a fallback when no catalog file has been written yet.
func BuildCatalog(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{UpdatedAt: time.Now().UTC().Format(time.RFC3339)}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		d, ok := classifyFile(e.Name())
		if !ok {
			continue
		}
		// Only the header fields are needed; decode year/count.
		var head struct {
			Year  int `json:"year"`
			Count int `json:"count"`
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			continue // not one of ours
		}
		d.Year = head.Year
		d.Count = head.Count
		catalog.Datasets = append(catalog.Datasets, *d)
	}

	sort.Slice(catalog.Datasets, func(i, j int) bool {
		a, b := catalog.Datasets[i], catalog.Datasets[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Variant < b.Variant
	})
	return catalog, nil
}

// classifyFile maps a dataset file name to its catalog entry skeleton.
func classifyFile(name string) (*Dataset, bool) {
	base := strings.TrimSuffix(name, ".json")
	switch {
	case strings.HasPrefix(base, "prices_"):
		return &Dataset{Kind: "prices", File: name}, true
	case strings.HasPrefix(base, "consumption_"):
		parts := strings.SplitN(strings.TrimPrefix(base, "consumption_"), "_", 2)
		if len(parts) != 2 {
			return nil, false
		}
		return &Dataset{Kind: "consumption", Variant: parts[1], File: name}, true
	case strings.HasPrefix(base, "solar_"):
		parts := strings.SplitN(strings.TrimPrefix(base, "solar_"), "_", 2)
		if len(parts) != 2 {
			return nil, false
		}
		return &Dataset{Kind: "solar", Variant: parts[1], File: name}, true
	}
	return nil, false
}
