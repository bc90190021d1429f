package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-sim-data/internal/model"
)

func sampleSeries(year int) *model.YearSeries {
	return &model.YearSeries{
		Year:  year,
		Count: 2,
		Prices: []model.PricePoint{
			{Local: "2023-01-01T00:00:00", Price: 123.4},
			{Local: "2023-01-01T01:00:00", Price: 98.7},
		},
	}
}

func TestWriteAndLoadPriceFile(t *testing.T) {
	dir := t.TempDir()

	path, size, err := WritePriceFile(dir, sampleSeries(2023))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "prices_2023.json"), path)
	assert.Greater(t, size, int64(0))

	loaded, err := LoadPriceFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2023, loaded.Year)
	assert.Equal(t, 2, loaded.Count)
	require.Len(t, loaded.Prices, 2)
	assert.Equal(t, "2023-01-01T00:00:00", loaded.Prices[0].Local)
	assert.Equal(t, 123.4, loaded.Prices[0].Price)
}

func TestWritePriceFile_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()

	_, _, err := WritePriceFile(dir, sampleSeries(2023))
	require.NoError(t, err)

	updated := sampleSeries(2023)
	updated.Prices[0].Price = 55.5
	path, _, err := WritePriceFile(dir, updated)
	require.NoError(t, err)

	loaded, err := LoadPriceFile(path)
	require.NoError(t, err)
	assert.Equal(t, 55.5, loaded.Prices[0].Price)

	// No leftover temp files from the atomic write.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWritePriceFile_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	path, _, err := WritePriceFile(dir, sampleSeries(2024))
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestFilePaths(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "prices_2023.json"), PriceFilePath("data", 2023))
	assert.Equal(t, filepath.Join("data", "consumption_2024_wp_ev.json"),
		ConsumptionFilePath("data", 2024, model.ProfileHeatPumpEV))
	assert.Equal(t, filepath.Join("data", "solar_2024_5kwp.json"), SolarFilePath("data", 2024, 5))
}

func TestCatalogUpsert(t *testing.T) {
	c := &Catalog{}
	c.Upsert(Dataset{Kind: "prices", Year: 2023, File: "prices_2023.json", Count: 8760})
	c.Upsert(Dataset{Kind: "consumption", Year: 2023, Variant: "wp_ev", File: "consumption_2023_wp_ev.json", Count: 8760})
	require.Len(t, c.Datasets, 2)

	// Same key replaces, does not append.
	c.Upsert(Dataset{Kind: "prices", Year: 2023, File: "prices_2023.json", Count: 8784})
	require.Len(t, c.Datasets, 2)
	assert.Equal(t, 8784, c.Datasets[0].Count)
}

func TestUpdateCatalogRoundTrip(t *testing.T) {
	dir := t.TempDir()

	err := UpdateCatalog(dir, Dataset{Kind: "prices", Year: 2023, File: "prices_2023.json", Count: 8760})
	require.NoError(t, err)
	err = UpdateCatalog(dir, Dataset{Kind: "solar", Year: 2023, Variant: "5kwp", File: "solar_2023_5kwp.json", Count: 8760})
	require.NoError(t, err)

	c, err := LoadCatalog(CatalogPath(dir))
	require.NoError(t, err)
	require.Len(t, c.Datasets, 2)
	assert.NotEmpty(t, c.UpdatedAt)
	assert.Equal(t, "prices", c.Datasets[0].Kind)
	assert.Equal(t, "solar", c.Datasets[1].Kind)
}

func TestBuildCatalogScansDirectory(t *testing.T) {
	dir := t.TempDir()

	_, _, err := WritePriceFile(dir, sampleSeries(2023))
	require.NoError(t, err)

	consumption := &model.ConsumptionSeries{Year: 2023, Count: 1,
		Consumption: []model.EnergyPoint{{Timestamp: "2023-01-01T00:00:00", KWh: 0.5}}}
	_, err = WriteConsumptionFile(dir, consumption, model.ProfileHeatPumpEV)
	require.NoError(t, err)

	// Unrelated files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))

	c, err := BuildCatalog(dir)
	require.NoError(t, err)
	require.Len(t, c.Datasets, 2)

	assert.Equal(t, "consumption", c.Datasets[0].Kind)
	assert.Equal(t, "wp_ev", c.Datasets[0].Variant)
	assert.Equal(t, 1, c.Datasets[0].Count)

	assert.Equal(t, "prices", c.Datasets[1].Kind)
	assert.Equal(t, 2023, c.Datasets[1].Year)
	assert.Equal(t, 2, c.Datasets[1].Count)
}

func TestClassifyFile(t *testing.T) {
	d, ok := classifyFile("prices_2023.json")
	require.True(t, ok)
	assert.Equal(t, "prices", d.Kind)

	d, ok = classifyFile("consumption_2024_wp_ev.json")
	require.True(t, ok)
	assert.Equal(t, "consumption", d.Kind)
	assert.Equal(t, "wp_ev", d.Variant)

	d, ok = classifyFile("solar_2024_12kwp.json")
	require.True(t, ok)
	assert.Equal(t, "solar", d.Kind)
	assert.Equal(t, "12kwp", d.Variant)

	_, ok = classifyFile("catalog.json")
	assert.False(t, ok)
	_, ok = classifyFile("consumption_2024.json")
	assert.False(t, ok)
}
