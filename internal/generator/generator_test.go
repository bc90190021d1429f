package generator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-sim-data/internal/model"
)

func TestConsumption_SameSeedSameSeries(t *testing.T) {
	a := Consumption(2024, model.ProfileHeatPumpEV, rand.New(rand.NewSource(7)))
	b := Consumption(2024, model.ProfileHeatPumpEV, rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)

	c := Consumption(2024, model.ProfileHeatPumpEV, rand.New(rand.NewSource(8)))
	assert.NotEqual(t, a.Consumption, c.Consumption)
}

func TestConsumption_Shape(t *testing.T) {
	series := Consumption(2024, model.ProfileBasis, rand.New(rand.NewSource(1)))

	assert.Equal(t, 2024, series.Year)
	assert.Equal(t, 8784, series.Count)
	require.Len(t, series.Consumption, 8784)

	// Naive civil hours, no DST day shorter or longer than 24 entries.
	assert.Equal(t, "2024-01-01T00:00:00", series.Consumption[0].Timestamp)
	assert.Equal(t, "2024-12-31T23:00:00", series.Consumption[8783].Timestamp)

	nonLeap := Consumption(2023, model.ProfileBasis, rand.New(rand.NewSource(1)))
	assert.Equal(t, 8760, nonLeap.Count)
}

func TestConsumption_FloorAndRounding(t *testing.T) {
	series := Consumption(2024, model.ProfileBasis, rand.New(rand.NewSource(1)))

	for _, p := range series.Consumption {
		assert.GreaterOrEqual(t, p.KWh, floorKWh, "at %s", p.Timestamp)
		// 3-decimal values survive a round trip through milli-units.
		milli := p.KWh * 1000
		assert.InDelta(t, math.Round(milli), milli, 1e-6, "at %s", p.Timestamp)
	}
}

func TestConsumption_ProfilesAddLoad(t *testing.T) {
	totals := map[model.Profile]float64{}
	for _, profile := range model.Profiles() {
		series := Consumption(2024, profile, rand.New(rand.NewSource(3)))
		var sum float64
		for _, p := range series.Consumption {
			sum += p.KWh
		}
		totals[profile] = sum
	}

	assert.Greater(t, totals[model.ProfileHeatPump], totals[model.ProfileBasis])
	assert.Greater(t, totals[model.ProfileEV], totals[model.ProfileBasis])
	assert.Greater(t, totals[model.ProfileHeatPumpEV], totals[model.ProfileHeatPump])
	assert.Greater(t, totals[model.ProfileHeatPumpEV], totals[model.ProfileEV])

	// Baseline lands in the ballpark of a Dutch household year.
	assert.InDelta(t, 3500, totals[model.ProfileBasis], 1500)
}

func TestSolar_SameSeedSameSeries(t *testing.T) {
	a := Solar(2024, 5, rand.New(rand.NewSource(7)))
	b := Solar(2024, 5, rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

func TestSolar_ZeroSystemYieldsZeroSeries(t *testing.T) {
	series := Solar(2024, 0, rand.New(rand.NewSource(1)))

	assert.Equal(t, 8784, series.Count)
	for _, p := range series.Solar {
		assert.Zero(t, p.KWh)
	}
}

func TestSolar_NightHoursAreZero(t *testing.T) {
	series := Solar(2024, 10, rand.New(rand.NewSource(1)))

	for _, p := range series.Solar {
		hour := p.Timestamp[11:13]
		if hour == "00" || hour == "01" || hour == "02" || hour == "23" {
			assert.Zero(t, p.KWh, "at %s", p.Timestamp)
		}
	}
}

func TestSolar_LargerSystemGeneratesMore(t *testing.T) {
	sum := func(kwp int) float64 {
		series := Solar(2024, kwp, rand.New(rand.NewSource(5)))
		var total float64
		for _, p := range series.Solar {
			total += p.KWh
		}
		return total
	}

	small, large := sum(5), sum(10)
	assert.Greater(t, small, 0.0)
	assert.Greater(t, large, small)
}

func TestSolar_SummerBeatsWinter(t *testing.T) {
	series := Solar(2023, 5, rand.New(rand.NewSource(2)))

	var january, june float64
	for _, p := range series.Solar {
		switch p.Timestamp[5:7] {
		case "01":
			january += p.KWh
		case "06":
			june += p.KWh
		}
	}
	assert.Greater(t, june, january*2)
}
