// Package generator synthesizes hourly household consumption and solar
// generation datasets for the simulation front end. All randomness flows
// from a caller-supplied *rand.Rand, so a fixed seed reproduces a dataset
// bit-for-bit regardless of what else ran before.
package generator

import (
	"math"
	"math/rand"
	"time"

	"battery-sim-data/internal/model"
)

// Consumption model parameters (kW), tuned for a Dutch household baseline
// of ~3.5 MWh/year.
const (
	baselineKW    = 0.2
	morningPeakKW = 1.0
	eveningPeakKW = 1.3
	winterFactor  = 1.2
	floorKWh      = 0.05
)

// Consumption generates one hourly consumption series for the year. Hours
// run over the naive civil calendar (no DST adjustment), matching the
// schema the front end consumes.
func Consumption(year int, profile model.Profile, rng *rand.Rand) *model.ConsumptionSeries {
	hours := model.HoursInYear(year)
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	points := make([]model.EnergyPoint, 0, hours)
	for i := 0; i < hours; i++ {
		t := start.Add(time.Duration(i) * time.Hour)
		points = append(points, model.EnergyPoint{
			Timestamp: t.Format(model.LocalLayout),
			KWh:       consumptionKWh(t, profile, rng),
		})
	}

	return &model.ConsumptionSeries{
		Year:        year,
		Count:       len(points),
		Consumption: points,
	}
}

// consumptionKWh models one hour of household load: a baseline with morning,
// midday and evening peaks, winter and weekend factors, and a night
// reduction, plus optional heat-pump and EV loads.
func consumptionKWh(t time.Time, profile model.Profile, rng *rand.Rand) float64 {
	hour := t.Hour()
	day := t.YearDay()

	power := baselineKW
	if isWinter(day) {
		power *= winterFactor
	}

	// Morning peak 07:00-09:00, evening peak 18:00-22:00, small midday bump.
	if hour >= 7 && hour < 9 {
		power += morningPeakKW * math.Sin(radians(float64(hour-7)*90))
	}
	if hour >= 18 && hour < 22 {
		power += eveningPeakKW * math.Sin(radians(float64(hour-18)*45))
	}
	if hour >= 12 && hour < 14 {
		power += 0.3 * math.Sin(radians(float64(hour-12)*90))
	}

	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		power *= 1.1
		if hour >= 10 && hour < 17 {
			power += 0.2
		}
	}

	if hour < 6 {
		power *= 0.5
	}

	if profile.HasHeatPump() {
		power += heatPumpKW(day, hour, rng)
	}
	if profile.HasEV() {
		power += evChargeKW(day, hour, rng)
	}

	power *= uniform(rng, 0.8, 1.2)

	return round3(math.Max(floorKWh, power))
}

// heatPumpKW adds ~3 MWh/year: heating-season load concentrated in night
// and morning hours, boosted in the coldest months, with only hot-water
// load in summer.
func heatPumpKW(day, hour int, rng *rand.Rand) float64 {
	if isWinter(day) {
		if hour >= 18 || hour < 10 {
			kw := 1.0
			if day < 45 || day > 330 {
				kw *= 1.4
			}
			return kw * uniform(rng, 0.7, 1.2)
		}
		return 0.3 * uniform(rng, 0.3, 0.7)
	}
	// Summer: hot water only.
	return 0.05 * uniform(rng, 0.5, 1.5)
}

// evChargeKW adds ~3 MWh/year: a charge session every third day, spread
// over the 19:00-24:00 evening hours with a sine-shaped power curve peaking
// mid-session.
func evChargeKW(day, hour int, rng *rand.Rand) float64 {
	if day%3 != 0 || hour < 19 {
		return 0
	}
	return 7.0 * math.Sin(radians(float64(hour-19+1)*36)) * uniform(rng, 0.85, 1.05)
}

// isWinter marks the heating season (roughly October through March).
func isWinter(day int) bool {
	return day < 90 || day > 300
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
