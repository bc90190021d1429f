package generator

import (
	"math"
	"math/rand"
	"time"

	"battery-sim-data/internal/model"
)

// Solar model parameters for a Dutch rooftop installation.
const (
	latitudeDeg      = 52.0
	systemEfficiency = 0.85
)

// Solar generates one hourly solar generation series for a system of the
// given peak power. A 0 kWp system yields an all-zero series the front end
// can still select.
func Solar(year, kwp int, rng *rand.Rand) *model.SolarSeries {
	hours := model.HoursInYear(year)
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	points := make([]model.EnergyPoint, 0, hours)
	for i := 0; i < hours; i++ {
		t := start.Add(time.Duration(i) * time.Hour)
		points = append(points, model.EnergyPoint{
			Timestamp: t.Format(model.LocalLayout),
			KWh:       solarKWh(t, float64(kwp), rng),
		})
	}

	return &model.SolarSeries{
		Year:  year,
		Count: len(points),
		Solar: points,
	}
}

// solarKWh models one hour of generation from solar elevation, system
// efficiency, a seasonal factor and random cloud cover.
func solarKWh(t time.Time, kwp float64, rng *rand.Rand) float64 {
	if kwp <= 0 {
		return 0
	}
	day := t.YearDay()

	elev := elevation(t.Hour(), day)
	if elev <= 0 {
		return 0
	}

	// sin(elevation) approximates clear-sky irradiance on the panel.
	power := kwp * systemEfficiency * math.Sin(radians(elev))

	switch {
	case day >= 150 && day <= 240: // roughly May-August
		power *= 1.1
	case day < 90 || day > 300:
		power *= 0.9
	}

	// Cloud cover, heavier in winter.
	if day < 90 || day > 300 {
		power *= uniform(rng, 0.2, 0.9)
	} else {
		power *= uniform(rng, 0.4, 1.0)
	}

	return round3(math.Max(0, power))
}

// declination returns the solar declination angle in degrees for a day of
// the year (Cooper equation).
func declination(day int) float64 {
	return 23.45 * math.Sin(radians((360.0/365.0)*float64(day+284)))
}

// elevation returns the solar elevation angle in degrees for a local hour
// and day at the model latitude, clamped to 0 below the horizon.
func elevation(hour, day int) float64 {
	decl := radians(declination(day))
	hourAngle := radians(15 * float64(hour-12))
	lat := radians(latitudeDeg)

	sinElev := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(hourAngle)
	sinElev = math.Max(-1, math.Min(1, sinElev))

	return math.Max(0, math.Asin(sinElev)*180/math.Pi)
}
