package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LocalLayout renders a wall-clock timestamp in the civil zone without a
// zone suffix. During a fall-back transition two distinct instants share the
// same rendered text, so this string is NOT a unique key; the UTC instant is.
const LocalLayout = "2006-01-02T15:04:05"

// PricePoint is one hourly spot price in a year series.
// Created once by the normalizer, never mutated afterwards.
type PricePoint struct {
	// Instant is the absolute start of the hour (UTC).
	// Equality on Instant is the dedup criterion.
	Instant time.Time `json:"-"`
	// Local is Instant rendered in the civil zone using LocalLayout.
	Local string `json:"timestamp"`
	// Price in EUR/MWh, rounded to 1 decimal.
	Price float64 `json:"price"`
}

// YearSeries is the persisted price artifact for one calendar year.
// Prices are sorted ascending by Local, with the fall-back pair ordered by
// Instant. Invariant: Count == len(Prices) == number of distinct instants.
type YearSeries struct {
	Year   int          `json:"year"`
	Count  int          `json:"count"`
	Prices []PricePoint `json:"prices"`
}

// QueryWindow is one inclusive civil date range submitted as a single
// request to the pricing service. Consecutive windows share their boundary
// date so that a DST transition day is never only the last day of a range.
type QueryWindow struct {
	Start time.Time // civil date (midnight UTC carrier)
	End   time.Time // inclusive
}

func (w QueryWindow) String() string {
	return fmt.Sprintf("%s..%s", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}

// Days returns the number of civil days the window spans, inclusive.
func (w QueryWindow) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// KWhToMWh converts a EUR/kWh price from the service to the EUR/MWh unit of
// the persisted artifact, rounded to 1 decimal. Done in decimal space so the
// stored float is an exact 1-decimal value.
func KWhToMWh(kwh float64) float64 {
	return decimal.NewFromFloat(kwh).Mul(decimal.NewFromInt(1000)).Round(1).InexactFloat64()
}

// IsLeapYear reports whether year has 366 days.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// HoursInYear returns days*24 for the year. The spring 23-hour day and the
// fall 25-hour day are assumed to cancel; that holds only for a zone with
// both transitions inside the year, which is the case for Europe/Amsterdam.
func HoursInYear(year int) int {
	if IsLeapYear(year) {
		return 366 * 24
	}
	return 365 * 24
}
