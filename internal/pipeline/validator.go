package pipeline

import (
	"sort"
	"strconv"

	"battery-sim-data/internal/model"
)

// Report summarizes validation of a year series. Everything in it is
// advisory: a count mismatch or an incomplete day is a quality signal for
// the operator, not a correctness gate, and the series is persisted
// regardless.
type Report struct {
	Year     int
	Expected int // (365|366) * 24, spring and fall transitions cancelling
	Actual   int

	SpringDays []string // local dates with 23 entries (clocks forward)
	FallDays   []string // local dates with 25 entries (clocks back)

	Incomplete []IncompleteDay // local dates with fewer than 23 entries

	// Overfull lists local dates with more than 25 entries. Instant-level
	// dedup makes this unreachable from the service path, so any hit means
	// duplicated source data and deserves the operator's attention.
	Overfull []string
}

// IncompleteDay describes a day that is missing hours the service should
// have delivered.
type IncompleteDay struct {
	Date         string
	Entries      int
	MissingHours []int // local hours 0-23 absent from the day
}

// CountMatches reports whether the series has exactly the DST-adjusted
// expected number of entries.
func (r *Report) CountMatches() bool {
	return r.Actual == r.Expected
}

// Validate buckets the series by local calendar date and classifies each
// day: 23 entries marks the spring transition, 25 the fall transition, and
// everything else must have 24. The expected-count comparison assumes one
// spring and one fall day inside the year; that holds for Europe/Amsterdam
// but would not survive a zone without both transitions in range.
func Validate(series *model.YearSeries) *Report {
	report := &Report{
		Year:     series.Year,
		Expected: model.HoursInYear(series.Year),
		Actual:   series.Count,
	}

	buckets := make(map[string][]model.PricePoint)
	for _, p := range series.Prices {
		day := p.Local[:10] // YYYY-MM-DD
		buckets[day] = append(buckets[day], p)
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		entries := buckets[day]
		switch len(entries) {
		case 24:
			// normal day
		case 23:
			report.SpringDays = append(report.SpringDays, day)
		case 25:
			report.FallDays = append(report.FallDays, day)
		default:
			if len(entries) > 25 {
				report.Overfull = append(report.Overfull, day)
			} else {
				report.Incomplete = append(report.Incomplete, IncompleteDay{
					Date:         day,
					Entries:      len(entries),
					MissingHours: missingHours(entries),
				})
			}
		}
	}

	return report
}

// missingHours returns the local hours 0-23 with no entry on the day.
func missingHours(entries []model.PricePoint) []int {
	present := make(map[int]bool, len(entries))
	for _, p := range entries {
		hour, err := strconv.Atoi(p.Local[11:13])
		if err != nil {
			continue
		}
		present[hour] = true
	}
	var missing []int
	for h := 0; h < 24; h++ {
		if !present[h] {
			missing = append(missing, h)
		}
	}
	return missing
}
