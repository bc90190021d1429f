package pipeline

import (
	"sort"

	"battery-sim-data/internal/model"
)

// Assemble merges the normalized points of all windows, in any arrival
// order, into one ascending year series. The sort key is (local text,
// instant): local text alone is not unique on a fall-back day, so the
// instant breaks the tie and places the earlier real hour first. The pair
// (local, instant) is unique after dedup, making the order total.
func Assemble(year int, points []model.PricePoint) *model.YearSeries {
	sorted := make([]model.PricePoint, len(points))
	copy(sorted, points)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Local != sorted[j].Local {
			return sorted[i].Local < sorted[j].Local
		}
		return sorted[i].Instant.Before(sorted[j].Instant)
	})

	return &model.YearSeries{
		Year:   year,
		Count:  len(sorted),
		Prices: sorted,
	}
}
