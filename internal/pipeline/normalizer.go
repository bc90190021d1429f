package pipeline

import (
	"time"

	"battery-sim-data/internal/data"
	"battery-sim-data/internal/model"
)

// Normalizer projects raw service records into PricePoints for one target
// year. It carries the dedup set across all windows of a run, so overlapping
// windows contribute each instant exactly once.
type Normalizer struct {
	year int
	zone *time.Location
	seen map[int64]struct{} // unix seconds of kept instants
}

// NewNormalizer creates a normalizer for one year in the given civil zone.
func NewNormalizer(year int, zone *time.Location) *Normalizer {
	return &Normalizer{
		year: year,
		zone: zone,
		seen: make(map[int64]struct{}),
	}
}

// Normalize converts one window's raw records. A record is dropped when its
// local calendar year differs from the target year (local time, not UTC, is
// the filter criterion) or when its instant was already kept. Records with
// equal local text but different instants are the two real hours of a
// fall-back transition and are both kept; deduplicating on local text would
// silently drop one hour of real price data.
func (n *Normalizer) Normalize(raw []data.RawPrice) []model.PricePoint {
	points := make([]model.PricePoint, 0, len(raw))
	for _, r := range raw {
		instant := r.ReadingDate.UTC()
		local := instant.In(n.zone)
		if local.Year() != n.year {
			continue
		}
		key := instant.Unix()
		if _, dup := n.seen[key]; dup {
			continue
		}
		n.seen[key] = struct{}{}

		points = append(points, model.PricePoint{
			Instant: instant,
			Local:   local.Format(model.LocalLayout),
			Price:   model.KWhToMWh(r.Price),
		})
	}
	return points
}

// Kept returns the number of distinct instants kept so far.
func (n *Normalizer) Kept() int {
	return len(n.seen)
}
