package pipeline

import (
	"time"

	"battery-sim-data/internal/model"
)

// PlanMode selects how a year is split into service requests. The two modes
// exist because the windowed API variant truncates a DST transition day that
// falls as the last day of a range, while the whole-year variant does not.
// A run uses exactly one mode; they are never mixed.
type PlanMode string

const (
	ModeWindowed  PlanMode = "windowed"
	ModeWholeYear PlanMode = "whole-year"
)

// maxWindowDays bounds one request. Eight days with a one-day overlap keeps
// every DST transition day covered by a window where it is not the last day.
const maxWindowDays = 8

// PlanWindows splits a year into query windows of at most maxWindowDays
// civil days, where each window's end date is the next window's start date.
// The final window is clipped to December 31. The shared boundary date is
// requested twice; the normalizer's instant dedup keeps it once.
func PlanWindows(year int) []model.QueryWindow {
	start := civilDate(year, time.January, 1)
	last := civilDate(year, time.December, 31)

	var windows []model.QueryWindow
	for cur := start; cur.Before(last); {
		end := cur.AddDate(0, 0, maxWindowDays-1)
		if end.After(last) {
			end = last
		}
		windows = append(windows, model.QueryWindow{Start: cur, End: end})
		cur = end
	}
	return windows
}

// WholeYearRange returns the single UTC query range covering the year,
// offset by the zone's fixed winter UTC offset (+01:00) at both ends:
// Jan 1 00:00 local is Dec 31 23:00 UTC of the prior year, and
// Dec 31 23:59:59.999 local is Dec 31 22:59:59.999 UTC.
// Valid only for service variants without the end-of-range truncation
// defect.
func WholeYearRange(year int) (from, till time.Time) {
	from = time.Date(year-1, time.December, 31, 23, 0, 0, 0, time.UTC)
	till = time.Date(year, time.December, 31, 22, 59, 59, int(999*time.Millisecond), time.UTC)
	return from, till
}

// WindowRange converts a civil window to the UTC instants submitted to the
// service: local midnight on the start date through the last millisecond of
// the end date. Computing the bounds in the civil zone keeps windows
// spanning a DST transition exactly as long as their days really are.
func WindowRange(w model.QueryWindow, zone *time.Location) (from, till time.Time) {
	from = time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, zone).UTC()
	nextDay := time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, zone).AddDate(0, 0, 1)
	till = nextDay.Add(-time.Millisecond).UTC()
	return from, till
}

func civilDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
