package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-sim-data/internal/data"
)

// fakeSource serves hourly prices for any requested UTC range. With
// truncateDST set it reproduces the service defect: when a DST transition
// day is the last day of a range, that day's data comes back incomplete.
type fakeSource struct {
	zone        *time.Location
	truncateDST bool
	failOnCall  int // 1-based call number to fail on, 0 = never
	calls       int
}

func (f *fakeSource) FetchPrices(_ context.Context, from, till time.Time) (*data.PriceResponse, error) {
	f.calls++
	if f.failOnCall > 0 && f.calls == f.failOnCall {
		return nil, errors.New("service unavailable")
	}

	var prices []data.RawPrice
	for instant := from.Truncate(time.Hour); !instant.After(till); instant = instant.Add(time.Hour) {
		prices = append(prices, data.RawPrice{Price: 0.1, ReadingDate: instant})
	}

	if f.truncateDST && f.lastDayIsTransition(till) {
		// Lose the final two hours of the range.
		prices = prices[:len(prices)-2]
	}

	return &data.PriceResponse{Prices: prices}, nil
}

// lastDayIsTransition reports whether the last local day of the range has
// anything other than 24 hours.
func (f *fakeSource) lastDayIsTransition(till time.Time) bool {
	local := till.In(f.zone)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, f.zone)
	next := midnight.AddDate(0, 0, 1)
	return next.Sub(midnight) != 24*time.Hour
}

func TestRunYear_Windowed(t *testing.T) {
	zone := amsterdam(t)
	dir := t.TempDir()

	src := &fakeSource{zone: zone}
	pipe := New(src, zone, ModeWindowed, dir, nil)

	out := pipe.RunYear(context.Background(), 2023)

	require.NoError(t, out.Err)
	assert.Equal(t, StatePersisted, out.State)
	require.NotNil(t, out.Series)
	require.NotNil(t, out.Report)

	assert.Equal(t, 8760, out.Series.Count)
	assert.Len(t, out.Series.Prices, out.Series.Count)
	assert.True(t, out.Report.CountMatches())
	assert.Equal(t, len(PlanWindows(2023)), src.calls)

	// The persisted artifact is readable and identical in shape.
	loaded, err := data.LoadPriceFile(out.Path)
	require.NoError(t, err)
	assert.Equal(t, 2023, loaded.Year)
	assert.Equal(t, 8760, loaded.Count)
	assert.Len(t, loaded.Prices, 8760)
}

func TestRunYear_WindowOverlapAbsorbsTruncationDefect(t *testing.T) {
	zone := amsterdam(t)
	dir := t.TempDir()

	// The service truncates a DST day when it is the last day of a range.
	// Because consecutive windows share their boundary date, the following
	// window re-requests that day in full and dedup keeps the union.
	src := &fakeSource{zone: zone, truncateDST: true}
	pipe := New(src, zone, ModeWindowed, dir, nil)

	out := pipe.RunYear(context.Background(), 2023)

	require.NoError(t, out.Err)
	assert.Equal(t, 8760, out.Series.Count)
	assert.True(t, out.Report.CountMatches())
	assert.Equal(t, []string{"2023-03-26"}, out.Report.SpringDays)
	assert.Equal(t, []string{"2023-10-29"}, out.Report.FallDays)
	assert.Empty(t, out.Report.Incomplete)
}

func TestRunYear_BoundaryDateAppearsOnce(t *testing.T) {
	zone := amsterdam(t)
	src := &fakeSource{zone: zone}
	pipe := New(src, zone, ModeWindowed, t.TempDir(), nil)

	out := pipe.RunYear(context.Background(), 2023)
	require.NoError(t, out.Err)

	// Jan 8 is requested by both window 1 and window 2.
	count := 0
	for _, p := range out.Series.Prices {
		if p.Local[:10] == "2023-01-08" {
			count++
		}
	}
	assert.Equal(t, 24, count)
}

func TestRunYear_WholeYearMode(t *testing.T) {
	zone := amsterdam(t)
	src := &fakeSource{zone: zone}
	pipe := New(src, zone, ModeWholeYear, t.TempDir(), nil)

	out := pipe.RunYear(context.Background(), 2024)

	require.NoError(t, out.Err)
	assert.Equal(t, 1, src.calls, "whole-year mode issues exactly one request")
	assert.Equal(t, 8784, out.Series.Count)
	assert.True(t, out.Report.CountMatches())
}

func TestRunYear_FetchFailureAborts(t *testing.T) {
	zone := amsterdam(t)
	dir := t.TempDir()

	src := &fakeSource{zone: zone, failOnCall: 3}
	pipe := New(src, zone, ModeWindowed, dir, nil)

	out := pipe.RunYear(context.Background(), 2023)

	assert.True(t, out.Failed())
	assert.Equal(t, StateAborted, out.State)
	assert.Nil(t, out.Series, "no partial data survives an abort")
	assert.Nil(t, out.Report)
	assert.Equal(t, 3, src.calls, "no further windows after the failure")

	// No partial file at the destination path.
	_, err := os.Stat(data.PriceFilePath(dir, 2023))
	assert.True(t, os.IsNotExist(err))
}

func TestRunYear_DistinctInstants(t *testing.T) {
	zone := amsterdam(t)
	src := &fakeSource{zone: zone}
	pipe := New(src, zone, ModeWindowed, t.TempDir(), nil)

	out := pipe.RunYear(context.Background(), 2023)
	require.NoError(t, out.Err)

	instants := map[int64]bool{}
	for _, p := range out.Series.Prices {
		require.False(t, instants[p.Instant.Unix()], "duplicate instant %s", p.Instant)
		instants[p.Instant.Unix()] = true
	}
	assert.Len(t, instants, out.Series.Count)
}
