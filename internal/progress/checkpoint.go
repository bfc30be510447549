// Package progress is the projection engine used by the goals service.
// Everything in here is a pure function over immutable inputs: no clocks,
// no I/O, no shared state. "Now" always comes in as a parameter so that
// callers (and tests) stay deterministic.
package progress

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrInvalidValue is returned when a non-finite number (NaN or +/-Inf)
// reaches the engine. Insufficient data, zero rates and wrong-direction
// trends are regular result values, not errors.
var ErrInvalidValue = errors.New("value is not a finite number")

// Checkpoint is a single timestamped observation of the tracked quantity.
// Checkpoints are immutable once recorded; corrections are new checkpoints.
type Checkpoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// AppendCheckpoint returns a new series with the given observation added,
// ordered ascending by timestamp. The input slice is left untouched.
func AppendCheckpoint(checkpoints []Checkpoint, value float64, timestamp time.Time) ([]Checkpoint, error) {
	if !isFinite(value) {
		return nil, fmt.Errorf("checkpoint value %v: %w", value, ErrInvalidValue)
	}

	series := make([]Checkpoint, 0, len(checkpoints)+1)
	series = append(series, checkpoints...)
	series = append(series, Checkpoint{Timestamp: timestamp, Value: value})
	sortByTimestamp(series)
	return series, nil
}

// sortedCopy returns the series ordered ascending by timestamp,
// copying only when the input is out of order.
func sortedCopy(checkpoints []Checkpoint) []Checkpoint {
	if sort.SliceIsSorted(checkpoints, func(i, j int) bool {
		return checkpoints[i].Timestamp.Before(checkpoints[j].Timestamp)
	}) {
		return checkpoints
	}
	series := make([]Checkpoint, len(checkpoints))
	copy(series, checkpoints)
	sortByTimestamp(series)
	return series
}

func sortByTimestamp(series []Checkpoint) {
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func roundTo1Decimal(v float64) float64 {
	return math.Round(v*10) / 10
}
