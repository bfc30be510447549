package progress

// estimationWindowSamples bounds the rate estimation window by sample count,
// not wall-clock time, so that irregular logging frequency (three times a day
// or once a week) still yields a usable short-term trend.
const estimationWindowSamples = 14

// EstimateWeeklyRate derives a signed "change per week" velocity from the
// most recent samples of the series. Positive means the value is increasing
// over time. With fewer than 2 samples in the window, or with all samples on
// the same instant, there is no trend information and the rate is 0.
//
// Values are assumed finite; AppendCheckpoint rejects everything else before
// it can reach a series.
func EstimateWeeklyRate(checkpoints []Checkpoint) float64 {
	series := sortedCopy(checkpoints)
	if len(series) > estimationWindowSamples {
		series = series[len(series)-estimationWindowSamples:]
	}
	if len(series) < 2 {
		return 0
	}

	first := series[0]
	last := series[len(series)-1]

	days := daysBetween(first.Timestamp, last.Timestamp)
	if days == 0 {
		// same-day duplicates carry no trend information
		return 0
	}

	return (last.Value - first.Value) / days * 7
}
