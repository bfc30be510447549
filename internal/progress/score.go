package progress

import "math"

// ScoreProgress returns the percent of the journey from start to target that
// is already covered, as an integer in [0, 100]. Overshooting the target is
// capped at 100; a zero-length journey scores 0.
func ScoreProgress(start, current, target float64) int {
	totalJourney := math.Abs(start - target)
	if !(totalJourney > 0) {
		return 0
	}

	completed := math.Abs(start - current)
	percentage := int(math.Round(completed / totalJourney * 100))
	if percentage > 100 {
		percentage = 100
	}
	return percentage
}
