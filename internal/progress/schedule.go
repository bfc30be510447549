package progress

import (
	"fmt"
	"math"
	"time"
)

// minDailyRate is the long-run daily rate below which the series is treated
// as carrying no signal at all, rather than as "zero time to goal".
const minDailyRate = 0.001

const (
	msgNotEnoughData  = "not enough progress data yet"
	msgOnTrackFormat  = "on track to hit the target by %s"
	msgOffTrack       = "falling behind the target date, time to step it up"
	verdictDateFormat = "Jan 2, 2006"
)

// ScheduleVerdict says whether the long-run trend reaches the target value
// before the goal's deadline.
type ScheduleVerdict struct {
	ProjectedDate *time.Time `json:"projectedDate"`
	DaysNeeded    *int       `json:"daysNeeded"`
	DailyRate     float64    `json:"dailyRate"`
	OnTrack       bool       `json:"onTrack"`
	Message       string     `json:"message"`
}

// EvaluateSchedule compares the projected completion date against the goal's
// target date and produces an on-track verdict.
//
// Unlike EstimateWeeklyRate, which windows to recent samples for charting,
// the daily rate here spans the entire series: deadline judgement favors the
// long-run trend over short-term fluctuation. The two estimators are
// intentionally different and must not be unified.
func EvaluateSchedule(checkpoints []Checkpoint, targetValue float64, targetDate, now time.Time) (*ScheduleVerdict, error) {
	if !isFinite(targetValue) {
		return nil, fmt.Errorf("targetValue: %w", ErrInvalidValue)
	}
	for i, c := range checkpoints {
		if !isFinite(c.Value) {
			return nil, fmt.Errorf("checkpoint %d value: %w", i, ErrInvalidValue)
		}
	}

	series := sortedCopy(checkpoints)
	if len(series) < 2 {
		return inconclusiveVerdict(0), nil
	}

	first := series[0]
	last := series[len(series)-1]

	days := math.Max(1, daysBetween(first.Timestamp, last.Timestamp))
	dailyRate := (last.Value - first.Value) / days
	if math.Abs(dailyRate) < minDailyRate {
		return inconclusiveVerdict(dailyRate), nil
	}

	remaining := targetValue - last.Value
	daysNeeded := int(math.Ceil(remaining / dailyRate))
	projectedDate := now.AddDate(0, 0, daysNeeded)

	onTrack := !projectedDate.After(targetDate)
	message := msgOffTrack
	if onTrack {
		message = fmt.Sprintf(msgOnTrackFormat, projectedDate.Format(verdictDateFormat))
	}

	return &ScheduleVerdict{
		ProjectedDate: &projectedDate,
		DaysNeeded:    &daysNeeded,
		DailyRate:     dailyRate,
		OnTrack:       onTrack,
		Message:       message,
	}, nil
}

func inconclusiveVerdict(dailyRate float64) *ScheduleVerdict {
	return &ScheduleVerdict{
		DailyRate: dailyRate,
		OnTrack:   false,
		Message:   msgNotEnoughData,
	}
}
