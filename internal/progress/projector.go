package progress

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const (
	// DefaultHorizonCapWeeks bounds the number of forward weekly samples
	// generated for charting, so that near-zero rates cannot produce
	// enormous data point sequences.
	DefaultHorizonCapWeeks = 52

	// DefaultAchievedTolerance is the absolute distance from the target
	// below which a goal counts as already met.
	DefaultAchievedTolerance = 0.5
)

// ProjectParams carries the inputs for a single projection request.
type ProjectParams struct {
	// StartValue is the value of the goal's first checkpoint; the progress
	// percentage reflects the whole journey, not the remaining segment.
	StartValue   float64
	CurrentValue float64
	TargetValue  float64

	// MeasuredWeeklyRate is the data-driven trend, normally coming from
	// EstimateWeeklyRate.
	MeasuredWeeklyRate float64
	// FallbackWeeklyRate kicks in when the measured rate is zero. Some goal
	// types can derive an expected rate from an independent model (an energy
	// balance estimate for weight goals, for instance); the engine treats it
	// as a plain injected number, never computes it.
	FallbackWeeklyRate float64

	// Now is the anchor for all produced dates.
	Now time.Time

	// HorizonCapWeeks and AchievedTolerance default to the package constants
	// when left zero.
	HorizonCapWeeks   int
	AchievedTolerance float64
}

// DataPoint is one forward chart sample of the projection.
type DataPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Projection is the result of extrapolating the current trend towards the
// target. All of its edge states (achieved, wrong direction, no usable rate)
// are regular values so that clients can render them without special-casing.
type Projection struct {
	Achieved       bool `json:"achieved"`
	WrongDirection bool `json:"wrongDirection"`

	// DaysRemaining is +Inf when no completion estimate exists (zero rate or
	// wrong direction); JSON then carries null, the flags tell the story.
	DaysRemaining float64 `json:"-"`
	// ProjectedDate is nil in exactly the same cases.
	ProjectedDate *time.Time `json:"projectedDate"`

	CurrentValue float64 `json:"currentValue"`
	GoalValue    float64 `json:"goalValue"`
	StartValue   float64 `json:"startValue"`
	WeeklyRate   float64 `json:"weeklyRate"`

	DataPoints         []DataPoint `json:"dataPoints"`
	ProgressPercentage int         `json:"progressPercentage"`
}

func (p Projection) MarshalJSON() ([]byte, error) {
	type projectionAlias Projection
	aux := struct {
		projectionAlias
		DaysRemaining *float64 `json:"daysRemaining"`
	}{projectionAlias: projectionAlias(p)}

	if !math.IsInf(p.DaysRemaining, 1) {
		aux.DaysRemaining = &p.DaysRemaining
	}
	return json.Marshal(aux)
}

func (p *Projection) UnmarshalJSON(data []byte) error {
	type projectionAlias Projection
	aux := struct {
		*projectionAlias
		DaysRemaining *float64 `json:"daysRemaining"`
	}{projectionAlias: (*projectionAlias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.DaysRemaining != nil {
		p.DaysRemaining = *aux.DaysRemaining
	} else {
		p.DaysRemaining = math.Inf(1)
	}
	return nil
}

// Project extrapolates the effective weekly rate from the current value
// towards the target and produces a chartable forward projection.
//
// Resolution order: being within tolerance of the target always wins,
// regardless of trend; a zero effective rate yields an unbounded result
// rather than a fabricated estimate; a rate pointing away from the target is
// reported as wrong direction instead of a nonsensical date.
func Project(params ProjectParams) (*Projection, error) {
	for name, v := range map[string]float64{
		"startValue":         params.StartValue,
		"currentValue":       params.CurrentValue,
		"targetValue":        params.TargetValue,
		"measuredWeeklyRate": params.MeasuredWeeklyRate,
		"fallbackWeeklyRate": params.FallbackWeeklyRate,
	} {
		if !isFinite(v) {
			return nil, fmt.Errorf("%s: %w", name, ErrInvalidValue)
		}
	}

	tolerance := params.AchievedTolerance
	if tolerance == 0 {
		tolerance = DefaultAchievedTolerance
	}
	horizonCap := params.HorizonCapWeeks
	if horizonCap == 0 {
		horizonCap = DefaultHorizonCapWeeks
	}

	projection := &Projection{
		CurrentValue:       params.CurrentValue,
		GoalValue:          params.TargetValue,
		StartValue:         params.StartValue,
		ProgressPercentage: ScoreProgress(params.StartValue, params.CurrentValue, params.TargetValue),
	}

	diff := params.TargetValue - params.CurrentValue
	if math.Abs(diff) < tolerance {
		now := params.Now
		projection.Achieved = true
		projection.ProjectedDate = &now
		return projection, nil
	}

	effectiveRate := params.MeasuredWeeklyRate
	if effectiveRate == 0 {
		effectiveRate = params.FallbackWeeklyRate
	}

	if effectiveRate == 0 {
		// nothing to extrapolate from
		projection.DaysRemaining = math.Inf(1)
		return projection, nil
	}

	if diff*effectiveRate < 0 {
		// trending away from the target
		projection.WrongDirection = true
		projection.DaysRemaining = math.Inf(1)
		projection.WeeklyRate = roundTo1Decimal(effectiveRate)
		return projection, nil
	}

	weeksNeeded := math.Abs(diff / effectiveRate)
	daysNeeded := int(math.Round(weeksNeeded * 7))
	projectedDate := params.Now.AddDate(0, 0, daysNeeded)

	projection.WeeklyRate = effectiveRate
	projection.DaysRemaining = float64(daysNeeded)
	projection.ProjectedDate = &projectedDate

	lastWeek := int(math.Floor(weeksNeeded))
	if lastWeek > horizonCap {
		lastWeek = horizonCap
	}
	projection.DataPoints = make([]DataPoint, 0, lastWeek+1)
	for week := 0; week <= lastWeek; week++ {
		projection.DataPoints = append(projection.DataPoints, DataPoint{
			Date:  params.Now.AddDate(0, 0, 7*week),
			Value: roundTo1Decimal(params.CurrentValue + effectiveRate*float64(week)),
		})
	}

	return projection, nil
}
