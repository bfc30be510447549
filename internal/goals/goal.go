package goals

import (
	"errors"
	"math"
	"time"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

// GoalType can be one of:
//   - weight
//   - habit
//   - custom
type GoalType string

const (
	GoalTypeWeight GoalType = "weight"
	GoalTypeHabit  GoalType = "habit"
	GoalTypeCustom GoalType = "custom"
)

func (gt GoalType) String() string {
	return string(gt)
}

func (gt GoalType) IsValid() bool {
	switch gt {
	case GoalTypeWeight, GoalTypeHabit, GoalTypeCustom:
		return true
	default:
		return false
	}
}

// Goal is a tracked numeric target, e.g. "get down to 85 kilos" or
// "read 30 books". The direction of the journey comes from the values
// themselves: a target below the start means the number should go down.
type Goal struct {
	ID           int        `json:"id"`
	Type         GoalType   `json:"type"`
	Name         string     `json:"name"`
	Unit         string     `json:"unit"`
	StartValue   float64    `json:"startValue"`
	CurrentValue float64    `json:"currentValue"`
	TargetValue  float64    `json:"targetValue"`
	StartDate    time.Time  `json:"startDate"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	Completed    bool       `json:"completed"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ReachedTarget says whether the given observation meets or passes the
// target, in the goal's own direction.
func (g *Goal) ReachedTarget(value float64) bool {
	if g.TargetValue < g.StartValue {
		return value <= g.TargetValue
	}
	return value >= g.TargetValue
}

func (g *Goal) Validate() error {
	if g.Name == "" {
		return errors.New("goal name empty")
	}
	if !g.Type.IsValid() {
		return errors.New("invalid goal type")
	}
	if math.IsNaN(g.StartValue) || math.IsInf(g.StartValue, 0) {
		return errors.New("invalid start value")
	}
	if math.IsNaN(g.TargetValue) || math.IsInf(g.TargetValue, 0) {
		return errors.New("invalid target value")
	}
	return nil
}
