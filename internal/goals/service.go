package goals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/goalpost/internal/progress"
	"github.com/2beens/goalpost/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=goals_test

var ErrNoTargetDate = errors.New("goal has no target date")

type goalsRepo interface {
	Add(ctx context.Context, goal Goal) (*Goal, error)
	Get(ctx context.Context, id int) (*Goal, error)
	List(ctx context.Context) ([]Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id int) error
	AddCheckpoint(ctx context.Context, goalID int, checkpoint progress.Checkpoint) (int, error)
	ListCheckpoints(ctx context.Context, goalID int) ([]progress.Checkpoint, error)
}

// Service owns all writes to a goal and its checkpoint series. Concurrent
// checkpoints for the same goal are serialized through a per-goal mutex, so
// the derived current value and completion flag never race.
type Service struct {
	repo  goalsRepo
	cache *ProjectionCache

	goalMutexes map[int]*sync.Mutex
	mutexesMu   sync.Mutex

	now func() time.Time
}

func NewService(repo goalsRepo) *Service {
	return &Service{
		repo:        repo,
		cache:       NewProjectionCache(),
		goalMutexes: make(map[int]*sync.Mutex),
		now:         time.Now,
	}
}

func (s *Service) goalMutex(goalID int) *sync.Mutex {
	s.mutexesMu.Lock()
	defer s.mutexesMu.Unlock()
	m, ok := s.goalMutexes[goalID]
	if !ok {
		m = &sync.Mutex{}
		s.goalMutexes[goalID] = m
	}
	return m
}

func (s *Service) CreateGoal(ctx context.Context, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = s.now()
	}
	if goal.StartDate.IsZero() {
		goal.StartDate = goal.CreatedAt
	}
	goal.CurrentValue = goal.StartValue
	goal.Completed = goal.ReachedTarget(goal.StartValue)

	addedGoal, err := s.repo.Add(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("add goal: %w", err)
	}

	// the starting value is the first observation of the series
	if _, err := s.repo.AddCheckpoint(ctx, addedGoal.ID, progress.Checkpoint{
		Timestamp: addedGoal.StartDate,
		Value:     addedGoal.StartValue,
	}); err != nil {
		return nil, fmt.Errorf("add initial checkpoint: %w", err)
	}

	log.Debugf("new goal created: %d [%s]", addedGoal.ID, addedGoal.Name)
	return addedGoal, nil
}

func (s *Service) GetGoal(ctx context.Context, id int) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goal, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return goal, nil
}

func (s *Service) ListGoals(ctx context.Context) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goals, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (s *Service) DeleteGoal(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

// AddCheckpoint records a new observation and refreshes the goal's derived
// state. The current value follows the newest checkpoint by timestamp, so a
// backfilled older observation never overwrites it.
func (s *Service) AddCheckpoint(ctx context.Context, goalID int, value float64, timestamp time.Time) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.checkpoint.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("goal.id", goalID))

	mutex := s.goalMutex(goalID)
	mutex.Lock()
	defer mutex.Unlock()

	goal, err := s.repo.Get(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	checkpoints, err := s.repo.ListCheckpoints(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	series, err := progress.AppendCheckpoint(checkpoints, value, timestamp)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.AddCheckpoint(ctx, goalID, progress.Checkpoint{
		Timestamp: timestamp,
		Value:     value,
	}); err != nil {
		return nil, fmt.Errorf("add checkpoint: %w", err)
	}

	latest := series[len(series)-1]
	goal.CurrentValue = latest.Value
	goal.Completed = goal.ReachedTarget(latest.Value)
	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}

	return goal, nil
}

func (s *Service) ListCheckpoints(ctx context.Context, goalID int) (_ []progress.Checkpoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.checkpoint.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	checkpoints, err := s.repo.ListCheckpoints(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}
	return checkpoints, nil
}

// Projection extrapolates the goal's recent trend into a chartable forward
// series. Results are cached on a digest of the inputs; any new checkpoint
// changes the digest and thus bypasses the cached entry.
func (s *Service) Projection(ctx context.Context, goalID int, fallbackRate float64) (_ *progress.Projection, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.projection")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("goal.id", goalID))

	goal, err := s.repo.Get(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	checkpoints, err := s.repo.ListCheckpoints(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	now := s.now()
	if cachedBytes := s.cache.Get(goal, checkpoints, fallbackRate, now); cachedBytes != nil {
		projection := &progress.Projection{}
		if err := json.Unmarshal(cachedBytes, projection); err != nil {
			log.Errorf("failed to unmarshal cached projection for goal %d: %s", goalID, err)
		} else {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return projection, nil
		}
	}

	projection, err := progress.Project(progress.ProjectParams{
		StartValue:         goal.StartValue,
		CurrentValue:       goal.CurrentValue,
		TargetValue:        goal.TargetValue,
		MeasuredWeeklyRate: progress.EstimateWeeklyRate(checkpoints),
		FallbackWeeklyRate: fallbackRate,
		Now:                now,
	})
	if err != nil {
		return nil, fmt.Errorf("project goal %d: %w", goalID, err)
	}

	if projectionBytes, err := json.Marshal(projection); err == nil {
		s.cache.Set(goal, checkpoints, fallbackRate, now, projectionBytes)
	} else {
		log.Errorf("failed to marshal projection for goal %d: %s", goalID, err)
	}

	return projection, nil
}

// Schedule judges the long-run trend against the goal's target date.
func (s *Service) Schedule(ctx context.Context, goalID int) (_ *progress.ScheduleVerdict, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.schedule")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("goal.id", goalID))

	goal, err := s.repo.Get(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	if goal.TargetDate == nil {
		return nil, ErrNoTargetDate
	}

	checkpoints, err := s.repo.ListCheckpoints(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	verdict, err := progress.EvaluateSchedule(checkpoints, goal.TargetValue, *goal.TargetDate, s.now())
	if err != nil {
		return nil, fmt.Errorf("evaluate schedule for goal %d: %w", goalID, err)
	}
	return verdict, nil
}

// WeeklyRate is the windowed charting trend of the goal's series.
func (s *Service) WeeklyRate(ctx context.Context, goalID int) (_ float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.weeklyrate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	checkpoints, err := s.repo.ListCheckpoints(ctx, goalID)
	if err != nil {
		return 0, fmt.Errorf("list checkpoints: %w", err)
	}
	return progress.EstimateWeeklyRate(checkpoints), nil
}
