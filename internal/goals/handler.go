package goals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/goalpost/internal/progress"
	"github.com/2beens/goalpost/internal/telemetry/metrics"
	"github.com/2beens/goalpost/internal/telemetry/tracing"
	"github.com/2beens/goalpost/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=goals_test

type goalsService interface {
	CreateGoal(ctx context.Context, goal Goal) (*Goal, error)
	GetGoal(ctx context.Context, id int) (*Goal, error)
	ListGoals(ctx context.Context) ([]Goal, error)
	DeleteGoal(ctx context.Context, id int) error
	AddCheckpoint(ctx context.Context, goalID int, value float64, timestamp time.Time) (*Goal, error)
	ListCheckpoints(ctx context.Context, goalID int) ([]progress.Checkpoint, error)
	Projection(ctx context.Context, goalID int, fallbackRate float64) (*progress.Projection, error)
	Schedule(ctx context.Context, goalID int) (*progress.ScheduleVerdict, error)
	WeeklyRate(ctx context.Context, goalID int) (float64, error)
}

type AddCheckpointRequest struct {
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

type DeleteGoalResponse struct {
	DeletedID int `json:"deletedId"`
}

type ListGoalsResponse struct {
	Goals []Goal `json:"goals"`
	Total int    `json:"total"`
}

type ListCheckpointsResponse struct {
	Checkpoints []progress.Checkpoint `json:"checkpoints"`
	Total       int                   `json:"total"`
}

type WeeklyRateResponse struct {
	WeeklyRate float64 `json:"weeklyRate"`
}

type Handler struct {
	service goalsService
	metrics *metrics.Manager
}

func NewHandler(service goalsService, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
	}
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.create")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var goal Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Tracef("new goal, unmarshal json params: %s", err)
		http.Error(w, "add goal failed", http.StatusBadRequest)
		return
	}

	if err := goal.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	addedGoal, err := handler.service.CreateGoal(ctx, goal)
	if err != nil {
		log.Errorf("failed to add new goal [%s]: %s", goal.Name, err)
		http.Error(w, "error, failed to add new goal", http.StatusInternalServerError)
		return
	}

	addedGoalJson, err := json.Marshal(addedGoal)
	if err != nil {
		log.Errorf("failed to marshal new goal: %s", err)
		http.Error(w, "error, failed to add new goal", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterGoalsCreated.Inc()

	log.Debugf("new goal added: %s", addedGoalJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedGoalJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.get")
	defer span.End()

	id, ok := goalIDFromRequest(w, r)
	if !ok {
		return
	}

	goal, err := handler.service.GetGoal(ctx, id)
	if err != nil && !errors.Is(err, ErrGoalNotFound) {
		log.Errorf("failed to get goal %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrGoalNotFound) {
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	}

	goalJson, err := json.Marshal(goal)
	if err != nil {
		log.Errorf("failed to marshal goal: %s", err)
		http.Error(w, "failed to marshal goal", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, goalJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.list")
	defer span.End()

	goals, err := handler.service.ListGoals(ctx)
	if err != nil {
		log.Errorf("list goals error: %s", err)
		http.Error(w, "failed to get goals", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListGoalsResponse{
		Goals: goals,
		Total: len(goals),
	})
	if err != nil {
		log.Errorf("marshal goals error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.delete")
	defer span.End()

	id, ok := goalIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := handler.service.DeleteGoal(ctx, id); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete goal %d: %s", id, err)
		http.Error(w, "goal not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteGoalResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleAddCheckpoint(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.checkpoint.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id, ok := goalIDFromRequest(w, r)
	if !ok {
		return
	}

	var req AddCheckpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new checkpoint, unmarshal json params: %s", err)
		http.Error(w, "add checkpoint failed", http.StatusBadRequest)
		return
	}

	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}

	goal, err := handler.service.AddCheckpoint(ctx, id, req.Value, req.Timestamp)
	switch {
	case errors.Is(err, ErrGoalNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	case errors.Is(err, progress.ErrInvalidValue):
		http.Error(w, "invalid checkpoint value", http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("failed to add checkpoint for goal %d: %s", id, err)
		http.Error(w, "error, failed to add checkpoint", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterCheckpoints.Inc()
	if goal.Completed {
		handler.metrics.CounterGoalsCompleted.Inc()
	}

	goalJson, err := json.Marshal(goal)
	if err != nil {
		log.Errorf("failed to marshal goal after checkpoint: %s", err)
		http.Error(w, "error, failed to add checkpoint", http.StatusInternalServerError)
		return
	}

	log.Debugf("new checkpoint for goal %d: value %f", id, req.Value)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, goalJson, http.StatusCreated)
}

func (handler *Handler) HandleListCheckpoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.checkpoint.list")
	defer span.End()

	id, ok := goalIDFromRequest(w, r)
	if !ok {
		return
	}

	checkpoints, err := handler.service.ListCheckpoints(ctx, id)
	if err != nil {
		log.Errorf("list checkpoints for goal %d: %s", id, err)
		http.Error(w, "failed to get checkpoints", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListCheckpointsResponse{
		Checkpoints: checkpoints,
		Total:       len(checkpoints),
	})
	if err != nil {
		log.Errorf("marshal checkpoints error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleProjection(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.projection")
	defer span.End()

	id, ok := goalIDFromRequest(w, r)
	if !ok {
		return
	}

	fallbackRate := float64(0)
	if fallbackRateStr := r.URL.Query().Get("fallback_rate"); fallbackRateStr != "" {
		var err error
		fallbackRate, err = strconv.ParseFloat(fallbackRateStr, 64)
		if err != nil {
			http.Error(w, "failed to parse fallback_rate param", http.StatusBadRequest)
			return
		}
	}

	projection, err := handler.service.Projection(ctx, id, fallbackRate)
	switch {
	case errors.Is(err, ErrGoalNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	case errors.Is(err, progress.ErrInvalidValue):
		http.Error(w, "invalid projection input", http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("failed to get projection for goal %d: %s", id, err)
		http.Error(w, "failed to get projection", http.StatusInternalServerError)
		return
	}

	projectionJson, err := json.Marshal(projection)
	if err != nil {
		log.Errorf("failed to marshal projection: %s", err)
		http.Error(w, "failed to marshal projection", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterProjections.Inc()
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, projectionJson, http.StatusOK)
}

func (handler *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.schedule")
	defer span.End()

	id, ok := goalIDFromRequest(w, r)
	if !ok {
		return
	}

	verdict, err := handler.service.Schedule(ctx, id)
	switch {
	case errors.Is(err, ErrGoalNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrNoTargetDate):
		http.Error(w, "goal has no target date", http.StatusBadRequest)
		return
	case errors.Is(err, progress.ErrInvalidValue):
		http.Error(w, "invalid schedule input", http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("failed to get schedule verdict for goal %d: %s", id, err)
		http.Error(w, "failed to get schedule verdict", http.StatusInternalServerError)
		return
	}

	verdictJson, err := json.Marshal(verdict)
	if err != nil {
		log.Errorf("failed to marshal schedule verdict: %s", err)
		http.Error(w, "failed to marshal schedule verdict", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, verdictJson, http.StatusOK)
}

func (handler *Handler) HandleWeeklyRate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.weeklyrate")
	defer span.End()

	id, ok := goalIDFromRequest(w, r)
	if !ok {
		return
	}

	weeklyRate, err := handler.service.WeeklyRate(ctx, id)
	if err != nil {
		log.Errorf("failed to get weekly rate for goal %d: %s", id, err)
		http.Error(w, "failed to get weekly rate", http.StatusInternalServerError)
		return
	}

	rateJson, err := json.Marshal(WeeklyRateResponse{
		WeeklyRate: weeklyRate,
	})
	if err != nil {
		log.Errorf("failed to marshal weekly rate: %s", err)
		http.Error(w, "failed to marshal weekly rate", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, rateJson, http.StatusOK)
}

func goalIDFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
