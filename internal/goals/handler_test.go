package goals_test

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/goalpost/internal/goals"
	"github.com/2beens/goalpost/internal/progress"
	"github.com/2beens/goalpost/internal/telemetry/metrics"
)

func testRouterAndService(t *testing.T) (*mux.Router, *MockgoalsService, *metrics.Manager) {
	t.Helper()

	ctrl := gomock.NewController(t)
	serviceMock := NewMockgoalsService(ctrl)
	metricsManager := metrics.NewTestManager()
	handler := goals.NewHandler(serviceMock, metricsManager)

	r := mux.NewRouter()
	r.HandleFunc("/goals", handler.HandleCreate).Methods("POST")
	r.HandleFunc("/goals", handler.HandleList).Methods("GET")
	r.HandleFunc("/goals/{id}", handler.HandleGet).Methods("GET")
	r.HandleFunc("/goals/{id}", handler.HandleDelete).Methods("DELETE")
	r.HandleFunc("/goals/{id}/checkpoints", handler.HandleAddCheckpoint).Methods("POST")
	r.HandleFunc("/goals/{id}/checkpoints", handler.HandleListCheckpoints).Methods("GET")
	r.HandleFunc("/goals/{id}/projection", handler.HandleProjection).Methods("GET")
	r.HandleFunc("/goals/{id}/schedule", handler.HandleSchedule).Methods("GET")
	r.HandleFunc("/goals/{id}/rate", handler.HandleWeeklyRate).Methods("GET")

	return r, serviceMock, metricsManager
}

func TestHandler_Create(t *testing.T) {
	r, serviceMock, metricsManager := testRouterAndService(t)

	serviceMock.EXPECT().
		CreateGoal(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, goal goals.Goal) (*goals.Goal, error) {
			assert.Equal(t, "get to 85", goal.Name)
			goal.ID = 1
			goal.CurrentValue = goal.StartValue
			return &goal, nil
		})

	req := httptest.NewRequest("POST", "/goals", strings.NewReader(
		`{"type":"weight","name":"get to 85","unit":"kg","startValue":95,"targetValue":85}`,
	))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":1`)
	assert.Contains(t, rr.Body.String(), `"name":"get to 85"`)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterGoalsCreated))
}

func TestHandler_Create_InvalidContentType(t *testing.T) {
	r, _, _ := testRouterAndService(t)

	req := httptest.NewRequest("POST", "/goals", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid content type")
}

func TestHandler_Create_InvalidGoal(t *testing.T) {
	r, _, _ := testRouterAndService(t)

	req := httptest.NewRequest("POST", "/goals", strings.NewReader(
		`{"type":"weight","unit":"kg","startValue":95,"targetValue":85}`,
	))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "name empty")
}

func TestHandler_Get(t *testing.T) {
	r, serviceMock, _ := testRouterAndService(t)

	serviceMock.EXPECT().
		GetGoal(gomock.Any(), 5).
		Return(&goals.Goal{ID: 5, Name: "read 30 books", Type: goals.GoalTypeCustom}, nil)

	req := httptest.NewRequest("GET", "/goals/5", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"read 30 books"`)
}

func TestHandler_Get_NotFound(t *testing.T) {
	r, serviceMock, _ := testRouterAndService(t)

	serviceMock.EXPECT().
		GetGoal(gomock.Any(), 42).
		Return(nil, fmt.Errorf("get goal: %w", goals.ErrGoalNotFound))

	req := httptest.NewRequest("GET", "/goals/42", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_Get_InvalidID(t *testing.T) {
	r, _, _ := testRouterAndService(t)

	req := httptest.NewRequest("GET", "/goals/nan", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "id NaN")
}

func TestHandler_List(t *testing.T) {
	r, serviceMock, _ := testRouterAndService(t)

	serviceMock.EXPECT().
		ListGoals(gomock.Any()).
		Return([]goals.Goal{
			{ID: 1, Name: "goal one"},
			{ID: 2, Name: "goal two"},
		}, nil)

	req := httptest.NewRequest("GET", "/goals", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":2`)
	assert.Contains(t, rr.Body.String(), `"goal one"`)
}

func TestHandler_Delete(t *testing.T) {
	r, serviceMock, _ := testRouterAndService(t)

	serviceMock.EXPECT().DeleteGoal(gomock.Any(), 3).Return(nil)

	req := httptest.NewRequest("DELETE", "/goals/3", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"deletedId":3}`, rr.Body.String())
}

func TestHandler_Delete_NotFound(t *testing.T) {
	r, serviceMock, _ := testRouterAndService(t)

	serviceMock.EXPECT().DeleteGoal(gomock.Any(), 3).Return(goals.ErrGoalNotFound)

	req := httptest.NewRequest("DELETE", "/goals/3", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_AddCheckpoint(t *testing.T) {
	r, serviceMock, metricsManager := testRouterAndService(t)

	checkpointTime := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)
	serviceMock.EXPECT().
		AddCheckpoint(gomock.Any(), 2, 186.0, checkpointTime).
		Return(&goals.Goal{ID: 2, CurrentValue: 186, Completed: false}, nil)

	req := httptest.NewRequest("POST", "/goals/2/checkpoints", strings.NewReader(
		`{"value":186,"timestamp":"2024-03-11T08:00:00Z"}`,
	))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"currentValue":186`)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterCheckpoints))
	assert.Equal(t, float64(0), testutil.ToFloat64(metricsManager.CounterGoalsCompleted))
}

func TestHandler_AddCheckpoint_CompletesGoal(t *testing.T) {
	r, serviceMock, metricsManager := testRouterAndService(t)

	serviceMock.EXPECT().
		AddCheckpoint(gomock.Any(), 2, 150.0, gomock.Any()).
		Return(&goals.Goal{ID: 2, CurrentValue: 150, Completed: true}, nil)

	// no timestamp given, the handler defaults it to now
	req := httptest.NewRequest("POST", "/goals/2/checkpoints", strings.NewReader(`{"value":150}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"completed":true`)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterGoalsCompleted))
}

func TestHandler_AddCheckpoint_InvalidValue(t *testing.T) {
	r, serviceMock, _ := testRouterAndService(t)

	serviceMock.EXPECT().
		AddCheckpoint(gomock.Any(), 2, gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("checkpoint: %w", progress.ErrInvalidValue))

	req := httptest.NewRequest("POST", "/goals/2/checkpoints", strings.NewReader(`{"value":186}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid checkpoint value")
}

func TestHandler_ListCheckpoints(t *testing.T) {
	r, serviceMock, _ := testRouterAndService(t)

	serviceMock.EXPECT().
		ListCheckpoints(gomock.Any(), 2).
		Return([]progress.Checkpoint{
			{Timestamp: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), Value: 190},
			{Timestamp: time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC), Value: 188},
		}, nil)

	req := httptest.NewRequest("GET", "/goals/2/checkpoints", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":2`)
	assert.Contains(t, rr.Body.String(), `"value":190`)
}

func TestHandler_Projection(t *testing.T) {
	r, serviceMock, metricsManager := testRouterAndService(t)

	projectedDate := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	serviceMock.EXPECT().
		Projection(gomock.Any(), 2, -0.5).
		Return(&progress.Projection{
			CurrentValue:       186,
			GoalValue:          150,
			StartValue:         190,
			WeeklyRate:         -2.8,
			DaysRemaining:      90,
			ProjectedDate:      &projectedDate,
			ProgressPercentage: 10,
		}, nil)

	req := httptest.NewRequest("GET", "/goals/2/projection?fallback_rate=-0.5", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"daysRemaining":90`)
	assert.Contains(t, rr.Body.String(), `"progressPercentage":10`)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterProjections))
}

func TestHandler_Projection_NoEstimate(t *testing.T) {
	r, serviceMock, _ := testRouterAndService(t)

	serviceMock.EXPECT().
		Projection(gomock.Any(), 2, 0.0).
		Return(&progress.Projection{
			CurrentValue:  186,
			GoalValue:     150,
			StartValue:    190,
			DaysRemaining: math.Inf(1),
		}, nil)

	req := httptest.NewRequest("GET", "/goals/2/projection", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"daysRemaining":null`)
	assert.Contains(t, rr.Body.String(), `"projectedDate":null`)
}

func TestHandler_Projection_InvalidFallbackRate(t *testing.T) {
	r, _, _ := testRouterAndService(t)

	req := httptest.NewRequest("GET", "/goals/2/projection?fallback_rate=two", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "fallback_rate")
}

func TestHandler_Schedule(t *testing.T) {
	r, serviceMock, _ := testRouterAndService(t)

	projectedDate := time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC)
	daysNeeded := 10
	serviceMock.EXPECT().
		Schedule(gomock.Any(), 2).
		Return(&progress.ScheduleVerdict{
			ProjectedDate: &projectedDate,
			DaysNeeded:    &daysNeeded,
			DailyRate:     -0.5,
			OnTrack:       true,
			Message:       "on track to hit the target by May 20, 2024",
		}, nil)

	req := httptest.NewRequest("GET", "/goals/2/schedule", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"onTrack":true`)
	assert.Contains(t, rr.Body.String(), "May 20, 2024")
}

func TestHandler_Schedule_NoTargetDate(t *testing.T) {
	r, serviceMock, _ := testRouterAndService(t)

	serviceMock.EXPECT().Schedule(gomock.Any(), 2).Return(nil, goals.ErrNoTargetDate)

	req := httptest.NewRequest("GET", "/goals/2/schedule", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "no target date")
}

func TestHandler_WeeklyRate(t *testing.T) {
	r, serviceMock, _ := testRouterAndService(t)

	serviceMock.EXPECT().WeeklyRate(gomock.Any(), 2).Return(-2.8, nil)

	req := httptest.NewRequest("GET", "/goals/2/rate", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"weeklyRate":-2.8}`, rr.Body.String())
}
