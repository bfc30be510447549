package goals

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/goalpost/internal/progress"
	"github.com/2beens/goalpost/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Repo persists goals and their checkpoint series:
//
//	goal(id, type, name, unit, start_value, current_value, target_value,
//	     start_date, target_date, completed, created_at)
//	goal_checkpoint(id, goal_id, value, timestamp)
//
// Checkpoints are append-only; the goal row carries the derived current
// value and completion flag.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO goal
				(type, name, unit, start_value, current_value, target_value, start_date, target_date, completed, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id;`,
		goal.Type, goal.Name, goal.Unit,
		goal.StartValue, goal.CurrentValue, goal.TargetValue,
		goal.StartDate, goal.TargetDate, goal.Completed, goal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("goal.id", id))

	goal.ID = id
	return &goal, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	goal := &Goal{}
	err = r.db.
		QueryRow(ctx, `
			SELECT id, type, name, unit, start_value, current_value, target_value, start_date, target_date, completed, created_at
			FROM goal
			WHERE id = $1;
		`, id).
		Scan(
			&goal.ID, &goal.Type, &goal.Name, &goal.Unit,
			&goal.StartValue, &goal.CurrentValue, &goal.TargetValue,
			&goal.StartDate, &goal.TargetDate, &goal.Completed, &goal.CreatedAt,
		)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (r *Repo) List(ctx context.Context) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, type, name, unit, start_value, current_value, target_value, start_date, target_date, completed, created_at
		FROM goal
		ORDER BY created_at DESC;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	goals := make([]Goal, 0)
	for rows.Next() {
		var goal Goal
		if err := rows.Scan(
			&goal.ID, &goal.Type, &goal.Name, &goal.Unit,
			&goal.StartValue, &goal.CurrentValue, &goal.TargetValue,
			&goal.StartDate, &goal.TargetDate, &goal.Completed, &goal.CreatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, nil
}

func (r *Repo) Update(ctx context.Context, goal *Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", goal.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE goal SET current_value = $1, target_value = $2, target_date = $3, completed = $4 WHERE id = $5;`,
		goal.CurrentValue, goal.TargetValue, goal.TargetDate, goal.Completed, goal.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	// checkpoints go first, they hang off the goal row
	if _, err := r.db.Exec(ctx, `DELETE FROM goal_checkpoint WHERE goal_id = $1;`, id); err != nil {
		return err
	}

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM goal WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) AddCheckpoint(ctx context.Context, goalID int, checkpoint progress.Checkpoint) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.checkpoint.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("goal.id", goalID))

	var id int
	err = r.db.
		QueryRow(ctx, `
			INSERT INTO goal_checkpoint (goal_id, value, timestamp)
			VALUES ($1, $2, $3)
			RETURNING id;
		`, goalID, checkpoint.Value, checkpoint.Timestamp).
		Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repo) ListCheckpoints(ctx context.Context, goalID int) (_ []progress.Checkpoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.checkpoint.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("goal.id", goalID))

	rows, err := r.db.Query(ctx, `
		SELECT value, timestamp
		FROM goal_checkpoint
		WHERE goal_id = $1
		ORDER BY timestamp ASC;
	`, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	checkpoints := make([]progress.Checkpoint, 0)
	for rows.Next() {
		var c progress.Checkpoint
		if err := rows.Scan(&c.Value, &c.Timestamp); err != nil {
			return nil, err
		}
		checkpoints = append(checkpoints, c)
	}

	return checkpoints, nil
}

func (r *Repo) CheckpointsCount(ctx context.Context, goalID int) (int, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.checkpoint.count")
	defer span.End()

	var count int
	if err := r.db.
		QueryRow(ctx, `SELECT COUNT(*) FROM goal_checkpoint WHERE goal_id = $1;`, goalID).
		Scan(&count); err != nil {
		return -1, err
	}
	return count, nil
}
