package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/mesoplan/internal/periodization/training"
	"github.com/2beens/mesoplan/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const exerciseSelect = `
	SELECT e.id, e.name, e.category,
		COALESCE(
			array_agg(emg.muscle_group_id ORDER BY emg.muscle_group_id)
				FILTER (WHERE emg.muscle_group_id IS NOT NULL),
			'{}'
		)
	FROM exercise e
	LEFT JOIN exercise_muscle_group emg ON emg.exercise_id = e.id
`

func scanExercise(row pgx.Row) (*Exercise, error) {
	e := &Exercise{}
	if err := row.Scan(&e.ID, &e.Name, &e.Category, &e.MuscleGroups); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", id))

	e, err := scanExercise(r.db.QueryRow(ctx, exerciseSelect+`
		WHERE e.id = $1
		GROUP BY e.id
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, training.NotFoundf("exercise %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise %s: %w", id, err)
	}
	return e, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []*Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("muscle_group", params.MuscleGroup),
		attribute.String("category", string(params.Category)),
	)

	rows, err := r.db.Query(ctx, exerciseSelect+`
		WHERE ($1::text = '' OR e.category = $1)
		  AND ($2::text = '' OR EXISTS (
			SELECT 1 FROM exercise_muscle_group x
			WHERE x.exercise_id = e.id AND x.muscle_group_id = $2
		  ))
		GROUP BY e.id
		ORDER BY e.id
	`, string(params.Category), params.MuscleGroup)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]*Exercise, 0)
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (r *Repo) ListMuscleGroups(ctx context.Context) (_ []*MuscleGroup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.musclegroups")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name FROM muscle_group ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*MuscleGroup, 0)
	for rows.Next() {
		g := &MuscleGroup{}
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
