package landmarks

import (
	"context"
	"fmt"

	"github.com/2beens/mesoplan/internal/periodization/training"
	"github.com/2beens/mesoplan/internal/telemetry/tracing"
	"github.com/2beens/mesoplan/pkg"

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

const landmarkColumns = `user_id, muscle_group_id, mev, mav, mrv, recovery_level, updated_at`

func collectLandmarks(rows pgx.Rows) ([]*VolumeLandmark, error) {
	defer rows.Close()

	landmarks := make([]*VolumeLandmark, 0)
	for rows.Next() {
		l := &VolumeLandmark{}
		if err := rows.Scan(&l.UserID, &l.MuscleGroupID, &l.MEV, &l.MAV, &l.MRV, &l.RecoveryLevel, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		landmarks = append(landmarks, l)
	}
	return landmarks, rows.Err()
}

func (r *Repo) ListForUser(ctx context.Context, userID int) (_ []*VolumeLandmark, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.landmarks.listforuser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(ctx, `
		SELECT `+landmarkColumns+`
		FROM volume_landmark
		WHERE user_id = $1
		ORDER BY muscle_group_id
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectLandmarks(rows)
}

func (r *Repo) ListForMuscleGroups(ctx context.Context, userID int, muscleGroupIDs []string) (_ []*VolumeLandmark, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.landmarks.listformusclegroups")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.StringSlice("muscle_groups", muscleGroupIDs))

	if len(muscleGroupIDs) == 0 {
		return []*VolumeLandmark{}, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+landmarkColumns+`
		FROM volume_landmark
		WHERE user_id = $1 AND muscle_group_id = ANY($2)
		ORDER BY muscle_group_id
	`, userID, muscleGroupIDs)
	if err != nil {
		return nil, err
	}
	return collectLandmarks(rows)
}

func (r *Repo) Upsert(ctx context.Context, l VolumeLandmark) (_ *VolumeLandmark, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.landmarks.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", l.UserID), attribute.String("muscle_group", l.MuscleGroupID))

	err = r.db.QueryRow(ctx, `
		INSERT INTO volume_landmark (user_id, muscle_group_id, mev, mav, mrv, recovery_level, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (user_id, muscle_group_id) DO UPDATE
		SET mev = EXCLUDED.mev, mav = EXCLUDED.mav, mrv = EXCLUDED.mrv,
			recovery_level = EXCLUDED.recovery_level, updated_at = now()
		RETURNING updated_at
	`, l.UserID, l.MuscleGroupID, l.MEV, l.MAV, l.MRV, l.RecoveryLevel).Scan(&l.UpdatedAt)
	if pkg.IsForeignKeyViolationError(err) {
		return nil, training.NotFoundf("muscle group %s", l.MuscleGroupID)
	}
	if pkg.IsCheckViolationError(err) {
		return nil, training.Validationf("landmarks for %s must satisfy 0 <= mev <= mav <= mrv", l.MuscleGroupID)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert landmark: %w", err)
	}
	return &l, nil
}

func (r *Repo) SetRecoveryLevel(ctx context.Context, userID int, muscleGroupID string, level float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.landmarks.setrecovery")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("muscle_group", muscleGroupID),
		attribute.Float64("recovery_level", level),
	)

	tag, err := r.db.Exec(ctx, `
		UPDATE volume_landmark
		SET recovery_level = $1, updated_at = now()
		WHERE user_id = $2 AND muscle_group_id = $3
	`, level, userID, muscleGroupID)
	if err != nil {
		return fmt.Errorf("set recovery level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return training.NotFoundf("landmark %s for user %d", muscleGroupID, userID)
	}
	return nil
}
