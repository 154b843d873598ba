package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/mesoplan/internal/telemetry/tracing"
	"github.com/2beens/mesoplan/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// advisory lock namespaces
const (
	lockNamespaceMesocycle = 1
	lockNamespaceSession   = 2
)

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repo is the postgres Store. A Repo created by InTx is bound to its
// transaction and has no pool.
type Repo struct {
	pool *pgxpool.Pool
	db   dbtx
}

var _ Store = (*Repo)(nil)

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		db:   pool,
	}
}

func (r *Repo) InTx(ctx context.Context, fn func(q Queries) error) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.tx")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if r.pool == nil {
		// already inside a transaction
		return fn(r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
			if pkg.IsUniqueViolationError(err) {
				err = InvalidStatef("exercise order conflict: %s", err)
			}
		}
	}()

	return fn(&Repo{db: tx})
}

const mesocycleColumns = `id, user_id, name, start_date, total_weeks, current_week, phase,
	is_active, phase_changed_at, last_reviewed_week, created_at`

func scanMesocycle(row pgx.Row) (*Mesocycle, error) {
	m := &Mesocycle{}
	err := row.Scan(
		&m.ID, &m.UserID, &m.Name, &m.StartDate, &m.TotalWeeks, &m.CurrentWeek, &m.Phase,
		&m.IsActive, &m.PhaseChangedAt, &m.LastReviewedWeek, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Repo) GetMesocycle(ctx context.Context, id int) (_ *Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.mesocycle.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("mesocycle.id", id))

	m, err := scanMesocycle(r.db.QueryRow(ctx,
		`SELECT `+mesocycleColumns+` FROM mesocycle WHERE id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("mesocycle %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get mesocycle %d: %w", id, err)
	}
	return m, nil
}

func (r *Repo) GetActiveMesocycle(ctx context.Context, userID int) (_ *Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.mesocycle.getactive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	m, err := scanMesocycle(r.db.QueryRow(ctx, `
		SELECT `+mesocycleColumns+`
		FROM mesocycle
		WHERE user_id = $1 AND is_active
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("active mesocycle for user %d", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get active mesocycle: %w", err)
	}
	return m, nil
}

func (r *Repo) ListMesocycles(ctx context.Context, userID int) (_ []*Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.mesocycle.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(ctx, `
		SELECT `+mesocycleColumns+`
		FROM mesocycle
		WHERE user_id = $1
		ORDER BY start_date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mesocycles := make([]*Mesocycle, 0)
	for rows.Next() {
		m, err := scanMesocycle(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		mesocycles = append(mesocycles, m)
	}
	return mesocycles, rows.Err()
}

func (r *Repo) AddMesocycle(ctx context.Context, m Mesocycle) (_ *Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.mesocycle.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	added, err := scanMesocycle(r.db.QueryRow(ctx, `
		INSERT INTO mesocycle (user_id, name, start_date, total_weeks, current_week, phase, is_active, last_reviewed_week)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+mesocycleColumns,
		m.UserID, m.Name, Day(m.StartDate), m.TotalWeeks, m.CurrentWeek, m.Phase, m.IsActive, m.LastReviewedWeek,
	))
	if err != nil {
		return nil, fmt.Errorf("insert mesocycle: %w", err)
	}

	span.SetAttributes(attribute.Int("mesocycle.id", added.ID))
	return added, nil
}

func (r *Repo) UpdateMesocycle(ctx context.Context, m *Mesocycle) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.mesocycle.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("mesocycle.id", m.ID))

	tag, err := r.db.Exec(ctx, `
		UPDATE mesocycle
		SET name = $1, current_week = $2, phase = $3, is_active = $4,
			phase_changed_at = $5, last_reviewed_week = $6
		WHERE id = $7
	`,
		m.Name, m.CurrentWeek, m.Phase, m.IsActive,
		m.PhaseChangedAt, m.LastReviewedWeek,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("update mesocycle %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundf("mesocycle %d", m.ID)
	}
	return nil
}

func (r *Repo) DeactivateMesocycles(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.mesocycle.deactivate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	tag, err := r.db.Exec(ctx,
		`UPDATE mesocycle SET is_active = FALSE WHERE user_id = $1 AND is_active`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("deactivate mesocycles: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *Repo) LockMesocycle(ctx context.Context, id int) error {
	return r.advisoryLock(ctx, lockNamespaceMesocycle, id)
}

func (r *Repo) LockSession(ctx context.Context, id int) error {
	return r.advisoryLock(ctx, lockNamespaceSession, id)
}

func (r *Repo) advisoryLock(ctx context.Context, namespace, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.lock")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("lock.namespace", namespace), attribute.Int("lock.id", id))

	if r.pool != nil {
		return InvalidStatef("advisory lock requested outside of a transaction")
	}
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1::int, $2::int)`, namespace, id); err != nil {
		return fmt.Errorf("advisory lock (%d, %d): %w", namespace, id, err)
	}
	return nil
}

const sessionColumns = `id, user_id, mesocycle_id, date, name, is_completed, total_volume, duration`

func scanSession(row pgx.Row) (*Session, error) {
	s := &Session{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.MesocycleID, &s.Date, &s.Name, &s.IsCompleted, &s.TotalVolume, &s.Duration,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repo) GetSession(ctx context.Context, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.session.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", id))

	s, err := scanSession(r.db.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM workout_session WHERE id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("session %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	return s, nil
}

func (r *Repo) AddSession(ctx context.Context, s Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.session.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	added, err := scanSession(r.db.QueryRow(ctx, `
		INSERT INTO workout_session (user_id, mesocycle_id, date, name, is_completed, total_volume, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+sessionColumns,
		s.UserID, s.MesocycleID, Day(s.Date), s.Name, s.IsCompleted, s.TotalVolume, s.Duration,
	))
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	span.SetAttributes(attribute.Int("session.id", added.ID))
	return added, nil
}

func (r *Repo) UpdateSession(ctx context.Context, s *Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.session.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", s.ID))

	tag, err := r.db.Exec(ctx, `
		UPDATE workout_session
		SET mesocycle_id = $1, date = $2, name = $3, is_completed = $4, total_volume = $5, duration = $6
		WHERE id = $7
	`,
		s.MesocycleID, Day(s.Date), s.Name, s.IsCompleted, s.TotalVolume, s.Duration,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("update session %d: %w", s.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundf("session %d", s.ID)
	}
	return nil
}

func (r *Repo) ListSessions(ctx context.Context, params ListSessionsParams) (_ []*Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.session.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.MesocycleID != nil {
		span.SetAttributes(attribute.Int("mesocycle.id", *params.MesocycleID))
	}
	if params.UserID != nil {
		span.SetAttributes(attribute.Int("user.id", *params.UserID))
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_session
		WHERE ($1::int IS NULL OR user_id = $1)
		  AND ($2::int IS NULL OR mesocycle_id = $2)
		  AND ($3::date IS NULL OR date > $3)
		  AND ($4::date IS NULL OR date >= $4)
		  AND ($5::date IS NULL OR date <= $5)
		ORDER BY date, id
	`,
		params.UserID, params.MesocycleID,
		dayPtr(params.After), dayPtr(params.From), dayPtr(params.To),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

const sessionExerciseColumns = `id, session_id, exercise_id, order_index, sets, target_reps, rest_period,
	weight, actual_reps, rpe, rir, notes, is_completed`

func scanSessionExercise(row pgx.Row) (*SessionExercise, error) {
	e := &SessionExercise{}
	err := row.Scan(
		&e.ID, &e.SessionID, &e.ExerciseID, &e.OrderIndex, &e.Sets, &e.TargetReps, &e.RestPeriod,
		&e.Weight, &e.ActualReps, &e.RPE, &e.RIR, &e.Notes, &e.IsCompleted,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Repo) GetSessionExercise(ctx context.Context, id int) (_ *SessionExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sessionexercise.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("entry.id", id))

	e, err := scanSessionExercise(r.db.QueryRow(ctx,
		`SELECT `+sessionExerciseColumns+` FROM workout_exercise WHERE id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("session exercise %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session exercise %d: %w", id, err)
	}
	return e, nil
}

func (r *Repo) ListSessionExercises(ctx context.Context, sessionID int) (_ []*SessionExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sessionexercise.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))

	rows, err := r.db.Query(ctx, `
		SELECT `+sessionExerciseColumns+`
		FROM workout_exercise
		WHERE session_id = $1
		ORDER BY order_index, id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*SessionExercise, 0)
	for rows.Next() {
		e, err := scanSessionExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repo) AddSessionExercise(ctx context.Context, e SessionExercise) (_ *SessionExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sessionexercise.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", e.SessionID), attribute.String("exercise.id", e.ExerciseID))

	added, err := scanSessionExercise(r.db.QueryRow(ctx, `
		INSERT INTO workout_exercise
			(session_id, exercise_id, order_index, sets, target_reps, rest_period,
			 weight, actual_reps, rpe, rir, notes, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+sessionExerciseColumns,
		e.SessionID, e.ExerciseID, e.OrderIndex, e.Sets, e.TargetReps, e.RestPeriod,
		e.Weight, e.ActualReps, e.RPE, e.RIR, e.Notes, e.IsCompleted,
	))
	if pkg.IsForeignKeyViolationError(err) {
		return nil, NotFoundf("exercise %s", e.ExerciseID)
	}
	if err != nil {
		return nil, fmt.Errorf("insert session exercise: %w", err)
	}
	return added, nil
}

func (r *Repo) UpdateSessionExercise(ctx context.Context, e *SessionExercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sessionexercise.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("entry.id", e.ID))

	tag, err := r.db.Exec(ctx, `
		UPDATE workout_exercise
		SET exercise_id = $1, order_index = $2, sets = $3, target_reps = $4, rest_period = $5,
			weight = $6, actual_reps = $7, rpe = $8, rir = $9, notes = $10, is_completed = $11
		WHERE id = $12
	`,
		e.ExerciseID, e.OrderIndex, e.Sets, e.TargetReps, e.RestPeriod,
		e.Weight, e.ActualReps, e.RPE, e.RIR, e.Notes, e.IsCompleted,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("update session exercise %d: %w", e.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundf("session exercise %d", e.ID)
	}
	return nil
}

func (r *Repo) DeleteSessionExercise(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sessionexercise.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("entry.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_exercise WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session exercise %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundf("session exercise %d", id)
	}
	return nil
}

func (r *Repo) ShiftOrderIndexes(ctx context.Context, sessionID, from, delta int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sessionexercise.shift")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("session.id", sessionID),
		attribute.Int("from", from),
		attribute.Int("delta", delta),
	)

	// uq_workout_exercise_order is deferred, so intermediate duplicates are fine
	_, err = r.db.Exec(ctx, `
		UPDATE workout_exercise
		SET order_index = order_index + $1
		WHERE session_id = $2 AND order_index >= $3
	`, delta, sessionID, from)
	if err != nil {
		return fmt.Errorf("shift order indexes of session %d: %w", sessionID, err)
	}
	return nil
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := Day(*t)
	return &d
}

func (r *Repo) SetRecoveryLevel(ctx context.Context, userID int, muscleGroupID string, level float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.landmark.setrecovery")
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
		return NotFoundf("landmark %s for user %d", muscleGroupID, userID)
	}
	return nil
}
