package recommender

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/mesoplan/internal/telemetry/tracing"
)

type CheckInRepo struct {
	db *pgxpool.Pool
}

func NewCheckInRepo(db *pgxpool.Pool) *CheckInRepo {
	return &CheckInRepo{
		db: db,
	}
}

const checkInColumns = `id, user_id, date, energy, hunger, sleep, stress, cravings, adherence, created_at`

func scanCheckIn(row pgx.Row) (*CheckIn, error) {
	var c CheckIn
	if err := row.Scan(
		&c.ID, &c.UserID, &c.Date, &c.Energy, &c.Hunger, &c.Sleep,
		&c.Stress, &c.Cravings, &c.Adherence, &c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CheckInRepo) Add(ctx context.Context, c CheckIn) (_ *CheckIn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recommender.checkin.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", c.UserID))

	added, err := scanCheckIn(r.db.QueryRow(ctx, `
		INSERT INTO check_in (user_id, date, energy, hunger, sleep, stress, cravings, adherence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+checkInColumns,
		c.UserID, c.Date, c.Energy, c.Hunger, c.Sleep, c.Stress, c.Cravings, c.Adherence,
	))
	if err != nil {
		return nil, fmt.Errorf("insert check-in: %w", err)
	}
	return added, nil
}

// List returns the user's check-ins dated in [from, to], oldest first.
func (r *CheckInRepo) List(ctx context.Context, userID int, from, to time.Time) (_ []*CheckIn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recommender.checkin.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(ctx, `
		SELECT `+checkInColumns+`
		FROM check_in
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, id
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query check-ins: %w", err)
	}
	defer rows.Close()

	checkIns := make([]*CheckIn, 0)
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan check-in: %w", err)
		}
		checkIns = append(checkIns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate check-ins: %w", err)
	}
	return checkIns, nil
}
