package training

import (
	"context"
	"time"
)

type ListSessionsParams struct {
	UserID      *int
	MesocycleID *int
	// After is exclusive, From and To are inclusive calendar dates.
	After *time.Time
	From  *time.Time
	To    *time.Time
}

// Queries is the typed relational surface the engine runs against.
type Queries interface {
	GetMesocycle(ctx context.Context, id int) (*Mesocycle, error)
	GetActiveMesocycle(ctx context.Context, userID int) (*Mesocycle, error)
	ListMesocycles(ctx context.Context, userID int) ([]*Mesocycle, error)
	AddMesocycle(ctx context.Context, m Mesocycle) (*Mesocycle, error)
	UpdateMesocycle(ctx context.Context, m *Mesocycle) error
	DeactivateMesocycles(ctx context.Context, userID int) (int, error)
	// LockMesocycle and LockSession hold until the surrounding transaction ends.
	LockMesocycle(ctx context.Context, id int) error
	LockSession(ctx context.Context, id int) error

	GetSession(ctx context.Context, id int) (*Session, error)
	AddSession(ctx context.Context, s Session) (*Session, error)
	UpdateSession(ctx context.Context, s *Session) error
	ListSessions(ctx context.Context, params ListSessionsParams) ([]*Session, error)

	GetSessionExercise(ctx context.Context, id int) (*SessionExercise, error)
	ListSessionExercises(ctx context.Context, sessionID int) ([]*SessionExercise, error)
	AddSessionExercise(ctx context.Context, e SessionExercise) (*SessionExercise, error)
	UpdateSessionExercise(ctx context.Context, e *SessionExercise) error
	DeleteSessionExercise(ctx context.Context, id int) error
	// ShiftOrderIndexes adds delta to every order index >= from in the session.
	ShiftOrderIndexes(ctx context.Context, sessionID, from, delta int) error

	// SetRecoveryLevel writes a volume landmark's recovery level, so a weekly
	// review commits it together with the mesocycle it reviewed.
	SetRecoveryLevel(ctx context.Context, userID int, muscleGroupID string, level float64) error
}

// Store runs Queries either directly or inside one transaction.
type Store interface {
	Queries
	// InTx runs fn in a single transaction, rolled back when fn fails.
	InTx(ctx context.Context, fn func(q Queries) error) error
}
