package sessions

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/mesoplan/internal/periodization/defaults"
	"github.com/2beens/mesoplan/internal/periodization/training"
	"github.com/2beens/mesoplan/internal/telemetry/metrics"
	"github.com/2beens/mesoplan/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=sessions_mocks_test.go -package=sessions_test

type prescriber interface {
	ForExercise(ctx context.Context, userID int, exerciseID string) (defaults.Prescription, error)
}

// Customizer edits the exercises of one session and carries the edit into
// the later sessions of its mesocycle while the mesocycle is active.
type Customizer struct {
	store       training.Store
	defaults    prescriber
	invalidator training.Invalidator
	metrics     *metrics.Manager
}

func NewCustomizer(store training.Store, defaults prescriber, metricsManager *metrics.Manager) *Customizer {
	return &Customizer{
		store:    store,
		defaults: defaults,
		metrics:  metricsManager,
	}
}

// WithInvalidator sets what gets invalidated once a user logs training.
func (c *Customizer) WithInvalidator(inv training.Invalidator) *Customizer {
	c.invalidator = inv
	return c
}

// lockSession serializes edits: on the mesocycle when the session has one,
// on the session itself otherwise.
func lockSession(ctx context.Context, q training.Queries, s *training.Session) error {
	if s.MesocycleID != nil {
		return q.LockMesocycle(ctx, *s.MesocycleID)
	}
	return q.LockSession(ctx, s.ID)
}

// propagationTargets returns the uncompleted sessions of the source's active
// mesocycle dated strictly after it. Nil when nothing propagates.
func propagationTargets(ctx context.Context, q training.Queries, source *training.Session) ([]*training.Session, error) {
	if source.MesocycleID == nil {
		return nil, nil
	}
	m, err := q.GetMesocycle(ctx, *source.MesocycleID)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return nil, nil
	}

	later, err := q.ListSessions(ctx, training.ListSessionsParams{
		MesocycleID: source.MesocycleID,
		After:       &source.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("list later sessions: %w", err)
	}

	targets := make([]*training.Session, 0, len(later))
	for _, s := range later {
		if s.ID == source.ID || s.IsCompleted || !training.IsFuture(s, source) {
			continue
		}
		targets = append(targets, s)
	}
	return targets, nil
}

// insertEntry puts e at position in the session, shifting the rows at and
// after it. Positions past the end append.
func insertEntry(ctx context.Context, q training.Queries, sessionID int, position *int, e training.SessionExercise) (*training.SessionExercise, error) {
	entries, err := q.ListSessionExercises(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session %d exercises: %w", sessionID, err)
	}

	e.SessionID = sessionID
	e.OrderIndex = len(entries) + 1
	if position != nil && *position <= len(entries) {
		if err := q.ShiftOrderIndexes(ctx, sessionID, *position, 1); err != nil {
			return nil, fmt.Errorf("shift session %d order: %w", sessionID, err)
		}
		e.OrderIndex = *position
	}

	added, err := q.AddSessionExercise(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("add exercise to session %d: %w", sessionID, err)
	}
	return added, nil
}

// densify renumbers the remaining rows of a session to 1..n.
func densify(ctx context.Context, q training.Queries, sessionID int) error {
	entries, err := q.ListSessionExercises(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("list session %d exercises: %w", sessionID, err)
	}
	for i, e := range entries {
		if e.OrderIndex == i+1 {
			continue
		}
		e.OrderIndex = i + 1
		if err := q.UpdateSessionExercise(ctx, e); err != nil {
			return fmt.Errorf("reorder session %d: %w", sessionID, err)
		}
	}
	return nil
}

// AddExercise inserts exerciseID with smart defaults into the session, at
// insertPosition or at the end. While the mesocycle is active, the same row
// is added to every later session on the same weekday.
func (c *Customizer) AddExercise(ctx context.Context, sessionID int, exerciseID string, insertPosition *int) (added *training.SessionExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.add-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID), attribute.String("exercise.id", exerciseID))

	if insertPosition != nil && *insertPosition < 1 {
		return nil, training.Validationf("insert position %d must be at least 1", *insertPosition)
	}

	propagated := 0
	err = c.store.InTx(ctx, func(q training.Queries) error {
		session, err := q.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := lockSession(ctx, q, session); err != nil {
			return err
		}

		prescription, err := c.defaults.ForExercise(ctx, session.UserID, exerciseID)
		if err != nil {
			return err
		}
		row := training.SessionExercise{
			ExerciseID: exerciseID,
			Sets:       prescription.Sets,
			TargetReps: prescription.TargetReps,
			RestPeriod: prescription.RestPeriod,
		}

		added, err = insertEntry(ctx, q, session.ID, insertPosition, row)
		if err != nil {
			return err
		}

		targets, err := propagationTargets(ctx, q, session)
		if err != nil {
			return err
		}
		for _, target := range targets {
			if !training.SameSlot(session, target) {
				continue
			}
			if _, err := insertEntry(ctx, q, target.ID, insertPosition, row); err != nil {
				return err
			}
			propagated++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add exercise %s to session %d: %w", exerciseID, sessionID, err)
	}

	c.metrics.CounterPropagatedEdits.WithLabelValues("add").Add(float64(propagated))
	span.SetAttributes(attribute.Int("propagated", propagated))
	log.Debugf("session %d: added %s, propagated to %d sessions", sessionID, exerciseID, propagated)
	return added, nil
}

// RemoveExercise deletes the rows of exerciseID from the session and from
// every later uncompleted session of the active mesocycle, on any weekday.
// Completed rows are history and never removed.
func (c *Customizer) RemoveExercise(ctx context.Context, sessionID int, exerciseID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.remove-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID), attribute.String("exercise.id", exerciseID))

	propagated := 0
	err = c.store.InTx(ctx, func(q training.Queries) error {
		session, err := q.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := lockSession(ctx, q, session); err != nil {
			return err
		}

		entries, err := q.ListSessionExercises(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("list session %d exercises: %w", session.ID, err)
		}
		matches := matching(entries, exerciseID)
		if len(matches) == 0 {
			return training.NotFoundf("exercise %s in session %d", exerciseID, session.ID)
		}
		for _, e := range matches {
			if e.IsCompleted {
				return fmt.Errorf("remove entry %d: %w", e.ID, training.ErrCompletedEntryImmutable)
			}
		}
		if err := deleteEntries(ctx, q, session.ID, matches); err != nil {
			return err
		}

		targets, err := propagationTargets(ctx, q, session)
		if err != nil {
			return err
		}
		for _, target := range targets {
			entries, err := q.ListSessionExercises(ctx, target.ID)
			if err != nil {
				return fmt.Errorf("list session %d exercises: %w", target.ID, err)
			}
			removable := uncompleted(matching(entries, exerciseID))
			if len(removable) == 0 {
				continue
			}
			if err := deleteEntries(ctx, q, target.ID, removable); err != nil {
				return err
			}
			propagated++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove exercise %s from session %d: %w", exerciseID, sessionID, err)
	}

	c.metrics.CounterPropagatedEdits.WithLabelValues("remove").Add(float64(propagated))
	log.Debugf("session %d: removed %s, propagated to %d sessions", sessionID, exerciseID, propagated)
	return nil
}

// SubstituteExercise swaps oldExerciseID for newExerciseID in the session.
// Uncompleted rows take the defaults of the new exercise, completed rows
// keep their sets, reps and performance and only change exercise and rest.
// Later uncompleted sessions of the active mesocycle get the id swap, on
// any weekday.
func (c *Customizer) SubstituteExercise(ctx context.Context, sessionID int, oldExerciseID, newExerciseID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.substitute-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("session.id", sessionID),
		attribute.String("exercise.old", oldExerciseID),
		attribute.String("exercise.new", newExerciseID),
	)

	if newExerciseID == "" {
		return training.Validationf("new exercise id empty")
	}

	propagated := 0
	err = c.store.InTx(ctx, func(q training.Queries) error {
		session, err := q.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := lockSession(ctx, q, session); err != nil {
			return err
		}

		entries, err := q.ListSessionExercises(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("list session %d exercises: %w", session.ID, err)
		}
		matches := matching(entries, oldExerciseID)
		if len(matches) == 0 {
			return training.NotFoundf("exercise %s in session %d", oldExerciseID, session.ID)
		}

		prescription, err := c.defaults.ForExercise(ctx, session.UserID, newExerciseID)
		if err != nil {
			return err
		}
		for _, e := range matches {
			e.ExerciseID = newExerciseID
			e.RestPeriod = prescription.RestPeriod
			if !e.IsCompleted {
				e.Sets = prescription.Sets
				e.TargetReps = prescription.TargetReps
			}
			if err := q.UpdateSessionExercise(ctx, e); err != nil {
				return fmt.Errorf("substitute entry %d: %w", e.ID, err)
			}
		}

		targets, err := propagationTargets(ctx, q, session)
		if err != nil {
			return err
		}
		for _, target := range targets {
			entries, err := q.ListSessionExercises(ctx, target.ID)
			if err != nil {
				return fmt.Errorf("list session %d exercises: %w", target.ID, err)
			}
			swappable := uncompleted(matching(entries, oldExerciseID))
			for _, e := range swappable {
				e.ExerciseID = newExerciseID
				if err := q.UpdateSessionExercise(ctx, e); err != nil {
					return fmt.Errorf("substitute entry %d: %w", e.ID, err)
				}
			}
			if len(swappable) > 0 {
				propagated++
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("substitute %s with %s in session %d: %w", oldExerciseID, newExerciseID, sessionID, err)
	}

	c.metrics.CounterPropagatedEdits.WithLabelValues("substitute").Add(float64(propagated))
	log.Debugf("session %d: substituted %s with %s, propagated to %d sessions", sessionID, oldExerciseID, newExerciseID, propagated)
	return nil
}

// CompleteExercise logs the performance of one entry. An entry is
// completed once, later attempts fail.
func (c *Customizer) CompleteExercise(ctx context.Context, entryID int, performance training.Performance) (completed *training.SessionExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.complete-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("entry.id", entryID))

	if err := performance.Validate(); err != nil {
		return nil, err
	}

	userID := 0
	err = c.store.InTx(ctx, func(q training.Queries) error {
		entry, err := q.GetSessionExercise(ctx, entryID)
		if err != nil {
			return err
		}
		session, err := q.GetSession(ctx, entry.SessionID)
		if err != nil {
			return err
		}
		if err := lockSession(ctx, q, session); err != nil {
			return err
		}
		// re-read under the lock
		entry, err = q.GetSessionExercise(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.IsCompleted {
			return fmt.Errorf("entry %d: %w", entry.ID, training.ErrCompletedEntryImmutable)
		}

		entry.Weight = performance.Weight
		entry.ActualReps = performance.ActualReps
		entry.RPE = performance.RPE
		entry.RIR = performance.RIR
		entry.Notes = performance.Notes
		entry.IsCompleted = true
		if err := q.UpdateSessionExercise(ctx, entry); err != nil {
			return fmt.Errorf("complete entry %d: %w", entry.ID, err)
		}
		completed = entry
		userID = session.UserID
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("complete exercise: %w", err)
	}
	training.Invalidate(ctx, c.invalidator, userID)
	return completed, nil
}

// CompleteSession closes a session and totals the volume of its completed
// entries.
func (c *Customizer) CompleteSession(ctx context.Context, sessionID, durationMinutes int) (completed *training.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.complete-session")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))

	if durationMinutes < 0 {
		return nil, training.Validationf("duration %d must not be negative", durationMinutes)
	}

	err = c.store.InTx(ctx, func(q training.Queries) error {
		session, err := q.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := lockSession(ctx, q, session); err != nil {
			return err
		}
		if session.IsCompleted {
			return training.InvalidStatef("session %d already completed", session.ID)
		}

		entries, err := q.ListSessionExercises(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("list session %d exercises: %w", session.ID, err)
		}
		session.TotalVolume = 0
		for _, e := range entries {
			session.TotalVolume += e.Volume()
		}
		session.Duration = durationMinutes
		session.IsCompleted = true
		if err := q.UpdateSession(ctx, session); err != nil {
			return fmt.Errorf("update session %d: %w", session.ID, err)
		}
		session.Exercises = entries
		completed = session
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("complete session %d: %w", sessionID, err)
	}
	training.Invalidate(ctx, c.invalidator, completed.UserID)
	return completed, nil
}

// GetSession returns the session with its exercises in order.
func (c *Customizer) GetSession(ctx context.Context, sessionID int) (_ *training.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := c.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Exercises, err = c.store.ListSessionExercises(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session %d exercises: %w", sessionID, err)
	}
	return session, nil
}

func matching(entries []*training.SessionExercise, exerciseID string) []*training.SessionExercise {
	var matches []*training.SessionExercise
	for _, e := range entries {
		if e.ExerciseID == exerciseID {
			matches = append(matches, e)
		}
	}
	return matches
}

func uncompleted(entries []*training.SessionExercise) []*training.SessionExercise {
	var open []*training.SessionExercise
	for _, e := range entries {
		if !e.IsCompleted {
			open = append(open, e)
		}
	}
	return open
}

func deleteEntries(ctx context.Context, q training.Queries, sessionID int, entries []*training.SessionExercise) error {
	for _, e := range entries {
		if err := q.DeleteSessionExercise(ctx, e.ID); err != nil {
			return fmt.Errorf("delete entry %d: %w", e.ID, err)
		}
	}
	return densify(ctx, q, sessionID)
}
