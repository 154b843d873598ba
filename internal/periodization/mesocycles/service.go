package mesocycles

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/mesoplan/internal/periodization/defaults"
	"github.com/2beens/mesoplan/internal/periodization/training"
	"github.com/2beens/mesoplan/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=mesocycles_mocks_test.go -package=mesocycles_test

type prescriber interface {
	ForExercise(ctx context.Context, userID int, exerciseID string) (defaults.Prescription, error)
}

// PlannedDay is one recurring training day of the weekly template.
type PlannedDay struct {
	Weekday     time.Weekday `json:"weekday"`
	Name        string       `json:"name"`
	ExerciseIDs []string     `json:"exerciseIds"`
}

type CreateParams struct {
	UserID     int          `json:"userId"`
	Name       string       `json:"name"`
	StartDate  time.Time    `json:"startDate"`
	TotalWeeks int          `json:"totalWeeks"`
	Days       []PlannedDay `json:"days"`
}

func (p CreateParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return training.Validationf("mesocycle name empty")
	}
	if p.TotalWeeks < 1 {
		return training.Validationf("total weeks %d must be at least 1", p.TotalWeeks)
	}
	if p.StartDate.IsZero() {
		return training.Validationf("start date missing")
	}
	for _, d := range p.Days {
		if d.Weekday < time.Sunday || d.Weekday > time.Saturday {
			return training.Validationf("invalid weekday %d", d.Weekday)
		}
		if strings.TrimSpace(d.Name) == "" {
			return training.Validationf("planned day on %s has no name", d.Weekday)
		}
	}
	return nil
}

// dayInWeek returns the date of weekday in the given 0-based block week.
func dayInWeek(start time.Time, week int, weekday time.Weekday) time.Time {
	offset := (int(weekday) - int(start.Weekday()) + 7) % 7
	return training.Day(start).AddDate(0, 0, week*7+offset)
}

type Service struct {
	store       training.Store
	defaults    prescriber
	invalidator training.Invalidator
	now         func() time.Time
}

func NewService(store training.Store, defaults prescriber) *Service {
	return &Service{
		store:    store,
		defaults: defaults,
		now:      time.Now,
	}
}

// WithInvalidator sets what gets invalidated after a block of the user changes.
func (s *Service) WithInvalidator(inv training.Invalidator) *Service {
	s.invalidator = inv
	return s
}

// WithClock replaces the clock the current week is derived from.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) withCurrentWeek(m *training.Mesocycle) *training.Mesocycle {
	m.CurrentWeek = m.CurrentWeekAt(s.now())
	return m
}

// Create starts a new active block for the user, deactivating the previous
// one, and lays out the weekly template over every week of the block.
func (s *Service) Create(ctx context.Context, params CreateParams) (created *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID), attribute.Int("weeks", params.TotalWeeks))

	if err := params.Validate(); err != nil {
		return nil, err
	}

	prescriptions := map[string]defaults.Prescription{}
	for _, d := range params.Days {
		for _, exerciseID := range d.ExerciseIDs {
			if _, ok := prescriptions[exerciseID]; ok {
				continue
			}
			p, err := s.defaults.ForExercise(ctx, params.UserID, exerciseID)
			if err != nil {
				return nil, fmt.Errorf("planned exercise %s: %w", exerciseID, err)
			}
			prescriptions[exerciseID] = p
		}
	}

	sessionsCreated := 0
	err = s.store.InTx(ctx, func(q training.Queries) error {
		deactivated, err := q.DeactivateMesocycles(ctx, params.UserID)
		if err != nil {
			return fmt.Errorf("deactivate previous: %w", err)
		}
		if deactivated > 0 {
			log.Debugf("user %d: deactivated %d mesocycles", params.UserID, deactivated)
		}

		created, err = q.AddMesocycle(ctx, training.Mesocycle{
			UserID:      params.UserID,
			Name:        strings.TrimSpace(params.Name),
			StartDate:   training.Day(params.StartDate),
			TotalWeeks:  params.TotalWeeks,
			CurrentWeek: 1,
			Phase:       training.PhaseAccumulation,
			IsActive:    true,
		})
		if err != nil {
			return fmt.Errorf("add mesocycle: %w", err)
		}

		for week := range params.TotalWeeks {
			for _, d := range params.Days {
				session, err := q.AddSession(ctx, training.Session{
					UserID:      params.UserID,
					MesocycleID: &created.ID,
					Date:        dayInWeek(created.StartDate, week, d.Weekday),
					Name:        d.Name,
				})
				if err != nil {
					return fmt.Errorf("add planned session: %w", err)
				}
				for i, exerciseID := range d.ExerciseIDs {
					p := prescriptions[exerciseID]
					if _, err := q.AddSessionExercise(ctx, training.SessionExercise{
						SessionID:  session.ID,
						ExerciseID: exerciseID,
						OrderIndex: i + 1,
						Sets:       p.Sets,
						TargetReps: p.TargetReps,
						RestPeriod: p.RestPeriod,
					}); err != nil {
						return fmt.Errorf("add planned exercise %s: %w", exerciseID, err)
					}
				}
				sessionsCreated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create mesocycle: %w", err)
	}

	log.Debugf("user %d: created mesocycle %d with %d sessions", params.UserID, created.ID, sessionsCreated)
	training.Invalidate(ctx, s.invalidator, params.UserID)
	return s.withCurrentWeek(created), nil
}

func (s *Service) Get(ctx context.Context, id int) (_ *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	m, err := s.store.GetMesocycle(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withCurrentWeek(m), nil
}

func (s *Service) GetActive(ctx context.Context, userID int) (_ *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles.get-active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	m, err := s.store.GetActiveMesocycle(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withCurrentWeek(m), nil
}

func (s *Service) List(ctx context.Context, userID int) (_ []*training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ms, err := s.store.ListMesocycles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list mesocycles: %w", err)
	}
	for _, m := range ms {
		s.withCurrentWeek(m)
	}
	return ms, nil
}

// Deactivate ends a block. Its sessions stay, nothing propagates into
// them anymore.
func (s *Service) Deactivate(ctx context.Context, id int) (deactivated *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles.deactivate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = s.store.InTx(ctx, func(q training.Queries) error {
		if err := q.LockMesocycle(ctx, id); err != nil {
			return err
		}
		m, err := q.GetMesocycle(ctx, id)
		if err != nil {
			return err
		}
		if m.IsActive {
			m.IsActive = false
			if err := q.UpdateMesocycle(ctx, m); err != nil {
				return fmt.Errorf("update mesocycle %d: %w", id, err)
			}
		}
		deactivated = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("deactivate mesocycle %d: %w", id, err)
	}
	training.Invalidate(ctx, s.invalidator, deactivated.UserID)
	return s.withCurrentWeek(deactivated), nil
}

func (s *Service) ListSessions(ctx context.Context, id int) (_ []*training.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles.sessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.store.GetMesocycle(ctx, id); err != nil {
		return nil, err
	}
	sessions, err := s.store.ListSessions(ctx, training.ListSessionsParams{MesocycleID: &id})
	if err != nil {
		return nil, fmt.Errorf("list sessions of mesocycle %d: %w", id, err)
	}
	return sessions, nil
}

// TransitionPhase moves the block along the phase cycle. Any edge other
// than the next phase is rejected.
func (s *Service) TransitionPhase(ctx context.Context, id int, to training.Phase) (transitioned *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles.transition")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("mesocycle.id", id), attribute.String("phase.to", to.String()))

	err = s.store.InTx(ctx, func(q training.Queries) error {
		if err := q.LockMesocycle(ctx, id); err != nil {
			return err
		}
		m, err := q.GetMesocycle(ctx, id)
		if err != nil {
			return err
		}
		if !m.IsActive {
			return training.InvalidStatef("mesocycle %d is not active", id)
		}
		if err := training.ValidateTransition(m.Phase, to); err != nil {
			return err
		}
		m.Phase = to
		m.PhaseChangedAt = s.now()
		m.CurrentWeek = m.CurrentWeekAt(m.PhaseChangedAt)
		if err := q.UpdateMesocycle(ctx, m); err != nil {
			return fmt.Errorf("update mesocycle %d: %w", id, err)
		}
		transitioned = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("transition mesocycle %d: %w", id, err)
	}
	training.Invalidate(ctx, s.invalidator, transitioned.UserID)
	return transitioned, nil
}
