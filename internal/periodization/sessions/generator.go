package sessions

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/mesoplan/internal/periodization/training"
	"github.com/2beens/mesoplan/internal/telemetry/metrics"
	"github.com/2beens/mesoplan/internal/telemetry/tracing"
)

const (
	DeloadNote = "Deload week — reduced volume"
	// deload sets are floor(sets * 6/10), never below one
	deloadNumerator   = 6
	deloadDenominator = 10
)

type SessionType string

const (
	SessionTypeCardio   SessionType = "cardio"
	SessionTypeMobility SessionType = "mobility"
	SessionTypeArms     SessionType = "arms"
	SessionTypeAbs      SessionType = "abs"
	SessionTypeCustom   SessionType = "custom"
)

type Template struct {
	Name        string
	ExerciseIDs []string
}

var templates = map[SessionType]Template{
	SessionTypeCardio:   {Name: "Cardio"},
	SessionTypeMobility: {Name: "Mobility"},
	SessionTypeArms:     {Name: "Arms", ExerciseIDs: []string{"barbell_curl", "triceps_pushdown", "hammer_curl"}},
	SessionTypeAbs:      {Name: "Abs", ExerciseIDs: []string{"cable_crunch", "hanging_leg_raise", "plank"}},
	SessionTypeCustom:   {Name: "Custom Workout"},
}

func TemplateFor(sessionType SessionType) (Template, error) {
	t, ok := templates[sessionType]
	if !ok {
		return Template{}, training.Validationf("unknown session type %q", sessionType)
	}
	return t, nil
}

// DeloadSets is the set count of a deload copy.
func DeloadSets(sets int) int {
	return max(1, sets*deloadNumerator/deloadDenominator)
}

// Generator creates new sessions inside a mesocycle. Generated sessions
// are standalone copies, nothing propagates from them.
type Generator struct {
	store    training.Store
	defaults prescriber
	metrics  *metrics.Manager
}

func NewGenerator(store training.Store, defaults prescriber, metricsManager *metrics.Manager) *Generator {
	return &Generator{
		store:    store,
		defaults: defaults,
		metrics:  metricsManager,
	}
}

// openMesocycle locks the mesocycle and checks that it is active and that
// date falls inside it.
func openMesocycle(ctx context.Context, q training.Queries, mesocycleID int, date time.Time) (*training.Mesocycle, error) {
	m, err := q.GetMesocycle(ctx, mesocycleID)
	if err != nil {
		return nil, err
	}
	if err := q.LockMesocycle(ctx, m.ID); err != nil {
		return nil, err
	}
	if !m.IsActive {
		return nil, training.InvalidStatef("mesocycle %d is not active", m.ID)
	}
	if !m.Contains(date) {
		return nil, training.InvalidStatef(
			"date %s outside mesocycle %d [%s, %s)",
			date.Format(time.DateOnly), m.ID,
			m.StartDate.Format(time.DateOnly), m.EndDate().Format(time.DateOnly),
		)
	}
	return m, nil
}

func (g *Generator) addSession(ctx context.Context, q training.Queries, s training.Session, entries []training.SessionExercise) (*training.Session, error) {
	added, err := q.AddSession(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("add session: %w", err)
	}
	added.Exercises = make([]*training.SessionExercise, 0, len(entries))
	for i, e := range entries {
		e.SessionID = added.ID
		e.OrderIndex = i + 1
		entry, err := q.AddSessionExercise(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("add exercise %s to session %d: %w", e.ExerciseID, added.ID, err)
		}
		added.Exercises = append(added.Exercises, entry)
	}
	return added, nil
}

func (g *Generator) additionalSession(ctx context.Context, kind string, mesocycleID int, name string, date time.Time, exerciseIDs []string) (created *training.Session, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, training.Validationf("session name empty")
	}

	err = g.store.InTx(ctx, func(q training.Queries) error {
		m, err := openMesocycle(ctx, q, mesocycleID, date)
		if err != nil {
			return err
		}

		entries := make([]training.SessionExercise, 0, len(exerciseIDs))
		for _, exerciseID := range exerciseIDs {
			p, err := g.defaults.ForExercise(ctx, m.UserID, exerciseID)
			if err != nil {
				return err
			}
			entries = append(entries, training.SessionExercise{
				ExerciseID: exerciseID,
				Sets:       p.Sets,
				TargetReps: p.TargetReps,
				RestPeriod: p.RestPeriod,
			})
		}

		created, err = g.addSession(ctx, q, training.Session{
			UserID:      m.UserID,
			MesocycleID: &m.ID,
			Date:        training.Day(date),
			Name:        fmt.Sprintf("%s - Week %d", name, training.WeekOf(date, m.StartDate)),
		}, entries)
		return err
	})
	if err != nil {
		return nil, err
	}

	g.metrics.CounterGeneratedSessions.WithLabelValues(kind).Inc()
	log.Debugf("mesocycle %d: created %s session %d [%s]", mesocycleID, kind, created.ID, created.Name)
	return created, nil
}

// CreateAdditionalSession adds a session named "{name} - Week {n}" on date
// to the active mesocycle, with exerciseIDs appended in order.
func (g *Generator) CreateAdditionalSession(ctx context.Context, mesocycleID int, name string, date time.Time, exerciseIDs []string) (_ *training.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.create-additional")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("mesocycle.id", mesocycleID), attribute.Int("exercises", len(exerciseIDs)))

	created, err := g.additionalSession(ctx, "additional", mesocycleID, name, date, exerciseIDs)
	if err != nil {
		return nil, fmt.Errorf("create additional session: %w", err)
	}
	return created, nil
}

// CreateExtraTrainingDay adds a session built from the template of
// sessionType. customName, when set, replaces the template name.
func (g *Generator) CreateExtraTrainingDay(ctx context.Context, mesocycleID int, sessionType SessionType, date time.Time, customName string) (_ *training.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.create-extra-day")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("mesocycle.id", mesocycleID), attribute.String("type", string(sessionType)))

	template, err := TemplateFor(sessionType)
	if err != nil {
		return nil, err
	}
	name := template.Name
	if strings.TrimSpace(customName) != "" {
		name = customName
	}

	created, err := g.additionalSession(ctx, "extra_day", mesocycleID, name, date, template.ExerciseIDs)
	if err != nil {
		return nil, fmt.Errorf("create %s day: %w", sessionType, err)
	}
	return created, nil
}

// DuplicateSessionToDate copies the structure of a session to date. The
// copy stays in the source mesocycle only while it is active and date lies
// inside it.
func (g *Generator) DuplicateSessionToDate(ctx context.Context, sourceSessionID int, date time.Time, newName string) (created *training.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.duplicate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sourceSessionID))

	err = g.store.InTx(ctx, func(q training.Queries) error {
		source, err := q.GetSession(ctx, sourceSessionID)
		if err != nil {
			return err
		}
		if err := lockSession(ctx, q, source); err != nil {
			return err
		}

		var mesocycleID *int
		if source.MesocycleID != nil {
			m, err := q.GetMesocycle(ctx, *source.MesocycleID)
			if err != nil {
				return err
			}
			if m.IsActive && m.Contains(date) {
				mesocycleID = &m.ID
			}
		}

		name := strings.TrimSpace(newName)
		if name == "" {
			name = source.Name + " (Copy)"
		}

		sourceEntries, err := q.ListSessionExercises(ctx, source.ID)
		if err != nil {
			return fmt.Errorf("list session %d exercises: %w", source.ID, err)
		}
		entries := make([]training.SessionExercise, 0, len(sourceEntries))
		for _, e := range sourceEntries {
			entries = append(entries, e.Structure())
		}

		created, err = g.addSession(ctx, q, training.Session{
			UserID:      source.UserID,
			MesocycleID: mesocycleID,
			Date:        training.Day(date),
			Name:        name,
		}, entries)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("duplicate session %d: %w", sourceSessionID, err)
	}

	g.metrics.CounterGeneratedSessions.WithLabelValues("duplicate").Inc()
	return created, nil
}

// CreateDeloadSession copies the base session to date with reduced sets.
func (g *Generator) CreateDeloadSession(ctx context.Context, mesocycleID, baseSessionID int, date time.Time) (created *training.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.create-deload")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("mesocycle.id", mesocycleID), attribute.Int("session.id", baseSessionID))

	err = g.store.InTx(ctx, func(q training.Queries) error {
		m, err := openMesocycle(ctx, q, mesocycleID, date)
		if err != nil {
			return err
		}
		base, err := q.GetSession(ctx, baseSessionID)
		if err != nil {
			return err
		}
		if base.UserID != m.UserID {
			return training.Validationf("session %d does not belong to the owner of mesocycle %d", base.ID, m.ID)
		}

		baseEntries, err := q.ListSessionExercises(ctx, base.ID)
		if err != nil {
			return fmt.Errorf("list session %d exercises: %w", base.ID, err)
		}
		entries := make([]training.SessionExercise, 0, len(baseEntries))
		for _, e := range baseEntries {
			entry := e.Structure()
			entry.Sets = DeloadSets(e.Sets)
			note := DeloadNote
			entry.Notes = &note
			entries = append(entries, entry)
		}

		created, err = g.addSession(ctx, q, training.Session{
			UserID:      m.UserID,
			MesocycleID: &m.ID,
			Date:        training.Day(date),
			Name:        base.Name + " - Deload",
		}, entries)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create deload session: %w", err)
	}

	g.metrics.CounterGeneratedSessions.WithLabelValues("deload").Inc()
	return created, nil
}
