package recommender

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/mesoplan/internal/periodization/catalog"
	"github.com/2beens/mesoplan/internal/periodization/landmarks"
	"github.com/2beens/mesoplan/internal/periodization/training"
	"github.com/2beens/mesoplan/internal/telemetry/metrics"
	"github.com/2beens/mesoplan/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=recommender_mocks_test.go -package=recommender_test

type checkInStore interface {
	Add(ctx context.Context, c CheckIn) (*CheckIn, error)
	List(ctx context.Context, userID int, from, to time.Time) ([]*CheckIn, error)
}

type landmarkStore interface {
	List(ctx context.Context, userID int) ([]*landmarks.VolumeLandmark, error)
}

type exerciseGetter interface {
	Get(ctx context.Context, id string) (*catalog.Exercise, error)
}

type recommendationCache interface {
	Get(ctx context.Context, userID int) (*Recommendation, bool, error)
	Set(ctx context.Context, rec *Recommendation) error
	Invalidate(ctx context.Context, userID int) error
}

type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
	TrendUnknown Trend = "unknown"
)

type MuscleVolume struct {
	MuscleGroupID string `json:"muscleGroupId"`
	LastWeekSets  int    `json:"lastWeekSets"`
	TargetSets    int    `json:"targetSets"`
	MEV           int    `json:"mev"`
	MAV           int    `json:"mav"`
	MRV           int    `json:"mrv"`
}

type PhaseTransition struct {
	From   training.Phase `json:"from"`
	To     training.Phase `json:"to"`
	Reason string         `json:"reason"`
}

type FatigueFeedback struct {
	ThisWeek *float64 `json:"thisWeek,omitempty"`
	LastWeek *float64 `json:"lastWeek,omitempty"`
	Recovery float64  `json:"recovery"`
	Trend    Trend    `json:"trend"`
	CheckIns int      `json:"checkIns"`
	Message  string   `json:"message"`
}

type Recommendation struct {
	UserID          int              `json:"userId"`
	MesocycleID     int              `json:"mesocycleId"`
	Week            int              `json:"week"`
	Phase           training.Phase   `json:"phase"`
	NextWeekVolume  []MuscleVolume   `json:"nextWeekVolume"`
	ShouldDeload    bool             `json:"shouldDeload"`
	PhaseTransition *PhaseTransition `json:"phaseTransition,omitempty"`
	FatigueFeedback FatigueFeedback  `json:"fatigueFeedback"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}

// weekVolume maps a muscle group to the completed sets credited to it.
type weekVolume map[string]int

func (v weekVolume) total() int {
	sum := 0
	for _, sets := range v {
		sum += sets
	}
	return sum
}

type Service struct {
	store     training.Store
	checkIns  checkInStore
	landmarks landmarkStore
	catalog   exerciseGetter
	cache     recommendationCache
	metrics   *metrics.Manager
	policy    Policy
	now       func() time.Time
}

// NewService wires the recommender. cache may be nil.
func NewService(
	store training.Store,
	checkIns checkInStore,
	landmarks landmarkStore,
	catalog exerciseGetter,
	cache recommendationCache,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		store:     store,
		checkIns:  checkIns,
		landmarks: landmarks,
		catalog:   catalog,
		cache:     cache,
		metrics:   metricsManager,
		policy:    DefaultPolicy(),
		now:       time.Now,
	}
}

func (s *Service) WithPolicy(p Policy) *Service {
	s.policy = p
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) SubmitCheckIn(ctx context.Context, c CheckIn) (_ *CheckIn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recommender.checkin.submit")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", c.UserID))

	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.Date = training.Day(c.Date)

	added, err := s.checkIns.Add(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("add check-in: %w", err)
	}
	s.metrics.CounterCheckIns.Inc()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, c.UserID); err != nil {
			log.Warnf("user %d: invalidate cached recommendation: %s", c.UserID, err)
		}
	}
	return added, nil
}

func (s *Service) ListCheckIns(ctx context.Context, userID int, from, to time.Time) ([]*CheckIn, error) {
	if to.Before(from) {
		return nil, training.Validationf("check-in range ends before it starts")
	}
	return s.checkIns.List(ctx, userID, training.Day(from), training.Day(to))
}

// NextWeek serves the cached recommendation when there is one, unless fresh is set.
func (s *Service) NextWeek(ctx context.Context, userID int, fresh bool) (*Recommendation, error) {
	if !fresh && s.cache != nil {
		rec, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			log.Warnf("user %d: get cached recommendation: %s", userID, err)
		} else if ok {
			return rec, nil
		}
	}

	rec, err := s.RecommendNextWeek(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, rec); err != nil {
			log.Warnf("user %d: cache recommendation: %s", userID, err)
		}
	}
	return rec, nil
}

// RecommendNextWeek derives next week's volume targets, the deload flag and
// a phase suggestion from the active block, its completed sessions and the
// last two weeks of check-ins.
func (s *Service) RecommendNextWeek(ctx context.Context, userID int) (_ *Recommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recommender.nextweek")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	now := s.now()
	today := training.Day(now)

	m, err := s.store.GetActiveMesocycle(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get active mesocycle: %w", err)
	}
	week := m.CurrentWeekAt(now)
	span.SetAttributes(attribute.Int("mesocycle.id", m.ID), attribute.Int("week", week))

	checkIns, err := s.checkIns.List(ctx, userID, today.AddDate(0, 0, -13), today)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	ls, err := s.landmarks.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list landmarks: %w", err)
	}
	sort.Slice(ls, func(i, j int) bool {
		return ls[i].MuscleGroupID < ls[j].MuscleGroupID
	})

	recovery := s.policy.DefaultRecovery
	if _, avg, ok := landmarks.Averages(ls); ok {
		recovery = avg
	}

	thisWeek, thisN := meanFatigue(checkIns, today.AddDate(0, 0, -7), today)
	lastWeek, lastN := meanFatigue(checkIns, today.AddDate(0, 0, -14), today.AddDate(0, 0, -7))
	feedback := FatigueFeedback{
		Recovery: recovery,
		Trend:    TrendUnknown,
		CheckIns: thisN + lastN,
	}
	if thisN > 0 {
		feedback.ThisWeek = &thisWeek
	}
	if lastN > 0 {
		feedback.LastWeek = &lastWeek
	}
	if thisN > 0 && lastN > 0 {
		feedback.Trend = s.trend(thisWeek - lastWeek)
	}

	shouldDeload := thisN > 0 &&
		thisWeek-recovery >= s.policy.DeloadMargin &&
		feedback.Trend != TrendFalling
	feedback.Message = s.feedbackMessage(feedback, shouldDeload)

	volume, err := s.completedVolume(ctx, m)
	if err != nil {
		return nil, err
	}

	rec := &Recommendation{
		UserID:          userID,
		MesocycleID:     m.ID,
		Week:            week,
		Phase:           m.Phase,
		NextWeekVolume:  make([]MuscleVolume, 0, len(ls)),
		ShouldDeload:    shouldDeload,
		FatigueFeedback: feedback,
		GeneratedAt:     now,
	}
	for _, l := range ls {
		last := volume[week-1][l.MuscleGroupID]
		rec.NextWeekVolume = append(rec.NextWeekVolume, MuscleVolume{
			MuscleGroupID: l.MuscleGroupID,
			LastWeekSets:  last,
			TargetSets:    s.policy.TargetSets(last, l.MEV, l.MAV, recovery, shouldDeload),
			MEV:           l.MEV,
			MAV:           l.MAV,
			MRV:           l.MRV,
		})
	}
	rec.PhaseTransition = suggestTransition(s.policy, m, week, shouldDeload, volume, ls, now)

	if err := s.review(ctx, m.ID, now, thisWeek, thisN > 0, ls); err != nil {
		return nil, err
	}

	s.metrics.CounterRecommendations.Inc()
	if shouldDeload {
		s.metrics.CounterDeloadFlags.Inc()
	}
	return rec, nil
}

func (s *Service) trend(delta float64) Trend {
	switch {
	case delta > s.policy.TrendTolerance:
		return TrendRising
	case delta < -s.policy.TrendTolerance:
		return TrendFalling
	default:
		return TrendStable
	}
}

func (s *Service) feedbackMessage(f FatigueFeedback, shouldDeload bool) string {
	if f.ThisWeek == nil {
		return "No check-ins in the last 7 days, targets follow volume landmarks only"
	}
	if shouldDeload {
		return fmt.Sprintf("Fatigue %.1f is %.1f above recovery %.1f, plan a deload week",
			*f.ThisWeek, *f.ThisWeek-f.Recovery, f.Recovery)
	}
	return fmt.Sprintf("Fatigue %.1f against recovery %.1f, trend %s", *f.ThisWeek, f.Recovery, f.Trend)
}

// completedVolume sums completed sets per block week and muscle group.
// Sets of an exercise count toward every muscle group it trains.
func (s *Service) completedVolume(ctx context.Context, m *training.Mesocycle) (map[int]weekVolume, error) {
	sessions, err := s.store.ListSessions(ctx, training.ListSessionsParams{MesocycleID: &m.ID})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	exercises := map[string]*catalog.Exercise{}
	volume := map[int]weekVolume{}
	for _, session := range sessions {
		entries, err := s.store.ListSessionExercises(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("list exercises of session %d: %w", session.ID, err)
		}
		week := training.WeekOf(session.Date, m.StartDate)
		for _, e := range entries {
			if !e.IsCompleted {
				continue
			}
			ex, ok := exercises[e.ExerciseID]
			if !ok {
				ex, err = s.catalog.Get(ctx, e.ExerciseID)
				if errors.Is(err, training.ErrNotFound) {
					log.Warnf("session %d: exercise %s not in catalog, skipped", session.ID, e.ExerciseID)
					exercises[e.ExerciseID] = nil
					continue
				}
				if err != nil {
					return nil, fmt.Errorf("get exercise %s: %w", e.ExerciseID, err)
				}
				exercises[e.ExerciseID] = ex
			}
			if ex == nil {
				continue
			}
			if volume[week] == nil {
				volume[week] = weekVolume{}
			}
			for _, mg := range ex.MuscleGroups {
				volume[week][mg] += e.Sets
			}
		}
	}
	return volume, nil
}

// stalled reports whether the week's volume plateaued against the week
// before, or brought any muscle group within reach of its MRV.
func stalled(p Policy, volume map[int]weekVolume, ls []*landmarks.VolumeLandmark, week int) bool {
	total := volume[week].total()
	if week > 1 && total > 0 && total <= volume[week-1].total() {
		return true
	}
	for _, l := range ls {
		if l.MRV > 0 && volume[week][l.MuscleGroupID] >= l.MRV-p.MRVProximity {
			return true
		}
	}
	return false
}

func suggestTransition(
	p Policy,
	m *training.Mesocycle,
	week int,
	shouldDeload bool,
	volume map[int]weekVolume,
	ls []*landmarks.VolumeLandmark,
	now time.Time,
) *PhaseTransition {
	next := func(reason string) *PhaseTransition {
		return &PhaseTransition{From: m.Phase, To: m.Phase.Next(), Reason: reason}
	}

	switch m.Phase {
	case training.PhaseDeload:
		days := int(training.Day(now).Sub(training.Day(m.PhaseChangedAt)).Hours() / 24)
		if days >= p.DeloadMinDays && !shouldDeload {
			return next(fmt.Sprintf("Deload ran %d days and fatigue is back in line with recovery", days))
		}
		return nil
	case training.PhaseIntensification:
		if shouldDeload {
			return next("Fatigue is running ahead of recovery during intensification")
		}
	}

	recent, prior := week-1, week-2
	if prior < 1 {
		return nil
	}
	if stalled(p, volume, ls, prior) && stalled(p, volume, ls, recent) {
		return next(fmt.Sprintf("Volume plateaued or reached MRV in weeks %d and %d", prior, recent))
	}
	return nil
}

// review stores the derived current week and, once per block week, blends
// the landmark recovery levels with the recovery inferred from check-ins.
func (s *Service) review(
	ctx context.Context,
	mesocycleID int,
	now time.Time,
	fatigue float64,
	haveCheckIns bool,
	ls []*landmarks.VolumeLandmark,
) error {
	return s.store.InTx(ctx, func(q training.Queries) error {
		if err := q.LockMesocycle(ctx, mesocycleID); err != nil {
			return fmt.Errorf("lock mesocycle: %w", err)
		}
		m, err := q.GetMesocycle(ctx, mesocycleID)
		if err != nil {
			return err
		}

		week := m.CurrentWeekAt(now)
		changed := m.CurrentWeek != week
		m.CurrentWeek = week

		if haveCheckIns && m.LastReviewedWeek < week {
			inferred := InferredRecovery(fatigue)
			for _, l := range ls {
				level := l.RecoveryLevel*(1-s.policy.RecoveryBlend) + inferred*s.policy.RecoveryBlend
				level = math.Round(level*10) / 10
				if err := q.SetRecoveryLevel(ctx, m.UserID, l.MuscleGroupID, level); err != nil {
					return fmt.Errorf("update recovery of %s: %w", l.MuscleGroupID, err)
				}
			}
			log.Debugf("user %d: week %d recovery blended with inferred %.1f", m.UserID, week, inferred)
			m.LastReviewedWeek = week
			changed = true
		}

		if !changed {
			return nil
		}
		if err := q.UpdateMesocycle(ctx, m); err != nil {
			return fmt.Errorf("update mesocycle: %w", err)
		}
		return nil
	})
}
