package training

import "time"

type Mesocycle struct {
	ID               int       `json:"id"`
	UserID           int       `json:"userId"`
	Name             string    `json:"name"`
	StartDate        time.Time `json:"startDate"`
	TotalWeeks       int       `json:"totalWeeks"`
	CurrentWeek      int       `json:"currentWeek"`
	Phase            Phase     `json:"phase"`
	IsActive         bool      `json:"isActive"`
	PhaseChangedAt   time.Time `json:"phaseChangedAt"`
	LastReviewedWeek int       `json:"lastReviewedWeek"`
	CreatedAt        time.Time `json:"createdAt"`
}

// EndDate is the first day after the block.
func (m *Mesocycle) EndDate() time.Time {
	return Day(m.StartDate).AddDate(0, 0, m.TotalWeeks*7)
}

func (m *Mesocycle) Contains(date time.Time) bool {
	return InBlock(date, m.StartDate, m.TotalWeeks)
}

// CurrentWeekAt derives the block week for now, clamped to [1, TotalWeeks].
func (m *Mesocycle) CurrentWeekAt(now time.Time) int {
	week := WeekOf(now, m.StartDate)
	if m.TotalWeeks > 0 && week > m.TotalWeeks {
		return m.TotalWeeks
	}
	return week
}

type Session struct {
	ID          int                `json:"id"`
	UserID      int                `json:"userId"`
	MesocycleID *int               `json:"mesocycleId,omitempty"`
	Date        time.Time          `json:"date"`
	Name        string             `json:"name"`
	IsCompleted bool               `json:"isCompleted"`
	TotalVolume float64            `json:"totalVolume"`
	Duration    int                `json:"duration"`
	Exercises   []*SessionExercise `json:"exercises,omitempty"`
}

// SessionExercise is one exercise row in a session. The pointer fields are
// performance data, nil until the entry is completed.
type SessionExercise struct {
	ID          int      `json:"id"`
	SessionID   int      `json:"sessionId"`
	ExerciseID  string   `json:"exerciseId"`
	OrderIndex  int      `json:"orderIndex"`
	Sets        int      `json:"sets"`
	TargetReps  string   `json:"targetReps"`
	RestPeriod  int      `json:"restPeriod"`
	Weight      *float64 `json:"weight,omitempty"`
	ActualReps  *int     `json:"actualReps,omitempty"`
	RPE         *float64 `json:"rpe,omitempty"`
	RIR         *int     `json:"rir,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	IsCompleted bool     `json:"isCompleted"`
}

type Performance struct {
	Weight     *float64 `json:"weight"`
	ActualReps *int     `json:"actualReps"`
	RPE        *float64 `json:"rpe"`
	RIR        *int     `json:"rir"`
	Notes      *string  `json:"notes"`
}

func (p Performance) Validate() error {
	if p.Weight != nil && *p.Weight < 0 {
		return Validationf("weight must not be negative")
	}
	if p.ActualReps != nil && *p.ActualReps < 0 {
		return Validationf("actual reps must not be negative")
	}
	if p.RPE != nil && (*p.RPE < 1 || *p.RPE > 10) {
		return Validationf("rpe must be within [1, 10]")
	}
	if p.RIR != nil && *p.RIR < 0 {
		return Validationf("rir must not be negative")
	}
	return nil
}

// Structure returns a copy of e carrying only its structural fields, with
// the performance fields reset.
func (e *SessionExercise) Structure() SessionExercise {
	return SessionExercise{
		ExerciseID: e.ExerciseID,
		OrderIndex: e.OrderIndex,
		Sets:       e.Sets,
		TargetReps: e.TargetReps,
		RestPeriod: e.RestPeriod,
	}
}

// Volume is weight x reps x sets, zero while any of them is missing.
func (e *SessionExercise) Volume() float64 {
	if !e.IsCompleted || e.Weight == nil || e.ActualReps == nil {
		return 0
	}
	return *e.Weight * float64(*e.ActualReps) * float64(e.Sets)
}
