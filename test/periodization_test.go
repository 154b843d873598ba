package test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/mesoplan/internal/periodization/catalog"
	"github.com/2beens/mesoplan/internal/periodization/mesocycles"
	"github.com/2beens/mesoplan/internal/periodization/recommender"
	"github.com/2beens/mesoplan/internal/periodization/sessions"
	"github.com/2beens/mesoplan/internal/periodization/training"
)

func (s *IntegrationTestSuite) TestUnauthorized() {
	t := s.T()
	resp, err := s.httpClient.Get(serverEndpoint + "/mesocycles/active?user_id=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestCatalog() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	var exercises []*catalog.Exercise
	s.do(ctx, http.MethodGet, "/catalog/exercises?muscle_group=chest", nil, http.StatusOK, &exercises)
	require.NotEmpty(t, exercises)
	for _, e := range exercises {
		assert.Contains(t, e.MuscleGroups, "chest", e.ID)
	}

	var bench catalog.Exercise
	s.do(ctx, http.MethodGet, "/catalog/exercises/bench_press", nil, http.StatusOK, &bench)
	assert.Equal(t, "Bench Press", bench.Name)

	s.do(ctx, http.MethodGet, "/catalog/exercises/no_such_lift", nil, http.StatusNotFound, nil)
}

func (s *IntegrationTestSuite) TestMesocycleLifecycle() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	const userID = 7
	today := time.Now().UTC().Truncate(24 * time.Hour)

	var created training.Mesocycle
	s.do(ctx, http.MethodPost, "/mesocycles", mesocycles.CreateRequest{
		UserID:     userID,
		Name:       "Hypertrophy block",
		StartDate:  today.Format(time.DateOnly),
		TotalWeeks: 4,
		Days: []mesocycles.PlannedDay{
			{Weekday: today.Weekday(), Name: "Push", ExerciseIDs: []string{"bench_press", "overhead_press"}},
		},
	}, http.StatusCreated, &created)
	require.NotZero(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, training.PhaseAccumulation, created.Phase)

	var active training.Mesocycle
	s.do(ctx, http.MethodGet, fmt.Sprintf("/mesocycles/active?user_id=%d", userID), nil, http.StatusOK, &active)
	assert.Equal(t, created.ID, active.ID)

	var planned []*training.Session
	s.do(ctx, http.MethodGet, fmt.Sprintf("/mesocycles/%d/sessions", created.ID), nil, http.StatusOK, &planned)
	require.Len(t, planned, 4)
	first, last := planned[0], planned[len(planned)-1]

	// an added exercise lands in the edited session and every later one
	var added training.SessionExercise
	s.do(ctx, http.MethodPost, fmt.Sprintf("/sessions/%d/exercises", first.ID), sessions.AddExerciseRequest{
		ExerciseID: "lateral_raise",
	}, http.StatusCreated, &added)
	assert.Equal(t, "lateral_raise", added.ExerciseID)

	var lastSession training.Session
	s.do(ctx, http.MethodGet, fmt.Sprintf("/sessions/%d", last.ID), nil, http.StatusOK, &lastSession)
	assert.Equal(t, []string{"bench_press", "overhead_press", "lateral_raise"}, exerciseIDs(lastSession.Exercises))

	var firstSession training.Session
	s.do(ctx, http.MethodGet, fmt.Sprintf("/sessions/%d", first.ID), nil, http.StatusOK, &firstSession)
	require.Len(t, firstSession.Exercises, 3)

	weight, reps := 80.0, 10
	s.do(ctx, http.MethodPost, fmt.Sprintf("/entries/%d/complete", firstSession.Exercises[0].ID), training.Performance{
		Weight:     &weight,
		ActualReps: &reps,
	}, http.StatusOK, nil)

	var checkIn recommender.CheckIn
	s.do(ctx, http.MethodPost, "/checkins", recommender.CheckInRequest{
		UserID:    userID,
		Date:      today.Format(time.DateOnly),
		Energy:    7,
		Hunger:    4,
		Sleep:     8,
		Stress:    3,
		Cravings:  3,
		Adherence: 9,
	}, http.StatusCreated, &checkIn)
	assert.NotZero(t, checkIn.ID)

	var rec recommender.Recommendation
	s.do(ctx, http.MethodGet, fmt.Sprintf("/recommendations/next-week?user_id=%d&fresh=true", userID), nil, http.StatusOK, &rec)
	assert.Equal(t, created.ID, rec.MesocycleID)
	assert.Equal(t, 1, rec.Week)
	assert.False(t, rec.ShouldDeload)
	assert.Equal(t, 1, rec.FatigueFeedback.CheckIns)

	var deactivated training.Mesocycle
	s.do(ctx, http.MethodPost, fmt.Sprintf("/mesocycles/%d/deactivate", created.ID), nil, http.StatusOK, &deactivated)
	assert.False(t, deactivated.IsActive)

	s.do(ctx, http.MethodGet, fmt.Sprintf("/mesocycles/active?user_id=%d", userID), nil, http.StatusNotFound, nil)
}

func exerciseIDs(entries []*training.SessionExercise) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ExerciseID)
	}
	return ids
}
