package sessions_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/mesoplan/internal/periodization/sessions"
	"github.com/2beens/mesoplan/internal/periodization/training"
)

func TestCreateAdditionalSession_WeekBounds(t *testing.T) {
	b := newBlock(t)
	ctx := context.Background()

	// week 7 of a 6 week block
	_, err := b.generator.CreateAdditionalSession(ctx, b.mesocycle.ID, "Extra", date("2024-02-15"), nil)
	assert.ErrorIs(t, err, training.ErrInvalidState)

	s, err := b.generator.CreateAdditionalSession(ctx, b.mesocycle.ID, "Extra", date("2024-01-15"), nil)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(s.Name, "Week 3"))
	assert.Equal(t, "Extra - Week 3", s.Name)
	require.NotNil(t, s.MesocycleID)
	assert.Equal(t, b.mesocycle.ID, *s.MesocycleID)
	assert.Equal(t, userID, s.UserID)
	assert.Empty(t, s.Exercises)
}

func TestCreateAdditionalSession_OutsideBlockFails(t *testing.T) {
	b := newBlock(t)
	ctx := context.Background()

	for _, d := range []string{"2023-12-31", "2024-02-12", "2024-06-01"} {
		t.Run(d, func(t *testing.T) {
			_, err := b.generator.CreateAdditionalSession(ctx, b.mesocycle.ID, "Extra", date(d), []string{"squat"})
			assert.ErrorIs(t, err, training.ErrInvalidState)
		})
	}

	// first and last day of the block are inside
	for _, d := range []string{"2024-01-01", "2024-02-11"} {
		_, err := b.generator.CreateAdditionalSession(ctx, b.mesocycle.ID, "Edge", date(d), nil)
		assert.NoError(t, err, d)
	}
}

func TestCreateAdditionalSession_Errors(t *testing.T) {
	b := newBlock(t)
	ctx := context.Background()

	_, err := b.generator.CreateAdditionalSession(ctx, 9999, "Extra", date("2024-01-15"), nil)
	assert.ErrorIs(t, err, training.ErrNotFound)

	_, err = b.generator.CreateAdditionalSession(ctx, b.mesocycle.ID, "  ", date("2024-01-15"), nil)
	assert.ErrorIs(t, err, training.ErrValidation)

	before := b.store.Sessions()
	_, err = b.generator.CreateAdditionalSession(ctx, b.mesocycle.ID, "Extra", date("2024-01-15"), []string{"squat", "moon_walk"})
	assert.ErrorIs(t, err, training.ErrNotFound)
	assert.Equal(t, before, b.store.Sessions(), "no half created session")

	b.mesocycle.IsActive = false
	require.NoError(t, b.store.UpdateMesocycle(ctx, b.mesocycle))
	_, err = b.generator.CreateAdditionalSession(ctx, b.mesocycle.ID, "Extra", date("2024-01-15"), nil)
	assert.ErrorIs(t, err, training.ErrInvalidState)
}

func TestCreateAdditionalSession_DefaultsWithoutPropagation(t *testing.T) {
	b := newBlock(t)
	ctx := context.Background()
	mondaysBefore := b.exerciseIDs(t, b.push[4].ID)

	// a Monday in week 2
	s, err := b.generator.CreateAdditionalSession(ctx, b.mesocycle.ID, "Chest", date("2024-01-08"), []string{"bench_press", "dumbbell_fly"})
	require.NoError(t, err)

	require.Len(t, s.Exercises, 2)
	assert.Equal(t, "bench_press", s.Exercises[0].ExerciseID)
	assert.Equal(t, 1, s.Exercises[0].OrderIndex)
	assert.Equal(t, 8, s.Exercises[0].Sets)
	assert.Equal(t, "5-8", s.Exercises[0].TargetReps)
	assert.Equal(t, "dumbbell_fly", s.Exercises[1].ExerciseID)
	assert.Equal(t, 2, s.Exercises[1].OrderIndex)
	assert.Equal(t, 90, s.Exercises[1].RestPeriod)

	assert.Equal(t, mondaysBefore, b.exerciseIDs(t, b.push[4].ID))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.metrics.CounterGeneratedSessions.WithLabelValues("additional")))
	b.requireDense(t)
}

func TestCreateExtraTrainingDay(t *testing.T) {
	b := newBlock(t)
	ctx := context.Background()

	arms, err := b.generator.CreateExtraTrainingDay(ctx, b.mesocycle.ID, sessions.SessionTypeArms, date("2024-01-20"), "")
	require.NoError(t, err)
	assert.Equal(t, "Arms - Week 3", arms.Name)
	require.Len(t, arms.Exercises, 3)
	assert.Equal(t, "barbell_curl", arms.Exercises[0].ExerciseID)

	cardio, err := b.generator.CreateExtraTrainingDay(ctx, b.mesocycle.ID, sessions.SessionTypeCardio, date("2024-01-06"), "Zone 2")
	require.NoError(t, err)
	assert.Equal(t, "Zone 2 - Week 1", cardio.Name)
	assert.Empty(t, cardio.Exercises)

	custom, err := b.generator.CreateExtraTrainingDay(ctx, b.mesocycle.ID, sessions.SessionTypeCustom, date("2024-02-10"), "")
	require.NoError(t, err)
	assert.Equal(t, "Custom Workout - Week 6", custom.Name)

	_, err = b.generator.CreateExtraTrainingDay(ctx, b.mesocycle.ID, sessions.SessionType("yoga"), date("2024-01-06"), "")
	assert.ErrorIs(t, err, training.ErrValidation)

	_, err = b.generator.CreateExtraTrainingDay(ctx, b.mesocycle.ID, sessions.SessionTypeAbs, date("2024-03-01"), "")
	assert.ErrorIs(t, err, training.ErrInvalidState)

	assert.Equal(t, 3.0, testutil.ToFloat64(b.metrics.CounterGeneratedSessions.WithLabelValues("extra_day")))
}

func TestDuplicateSessionToDate(t *testing.T) {
	b := newBlock(t)
	ctx := context.Background()

	completedBench := b.complete(t, b.push[0].ID, "bench_press")
	source := b.session(t, b.push[0].ID)

	inBlock, err := b.generator.DuplicateSessionToDate(ctx, b.push[0].ID, date("2024-01-05"), "")
	require.NoError(t, err)
	assert.Equal(t, "Push (Copy)", inBlock.Name)
	require.NotNil(t, inBlock.MesocycleID)
	assert.Equal(t, b.mesocycle.ID, *inBlock.MesocycleID)
	require.Len(t, inBlock.Exercises, len(source.Exercises))
	for i, e := range inBlock.Exercises {
		assert.Equal(t, source.Exercises[i].Structure(), e.Structure())
		assert.False(t, e.IsCompleted)
		assert.Nil(t, e.Weight)
		assert.Nil(t, e.ActualReps)
		assert.Nil(t, e.RPE)
		assert.Nil(t, e.RIR)
		assert.Nil(t, e.Notes)
	}
	assert.Equal(t, completedBench, b.entry(t, b.push[0].ID, "bench_press"), "source untouched")

	outside, err := b.generator.DuplicateSessionToDate(ctx, b.push[0].ID, date("2024-05-01"), "Travel Push")
	require.NoError(t, err)
	assert.Equal(t, "Travel Push", outside.Name)
	assert.Nil(t, outside.MesocycleID)
	assert.Len(t, outside.Exercises, 3)

	_, err = b.generator.DuplicateSessionToDate(ctx, 9999, date("2024-01-05"), "")
	assert.ErrorIs(t, err, training.ErrNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(b.metrics.CounterGeneratedSessions.WithLabelValues("duplicate")))
}

func TestDuplicateSessionToDate_InactiveMesocycleKeepsItsSessions(t *testing.T) {
	b := newBlock(t)
	ctx := context.Background()

	m, err := b.store.GetMesocycle(ctx, b.mesocycle.ID)
	require.NoError(t, err)
	m.IsActive = false
	require.NoError(t, b.store.UpdateMesocycle(ctx, m))

	before, err := b.store.ListSessions(ctx, training.ListSessionsParams{MesocycleID: &m.ID})
	require.NoError(t, err)

	copied, err := b.generator.DuplicateSessionToDate(ctx, b.push[0].ID, date("2024-01-05"), "")
	require.NoError(t, err)
	assert.Nil(t, copied.MesocycleID)
	assert.Len(t, copied.Exercises, 3)

	after, err := b.store.ListSessions(ctx, training.ListSessionsParams{MesocycleID: &m.ID})
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestDeloadSets(t *testing.T) {
	for sets := 1; sets <= 20; sets++ {
		got := sessions.DeloadSets(sets)
		assert.GreaterOrEqual(t, got, 1)
		assert.Equal(t, max(1, sets*6/10), got, "sets %d", sets)
	}
	assert.Equal(t, 1, sessions.DeloadSets(1))
	assert.Equal(t, 1, sessions.DeloadSets(2))
	assert.Equal(t, 2, sessions.DeloadSets(4))
	assert.Equal(t, 3, sessions.DeloadSets(5))
	assert.Equal(t, 6, sessions.DeloadSets(10))
}

func TestCreateDeloadSession(t *testing.T) {
	b := newBlock(t)
	ctx := context.Background()

	b.complete(t, b.push[4].ID, "bench_press")
	base := b.session(t, b.push[4].ID)

	deload, err := b.generator.CreateDeloadSession(ctx, b.mesocycle.ID, base.ID, date("2024-02-06"))
	require.NoError(t, err)
	assert.Equal(t, "Push - Deload", deload.Name)
	require.Len(t, deload.Exercises, len(base.Exercises))
	for i, e := range deload.Exercises {
		orig := base.Exercises[i]
		assert.Equal(t, sessions.DeloadSets(orig.Sets), e.Sets)
		assert.Equal(t, orig.ExerciseID, e.ExerciseID)
		assert.Equal(t, orig.TargetReps, e.TargetReps)
		assert.Equal(t, orig.RestPeriod, e.RestPeriod)
		assert.Equal(t, orig.OrderIndex, e.OrderIndex)
		require.NotNil(t, e.Notes)
		assert.Equal(t, sessions.DeloadNote, *e.Notes)
		assert.False(t, e.IsCompleted)
		assert.Nil(t, e.Weight)
	}
	// bench 4 sets, the rest 3
	assert.Equal(t, 2, deload.Exercises[0].Sets)
	assert.Equal(t, 1, deload.Exercises[1].Sets)

	_, err = b.generator.CreateDeloadSession(ctx, b.mesocycle.ID, base.ID, date("2024-02-12"))
	assert.ErrorIs(t, err, training.ErrInvalidState)

	_, err = b.generator.CreateDeloadSession(ctx, b.mesocycle.ID, 9999, date("2024-02-06"))
	assert.ErrorIs(t, err, training.ErrNotFound)

	stranger, err := b.store.AddSession(ctx, training.Session{UserID: 2, Date: date("2024-01-03"), Name: "Other"})
	require.NoError(t, err)
	_, err = b.generator.CreateDeloadSession(ctx, b.mesocycle.ID, stranger.ID, date("2024-02-06"))
	assert.ErrorIs(t, err, training.ErrValidation)

	assert.Equal(t, 1.0, testutil.ToFloat64(b.metrics.CounterGeneratedSessions.WithLabelValues("deload")))
}
