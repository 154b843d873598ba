package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/2beens/mesoplan/internal/periodization/catalog"
	"github.com/2beens/mesoplan/internal/periodization/training"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var benchPress = &catalog.Exercise{
	ID:           "bench_press",
	Name:         "Bench Press",
	Category:     catalog.CategoryCompound,
	MuscleGroups: []string{"chest", "shoulders", "triceps"},
}

func TestCachedRepo_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockexerciseSource(ctrl)
	repo := catalog.NewCachedRepo(source, 1, 60)

	source.EXPECT().
		Get(gomock.Any(), "bench_press").
		Return(benchPress, nil).
		Times(1)

	for range 3 {
		e, err := repo.Get(context.Background(), "bench_press")
		require.NoError(t, err)
		assert.Equal(t, benchPress, e)
	}
	assert.Equal(t, int64(1), repo.EntryCount())
}

func TestCachedRepo_GetNotFoundIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockexerciseSource(ctrl)
	repo := catalog.NewCachedRepo(source, 1, 60)

	source.EXPECT().
		Get(gomock.Any(), "unknown").
		Return(nil, training.NotFoundf("exercise unknown")).
		Times(2)

	for range 2 {
		e, err := repo.Get(context.Background(), "unknown")
		assert.Nil(t, e)
		assert.ErrorIs(t, err, training.ErrNotFound)
	}
	assert.Zero(t, repo.EntryCount())
}

func TestCachedRepo_ListPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockexerciseSource(ctrl)
	repo := catalog.NewCachedRepo(source, 1, 60)

	params := catalog.ListParams{MuscleGroup: "chest"}
	source.EXPECT().
		List(gomock.Any(), params).
		Return([]*catalog.Exercise{benchPress}, nil).
		Times(2)

	for range 2 {
		exercises, err := repo.List(context.Background(), params)
		require.NoError(t, err)
		assert.Len(t, exercises, 1)
	}
}

func TestCachedRepo_ListMuscleGroups(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockexerciseSource(ctrl)
	repo := catalog.NewCachedRepo(source, 1, 60)

	groups := []*catalog.MuscleGroup{{ID: "chest", Name: "Chest"}, {ID: "back", Name: "Back"}}
	gomock.InOrder(
		source.EXPECT().ListMuscleGroups(gomock.Any()).Return(nil, errors.New("db down")),
		source.EXPECT().ListMuscleGroups(gomock.Any()).Return(groups, nil),
	)

	_, err := repo.ListMuscleGroups(context.Background())
	require.Error(t, err)

	for range 2 {
		got, err := repo.ListMuscleGroups(context.Background())
		require.NoError(t, err)
		assert.Equal(t, groups, got)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := catalog.ParseCategory("isolation")
	require.NoError(t, err)
	assert.Equal(t, catalog.CategoryIsolation, c)

	_, err = catalog.ParseCategory("cardio")
	assert.ErrorIs(t, err, training.ErrValidation)
}
