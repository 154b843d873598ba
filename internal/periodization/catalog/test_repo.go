package catalog

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/2beens/mesoplan/internal/periodization/training"
)

// TestRepo is an in-memory exercise source holding the seeded catalog.
type TestRepo struct {
	mu           sync.Mutex
	exercises    map[string]*Exercise
	muscleGroups []*MuscleGroup
}

var _ exerciseSource = (*TestRepo)(nil)

func NewTestRepo() *TestRepo {
	r := &TestRepo{
		exercises: map[string]*Exercise{},
		muscleGroups: []*MuscleGroup{
			{ID: "chest", Name: "Chest"},
			{ID: "back", Name: "Back"},
			{ID: "shoulders", Name: "Shoulders"},
			{ID: "biceps", Name: "Biceps"},
			{ID: "triceps", Name: "Triceps"},
			{ID: "forearms", Name: "Forearms"},
			{ID: "quads", Name: "Quadriceps"},
			{ID: "hamstrings", Name: "Hamstrings"},
			{ID: "glutes", Name: "Glutes"},
			{ID: "calves", Name: "Calves"},
			{ID: "abs", Name: "Abs"},
		},
	}
	for _, e := range []*Exercise{
		{ID: "bench_press", Name: "Bench Press", Category: CategoryCompound, MuscleGroups: []string{"chest", "shoulders", "triceps"}},
		{ID: "incline_dumbbell_press", Name: "Incline Dumbbell Press", Category: CategoryCompound, MuscleGroups: []string{"chest", "shoulders"}},
		{ID: "dumbbell_fly", Name: "Dumbbell Fly", Category: CategoryIsolation, MuscleGroups: []string{"chest"}},
		{ID: "push_up", Name: "Push Up", Category: CategoryBodyweight, MuscleGroups: []string{"chest", "triceps"}},
		{ID: "dip", Name: "Dip", Category: CategoryBodyweight, MuscleGroups: []string{"chest", "triceps"}},
		{ID: "overhead_press", Name: "Overhead Press", Category: CategoryCompound, MuscleGroups: []string{"shoulders", "triceps"}},
		{ID: "lateral_raise", Name: "Lateral Raise", Category: CategoryIsolation, MuscleGroups: []string{"shoulders"}},
		{ID: "face_pull", Name: "Face Pull", Category: CategoryIsolation, MuscleGroups: []string{"back", "shoulders"}},
		{ID: "barbell_row", Name: "Barbell Row", Category: CategoryCompound, MuscleGroups: []string{"back", "biceps"}},
		{ID: "pull_up", Name: "Pull Up", Category: CategoryBodyweight, MuscleGroups: []string{"back", "biceps"}},
		{ID: "lat_pulldown", Name: "Lat Pulldown", Category: CategoryCompound, MuscleGroups: []string{"back", "biceps"}},
		{ID: "deadlift", Name: "Deadlift", Category: CategoryCompound, MuscleGroups: []string{"back", "glutes", "hamstrings"}},
		{ID: "squat", Name: "Back Squat", Category: CategoryCompound, MuscleGroups: []string{"glutes", "quads"}},
		{ID: "leg_press", Name: "Leg Press", Category: CategoryCompound, MuscleGroups: []string{"glutes", "quads"}},
		{ID: "romanian_deadlift", Name: "Romanian Deadlift", Category: CategoryCompound, MuscleGroups: []string{"glutes", "hamstrings"}},
		{ID: "leg_extension", Name: "Leg Extension", Category: CategoryIsolation, MuscleGroups: []string{"quads"}},
		{ID: "leg_curl", Name: "Leg Curl", Category: CategoryIsolation, MuscleGroups: []string{"hamstrings"}},
		{ID: "calf_raise", Name: "Calf Raise", Category: CategoryIsolation, MuscleGroups: []string{"calves"}},
		{ID: "barbell_curl", Name: "Barbell Curl", Category: CategoryIsolation, MuscleGroups: []string{"biceps"}},
		{ID: "hammer_curl", Name: "Hammer Curl", Category: CategoryIsolation, MuscleGroups: []string{"biceps", "forearms"}},
		{ID: "triceps_pushdown", Name: "Triceps Pushdown", Category: CategoryIsolation, MuscleGroups: []string{"triceps"}},
		{ID: "cable_crunch", Name: "Cable Crunch", Category: CategoryIsolation, MuscleGroups: []string{"abs"}},
		{ID: "hanging_leg_raise", Name: "Hanging Leg Raise", Category: CategoryBodyweight, MuscleGroups: []string{"abs"}},
		{ID: "plank", Name: "Plank", Category: CategoryBodyweight, MuscleGroups: []string{"abs"}},
	} {
		r.exercises[e.ID] = e
	}
	return r
}

// Add stores e, replacing an exercise with the same id.
func (r *TestRepo) Add(e *Exercise) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *e
	r.exercises[e.ID] = &c
}

func (r *TestRepo) Get(_ context.Context, id string) (*Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exercises[id]
	if !ok {
		return nil, training.NotFoundf("exercise %s", id)
	}
	c := *e
	return &c, nil
}

func (r *TestRepo) List(_ context.Context, params ListParams) ([]*Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exercises := make([]*Exercise, 0, len(r.exercises))
	for _, e := range r.exercises {
		if params.Category != "" && e.Category != params.Category {
			continue
		}
		if params.MuscleGroup != "" && !slices.Contains(e.MuscleGroups, params.MuscleGroup) {
			continue
		}
		c := *e
		exercises = append(exercises, &c)
	}
	sort.Slice(exercises, func(i, j int) bool {
		return exercises[i].Name < exercises[j].Name
	})
	return exercises, nil
}

func (r *TestRepo) ListMuscleGroups(context.Context) ([]*MuscleGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.muscleGroups), nil
}
