package defaults_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/2beens/mesoplan/internal/periodization/catalog"
	"github.com/2beens/mesoplan/internal/periodization/defaults"
	"github.com/2beens/mesoplan/internal/periodization/landmarks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func landmark(muscleGroup string, mev int, recovery float64) *landmarks.VolumeLandmark {
	return &landmarks.VolumeLandmark{
		UserID:        1,
		MuscleGroupID: muscleGroup,
		MEV:           mev,
		MAV:           mev + 6,
		MRV:           mev + 12,
		RecoveryLevel: recovery,
	}
}

func TestCompute_Sets(t *testing.T) {
	policy := defaults.DefaultPolicy()

	for _, tc := range []struct {
		name      string
		landmarks []*landmarks.VolumeLandmark
		sets      int
	}{
		{"no landmarks", nil, 3},
		{"low recovery", []*landmarks.VolumeLandmark{landmark("chest", 10, 3)}, 8},
		{"low recovery floors", []*landmarks.VolumeLandmark{landmark("chest", 4, 4.9)}, 3},
		{"low recovery never below one", []*landmarks.VolumeLandmark{landmark("abs", 1, 2)}, 1},
		{"mid recovery rounds", []*landmarks.VolumeLandmark{landmark("chest", 4, 5), landmark("triceps", 5, 7)}, 5},
		{"mid recovery half rounds up", []*landmarks.VolumeLandmark{landmark("chest", 2, 6), landmark("triceps", 3, 6)}, 3},
		{"high recovery ceils", []*landmarks.VolumeLandmark{landmark("biceps", 4, 8)}, 5},
		{"high recovery capped", []*landmarks.VolumeLandmark{landmark("quads", 8, 9)}, 6},
		{"mid recovery keeps mev above max", []*landmarks.VolumeLandmark{landmark("back", 12, 6)}, 12},
		{"recovery 5 is mid", []*landmarks.VolumeLandmark{landmark("lats", 10, 5)}, 10},
		{"recovery 7 is mid", []*landmarks.VolumeLandmark{landmark("back", 9, 7)}, 9},
		{"zero mev", []*landmarks.VolumeLandmark{landmark("calves", 0, 6)}, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := defaults.Compute(policy, catalog.CategoryCompound, tc.landmarks)
			assert.Equal(t, tc.sets, p.Sets)
		})
	}
}

func TestCompute_ByCategory(t *testing.T) {
	policy := defaults.DefaultPolicy()

	compound := defaults.Compute(policy, catalog.CategoryCompound, nil)
	assert.Equal(t, defaults.Prescription{Sets: 3, TargetReps: "5-8", RestPeriod: 180}, compound)

	isolation := defaults.Compute(policy, catalog.CategoryIsolation, nil)
	assert.Equal(t, defaults.Prescription{Sets: 3, TargetReps: "10-15", RestPeriod: 90}, isolation)

	bodyweight := defaults.Compute(policy, catalog.CategoryBodyweight, nil)
	assert.Equal(t, defaults.Prescription{Sets: 3, TargetReps: "8-12", RestPeriod: 120}, bodyweight)
}

func TestCompute_PolicyOverride(t *testing.T) {
	policy := defaults.DefaultPolicy()
	policy.FallbackSets = 4
	policy.MaxSets = 10
	policy.Other = defaults.CategoryPrescription{RestPeriod: 60, TargetReps: "12-20"}

	p := defaults.Compute(policy, catalog.CategoryBodyweight, nil)
	assert.Equal(t, defaults.Prescription{Sets: 4, TargetReps: "12-20", RestPeriod: 60}, p)

	p = defaults.Compute(policy, catalog.CategoryIsolation, []*landmarks.VolumeLandmark{landmark("biceps", 8, 9)})
	assert.Equal(t, 10, p.Sets)
}
