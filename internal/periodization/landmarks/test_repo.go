package landmarks

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/2beens/mesoplan/internal/periodization/training"
)

// TestRepo is an in-memory landmarks repo.
type TestRepo struct {
	mu        sync.Mutex
	landmarks map[landmarkKey]*VolumeLandmark
}

type landmarkKey struct {
	userID        int
	muscleGroupID string
}

var _ landmarksRepo = (*TestRepo)(nil)

func NewTestRepo(ls ...VolumeLandmark) *TestRepo {
	r := &TestRepo{
		landmarks: map[landmarkKey]*VolumeLandmark{},
	}
	for _, l := range ls {
		stored := l
		r.landmarks[landmarkKey{l.UserID, l.MuscleGroupID}] = &stored
	}
	return r
}

func (r *TestRepo) list(userID int, keep func(*VolumeLandmark) bool) []*VolumeLandmark {
	landmarks := make([]*VolumeLandmark, 0)
	for _, l := range r.landmarks {
		if l.UserID == userID && keep(l) {
			c := *l
			landmarks = append(landmarks, &c)
		}
	}
	sort.Slice(landmarks, func(i, j int) bool {
		return landmarks[i].MuscleGroupID < landmarks[j].MuscleGroupID
	})
	return landmarks
}

func (r *TestRepo) ListForUser(_ context.Context, userID int) ([]*VolumeLandmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(userID, func(*VolumeLandmark) bool { return true }), nil
}

func (r *TestRepo) ListForMuscleGroups(_ context.Context, userID int, muscleGroupIDs []string) ([]*VolumeLandmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(userID, func(l *VolumeLandmark) bool {
		return slices.Contains(muscleGroupIDs, l.MuscleGroupID)
	}), nil
}

func (r *TestRepo) Upsert(_ context.Context, l VolumeLandmark) (*VolumeLandmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.UpdatedAt = time.Now()
	stored := l
	r.landmarks[landmarkKey{l.UserID, l.MuscleGroupID}] = &stored
	return &l, nil
}

func (r *TestRepo) SetRecoveryLevel(_ context.Context, userID int, muscleGroupID string, level float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.landmarks[landmarkKey{userID, muscleGroupID}]
	if !ok {
		return training.NotFoundf("landmark %s for user %d", muscleGroupID, userID)
	}
	l.RecoveryLevel = level
	l.UpdatedAt = time.Now()
	return nil
}
