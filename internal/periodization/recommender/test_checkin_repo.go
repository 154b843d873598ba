package recommender

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/2beens/mesoplan/internal/periodization/training"
)

// TestCheckInRepo keeps check-ins in memory.
type TestCheckInRepo struct {
	mu       sync.Mutex
	checkIns []*CheckIn
	nextID   int
}

var _ checkInStore = (*TestCheckInRepo)(nil)

func NewTestCheckInRepo() *TestCheckInRepo {
	return &TestCheckInRepo{}
}

func (r *TestCheckInRepo) Add(_ context.Context, c CheckIn) (*CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	c.Date = training.Day(c.Date)
	c.CreatedAt = time.Now()
	stored := c
	r.checkIns = append(r.checkIns, &stored)
	return &c, nil
}

func (r *TestCheckInRepo) List(_ context.Context, userID int, from, to time.Time) ([]*CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	checkIns := make([]*CheckIn, 0)
	for _, c := range r.checkIns {
		if c.UserID != userID || c.Date.Before(training.Day(from)) || c.Date.After(training.Day(to)) {
			continue
		}
		cc := *c
		checkIns = append(checkIns, &cc)
	}
	sort.SliceStable(checkIns, func(i, j int) bool {
		return checkIns[i].Date.Before(checkIns[j].Date)
	})
	return checkIns, nil
}
