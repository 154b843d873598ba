package recommender

import (
	"time"

	"github.com/2beens/mesoplan/internal/periodization/training"
)

const (
	minScale = 1
	maxScale = 10
)

// CheckIn is one daily wellness report, every scale in [1, 10].
type CheckIn struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Date      time.Time `json:"date"`
	Energy    int       `json:"energy"`
	Hunger    int       `json:"hunger"`
	Sleep     int       `json:"sleep"`
	Stress    int       `json:"stress"`
	Cravings  int       `json:"cravings"`
	Adherence int       `json:"adherence"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *CheckIn) Validate() error {
	if c.UserID <= 0 {
		return training.Validationf("invalid user id %d", c.UserID)
	}
	if c.Date.IsZero() {
		return training.Validationf("check-in date missing")
	}
	for name, v := range map[string]int{
		"energy":    c.Energy,
		"hunger":    c.Hunger,
		"sleep":     c.Sleep,
		"stress":    c.Stress,
		"cravings":  c.Cravings,
		"adherence": c.Adherence,
	} {
		if v < minScale || v > maxScale {
			return training.Validationf("%s %d outside [%d, %d]", name, v, minScale, maxScale)
		}
	}
	return nil
}

// Fatigue folds the check-in into one score in [1, 10], higher meaning
// more fatigued. Energy, sleep and adherence count inverted.
func (c *CheckIn) Fatigue() float64 {
	inv := func(v int) int { return maxScale + 1 - v }
	sum := inv(c.Energy) + inv(c.Sleep) + inv(c.Adherence) + c.Stress + c.Hunger + c.Cravings
	return float64(sum) / 6
}

// meanFatigue averages the fatigue of check-ins dated in (from, to].
func meanFatigue(checkIns []*CheckIn, from, to time.Time) (float64, int) {
	sum, n := 0.0, 0
	for _, c := range checkIns {
		d := training.Day(c.Date)
		if d.After(training.Day(from)) && !d.After(training.Day(to)) {
			sum += c.Fatigue()
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}
