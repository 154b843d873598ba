package landmarks

import (
	"time"

	"github.com/2beens/mesoplan/internal/periodization/training"
)

const (
	MinRecoveryLevel = 0
	MaxRecoveryLevel = 10
)

// VolumeLandmark holds the weekly set landmarks of one user for one muscle group.
type VolumeLandmark struct {
	UserID        int       `json:"userId"`
	MuscleGroupID string    `json:"muscleGroupId"`
	MEV           int       `json:"mev"`
	MAV           int       `json:"mav"`
	MRV           int       `json:"mrv"`
	RecoveryLevel float64   `json:"recoveryLevel"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (l *VolumeLandmark) Validate() error {
	if l.MuscleGroupID == "" {
		return training.Validationf("muscle group id empty")
	}
	if l.MEV < 0 || l.MAV < 0 || l.MRV < 0 {
		return training.Validationf("volume landmarks must not be negative")
	}
	if l.MEV > l.MAV || l.MAV > l.MRV {
		return training.Validationf("volume landmarks must satisfy mev <= mav <= mrv, got %d/%d/%d", l.MEV, l.MAV, l.MRV)
	}
	return ValidateRecoveryLevel(l.RecoveryLevel)
}

func ValidateRecoveryLevel(level float64) error {
	if level < MinRecoveryLevel || level > MaxRecoveryLevel {
		return training.Validationf("recovery level %.1f outside [%d, %d]", level, MinRecoveryLevel, MaxRecoveryLevel)
	}
	return nil
}

// Averages returns mean MEV and mean recovery level over ls. ok is false for no landmarks.
func Averages(ls []*VolumeLandmark) (avgMEV, avgRecovery float64, ok bool) {
	if len(ls) == 0 {
		return 0, 0, false
	}
	for _, l := range ls {
		avgMEV += float64(l.MEV)
		avgRecovery += l.RecoveryLevel
	}
	n := float64(len(ls))
	return avgMEV / n, avgRecovery / n, true
}
