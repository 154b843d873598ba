package defaults

import (
	"math"

	"github.com/2beens/mesoplan/internal/periodization/catalog"
	"github.com/2beens/mesoplan/internal/periodization/landmarks"
)

// Prescription is the structural part of a session exercise.
type Prescription struct {
	Sets       int    `json:"sets"`
	TargetReps string `json:"targetReps"`
	RestPeriod int    `json:"restPeriod"`
}

type CategoryPrescription struct {
	RestPeriod int
	TargetReps string
}

// Policy holds every constant the defaulting algorithm uses.
type Policy struct {
	// FallbackSets applies when the user has no landmark for any muscle
	// group of the exercise.
	FallbackSets int
	MinSets      int
	// MaxSets caps the recovery headroom scale-up.
	MaxSets int

	LowRecovery        float64
	HighRecovery       float64
	LowRecoveryFactor  float64
	HighRecoveryFactor float64

	ByCategory map[catalog.Category]CategoryPrescription
	Other      CategoryPrescription
}

func DefaultPolicy() Policy {
	return Policy{
		FallbackSets:       3,
		MinSets:            1,
		MaxSets:            6,
		LowRecovery:        5,
		HighRecovery:       7,
		LowRecoveryFactor:  0.8,
		HighRecoveryFactor: 1.2,
		ByCategory: map[catalog.Category]CategoryPrescription{
			catalog.CategoryCompound:  {RestPeriod: 180, TargetReps: "5-8"},
			catalog.CategoryIsolation: {RestPeriod: 90, TargetReps: "10-15"},
		},
		Other: CategoryPrescription{RestPeriod: 120, TargetReps: "8-12"},
	}
}

func (p Policy) forCategory(category catalog.Category) CategoryPrescription {
	if cp, ok := p.ByCategory[category]; ok {
		return cp
	}
	return p.Other
}

// Sets derives the set count from the landmarks of the exercise's muscle groups.
// MinSets floors every branch, MaxSets only caps the high recovery one.
func (p Policy) Sets(ls []*landmarks.VolumeLandmark) int {
	avgMEV, avgRecovery, ok := landmarks.Averages(ls)
	if !ok {
		return max(p.FallbackSets, p.MinSets)
	}

	var sets int
	switch {
	case avgRecovery < p.LowRecovery:
		sets = int(math.Floor(avgMEV * p.LowRecoveryFactor))
	case avgRecovery > p.HighRecovery:
		sets = min(int(math.Ceil(avgMEV*p.HighRecoveryFactor)), p.MaxSets)
	default:
		sets = int(math.Round(avgMEV))
	}
	return max(sets, p.MinSets)
}

// Compute returns the prescription for an exercise of category, given the
// user's landmarks for its muscle groups.
func Compute(policy Policy, category catalog.Category, ls []*landmarks.VolumeLandmark) Prescription {
	cp := policy.forCategory(category)
	return Prescription{
		Sets:       policy.Sets(ls),
		TargetReps: cp.TargetReps,
		RestPeriod: cp.RestPeriod,
	}
}
