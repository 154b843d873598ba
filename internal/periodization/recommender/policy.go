package recommender

// Policy holds the thresholds the recommender works with.
type Policy struct {
	// DeloadMargin is how far weekly fatigue may exceed recovery before a deload is flagged.
	DeloadMargin float64
	// MRVProximity counts a muscle as near MRV when its weekly sets reach MRV minus this.
	MRVProximity int
	// TrendTolerance is the week over week fatigue change still reported as stable.
	TrendTolerance float64

	LowRecovery      float64
	HighRecovery     float64
	LowRecoveryStep  int
	MidRecoveryStep  int
	HighRecoveryStep int
	// DefaultRecovery stands in for users without landmarks.
	DefaultRecovery float64

	DeloadMinDays int
	// RecoveryBlend is the weight of check-in inferred recovery in the weekly landmark update.
	RecoveryBlend float64
}

func DefaultPolicy() Policy {
	return Policy{
		DeloadMargin:     1.5,
		MRVProximity:     1,
		TrendTolerance:   0.5,
		LowRecovery:      5,
		HighRecovery:     7,
		LowRecoveryStep:  0,
		MidRecoveryStep:  1,
		HighRecoveryStep: 2,
		DefaultRecovery:  5,
		DeloadMinDays:    7,
		RecoveryBlend:    0.5,
	}
}

// Step returns the weekly set increase the given recovery level allows.
func (p Policy) Step(recovery float64) int {
	switch {
	case recovery > p.HighRecovery:
		return p.HighRecoveryStep
	case recovery >= p.LowRecovery:
		return p.MidRecoveryStep
	default:
		return p.LowRecoveryStep
	}
}

// TargetSets bounds next week's sets for one muscle group by its MEV and MAV.
func (p Policy) TargetSets(lastWeekSets, mev, mav int, recovery float64, deload bool) int {
	if deload {
		return mev
	}
	target := max(lastWeekSets, mev) + p.Step(recovery)
	return min(max(target, mev), mav)
}

// InferredRecovery maps a fatigue score to the recovery scale.
func InferredRecovery(fatigue float64) float64 {
	return min(max(11-fatigue, 0), 10)
}
