package training

type Phase string

const (
	PhaseAccumulation    Phase = "accumulation"
	PhaseIntensification Phase = "intensification"
	PhaseDeload          Phase = "deload"
)

// phaseTransitions holds the only legal edge out of every phase.
var phaseTransitions = map[Phase]Phase{
	PhaseAccumulation:    PhaseIntensification,
	PhaseIntensification: PhaseDeload,
	PhaseDeload:          PhaseAccumulation,
}

func (p Phase) Valid() bool {
	_, ok := phaseTransitions[p]
	return ok
}

func (p Phase) Next() Phase {
	return phaseTransitions[p]
}

func (p Phase) String() string {
	return string(p)
}

func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	if !p.Valid() {
		return "", Validationf("unknown phase %q", s)
	}
	return p, nil
}

func ValidateTransition(from, to Phase) error {
	if !from.Valid() || !to.Valid() {
		return Validationf("unknown phase transition %q -> %q", from, to)
	}
	if from.Next() != to {
		return InvalidStatef("illegal phase transition %s -> %s", from, to)
	}
	return nil
}
