package planner

// Phase is a step of the generation state machine.
type Phase int

const (
	PhasePrompting Phase = iota
	PhaseInvoking
	PhaseParsing
	PhaseValidating
	PhaseAssembling
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhasePrompting:
		return "prompting"
	case PhaseInvoking:
		return "invoking"
	case PhaseParsing:
		return "parsing"
	case PhaseValidating:
		return "validating"
	case PhaseAssembling:
		return "assembling"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the result of executing the current phase.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeParseFailed
	OutcomeInvalid
	OutcomeTransportFailed
)

// State is one immutable point in the retry state machine. Parse and
// validation attempts are counted independently; transport attempts belong to
// the model client and never appear here.
type State struct {
	Phase              Phase
	ParseAttempts      int
	ValidationAttempts int
}

// NewState starts a generation cycle at the prompt-building phase.
func NewState() State {
	return State{Phase: PhasePrompting}
}

// Next returns the state after observing outcome in the current phase. It is
// a pure function: the two recoverable back-edges (parse failed, invalid)
// route back to PhaseInvoking until their ceilings are reached, after which
// the machine lands in PhaseFailed and stays there.
func (s State) Next(outcome Outcome) State {
	switch s.Phase {
	case PhasePrompting:
		if outcome == OutcomeOK {
			s.Phase = PhaseInvoking
			return s
		}
	case PhaseInvoking:
		if outcome == OutcomeOK {
			s.Phase = PhaseParsing
			return s
		}
	case PhaseParsing:
		switch outcome {
		case OutcomeOK:
			s.Phase = PhaseValidating
			return s
		case OutcomeParseFailed:
			s.ParseAttempts++
			if s.ParseAttempts >= MaxParseRetries {
				s.Phase = PhaseFailed
			} else {
				s.Phase = PhaseInvoking
			}
			return s
		}
	case PhaseValidating:
		switch outcome {
		case OutcomeOK:
			s.Phase = PhaseAssembling
			return s
		case OutcomeInvalid:
			s.ValidationAttempts++
			if s.ValidationAttempts >= MaxValidationRetries {
				s.Phase = PhaseFailed
			} else {
				s.Phase = PhaseInvoking
			}
			return s
		}
	case PhaseAssembling:
		if outcome == OutcomeOK {
			s.Phase = PhaseDone
			return s
		}
	}
	s.Phase = PhaseFailed
	return s
}
