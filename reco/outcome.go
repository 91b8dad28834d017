package reco

// Status is the final verdict on an event.
type Status uint8

const (
	Rejected Status = iota
	Accepted
)

// String implements fmt.Stringer.
func (s Status) String() string {
	if s == Accepted {
		return "accepted"
	}
	return "rejected"
}

// Reason explains a rejection. ReasonNone accompanies Accepted.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonInvalidEvent
	ReasonTooFewLeptons
	ReasonSameSignLeptons
	ReasonLeptonMultiplicity
	ReasonTooFewBJets
	ReasonNoRealSolution
	ReasonBelowThreshold
	ReasonCancelled
)

var reasonNames = [...]string{
	ReasonNone:               "none",
	ReasonInvalidEvent:       "invalid_event",
	ReasonTooFewLeptons:      "too_few_leptons",
	ReasonSameSignLeptons:    "same_sign_leptons",
	ReasonLeptonMultiplicity: "lepton_multiplicity",
	ReasonTooFewBJets:        "too_few_bjets",
	ReasonNoRealSolution:     "no_real_solution",
	ReasonBelowThreshold:     "below_threshold",
	ReasonCancelled:          "cancelled",
}

// Reasons lists every Reason in declaration order.
func Reasons() []Reason {
	out := make([]Reason, len(reasonNames))
	for i := range out {
		out[i] = Reason(i)
	}
	return out
}

// String returns the snake_case name used in logs, metrics and storage.
func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Stage is a step of the reconstruction state machine.
type Stage uint8

const (
	StageStart Stage = iota
	StageLeptonsValidated
	StageJetsEnumerated
	StageGridEvaluated
	StageFiltered
)

// String implements fmt.Stringer.
func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageLeptonsValidated:
		return "leptons_validated"
	case StageJetsEnumerated:
		return "jets_enumerated"
	case StageGridEvaluated:
		return "grid_evaluated"
	case StageFiltered:
		return "filtered"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of Reconstruct.
//   - Accepted: Reason == ReasonNone, Result != nil, Stage == StageFiltered.
//   - Rejected: Result == nil; Stage is the last stage completed; Err
//     carries the underlying error.
type Outcome struct {
	Index  int64
	Status Status
	Reason Reason
	Stage  Stage
	Result *Result
	Err    error
}
