package domain

// Step identifies one of the nine sequential pages of the journal.
// It doubles as the key under which that page's field values are stored.
type Step string

// The nine steps, in journey order.
const (
	StepWelcome     Step = "welcome"
	StepFocus       Step = "focus"
	StepInfluences  Step = "influences"
	StepConnections Step = "connections"
	StepMapping     Step = "mapping"
	StepPatterns    Step = "patterns"
	StepGoals       Step = "goals"
	StepRoadmap     Step = "roadmap"
	StepCommitment  Step = "commitment"
)

// orderedSteps is the canonical journey order.
var orderedSteps = []Step{
	StepWelcome,
	StepFocus,
	StepInfluences,
	StepConnections,
	StepMapping,
	StepPatterns,
	StepGoals,
	StepRoadmap,
	StepCommitment,
}

// Steps returns the nine steps in journey order.
func Steps() []Step {
	out := make([]Step, len(orderedSteps))
	copy(out, orderedSteps)
	return out
}

// StepCount is the total number of journal steps.
const StepCount = 9

// IsValid returns true if the step is one of the nine recognised identifiers.
func (s Step) IsValid() bool {
	switch s {
	case StepWelcome, StepFocus, StepInfluences, StepConnections, StepMapping,
		StepPatterns, StepGoals, StepRoadmap, StepCommitment:
		return true
	default:
		return false
	}
}

// Index returns the zero-based position of the step in the journey,
// or -1 for an unrecognised step.
func (s Step) Index() int {
	for i, step := range orderedSteps {
		if step == s {
			return i
		}
	}
	return -1
}

// StepAt returns the step at the given journey index.
func StepAt(index int) (Step, bool) {
	if index < 0 || index >= len(orderedSteps) {
		return "", false
	}
	return orderedSteps[index], true
}

// String returns the string representation.
func (s Step) String() string {
	return string(s)
}

// Title returns the human-readable heading for the step.
func (s Step) Title() string {
	switch s {
	case StepWelcome:
		return "Welcome"
	case StepFocus:
		return "Your Focus"
	case StepInfluences:
		return "Energy Influences"
	case StepConnections:
		return "Connections"
	case StepMapping:
		return "Energy Map"
	case StepPatterns:
		return "Patterns"
	case StepGoals:
		return "Your Goal"
	case StepRoadmap:
		return "Roadmap"
	case StepCommitment:
		return "Commitment"
	default:
		return "Unknown"
	}
}

// Next returns the following step, or false at the final step.
func (s Step) Next() (Step, bool) {
	idx := s.Index()
	if idx < 0 || idx >= len(orderedSteps)-1 {
		return "", false
	}
	return orderedSteps[idx+1], true
}

// Previous returns the preceding step, or false at the first step.
func (s Step) Previous() (Step, bool) {
	idx := s.Index()
	if idx <= 0 {
		return "", false
	}
	return orderedSteps[idx-1], true
}
