package driving

import "github.com/quietpath/ripple/internal/core/domain"

// ProgressService is the progress ledger: it tracks which steps have been
// visited and which required fields are filled, derives completion
// fractions, and persists itself to its own slot on every update.
type ProgressService interface {
	// RecordVisit marks a step visited and moves the current index.
	RecordVisit(step domain.Step)

	// TrackFieldEdit records whether a required field is currently
	// non-empty. Fields outside the required table are ignored.
	TrackFieldEdit(step domain.Step, field string, nonEmpty bool)

	// CanNavigateTo reports whether navigation to the step is allowed:
	// at most one past the current index, or already visited.
	CanNavigateTo(step domain.Step) bool

	// Advance moves to the next step and returns it, or false at the
	// final step.
	Advance() (domain.Step, bool)

	// Retreat moves to the previous step and returns it, or false at
	// the first step.
	Retreat() (domain.Step, bool)

	// StepCompletion returns the step's completed/required ratio as
	// 0..100, or 100 for steps without required fields.
	StepCompletion(step domain.Step) int

	// Snapshot returns the ledger's current derived state.
	Snapshot() domain.ProgressSnapshot

	// Reset clears the index and visited set and persists.
	Reset()
}
