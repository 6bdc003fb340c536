package driven

// SlotStore provides key/value blob persistence. Each component owns a
// wholly distinct slot (document, progress ledger, credential) and never
// shares one, so no two writers ever serialise to the same key.
//
// Storage failures are contained at the adapter boundary: they are
// logged there and surfaced to callers as a boolean, never as an error.
// Callers treat false as "not persisted this cycle" and continue
// operating on in-memory state.
type SlotStore interface {
	// Get retrieves a slot's payload. The second return is false when
	// the slot is absent or the read failed.
	Get(slot string) (string, bool)

	// Set stores a payload under a slot, replacing any previous value.
	// Returns false if the write could not be persisted.
	Set(slot, payload string) bool

	// Remove deletes a slot. Removing an absent slot is not a failure.
	Remove(slot string) bool

	// Close releases resources.
	Close() error
}

// Slot names. Each backs exactly one component.
const (
	// SlotDocument backs the journal document.
	SlotDocument = "journal.document"

	// SlotProgress backs the progress ledger.
	SlotProgress = "journal.progress"

	// SlotCredential backs the insight API credential.
	SlotCredential = "insight.credential"
)
