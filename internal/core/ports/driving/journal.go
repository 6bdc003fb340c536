package driving

import "github.com/quietpath/ripple/internal/core/domain"

// ExportFormat selects the serialisation produced by ExportData.
type ExportFormat string

// Supported export formats.
const (
	// ExportJSON is the full document, pretty-printed.
	ExportJSON ExportFormat = "json"

	// ExportText is the human-readable digest of named sections.
	ExportText ExportFormat = "text"
)

// IsValid returns true if the format is recognised.
func (f ExportFormat) IsValid() bool {
	return f == ExportJSON || f == ExportText
}

// JournalService is the document model: the single owner of the in-memory
// document and the sole writer to the storage slot backing it.
//
// Mutating operations stamp LastModified and schedule a debounced persist;
// Flush forces the pending write out, and is called on teardown.
type JournalService interface {
	// GetField returns the stored value, or def when the section or
	// field is absent. Never fails.
	GetField(step domain.Step, field string, def any) any

	// SaveField creates the section if needed and sets one value.
	SaveField(step domain.Step, field string, value any)

	// SaveSection shallow-merges values into the existing section;
	// existing keys not present in values are retained.
	SaveSection(step domain.Step, values domain.Section)

	// GetSection returns the section, or an empty mapping if undefined.
	GetSection(step domain.Step) domain.Section

	// SaveCurrentSection records the navigation position, independent of
	// section content.
	SaveCurrentSection(step domain.Step)

	// GetCurrentSection returns the navigation position, defaulting to
	// the first step if unset.
	GetCurrentSection() domain.Step

	// ExportData serialises the document. Returns ErrUnknownFormat for
	// any format other than json or text.
	ExportData(format ExportFormat) (string, error)

	// ImportData accepts a JSON payload. An invalid shape fails with
	// ErrInvalidImport without mutating current state. With merge, the
	// payload is deep-merged onto defaults; otherwise it replaces the
	// document outright.
	ImportData(payload []byte, merge bool) error

	// ClearAllData resets the in-memory document to the default
	// structure and removes the backing slot.
	ClearAllData()

	// CompletionPercentage returns the share of the seven anchor fields
	// currently non-empty, 0..100.
	CompletionPercentage() int

	// AutoPopulationData computes default values for the target step,
	// derived from answers in earlier steps. Callers apply these only to
	// currently-empty destinations - stored answers always win.
	AutoPopulationData(target domain.Step) domain.Section

	// Flush writes any pending debounced persist immediately.
	Flush()

	// Document returns a deep copy of the current document.
	Document() *domain.Document
}
