package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/quietpath/ripple/internal/core/domain"
	"github.com/quietpath/ripple/internal/core/ports/driven"
	"github.com/quietpath/ripple/internal/core/ports/driving"
	"github.com/quietpath/ripple/internal/logger"
)

// Ensure JournalService implements the interface.
var _ driving.JournalService = (*JournalService)(nil)

// DefaultDebounce is the quiet window for the coalescing persistence
// writer. Repeated saves within the window collapse into one write.
const DefaultDebounce = 800 * time.Millisecond

// textExportSections is the fixed subset of steps included in the
// human-readable export digest, in output order.
var textExportSections = []domain.Step{
	domain.StepFocus,
	domain.StepInfluences,
	domain.StepConnections,
	domain.StepPatterns,
	domain.StepGoals,
	domain.StepCommitment,
}

// JournalService is the document model. It owns the single in-memory
// document and is the sole writer to the slot backing it.
//
// Mutations are guarded by a mutex because the debounced persist timer
// fires on its own goroutine.
type JournalService struct {
	mu       sync.Mutex
	store    driven.SlotStore
	doc      *domain.Document
	timer    *time.Timer
	debounce time.Duration
	now      func() time.Time
}

// JournalOption customises service construction.
type JournalOption func(*JournalService)

// WithDebounce overrides the persistence quiet window.
func WithDebounce(d time.Duration) JournalOption {
	return func(s *JournalService) { s.debounce = d }
}

// WithClock overrides the time source. Useful for testing.
func WithClock(now func() time.Time) JournalOption {
	return func(s *JournalService) { s.now = now }
}

// NewJournalService creates the document model, restoring the document
// from its slot. A payload that fails the minimal shape check is
// discarded in favour of the default structure; a payload that passes is
// deep-merged onto fresh defaults so legacy shapes self-heal.
func NewJournalService(store driven.SlotStore, opts ...JournalOption) *JournalService {
	s := &JournalService{
		store:    store,
		debounce: DefaultDebounce,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.doc = s.load()
	return s
}

// load restores the document from storage, healing or discarding as needed.
func (s *JournalService) load() *domain.Document {
	defaults := domain.NewDocument(s.now())

	payload, ok := s.store.Get(driven.SlotDocument)
	if !ok {
		return defaults
	}
	data := []byte(payload)
	if !domain.HasMinimalShape(data) {
		logger.Warn("stored document failed shape check, starting fresh")
		return defaults
	}

	var loaded domain.Document
	if err := json.Unmarshal(data, &loaded); err != nil {
		logger.Warn("stored document unreadable: %v", err)
		return defaults
	}
	return loaded.MergeOnto(defaults)
}

// GetField returns the stored value, or def when absent. Never fails.
func (s *JournalService) GetField(step domain.Step, field string, def any) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	section, ok := s.doc.Sections[step]
	if !ok {
		return def
	}
	value, ok := section[field]
	if !ok {
		return def
	}
	return value
}

// SaveField sets one value, stamps LastModified, and schedules a
// debounced persist.
func (s *JournalService) SaveField(step domain.Step, field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	section, ok := s.doc.Sections[step]
	if !ok {
		section = domain.Section{}
		s.doc.Sections[step] = section
	}
	section[field] = value
	s.doc.Metadata.LastModified = s.now()
	s.schedulePersistLocked()
}

// SaveSection shallow-merges values into the existing section. Existing
// keys not present in values are retained.
func (s *JournalService) SaveSection(step domain.Step, values domain.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()

	section, ok := s.doc.Sections[step]
	if !ok {
		section = domain.Section{}
		s.doc.Sections[step] = section
	}
	for field, value := range values {
		section[field] = value
	}
	s.doc.Metadata.LastModified = s.now()
	s.schedulePersistLocked()
}

// GetSection returns a copy of the section, or an empty mapping.
func (s *JournalService) GetSection(step domain.Step) domain.Section {
	s.mu.Lock()
	defer s.mu.Unlock()

	section, ok := s.doc.Sections[step]
	if !ok {
		return domain.Section{}
	}
	out := make(domain.Section, len(section))
	for field, value := range section {
		out[field] = value
	}
	return out
}

// SaveCurrentSection records the navigation position.
func (s *JournalService) SaveCurrentSection(step domain.Step) {
	if !step.IsValid() {
		logger.Warn("ignoring unknown step %q", step)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Metadata.CurrentSection = step
	s.doc.Metadata.LastModified = s.now()
	s.schedulePersistLocked()
}

// GetCurrentSection returns the navigation position, defaulting to the
// first step.
func (s *JournalService) GetCurrentSection() domain.Step {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.Metadata.CurrentSection.IsValid() {
		return s.doc.Metadata.CurrentSection
	}
	return domain.StepWelcome
}

// ExportData serialises the document as pretty-printed JSON or as the
// human-readable text digest.
func (s *JournalService) ExportData(format driving.ExportFormat) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch format {
	case driving.ExportJSON:
		data, err := json.MarshalIndent(s.doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("exporting document: %w", err)
		}
		return string(data), nil
	case driving.ExportText:
		return s.textDigestLocked(), nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}
}

// textDigestLocked renders the named sections: every non-empty string or
// non-empty array field as "Readable Label: value".
func (s *JournalService) textDigestLocked() string {
	var b strings.Builder
	b.WriteString("My Reflection Journey\n")
	b.WriteString(s.doc.Metadata.LastModified.Format("2 January 2006"))
	b.WriteString("\n")

	for _, step := range textExportSections {
		section := s.doc.Sections[step]
		var lines []string
		for _, spec := range domain.StepFields(step) {
			value, ok := section[spec.Key]
			if !ok || domain.IsEmptyValue(value) {
				continue
			}
			var rendered string
			if list, isList := domain.AsStringSlice(value); isList {
				rendered = strings.Join(list, ", ")
			} else if str := domain.AsString(value); str != "" {
				rendered = str
			} else {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: %s", domain.ReadableLabel(spec.Key), rendered))
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString("\n== ")
		b.WriteString(step.Title())
		b.WriteString(" ==\n")
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ImportData replaces or merges the document from a JSON payload. An
// invalid shape fails without mutating current state.
func (s *JournalService) ImportData(payload []byte, merge bool) error {
	if !domain.HasMinimalShape(payload) {
		return fmt.Errorf("%w: missing metadata or core sections", domain.ErrInvalidImport)
	}

	var incoming domain.Document
	if err := json.Unmarshal(payload, &incoming); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if merge {
		// Schema-healing import: the payload is merged onto a freshly
		// generated default structure, not onto the current document.
		s.doc = incoming.MergeOnto(domain.NewDocument(s.now()))
	} else {
		if incoming.Sections == nil {
			incoming.Sections = make(map[domain.Step]domain.Section)
		}
		for _, step := range domain.Steps() {
			if incoming.Sections[step] == nil {
				incoming.Sections[step] = domain.Section{}
			}
		}
		incoming.Metadata.LastModified = s.now()
		s.doc = &incoming
	}
	s.persistLocked()
	return nil
}

// ClearAllData resets the in-memory document and removes the backing slot.
func (s *JournalService) ClearAllData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.doc = domain.NewDocument(s.now())
	s.store.Remove(driven.SlotDocument)
}

// CompletionPercentage returns the share of anchor fields currently
// holding non-empty strings, rounded to the nearest integer.
func (s *JournalService) CompletionPercentage() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	anchors := domain.AnchorFields()
	filled := 0
	for _, ref := range anchors {
		if section, ok := s.doc.Sections[ref.Step]; ok {
			if domain.AsString(section[ref.Field]) != "" {
				filled++
			}
		}
	}
	return int(math.Round(float64(filled) / float64(len(anchors)) * 100))
}

// AutoPopulationData computes default values for the target step from
// answers in earlier steps. Callers apply these only to currently-empty
// destinations.
func (s *JournalService) AutoPopulationData(target domain.Step) domain.Section {
	s.mu.Lock()
	defer s.mu.Unlock()

	field := func(step domain.Step, key string) string {
		if section, ok := s.doc.Sections[step]; ok {
			return domain.AsString(section[key])
		}
		return ""
	}

	out := domain.Section{}
	switch target {
	case domain.StepMapping:
		if v := field(domain.StepFocus, "wantMore"); v != "" {
			out["centralFocus"] = v
		}
		if v := joinNonEmpty(field(domain.StepConnections, "whoSupports"), field(domain.StepConnections, "whatSupports")); v != "" {
			out["positiveInfluences"] = v
		}
		if v := joinNonEmpty(field(domain.StepConnections, "whoDrains"), field(domain.StepConnections, "whatDrains")); v != "" {
			out["negativeInfluences"] = v
		}
	case domain.StepGoals:
		if v := field(domain.StepMapping, "leveragePoint"); v != "" {
			out["leveragePoint"] = v
		}
	case domain.StepRoadmap:
		if v := field(domain.StepGoals, "goalStatement"); v != "" {
			out["goalRestatement"] = v
		}
	}
	return out
}

// joinNonEmpty joins the non-blank parts with a comma.
func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, ", ")
}

// Document returns a deep copy of the current document.
func (s *JournalService) Document() *domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Flush writes any pending persist immediately. Called on teardown so a
// still-running debounce window cannot lose the last edits.
func (s *JournalService) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.persistLocked()
}

// schedulePersistLocked arms or re-arms the coalescing write timer. A
// write happens no sooner than the quiet window after the most recent
// mutation.
func (s *JournalService) schedulePersistLocked() {
	if s.timer == nil {
		s.timer = time.AfterFunc(s.debounce, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.persistLocked()
		})
		return
	}
	s.timer.Reset(s.debounce)
}

// stopTimerLocked cancels a pending debounced write.
func (s *JournalService) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// persistLocked writes the document to its slot. A storage failure is
// already logged by the adapter; the document stays dirty in memory and
// the next mutation schedules another attempt.
func (s *JournalService) persistLocked() {
	data, err := json.Marshal(s.doc)
	if err != nil {
		logger.Warn("serialising document: %v", err)
		return
	}
	if !s.store.Set(driven.SlotDocument, string(data)) {
		logger.Debug("document not persisted this cycle")
	}
}
