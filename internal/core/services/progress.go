package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/quietpath/ripple/internal/core/domain"
	"github.com/quietpath/ripple/internal/core/ports/driven"
	"github.com/quietpath/ripple/internal/core/ports/driving"
	"github.com/quietpath/ripple/internal/logger"
)

var _ driving.ProgressService = (*ProgressService)(nil)

// ProgressService is the progress ledger. It holds the visited set and
// the per-field fill state, persisting itself to its own slot on every
// update. Field fill state is in-memory only; the persisted record
// carries just the index and visited list.
type ProgressService struct {
	mu      sync.Mutex
	store   driven.SlotStore
	index   int
	visited map[domain.Step]bool
	// filled tracks required fields by their "step.field" composite key.
	filled map[string]bool
	now    func() time.Time
}

// ProgressOption customises ledger construction.
type ProgressOption func(*ProgressService)

// WithProgressClock overrides the time source.
func WithProgressClock(now func() time.Time) ProgressOption {
	return func(s *ProgressService) { s.now = now }
}

// NewProgressService creates the ledger, restoring index and visited set
// from storage. An unreadable record starts the ledger fresh.
func NewProgressService(store driven.SlotStore, opts ...ProgressOption) *ProgressService {
	s := &ProgressService{
		store:   store,
		visited: make(map[domain.Step]bool),
		filled:  make(map[string]bool),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restore()
	return s
}

func (s *ProgressService) restore() {
	payload, ok := s.store.Get(driven.SlotProgress)
	if !ok {
		return
	}

	var record domain.ProgressRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		logger.Warn("stored progress unreadable: %v", err)
		return
	}
	if record.CurrentSectionIndex >= 0 && record.CurrentSectionIndex < domain.StepCount {
		s.index = record.CurrentSectionIndex
	}
	for _, name := range record.CompletedSections {
		step := domain.Step(name)
		if step.IsValid() {
			s.visited[step] = true
		}
	}
}

// RecordVisit marks the step visited and moves the current index to it.
func (s *ProgressService) RecordVisit(step domain.Step) {
	if !step.IsValid() {
		logger.Warn("ignoring visit to unknown step %q", step)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index = step.Index()
	s.visited[step] = true
	s.persistLocked()
}

// TrackFieldEdit records the fill state of a required field. Edits to
// fields outside the required table are ignored.
func (s *ProgressService) TrackFieldEdit(step domain.Step, field string, nonEmpty bool) {
	if !domain.IsRequiredField(step, field) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.FieldRef{Step: step, Field: field}.Key()
	if nonEmpty {
		s.filled[key] = true
	} else {
		delete(s.filled, key)
	}
}

// CanNavigateTo allows moving to any already-visited step, or at most one
// step past the current index.
func (s *ProgressService) CanNavigateTo(step domain.Step) bool {
	if !step.IsValid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.visited[step] {
		return true
	}
	return step.Index() <= s.index+1
}

// Advance moves to the next step, marking it visited. At the final step
// it returns false and stays put.
func (s *ProgressService) Advance() (domain.Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index >= domain.StepCount-1 {
		step, _ := domain.StepAt(s.index)
		return step, false
	}
	s.index++
	step, _ := domain.StepAt(s.index)
	s.visited[step] = true
	s.persistLocked()
	return step, true
}

// Retreat moves to the previous step. At the first step it returns false
// and stays put.
func (s *ProgressService) Retreat() (domain.Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index <= 0 {
		step, _ := domain.StepAt(s.index)
		return step, false
	}
	s.index--
	step, _ := domain.StepAt(s.index)
	s.visited[step] = true
	s.persistLocked()
	return step, true
}

// StepCompletion returns the filled/required ratio for the step as a
// 0..100 integer. Steps without required fields always report 100.
func (s *ProgressService) StepCompletion(step domain.Step) int {
	required := domain.RequiredFields(step)
	if len(required) == 0 {
		return 100
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	filled := 0
	for _, field := range required {
		if s.filled[domain.FieldRef{Step: step, Field: field}.Key()] {
			filled++
		}
	}
	return filled * 100 / len(required)
}

// Snapshot returns the ledger's derived state.
func (s *ProgressService) Snapshot() domain.ProgressSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var visited []domain.Step
	for _, step := range domain.Steps() {
		if s.visited[step] {
			visited = append(visited, step)
		}
	}

	total := domain.RequiredFieldCount()
	overall := 0
	if total > 0 {
		overall = len(s.filled) * 100 / total
	}

	return domain.ProgressSnapshot{
		CurrentIndex:      s.index,
		Visited:           visited,
		OverallCompletion: overall,
		VisualProgress:    float64(s.index+1) / float64(domain.StepCount),
	}
}

// Reset clears the ledger and persists the cleared state.
func (s *ProgressService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index = 0
	s.visited = make(map[domain.Step]bool)
	s.filled = make(map[string]bool)
	s.persistLocked()
}

// persistLocked writes the record to its slot. Failures are contained at
// the adapter; the ledger keeps working from memory.
func (s *ProgressService) persistLocked() {
	record := domain.ProgressRecord{
		CurrentSectionIndex: s.index,
		CompletedSections:   make([]string, 0, len(s.visited)),
		Timestamp:           s.now(),
	}
	for _, step := range domain.Steps() {
		if s.visited[step] {
			record.CompletedSections = append(record.CompletedSections, string(step))
		}
	}

	data, err := json.Marshal(record)
	if err != nil {
		logger.Warn("serialising progress: %v", err)
		return
	}
	if !s.store.Set(driven.SlotProgress, string(data)) {
		logger.Debug("progress not persisted this cycle")
	}
}
