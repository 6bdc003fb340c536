package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/quietpath/ripple/internal/core/domain"
	"github.com/quietpath/ripple/internal/core/ports/driven"
	"github.com/quietpath/ripple/internal/core/ports/driving"
	"github.com/quietpath/ripple/internal/logger"
)

var _ driving.InsightService = (*InsightService)(nil)

// Canned responses returned when no credential is configured or a
// request fails. The journey carries on without the external endpoint.
const (
	fallbackUnconfigured = "Insight is not configured. Add a credential in settings to receive " +
		"a generated reflection, or simply sit with your own answers for a moment."

	fallbackError = "A reflection could not be generated right now. Your answers are safe, " +
		"and you can try again later."

	// insightPreamble is prepended when a response does not already open
	// with an acknowledgement.
	insightPreamble = "Thank you for sharing. "
)

// acknowledgementPhrases mark a response as already opening with an
// acknowledgement, so no preamble is needed.
var acknowledgementPhrases = []string{
	"thank you",
	"thanks for",
	"i hear",
	"it sounds like",
	"what you",
}

const influencePromptTemplate = `You are a gentle reflection companion. A person is journaling about the influences on their energy.

They want more of: %s
What gives them energy: %s
What drains their energy: %s
A pattern they noticed: %s

In two or three warm, concrete sentences, reflect back the strongest connection you see between what they want more of and their influences. Do not give instructions or lists.`

const summaryPromptTemplate = `You are a gentle reflection companion. A person has finished a guided self-reflection journey.

They want more of: %s
Their key learning: %s
Their goal: %s
Their commitment: %s

In three or four warm sentences, summarise their journey back to them and affirm their commitment. Do not give instructions or lists.`

// InsightService turns journal answers into prompts for the external
// text-generation endpoint, and shields callers from every failure mode
// with canned fallback text.
type InsightService struct {
	mu        sync.Mutex
	generator driven.InsightGenerator
	store     driven.SlotStore
}

// NewInsightService creates the service and hands any stored credential
// to the generator.
func NewInsightService(generator driven.InsightGenerator, store driven.SlotStore) *InsightService {
	s := &InsightService{
		generator: generator,
		store:     store,
	}
	if credential, ok := store.Get(driven.SlotCredential); ok {
		if trimmed := strings.TrimSpace(credential); trimmed != "" {
			generator.SetCredential(trimmed)
		}
	}
	return s
}

// IsAvailable reports whether a credential is configured.
func (s *InsightService) IsAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generator.Available()
}

// SetCredential trims, validates, stores, and activates the credential.
func (s *InsightService) SetCredential(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return domain.ErrEmptyCredential
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generator.SetCredential(trimmed)
	if !s.store.Set(driven.SlotCredential, trimmed) {
		logger.Warn("credential active for this session only")
	}
	return nil
}

// RequestInfluenceInsight returns generated text about the user's energy
// influences. Unconfigured and failing states both resolve to fallback
// strings; no error ever reaches the caller.
func (s *InsightService) RequestInfluenceInsight(ctx context.Context, data driving.InfluenceInsightData) string {
	prompt := fmt.Sprintf(influencePromptTemplate,
		orNotSpecified(data.WantMore),
		orNotSpecified(data.EnergyGivers),
		orNotSpecified(data.EnergyDrainers),
		orNotSpecified(data.PatternNoticed),
	)
	return s.request(ctx, prompt)
}

// RequestJourneySummary returns a generated summary of the whole journey.
func (s *InsightService) RequestJourneySummary(ctx context.Context, data driving.JourneySummaryData) string {
	prompt := fmt.Sprintf(summaryPromptTemplate,
		orNotSpecified(data.WantMore),
		orNotSpecified(data.KeyLearning),
		orNotSpecified(data.GoalStatement),
		orNotSpecified(data.CommitmentText),
	)
	return s.request(ctx, prompt)
}

func (s *InsightService) request(ctx context.Context, prompt string) string {
	if !s.IsAvailable() {
		return fallbackUnconfigured
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logger.Warn("insight request failed: %v", err)
		return fallbackError
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fallbackError
	}
	return withPreamble(text)
}

// withPreamble prepends the fixed acknowledgement unless the response
// already opens with one.
func withPreamble(text string) string {
	lowered := strings.ToLower(text)
	for _, phrase := range acknowledgementPhrases {
		if strings.Contains(lowered[:min(len(lowered), 80)], phrase) {
			return text
		}
	}
	return insightPreamble + text
}

func orNotSpecified(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not specified"
	}
	return value
}
