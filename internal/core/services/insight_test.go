package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietpath/ripple/internal/adapters/driven/storage/memory"
	"github.com/quietpath/ripple/internal/core/domain"
	"github.com/quietpath/ripple/internal/core/ports/driven"
	"github.com/quietpath/ripple/internal/core/ports/driving"
)

// fakeGenerator implements driven.InsightGenerator for tests.
type fakeGenerator struct {
	credential string
	response   string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGenerator) Available() bool {
	return f.credential != ""
}

func (f *fakeGenerator) SetCredential(credential string) {
	f.credential = credential
}

func TestInsight_UnavailableWithoutCredential(t *testing.T) {
	generator := &fakeGenerator{}
	service := NewInsightService(generator, memory.New())

	assert.False(t, service.IsAvailable())
}

func TestInsight_LoadsStoredCredential(t *testing.T) {
	store := memory.New()
	store.Set(driven.SlotCredential, "  key-123  ")

	generator := &fakeGenerator{}
	service := NewInsightService(generator, store)

	assert.True(t, service.IsAvailable())
	assert.Equal(t, "key-123", generator.credential)
}

func TestInsight_SetCredential(t *testing.T) {
	store := memory.New()
	generator := &fakeGenerator{}
	service := NewInsightService(generator, store)

	require.NoError(t, service.SetCredential("  key-456  "))

	assert.True(t, service.IsAvailable())
	stored, ok := store.Get(driven.SlotCredential)
	require.True(t, ok)
	assert.Equal(t, "key-456", stored)
}

func TestInsight_SetCredential_RejectsBlank(t *testing.T) {
	service := NewInsightService(&fakeGenerator{}, memory.New())

	assert.ErrorIs(t, service.SetCredential("   "), domain.ErrEmptyCredential)
	assert.False(t, service.IsAvailable())
}

func TestInsight_UnconfiguredFallback_NoRequestMade(t *testing.T) {
	generator := &fakeGenerator{}
	service := NewInsightService(generator, memory.New())

	text := service.RequestInfluenceInsight(context.Background(), driving.InfluenceInsightData{})

	assert.Equal(t, fallbackUnconfigured, text)
	assert.Zero(t, generator.calls)
}

func TestInsight_ErrorFallback(t *testing.T) {
	generator := &fakeGenerator{credential: "key", err: errors.New("boom")}
	service := NewInsightService(generator, memory.New())

	text := service.RequestInfluenceInsight(context.Background(), driving.InfluenceInsightData{})

	assert.Equal(t, fallbackError, text)
	assert.Equal(t, 1, generator.calls)
}

func TestInsight_PromptInterpolation(t *testing.T) {
	generator := &fakeGenerator{credential: "key", response: "Thank you for sharing this."}
	service := NewInsightService(generator, memory.New())

	service.RequestInfluenceInsight(context.Background(), driving.InfluenceInsightData{
		WantMore:     "deep work",
		EnergyGivers: "walks",
	})

	assert.Contains(t, generator.lastPrompt, "deep work")
	assert.Contains(t, generator.lastPrompt, "walks")
	// Blank fields render as the literal placeholder.
	assert.Contains(t, generator.lastPrompt, "Not specified")
}

func TestInsight_JourneySummaryPrompt(t *testing.T) {
	generator := &fakeGenerator{credential: "key", response: "It sounds like a real shift."}
	service := NewInsightService(generator, memory.New())

	text := service.RequestJourneySummary(context.Background(), driving.JourneySummaryData{
		WantMore:       "rest",
		KeyLearning:    "saying no",
		GoalStatement:  "one free evening a week",
		CommitmentText: "guard my Wednesdays",
	})

	assert.Contains(t, generator.lastPrompt, "guard my Wednesdays")
	assert.Equal(t, "It sounds like a real shift.", text)
}

func TestInsight_PreambleAddedWhenMissing(t *testing.T) {
	generator := &fakeGenerator{credential: "key", response: "Your energy follows your attention."}
	service := NewInsightService(generator, memory.New())

	text := service.RequestInfluenceInsight(context.Background(), driving.InfluenceInsightData{})

	assert.True(t, strings.HasPrefix(text, insightPreamble))
	assert.Contains(t, text, "Your energy follows your attention.")
}

func TestInsight_PreambleSkippedWhenAcknowledged(t *testing.T) {
	generator := &fakeGenerator{credential: "key", response: "Thank you for trusting me with this."}
	service := NewInsightService(generator, memory.New())

	text := service.RequestInfluenceInsight(context.Background(), driving.InfluenceInsightData{})

	assert.Equal(t, "Thank you for trusting me with this.", text)
}

func TestInsight_BlankResponseFallsBack(t *testing.T) {
	generator := &fakeGenerator{credential: "key", response: "   "}
	service := NewInsightService(generator, memory.New())

	text := service.RequestInfluenceInsight(context.Background(), driving.InfluenceInsightData{})

	assert.Equal(t, fallbackError, text)
}
