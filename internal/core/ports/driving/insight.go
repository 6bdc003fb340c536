package driving

import "context"

// InfluenceInsightData carries the fields interpolated into the
// influence-insight prompt. Blank fields render as "Not specified".
type InfluenceInsightData struct {
	WantMore       string
	EnergyGivers   string
	EnergyDrainers string
	PatternNoticed string
}

// JourneySummaryData carries the fields interpolated into the
// journey-summary prompt.
type JourneySummaryData struct {
	WantMore       string
	KeyLearning    string
	GoalStatement  string
	CommitmentText string
}

// InsightService requests generated reflections from an external
// text-generation endpoint. Every request resolves to displayable text:
// failures and the unconfigured state yield canned fallback strings, never
// errors.
type InsightService interface {
	// IsAvailable is true iff a non-empty credential is held.
	IsAvailable() bool

	// SetCredential trims and stores the credential in memory and in the
	// backing slot. Fails with domain.ErrEmptyCredential for blank input.
	SetCredential(value string) error

	// RequestInfluenceInsight returns generated text about the user's
	// energy influences, or a fallback string.
	RequestInfluenceInsight(ctx context.Context, data InfluenceInsightData) string

	// RequestJourneySummary returns a generated summary of the whole
	// journey, or a fallback string.
	RequestJourneySummary(ctx context.Context, data JourneySummaryData) string
}
