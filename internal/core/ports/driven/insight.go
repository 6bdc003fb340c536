package driven

import "context"

// InsightGenerator produces text from a prompt via an external
// generative-text endpoint. This is an optional service - when nil or
// unconfigured, insight features degrade to canned fallback strings.
type InsightGenerator interface {
	// Generate sends one prompt and returns the generated text. A
	// network failure, a non-success status, and a response missing the
	// expected text payload all surface as the same error category.
	Generate(ctx context.Context, prompt string) (string, error)

	// Available reports whether a credential is configured.
	Available() bool

	// SetCredential replaces the credential used for requests.
	SetCredential(credential string)
}
