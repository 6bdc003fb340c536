package domain

import (
	"strings"
	"unicode"
)

// FieldKind describes how a field is entered and stored.
type FieldKind int

const (
	// FieldText is a free-text field stored as a string.
	FieldText FieldKind = iota

	// FieldMultiSelect is a checkbox group stored as a []string of the
	// checked option identifiers.
	FieldMultiSelect

	// FieldToggle is a single checkbox stored as a bool.
	FieldToggle

	// FieldDate is a text field holding an ISO date string.
	FieldDate
)

// FieldSpec declares one input field of a step template.
// The journey view and the progress ledger consult this table directly;
// nothing is ever inferred from rendered output.
type FieldSpec struct {
	// Key is the field identifier within the step's section.
	Key string

	// Label is the prompt shown next to the input.
	Label string

	// Kind selects the input widget and the stored value shape.
	Kind FieldKind

	// Options lists the selectable identifiers for FieldMultiSelect.
	Options []string

	// Required marks the field as counting toward progress tracking.
	Required bool

	// Placeholder is the hint text shown in an empty input.
	Placeholder string
}

// LifeAreaOptions are the category tags offered by the welcome step.
var LifeAreaOptions = []string{
	"work", "relationships", "health", "creativity", "growth", "rest",
}

// stepFields is the fixed per-step template table.
var stepFields = map[Step][]FieldSpec{
	StepWelcome: {
		{Key: "name", Label: "What should we call you?", Kind: FieldText, Placeholder: "Your name"},
		{Key: "lifeAreas", Label: "Which areas of life feel most alive right now?", Kind: FieldMultiSelect, Options: LifeAreaOptions},
		{Key: "readyToBegin", Label: "I'm ready to reflect honestly", Kind: FieldToggle},
	},
	StepFocus: {
		{Key: "wantMore", Label: "What do you want more of in your life?", Kind: FieldText, Required: true, Placeholder: "e.g. time to think, deep friendships"},
		{Key: "wantLess", Label: "What do you want less of?", Kind: FieldText, Placeholder: "e.g. rushing, noise"},
		{Key: "whyMatters", Label: "Why does this matter to you now?", Kind: FieldText},
	},
	StepInfluences: {
		{Key: "energyGivers", Label: "What gives you energy?", Kind: FieldText, Required: true, Placeholder: "Separate items with commas"},
		{Key: "energyDrainers", Label: "What drains your energy?", Kind: FieldText, Required: true, Placeholder: "Separate items with commas"},
		{Key: "topInfluence", Label: "Which influence matters most?", Kind: FieldText},
	},
	StepConnections: {
		{Key: "whoSupports", Label: "Who supports what you want more of?", Kind: FieldText},
		{Key: "whatSupports", Label: "What habits or places support it?", Kind: FieldText},
		{Key: "whoDrains", Label: "Who pulls you away from it?", Kind: FieldText},
		{Key: "whatDrains", Label: "What situations pull you away?", Kind: FieldText},
		{Key: "patternNoticed", Label: "What pattern do you notice?", Kind: FieldText},
		{Key: "ahaReflection", Label: "What surprised you while answering?", Kind: FieldText, Required: true},
	},
	StepMapping: {
		{Key: "centralFocus", Label: "Centre of your map", Kind: FieldText},
		{Key: "positiveInfluences", Label: "Positive influences (comma-separated)", Kind: FieldText},
		{Key: "negativeInfluences", Label: "Negative influences (comma-separated)", Kind: FieldText},
		{Key: "leveragePoint", Label: "Where is your biggest leverage point?", Kind: FieldText},
	},
	StepPatterns: {
		{Key: "keyLearning", Label: "What is your key learning so far?", Kind: FieldText, Required: true},
		{Key: "recurringTheme", Label: "What theme keeps recurring?", Kind: FieldText},
		{Key: "surprise", Label: "What surprised you about your map?", Kind: FieldText},
	},
	StepGoals: {
		{Key: "goalStatement", Label: "State one goal for the next season", Kind: FieldText, Required: true},
		{Key: "leveragePoint", Label: "Leverage point to work through", Kind: FieldText},
		{Key: "firstStep", Label: "What is the smallest first step?", Kind: FieldText},
	},
	StepRoadmap: {
		{Key: "goalRestatement", Label: "Your goal", Kind: FieldText},
		{Key: "milestone1", Label: "Milestone for this week", Kind: FieldText, Required: true},
		{Key: "milestone2", Label: "Milestone for this month", Kind: FieldText},
		{Key: "milestone3", Label: "Milestone for this season", Kind: FieldText},
	},
	StepCommitment: {
		{Key: "commitmentText", Label: "What do you commit to?", Kind: FieldText, Required: true},
		{Key: "signatureName", Label: "Sign with your name", Kind: FieldText},
		{Key: "commitmentDate", Label: "Date", Kind: FieldDate},
		{Key: "shareCommitment", Label: "I will share this commitment with someone", Kind: FieldToggle},
	},
}

// StepFields returns the template table for a step. The returned slice is
// shared; callers must not modify it.
func StepFields(step Step) []FieldSpec {
	return stepFields[step]
}

// RequiredFields returns the step's field identifiers whose non-emptiness
// counts toward progress. Steps without required fields return nil.
func RequiredFields(step Step) []string {
	var keys []string
	for _, f := range stepFields[step] {
		if f.Required {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// RequiredFieldCount returns the total number of required fields across
// all nine steps.
func RequiredFieldCount() int {
	count := 0
	for _, step := range orderedSteps {
		count += len(RequiredFields(step))
	}
	return count
}

// IsRequiredField reports whether the field appears in the required table.
func IsRequiredField(step Step, field string) bool {
	for _, key := range RequiredFields(step) {
		if key == field {
			return true
		}
	}
	return false
}

// FieldRef addresses a single field as a "step.field" composite.
type FieldRef struct {
	Step  Step
	Field string
}

// Key returns the composite "step.field" form used by the progress ledger.
func (r FieldRef) Key() string {
	return string(r.Step) + "." + r.Field
}

// AnchorFields returns the seven cross-section fields used to compute the
// overall completion percentage, one per major step.
func AnchorFields() []FieldRef {
	return []FieldRef{
		{StepFocus, "wantMore"},
		{StepInfluences, "energyGivers"},
		{StepInfluences, "energyDrainers"},
		{StepConnections, "ahaReflection"},
		{StepPatterns, "keyLearning"},
		{StepGoals, "goalStatement"},
		{StepCommitment, "commitmentText"},
	}
}

// ReadableLabel derives a human-readable label from a camelCase field
// identifier: a space is inserted before each capital letter and the first
// letter is capitalised. "energyGivers" becomes "Energy Givers".
func ReadableLabel(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
