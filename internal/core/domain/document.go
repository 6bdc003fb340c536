package domain

import (
	"encoding/json"
	"time"
)

// SchemaVersion is stamped into new documents and used to recognise
// payloads written by older releases during merge-on-load.
const SchemaVersion = "1.1.0"

// Section is a flat mapping from field identifier to value. Values are
// strings, except the life-areas multi-select ([]string) and the single
// checkbox field (bool).
type Section map[string]any

// Metadata carries document bookkeeping.
type Metadata struct {
	// Created is when the document was first generated.
	Created time.Time `json:"created"`

	// LastModified advances on every mutating operation.
	LastModified time.Time `json:"lastModified"`

	// Version is the schema version that wrote the document.
	Version string `json:"version"`

	// CurrentSection is the step the user last navigated to.
	// Updated only on step transition, never on field saves.
	CurrentSection Step `json:"currentSection"`
}

// Document is the canonical nested record of all user answers. It
// serialises as a flat object: a metadata key plus one key per step.
type Document struct {
	Metadata Metadata
	Sections map[Step]Section
}

// NewDocument generates the canonical default structure: every step key
// present with an empty section, metadata stamped with now.
func NewDocument(now time.Time) *Document {
	sections := make(map[Step]Section, len(orderedSteps))
	for _, step := range orderedSteps {
		sections[step] = Section{}
	}
	return &Document{
		Metadata: Metadata{
			Created:        now,
			LastModified:   now,
			Version:        SchemaVersion,
			CurrentSection: StepWelcome,
		},
		Sections: sections,
	}
}

// MarshalJSON flattens the document: metadata plus one top-level key per
// step, matching the persisted storage layout.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Sections)+1)
	out["metadata"] = d.Metadata
	for step, section := range d.Sections {
		out[string(step)] = section
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the flat layout back. Unknown top-level keys are
// ignored; section values are normalised to the three supported shapes.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if meta, ok := raw["metadata"]; ok {
		if err := json.Unmarshal(meta, &d.Metadata); err != nil {
			return err
		}
	}
	d.Sections = make(map[Step]Section)
	for key, payload := range raw {
		step := Step(key)
		if !step.IsValid() {
			continue
		}
		var section map[string]any
		if err := json.Unmarshal(payload, &section); err != nil {
			continue
		}
		normalised := make(Section, len(section))
		for field, value := range section {
			normalised[field] = NormaliseValue(value)
		}
		d.Sections[step] = normalised
	}
	return nil
}

// HasMinimalShape performs the trust check applied to loaded and imported
// payloads: metadata plus the focus, influences, and connections keys must
// be present. Anything failing this is discarded outright, never
// partially merged.
func HasMinimalShape(data []byte) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return false
	}
	for _, key := range []string{"metadata", "focus", "influences", "connections"} {
		if _, ok := raw[key]; !ok {
			return false
		}
	}
	return true
}

// MergeOnto deep-merges the document's data onto a freshly generated
// default structure, never the reverse: unknown legacy shapes self-heal
// and fields introduced by a schema update appear with default values.
// Created, LastModified, and CurrentSection survive from the source when set.
func (d *Document) MergeOnto(defaults *Document) *Document {
	merged := defaults
	if !d.Metadata.Created.IsZero() {
		merged.Metadata.Created = d.Metadata.Created
	}
	if !d.Metadata.LastModified.IsZero() {
		merged.Metadata.LastModified = d.Metadata.LastModified
	}
	if d.Metadata.CurrentSection.IsValid() {
		merged.Metadata.CurrentSection = d.Metadata.CurrentSection
	}
	merged.Metadata.Version = SchemaVersion
	for step, section := range d.Sections {
		if !step.IsValid() {
			continue
		}
		target := merged.Sections[step]
		for field, value := range section {
			target[field] = NormaliseValue(value)
		}
	}
	return merged
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	sections := make(map[Step]Section, len(d.Sections))
	for step, section := range d.Sections {
		copied := make(Section, len(section))
		for field, value := range section {
			if list, ok := AsStringSlice(value); ok {
				copied[field] = append([]string(nil), list...)
			} else {
				copied[field] = value
			}
		}
		sections[step] = copied
	}
	return &Document{Metadata: d.Metadata, Sections: sections}
}

// NormaliseValue coerces a JSON round-tripped value back into the three
// supported shapes. []any from the decoder becomes []string; everything
// else passes through.
func NormaliseValue(value any) any {
	if items, ok := value.([]any); ok {
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return value
}

// AsString returns the value as a string, or "" for any other shape.
func AsString(value any) string {
	s, _ := value.(string)
	return s
}

// AsBool returns the value as a bool, or false for any other shape.
func AsBool(value any) bool {
	b, _ := value.(bool)
	return b
}

// AsStringSlice returns the value as a []string if it holds one.
func AsStringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// IsEmptyValue reports whether a field value counts as empty for
// progress and export purposes: blank string, false, or empty slice.
func IsEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	default:
		if list, ok := AsStringSlice(value); ok {
			return len(list) == 0
		}
		return false
	}
}
