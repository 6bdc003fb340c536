package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepFields_EveryStepHasTemplate(t *testing.T) {
	for _, step := range Steps() {
		assert.NotEmpty(t, StepFields(step), step)
	}
}

func TestStepFields_WelcomeShapes(t *testing.T) {
	fields := StepFields(StepWelcome)
	require.Len(t, fields, 3)

	assert.Equal(t, FieldText, fields[0].Kind)
	assert.Equal(t, FieldMultiSelect, fields[1].Kind)
	assert.Equal(t, LifeAreaOptions, fields[1].Options)
	assert.Equal(t, FieldToggle, fields[2].Kind)
}

func TestRequiredFields(t *testing.T) {
	assert.Nil(t, RequiredFields(StepWelcome))
	assert.Equal(t, []string{"wantMore"}, RequiredFields(StepFocus))
	assert.Equal(t, []string{"energyGivers", "energyDrainers"}, RequiredFields(StepInfluences))
	assert.Equal(t, []string{"milestone1"}, RequiredFields(StepRoadmap))
}

func TestRequiredFieldCount(t *testing.T) {
	assert.Equal(t, 8, RequiredFieldCount())
}

func TestIsRequiredField(t *testing.T) {
	assert.True(t, IsRequiredField(StepFocus, "wantMore"))
	assert.False(t, IsRequiredField(StepFocus, "wantLess"))
	assert.False(t, IsRequiredField(StepWelcome, "name"))
	assert.False(t, IsRequiredField(Step("unknown"), "x"))
}

func TestFieldRef_Key(t *testing.T) {
	ref := FieldRef{Step: StepFocus, Field: "wantMore"}
	assert.Equal(t, "focus.wantMore", ref.Key())
}

func TestAnchorFields(t *testing.T) {
	anchors := AnchorFields()
	require.Len(t, anchors, 7)

	// Every anchor addresses a declared field of its step.
	for _, anchor := range anchors {
		found := false
		for _, spec := range StepFields(anchor.Step) {
			if spec.Key == anchor.Field {
				found = true
			}
		}
		assert.True(t, found, anchor.Key())
	}
}

func TestReadableLabel(t *testing.T) {
	assert.Equal(t, "Energy Givers", ReadableLabel("energyGivers"))
	assert.Equal(t, "Want More", ReadableLabel("wantMore"))
	assert.Equal(t, "Name", ReadableLabel("name"))
	assert.Equal(t, "", ReadableLabel(""))
}
