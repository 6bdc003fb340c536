package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteps_OrderAndCount(t *testing.T) {
	steps := Steps()
	require.Len(t, steps, StepCount)
	assert.Equal(t, StepWelcome, steps[0])
	assert.Equal(t, StepCommitment, steps[8])

	// Returned slice is a copy.
	steps[0] = Step("tampered")
	assert.Equal(t, StepWelcome, Steps()[0])
}

func TestStep_IsValid(t *testing.T) {
	for _, step := range Steps() {
		assert.True(t, step.IsValid(), step)
	}
	assert.False(t, Step("unknown").IsValid())
	assert.False(t, Step("").IsValid())
}

func TestStep_Index(t *testing.T) {
	assert.Equal(t, 0, StepWelcome.Index())
	assert.Equal(t, 4, StepMapping.Index())
	assert.Equal(t, 8, StepCommitment.Index())
	assert.Equal(t, -1, Step("unknown").Index())
}

func TestStepAt(t *testing.T) {
	step, ok := StepAt(0)
	require.True(t, ok)
	assert.Equal(t, StepWelcome, step)

	step, ok = StepAt(8)
	require.True(t, ok)
	assert.Equal(t, StepCommitment, step)

	_, ok = StepAt(-1)
	assert.False(t, ok)
	_, ok = StepAt(9)
	assert.False(t, ok)
}

func TestStep_Titles(t *testing.T) {
	assert.Equal(t, "Welcome", StepWelcome.Title())
	assert.Equal(t, "Energy Influences", StepInfluences.Title())
	assert.Equal(t, "Energy Map", StepMapping.Title())
	assert.Equal(t, "Unknown", Step("nope").Title())
}

func TestStep_NextPrevious(t *testing.T) {
	next, ok := StepWelcome.Next()
	require.True(t, ok)
	assert.Equal(t, StepFocus, next)

	_, ok = StepCommitment.Next()
	assert.False(t, ok)

	prev, ok := StepFocus.Previous()
	require.True(t, ok)
	assert.Equal(t, StepWelcome, prev)

	_, ok = StepWelcome.Previous()
	assert.False(t, ok)

	_, ok = Step("unknown").Next()
	assert.False(t, ok)
}
