package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizard_StartsAtName(t *testing.T) {
	s := NewWizard()
	assert.Equal(t, StepName, s.Step)
	assert.False(t, s.CanAdvance())
	assert.False(t, s.Complete())
}

func TestWizard_NextBlockedUntilAnswered(t *testing.T) {
	s := NewWizard()
	assert.Equal(t, s, s.Next(), "Next is a no-op without an answer")

	s = s.Answer("Ada")
	assert.True(t, s.CanAdvance())
	s = s.Next()
	assert.Equal(t, StepStyle, s.Step)
}

func TestWizard_FullFlow(t *testing.T) {
	s := NewWizard().
		Answer("Ada").Next().
		Answer("fun").Next().
		Answer("fast").Next().
		Answer("bot2").Next()

	require.True(t, s.Complete())
	assert.Equal(t, WizardAnswers{Name: "Ada", Style: "fun", Pace: "fast", Avatar: "bot2"}, s.Answers)

	update := s.ToProfileUpdate()
	require.NotNil(t, update.DisplayName)
	assert.Equal(t, "Ada", *update.DisplayName)
	require.NotNil(t, update.LearningPreferences)
	assert.Equal(t, "fun", update.LearningPreferences.Style)
	assert.Equal(t, "fast", update.LearningPreferences.Pace)
}

func TestWizard_RejectsUnknownChoice(t *testing.T) {
	s := NewWizard().Answer("Ada").Next()

	s = s.Answer("chaotic")
	assert.False(t, s.CanAdvance(), "unknown style leaves the step unanswered")

	s = s.Answer("classic")
	assert.True(t, s.CanAdvance())
}

func TestWizard_TransitionsAreImmutable(t *testing.T) {
	s0 := NewWizard()
	s1 := s0.Answer("Ada")
	assert.Empty(t, s0.Answers.Name)
	assert.Equal(t, "Ada", s1.Answers.Name)
}
