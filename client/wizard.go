package client

// Onboarding wizard state, modeled as an immutable value advanced by
// pure transition functions. Scope is one session; it holds no global
// state and is discarded on reload.

type WizardStep int

const (
	StepName WizardStep = iota
	StepStyle
	StepPace
	StepAvatar
	StepDone
)

var wizardOrder = []WizardStep{StepName, StepStyle, StepPace, StepAvatar}

// StyleChoices and PaceChoices are the fixed answer sets presented by
// the choice steps.
var (
	StyleChoices = []string{"fun", "classic"}
	PaceChoices  = []string{"fast", "moderate", "slow"}
)

type WizardAnswers struct {
	Name   string
	Style  string
	Pace   string
	Avatar string
}

type WizardState struct {
	Step    WizardStep
	Answers WizardAnswers
}

func NewWizard() WizardState {
	return WizardState{Step: StepName}
}

// Answer records a value for the current step and returns the new
// state. Unknown choices are ignored so the step stays unanswered.
func (s WizardState) Answer(value string) WizardState {
	switch s.Step {
	case StepName:
		s.Answers.Name = value
	case StepStyle:
		if contains(StyleChoices, value) {
			s.Answers.Style = value
		}
	case StepPace:
		if contains(PaceChoices, value) {
			s.Answers.Pace = value
		}
	case StepAvatar:
		s.Answers.Avatar = value
	}
	return s
}

// CanAdvance reports whether the current step has a non-empty answer;
// the Next control stays disabled until it does.
func (s WizardState) CanAdvance() bool {
	switch s.Step {
	case StepName:
		return s.Answers.Name != ""
	case StepStyle:
		return s.Answers.Style != ""
	case StepPace:
		return s.Answers.Pace != ""
	case StepAvatar:
		return s.Answers.Avatar != ""
	}
	return false
}

// Next advances to the following step when the current one is
// answered. It returns the unchanged state otherwise.
func (s WizardState) Next() WizardState {
	if !s.CanAdvance() {
		return s
	}
	for i, step := range wizardOrder {
		if step == s.Step {
			if i == len(wizardOrder)-1 {
				s.Step = StepDone
			} else {
				s.Step = wizardOrder[i+1]
			}
			return s
		}
	}
	return s
}

func (s WizardState) Complete() bool {
	return s.Step == StepDone
}

// ToProfileUpdate converts finished answers into the profile write the
// API expects.
func (s WizardState) ToProfileUpdate() ProfileUpdate {
	name := s.Answers.Name
	avatar := s.Answers.Avatar
	return ProfileUpdate{
		DisplayName: &name,
		AvatarID:    &avatar,
		LearningPreferences: &LearningPreferences{
			Style: s.Answers.Style,
			Pace:  s.Answers.Pace,
		},
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
