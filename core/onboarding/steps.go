package onboarding

import (
	"strconv"
	"time"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/profile"
)

// IntroDelay is how long the intro step stays on screen before advancing by itself.
const IntroDelay = 3 * time.Second

type Step int

const (
	StepIntro Step = iota + 1
	StepIdentity
	StepGrade
	StepTheme
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepIntro:
		return "intro"
	case StepIdentity:
		return "identity"
	case StepGrade:
		return "grade"
	case StepTheme:
		return "theme"
	case StepSubmitted:
		return "submitted"
	}
	return "step(" + strconv.Itoa(int(s)) + ")"
}

// Draft fields
const (
	FieldName   = "name"
	FieldAge    = "age"
	FieldSchool = "school"
	FieldGrade  = "grade"
	FieldTheme  = "theme"

	// fieldDisplayName is accepted as an alias of FieldName.
	fieldDisplayName = "displayName"
)

// Draft holds the values entered so far, as typed.
type Draft struct {
	Name   string `json:"name"`
	Age    string `json:"age"`
	School string `json:"school"`
	Grade  string `json:"grade"`
	Theme  string `json:"theme"`
}

// NewProfile converts a validated Draft.
func (d Draft) NewProfile() profile.NewProfile {
	age, _ := strconv.Atoi(core.CleanString(d.Age))
	np := profile.NewProfile{
		Name:   d.Name,
		Age:    age,
		School: d.School,
		Grade:  d.Grade,
		Theme:  d.Theme,
	}
	np.Clean()
	return np
}

// State is a point-in-time copy of a Wizard.
type State struct {
	Step       Step
	Draft      Draft
	Submitting bool
	Profile    *profile.Profile // set once the account is created
}
