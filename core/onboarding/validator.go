package onboarding

import (
	"strconv"
	"strings"
	"unicode"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/profile"
)

// messages shown to the user
const (
	msgNameShort     = "Please enter a valid name (at least 3 characters)"
	msgNameLong      = "Name is too long! Please keep it under 25 characters"
	msgNameDigits    = "Names can't contain numbers!"
	msgNameChars     = "Names can only contain letters, spaces, and apostrophes!"
	msgSchoolShort   = "Please enter a valid school name (at least 3 characters)"
	msgSchoolLong    = "School name is too long! Please keep it under 50 characters"
	msgAgeTooYoung   = "You need to be at least 10 years old to use Elevate"
	msgAgeInvalid    = "Please enter a valid age"
	msgGradeRequired = "Please select your grade"
	msgThemeRequired = "Please choose a theme"
)

var (
	nameTag   = "required,min=3,max=25,personname"
	schoolTag = "required,min=3,max=50"
	ageTag    = "min=10,max=100"
	gradeTag  = "required,grade"
	themeTag  = "required,theme"
)

type rule struct {
	step  Step
	field string
	kind  error
	check func(v *Validator, d Draft) (msg string, ok bool)
}

// rules are evaluated in order; the first failure wins.
var rules = []rule{
	{step: StepIdentity, field: FieldName, kind: ErrInvalidName, check: (*Validator).checkName},
	{step: StepIdentity, field: FieldSchool, kind: ErrInvalidSchool, check: (*Validator).checkSchool},
	{step: StepIdentity, field: FieldAge, kind: ErrInvalidAge, check: (*Validator).checkAge},
	{step: StepGrade, field: FieldGrade, kind: ErrInvalidGrade, check: (*Validator).checkGrade},
	{step: StepTheme, field: FieldTheme, kind: ErrInvalidTheme, check: (*Validator).checkTheme},
}

// Validator checks a Draft against the rules of each step.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator registers the profile validators on `validate` and returns a Validator using it.
func NewValidator(validate *validator.Validate, translator ut.Translator) *Validator {
	profile.InitValidators(validate, translator)
	return &Validator{validate: validate, translator: translator}
}

// ValidateStep validates the fields of `step`. Steps without fields always pass.
func (v *Validator) ValidateStep(step Step, d Draft) error {
	for _, r := range rules {
		if r.step != step {
			continue
		}
		if msg, ok := r.check(v, d); !ok {
			return core.NewValidationError(r.kind, core.FieldError{Field: r.field, Error: msg})
		}
	}
	return nil
}

// ValidateAll validates the steps with fields, in order.
func (v *Validator) ValidateAll(d Draft) error {
	for _, step := range []Step{StepIdentity, StepGrade, StepTheme} {
		if err := v.ValidateStep(step, d); err != nil {
			return err
		}
	}
	return nil
}

// CheckNameInput is the keystroke filter of the name field: it rejects digits
// and any character that is not a letter, a space or an apostrophe.
// An empty value is accepted.
func (v *Validator) CheckNameInput(raw string) error {
	if raw == "" || profile.PersonNameRegex.MatchString(raw) {
		return nil
	}
	return core.NewValidationError(ErrInvalidName, core.FieldError{Field: FieldName, Error: nameCharsMessage(raw)})
}

func nameCharsMessage(s string) string {
	if strings.IndexFunc(s, unicode.IsDigit) >= 0 {
		return msgNameDigits
	}
	return msgNameChars
}

// failedTag returns the tag of the first failed validation.
func (v *Validator) failedTag(err error) (tag, translated string) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "", err.Error()
	}
	return verrs[0].Tag(), verrs[0].Translate(v.translator)
}

func (v *Validator) checkName(d Draft) (string, bool) {
	name := core.CleanString(d.Name)
	err := v.validate.Var(name, nameTag)
	if err == nil {
		return "", true
	}
	switch tag, msg := v.failedTag(err); tag {
	case "required", "min":
		return msgNameShort, false
	case "max":
		return msgNameLong, false
	case "personname":
		return nameCharsMessage(name), false
	default:
		return msg, false
	}
}

func (v *Validator) checkSchool(d Draft) (string, bool) {
	err := v.validate.Var(core.CleanString(d.School), schoolTag)
	if err == nil {
		return "", true
	}
	switch tag, msg := v.failedTag(err); tag {
	case "required", "min":
		return msgSchoolShort, false
	case "max":
		return msgSchoolLong, false
	default:
		return msg, false
	}
}

func (v *Validator) checkAge(d Draft) (string, bool) {
	age, err := strconv.Atoi(core.CleanString(d.Age))
	if err != nil {
		return msgAgeInvalid, false
	}
	if err = v.validate.Var(age, ageTag); err == nil {
		return "", true
	}
	if tag, _ := v.failedTag(err); tag == "min" {
		return msgAgeTooYoung, false
	}
	return msgAgeInvalid, false
}

// Grades and themes are matched case-insensitively; Draft.NewProfile stores the canonical value.
func (v *Validator) checkGrade(d Draft) (string, bool) {
	if err := v.validate.Var(core.CleanString(d.Grade, true /* lower */), gradeTag); err != nil {
		return msgGradeRequired, false
	}
	return "", true
}

func (v *Validator) checkTheme(d Draft) (string, bool) {
	if err := v.validate.Var(core.CleanString(d.Theme, true /* lower */), themeTag); err != nil {
		return msgThemeRequired, false
	}
	return "", true
}
