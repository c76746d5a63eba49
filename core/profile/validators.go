package profile

import (
	"regexp"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elevate/core"
)

var (
	// custom validation tags & texts
	personNameTag   = "personname"
	personNameText  = "names can only contain letters, spaces, and apostrophes"
	PersonNameRegex = regexp.MustCompile(`^[A-Za-z\s']+$`)

	gradeTag  = "grade"
	gradeText = "please select a valid grade"

	themeTag  = "theme"
	themeText = "please select a valid theme"
)

// InitValidators registers the profile validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(personNameTag, personNameValidation)
	core.RegisterCustomTranslation(validate, translator, personNameTag, personNameText)

	_ = validate.RegisterValidation(gradeTag, gradeValidation)
	core.RegisterCustomTranslation(validate, translator, gradeTag, gradeText)

	_ = validate.RegisterValidation(themeTag, themeValidation)
	core.RegisterCustomTranslation(validate, translator, themeTag, themeText)
}

func personNameValidation(fl validator.FieldLevel) bool {
	return PersonNameRegex.MatchString(fl.Field().String())
}

func gradeValidation(fl validator.FieldLevel) bool {
	return IsGrade(fl.Field().String())
}

func themeValidation(fl validator.FieldLevel) bool {
	return IsTheme(fl.Field().String())
}
