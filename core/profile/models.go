package profile

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elevate/core"
)

// Grades
const (
	Grade9  = "9th"
	Grade10 = "10th"
	Grade11 = "11th"
	Grade12 = "12th"
)

// Themes
const (
	ThemeLight     = "light"
	ThemeDark      = "dark"
	ThemeFancy     = "fancy"
	ThemeSolarized = "solarized"
	ThemeCyberpunk = "cyberpunk"
	ThemeForest    = "forest"
	ThemeOcean     = "ocean"
	ThemeDracula   = "dracula"
)

// Field limits
const (
	NameMinLen   = 3
	NameMaxLen   = 25
	SchoolMinLen = 3
	SchoolMaxLen = 50
	MinAge       = 10
	MaxAge       = 100
)

var (
	Grades = []string{Grade9, Grade10, Grade11, Grade12}

	Themes = []Theme{
		{Name: "Light Mode", Value: ThemeLight, Description: "Clean and classic"},
		{Name: "Dark Mode", Value: ThemeDark, Description: "Easy on the eyes"},
		{Name: "Fancy Theme", Value: ThemeFancy, Description: "Vibrant and creative"},
		{Name: "Solarized", Value: ThemeSolarized, Description: "Warm and energizing"},
		{Name: "Cyberpunk", Value: ThemeCyberpunk, Description: "Futuristic and bold"},
		{Name: "Forest Green", Value: ThemeForest, Description: "Natural and refreshing"},
		{Name: "Ocean Blue", Value: ThemeOcean, Description: "Calm and focused like deep waters"},
		{Name: "Dracula", Value: ThemeDracula, Description: "Dark and mysterious"},
	}
)

type Theme struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

func IsGrade(s string) bool { return core.StringInSlice(s, Grades) }

func IsTheme(s string) bool {
	_, ok := LookupTheme(s)
	return ok
}

func LookupTheme(value string) (Theme, bool) {
	for _, th := range Themes {
		if th.Value == value {
			return th, true
		}
	}
	return Theme{}, false
}

type Profile struct {
	ID        string    `json:"user_id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Age       int       `json:"age" db:"age"`
	School    string    `json:"school" db:"school"`
	Grade     string    `json:"grade" db:"grade"`
	Theme     string    `json:"theme" db:"theme"`
	JoinedAt  time.Time `json:"joined_at" db:"joined_at"`   // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// NewProfile contains information needed to create a new Profile.
type NewProfile struct {
	Name   string `json:"name" validate:"required,min=3,max=25,personname"`
	Age    int    `json:"age" validate:"required,min=10,max=100"`
	School string `json:"school" validate:"required,min=3,max=50"`
	Grade  string `json:"grade" validate:"required,grade"`
	Theme  string `json:"theme" validate:"required,theme"`
}

func (np *NewProfile) Clean() {
	np.Name = core.CleanString(np.Name)
	np.School = core.CleanString(np.School)
	np.Grade = core.CleanString(np.Grade, true /* lower */)
	np.Theme = core.CleanString(np.Theme, true /* lower */)
}

func (np *NewProfile) Validate(validate *validator.Validate) error {
	np.Clean()
	return validate.Struct(np)
}

// UpdateProfile defines what information may be provided to modify an existing Profile.
// Empty fields keep their current value.
type UpdateProfile struct {
	Name   string `json:"name" validate:"omitempty,min=3,max=25,personname"`
	Age    int    `json:"age" validate:"omitempty,min=10,max=100"`
	School string `json:"school" validate:"omitempty,min=3,max=50"`
	Grade  string `json:"grade" validate:"omitempty,grade"`
	Theme  string `json:"theme" validate:"omitempty,theme"`
}

func (up *UpdateProfile) Validate(validate *validator.Validate) error {
	up.Name = core.CleanString(up.Name)
	up.School = core.CleanString(up.School)
	up.Grade = core.CleanString(up.Grade, true /* lower */)
	up.Theme = core.CleanString(up.Theme, true /* lower */)
	return validate.Struct(up)
}

func (up UpdateProfile) apply(p Profile) Profile {
	if up.Name != "" {
		p.Name = up.Name
	}
	if up.Age != 0 {
		p.Age = up.Age
	}
	if up.School != "" {
		p.School = up.School
	}
	if up.Grade != "" {
		p.Grade = up.Grade
	}
	if up.Theme != "" {
		p.Theme = up.Theme
	}
	return p
}

type QueryFilter struct {
	Search string `query:"search"` // case-insensitive match on name or school
	Grade  string `query:"grade"`
	School string `query:"school"`
	Theme  string `query:"theme"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Grade == "" && qf.School == "" && qf.Theme == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Grade = core.CleanString(qf.Grade, true /* lower */)
	qf.School = core.CleanString(qf.School)
	qf.Theme = core.CleanString(qf.Theme, true /* lower */)
}

// OrderingFields are the fields a profile listing can be ordered by.
var OrderingFields = []string{"name", "age", "school", "grade", "joined_at"}
