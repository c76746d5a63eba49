package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	validate, translator := NewValidator()

	type payload struct {
		Title   string `json:"title" validate:"required"`
		Comment string `json:"comment" validate:"omitempty,notblank"`
	}

	err := validate.Struct(payload{Comment: "   "})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	fields := TranslateErrors(verrs, translator)
	assert.Equal(t, []FieldError{
		{Field: "title", Error: "this field is required"},
		{Field: "comment", Error: "comment cannot be blank"},
	}, fields)

	assert.NoError(t, validate.Struct(payload{Title: "Physics"}))
}
