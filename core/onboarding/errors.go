package onboarding

import "github.com/pkg/errors"

var (
	// validation kinds, one per step field
	ErrInvalidName   = errors.New("invalid name")
	ErrInvalidSchool = errors.New("invalid school")
	ErrInvalidAge    = errors.New("invalid age")
	ErrInvalidGrade  = errors.New("invalid grade")
	ErrInvalidTheme  = errors.New("invalid theme")

	ErrSubmitFailed    = errors.New("sign up failed")
	ErrDuplicateSubmit = errors.New("a submission is already in progress")
	ErrStepsIncomplete = errors.New("all the steps must be completed first")
	ErrUnknownField    = errors.New("unknown field")
	ErrCompleted       = errors.New("onboarding is already completed")
)

// SubmitFailedMessage is shown to the user when Submit fails.
const SubmitFailedMessage = "Error signing up, please try again"

// SubmitError is returned by Wizard.Submit when a collaborator fails.
// It matches ErrSubmitFailed and unwraps to the collaborator error.
type SubmitError struct {
	Err error
	// AccountCreated is set when the account exists but the session could not be saved.
	AccountCreated bool
}

func (e *SubmitError) Error() string {
	if e.Err == nil {
		return ErrSubmitFailed.Error()
	}
	return ErrSubmitFailed.Error() + ": " + e.Err.Error()
}

func (e *SubmitError) Unwrap() error { return e.Err }

func (e *SubmitError) Is(target error) bool { return target == ErrSubmitFailed }
