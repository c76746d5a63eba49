package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/profile"
)

var (
	errNoAccountCreator = errors.New("no account creator configured")
	errNoSessionWriter  = errors.New("no session writer configured")
)

// Wizard walks a user through the onboarding steps and submits the resulting profile.
// It is safe for concurrent use.
type Wizard struct {
	sc        *SessionContext
	validator *Validator
	now       func() time.Time

	mu         sync.Mutex
	step       Step
	draft      Draft
	submitting bool
	profile    *profile.Profile
}

func NewWizard(sc *SessionContext, v *Validator) *Wizard {
	if sc == nil {
		sc = new(SessionContext)
	}
	return &Wizard{
		sc:        sc,
		validator: v,
		now:       time.Now,
		step:      StepIntro,
	}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

func (w *Wizard) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	st := State{Step: w.step, Draft: w.draft, Submitting: w.submitting}
	if w.profile != nil {
		p := *w.profile
		st.Profile = &p
	}
	return st
}

// SetField sets a draft field. Names are filtered keystroke by keystroke:
// a rejected value leaves the draft untouched.
func (w *Wizard) SetField(field, raw string) error {
	var (
		theme   profile.Theme
		preview bool
	)

	w.mu.Lock()
	if w.step == StepSubmitted {
		w.mu.Unlock()
		return ErrCompleted
	}
	switch field {
	case FieldName, fieldDisplayName:
		if err := w.validator.CheckNameInput(raw); err != nil {
			w.mu.Unlock()
			return err
		}
		w.draft.Name = raw
	case FieldAge:
		w.draft.Age = raw
	case FieldSchool:
		w.draft.School = raw
	case FieldGrade:
		w.draft.Grade = raw
	case FieldTheme:
		w.draft.Theme = raw
		theme, preview = profile.LookupTheme(core.CleanString(raw, true /* lower */))
	default:
		w.mu.Unlock()
		return errors.Wrap(ErrUnknownField, field)
	}
	w.mu.Unlock()

	if preview && w.sc.Theme != nil {
		w.sc.Theme.SetTheme(theme)
	}
	return nil
}

// Advance moves to the next step once the current one is valid.
// The last step is never passed: only Submit completes the wizard.
func (w *Wizard) Advance() (Step, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == StepSubmitted {
		return w.step, ErrCompleted
	}
	if err := w.validator.ValidateStep(w.step, w.draft); err != nil {
		return w.step, err
	}
	if w.step < StepTheme {
		w.step++
	}
	return w.step, nil
}

// Retreat moves to the previous step without validating. The draft is kept.
func (w *Wizard) Retreat() Step {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step > StepIntro && w.step < StepSubmitted {
		w.step--
	}
	return w.step
}

// AutoAdvance leaves the intro step after `delay`, unless the user already moved on.
func (w *Wizard) AutoAdvance(ctx context.Context, delay time.Duration) error {
	t := time.NewTimer(delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepIntro {
		w.step = StepIdentity
	}
	return nil
}

// Submit creates the account of the draft and saves the session.
//
// Only one submission runs at a time; concurrent calls get ErrDuplicateSubmit.
// On failure the wizard stays on the last step with its draft intact and the
// error matches ErrSubmitFailed. Once the account exists it is never created
// again: a retry only saves the session. Submitting a completed wizard returns
// its profile.
func (w *Wizard) Submit(ctx context.Context) (profile.Profile, error) {
	w.mu.Lock()
	switch {
	case w.step == StepSubmitted:
		p := *w.profile
		w.mu.Unlock()
		return p, nil
	case w.submitting:
		w.mu.Unlock()
		return profile.Profile{}, ErrDuplicateSubmit
	case w.step < StepTheme:
		w.mu.Unlock()
		return profile.Profile{}, ErrStepsIncomplete
	}
	if err := w.validator.ValidateAll(w.draft); err != nil {
		w.mu.Unlock()
		return profile.Profile{}, err
	}
	w.submitting = true
	np := w.draft.NewProfile()
	created := w.profile
	w.mu.Unlock()

	p, err := w.submit(ctx, np, created)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if p != nil {
		w.profile = p
	}
	if err != nil {
		if w.sc.Logger != nil {
			w.sc.Logger.Error("onboarding submit failed", err)
		}
		return profile.Profile{}, err
	}
	w.step = StepSubmitted
	return *p, nil
}

// submit runs without the lock held.
func (w *Wizard) submit(ctx context.Context, np profile.NewProfile, created *profile.Profile) (*profile.Profile, error) {
	if w.sc.Sessions == nil {
		return created, &SubmitError{Err: errNoSessionWriter, AccountCreated: created != nil}
	}
	if created == nil {
		if w.sc.Accounts == nil {
			return nil, &SubmitError{Err: errNoAccountCreator}
		}
		id, err := w.sc.Accounts.CreateAccount(ctx, np)
		if err != nil {
			return nil, &SubmitError{Err: err}
		}

		now := w.now().UTC()
		created = &profile.Profile{
			ID:        id,
			Name:      np.Name,
			Age:       np.Age,
			School:    np.School,
			Grade:     np.Grade,
			Theme:     np.Theme,
			JoinedAt:  now,
			UpdatedAt: now,
		}
	}

	if err := w.sc.Sessions.SaveOnboarded(ctx, *created); err != nil {
		return created, &SubmitError{Err: errors.Wrap(err, "saving session"), AccountCreated: true}
	}
	return created, nil
}
