package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/elevate/core/profile"
)

type fakeCreator struct {
	mu      sync.Mutex
	calls   int
	got     []profile.NewProfile
	id      string
	err     error
	started chan struct{} // signaled when a call starts, when set
	release chan struct{} // calls block until closed, when set
}

func (fc *fakeCreator) CreateAccount(ctx context.Context, np profile.NewProfile) (string, error) {
	fc.mu.Lock()
	fc.calls++
	fc.got = append(fc.got, np)
	id, err := fc.id, fc.err
	fc.mu.Unlock()

	if fc.started != nil {
		fc.started <- struct{}{}
	}
	if fc.release != nil {
		<-fc.release
	}
	return id, err
}

func (fc *fakeCreator) Calls() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.calls
}

func (fc *fakeCreator) setErr(err error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.err = err
}

type fakeSessions struct {
	saved []profile.Profile
	err   error
}

func (fs *fakeSessions) SaveOnboarded(ctx context.Context, p profile.Profile) error {
	if fs.err != nil {
		return fs.err
	}
	fs.saved = append(fs.saved, p)
	return nil
}

type fakeTheme struct {
	themes []string
}

func (ft *fakeTheme) SetTheme(th profile.Theme) { ft.themes = append(ft.themes, th.Value) }

func newTestWizard(sc *SessionContext) *Wizard {
	return NewWizard(sc, newTestValidator())
}

// fillDraft sets every field of `d` and walks the wizard to the theme step.
func fillDraft(t *testing.T, w *Wizard, d Draft) {
	t.Helper()
	for _, f := range []struct{ field, value string }{
		{FieldName, d.Name},
		{FieldAge, d.Age},
		{FieldSchool, d.School},
		{FieldGrade, d.Grade},
		{FieldTheme, d.Theme},
	} {
		require.NoError(t, w.SetField(f.field, f.value))
	}
	for w.Step() < StepTheme {
		_, err := w.Advance()
		require.NoError(t, err)
	}
}

func TestNewWizard(t *testing.T) {
	w := newTestWizard(nil)
	st := w.Snapshot()
	assert.Equal(t, StepIntro, st.Step)
	assert.Equal(t, Draft{}, st.Draft)
	assert.False(t, st.Submitting)
	assert.Nil(t, st.Profile)
}

func TestWizard_Advance(t *testing.T) {
	w := newTestWizard(nil)

	// intro always advances
	step, err := w.Advance()
	require.NoError(t, err)
	assert.Equal(t, StepIdentity, step)

	// Al is too short
	require.NoError(t, w.SetField(FieldName, "Al"))
	require.NoError(t, w.SetField(FieldAge, "12"))
	require.NoError(t, w.SetField(FieldSchool, "Greenwood"))
	step, err = w.Advance()
	assert.True(t, errors.Is(err, ErrInvalidName), "Advance() error = %v; want %v", err, ErrInvalidName)
	assert.Equal(t, StepIdentity, step)
	assert.Equal(t, StepIdentity, w.Step())

	// age is reported, not name or school
	require.NoError(t, w.SetField(FieldName, "Alice"))
	require.NoError(t, w.SetField(FieldAge, "9"))
	_, err = w.Advance()
	assert.True(t, errors.Is(err, ErrInvalidAge), "Advance() error = %v; want %v", err, ErrInvalidAge)
	assert.Equal(t, StepIdentity, w.Step())

	require.NoError(t, w.SetField(FieldAge, "12"))
	step, err = w.Advance()
	require.NoError(t, err)
	assert.Equal(t, StepGrade, step)

	_, err = w.Advance()
	assert.True(t, errors.Is(err, ErrInvalidGrade), "Advance() error = %v; want %v", err, ErrInvalidGrade)
	assert.Equal(t, StepGrade, w.Step())

	require.NoError(t, w.SetField(FieldGrade, "9th"))
	step, err = w.Advance()
	require.NoError(t, err)
	assert.Equal(t, StepTheme, step)

	_, err = w.Advance()
	assert.True(t, errors.Is(err, ErrInvalidTheme), "Advance() error = %v; want %v", err, ErrInvalidTheme)

	// advancing from the last step is a no-op
	require.NoError(t, w.SetField(FieldTheme, "dark"))
	step, err = w.Advance()
	require.NoError(t, err)
	assert.Equal(t, StepTheme, step)
}

func TestWizard_StepBounds(t *testing.T) {
	w := newTestWizard(nil)
	d := validDraft()
	require.NoError(t, w.SetField(FieldName, d.Name))
	require.NoError(t, w.SetField(FieldAge, d.Age))
	require.NoError(t, w.SetField(FieldSchool, d.School))
	require.NoError(t, w.SetField(FieldGrade, d.Grade))
	require.NoError(t, w.SetField(FieldTheme, d.Theme))

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		if rnd.Intn(3) == 0 {
			w.Retreat()
		} else {
			_, _ = w.Advance()
		}
		if step := w.Step(); step < StepIntro || step > StepTheme {
			t.Fatalf("step = %v after %d moves; want within [%v, %v]", step, i+1, StepIntro, StepTheme)
		}
	}
}

func TestWizard_Retreat(t *testing.T) {
	w := newTestWizard(nil)
	assert.Equal(t, StepIntro, w.Retreat(), "retreat at intro is a no-op")

	fillDraft(t, w, validDraft())
	before := w.Draft()

	assert.Equal(t, StepGrade, w.Retreat())
	assert.Equal(t, before, w.Draft(), "retreat keeps the draft")

	step, err := w.Advance()
	require.NoError(t, err)
	assert.Equal(t, StepTheme, step)
	assert.Equal(t, before, w.Draft())

	// retreat does not validate
	require.NoError(t, w.SetField(FieldTheme, ""))
	assert.Equal(t, StepGrade, w.Retreat())
	assert.Equal(t, StepIdentity, w.Retreat())
	assert.Equal(t, StepIntro, w.Retreat())
	assert.Equal(t, StepIntro, w.Retreat())
}

func TestWizard_SetField(t *testing.T) {
	th := new(fakeTheme)
	w := newTestWizard(&SessionContext{Theme: th})

	require.NoError(t, w.SetField("displayName", "Jane"))
	assert.Equal(t, "Jane", w.Draft().Name)

	err := w.SetField("displayName", "Jane3")
	assert.True(t, errors.Is(err, ErrInvalidName), "SetField() error = %v; want %v", err, ErrInvalidName)
	assert.Equal(t, "Jane", w.Draft().Name, "rejected input must not mutate the name")

	err = w.SetField(FieldName, "Jane!")
	assert.True(t, errors.Is(err, ErrInvalidName), "SetField() error = %v; want %v", err, ErrInvalidName)
	assert.Equal(t, "Jane", w.Draft().Name)

	// other fields are set as typed
	require.NoError(t, w.SetField(FieldAge, "abc"))
	require.NoError(t, w.SetField(FieldSchool, " x "))
	require.NoError(t, w.SetField(FieldGrade, "7th"))
	assert.Equal(t, Draft{Name: "Jane", Age: "abc", School: " x ", Grade: "7th"}, w.Draft())

	err = w.SetField("email", "jane@example.com")
	assert.True(t, errors.Is(err, ErrUnknownField), "SetField() error = %v; want %v", err, ErrUnknownField)

	// only known themes are previewed
	require.NoError(t, w.SetField(FieldTheme, "neon"))
	require.NoError(t, w.SetField(FieldTheme, "Dracula"))
	assert.Equal(t, []string{profile.ThemeDracula}, th.themes)
	assert.Equal(t, "Dracula", w.Draft().Theme)
}

func TestWizard_AutoAdvance(t *testing.T) {
	w := newTestWizard(nil)
	require.NoError(t, w.AutoAdvance(context.Background(), time.Millisecond))
	assert.Equal(t, StepIdentity, w.Step())

	// the user moved on in the meantime
	fillDraft(t, w, validDraft())
	require.NoError(t, w.AutoAdvance(context.Background(), time.Millisecond))
	assert.Equal(t, StepTheme, w.Step())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w = newTestWizard(nil)
	assert.Equal(t, context.Canceled, w.AutoAdvance(ctx, time.Hour))
	assert.Equal(t, StepIntro, w.Step())
}

func TestWizard_Submit(t *testing.T) {
	creator := &fakeCreator{id: "u-1"}
	sessions := new(fakeSessions)
	w := newTestWizard(&SessionContext{Accounts: creator, Sessions: sessions})
	fixed := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	d := validDraft()
	d.Name = " Alice "
	d.Grade = "10TH"
	fillDraft(t, w, d)

	p, err := w.Submit(context.Background())
	require.NoError(t, err)

	want := profile.Profile{
		ID:        "u-1",
		Name:      "Alice",
		Age:       15,
		School:    "Greenwood",
		Grade:     profile.Grade10,
		Theme:     profile.ThemeOcean,
		JoinedAt:  fixed,
		UpdatedAt: fixed,
	}
	assert.Equal(t, want, p)
	assert.Equal(t, []profile.Profile{want}, sessions.saved)
	assert.Equal(t, []profile.NewProfile{{Name: "Alice", Age: 15, School: "Greenwood", Grade: "10th", Theme: "ocean"}}, creator.got)

	st := w.Snapshot()
	assert.Equal(t, StepSubmitted, st.Step)
	assert.False(t, st.Submitting)
	require.NotNil(t, st.Profile)
	assert.Equal(t, "u-1", st.Profile.ID)

	// completed wizards are frozen
	again, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, again)
	assert.Equal(t, 1, creator.Calls())

	_, err = w.Advance()
	assert.Equal(t, ErrCompleted, err)
	assert.Equal(t, ErrCompleted, w.SetField(FieldName, "Bob"))
	assert.Equal(t, StepSubmitted, w.Retreat())
}

func TestWizard_SubmitPreconditions(t *testing.T) {
	creator := &fakeCreator{id: "u-1"}
	w := newTestWizard(&SessionContext{Accounts: creator})

	_, err := w.Submit(context.Background())
	assert.Equal(t, ErrStepsIncomplete, err)

	fillDraft(t, w, validDraft())
	require.NoError(t, w.SetField(FieldAge, "9"))

	_, err = w.Submit(context.Background())
	assert.True(t, errors.Is(err, ErrInvalidAge), "Submit() error = %v; want %v", err, ErrInvalidAge)
	assert.Equal(t, StepTheme, w.Step())
	assert.Equal(t, 0, creator.Calls())
}

func TestWizard_SubmitDuplicate(t *testing.T) {
	creator := &fakeCreator{
		id:      "u-1",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	w := newTestWizard(&SessionContext{Accounts: creator, Sessions: new(fakeSessions)})
	fillDraft(t, w, validDraft())

	type result struct {
		p   profile.Profile
		err error
	}
	done := make(chan result)
	go func() {
		p, err := w.Submit(context.Background())
		done <- result{p, err}
	}()

	<-creator.started
	assert.True(t, w.Snapshot().Submitting)

	_, err := w.Submit(context.Background())
	assert.Equal(t, ErrDuplicateSubmit, err)

	// the draft stays editable while the request is in flight
	require.NoError(t, w.SetField(FieldSchool, "Riverside"))

	close(creator.release)
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, "u-1", res.p.ID)
	assert.Equal(t, "Greenwood", res.p.School, "the submitted snapshot is used")
	assert.Equal(t, 1, creator.Calls())
	assert.False(t, w.Snapshot().Submitting)
}

func TestWizard_SubmitFailure(t *testing.T) {
	errNetwork := errors.New("connection refused")
	creator := &fakeCreator{id: "u-1", err: errNetwork}
	sessions := new(fakeSessions)
	w := newTestWizard(&SessionContext{Accounts: creator, Sessions: sessions})
	fillDraft(t, w, validDraft())
	before := w.Draft()

	_, err := w.Submit(context.Background())
	assert.True(t, errors.Is(err, ErrSubmitFailed), "Submit() error = %v; want %v", err, ErrSubmitFailed)
	assert.True(t, errors.Is(err, errNetwork), "Submit() error = %v; want it to wrap %v", err, errNetwork)

	st := w.Snapshot()
	assert.Equal(t, StepTheme, st.Step)
	assert.Equal(t, before, st.Draft)
	assert.False(t, st.Submitting)
	assert.Nil(t, st.Profile)
	assert.Empty(t, sessions.saved)

	// retry with the same draft
	creator.setErr(nil)
	p, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", p.ID)
	assert.Equal(t, 2, creator.Calls())
	assert.Equal(t, StepSubmitted, w.Step())
	assert.Len(t, sessions.saved, 1)
}

func TestWizard_SubmitSessionFailure(t *testing.T) {
	creator := &fakeCreator{id: "u-1"}
	sessions := &fakeSessions{err: errors.New("disk full")}
	w := newTestWizard(&SessionContext{Accounts: creator, Sessions: sessions})
	fillDraft(t, w, validDraft())

	_, err := w.Submit(context.Background())
	require.True(t, errors.Is(err, ErrSubmitFailed), "Submit() error = %v; want %v", err, ErrSubmitFailed)
	var serr *SubmitError
	require.True(t, errors.As(err, &serr))
	assert.True(t, serr.AccountCreated)

	st := w.Snapshot()
	assert.Equal(t, StepTheme, st.Step)
	require.NotNil(t, st.Profile)
	assert.Equal(t, "u-1", st.Profile.ID)

	// the retry only saves the session
	sessions.err = nil
	p, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", p.ID)
	assert.Equal(t, 1, creator.Calls())
	assert.Len(t, sessions.saved, 1)
}

func TestWizard_SubmitWithoutCreator(t *testing.T) {
	w := newTestWizard(&SessionContext{Sessions: new(fakeSessions)})
	fillDraft(t, w, validDraft())

	_, err := w.Submit(context.Background())
	assert.True(t, errors.Is(err, ErrSubmitFailed), "Submit() error = %v; want %v", err, ErrSubmitFailed)
	assert.Equal(t, StepTheme, w.Step())
}

func TestWizard_SubmitWithoutSessions(t *testing.T) {
	creator := &fakeCreator{id: "u-1"}
	w := newTestWizard(&SessionContext{Accounts: creator})
	fillDraft(t, w, validDraft())

	_, err := w.Submit(context.Background())
	assert.True(t, errors.Is(err, ErrSubmitFailed), "Submit() error = %v; want %v", err, ErrSubmitFailed)
	assert.True(t, errors.Is(err, errNoSessionWriter), "Submit() error = %v; want it to wrap %v", err, errNoSessionWriter)
	assert.Equal(t, StepTheme, w.Step())
	assert.Nil(t, w.Snapshot().Profile)
	assert.Equal(t, 0, creator.Calls(), "no account is created without a session writer")
}
