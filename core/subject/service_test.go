package subject_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/profile"
	"github.com/trezcool/elevate/core/subject"
	inmemdb "github.com/trezcool/elevate/storage/database/inmem"
	"github.com/trezcool/elevate/tests"
)

type memStore struct {
	objects map[string]string
	err     error
}

func (s *memStore) Put(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.objects[key] = string(b)
	return "https://files.elevate.test/" + key, nil
}

func setup(t *testing.T) (*subject.Service, subject.Repository, *memStore) {
	repo := inmemdb.NewFileRepository(inmemdb.Open())
	store := &memStore{objects: make(map[string]string)}
	return subject.NewService(repo, store, testutil.NewLogger()), repo, store
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{name: "plain", filename: "notes.pdf", want: "elevate/10th/abc-notes.pdf"},
		{name: "spaces", filename: "my notes v2.pdf", want: "elevate/10th/abc-my_notes_v2.pdf"},
		{name: "unix path", filename: "/home/awa/notes.pdf", want: "elevate/10th/abc-notes.pdf"},
		{name: "windows path", filename: `C:\Users\awa\notes.pdf`, want: "elevate/10th/abc-notes.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subject.ObjectKey(profile.Grade10, "abc", tt.filename))
		})
	}
}

func TestService_Upload(t *testing.T) {
	svc, repo, store := setup(t)
	ctx := context.Background()
	nf := subject.NewFile{Grade: profile.Grade11, Subject: "Physics"}

	f, err := svc.Upload(ctx, nf, subject.Upload{
		Filename: "kinematics notes.pdf",
		Size:     5,
		Body:     strings.NewReader("%PDF-"),
	})
	require.NoError(t, err)

	key := subject.ObjectKey(profile.Grade11, f.ID, "kinematics notes.pdf")
	assert.Equal(t, "%PDF-", store.objects[key])
	assert.Equal(t, "https://files.elevate.test/"+key, f.Link)
	assert.Equal(t, "application/octet-stream", f.ContentType)
	assert.Equal(t, "Physics", f.Subject)

	files, err := repo.FilterFiles(ctx, subject.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, f, files[0])
}

func TestService_UploadInvalid(t *testing.T) {
	svc, repo, store := setup(t)
	ctx := context.Background()
	nf := subject.NewFile{Grade: profile.Grade11, Subject: "Physics"}

	tests := []struct {
		name    string
		up      subject.Upload
		wantErr error
	}{
		{name: "no body", up: subject.Upload{Filename: "a.pdf", Size: 3}, wantErr: subject.ErrEmptyFile},
		{name: "empty", up: subject.Upload{Filename: "a.pdf", Body: strings.NewReader("")}, wantErr: subject.ErrEmptyFile},
		{name: "too large", up: subject.Upload{Filename: "a.pdf", Size: subject.MaxUploadSize + 1, Body: strings.NewReader("x")}, wantErr: subject.ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, nf, tt.up)
			assert.ErrorIs(t, err, tt.wantErr)

			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, map[string]string{"file": tt.wantErr.Error()}, verr.FieldMap())
		})
	}

	t.Run("store failure", func(t *testing.T) {
		store.err = errors.New("bucket unreachable")
		_, err := svc.Upload(ctx, nf, subject.Upload{Filename: "a.pdf", Size: 1, Body: strings.NewReader("x")})
		assert.EqualError(t, err, "storing file: bucket unreachable")
	})

	files, err := repo.FilterFiles(ctx, subject.QueryFilter{})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestService_QueryAndSubjects(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()
	testutil.CreateFile(t, repo, profile.Grade10, "Physics", "waves.pdf")
	testutil.CreateFile(t, repo, profile.Grade10, "Chemistry", "moles.pdf")
	testutil.CreateFile(t, repo, profile.Grade12, "Physics", "optics.pdf")

	files, err := svc.Query(ctx, subject.QueryFilter{Grade: " 10TH ", Subject: "physics"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "waves.pdf", files[0].Filename)

	files, err = svc.Query(ctx, subject.QueryFilter{}, core.DBOrdering{Field: "filename", Ascending: true})
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "moles.pdf", files[0].Filename)
	assert.Equal(t, "waves.pdf", files[2].Filename)

	subjects, err := svc.Subjects(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chemistry", "Physics"}, subjects)

	subjects, err = svc.Subjects(ctx, "12th")
	require.NoError(t, err)
	assert.Equal(t, []string{"Physics"}, subjects)
}

func TestNewFile_Validate(t *testing.T) {
	validate, translator := core.NewValidator()
	profile.InitValidators(validate, translator)

	nf := subject.NewFile{Grade: " 9TH", Subject: "  Maths "}
	require.NoError(t, nf.Validate(validate))
	assert.Equal(t, profile.Grade9, nf.Grade)
	assert.Equal(t, "Maths", nf.Subject)

	nf = subject.NewFile{Grade: "13th", Subject: " "}
	assert.Error(t, nf.Validate(validate))
}
