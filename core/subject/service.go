package subject

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/elevate/core"
)

var (
	// errors
	ErrEmptyFile    = errors.New("the file is empty")
	ErrFileTooLarge = errors.New("the file is too large")
)

type (
	// ObjectStore stores file contents and hands out public links to them.
	ObjectStore interface {
		Put(ctx context.Context, key, contentType string, size int64, body io.Reader) (link string, err error)
	}

	Repository interface {
		CreateFile(ctx context.Context, f File) (File, error)
		FilterFiles(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]File, error)
		// Subjects lists the distinct subjects, optionally restricted to one grade.
		Subjects(ctx context.Context, grade string) ([]string, error)
	}

	Service struct {
		repo   Repository
		store  ObjectStore
		logger core.Logger
	}
)

func NewService(repo Repository, store ObjectStore, logger core.Logger) *Service {
	return &Service{repo: repo, store: store, logger: logger}
}

// ObjectKey builds the storage key of a file: elevate/<grade>/<id>-<filename>.
func ObjectKey(grade, id, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	return path.Join(KeyPrefix, grade, id+"-"+name)
}

// Upload stores the content of `up` and saves its metadata. `nf` must be validated beforehand.
func (svc *Service) Upload(ctx context.Context, nf NewFile, up Upload) (File, error) {
	if up.Body == nil || up.Size == 0 {
		return File{}, core.NewValidationError(ErrEmptyFile, core.FieldError{Field: "file", Error: ErrEmptyFile.Error()})
	}
	if up.Size > MaxUploadSize {
		return File{}, core.NewValidationError(ErrFileTooLarge, core.FieldError{Field: "file", Error: ErrFileTooLarge.Error()})
	}

	id := uuid.NewString()
	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	link, err := svc.store.Put(ctx, ObjectKey(nf.Grade, id, up.Filename), contentType, up.Size, up.Body)
	if err != nil {
		return File{}, errors.Wrap(err, "storing file")
	}

	f, err := svc.repo.CreateFile(ctx, File{
		ID:          id,
		Grade:       nf.Grade,
		Subject:     nf.Subject,
		Filename:    up.Filename,
		ContentType: contentType,
		Size:        up.Size,
		Link:        link,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return File{}, errors.Wrap(err, "saving file")
	}
	return f, nil
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]File, error) {
	filter.Clean()
	return svc.repo.FilterFiles(ctx, filter, ordering...)
}

func (svc *Service) Subjects(ctx context.Context, grade string) ([]string, error) {
	return svc.repo.Subjects(ctx, core.CleanString(grade, true /* lower */))
}
