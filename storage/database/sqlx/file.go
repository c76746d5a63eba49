package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/subject"
)

const fileColumns = "id, grade, subject, filename, content_type, size, link, created_at"

type fileRepository struct {
	db *sqlx.DB
}

var _ subject.Repository = (*fileRepository)(nil)

func NewFileRepository(db *sqlx.DB) subject.Repository {
	return &fileRepository{db: db}
}

func (repo fileRepository) CreateFile(ctx context.Context, f subject.File) (subject.File, error) {
	q := `INSERT INTO file (` + fileColumns + `)
		VALUES (:id, :grade, :subject, :filename, :content_type, :size, :link, :created_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, f); err != nil {
		return subject.File{}, errors.Wrap(err, "inserting file")
	}
	return f, nil
}

func (repo fileRepository) FilterFiles(ctx context.Context, filter subject.QueryFilter, ordering ...core.DBOrdering) ([]subject.File, error) {
	var w where
	if filter.Grade != "" {
		w.add("grade = ?", filter.Grade)
	}
	if filter.Subject != "" {
		w.add("LOWER(subject) = LOWER(?)", filter.Subject)
	}

	q := `SELECT ` + fileColumns + ` FROM file` + w.String() +
		orderBy(subject.OrderingFields, "created_at ASC", ordering)

	files := make([]subject.File, 0)
	if err := repo.db.SelectContext(ctx, &files, q, w.args...); err != nil {
		return nil, errors.Wrap(err, "selecting files")
	}
	return files, nil
}

func (repo fileRepository) Subjects(ctx context.Context, grade string) ([]string, error) {
	var w where
	if grade != "" {
		w.add("grade = ?", grade)
	}

	subjects := make([]string, 0)
	q := `SELECT DISTINCT subject FROM file` + w.String() + ` ORDER BY subject`
	if err := repo.db.SelectContext(ctx, &subjects, q, w.args...); err != nil {
		return nil, errors.Wrap(err, "selecting subjects")
	}
	return subjects, nil
}
