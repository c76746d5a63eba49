package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/subject"
)

type fileRepository struct {
	db *fileTable
}

var _ subject.Repository = (*fileRepository)(nil)

func NewFileRepository(db *DB) subject.Repository {
	return &fileRepository{db: db.file}
}

func (repo *fileRepository) CreateFile(ctx context.Context, f subject.File) (subject.File, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[f.ID] = &f
	return f, nil
}

func (repo *fileRepository) FilterFiles(ctx context.Context, filter subject.QueryFilter, ordering ...core.DBOrdering) ([]subject.File, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	files := make([]subject.File, 0)
	for _, f := range repo.db.table {
		if filter.Grade != "" && f.Grade != filter.Grade {
			continue
		}
		if filter.Subject != "" && !strings.EqualFold(f.Subject, filter.Subject) {
			continue
		}
		files = append(files, *f)
	}

	orderBy(
		len(files),
		func(i, j int) { files[i], files[j] = files[j], files[i] },
		map[string]less{
			"grade":    func(i, j int) (bool, bool) { return compareStrings(files[i].Grade, files[j].Grade) },
			"subject":  func(i, j int) (bool, bool) { return compareStrings(files[i].Subject, files[j].Subject) },
			"filename": func(i, j int) (bool, bool) { return compareStrings(files[i].Filename, files[j].Filename) },
			"created_at": func(i, j int) (bool, bool) {
				return files[i].CreatedAt.Before(files[j].CreatedAt), files[i].CreatedAt.Equal(files[j].CreatedAt)
			},
		},
		"created_at",
		ordering,
	)
	return files, nil
}

func (repo *fileRepository) Subjects(ctx context.Context, grade string) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	seen := make(map[string]bool)
	subjects := make([]string, 0)
	for _, f := range repo.db.table {
		if grade != "" && f.Grade != grade {
			continue
		}
		if !seen[f.Subject] {
			seen[f.Subject] = true
			subjects = append(subjects, f.Subject)
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}
