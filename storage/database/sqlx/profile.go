package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/profile"
)

const profileColumns = "id, name, age, school, grade, theme, joined_at, updated_at"

type profileRepository struct {
	db *sqlx.DB
}

var _ profile.Repository = (*profileRepository)(nil)

func NewProfileRepository(db *sqlx.DB) profile.Repository {
	return &profileRepository{db: db}
}

func (repo profileRepository) CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := `INSERT INTO profile (` + profileColumns + `)
		VALUES (:id, :name, :age, :school, :grade, :theme, :joined_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, p); err != nil {
		return profile.Profile{}, errors.Wrap(err, "inserting profile")
	}
	return p, nil
}

func (repo profileRepository) GetProfileByID(ctx context.Context, id string) (profile.Profile, error) {
	var p profile.Profile
	err := repo.db.GetContext(ctx, &p, `SELECT `+profileColumns+` FROM profile WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.Profile{}, profile.ErrNotFound
	}
	if err != nil {
		return profile.Profile{}, errors.Wrap(err, "selecting profile")
	}
	return p, nil
}

func (repo profileRepository) FilterProfiles(ctx context.Context, filter profile.QueryFilter, ordering ...core.DBOrdering) ([]profile.Profile, error) {
	var w where
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		w.add("(name ILIKE ? OR school ILIKE ?)", pattern, pattern)
	}
	if filter.Grade != "" {
		w.add("grade = ?", filter.Grade)
	}
	if filter.School != "" {
		w.add("LOWER(school) = LOWER(?)", filter.School)
	}
	if filter.Theme != "" {
		w.add("theme = ?", filter.Theme)
	}

	q := `SELECT ` + profileColumns + ` FROM profile` + w.String() +
		orderBy(profile.OrderingFields, "joined_at ASC", ordering)

	profiles := make([]profile.Profile, 0)
	if err := repo.db.SelectContext(ctx, &profiles, q, w.args...); err != nil {
		return nil, errors.Wrap(err, "selecting profiles")
	}
	return profiles, nil
}

func (repo profileRepository) UpdateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := `UPDATE profile
		SET name = :name, age = :age, school = :school, grade = :grade, theme = :theme, updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, p)
	if err != nil {
		return profile.Profile{}, errors.Wrap(err, "updating profile")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return profile.Profile{}, profile.ErrNotFound
	}
	return repo.GetProfileByID(ctx, p.ID)
}

func (repo profileRepository) DeleteProfilesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM profile WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting profiles")
	}
	return nil
}
