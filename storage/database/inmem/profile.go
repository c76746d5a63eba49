package inmemdb

import (
	"context"
	"strings"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/profile"
)

type profileRepository struct {
	db *profileTable
}

var _ profile.Repository = (*profileRepository)(nil)

func NewProfileRepository(db *DB) profile.Repository {
	return &profileRepository{db: db.profile}
}

func (repo *profileRepository) query() []profile.Profile {
	profiles := make([]profile.Profile, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		profiles = append(profiles, *p)
	}
	return profiles
}

func (repo *profileRepository) CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *profileRepository) GetProfileByID(ctx context.Context, id string) (profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (repo *profileRepository) FilterProfiles(ctx context.Context, filter profile.QueryFilter, ordering ...core.DBOrdering) ([]profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	search := strings.ToLower(filter.Search)
	profiles := make([]profile.Profile, 0)
	for _, p := range repo.query() {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.School), search) {
			continue
		}
		if filter.Grade != "" && p.Grade != filter.Grade {
			continue
		}
		if filter.School != "" && !strings.EqualFold(p.School, filter.School) {
			continue
		}
		if filter.Theme != "" && p.Theme != filter.Theme {
			continue
		}
		profiles = append(profiles, p)
	}

	orderBy(
		len(profiles),
		func(i, j int) { profiles[i], profiles[j] = profiles[j], profiles[i] },
		map[string]less{
			"name":   func(i, j int) (bool, bool) { return compareStrings(profiles[i].Name, profiles[j].Name) },
			"school": func(i, j int) (bool, bool) { return compareStrings(profiles[i].School, profiles[j].School) },
			"grade":  func(i, j int) (bool, bool) { return compareStrings(profiles[i].Grade, profiles[j].Grade) },
			"age": func(i, j int) (bool, bool) {
				return profiles[i].Age < profiles[j].Age, profiles[i].Age == profiles[j].Age
			},
			"joined_at": func(i, j int) (bool, bool) {
				return profiles[i].JoinedAt.Before(profiles[j].JoinedAt), profiles[i].JoinedAt.Equal(profiles[j].JoinedAt)
			},
		},
		"joined_at",
		ordering,
	)
	return profiles, nil
}

func (repo *profileRepository) UpdateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[p.ID]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	p.JoinedAt = orig.JoinedAt
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *profileRepository) DeleteProfilesByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
