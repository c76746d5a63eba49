package profile

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/elevate/core"
)

var (
	// errors
	ErrNotFound = errors.New("profile not found")
)

type (
	Repository interface {
		CreateProfile(ctx context.Context, p Profile) (Profile, error)
		GetProfileByID(ctx context.Context, id string) (Profile, error)
		// FilterProfiles applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Profile.Name or Profile.School.
		FilterProfiles(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Profile, error)
		UpdateProfile(ctx context.Context, p Profile) (Profile, error)
		DeleteProfilesByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		conf   *core.Config
		repo   Repository
		mail   core.EmailService
		logger core.Logger
	}
)

func NewService(conf *core.Config, repo Repository, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{conf: conf, repo: repo, mail: mailSvc, logger: logger}
}

// Create stores a new Profile and notifies the admins about the sign-up.
// `np` must be validated beforehand.
func (svc *Service) Create(ctx context.Context, np NewProfile) (Profile, error) {
	now := time.Now().UTC()
	p, err := svc.repo.CreateProfile(ctx, Profile{
		ID:        uuid.NewString(),
		Name:      np.Name,
		Age:       np.Age,
		School:    np.School,
		Grade:     np.Grade,
		Theme:     np.Theme,
		JoinedAt:  now,
		UpdatedAt: now,
	})
	if err != nil {
		return Profile{}, errors.Wrap(err, "creating profile")
	}
	svc.notifySignup(p)
	return p, nil
}

func (svc *Service) notifySignup(p Profile) {
	if svc.mail == nil || svc.conf.AdminEmail == "" {
		return
	}
	to, err := mail.ParseAddressList(svc.conf.AdminEmail)
	if err != nil {
		if svc.logger != nil {
			svc.logger.Warn("invalid admin email", err)
		}
		return
	}

	msg := &core.EmailMessage{
		Subject:      "New sign-up: " + p.Name,
		TemplateName: "new_signup",
		TemplateData: p,
	}
	for _, addr := range to {
		msg.To = append(msg.To, *addr)
	}
	svc.mail.SendMessages(msg)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Profile{}, ErrNotFound
	}
	return svc.repo.GetProfileByID(ctx, id)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Profile, error) {
	filter.Clean()
	return svc.repo.FilterProfiles(ctx, filter, ordering...)
}

// Update applies the set fields of `up` on `p`. `up` must be validated beforehand.
func (svc *Service) Update(ctx context.Context, p Profile, up UpdateProfile) (Profile, error) {
	p = up.apply(p)
	p.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateProfile(ctx, p)
}

// Delete removes the profiles of `ids`. Nothing is deleted when one of them is not a valid ID.
func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return ErrNotFound
		}
	}
	return svc.repo.DeleteProfilesByID(ctx, ids...)
}
