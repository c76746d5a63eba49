package profile

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// AccountCreator creates accounts in-process, straight through the Service.
type AccountCreator struct {
	Svc      *Service
	Validate *validator.Validate
}

func (ac AccountCreator) CreateAccount(ctx context.Context, np NewProfile) (string, error) {
	if err := np.Validate(ac.Validate); err != nil {
		return "", err
	}
	p, err := ac.Svc.Create(ctx, np)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}
