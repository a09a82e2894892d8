package services

import (
	"context"
	"errors"

	"github.com/emotu/micro-cloud/internal/api/errs"
	"github.com/emotu/micro-cloud/internal/db/models"
	"github.com/emotu/micro-cloud/internal/db/repos"
	"github.com/emotu/micro-cloud/internal/types"
)

// Credentials manages the lifecycle of API credentials beyond plain CRUD.
type Credentials struct {
	repo *repos.CredentialRepository
}

// NewCredentialService creates a new credential service instance.
func NewCredentialService(repo *repos.CredentialRepository) *Credentials {
	return &Credentials{repo: repo}
}

// ResetKeys regenerates the selected secret keys of a credential owned by
// the user. Existing keys in unselected keyspaces keep working.
func (s *Credentials) ResetKeys(ctx context.Context, id, userID string, req *types.ResetKeysRequest) (*models.Credential, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	cred, err := s.get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	cred.ResetKeys(req.TestMode, req.LiveMode)
	if err := s.repo.Save(ctx, cred); err != nil {
		return nil, err
	}
	return cred, nil
}

// ToggleActive flips a credential between active and deactivated. Requests
// signed with keys of a deactivated credential are rejected.
func (s *Credentials) ToggleActive(ctx context.Context, id, userID string) (*models.Credential, error) {
	cred, err := s.get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	cred.ToggleActive()
	if err := s.repo.Save(ctx, cred); err != nil {
		return nil, err
	}
	return cred, nil
}

func (s *Credentials) get(ctx context.Context, id, userID string) (*models.Credential, error) {
	cred, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, errs.NotFound(id)
		}
		return nil, err
	}
	if userID != "" && cred.UserID != userID {
		return nil, errs.NotFound(id)
	}
	return cred, nil
}
