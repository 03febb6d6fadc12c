// AngelaMos | 2026
// service.go

package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/etuitionbd/server/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert creates the account on first sign-in. Re-posting an existing email
// is a success with created=false and no mutation.
func (s *Service) Upsert(
	ctx context.Context,
	req CreateAccountRequest,
) (*Account, bool, error) {
	role := req.Role
	if role == "" {
		role = RoleStudent
	}

	acct := &Account{
		ID:       uuid.New().String(),
		Email:    strings.ToLower(req.Email),
		Name:     req.Name,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
		Role:     role,
	}

	err := s.repo.Create(ctx, acct)
	if errors.Is(err, core.ErrDuplicateKey) {
		existing, getErr := s.repo.GetByEmail(ctx, acct.Email)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return acct, true, nil
}

// ResolveRole never reports an absent account as an error: an email with no
// record is a student by default.
func (s *Service) ResolveRole(
	ctx context.Context,
	email string,
) (string, error) {
	acct, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, core.ErrNotFound) {
		return RoleStudent, nil
	}
	if err != nil {
		return "", err
	}

	return acct.Role, nil
}

// ResolveID returns the account id for an email, or "" when absent.
func (s *Service) ResolveID(ctx context.Context, email string) (string, error) {
	acct, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, core.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return acct.ID, nil
}

func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

// GetForCaller enforces the self-or-admin rule: admins may read any account,
// everyone else only their own.
func (s *Service) GetForCaller(
	ctx context.Context,
	callerEmail, targetID string,
) (*Account, error) {
	if err := s.authorizeSelfOrAdmin(ctx, callerEmail, targetID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, targetID)
}

func (s *Service) UpdateForCaller(
	ctx context.Context,
	callerEmail, targetID string,
	req UpdateAccountRequest,
) (*Account, error) {
	if err := s.authorizeSelfOrAdmin(ctx, callerEmail, targetID); err != nil {
		return nil, err
	}

	acct, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		acct.Name = *req.Name
	}
	if req.Phone != nil {
		acct.Phone = *req.Phone
	}
	if req.PhotoURL != nil {
		acct.PhotoURL = *req.PhotoURL
	}

	if err := s.repo.Update(ctx, acct); err != nil {
		return nil, err
	}

	return acct, nil
}

func (s *Service) SetRole(
	ctx context.Context,
	id, role string,
) (*Account, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf(
			"set role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	if err := s.repo.SetRole(ctx, id, role); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) authorizeSelfOrAdmin(
	ctx context.Context,
	callerEmail, targetID string,
) error {
	caller, err := s.repo.GetByEmail(ctx, strings.ToLower(callerEmail))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("authorize: %w", core.ErrForbidden)
		}
		return err
	}

	if caller.IsAdmin() || caller.ID == targetID {
		return nil
	}

	return fmt.Errorf("authorize: %w", core.ErrForbidden)
}
