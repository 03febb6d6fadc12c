// AngelaMos | 2026
// service.go

package tuition

import (
	"context"
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

// Create opens a new posting owned by the caller. Postings start pending
// and wait for admin approval before they surface publicly.
func (s *Service) Create(
	ctx context.Context,
	ownerEmail string,
	req CreateTuitionRequest,
) (*Tuition, error) {
	tuition := &Tuition{
		ID:          uuid.New().String(),
		Email:       strings.ToLower(ownerEmail),
		Name:        req.Name,
		Subject:     req.Subject,
		ClassLevel:  req.ClassLevel,
		Location:    req.Location,
		DaysPerWeek: req.DaysPerWeek,
		Salary:      req.Salary,
		Status:      StatusPending,
		AppStatus:   AppStatusUnset,
	}

	if err := s.repo.Create(ctx, tuition); err != nil {
		return nil, err
	}

	return tuition, nil
}

func (s *Service) Get(
	ctx context.Context,
	id string,
	approvedOnly bool,
) (*Tuition, error) {
	return s.repo.Get(ctx, id, approvedOnly)
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
) ([]Tuition, error) {
	params.Email = strings.ToLower(params.Email)

	for _, status := range params.Statuses {
		if !ValidStatus(status) {
			return nil, fmt.Errorf(
				"list tuitions: invalid status %q: %w",
				status,
				core.ErrInvalidInput,
			)
		}
	}

	return s.repo.List(ctx, params)
}

func (s *Service) Latest(ctx context.Context) ([]Tuition, error) {
	return s.repo.Latest(ctx)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateTuitionRequest,
) (*Tuition, error) {
	tuition, err := s.repo.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tuition.Name = *req.Name
	}
	if req.Subject != nil {
		tuition.Subject = *req.Subject
	}
	if req.ClassLevel != nil {
		tuition.ClassLevel = *req.ClassLevel
	}
	if req.Location != nil {
		tuition.Location = *req.Location
	}
	if req.DaysPerWeek != nil {
		tuition.DaysPerWeek = *req.DaysPerWeek
	}
	if req.Salary != nil {
		tuition.Salary = *req.Salary
	}

	if err := s.repo.Update(ctx, tuition); err != nil {
		return nil, err
	}

	return tuition, nil
}

// SetStatus moves a posting through its moderation lifecycle. A closed
// posting is terminal and stays closed.
func (s *Service) SetStatus(
	ctx context.Context,
	id, status string,
) (*Tuition, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf(
			"set tuition status: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	current, err := s.repo.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if current.IsClosed() && status != StatusClosed {
		return nil, fmt.Errorf(
			"set tuition status: posting is closed: %w",
			core.ErrConflict,
		)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id, false)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
