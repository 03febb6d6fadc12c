// AngelaMos | 2026
// service.go

package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/etuitionbd/server/internal/core"
	"github.com/etuitionbd/server/internal/tuition"
)

type Service struct {
	repo     Repository
	tuitions tuition.Repository
}

func NewService(repo Repository, tuitions tuition.Repository) *Service {
	return &Service{repo: repo, tuitions: tuitions}
}

// Create files a tutor's bid against a posting. Closed postings take no
// further applications. The first application moves the posting's
// tutorApplicationStatus to under-review.
func (s *Service) Create(
	ctx context.Context,
	req CreateApplicationRequest,
) (*Application, error) {
	posting, err := s.tuitions.Get(ctx, req.TuitionID, false)
	if err != nil {
		return nil, err
	}

	if posting.IsClosed() {
		return nil, fmt.Errorf(
			"create application: posting is closed: %w",
			core.ErrConflict,
		)
	}

	app := &Application{
		ID:             uuid.New().String(),
		TuitionID:      req.TuitionID,
		StudentEmail:   strings.ToLower(req.StudentEmail),
		TutorEmail:     strings.ToLower(req.TutorEmail),
		TutorName:      req.TutorName,
		Qualification:  req.Qualification,
		ExpectedSalary: req.ExpectedSalary,
		Status:         StatusPending,
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}

	if err := s.tuitions.MarkUnderReview(ctx, req.TuitionID); err != nil {
		return nil, err
	}

	return app, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Application, error) {
	return s.repo.Get(ctx, id)
}

// ListFor returns applications touching the given email on either side.
// An empty email lists everything, the admin view.
func (s *Service) ListFor(
	ctx context.Context,
	email string,
) ([]Application, error) {
	if email == "" {
		return s.repo.List(ctx)
	}

	return s.repo.ListFor(ctx, strings.ToLower(email))
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateApplicationRequest,
) (*Application, error) {
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TutorName != nil {
		app.TutorName = *req.TutorName
	}
	if req.Qualification != nil {
		app.Qualification = *req.Qualification
	}
	if req.ExpectedSalary != nil {
		app.ExpectedSalary = *req.ExpectedSalary
	}

	if err := s.repo.Update(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// SetStatus handles manual status moves. Approval is reserved for the
// payment flow, which also closes the siblings.
func (s *Service) SetStatus(
	ctx context.Context,
	id, status string,
) (*Application, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf(
			"set application status: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	if status == StatusApproved {
		return nil, fmt.Errorf(
			"set application status: approval requires payment confirmation: %w",
			core.ErrInvalidInput,
		)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
