// AngelaMos | 2026
// repository.go

package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/etuitionbd/server/internal/core"
)

type Repository interface {
	Create(ctx context.Context, app *Application) error
	Get(ctx context.Context, id string) (*Application, error)
	List(ctx context.Context) ([]Application, error)
	ListFor(ctx context.Context, email string) ([]Application, error)
	Update(ctx context.Context, app *Application) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const selectColumns = `
	id, tuition_id, student_email, tutor_email, tutor_name,
	qualification, expected_salary, status, applied_at, updated_at`

func (r *repository) Create(ctx context.Context, app *Application) error {
	query := `
		INSERT INTO applications (
			id, tuition_id, student_email, tutor_email, tutor_name,
			qualification, expected_salary, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING applied_at`

	err := r.db.GetContext(ctx, &app.AppliedAt, query,
		app.ID,
		app.TuitionID,
		app.StudentEmail,
		app.TutorEmail,
		app.TutorName,
		app.Qualification,
		app.ExpectedSalary,
		app.Status,
	)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}

	return nil
}

func (r *repository) Get(ctx context.Context, id string) (*Application, error) {
	query := `SELECT` + selectColumns + `
		FROM applications
		WHERE id = $1`

	var app Application
	err := r.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get application: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}

	return &app, nil
}

func (r *repository) List(ctx context.Context) ([]Application, error) {
	query := `SELECT` + selectColumns + `
		FROM applications
		ORDER BY applied_at DESC`

	var apps []Application
	if err := r.db.SelectContext(ctx, &apps, query); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	return apps, nil
}

// ListFor matches the email on either side of the request, so a user sees
// both the applications they filed and the ones filed against their posting.
func (r *repository) ListFor(
	ctx context.Context,
	email string,
) ([]Application, error) {
	query := `SELECT` + selectColumns + `
		FROM applications
		WHERE student_email = $1 OR tutor_email = $1
		ORDER BY applied_at DESC`

	var apps []Application
	if err := r.db.SelectContext(ctx, &apps, query, email); err != nil {
		return nil, fmt.Errorf("list applications for %s: %w", email, err)
	}

	return apps, nil
}

func (r *repository) Update(ctx context.Context, app *Application) error {
	query := `
		UPDATE applications
		SET tutor_name = $2, qualification = $3, expected_salary = $4,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &app.UpdatedAt, query,
		app.ID,
		app.TutorName,
		app.Qualification,
		app.ExpectedSalary,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update application: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}

	return nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
) error {
	query := `
		UPDATE applications
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update application status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM applications WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete application: %w", core.ErrNotFound)
	}

	return nil
}
