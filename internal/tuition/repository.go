// AngelaMos | 2026
// repository.go

package tuition

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/etuitionbd/server/internal/core"
)

const latestPageSize = 8

type Repository interface {
	Create(ctx context.Context, tuition *Tuition) error
	Get(ctx context.Context, id string, approvedOnly bool) (*Tuition, error)
	List(ctx context.Context, params ListParams) ([]Tuition, error)
	Latest(ctx context.Context) ([]Tuition, error)
	Update(ctx context.Context, tuition *Tuition) error
	UpdateStatus(ctx context.Context, id, status string) error
	MarkUnderReview(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tuition *Tuition) error {
	query := `
		INSERT INTO tuitions (
			id, email, name, subject, class_level, location,
			days_per_week, salary, status, tutor_application_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &tuition.CreatedAt, query,
		tuition.ID,
		tuition.Email,
		tuition.Name,
		tuition.Subject,
		tuition.ClassLevel,
		tuition.Location,
		tuition.DaysPerWeek,
		tuition.Salary,
		tuition.Status,
		tuition.AppStatus,
	)
	if err != nil {
		return fmt.Errorf("create tuition: %w", err)
	}

	return nil
}

func (r *repository) Get(
	ctx context.Context,
	id string,
	approvedOnly bool,
) (*Tuition, error) {
	query := `
		SELECT id, email, name, subject, class_level, location, days_per_week,
		       salary, status, tutor_application_status, tutor_email,
		       created_at, updated_at
		FROM tuitions
		WHERE id = $1`

	if approvedOnly {
		query += ` AND status = 'approved'`
	}

	var tuition Tuition
	err := r.db.GetContext(ctx, &tuition, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tuition: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tuition: %w", err)
	}

	return &tuition, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Tuition, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Email != "" {
		conditions = append(conditions, fmt.Sprintf("email = $%d", argIdx))
		args = append(args, params.Email)
		argIdx++
	}

	// Set-membership: any of the requested statuses matches.
	if len(params.Statuses) > 0 {
		placeholders := make([]string, 0, len(params.Statuses))
		for _, status := range params.Statuses {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argIdx))
			args = append(args, status)
			argIdx++
		}
		conditions = append(conditions, fmt.Sprintf(
			"status IN (%s)", strings.Join(placeholders, ", ")))
	}

	if params.SearchText != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(subject ILIKE $%d OR name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.SearchText)+"%")
		argIdx++
	}

	query := `
		SELECT id, email, name, subject, class_level, location, days_per_week,
		       salary, status, tutor_application_status, tutor_email,
		       created_at, updated_at
		FROM tuitions`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"

	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, params.Limit)
		argIdx++
	}

	if params.Skip > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, params.Skip)
	}

	var tuitions []Tuition
	if err := r.db.SelectContext(ctx, &tuitions, query, args...); err != nil {
		return nil, fmt.Errorf("list tuitions: %w", err)
	}

	return tuitions, nil
}

// Latest returns the most recent approved postings, fixed page size.
func (r *repository) Latest(ctx context.Context) ([]Tuition, error) {
	query := `
		SELECT id, email, name, subject, class_level, location, days_per_week,
		       salary, status, tutor_application_status, tutor_email,
		       created_at, updated_at
		FROM tuitions
		WHERE status = 'approved'
		ORDER BY created_at DESC
		LIMIT $1`

	var tuitions []Tuition
	err := r.db.SelectContext(ctx, &tuitions, query, latestPageSize)
	if err != nil {
		return nil, fmt.Errorf("latest tuitions: %w", err)
	}

	return tuitions, nil
}

func (r *repository) Update(ctx context.Context, tuition *Tuition) error {
	query := `
		UPDATE tuitions
		SET name = $2, subject = $3, class_level = $4, location = $5,
		    days_per_week = $6, salary = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &tuition.UpdatedAt, query,
		tuition.ID,
		tuition.Name,
		tuition.Subject,
		tuition.ClassLevel,
		tuition.Location,
		tuition.DaysPerWeek,
		tuition.Salary,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update tuition: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update tuition: %w", err)
	}

	return nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
) error {
	query := `
		UPDATE tuitions
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update tuition status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tuition status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update tuition status: %w", core.ErrNotFound)
	}

	return nil
}

// MarkUnderReview flips tutor_application_status on the first application.
// A no-op when the posting already progressed past unset.
func (r *repository) MarkUnderReview(ctx context.Context, id string) error {
	query := `
		UPDATE tuitions
		SET tutor_application_status = 'under-review', updated_at = NOW()
		WHERE id = $1 AND tutor_application_status = 'unset'`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("mark under review: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tuitions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete tuition: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tuition: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete tuition: %w", core.ErrNotFound)
	}

	return nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
