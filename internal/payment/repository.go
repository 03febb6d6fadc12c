// AngelaMos | 2026
// repository.go

package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/etuitionbd/server/internal/core"
)

// ErrAlreadyFinalized reports that the posting was already closed by the
// same application, so the confirmation is a safe no-op.
var ErrAlreadyFinalized = errors.New("hire already finalized")

// Store performs the three-way hire transition as one transaction.
type Store interface {
	CompleteHire(
		ctx context.Context,
		applicationID, tuitionID, tutorEmail string,
	) error
}

type store struct {
	db *core.Database
}

func NewStore(db *core.Database) Store {
	return &store{db: db}
}

// CompleteHire approves one application, closes its siblings, and closes
// the posting, all under serializable isolation. The posting update is
// guarded on the posting still being open, so at most one confirmation
// per tuition ever completes. Re-confirming an already finalized hire
// returns ErrAlreadyFinalized; a different application losing the race
// returns ErrConflict.
func (s *store) CompleteHire(
	ctx context.Context,
	applicationID, tuitionID, tutorEmail string,
) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	err := core.InTxWithOptions(ctx, s.db.DB, opts, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE tuitions
			SET status = 'closed',
			    tutor_application_status = 'approved',
			    tutor_email = $2,
			    updated_at = NOW()
			WHERE id = $1 AND status <> 'closed'`,
			tuitionID, tutorEmail)
		if err != nil {
			return fmt.Errorf("close tuition: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("close tuition: %w", err)
		}

		if rows == 0 {
			return s.classifyStaleConfirm(ctx, tx, applicationID, tuitionID)
		}

		result, err = tx.ExecContext(ctx, `
			UPDATE applications
			SET status = 'approved', updated_at = NOW()
			WHERE id = $1 AND tuition_id = $2`,
			applicationID, tuitionID)
		if err != nil {
			return fmt.Errorf("approve application: %w", err)
		}

		rows, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("approve application: %w", err)
		}

		// Rolls back the posting close when the application is gone.
		if rows == 0 {
			return fmt.Errorf("approve application: %w", core.ErrNotFound)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE applications
			SET status = 'closed', updated_at = NOW()
			WHERE tuition_id = $2 AND id <> $1 AND status <> 'closed'`,
			applicationID, tuitionID)
		if err != nil {
			return fmt.Errorf("close sibling applications: %w", err)
		}

		return nil
	})

	return mapHireError(err, tuitionID)
}

// mapHireError translates a losing confirmation into a retryable conflict.
// Under serializable isolation the loser aborts with a serialization
// failure instead of seeing zero rows; the state is untouched either way.
func mapHireError(err error, tuitionID string) error {
	if isSerializationFailure(err) {
		return fmt.Errorf(
			"tuition %s: confirmation lost a concurrent race: %w",
			tuitionID,
			core.ErrConflict,
		)
	}
	return err
}

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailure ||
		pgErr.Code == pgDeadlockDetected
}

// classifyStaleConfirm decides what a zero-row posting update means:
// the posting never existed, the same hire already went through, or a
// different application won.
func (s *store) classifyStaleConfirm(
	ctx context.Context,
	tx *sqlx.Tx,
	applicationID, tuitionID string,
) error {
	var tuitionStatus string
	err := tx.GetContext(ctx, &tuitionStatus,
		`SELECT status FROM tuitions WHERE id = $1`, tuitionID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("tuition %s: %w", tuitionID, core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("inspect tuition: %w", err)
	}

	var appStatus string
	err = tx.GetContext(ctx, &appStatus,
		`SELECT status FROM applications WHERE id = $1 AND tuition_id = $2`,
		applicationID, tuitionID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("application %s: %w", applicationID, core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("inspect application: %w", err)
	}

	if appStatus == "approved" {
		return ErrAlreadyFinalized
	}

	return fmt.Errorf(
		"tuition %s already closed by another application: %w",
		tuitionID,
		core.ErrConflict,
	)
}
