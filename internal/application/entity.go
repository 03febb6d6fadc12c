// AngelaMos | 2026
// entity.go

package application

import (
	"time"
)

type Application struct {
	ID             string     `db:"id"`
	TuitionID      string     `db:"tuition_id"`
	StudentEmail   string     `db:"student_email"`
	TutorEmail     string     `db:"tutor_email"`
	TutorName      string     `db:"tutor_name"`
	Qualification  string     `db:"qualification"`
	ExpectedSalary int64      `db:"expected_salary"`
	Status         string     `db:"status"`
	AppliedAt      time.Time  `db:"applied_at"`
	UpdatedAt      *time.Time `db:"updated_at"`
}

// Exactly one application per tuition may reach approved. When it does,
// every sibling moves to closed in the same transaction.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusClosed   = "closed"
)

func ValidStatus(status string) bool {
	return status == StatusPending ||
		status == StatusApproved ||
		status == StatusClosed
}
