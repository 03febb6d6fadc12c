// AngelaMos | 2026
// entity.go

package tuition

import (
	"time"
)

type Tuition struct {
	ID          string     `db:"id"`
	Email       string     `db:"email"`
	Name        string     `db:"name"`
	Subject     string     `db:"subject"`
	ClassLevel  string     `db:"class_level"`
	Location    string     `db:"location"`
	DaysPerWeek int        `db:"days_per_week"`
	Salary      int64      `db:"salary"`
	Status      string     `db:"status"`
	AppStatus   string     `db:"tutor_application_status"`
	TutorEmail  *string    `db:"tutor_email"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// Posting lifecycle. Closed is terminal: no application or payment
// transition may touch a closed posting.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusClosed   = "closed"
)

// Tracks how far any application against the posting has progressed.
const (
	AppStatusUnset       = "unset"
	AppStatusUnderReview = "under-review"
	AppStatusApproved    = "approved"
)

func ValidStatus(status string) bool {
	return status == StatusPending ||
		status == StatusApproved ||
		status == StatusClosed
}

func (t *Tuition) IsClosed() bool {
	return t.Status == StatusClosed
}
