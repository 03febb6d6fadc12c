// AngelaMos | 2026
// dto.go

package tuition

import (
	"strings"
	"time"
)

type CreateTuitionRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=100"`
	Subject     string `json:"subject"     validate:"required,min=1,max=100"`
	ClassLevel  string `json:"classLevel"  validate:"omitempty,max=50"`
	Location    string `json:"location"    validate:"omitempty,max=200"`
	DaysPerWeek int    `json:"daysPerWeek" validate:"omitempty,min=1,max=7"`
	Salary      int64  `json:"salary"      validate:"required,min=1"`
}

type UpdateTuitionRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=1,max=100"`
	Subject     *string `json:"subject,omitempty"     validate:"omitempty,min=1,max=100"`
	ClassLevel  *string `json:"classLevel,omitempty"  validate:"omitempty,max=50"`
	Location    *string `json:"location,omitempty"    validate:"omitempty,max=200"`
	DaysPerWeek *int    `json:"daysPerWeek,omitempty" validate:"omitempty,min=1,max=7"`
	Salary      *int64  `json:"salary,omitempty"      validate:"omitempty,min=1"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved closed"`
}

type TuitionResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Subject     string     `json:"subject"`
	ClassLevel  string     `json:"classLevel,omitempty"`
	Location    string     `json:"location,omitempty"`
	DaysPerWeek int        `json:"daysPerWeek,omitempty"`
	Salary      int64      `json:"salary"`
	Status      string     `json:"status"`
	AppStatus   string     `json:"tutorApplicationStatus"`
	TutorEmail  *string    `json:"tutorEmail,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// ListParams mirrors the query surface: owner email, a status set (any
// match), a case-insensitive substring over subject and name, and
// limit/skip paging that defaults to unlimited.
type ListParams struct {
	Email      string
	Statuses   []string
	SearchText string
	Limit      int
	Skip       int
}

// ParseStatuses splits a comma-separated status filter, dropping empties.
func ParseStatuses(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	statuses := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			statuses = append(statuses, s)
		}
	}

	return statuses
}

func ToTuitionResponse(t *Tuition) TuitionResponse {
	return TuitionResponse{
		ID:          t.ID,
		Email:       t.Email,
		Name:        t.Name,
		Subject:     t.Subject,
		ClassLevel:  t.ClassLevel,
		Location:    t.Location,
		DaysPerWeek: t.DaysPerWeek,
		Salary:      t.Salary,
		Status:      t.Status,
		AppStatus:   t.AppStatus,
		TutorEmail:  t.TutorEmail,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToTuitionResponseList(tuitions []Tuition) []TuitionResponse {
	responses := make([]TuitionResponse, 0, len(tuitions))
	for _, t := range tuitions {
		responses = append(responses, ToTuitionResponse(&t))
	}
	return responses
}
