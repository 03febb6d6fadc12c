// AngelaMos | 2026
// dto.go

package application

import (
	"time"
)

type CreateApplicationRequest struct {
	TuitionID      string `json:"tuitionId"      validate:"required,uuid4"`
	StudentEmail   string `json:"studentEmail"   validate:"required,email"`
	TutorEmail     string `json:"tutorEmail"     validate:"required,email"`
	TutorName      string `json:"tutorName"      validate:"required,min=1,max=100"`
	Qualification  string `json:"qualification"  validate:"omitempty,max=500"`
	ExpectedSalary int64  `json:"expectedSalary" validate:"omitempty,min=1"`
}

type UpdateApplicationRequest struct {
	TutorName      *string `json:"tutorName,omitempty"      validate:"omitempty,min=1,max=100"`
	Qualification  *string `json:"qualification,omitempty"  validate:"omitempty,max=500"`
	ExpectedSalary *int64  `json:"expectedSalary,omitempty" validate:"omitempty,min=1"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved closed"`
}

type ApplicationResponse struct {
	ID             string     `json:"id"`
	TuitionID      string     `json:"tuitionId"`
	StudentEmail   string     `json:"studentEmail"`
	TutorEmail     string     `json:"tutorEmail"`
	TutorName      string     `json:"tutorName"`
	Qualification  string     `json:"qualification,omitempty"`
	ExpectedSalary int64      `json:"expectedSalary,omitempty"`
	Status         string     `json:"status"`
	AppliedAt      time.Time  `json:"appliedAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

func ToApplicationResponse(a *Application) ApplicationResponse {
	return ApplicationResponse{
		ID:             a.ID,
		TuitionID:      a.TuitionID,
		StudentEmail:   a.StudentEmail,
		TutorEmail:     a.TutorEmail,
		TutorName:      a.TutorName,
		Qualification:  a.Qualification,
		ExpectedSalary: a.ExpectedSalary,
		Status:         a.Status,
		AppliedAt:      a.AppliedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func ToApplicationResponseList(apps []Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		responses = append(responses, ToApplicationResponse(&a))
	}
	return responses
}
