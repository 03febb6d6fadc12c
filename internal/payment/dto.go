// AngelaMos | 2026
// dto.go

package payment

type CreateCheckoutRequest struct {
	TutorSalary   int64  `json:"tutorSalary"   validate:"required,min=1"`
	TutorName     string `json:"tutorName"     validate:"required,min=1,max=100"`
	StudentEmail  string `json:"studentEmail"  validate:"required,email"`
	ApplicationID string `json:"applicationId" validate:"required,uuid4"`
	TuitionID     string `json:"tuitionId"     validate:"required,uuid4"`
	TutorEmail    string `json:"tutorEmail"    validate:"required,email"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// ConfirmResponse always reports success for paid and not-yet-paid
// sessions alike. Completed says whether the hire is finalized.
type ConfirmResponse struct {
	Success   bool `json:"success"`
	Completed bool `json:"completed"`
}
