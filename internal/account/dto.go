// AngelaMos | 2026
// dto.go

package account

import (
	"time"
)

type CreateAccountRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Phone    string `json:"phone"    validate:"omitempty,max=20"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url,max=500"`
	Role     string `json:"role"     validate:"omitempty,oneof=student tutor"`
}

type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty"     validate:"omitempty,min=1,max=100"`
	Phone    *string `json:"phone,omitempty"    validate:"omitempty,max=20"`
	PhotoURL *string `json:"photoURL,omitempty" validate:"omitempty,url,max=500"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student tutor admin"`
}

type AccountResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	PhotoURL  string     `json:"photoURL,omitempty"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type UpsertResponse struct {
	Created bool             `json:"created"`
	Message string           `json:"message"`
	Account *AccountResponse `json:"account,omitempty"`
}

type RoleResponse struct {
	Role string `json:"role"`
}

type IDResponse struct {
	ID *string `json:"id"`
}

func ToAccountResponse(a *Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Phone:     a.Phone,
		PhotoURL:  a.PhotoURL,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToAccountResponseList(accounts []Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, ToAccountResponse(&a))
	}
	return responses
}
