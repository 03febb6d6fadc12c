// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/etuitionbd/server/internal/core"
)

type Handler struct {
	jwt       *JWTManager
	validator *validator.Validate
}

func NewHandler(jwt *JWTManager) *Handler {
	return &Handler{
		jwt:       jwt,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/getToken", h.GetToken)
}

type TokenRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Name  string `json:"name"  validate:"omitempty,max=100"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// GetToken mints a signed identity assertion for the posted claims. The
// upstream sign-in flow is trusted to have already authenticated the email.
func (h *Handler) GetToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	token, err := h.jwt.CreateToken(req.Email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, TokenResponse{Token: token})
}
