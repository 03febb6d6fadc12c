// AngelaMos | 2026
// handler.go

package payment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/etuitionbd/server/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/create-checkout-session", h.CreateCheckoutSession)
		r.Patch("/payment-success", h.PaymentSuccess)
	})
}

func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	url, err := h.service.InitiateCheckout(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, CheckoutResponse{URL: url})
}

func (h *Handler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		core.BadRequest(w, "session_id is required")
		return
	}

	result, err := h.service.ConfirmPayment(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "record")
	case errors.Is(err, core.ErrConflict):
		core.Conflict(w, "posting already closed")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid payment request")
	case errors.Is(err, core.ErrUpstream):
		core.JSONError(w, core.UpstreamError(err, "payment provider unavailable"))
	default:
		core.InternalServerError(w, err)
	}
}
