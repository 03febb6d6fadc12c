// AngelaMos | 2026
// handler.go

package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/etuitionbd/server/internal/core"
	"github.com/etuitionbd/server/internal/middleware"
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
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		// First sign-in upsert happens before a token exists.
		r.Post("/", h.Upsert)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/", h.List)
			r.Get("/{accountID}", h.Get)
			r.Get("/{email}/role", h.GetRole)
			r.Get("/{email}/id", h.GetID)
			r.Patch("/{accountID}/update", h.Update)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Patch("/{accountID}/update/role", h.UpdateRole)
				r.Delete("/{accountID}/delete", h.Delete)
			})
		})
	})
}

func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	acct, created, err := h.service.Upsert(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	resp := ToAccountResponse(acct)
	if !created {
		core.OK(w, UpsertResponse{
			Created: false,
			Message: "account already exists, signed in",
			Account: &resp,
		})
		return
	}

	core.Created(w, UpsertResponse{
		Created: true,
		Message: "account created",
		Account: &resp,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAccountResponseList(accounts))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	callerEmail := middleware.GetUserEmail(r.Context())
	targetID := chi.URLParam(r, "accountID")

	acct, err := h.service.GetForCaller(r.Context(), callerEmail, targetID)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "you can only view your own profile")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAccountResponse(acct))
}

func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	role, err := h.service.ResolveRole(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, RoleResponse{Role: role})
}

func (h *Handler) GetID(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	id, err := h.service.ResolveID(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	resp := IDResponse{}
	if id != "" {
		resp.ID = &id
	}

	core.OK(w, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	callerEmail := middleware.GetUserEmail(r.Context())
	targetID := chi.URLParam(r, "accountID")

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	acct, err := h.service.UpdateForCaller(
		r.Context(),
		callerEmail,
		targetID,
		req,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "you can only update your own profile")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAccountResponse(acct))
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "accountID")

	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	acct, err := h.service.SetRole(r.Context(), targetID, req.Role)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid role")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAccountResponse(acct))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "accountID")

	if err := h.service.Delete(r.Context(), targetID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

var _ middleware.RoleResolver = (*Service)(nil)
