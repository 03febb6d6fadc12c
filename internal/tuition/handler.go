// AngelaMos | 2026
// handler.go

package tuition

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
	// Public browse surface.
	r.Get("/latest-tuitions", h.Latest)

	r.Route("/tuitions", func(r chi.Router) {
		r.Get("/{tuitionID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/", h.List)
			r.Post("/", h.Create)
			r.Patch("/{tuitionID}/update", h.Update)
			r.Delete("/{tuitionID}/delete", h.Delete)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Patch("/{tuitionID}/status/update", h.UpdateStatus)
			})
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())

	var req CreateTuitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	tuition, err := h.service.Create(r.Context(), email, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToTuitionResponse(tuition))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tuitionID")
	approvedOnly := r.URL.Query().Get("status") == StatusApproved

	tuition, err := h.service.Get(r.Context(), id, approvedOnly)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tuition")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTuitionResponse(tuition))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := ListParams{
		Email:      q.Get("email"),
		Statuses:   ParseStatuses(q.Get("status")),
		SearchText: q.Get("searchText"),
		Limit:      parseIntParam(q.Get("limit")),
		Skip:       parseIntParam(q.Get("skip")),
	}

	tuitions, err := h.service.List(r.Context(), params)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid status filter")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTuitionResponseList(tuitions))
}

func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	tuitions, err := h.service.Latest(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTuitionResponseList(tuitions))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tuitionID")

	var req UpdateTuitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	tuition, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tuition")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTuitionResponse(tuition))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tuitionID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	tuition, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tuition")
			return
		}
		if errors.Is(err, core.ErrConflict) {
			core.Conflict(w, "tuition is closed")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid status")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTuitionResponse(tuition))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tuitionID")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tuition")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func parseIntParam(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
