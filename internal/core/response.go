// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	//nolint:errcheck // best-effort response
	_ = json.NewEncoder(w).Encode(data)
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, ErrorResponse{
		Status: http.StatusBadRequest,
		Error:  message,
		Code:   "BAD_REQUEST",
	})
}

func NotFound(w http.ResponseWriter, resource string) {
	JSON(w, http.StatusNotFound, ErrorResponse{
		Status: http.StatusNotFound,
		Error:  resource + " not found",
		Code:   "NOT_FOUND",
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "unauthorized access"
	}
	JSON(w, http.StatusUnauthorized, ErrorResponse{
		Status: http.StatusUnauthorized,
		Error:  message,
		Code:   "UNAUTHORIZED",
	})
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "forbidden access"
	}
	JSON(w, http.StatusForbidden, ErrorResponse{
		Status: http.StatusForbidden,
		Error:  message,
		Code:   "FORBIDDEN",
	})
}

func Conflict(w http.ResponseWriter, message string) {
	JSON(w, http.StatusConflict, ErrorResponse{
		Status: http.StatusConflict,
		Error:  message,
		Code:   "CONFLICT",
	})
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	JSON(w, http.StatusInternalServerError, ErrorResponse{
		Status: http.StatusInternalServerError,
		Error:  "internal server error",
		Code:   "INTERNAL",
	})
}

func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		JSON(w, appErr.Status, ErrorResponse{
			Status: appErr.Status,
			Error:  appErr.Message,
			Code:   appErr.Code,
		})
		return
	}

	InternalServerError(w, err)
}

// NotFoundHandler answers unmatched routes with the API-level 404 body.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusNotFound, map[string]any{
		"status": http.StatusNotFound,
		"error":  "API not found",
	})
}

func FormatValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "validation failed"
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email")
		case "oneof":
			msgs = append(msgs, fe.Field()+" must be one of: "+fe.Param())
		case "min":
			msgs = append(msgs, fe.Field()+" must be at least "+fe.Param())
		case "max":
			msgs = append(msgs, fe.Field()+" must be at most "+fe.Param())
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}

	return strings.Join(msgs, "; ")
}
