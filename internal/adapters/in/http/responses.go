package http

import (
	"errors"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is the envelope for failed responses.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// ErrorBody carries the machine-readable error code and a human-readable message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondData(ctx echo.Context, status int, data interface{}) error {
	return ctx.JSON(status, SuccessResponse{Success: true, Data: data})
}

func respondMessage(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, SuccessResponse{Success: true, Message: message})
}

func respondBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Error:   ErrorBody{Code: "bad_request", Message: message},
	})
}

// respondError maps domain errors to HTTP statuses: not found to 404, forbidden
// to 403, lost races and duplicates to 409, validation and transition-table
// violations to 400, everything unrecognized to 500.
func respondError(ctx echo.Context, err error) error {
	status, code := http.StatusInternalServerError, "internal"

	var (
		notFoundErr   *errs.ObjectNotFoundError
		forbiddenErr  *errs.ForbiddenError
		conflictErr   *errs.ConflictError
		transitionErr *errs.InvalidTransitionError
		invalidErr    *errs.ValueIsInvalidError
		rangeErr      *errs.ValueIsOutOfRangeError
		requiredErr   *errs.ValueIsRequiredError
	)

	switch {
	case errors.As(err, &notFoundErr):
		status, code = http.StatusNotFound, "not_found"
	case errors.As(err, &forbiddenErr):
		status, code = http.StatusForbidden, "forbidden"
	case errors.As(err, &conflictErr):
		status, code = http.StatusConflict, "conflict"
	case errors.As(err, &transitionErr):
		status, code = http.StatusBadRequest, "invalid_transition"
	case errors.As(err, &invalidErr), errors.As(err, &rangeErr), errors.As(err, &requiredErr):
		status, code = http.StatusBadRequest, "validation"
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay out of the response body.
		message = "internal server error"
	}

	return ctx.JSON(status, ErrorResponse{
		Success: false,
		Error:   ErrorBody{Code: code, Message: message},
	})
}
