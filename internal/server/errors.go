package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrRateLimited indicates the client exceeded its request budget
type ErrRateLimited struct {
	RetryAfter time.Duration
}

func (e *ErrRateLimited) Error() string {
	return "Rate limit exceeded. Please try again later."
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		fieldErrs     validator.ValidationErrors
		schemaErr     *schemas.ValidationError
		sectionErr    *editor.SectionError
		fieldErr      *editor.FieldError
		indexErr      *editor.IndexError
		rateErr       *ErrRateLimited
		exportErr     *export.ExportError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &sectionErr), errors.As(err, &fieldErr), errors.As(err, &indexErr):
		return http.StatusBadRequest
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests
	case errors.As(err, &exportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
