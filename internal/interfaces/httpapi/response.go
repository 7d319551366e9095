package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/nilosmferreira/damasios-ai/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "damasios-ai"
	internalMessage  = "internal server error"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code        int                 `json:"code"`
	Message     string              `json:"message"`
	Status      string              `json:"status"`
	Errors      []googleErrorItem   `json:"errors,omitempty"`
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// mutationResult is the data payload of every successful actions call.
type mutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeMutation(ctx context.Context, w http.ResponseWriter, status int, message string, result any) {
	writeSuccess(ctx, w, status, mutationResult{Success: true, Message: message, Result: result})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	if mapped.HTTPStatus == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}

	body := &googleErrorBody{
		Code:    mapped.HTTPStatus,
		Message: err.Error(),
		Status:  mapped.Status,
		Errors: []googleErrorItem{
			{
				Domain:  errorDomain,
				Reason:  mapped.Reason,
				Message: err.Error(),
			},
		},
	}
	var verr *usecase.ValidationError
	if errors.As(err, &verr) && !verr.Fields.Empty() {
		body.FieldErrors = verr.Fields
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error:      body,
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: internalMessage,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: internalMessage,
				},
			},
		},
	})
}

// mapError checks the specific causes first: a ValidationError carrying ErrDuplicateEmail also
// matches ErrInvalidInput.
func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "invalidCredentials",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, usecase.ErrDuplicateEmail),
		errors.Is(err, usecase.ErrConstraintViolation):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "alreadyExists",
			Status:     "ALREADY_EXISTS",
		}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrUnauthenticated):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthenticated",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{
			HTTPStatus: http.StatusForbidden,
			Reason:     "forbidden",
			Status:     "PERMISSION_DENIED",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrMatchClosed):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "failedPrecondition",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}
