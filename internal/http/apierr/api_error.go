package apierr

import (
	"errors"
	"net/http"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/tuanvumaihuynh/pricelist/pkg/zerror"
)

// ErrorResponse is the error response for the API.
type ErrorResponse struct {
	// Error is the human readable message, matching the {"error": ...}
	// body shape of the API surface.
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`

	// StatusCode is the status code for the error response.
	StatusCode int `json:"-"`
}

var InternalServerErr = ErrorResponse{
	Error:      "Internal server error",
	Code:       "INTERNAL_SERVER_ERROR",
	StatusCode: http.StatusInternalServerError,
}

func New(err error) ErrorResponse {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return ErrorResponse{
			Error:      zErr.Msg(),
			Code:       zErr.Code(),
			StatusCode: ZErrorStatusToHTTPStatus(zErr.Status()),
		}
	}

	var validationErrs govalidator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return ErrorResponse{
			Error:      "validation error",
			Code:       "VALIDATION_FAILED",
			StatusCode: http.StatusBadRequest,
		}
	}

	return InternalServerErr
}

func ZErrorStatusToHTTPStatus(status zerror.Status) int {
	switch status {
	case zerror.StatusBadRequest, zerror.StatusValidationFailed:
		return http.StatusBadRequest
	case zerror.StatusNotFound:
		return http.StatusNotFound
	case zerror.StatusServiceUnavailable:
		return http.StatusServiceUnavailable
	case zerror.StatusUnknown, zerror.StatusInternalServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
