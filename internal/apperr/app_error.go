package apperr

import "github.com/tuanvumaihuynh/pricelist/pkg/zerror"

const (
	ProductNotFoundCode     = "PRODUCT_NOT_FOUND"
	InvalidLanguageCode     = "INVALID_LANGUAGE"
	NoTermsForLanguageCode  = "NO_TERMS_FOR_LANGUAGE"
	InvalidNumericInputCode = "INVALID_NUMERIC_INPUT"
	ValidationErrorCode     = "VALIDATION_FAILED"
)

var (
	ProductNotFoundErr     = zerror.NewNotFound(ProductNotFoundCode, "product not found")
	InvalidLanguageErr     = zerror.NewBadRequest(InvalidLanguageCode, `invalid language, must be "en" or "sv"`)
	NoTermsForLanguageErr  = zerror.NewNotFound(NoTermsForLanguageCode, "no terms found for the specified language")
	InvalidNumericInputErr = zerror.NewBadRequest(InvalidNumericInputCode, "numeric field contains a non-numeric value")
	ValidationErr          = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
)
