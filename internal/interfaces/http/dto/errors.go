package dto

import "net/http"

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input and validation error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeValidation   = "ERR_VALIDATION"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeBusinessRule      = "ERR_BUSINESS_RULE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	ErrCodeExceedsBalance    = "ERR_EXCEEDS_BALANCE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeExceedsBalance:    http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to the API error codes.
// Domain codes describe what went wrong; the mapping decides how the
// HTTP layer classifies it.
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"DUPLICATE_INVOICE":    ErrCodeAlreadyExists,
	"DUPLICATE_PART_CODE":  ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,

	"INVALID_INPUT":          ErrCodeInvalidInput,
	"INVALID_ITEM":           ErrCodeInvalidInput,
	"INVALID_AMOUNT":         ErrCodeInvalidInput,
	"INVALID_QUANTITY":       ErrCodeInvalidInput,
	"INVALID_REASON":         ErrCodeInvalidInput,
	"INVALID_ACTOR":          ErrCodeInvalidInput,
	"INVALID_CUSTOMER":       ErrCodeInvalidInput,
	"INVALID_CUSTOMER_NAME":  ErrCodeInvalidInput,
	"INVALID_CATEGORY":       ErrCodeInvalidInput,
	"INVALID_DESCRIPTION":    ErrCodeInvalidInput,
	"INVALID_INVOICE_NUMBER": ErrCodeInvalidInput,
	"INVALID_PAYMENT_TYPE":   ErrCodeInvalidInput,
	"INVALID_MOVEMENT":       ErrCodeInvalidInput,
	"INVALID_PART_NAME":      ErrCodeInvalidInput,
	"INVALID_PART_CODE":      ErrCodeInvalidInput,
	"INVALID_UNIT":           ErrCodeInvalidInput,
	"INVALID_UNIT_PRICE":     ErrCodeInvalidInput,
	"INVALID_MINIMUM":        ErrCodeInvalidInput,
	"INVALID_INSTALLMENTS":   ErrCodeInvalidInput,
	"INVALID_STATUS":         ErrCodeInvalidInput,
	"INVALID_SALE_NUMBER":    ErrCodeInvalidInput,
	"INVALID_RECEIPT_NUMBER": ErrCodeInvalidInput,
	"INVALID_REFERENCE":      ErrCodeInvalidInput,
	"INVALID_ENTRY_TYPE":     ErrCodeInvalidInput,
	"INVALID_SOURCE":         ErrCodeInvalidInput,

	"INVALID_STATE":        ErrCodeInvalidState,
	"SALE_FINALIZED":       ErrCodeInvalidState,
	"SALE_CANCELLED":       ErrCodeInvalidState,
	"ALREADY_FINALIZED":    ErrCodeInvalidState,
	"ALREADY_COMPLETED":    ErrCodeInvalidState,
	"NO_ITEMS":             ErrCodeInvalidState,
	"STOCK_NOT_EMPTY":      ErrCodeInvalidState,
	"ITEM_NOT_FOUND":       ErrCodeNotFound,
	"STOCK_ITEM_NOT_FOUND": ErrCodeNotFound,

	"INSUFFICIENT_STOCK": ErrCodeInsufficientStock,
	"EXCEEDS_BALANCE":    ErrCodeExceedsBalance,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes without a mapping pass through unchanged.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
