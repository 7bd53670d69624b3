package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidState = "INVALID_STATE"

	// Server errors (5xx)
	CodeInternalError = "INTERNAL_ERROR"
)
