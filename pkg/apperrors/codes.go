package apperrors

// ErrorCode - машинный код ошибки в теле ответа
type ErrorCode string

const (
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError    ErrorCode = "DATABASE_ERROR"
	CodeWriteFailed      ErrorCode = "WRITE_FAILED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeInvalidToken     ErrorCode = "INVALID_TOKEN"
)

// Домены ошибок. Клиент по ним понимает, какая часть маркетплейса отказала.
const (
	DomainSystem      = "system"
	DomainDatabase    = "database"
	DomainRequest     = "request"
	DomainValidation  = "validation"
	DomainAuth        = "auth"
	DomainRules       = "business_logic"
	DomainProfile     = "profile"
	DomainJob         = "job"
	DomainApplication = "application"
	DomainReview      = "review"
	DomainMessage     = "message"
)
