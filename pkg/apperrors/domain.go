package apperrors

import "net/http"

// Шаблоны ошибок маркетплейса. Сервисы берут их через Clone().

var (
	// ErrInvalidUserRole - роль сессии не подходит для операции
	// (тренер публикует вакансию, компания откликается, роль не задана).
	ErrInvalidUserRole = template(CodeInvalidOperation, DomainRules, http.StatusBadRequest,
		"Invalid user role for this operation")

	// ErrCannotModifySelf - сообщение самому себе
	ErrCannotModifySelf = template(CodeForbidden, DomainRules, http.StatusBadRequest,
		"Operation on self is not allowed")

	// ErrInsufficientPermissions - компания трогает чужую вакансию или отклик
	ErrInsufficientPermissions = template(CodeForbidden, DomainAuth, http.StatusForbidden,
		"Insufficient permissions")

	ErrInvalidToken = template(CodeInvalidToken, DomainAuth, http.StatusUnauthorized,
		"Invalid or expired token")
)

var (
	ErrProfileNotFound = template(CodeNotFound, DomainProfile, http.StatusNotFound, "Profile not found")
	ErrProfileExists   = template(CodeAlreadyExists, DomainProfile, http.StatusConflict, "Profile already exists")

	ErrJobNotFound         = template(CodeNotFound, DomainJob, http.StatusNotFound, "Job not found")
	ErrAlreadyApplied      = template(CodeAlreadyExists, DomainApplication, http.StatusConflict, "You have already applied to this job")
	ErrApplicationNotFound = template(CodeNotFound, DomainApplication, http.StatusNotFound, "Application not found")

	ErrSelfReview = template(CodeInvalidOperation, DomainReview, http.StatusBadRequest, "You cannot review yourself")

	ErrMessageNotFound = template(CodeNotFound, DomainMessage, http.StatusNotFound, "Message not found")
)

// ErrInvalidStatus - статус отклика вне жизненного цикла
func ErrInvalidStatus(domain, message string) *AppError {
	return template(CodeInvalidStatus, domain, http.StatusBadRequest, message)
}
