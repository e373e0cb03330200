package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError - ошибка, которую сервисы отдают хендлерам. Err и HTTPCode
// наружу не сериализуются.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	head := fmt.Sprintf("%s/%s: %s", e.Domain, e.Code, e.Message)
	if e.Err == nil {
		return head
	}
	return head + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails дополняет ошибку данными для клиента (поля валидации и т.п.)
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// Clone копирует шаблон ошибки. Шаблоны из domain.go общие, их не мутируем.
func (e *AppError) Clone() *AppError {
	cp := *e
	return &cp
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code    ErrorCode   `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{e.Code, e.Domain, e.Message, e.Details})
}

func template(code ErrorCode, domain string, status int, message string) *AppError {
	return &AppError{Code: code, Domain: domain, Message: message, HTTPCode: status}
}

func wrapped(err error, code ErrorCode, domain string, status int, message string) *AppError {
	e := template(code, domain, status, message)
	e.Err = err
	return e
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// AsAppError достает *AppError из цепочки обернутых ошибок
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// InternalError - непредвиденный сбой (паника валидатора, неизвестная ошибка)
func InternalError(err error) *AppError {
	return wrapped(err, CodeInternalError, DomainSystem, http.StatusInternalServerError, "Internal server error")
}

// DatabaseError - сбой чтения из хранилища
func DatabaseError(err error) *AppError {
	return wrapped(err, CodeDatabaseError, DomainDatabase, http.StatusInternalServerError, "Database operation failed")
}

// WriteFailed - отказ хранилища при записи, включая нарушения CHECK и FK
func WriteFailed(err error, domain string) *AppError {
	return wrapped(err, CodeWriteFailed, domain, http.StatusInternalServerError, "Failed to save changes")
}

// ValidationError - 400 с картой "поле -> сообщение" в details
func ValidationError(fields interface{}) *AppError {
	return template(CodeValidationFailed, DomainValidation, http.StatusBadRequest, "Validation failed").WithDetails(fields)
}

func NewBadRequestError(message string) *AppError {
	return template(CodeValidationFailed, DomainRequest, http.StatusBadRequest, message)
}

func NewUnauthorizedError(message string) *AppError {
	return template(CodeUnauthorized, DomainAuth, http.StatusUnauthorized, message)
}

func NewForbiddenError(message string) *AppError {
	return template(CodeForbidden, DomainAuth, http.StatusForbidden, message)
}
