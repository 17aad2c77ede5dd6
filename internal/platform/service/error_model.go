package service

import "errors"

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "validation"
	ErrorCodeInvalidFormData ErrorCode = "invalid_form_data"
	ErrorCodeInvalidDate     ErrorCode = "invalid_date"
	ErrorCodeUnauthorized    ErrorCode = "unauthorized"
	ErrorCodeForbidden       ErrorCode = "forbidden"
	ErrorCodeConflict        ErrorCode = "conflict"
	ErrorCodeTooLarge        ErrorCode = "too_large"
	ErrorCodeNotFound        ErrorCode = "not_found"
	ErrorCodeStorageWrite    ErrorCode = "storage_write"
	ErrorCodeStorageDelete   ErrorCode = "storage_delete"
	ErrorCodeMetadataWrite   ErrorCode = "metadata_write"
	ErrorCodeRead            ErrorCode = "read"
	ErrorCodeConfig          ErrorCode = "config"
	ErrorCodeInternal        ErrorCode = "internal"
)

// ServiceError 是服务层的失败结果：Code 稳定可判断，Message 可直接返回给调用方，
// Err 为底层原因，只用于日志。
type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewServiceError(code ErrorCode, message string) error {
	return &ServiceError{Code: code, Message: message}
}

// WrapServiceError 附带底层原因
func WrapServiceError(code ErrorCode, message string, cause error) error {
	return &ServiceError{Code: code, Message: message, Err: cause}
}

func NewValidationError(message string) error {
	return NewServiceError(ErrorCodeValidation, message)
}

func NewUnauthorizedError(message string) error {
	return NewServiceError(ErrorCodeUnauthorized, message)
}

func NewForbiddenError(message string) error {
	return NewServiceError(ErrorCodeForbidden, message)
}

func NewNotFoundError(message string) error {
	return NewServiceError(ErrorCodeNotFound, message)
}

func NewConfigError(message string) error {
	return NewServiceError(ErrorCodeConfig, message)
}

func AsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}

// IsCode 判断 err 是否为指定错误码的 ServiceError
func IsCode(err error, code ErrorCode) bool {
	serviceErr, ok := AsServiceError(err)
	return ok && serviceErr.Code == code
}
