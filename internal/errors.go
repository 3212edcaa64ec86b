package internal

import (
	"encoding/json"
	"fmt"
)

type ErrorType string

const (
	// ErrorTypeAuth covers a rejected login. It is surfaced inline on the
	// login surface and never touches the stored session.
	ErrorTypeAuth ErrorType = "AUTH_ERROR"
	// ErrorTypePermission is the client-side UI gate: no request was made.
	ErrorTypePermission ErrorType = "PERMISSION_DENIED"
	// ErrorTypeAPI is a non-success response from the backend.
	ErrorTypeAPI ErrorType = "API_ERROR"
	// ErrorTypeTransport is a network or decode failure; the user sees it
	// exactly like an API error.
	ErrorTypeTransport ErrorType = "TRANSPORT_ERROR"
	ErrorTypeInternal  ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeLoginRejected    ErrorCode = "LOGIN_REJECTED"
	ErrCodeNoPermission     ErrorCode = "NO_PERMISSION"
	ErrCodeRequestFailed    ErrorCode = "REQUEST_FAILED"
	ErrCodeTransportFailed  ErrorCode = "TRANSPORT_FAILED"
	ErrCodeSessionCorrupted ErrorCode = "SESSION_CORRUPTED"
	ErrCodeUnknownView      ErrorCode = "UNKNOWN_VIEW"
)

// AppError is the single failure type every component of the console reports.
// StatusCode is the HTTP status of the backend response; it is zero for
// transport failures, which carry no status at all.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func NewAuthError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeAuth,
		Code:    ErrCodeLoginRejected,
		Message: message,
	}
}

func NewPermissionError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypePermission,
		Code:    ErrCodeNoPermission,
		Message: message,
	}
}

func NewAPIError(status int, message string) *AppError {
	return &AppError{
		Type:       ErrorTypeAPI,
		Code:       ErrCodeRequestFailed,
		Message:    message,
		StatusCode: status,
	}
}

func NewTransportError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransport,
		Code:    ErrCodeTransportFailed,
		Message: message,
		Cause:   cause,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Code:    "INTERNAL_ERROR",
		Message: message,
		Cause:   cause,
	}
}

var (
	ErrSessionCorrupted = &AppError{
		Type:    ErrorTypeAuth,
		Code:    ErrCodeSessionCorrupted,
		Message: "stored session is incomplete",
	}
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
