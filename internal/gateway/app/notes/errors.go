// Package notes синхронизирует список заметок сессии с удаленным хранилищем документов.
package notes

import (
	"errors"
)

// Ошибки операций над заметками.
var (
	ErrValidation        = errors.New("note content must not be blank")
	ErrStoreUnavailable  = errors.New("note store unavailable")
	ErrNotFound          = errors.New("note not found")
	ErrTimeout           = errors.New("note operation timed out")
	ErrMalformedDocument = errors.New("malformed note document")
	ErrOperationInFlight = errors.New("operation of this kind is already in flight")
	ErrNoEditSession     = errors.New("no active edit session")
)

// ErrorKind - машинно-читаемый вид ошибки операции.
type ErrorKind string

// Виды ошибок.
const (
	KindValidation        ErrorKind = "validation"
	KindStoreUnavailable  ErrorKind = "store_unavailable"
	KindNotFound          ErrorKind = "not_found"
	KindTimeout           ErrorKind = "timeout"
	KindMalformedDocument ErrorKind = "malformed_document"
	KindBusy              ErrorKind = "busy"
	KindNoEditSession     ErrorKind = "no_edit_session"
)

// KindOf классифицирует ошибку. Неизвестные ошибки считаются недоступностью хранилища.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrMalformedDocument):
		return KindMalformedDocument
	case errors.Is(err, ErrOperationInFlight):
		return KindBusy
	case errors.Is(err, ErrNoEditSession):
		return KindNoEditSession
	default:
		return KindStoreUnavailable
	}
}

// OperationError - последняя ошибка операции определенного вида.
type OperationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func newOperationError(err error) *OperationError {
	return &OperationError{Kind: KindOf(err), Message: err.Error()}
}
