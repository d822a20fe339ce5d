package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every failure the domain layer can report.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindDuplicateName
	KindCategoryInUse
	KindInvalidCategoryReference
	KindConstraintViolation
	KindTransactionFailure
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindDuplicateName:
		return "DUPLICATE_NAME"
	case KindCategoryInUse:
		return "CATEGORY_IN_USE"
	case KindInvalidCategoryReference:
		return "INVALID_CATEGORY_REFERENCE"
	case KindConstraintViolation:
		return "CONSTRAINT_VIOLATION"
	case KindTransactionFailure:
		return "TRANSACTION_FAILURE"
	case KindValidation:
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error is the domain error carried from repositories up to handlers.
type Error struct {
	Kind    Kind
	Code    string // stable machine readable code, defaults to Kind.String()
	Message string // safe to show to API clients
	Err     error  // underlying cause, never rendered to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code(), e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.code(), e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrNotFound)
// works for every not-found error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Code == "" || t.Code == e.code())
}

func (e *Error) code() string {
	if e.Code != "" {
		return e.Code
	}
	return e.Kind.String()
}

// Kind sentinels for errors.Is.
var (
	ErrNotFound                 = &Error{Kind: KindNotFound, Message: "resource not found"}
	ErrDuplicateName            = &Error{Kind: KindDuplicateName, Message: "name already exists"}
	ErrCategoryInUse            = &Error{Kind: KindCategoryInUse, Message: "category is used by products"}
	ErrInvalidCategoryReference = &Error{Kind: KindInvalidCategoryReference, Message: "one or more category ids do not exist"}
	ErrConstraintViolation      = &Error{Kind: KindConstraintViolation, Message: "constraint violation"}
	ErrTransactionFailure       = &Error{Kind: KindTransactionFailure, Message: "transaction failed"}
	ErrValidation               = &Error{Kind: KindValidation, Message: "validation failed"}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error { return New(KindNotFound, message) }

func DuplicateName(message string) *Error { return New(KindDuplicateName, message) }

func CategoryInUse(message string) *Error { return New(KindCategoryInUse, message) }

func InvalidCategoryReference(message string) *Error {
	return New(KindInvalidCategoryReference, message)
}

func Validation(message string, err error) *Error { return Wrap(KindValidation, message, err) }

// KindOf reports the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error onto the status code the API responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateName, KindCategoryInUse:
		return http.StatusConflict
	case KindInvalidCategoryReference, KindConstraintViolation, KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Public returns the code and message that may be shown to API clients.
// Internal failures are reduced to a generic message.
func Public(err error) (code, message string) {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindInternal {
		return KindInternal.String(), "Internal server error"
	}
	if e.Kind == KindTransactionFailure {
		return e.code(), "The operation could not be completed, no changes were saved"
	}
	return e.code(), e.Message
}
