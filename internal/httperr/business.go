package httperr

import "errors"

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindConflict     Kind = "conflict"
	KindInvalidInput Kind = "invalid_input"
	KindInternal     Kind = "internal"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Details any
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness is shorthand for an invalid-input failure.
func ErrBusiness(code string) error {
	return ErrInvalid(code)
}

func ErrInvalid(code string) error {
	return BusinessError{Kind: KindInvalidInput, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrForbidden(code string) error {
	return BusinessError{Kind: KindForbidden, Code: code}
}

func ErrConflict(code string, details any) error {
	return BusinessError{Kind: KindConflict, Code: code, Details: details}
}

// ErrInvalidWithDetails returns an invalid-input error carrying details.
func ErrInvalidWithDetails(code string, details any) error {
	return BusinessError{Kind: KindInvalidInput, Code: code, Details: details}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf classifies err. Anything that is not a BusinessError is internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

// DetailsOf returns the details attached to a BusinessError, if any.
func DetailsOf(err error) any {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Details
	}
	return nil
}
