package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies exchange failures.
type ErrorKind int

const (
	// KindOther anything not covered below, including authentication failures.
	KindOther ErrorKind = iota
	// KindTimeout exchange unreachable or too slow.
	KindTimeout
	// KindInvalidData malformed or unexpected payload.
	KindInvalidData
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindInvalidData:
		return "invalid_data"
	default:
		return "other"
	}
}

var (
	ErrTimeout     = errors.New("exchange timeout")
	ErrInvalidData = errors.New("invalid exchange data")
	ErrOther       = errors.New("exchange error")
)

// ExchangeError failure of a single exchange operation.
type ExchangeError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewExchangeError wraps err as a failure of op.
func NewExchangeError(kind ErrorKind, op string, err error) *ExchangeError {
	return &ExchangeError{Kind: kind, Op: op, Err: err}
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind.
func (e *ExchangeError) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrInvalidData:
		return e.Kind == KindInvalidData
	case ErrOther:
		return e.Kind == KindOther
	}
	return false
}

// KindOf returns the kind of the first ExchangeError in err's chain, KindOther otherwise.
func KindOf(err error) ErrorKind {
	var exErr *ExchangeError
	if errors.As(err, &exErr) {
		return exErr.Kind
	}
	return KindOther
}
