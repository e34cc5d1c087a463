package domain

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidData Kind = "invalid_data"
	KindNotFound    Kind = "not_found"
	KindNetwork     Kind = "network"
	KindPersistence Kind = "persistence"
)

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewError(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func InvalidData(op string, format string, args ...any) error {
	return NewError(KindInvalidData, op, fmt.Errorf(format, args...))
}

func NotFound(op string, format string, args ...any) error {
	return NewError(KindNotFound, op, fmt.Errorf(format, args...))
}

func Network(op string, err error) error {
	return NewError(KindNetwork, op, err)
}

func Persistence(op string, err error) error {
	return NewError(KindPersistence, op, err)
}

// KindOf reports the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsInvalidData(err error) bool { return KindOf(err) == KindInvalidData }
func IsNotFound(err error) bool    { return KindOf(err) == KindNotFound }
func IsNetwork(err error) bool     { return KindOf(err) == KindNetwork }
func IsPersistence(err error) bool { return KindOf(err) == KindPersistence }
