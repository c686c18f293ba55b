package core

import (
	"errors"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrUnauthorized caller lacks the required role
	ErrUnauthorized ErrorCode = 100001
	// ErrPaused vault is paused
	ErrPaused ErrorCode = 100002
	// ErrReentrancyRejected nested entry into a guarded operation
	ErrReentrancyRejected ErrorCode = 100003

	// ErrInvalidArgument zero identity, non-positive amount or malformed token
	ErrInvalidArgument ErrorCode = 100100

	// ErrTransferFailed asset movement did not unambiguously succeed
	ErrTransferFailed ErrorCode = 100200
	// ErrInsufficientFunds custody cannot cover the amount
	ErrInsufficientFunds ErrorCode = 100201
)

// ErrNotFound record not found
var ErrNotFound = errors.New("not found")

var errorKinds = map[ErrorCode]string{
	ErrUnknown:            "unknown",
	ErrUnauthorized:       "unauthorized",
	ErrPaused:             "paused",
	ErrReentrancyRejected: "reentrancy_rejected",
	ErrInvalidArgument:    "invalid_argument",
	ErrTransferFailed:     "transfer_failed",
	ErrInsufficientFunds:  "insufficient_funds",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.Kind()
}

// Kind readable error kind
func (e ErrorCode) Kind() string {
	if kind, ok := errorKinds[e]; ok {
		return kind
	}

	return errorKinds[ErrUnknown]
}

// Is reports InsufficientFunds as a TransferFailed as well
func (e ErrorCode) Is(target error) bool {
	t, ok := target.(ErrorCode)
	if !ok {
		return false
	}

	return e == t || (e == ErrInsufficientFunds && t == ErrTransferFailed)
}

// Retryable whether the same call may succeed later without changes
func (e ErrorCode) Retryable() bool {
	switch e {
	case ErrPaused, ErrReentrancyRejected, ErrInsufficientFunds:
		return true
	default:
		return false
	}
}

// CodeOf extract the error code carried by err, ErrUnknown if none
func CodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}
