package errors

import (
	"errors"
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode declares an ABCI response use 0 to signal that the
	// processing was successful and no error is returned.
	SuccessABCICode = 0

	// Errors that do not carry a registered code are reported under the
	// internal code with a generic message.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log pair that is sent back to the client
// in an ABCI response.
//
// Only registered errors expose their message. Anything else is reported as
// an internal error, unless debug is set, in which case the full message
// including the stack trace is returned.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}

	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return internalABCICode, internalABCILog
	default:
		return code, err.Error()
	}
}

// ABCIError returns an error that reproduces the code and log of an ABCI
// response. It is the inverse of ABCIInfo and is used by clients to match
// a failed transaction against the registered errors.
func ABCIError(code uint32, log string) error {
	if code == SuccessABCICode {
		return nil
	}
	root, ok := usedCodes[code]
	if !ok || root == nil {
		root = usedCodes[internalABCICode]
	}
	return &wrappedError{msg: log, parent: root}
}

type coder interface {
	ABCICode() uint32
}

// abciCode unwraps the error until a layer exposing an ABCI code is found.
func abciCode(err error) uint32 {
	for !errIsNil(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}

// errIsNil returns true if value represented by the given error is nil,
// including a typed nil pointer.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}

// Redact replaces all errors that are not registered in this package (or
// are a recovered panic) with a generic internal error. This hides
// implementation details from the client.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
