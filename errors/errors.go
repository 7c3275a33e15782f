package errors

import "fmt"

// Root errors shared by all extensions. Every error returned by a handler
// wraps one of these, or one registered by an extension, so that clients
// receive a stable ABCI code.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	ErrInvalidMsg   = Register(4, "invalid message")
	ErrInvalidModel = Register(5, "invalid model")

	// ErrDuplicate is returned when a record with the same key exists.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that correct code never reaches.
	ErrHuman = Register(7, "coding error")

	ErrEmpty        = Register(9, "value is empty")
	ErrInvalidState = Register(10, "invalid state")
	ErrInvalidType  = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when an account holds less than a
	// transfer needs.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	// ErrInvalidAmount is returned for zero, negative or otherwise unusable
	// amounts.
	ErrInvalidAmount = Register(13, "invalid amount")

	ErrInvalidInput = Register(14, "invalid input")
	ErrOverflow     = Register(16, "an operation cannot be completed due to value overflow")
	ErrDatabase     = Register(17, "database")

	// ErrPanic wraps a recovered panic. Its message is never sent to
	// clients outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// Code 1 is reserved for errors without a registered code.
var usedCodes = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: "internal"},
}

// Register declares a new root error. Codes must be unique: registering a
// code twice panics. Call it only from package level variable declarations.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{code: code, desc: description}
	usedCodes[code] = err
	return err
}

// Error is a root error carrying an ABCI code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is returns true if err is kind or wraps it. A nil kind matches only nil
// errors, including typed nil pointers.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return errIsNil(err)
	}
	for {
		if err == kind {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
}
