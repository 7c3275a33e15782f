/*
Package assert holds the few assertions the ledger tests use. Each one
fails the test immediately.
*/
package assert

import (
	"fmt"
	"reflect"
)

// Tester is the part of testing.TB the assertions call.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test unless value is nil or a typed nil of a nillable kind.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of wrapped errors.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails the test unless want and got are deeply equal. Byte slices,
// including addresses and conditions, are printed in hex.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %s\n got %T %s", want, describe(want), got, describe(got))
	}
}

func describe(value interface{}) string {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
		return fmt.Sprintf("%X", v.Bytes())
	}
	return fmt.Sprintf("%v", value)
}

// Panics fails the test if fn returns normally.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr fails the test unless got is want or has want as its root cause.
// Registered errors decide through their Is method.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if w, ok := want.(interface{ Is(error) bool }); ok && w.Is(got) {
		return
	}
	if got == nil {
		t.Fatalf("want %q error, got none", want)
	}
	t.Fatalf("want %q, got %+v", want, got)
}
