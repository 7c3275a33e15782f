package assert

import (
	"testing"

	"github.com/campuspay/ledger/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrEmpty,
			WantFail: false,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"wrapped": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: false,
		},
		"different root": {
			ErrWant:  errors.ErrNotFound,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestNilAndEqual(t *testing.T) {
	var nilSlice []byte
	mock := &tmock{TB: t}
	Nil(mock, nilSlice)
	Nil(mock, nil)
	Equal(mock, []byte("a"), []byte("a"))
	Panics(mock, func() { panic("boom") })
	if mock.failcalls != 0 {
		t.Fatalf("unexpected failures: %d", mock.failcalls)
	}

	Nil(mock, 7)
	Nil(mock, "")
	Equal(mock, 1, 2)
	Panics(mock, func() {})
	if mock.failcalls != 4 {
		t.Fatalf("want 4 failures, got %d", mock.failcalls)
	}
}

func TestDescribe(t *testing.T) {
	type address []byte
	cases := map[string]struct {
		value interface{}
		want  string
	}{
		"bytes":        {[]byte{0xca, 0xfe}, "CAFE"},
		"named bytes":  {address{0x01}, "01"},
		"number":       {42, "42"},
		"nil":          {nil, "<nil>"},
		"string slice": {[]string{"a"}, "[a]"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := describe(tc.value); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

// tmock mocks testing.TB and only counts failure calls. It ignores all other
// input.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}
