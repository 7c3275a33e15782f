package server

import (
	"bytes"
	stderrors "errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/campuspay/ledger/errors"
	"github.com/campuspay/ledger/weavetest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestParseStartFlags(t *testing.T) {
	cases := map[string]struct {
		args    []string
		want    func(Config) Config
		wantErr *errors.Error
	}{
		"no flags keep the config": {
			want: func(c Config) Config { return c },
		},
		"flags override the config": {
			args: []string{"-bind", "tcp://0.0.0.0:1234", "-debug", "-metrics", ":9100", "-log-level", "debug"},
			want: func(c Config) Config {
				c.Bind = "tcp://0.0.0.0:1234"
				c.Debug = true
				c.MetricsBind = ":9100"
				c.LogLevel = "debug"
				return c
			},
		},
		"unknown flag": {
			args:    []string{"-min_fee", "1"},
			wantErr: errors.ErrInvalidInput,
		},
		"invalid level": {
			args:    []string{"-log-level", "loud"},
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base := DefaultConfig()
			got, err := parseStartFlags(base, tc.args)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want(base), got)
		})
	}
}

func TestDBPath(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("/data", DBFile), dbPath("/data", cfg))

	cfg.DBBackend = MemDBBackend
	assert.Equal(t, "", dbPath("/data", cfg))
}

type countingStopper struct {
	calls int
	err   error
}

func (s *countingStopper) Stop() error {
	s.calls++
	return s.err
}

func TestShutdown(t *testing.T) {
	svr := &countingStopper{}
	metrics := &http.Server{Addr: "127.0.0.1:0"}

	shutdown(log.NewNopLogger(), svr, metrics)()

	assert.Equal(t, 1, svr.calls)
	if err := metrics.ListenAndServe(); err != http.ErrServerClosed {
		t.Fatalf("metrics server not closed: %v", err)
	}
}

func TestShutdownWithoutMetrics(t *testing.T) {
	var out bytes.Buffer
	svr := &countingStopper{err: stderrors.New("already stopped")}

	shutdown(log.NewTMLogger(&out), svr, nil)()

	assert.Equal(t, 1, svr.calls)
	if !strings.Contains(out.String(), "already stopped") {
		t.Fatalf("stop error not logged: %q", out.String())
	}
}
