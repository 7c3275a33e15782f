package server

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/campuspay/ledger/errors"
	"github.com/campuspay/ledger/weavetest/assert"
)

func TestNewLoggerFiltersLevel(t *testing.T) {
	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogLevel = "error"

	logger, err := NewLogger(&out, cfg)
	assert.Nil(t, err)

	logger.Info("hidden message")
	logger.Error("visible message")

	if strings.Contains(out.String(), "hidden message") {
		t.Fatalf("info must be filtered: %s", out.String())
	}
	if !strings.Contains(out.String(), "visible message") {
		t.Fatalf("error must be logged: %s", out.String())
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogFile = filepath.Join(home, "escrowd.log")

	logger, err := NewLogger(&out, cfg)
	assert.Nil(t, err)
	logger.Info("escrow created", "id", 1)

	raw, err := ioutil.ReadFile(cfg.LogFile)
	assert.Nil(t, err)
	if !strings.Contains(string(raw), "escrow created") {
		t.Fatalf("log file content: %s", raw)
	}
	assert.Equal(t, out.String(), string(raw))
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"
	_, err := NewLogger(ioutil.Discard, cfg)
	assert.IsErr(t, errors.ErrInvalidInput, err)
}
