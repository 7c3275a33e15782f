package server

import (
	"io"

	"github.com/campuspay/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns a logger writing to out and, when the configuration
// names a log file, to a size rotated copy of that file. Entries below the
// configured level are dropped.
func NewLogger(out io.Writer, cfg Config) (log.Logger, error) {
	if cfg.LogFile != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
		})
	}
	logger := log.NewTMLogger(log.NewSyncWriter(out))

	level := cfg.LogLevel
	if level == "" {
		level = "info"
	}
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}
