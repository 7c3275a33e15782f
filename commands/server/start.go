package server

import (
	"flag"
	"net/http"
	"os"
	"path/filepath"

	"github.com/campuspay/ledger/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// DBFile is the name of the application database inside the home directory.
const DBFile = "escrow.db"

// AppGenerator lets us lazily initialize app, using the database path
// and logger potentially initialized with other flags
type AppGenerator func(dbPath string, logger log.Logger, debug bool) (abci.Application, error)

// parseStartFlags applies the command line flags on top of the configuration
// loaded from the home directory.
func parseStartFlags(cfg Config, args []string) (Config, error) {
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&cfg.Bind, "bind", cfg.Bind, "address server listens on")
	startFlags.StringVar(&cfg.MetricsBind, "metrics", cfg.MetricsBind, "address of the prometheus endpoint, disabled if empty")
	startFlags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "one of debug, info, error or none")
	startFlags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return cfg, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return cfg, cfg.Validate()
}

// dbPath returns the location of the application database. An empty path
// selects the in memory store.
func dbPath(home string, cfg Config) string {
	if cfg.DBBackend == MemDBBackend {
		return ""
	}
	return filepath.Join(home, DBFile)
}

// StartCmd initializes the application and serves it over the ABCI socket
// until the process receives a termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	cfg, err := LoadConfig(home)
	if err != nil {
		return err
	}
	if cfg, err = parseStartFlags(cfg, args); err != nil {
		return err
	}
	if cfg.LogLevel != "info" || cfg.LogFile != "" {
		if logger, err = NewLogger(os.Stdout, cfg); err != nil {
			return err
		}
	}

	app, err := gen(dbPath(home, cfg), logger, cfg.Debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", cfg.Bind, "db", cfg.DBBackend)
	svr, err := server.NewServer(cfg.Bind, "socket", app)
	if err != nil {
		return errors.Wrap(err, "cannot create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "cannot start server")
	}

	var metrics *http.Server
	if cfg.MetricsBind != "" {
		metrics = serveMetrics(cfg.MetricsBind, logger)
	}

	// TrapSignal returns at once and exits the process after the cleanup
	// ran, so block here until that happens.
	cmn.TrapSignal(logger, shutdown(logger, svr, metrics))
	select {}
}

type stopper interface {
	Stop() error
}

// shutdown returns the cleanup run when the node receives SIGINT or
// SIGTERM. metrics may be nil.
func shutdown(logger log.Logger, svr stopper, metrics *http.Server) func() {
	return func() {
		if metrics != nil {
			if err := metrics.Close(); err != nil {
				logger.Error("Cannot close metrics server", "err", err)
			}
		}
		if err := svr.Stop(); err != nil {
			logger.Error("Cannot stop ABCI server", "err", err)
		}
	}
}

func serveMetrics(addr string, logger log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	logger.Info("Serving metrics", "bind", addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", "err", err)
		}
	}()
	return srv
}
