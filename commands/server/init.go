package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	tmtypes "github.com/tendermint/tendermint/types"
)

const (
	appStateKey = "app_state"
	dirConfig   = "config"
	genesisFile = "genesis.json"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// GenesisFile returns the location of the genesis file for the given home
// directory.
func GenesisFile(home string) string {
	return filepath.Join(home, dirConfig, genesisFile)
}

// InitCmd writes the node configuration and adds the app_state produced by
// gen to the genesis file. A genesis file is created when none exists yet.
// Existing app_state is never overwritten.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	chainID := initFlags.String("chain-id", "campus-"+cmn.RandStr(6), "chain id used when a new genesis file is created")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return err
	}
	logger.Info("Using config", "path", filepath.Join(home, ConfigFile), "db", cfg.DBBackend)

	genFile := GenesisFile(home)
	if fileExists(genFile) {
		logger.Info("Found genesis file", "path", genFile)
	} else {
		if err := createGenesis(genFile, *chainID); err != nil {
			return err
		}
		logger.Info("Generated genesis file", "path", genFile, "chain", *chainID)
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return err
	}
	return addGenesisOptions(genFile, options)
}

func createGenesis(filename, chainID string) error {
	if !ledger.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id %q", chainID)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return errors.Wrap(err, "cannot create config directory")
	}
	doc := tmtypes.GenesisDoc{
		ChainID:     chainID,
		GenesisTime: time.Now().UTC(),
	}
	return doc.SaveAs(filename)
}

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "cannot read genesis file")
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, fmt.Sprintf("genesis file: %s", err))
	}

	if v, ok := doc[appStateKey]; ok && len(v) > 0 && string(v) != "null" {
		return errors.Wrap(errors.ErrDuplicate, "app_state is already set")
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode genesis")
	}
	return ioutil.WriteFile(filename, out, 0600)
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}
