package escrowd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/app"
	"github.com/campuspay/ledger/crypto"
	"github.com/campuspay/ledger/errors"
	"github.com/campuspay/ledger/x/cash"
	"github.com/campuspay/ledger/x/escrow"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// DefaultInstance is the escrow instance installed by init.
	DefaultInstance = "campuspay"
	// DefaultBalance funds each genesis account with enough for one
	// escrow of the usual 200000 amount.
	DefaultBalance = 200000
)

// GenesisState is the app_state of the genesis file.
type GenesisState struct {
	Cash   []cash.GenesisAccount `json:"cash"`
	Escrow escrow.Genesis        `json:"escrow"`
}

// GenInitOptions will produce the app_state for a development chain.
//
//   [-instance name] [-balance n] [address...]
//
// Every listed address is funded with the balance. If no address is
// given, a key is generated and written to stdout.
func GenInitOptions(args []string) (json.RawMessage, error) {
	return genInitOptions(os.Stdout, args)
}

func genInitOptions(out io.Writer, args []string) (json.RawMessage, error) {
	var (
		instance string
		balance  int64
	)
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&instance, "instance", DefaultInstance, "name of the escrow instance to install")
	fs.Int64Var(&balance, "balance", DefaultBalance, "initial balance of every account")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := escrow.ValidateInstance(instance); err != nil {
		return nil, err
	}
	if balance <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidAmount, "balance %d", balance)
	}

	var addrs []ledger.Address
	for _, enc := range fs.Args() {
		addr, err := ledger.ParseAddress(enc)
		if err != nil {
			return nil, errors.Wrapf(err, "address %q", enc)
		}
		addrs = append(addrs, addr)
	}
	if len(addrs) == 0 {
		// if no address provided, auto-generate one
		// and print out the keys
		addr, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(out, keys)
		addrs = append(addrs, addr)
	}

	state := GenesisState{
		Escrow: escrow.Genesis{Instances: []string{instance}},
	}
	for _, addr := range addrs {
		state.Cash = append(state.Cash, cash.GenesisAccount{Address: addr, Balance: balance})
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() ledger.Initializer {
	return app.ChainInitializers(
		&cash.Initializer{},
		&escrow.Initializer{},
	)
}

// GenerateApp is used to create a stub for server/start.go command.
// An empty dbPath keeps all data in memory.
func GenerateApp(dbPath string, logger log.Logger, debug bool) (abci.Application, error) {
	application, err := Application("escrowd", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Address ledger.Address     `json:"address"`
	Pubkey  *crypto.PublicKey  `json:"pub_key"`
	Secret  *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
// You can give coins to this address and
// import the keys in a client to use them
func GenerateCoinKey() (ledger.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Address: addr, Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return addr, string(keys), nil
}
