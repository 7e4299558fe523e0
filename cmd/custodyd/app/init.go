package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/commands/server"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/savings"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const appName = "custodyd"

// genesisState is the app_state written by GenInitOptions.
type genesisState struct {
	Cash    []cash.GenesisAccount  `json:"cash"`
	Escrow  []escrow.GenesisEscrow `json:"escrow"`
	Savings []savings.GenesisPool  `json:"savings"`
}

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// The first argument is the ticker of the issued coins, the second one the
// address of the account in any of the supported address formats. Without
// an address a new key is generated and its seed printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "IOV"
	if len(args) > 0 {
		ticker = args[0]
		if !coin.IsCC(ticker) {
			return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %s", ticker)
		}
	}

	var addr custody.Address
	if len(args) > 1 {
		var err error
		if addr, err = custody.ParseAddress(args[1]); err != nil {
			return nil, err
		}
		if addr == nil {
			return nil, errors.Wrap(errors.ErrEmpty, "address")
		}
	} else {
		// if no address provided, auto-generate one
		// and print out the seed of its key
		generated, seed, err := server.GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = generated
		fmt.Println(seed)
	}

	state := genesisState{
		Cash: []cash.GenesisAccount{{
			Address: addr,
			Coins:   coin.Coins{coin.NewCoinp(123456789, ticker)},
		}},
		Escrow:  []escrow.GenesisEscrow{},
		Savings: []savings.GenesisPool{},
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool, metrics prometheus.Registerer) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "custody.db")
	}

	application, err := Application(appName, Stack(metrics), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}
