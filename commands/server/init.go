package server

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"io/ioutil"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	appStateKey = "app_state"
	flagForce   = "i"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenerateCoinKey returns the address of a new key together with the hex
// encoded seed that recovers the private key. Give coins to this address
// and hand the seed to the user so they can access them.
func GenerateCoinKey() (custody.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	addr := privKey.PublicKey().Address()
	seed := hex.EncodeToString(privKey.Ed25519[:32])
	return addr, seed, nil
}

func parseInitArgs(args []string) (bool, []string, error) {
	var force bool
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.BoolVar(&force, flagForce, false, "overwrite existing app_state")
	err := initFlags.Parse(args)
	return force, initFlags.Args(), err
}

// InitCmd adds the app_state generated by gen to the genesis file found in
// <home>/config/genesis.json. The file must have been created with
// `tendermint init` beforehand. An existing app_state is kept unless the
// -i flag is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	force, rest, err := parseInitArgs(args)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	genFile := filepath.Join(home, "config", "genesis.json")
	doc, err := readGenesis(genFile)
	if err != nil {
		return err
	}
	if state, ok := doc[appStateKey]; ok && len(state) > 0 && string(state) != "null" && !force {
		return errors.Wrapf(errors.ErrDuplicate, "app_state already set in %s, use -%s to overwrite", genFile, flagForce)
	}

	options, err := gen(rest)
	if err != nil {
		return err
	}
	doc[appStateKey] = options

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := ioutil.WriteFile(genFile, out, 0600); err != nil {
		return errors.Wrap(err, "cannot write genesis file")
	}
	logger.Info("App state written to genesis", "path", genFile)
	return nil
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func readGenesis(filename string) (GenesisDoc, error) {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read genesis file, run tendermint init first")
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if doc == nil {
		doc = make(GenesisDoc)
	}
	return doc, nil
}
