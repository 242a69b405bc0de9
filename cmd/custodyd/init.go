package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/timelock"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	genesisFile = "genesis.json"
	keyFile     = "key.json"
)

// keyDoc is the format of the key file written by init.
type keyDoc struct {
	PrivateKey string          `json:"private_key"`
	Address    custody.Address `json:"address"`
}

func initCmd(logger log.Logger, home string, args []string) error {
	fl := flag.NewFlagSet("init", flag.ExitOnError)
	chainID := fl.String("chain-id", "custody-local", "chain ID used for signing")
	supply := coin.NewCoin(1000000, 0, "IOV")
	fl.Var(&supply, "supply", "funds given to the generated key")
	maxExtension := fl.Duration("max-extension", 0, "longest single relock step, zero means no limit")
	if err := fl.Parse(args); err != nil {
		return err
	}
	if !custody.IsValidChainID(*chainID) {
		return fmt.Errorf("invalid chain ID %q", *chainID)
	}
	if err := supply.Validate(); err != nil || !supply.IsPositive() {
		return fmt.Errorf("invalid supply %s", supply)
	}

	genPath := filepath.Join(home, genesisFile)
	if fileExists(genPath) {
		return fmt.Errorf("genesis file %s already exists", genPath)
	}
	if err := os.MkdirAll(home, 0700); err != nil {
		return fmt.Errorf("cannot create home directory: %s", err)
	}

	key := crypto.GenPrivKeyEd25519()
	owner := key.PublicKey().Address()
	if err := writeJSON(filepath.Join(home, keyFile), 0600, keyDoc{
		PrivateKey: hex.EncodeToString(key),
		Address:    owner,
	}); err != nil {
		return err
	}
	logger.Info("Generated key", "path", filepath.Join(home, keyFile), "address", owner)

	appState, err := genesisAppState(owner, supply, *maxExtension)
	if err != nil {
		return err
	}
	gen := custody.Genesis{
		ChainID:     *chainID,
		GenesisTime: custody.AsUnixTime(time.Now()),
		AppState:    appState,
	}
	if err := writeJSON(genPath, 0644, gen); err != nil {
		return err
	}
	logger.Info("Generated genesis file", "path", genPath, "chain_id", *chainID)
	return nil
}

// genesisAppState returns the initial state with all funds given to the
// owner, who also owns the timelock configuration.
func genesisAppState(owner custody.Address, funds coin.Coin, maxExtension time.Duration) (custody.Options, error) {
	sections := map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Address: owner, Coins: []*coin.Coin{&funds}},
		},
		"timelock": []timelock.GenesisVault{},
		"conf": map[string]interface{}{
			"timelock": timelock.Configuration{
				Metadata:     &custody.Metadata{Schema: 1},
				Owner:        owner,
				MaxExtension: int64(maxExtension / time.Second),
			},
		},
	}
	opts := make(custody.Options, len(sections))
	for name, section := range sections {
		raw, err := json.Marshal(section)
		if err != nil {
			return nil, fmt.Errorf("cannot serialize %s: %s", name, err)
		}
		opts[name] = raw
	}
	return opts, nil
}

func readGenesis(home string) (*custody.Genesis, error) {
	raw, err := ioutil.ReadFile(filepath.Join(home, genesisFile))
	if err != nil {
		return nil, fmt.Errorf("cannot read genesis: %s", err)
	}
	var gen custody.Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, fmt.Errorf("cannot parse genesis: %s", err)
	}
	if !custody.IsValidChainID(gen.ChainID) {
		return nil, fmt.Errorf("invalid chain ID %q", gen.ChainID)
	}
	if gen.GenesisTime.IsZero() {
		return nil, fmt.Errorf("genesis time is required")
	}
	return &gen, nil
}

func writeJSON(path string, perm os.FileMode, content interface{}) error {
	out, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize %s: %s", path, err)
	}
	if err := ioutil.WriteFile(path, out, perm); err != nil {
		return fmt.Errorf("cannot write %s: %s", path, err)
	}
	return nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}
