package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/timelock"
)

func TestLoadState(t *testing.T) {
	owner := custodytest.NewKey().PublicKey().Address()
	appState, err := genesisAppState(owner, coin.NewCoin(100, 0, "IOV"), time.Hour)
	assert.Nil(t, err)
	gen := &custody.Genesis{
		ChainID:     "custody-test",
		GenesisTime: 1000,
		AppState:    appState,
	}

	cs := iavl.MockCommitStore()
	db, err := loadState(cs, gen)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), cs.LatestVersion().Version)

	coins, err := cash.NewController(cash.NewBucket()).Balance(db, owner)
	assert.Nil(t, err)
	if !coins.Equals(coin.Coins{coin.NewCoinp(100, 0, "IOV")}) {
		t.Fatalf("unexpected genesis balance: %v", coins)
	}
	conf, err := timelock.LoadConfiguration(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(3600), conf.MaxExtension)
	if !conf.Owner.Equals(owner) {
		t.Fatalf("unexpected configuration owner: %s", conf.Owner)
	}

	// Loading again must not apply the genesis for the second time.
	_, err = loadState(cs, gen)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), cs.LatestVersion().Version)

	other := *gen
	other.ChainID = "another-chain"
	_, err = loadState(cs, &other)
	assert.IsErr(t, errors.ErrState, err)
}

func TestLoadStateInvalidGenesis(t *testing.T) {
	gen := &custody.Genesis{
		ChainID:     "custody-test",
		GenesisTime: 1000,
		AppState: custody.Options{
			"timelock": []byte(`[{"asset": "IOV", "beneficiary": "` + custodytest.NewCondition().Address().String() + `", "release_time": 900}]`),
		},
	}
	cs := iavl.MockCommitStore()
	_, err := loadState(cs, gen)
	assert.IsErr(t, timelock.ErrInvalidSchedule, err)
	assert.Equal(t, int64(0), cs.LatestVersion().Version)
}

func TestKeygen(t *testing.T) {
	var out bytes.Buffer
	assert.Nil(t, keygenCmd(&out, nil))
	for _, prefix := range []string{"private key:", "public key:", "address:", "bech32:      cust1"} {
		if !strings.Contains(out.String(), prefix) {
			t.Fatalf("missing %q in output: %s", prefix, out.String())
		}
	}
}

func TestEnv(t *testing.T) {
	assert.Equal(t, "fallback", env("CUSTODY_TEST_SURELY_NOT_SET", "fallback"))
}
