package custody

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func TestGenesisReadOptions(t *testing.T) {
	raw := `{
		"chain_id": "test-chain",
		"genesis_time": "2019-04-04T11:35:40Z",
		"app_state": {
			"numbers": [1, 2, 3]
		}
	}`
	var gen Genesis
	assert.Nil(t, json.Unmarshal([]byte(raw), &gen))
	assert.Equal(t, "test-chain", gen.ChainID)
	assert.Equal(t, UnixTime(1554377740), gen.GenesisTime)

	var numbers []int
	assert.Nil(t, gen.AppState.ReadOptions("numbers", &numbers))
	assert.Equal(t, []int{1, 2, 3}, numbers)

	// Missing keys are a no-op.
	var missing []int
	assert.Nil(t, gen.AppState.ReadOptions("missing", &missing))
	assert.Equal(t, 0, len(missing))
}

type recordingInitializer struct {
	calls *[]string
	name  string
	err   error
}

func (r recordingInitializer) FromGenesis(Options, UnixTime, KVStore) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestChainInitializersAbortOnError(t *testing.T) {
	var calls []string
	init := ChainInitializers(
		recordingInitializer{calls: &calls, name: "a"},
		recordingInitializer{calls: &calls, name: "b", err: errors.ErrInput},
		recordingInitializer{calls: &calls, name: "c"},
	)
	err := init.FromGenesis(nil, 0, nil)
	assert.IsErr(t, errors.ErrInput, err)
	assert.Equal(t, []string{"a", "b"}, calls)
}
