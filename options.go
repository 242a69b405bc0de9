package custody

import (
	"encoding/json"
)

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(msg), obj)
}

// Genesis file format. Each extension reads its own section from the
// AppState options.
type Genesis struct {
	ChainID     string   `json:"chain_id"`
	GenesisTime UnixTime `json:"genesis_time"`
	AppState    Options  `json:"app_state"`
}

// Initializer implementations actually load data from the genesis file.
// The "now" is the genesis time so that time based invariants can be checked
// while loading.
type Initializer interface {
	FromGenesis(opts Options, now UnixTime, db KVStore) error
}

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...Initializer) Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts Options, now UnixTime, db KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, now, db); err != nil {
			return err
		}
	}
	return nil
}
