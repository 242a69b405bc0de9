package timelock

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const optKey = "timelock"

// GenesisVault is used to parse the json from genesis file.
type GenesisVault struct {
	Asset       string           `json:"asset"`
	Beneficiary custody.Address  `json:"beneficiary"`
	ReleaseTime custody.UnixTime `json:"release_time"`
	Depositor   custody.Address  `json:"depositor"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis stores the configuration and all vaults declared in the
// genesis file. Every vault must be releasable only after the genesis time.
func (Initializer) FromGenesis(opts custody.Options, now custody.UnixTime, db custody.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, packageName, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "configuration")
	}

	var vaults []GenesisVault
	if err := opts.ReadOptions(optKey, &vaults); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	bucket := NewBucket()
	for i, gv := range vaults {
		v, err := NewVault(gv.Asset, gv.Beneficiary, gv.ReleaseTime, now)
		if err != nil {
			return errors.Wrapf(err, "vault %d", i)
		}
		v.Depositor = gv.Depositor
		id, err := vaultSeq.NextVal(db)
		if err != nil {
			return errors.Wrap(err, "cannot acquire key")
		}
		v.Address = Condition(id).Address()
		if _, err := bucket.Put(db, id, v); err != nil {
			return errors.Wrapf(err, "vault %d", i)
		}
	}
	return nil
}
