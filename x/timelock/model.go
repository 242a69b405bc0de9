package timelock

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

var _ orm.Model = (*Vault)(nil)

// Validate ensures the vault is valid
func (v *Vault) Validate() error {
	if err := v.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if !coin.IsCC(v.Asset) {
		return errors.Wrapf(errors.ErrCurrency, "invalid asset %q", v.Asset)
	}
	if err := v.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if err := v.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if v.Depositor != nil {
		if err := v.Depositor.Validate(); err != nil {
			return errors.Wrap(err, "depositor")
		}
	}
	if v.ReleaseTime == 0 {
		// Zero is a valid time, dated 1970-01-01. Most likely the value
		// was not provided.
		return errors.Wrap(errors.ErrInput, "release time is required")
	}
	if err := v.ReleaseTime.Validate(); err != nil {
		return errors.Wrap(err, "release time")
	}
	if err := v.CreatedAt.Validate(); err != nil {
		return errors.Wrap(err, "created at")
	}
	if v.ReleaseTime <= v.CreatedAt {
		return errors.Wrap(ErrInvalidSchedule, "release time is not after creation")
	}
	return nil
}

// Condition calculates the condition of a vault given its key. The address
// of this condition holds the vault funds.
func Condition(key []byte) custody.Condition {
	return custody.NewCondition("timelock", "seq", key)
}

var vaultSeq = orm.NewSequence("vault", "id")

// NewBucket returns a bucket of vaults, indexed by beneficiary.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("vault", &Vault{},
		orm.WithIDSequence(vaultSeq),
		orm.WithIndex("beneficiary", idxBeneficiary, false),
	)
}

func idxBeneficiary(m orm.Model) ([]byte, error) {
	v, ok := m.(*Vault)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "can only index a vault, got %T", m)
	}
	return v.Beneficiary, nil
}
