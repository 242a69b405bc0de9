package timelock

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

// State describes what can be done with a vault at a given time.
type State int

const (
	// Locked vault cannot be released yet.
	Locked State = iota
	// Releasable vault is past its release time and holds funds.
	Releasable
	// Drained vault is past its release time and holds nothing.
	Drained
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Releasable:
		return "releasable"
	case Drained:
		return "drained"
	default:
		return "unknown"
	}
}

// MarshalText is used by the JSON encoding.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// NewVault returns a vault holding given asset for the beneficiary until the
// release time. The release time must be strictly later than now. The
// holding address is not set, because it depends on the ID the vault is
// stored under.
func NewVault(asset string, beneficiary custody.Address, releaseTime, now custody.UnixTime) (*Vault, error) {
	if !coin.IsCC(asset) {
		return nil, errors.Wrapf(errors.ErrCurrency, "invalid asset %q", asset)
	}
	if err := beneficiary.Validate(); err != nil {
		return nil, errors.Wrap(err, "beneficiary")
	}
	if releaseTime <= now {
		return nil, errors.Wrapf(ErrInvalidSchedule, "release time %d is not after %d", releaseTime, now)
	}
	return &Vault{
		Metadata:    &custody.Metadata{Schema: 1},
		Asset:       asset,
		Beneficiary: beneficiary.Clone(),
		ReleaseTime: releaseTime,
		CreatedAt:   now,
	}, nil
}

// Relock postpones the release time to newTime. Only the beneficiary can
// relock and the new time must be later than both the current release time
// and now. On failure the vault is not modified.
func (v *Vault) Relock(caller custody.Address, newTime, now custody.UnixTime) error {
	if !v.Beneficiary.Equals(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "only the beneficiary can relock")
	}
	if newTime <= v.ReleaseTime {
		return errors.Wrapf(ErrScheduleRegression, "release time %d is not after %d", newTime, v.ReleaseTime)
	}
	if newTime <= now {
		return errors.Wrapf(ErrScheduleRegression, "release time %d is in the past", newTime)
	}
	v.ReleaseTime = newTime
	return nil
}

// CheckReleasable returns an error if the release time was not reached.
// Release time is inclusive.
func (v *Vault) CheckReleasable(now custody.UnixTime) error {
	if now < v.ReleaseTime {
		return errors.Wrapf(ErrNotYetReleasable, "%s left", v.ReleaseTime.Sub(now))
	}
	return nil
}

// State returns the state of the vault at given time, holding given
// balance. A vault is Locked until its release time, no matter what it
// holds.
func (v *Vault) State(now custody.UnixTime, balance coin.Coin) State {
	if v.CheckReleasable(now) != nil {
		return Locked
	}
	if balance.IsPositive() {
		return Releasable
	}
	return Drained
}
