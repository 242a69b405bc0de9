package timelock

import (
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

// Validate makes sure that this is sensible. Whether the release time is in
// the future can only be checked when the message is processed.
func (m *CreateMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if !coin.IsCC(m.Asset) {
		return errors.Wrapf(errors.ErrCurrency, "invalid asset %q", m.Asset)
	}
	if err := m.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if m.ReleaseTime == 0 {
		return errors.Wrap(errors.ErrInput, "release time is required")
	}
	if err := m.ReleaseTime.Validate(); err != nil {
		return errors.Wrap(err, "release time")
	}
	return nil
}

// Validate makes sure that this is sensible.
func (m *RelockMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.VaultID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "vault id")
	}
	if m.ReleaseTime == 0 {
		return errors.Wrap(errors.ErrInput, "release time is required")
	}
	if err := m.ReleaseTime.Validate(); err != nil {
		return errors.Wrap(err, "release time")
	}
	return nil
}

// Validate makes sure that this is sensible.
func (m *UpdateConfigurationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if err := m.Patch.Validate(); err != nil {
		return errors.Wrap(err, "patch")
	}
	return nil
}
