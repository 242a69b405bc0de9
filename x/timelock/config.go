package timelock

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const packageName = "timelock"

var _ gconf.OwnedConfig = (*Configuration)(nil)

// Validate returns an error if the configuration is not valid.
func (c *Configuration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if c.Owner != nil {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if c.MaxExtension < 0 {
		return errors.Wrap(errors.ErrInput, "max extension must not be negative")
	}
	return nil
}

// GetOwner returns the address allowed to update this configuration.
func (c *Configuration) GetOwner() custody.Address {
	return c.Owner
}

// LoadConfiguration returns the current configuration. ErrNotFound is
// returned if the configuration was never initialized.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// UpdateConfiguration replaces the configuration. The signer must be the
// owner declared by the current configuration.
func UpdateConfiguration(db gconf.Store, signer custody.Address, next *Configuration) error {
	if next == nil {
		return errors.Wrap(errors.ErrEmpty, "configuration")
	}
	var current Configuration
	return gconf.Update(db, packageName, signer, &current, next)
}
