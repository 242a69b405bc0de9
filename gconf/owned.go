package gconf

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// OwnedConfig must have an Owner field. A configuration update must be
// authorized by the current owner in order to be applied.
type OwnedConfig interface {
	Configuration
	GetOwner() custody.Address
}

// Update replaces the stored configuration of given package with next. The
// signer must be the owner declared by the currently stored configuration,
// which is loaded into current. A configuration that was never initialized
// cannot be updated.
func Update(db Store, pkg string, signer custody.Address, current, next OwnedConfig) error {
	switch err := Load(db, pkg, current); {
	case err == nil:
		owner := current.GetOwner()
		if owner == nil {
			return errors.Wrap(errors.ErrUnauthorized, "configuration has no owner")
		}
		if !owner.Equals(signer) {
			return errors.Wrap(errors.ErrUnauthorized, "signer is not the configuration owner")
		}
	case errors.ErrNotFound.Is(err):
		return errors.Wrap(errors.ErrUnauthorized, "configuration does not exist and cannot be initialized")
	default:
		return errors.Wrap(err, "load current configuration")
	}

	if err := Save(db, pkg, next); err != nil {
		return errors.Wrap(err, "save")
	}
	return nil
}
