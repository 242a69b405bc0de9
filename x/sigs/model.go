package sigs

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is limited by the client. The greatest supported nonce
// value at client side is
//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
const maxSequenceValue = (1 << 53) - 1

var _ orm.Model = (*UserData)(nil)

// Validate requires a sequence within the supported range and a public key
// once anything was signed.
func (u *UserData) Validate() error {
	var errs error
	if err := u.Metadata.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrap(err, "metadata"))
	}
	if seq := u.Sequence; seq < 0 || seq > maxSequenceValue {
		errs = errors.Append(errs, errors.Wrapf(ErrInvalidSequence, "sequence %d", seq))
	} else if seq > 0 && u.Pubkey == nil {
		errs = errors.Append(errs, errors.Wrap(ErrInvalidSequence, "needs pubkey"))
	}
	if u.Pubkey != nil {
		if err := u.Pubkey.Validate(); err != nil {
			errs = errors.Append(errs, errors.Wrap(err, "pubkey"))
		}
	}
	return errs
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// NewBucket returns a bucket of users, keyed by the address of their public
// key.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// User returns the data stored for given public key. A user that has never
// signed anything is returned with a zero sequence.
func User(db custody.ReadOnlyKVStore, pubkey crypto.PublicKey) (*UserData, error) {
	var u UserData
	switch err := NewBucket().One(db, pubkey.Address(), &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{
			Metadata: &custody.Metadata{Schema: 1},
			Pubkey:   pubkey,
		}, nil
	default:
		return nil, err
	}
}
