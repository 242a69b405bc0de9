package cash

import (
	"github.com/iov-one/custody/errors"
)

const maxMemoSize = 128

// Validate makes sure that this is sensible.
func (s *SendMsg) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	amount := s.Amount
	if amount == nil || !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive SendMsg: %v", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := s.Destination.Validate(); err != nil {
		return errors.Wrap(err, "dst")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}
