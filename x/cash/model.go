package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

var _ orm.Model = (*Set)(nil)

// Validate requires that all coins are in alphabetical order and that each
// coin is valid and positive.
func (s *Set) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	cs := coin.Coins(s.Coins)
	if err := cs.Validate(); err != nil {
		return err
	}
	if !cs.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// Copy makes a new set with the same coins
func (s *Set) Copy() *Set {
	return &Set{
		Metadata: s.Metadata.Copy(),
		Coins:    coin.Coins(s.Coins).Clone(),
	}
}

// NewBucket returns a bucket storing wallets keyed by their owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Set{})
}

// WalletWith creates a wallet holding given coins. The coins are combined
// and sorted.
func WalletWith(coins ...*coin.Coin) (*Set, error) {
	var cs coin.Coins
	for _, c := range coins {
		var err error
		if cs, err = cs.Add(*c); err != nil {
			return nil, err
		}
	}
	s := &Set{Metadata: &custody.Metadata{Schema: 1}, Coins: cs}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
