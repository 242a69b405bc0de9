package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Controller is the functionality needed by other extensions to check and
// move coins.
type Controller interface {
	// Balance returns the coins held by given address. ErrNotFound is
	// returned when the wallet does not exist.
	Balance(custody.ReadOnlyKVStore, custody.Address) (coin.Coins, error)

	// MoveCoins removes funds from the source account and adds them to the
	// destination account. This operation is atomic.
	MoveCoins(custody.KVStore, custody.Address, custody.Address, coin.Coin) error

	// CoinMint adds given amount to the destination account.
	CoinMint(custody.KVStore, custody.Address, coin.Coin) error
}

// BaseController is a simple implementation of the Controller, storing
// wallets in a model bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given wallet bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by given address.
func (c BaseController) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (coin.Coins, error) {
	var wallet Set
	if err := c.bucket.One(db, addr, &wallet); err != nil {
		return nil, err
	}
	return coin.Coins(wallet.Coins), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db custody.KVStore, src, dest custody.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	var sender Set
	switch err := c.bucket.One(db, src, &sender); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	default:
		return err
	}
	if !coin.Coins(sender.Coins).Contains(amount) {
		return errors.Wrap(errors.ErrAmount, "insufficient funds")
	}

	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.getOrCreate(db, dest)
	if err != nil {
		return err
	}

	remaining, err := coin.Coins(sender.Coins).Subtract(amount)
	if err != nil {
		return errors.Wrap(err, "subtract")
	}
	received, err := coin.Coins(recipient.Coins).Add(amount)
	if err != nil {
		return errors.Wrap(err, "add")
	}
	sender.Coins = remaining
	recipient.Coins = received

	// Both wallets are validated before anything is written, so that the
	// second write cannot fail on a validation error.
	if err := sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if _, err := c.bucket.Put(db, src, &sender); err != nil {
		return err
	}
	if _, err := c.bucket.Put(db, dest, recipient); err != nil {
		return err
	}
	return nil
}

// CoinMint attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(db custody.KVStore, dest custody.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	recipient, err := c.getOrCreate(db, dest)
	if err != nil {
		return err
	}
	cs, err := coin.Coins(recipient.Coins).Add(amount)
	if err != nil {
		return err
	}
	recipient.Coins = cs
	_, err = c.bucket.Put(db, dest, recipient)
	return err
}

func (c BaseController) getOrCreate(db custody.ReadOnlyKVStore, addr custody.Address) (*Set, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	var wallet Set
	switch err := c.bucket.One(db, addr, &wallet); {
	case err == nil:
		return &wallet, nil
	case errors.ErrNotFound.Is(err):
		return &Set{Metadata: &custody.Metadata{Schema: 1}}, nil
	default:
		return nil, err
	}
}
