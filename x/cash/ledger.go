package cash

import (
	"context"
	"sync"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

// Ledger exposes wallets kept in a single store to extensions that only need
// to read a balance and move funds. All calls are serialized, so a balance
// observed by one call cannot change halfway through another.
type Ledger struct {
	mu   sync.Mutex
	ctrl Controller
	db   custody.KVStore
}

// NewLedger returns a ledger operating on wallets stored in given database.
// If the database can be cache wrapped, every transfer is applied through a
// cache wrap and written only on success.
func NewLedger(ctrl Controller, db custody.KVStore) *Ledger {
	return &Ledger{ctrl: ctrl, db: db}
}

// Balance returns the amount of given currency held by the address. A wallet
// that does not exist holds nothing.
func (l *Ledger) Balance(ctx context.Context, holder custody.Address, ticker string) (coin.Coin, error) {
	if err := ctx.Err(); err != nil {
		return coin.Coin{}, errors.Wrap(errors.ErrUnavailable, err.Error())
	}
	if !coin.IsCC(ticker) {
		return coin.Coin{}, errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", ticker)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	switch coins, err := l.ctrl.Balance(l.db, holder); {
	case err == nil:
		return coins.Get(ticker), nil
	case errors.ErrNotFound.Is(err):
		return coin.NewCoin(0, 0, ticker), nil
	default:
		return coin.Coin{}, err
	}
}

// Transfer moves given amount from src to dst. Either the whole amount is
// moved or nothing is.
func (l *Ledger) Transfer(ctx context.Context, ticker string, src, dst custody.Address, amount coin.Coin) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrUnavailable, err.Error())
	}
	if amount.Ticker != ticker {
		return errors.Wrapf(errors.ErrCurrency, "amount is %q, not %q", amount.Ticker, ticker)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cacheable, ok := l.db.(custody.CacheableKVStore)
	if !ok {
		return l.ctrl.MoveCoins(l.db, src, dst, amount)
	}
	cache := cacheable.CacheWrap()
	if err := l.ctrl.MoveCoins(cache, src, dst, amount); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
