package timelock

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
)

// Ledger is the asset transfer capability a vault delegates to. The ledger is
// the single source of truth for the funds a vault holds.
type Ledger interface {
	// Balance returns the amount of given currency held by the address.
	Balance(ctx context.Context, holder custody.Address, ticker string) (coin.Coin, error)

	// Transfer moves the amount from src to dst. It must be all-or-nothing:
	// when an error is returned, no funds were moved.
	Transfer(ctx context.Context, ticker string, src, dst custody.Address, amount coin.Coin) error
}
