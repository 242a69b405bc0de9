package timelock

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/stretchr/testify/mock"
)

type ledgerMock struct {
	mock.Mock
}

var _ Ledger = (*ledgerMock)(nil)

func (m *ledgerMock) Balance(ctx context.Context, holder custody.Address, ticker string) (coin.Coin, error) {
	args := m.Called(holder, ticker)
	return args.Get(0).(coin.Coin), args.Error(1)
}

func (m *ledgerMock) Transfer(ctx context.Context, ticker string, src, dst custody.Address, amount coin.Coin) error {
	args := m.Called(ticker, src, dst, amount)
	return args.Error(0)
}
