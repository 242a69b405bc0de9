package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/timelock"
	"github.com/tendermint/tendermint/libs/log"
)

// App holds the state shared by all handlers.
//
// Mutating requests are executed one at a time. Each of them runs in a cache
// wrap of DB that is written and committed only if the request succeeded.
// Funds moved by a release go through the same cache wrap. When Commit
// fails, the written changes stay in DB and are persisted by the next
// successful commit.
type App struct {
	ChainID string
	DB      custody.CacheableKVStore
	Vaults  *timelock.Controller
	Wallets cash.Controller
	Logger  log.Logger

	// Commit persists the state after every successful mutation. Nothing
	// is committed if nil.
	Commit func() error

	// Now returns the time a request is processed at. When nil the wall
	// clock is used.
	Now func() time.Time

	// Debug exposes internal error messages to clients.
	Debug bool

	mu sync.Mutex
}

// context returns the request context extended with the request time, the
// chain ID and the logger.
func (a *App) context(r *http.Request) context.Context {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	ctx := custody.WithBlockTime(r.Context(), now())
	ctx = custody.WithChainID(ctx, a.ChainID)
	logger := a.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return custody.WithLogger(ctx, logger.With("method", r.Method, "path", r.URL.Path))
}

// update executes fn in isolation. All changes made by fn are discarded if
// it returns an error.
func (a *App) update(fn func(db custody.KVStore) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cache := a.DB.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if a.Commit == nil {
		return nil
	}
	if err := a.Commit(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
