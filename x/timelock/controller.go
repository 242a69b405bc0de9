package timelock

import (
	"context"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/tendermint/tendermint/libs/log"
)

// Controller implements all vault operations. Vault records are kept in the
// store passed to every call, while funds are always read from and moved by
// the Ledger.
//
// Relock and Release of the same vault are serialized. Queries do not take
// any lock.
type Controller struct {
	ledger       Ledger
	bucket       orm.ModelBucket
	locks        *vaultLocks
	metrics      *Metrics
	logger       log.Logger
	maxExtension time.Duration
}

// Option configures the Controller.
type Option func(*Controller)

// WithLogger sets the logger used instead of the one carried by the request
// context.
func WithLogger(l log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithMetrics enables collecting operation statistics.
func WithMetrics(m *Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithMaxExtension limits how far a single relock can postpone the release
// time. It is used only when no configuration is stored. Zero means no
// limit.
func WithMaxExtension(d time.Duration) Option {
	return func(c *Controller) {
		c.maxExtension = d
	}
}

// NewController returns a controller delegating all fund movements to given
// ledger.
func NewController(ledger Ledger, opts ...Option) *Controller {
	c := &Controller{
		ledger: ledger,
		bucket: NewBucket(),
		locks:  newVaultLocks(),
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

// UsingLedger returns a controller that moves funds with given ledger. It
// shares vault locks, metrics and limits with c.
func (c *Controller) UsingLedger(l Ledger) *Controller {
	bound := *c
	bound.ledger = l
	return &bound
}

func (c *Controller) log(ctx context.Context) log.Logger {
	if c.logger != nil {
		return c.logger
	}
	return custody.GetLogger(ctx).With("module", packageName)
}

// Create stores a new vault and returns its ID. The release time must be
// later than the request time. Depositor is informative and can be nil.
func (c *Controller) Create(
	ctx context.Context,
	db custody.KVStore,
	depositor custody.Address,
	asset string,
	beneficiary custody.Address,
	releaseTime custody.UnixTime,
) (id []byte, vault *Vault, err error) {
	defer func() { c.metrics.observe("create", err) }()

	vault, err = NewVault(asset, beneficiary, releaseTime, custody.UnixNow(ctx))
	if err != nil {
		return nil, nil, err
	}
	vault.Depositor = depositor.Clone()

	id, err = vaultSeq.NextVal(db)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot acquire key")
	}
	vault.Address = Condition(id).Address()
	if _, err := c.bucket.Put(db, id, vault); err != nil {
		return nil, nil, errors.Wrap(err, "cannot store vault")
	}

	c.log(ctx).Info("vault created",
		"vault", custody.Address(id),
		"asset", asset,
		"beneficiary", beneficiary,
		"release_time", releaseTime)
	return id, vault, nil
}

// Vault returns the vault stored under given ID.
func (c *Controller) Vault(db custody.ReadOnlyKVStore, id []byte) (*Vault, error) {
	var v Vault
	if err := c.bucket.One(db, id, &v); err != nil {
		return nil, errors.Wrapf(err, "vault %X", id)
	}
	return &v, nil
}

// ByBeneficiary returns all vaults of given beneficiary together with their
// IDs.
func (c *Controller) ByBeneficiary(db custody.ReadOnlyKVStore, beneficiary custody.Address) ([][]byte, []*Vault, error) {
	var vaults []*Vault
	ids, err := c.bucket.ByIndex(db, "beneficiary", beneficiary, &vaults)
	if err != nil {
		return nil, nil, err
	}
	return ids, vaults, nil
}

// AmountPending returns the funds currently held by the vault. It can be
// called at any time.
func (c *Controller) AmountPending(ctx context.Context, db custody.ReadOnlyKVStore, id []byte) (coin.Coin, error) {
	v, err := c.Vault(db, id)
	if err != nil {
		return coin.Coin{}, err
	}
	return c.balance(ctx, v)
}

func (c *Controller) balance(ctx context.Context, v *Vault) (coin.Coin, error) {
	b, err := c.ledger.Balance(ctx, v.Address, v.Asset)
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "ledger balance")
	}
	if b.Ticker != v.Asset && !b.IsZero() {
		return coin.Coin{}, errors.Wrapf(errors.ErrCurrency, "ledger returned %s balance for %s vault", b.Ticker, v.Asset)
	}
	return b, nil
}

// Status is a snapshot of a vault as observed at CurrentTime.
type Status struct {
	ID          []byte
	Vault       *Vault
	CurrentTime custody.UnixTime
	Pending     coin.Coin
	State       State
}

// Status returns the vault together with its pending amount and state at the
// request time.
func (c *Controller) Status(ctx context.Context, db custody.ReadOnlyKVStore, id []byte) (*Status, error) {
	v, err := c.Vault(db, id)
	if err != nil {
		return nil, err
	}
	pending, err := c.balance(ctx, v)
	if err != nil {
		return nil, err
	}
	now := custody.UnixNow(ctx)
	return &Status{
		ID:          id,
		Vault:       v,
		CurrentTime: now,
		Pending:     pending,
		State:       v.State(now, pending),
	}, nil
}

// Relock postpones the release time of the vault. Only the beneficiary can
// relock and the new release time must be later than both the current one
// and the request time.
func (c *Controller) Relock(
	ctx context.Context,
	db custody.KVStore,
	id []byte,
	caller custody.Address,
	releaseTime custody.UnixTime,
) (err error) {
	defer func() { c.metrics.observe("relock", err) }()

	unlock := c.locks.Lock(id)
	defer unlock()

	v, err := c.Vault(db, id)
	if err != nil {
		return err
	}
	limit, err := c.maxExtensionFor(db)
	if err != nil {
		return err
	}

	prev := v.ReleaseTime
	if err := v.Relock(caller, releaseTime, custody.UnixNow(ctx)); err != nil {
		return err
	}
	if step := int64(v.ReleaseTime - prev); limit > 0 && step > limit {
		return errors.Wrapf(ErrInvalidSchedule, "extension by %ds exceeds %ds limit", step, limit)
	}
	if _, err := c.bucket.Put(db, id, v); err != nil {
		return errors.Wrap(err, "cannot store vault")
	}

	c.log(ctx).Info("vault relocked",
		"vault", custody.Address(id),
		"beneficiary", v.Beneficiary,
		"previous", prev,
		"release_time", v.ReleaseTime)
	return nil
}

// maxExtensionFor returns the longest single relock step in seconds. Zero
// means there is no limit.
func (c *Controller) maxExtensionFor(db custody.ReadOnlyKVStore) (int64, error) {
	switch conf, err := LoadConfiguration(db); {
	case err == nil:
		return conf.MaxExtension, nil
	case errors.ErrNotFound.Is(err):
		return int64(c.maxExtension / time.Second), nil
	default:
		return 0, errors.Wrap(err, "configuration")
	}
}

// Release transfers the whole balance of the vault to the beneficiary. The
// amount observed is the amount transferred, as no other Release or Relock
// of this vault can run in between. The transferred amount is returned.
func (c *Controller) Release(ctx context.Context, db custody.ReadOnlyKVStore, id []byte) (amount coin.Coin, err error) {
	defer func() { c.metrics.observe("release", err) }()

	unlock := c.locks.Lock(id)
	defer unlock()

	v, err := c.Vault(db, id)
	if err != nil {
		return coin.Coin{}, err
	}
	if err := v.CheckReleasable(custody.UnixNow(ctx)); err != nil {
		return coin.Coin{}, err
	}
	balance, err := c.balance(ctx, v)
	if err != nil {
		return coin.Coin{}, err
	}
	if !balance.IsPositive() {
		return coin.Coin{}, errors.Wrapf(ErrNothingToRelease, "vault %X", id)
	}

	if err := c.ledger.Transfer(ctx, v.Asset, v.Address, v.Beneficiary, balance); err != nil {
		c.log(ctx).Error("vault release failed",
			"vault", custody.Address(id),
			"beneficiary", v.Beneficiary,
			"amount", balance,
			"err", err)
		if errors.ErrUnavailable.Is(err) {
			return coin.Coin{}, errors.Wrap(err, "ledger transfer")
		}
		return coin.Coin{}, errors.Append(errors.Wrap(ErrTransferFailed, "ledger transfer"), err)
	}

	c.metrics.observeRelease(balance)
	c.log(ctx).Info("vault released",
		"vault", custody.Address(id),
		"beneficiary", v.Beneficiary,
		"amount", balance)
	return balance, nil
}
