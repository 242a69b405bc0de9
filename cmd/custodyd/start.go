package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/cmd/custodyd/handlers"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/timelock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/libs/log"
)

type configuration struct {
	HTTP         string
	Debug        bool
	MaxExtension time.Duration
}

func startCmd(logger log.Logger, home string, args []string) error {
	var conf configuration
	fl := flag.NewFlagSet("start", flag.ExitOnError)
	fl.StringVar(&conf.HTTP, "http", env("CUSTODY_HTTP", ":8000"), "address the HTTP server listens on")
	fl.BoolVar(&conf.Debug, "debug", false, "return full error information to clients")
	fl.DurationVar(&conf.MaxExtension, "max-extension", 0, "longest single relock step used when no configuration is stored")
	if err := fl.Parse(args); err != nil {
		return err
	}

	gen, err := readGenesis(home)
	if err != nil {
		return err
	}
	cs, err := iavl.NewCommitStore(filepath.Join(home, "data"), "custody")
	if err != nil {
		return err
	}
	defer cs.Close()

	db, err := loadState(cs, gen)
	if err != nil {
		return err
	}
	logger.Info("State loaded", "chain_id", gen.ChainID, "version", cs.LatestVersion().Version)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	app := newApp(gen.ChainID, db, logger, reg, conf)
	app.Commit = func() error {
		return db.Exclusive(func() error {
			_, err := cs.Commit()
			return err
		})
	}
	return run(logger, conf, handlers.NewRouter(app, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
}

// newApp wires the timelock controller to the cash ledger. Both use db for
// all their state.
func newApp(chainID string, db *store.SyncStore, logger log.Logger, reg prometheus.Registerer, conf configuration) *handlers.App {
	wallets := cash.NewController(cash.NewBucket())
	vaults := timelock.NewController(
		cash.NewLedger(wallets, db),
		timelock.WithMetrics(timelock.NewMetrics(reg)),
		timelock.WithMaxExtension(conf.MaxExtension),
	)
	return &handlers.App{
		ChainID: chainID,
		DB:      db,
		Vaults:  vaults,
		Wallets: wallets,
		Logger:  logger,
		Debug:   conf.Debug,
	}
}

func run(logger log.Logger, conf configuration, h http.Handler) error {
	srv := &http.Server{
		Addr:         conf.HTTP,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	done := make(chan error, 1)
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		done <- srv.Shutdown(ctx)
	}()

	logger.Info("Starting HTTP server", "bind", conf.HTTP)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http server: %s", err)
	}
	return <-done
}

const chainIDKey = "_i:chain_id"

// loadState returns the state kept by cs. An empty store is initialized from
// the genesis and committed. A store that was initialized for another chain
// is rejected.
func loadState(cs custody.CommitKVStore, gen *custody.Genesis) (*store.SyncStore, error) {
	db := store.NewSyncStore(cs)

	if cs.LatestVersion().Version > 0 {
		stored, err := db.Get([]byte(chainIDKey))
		if err != nil {
			return nil, errors.Wrap(err, "chain id")
		}
		if string(stored) != gen.ChainID {
			return nil, errors.Wrapf(errors.ErrState, "store belongs to chain %q", stored)
		}
		return db, nil
	}

	cache := db.CacheWrap()
	if err := cache.Set([]byte(chainIDKey), []byte(gen.ChainID)); err != nil {
		cache.Discard()
		return nil, errors.Wrap(err, "chain id")
	}
	inits := custody.ChainInitializers(cash.Initializer{}, timelock.Initializer{})
	if err := inits.FromGenesis(gen.AppState, gen.GenesisTime, cache); err != nil {
		cache.Discard()
		return nil, errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "genesis")
	}
	if _, err := cs.Commit(); err != nil {
		return nil, errors.Wrap(err, "genesis")
	}
	return db, nil
}
