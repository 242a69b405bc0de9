package custody

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextBlockTime(t *testing.T) {
	ctx := context.Background()
	if _, ok := BlockTime(ctx); ok {
		t.Fatal("block time must not be present")
	}
	assert.Panics(t, func() { UnixNow(ctx) })

	now := time.Unix(2000, 0)
	ctx = WithBlockTime(ctx, now)
	assert.Equal(t, UnixTime(2000), UnixNow(ctx))

	cases := map[string]struct {
		t    UnixTime
		want bool
	}{
		"past":    {t: 1999, want: true},
		"present": {t: 2000, want: true},
		"future":  {t: 2001, want: false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, IsExpired(ctx, tc.t))
		})
	}
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetChainID(ctx))

	ctx = WithChainID(ctx, "test-chain")
	assert.Equal(t, "test-chain", GetChainID(ctx))

	assert.Panics(t, func() { WithChainID(ctx, "x") })
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	if GetLogger(ctx) != DefaultLogger {
		t.Fatal("default logger expected")
	}

	logger := log.TestingLogger()
	ctx = WithLogger(ctx, logger)
	if GetLogger(ctx) != logger {
		t.Fatal("logger not set")
	}

	ctx = WithLogInfo(ctx, "vault", "1")
	if GetLogger(ctx) == logger {
		t.Fatal("logger must be extended")
	}
}
