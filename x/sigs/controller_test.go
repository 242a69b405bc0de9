package sigs

import (
	"testing"

	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignBytes(t *testing.T) {
	bz := []byte("foobar")
	bz2 := []byte("blast")
	chainID := "test-sign-bytes"

	c1, err := BuildSignBytes(bz, chainID, 17)
	require.NoError(t, err)
	assert.NotEqual(t, bz, c1)
	assert.Len(t, c1, 64)

	// make sure sign bytes change on payload, chain_id and seq
	ct, err := BuildSignBytes(bz2, chainID, 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, ct)
	c2, err := BuildSignBytes(bz, chainID+"2", 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c2)
	c3, err := BuildSignBytes(bz, chainID, 18)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c3)

	_, err = BuildSignBytes(bz, chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes(bz, "bad", 1)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifySignature(t *testing.T) {
	db := store.MemStore()
	priv := custodytest.NewKey()
	perm := priv.PublicKey().Condition()

	chainID := "emo-music-2345"
	bz := []byte("my special valentine")

	sign := func(seq int64) *StdSignature {
		sig, err := Sign(priv, bz, chainID, seq)
		require.NoError(t, err)
		return sig
	}
	sig0, sig1, sig2, sig13 := sign(0), sign(1), sign(2), sign(13)

	// signing should be deterministic
	assert.Equal(t, sig2, sign(2))

	// the first one must start with a zero sequence
	_, err := VerifySignature(db, sig1, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "%+v", err)

	_, err = VerifySignature(db, new(StdSignature), bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	_, err = VerifySignature(db, nil, bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	// must match the chain id
	_, err = VerifySignature(db, sig0, bz, "emo-music-2346")
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	// must match the payload
	_, err = VerifySignature(db, sig0, []byte("other payload"), chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	got, err := VerifySignature(db, sig0, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, perm, got)

	// cannot replay the signature
	_, err = VerifySignature(db, sig0, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "%+v", err)
	_, err = VerifySignature(db, sig13, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "%+v", err)

	got, err = VerifySignature(db, sig1, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, perm, got)

	user, err := User(db, priv.PublicKey())
	require.NoError(t, err)
	assert.EqualValues(t, 2, user.Sequence)
}

func TestVerifySignatureOfAnotherKey(t *testing.T) {
	db := store.MemStore()
	priv := custodytest.NewKey()
	other := crypto.PrivKeyEd25519FromSeed(make([]byte, 32))

	sig, err := Sign(priv, []byte("payload"), "test-chain", 0)
	require.NoError(t, err)
	sig.Pubkey = other.PublicKey()

	_, err = VerifySignature(db, sig, []byte("payload"), "test-chain")
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
}
