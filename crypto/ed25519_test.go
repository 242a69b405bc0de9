package crypto

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	msg := []byte("relock vault 1")

	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()
	require.NoError(t, pub.Validate())

	sig, err := priv.Sign(msg)
	require.NoError(t, err)

	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("release vault 1"), sig))

	other := GenPrivKeyEd25519().PublicKey()
	assert.False(t, other.Verify(msg, sig))

	// Malformed keys never verify.
	assert.False(t, PublicKey([]byte("short")).Verify(msg, sig))
	assert.Error(t, PublicKey([]byte("short")).Validate())
}

func TestDeterministicKeys(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a, b)
	assert.True(t, a.PublicKey().Address().Equals(b.PublicKey().Address()))
	assert.NoError(t, a.PublicKey().Address().Validate())

	ext, typ, data, err := a.PublicKey().Condition().Parse()
	require.NoError(t, err)
	assert.Equal(t, ExtensionName, ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte(a.PublicKey()), data)
}

func TestPublicKeyJSON(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	raw, err := json.Marshal(pub)
	require.NoError(t, err)

	var got PublicKey
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, pub, got)
}
