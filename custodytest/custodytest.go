// Package custodytest provides helpers for writing tests of custody
// extensions.
package custodytest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a unique signature condition. Its address can be used
// wherever a random but valid address is required.
func NewCondition() custody.Condition {
	return NewKey().PublicKey().Condition()
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation. It fails the test if the address is not valid.
func ParseAddress(t testing.TB, encodedAddress string) custody.Address {
	t.Helper()

	addr, err := custody.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// SequenceID returns an ID encoded the same way the orm sequence encodes
// allocated values.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

var lastSeq uint64

// NextSequenceID returns a process wide unique sequence ID.
func NextSequenceID() []byte {
	return SequenceID(atomic.AddUint64(&lastSeq, 1))
}
