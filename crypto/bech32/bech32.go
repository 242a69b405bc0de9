// Package bech32 converts binary payloads to and from the bech32 text
// format, as used by the address text representation.
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/custody/errors"
)

// Encode returns the bech32 text of payload prefixed with the human
// readable part.
func Encode(hrp string, payload []byte) (string, error) {
	words, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "cannot convert payload: %s", err)
	}
	s, err := bech32.Encode(hrp, words)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "cannot encode: %s", err)
	}
	return s, nil
}

// Decode returns the human readable part and the payload of a bech32 text.
// A malformed text or a broken checksum results in ErrInput.
func Decode(s string) (hrp string, payload []byte, err error) {
	hrp, words, err := bech32.Decode(s)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "cannot decode: %s", err)
	}
	if payload, err = bech32.ConvertBits(words, 5, 8, false); err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "cannot convert payload: %s", err)
	}
	return hrp, payload, nil
}
