package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func TestEncodeDecode(t *testing.T) {
	// bech32 -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`

	want, err := hex.DecodeString("746573742d7061796c6f6164")
	assert.Nil(t, err)

	hrp, payload, err := Decode(enc)
	assert.Nil(t, err)
	assert.Equal(t, "tiov", hrp)
	if !bytes.Equal(want, payload) {
		t.Fatalf("want %x payload, got %x", want, payload)
	}

	got, err := Encode(hrp, payload)
	assert.Nil(t, err)
	assert.Equal(t, enc, got)
}

func TestDecodeInvalid(t *testing.T) {
	cases := map[string]string{
		"broken checksum":   "tiov1w3jhxapdwpshjmr0v9jqymqq4z",
		"missing separator": "tiovw3jhxapdwpshjmr0v9jqymqq4y",
		"empty":             "",
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			_, _, err := Decode(raw)
			assert.IsErr(t, errors.ErrInput, err)
		})
	}
}
