package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := map[string]struct {
		bucket     string
		name       string
		init       int64
		increments int64
	}{
		"fresh sequence":     {bucket: "abc", name: "id", increments: 22},
		"other name":         {bucket: "abc", name: "xyz", increments: 11},
		"continued sequence": {bucket: "abc", name: "id", init: 22, increments: 18},
		"other bucket":       {bucket: "def", name: "id", increments: 77},
	}

	for _, testName := range []string{"fresh sequence", "other name", "continued sequence", "other bucket"} {
		tc := cases[testName]
		t.Run(testName, func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			orig, err := s.Latest(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.init, orig)

			var last []byte
			for i := int64(0); i < tc.increments; i++ {
				val, err := s.NextVal(db)
				assert.Nil(t, err)
				if bytes.Compare(val, last) <= 0 {
					t.Fatalf("value %X not greater than %X", val, last)
				}
				last = val
			}

			n, err := s.Latest(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.init+tc.increments, n)
		})
	}
}

func TestDecodeSequence(t *testing.T) {
	n, err := DecodeSequence(nil)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), n)

	n, err = DecodeSequence(EncodeSequence(1234))
	assert.Nil(t, err)
	assert.Equal(t, int64(1234), n)

	_, err = DecodeSequence([]byte{1, 2})
	assert.IsErr(t, errors.ErrInput, err)
}
