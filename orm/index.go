package orm

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

// nativeIndex stores every indexed reference under its own key:
//
//   _i.<bucket>_<name>:<value length><value><primary key>
//
// The value length is a 2 byte big endian number, so that values being
// prefixes of other values never collide.
type nativeIndex struct {
	name    string
	prefix  []byte
	indexer Indexer
	unique  bool
}

func newNativeIndex(bucket, name string, indexer Indexer, unique bool) *nativeIndex {
	return &nativeIndex{
		name:    name,
		prefix:  []byte("_i." + bucket + "_" + name + ":"),
		indexer: indexer,
		unique:  unique,
	}
}

func (i *nativeIndex) valuePrefix(value []byte) ([]byte, error) {
	if len(value) > math.MaxUint16 {
		return nil, errors.Wrap(errors.ErrInput, "index value too long")
	}
	out := make([]byte, 0, len(i.prefix)+2+len(value))
	out = append(out, i.prefix...)
	var size [2]byte
	binary.BigEndian.PutUint16(size[:], uint16(len(value)))
	out = append(out, size[:]...)
	return append(out, value...), nil
}

// Keys returns all primary keys that were indexed under given value.
func (i *nativeIndex) Keys(db custody.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	prefix, err := i.valuePrefix(value)
	if err != nil {
		return nil, err
	}
	start, end := store.PrefixRange(prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "index iterator")
	}
	defer it.Release()

	entries, err := store.ReadAll(it)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, append([]byte(nil), e.Key[len(prefix):]...))
	}
	return keys, nil
}

// Update updates the index after the model stored under given key changed.
//
// prev == nil means insert
// next == nil means delete
func (i *nativeIndex) Update(db custody.KVStore, key []byte, prev, next Model) error {
	var prevVal, nextVal []byte
	var err error
	if prev != nil {
		if prevVal, err = i.indexer(prev); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}
	if next != nil {
		if nextVal, err = i.indexer(next); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}

	if prevVal != nil && bytes.Equal(prevVal, nextVal) {
		return nil
	}

	if prevVal != nil {
		p, err := i.valuePrefix(prevVal)
		if err != nil {
			return err
		}
		if err := db.Delete(append(p, key...)); err != nil {
			return errors.Wrap(err, "cannot remove index entry")
		}
	}

	if nextVal != nil {
		if i.unique {
			keys, err := i.Keys(db, nextVal)
			if err != nil {
				return err
			}
			if len(keys) != 0 {
				return errors.Wrapf(errors.ErrDuplicate, "index %s value %X", i.name, nextVal)
			}
		}
		p, err := i.valuePrefix(nextVal)
		if err != nil {
			return err
		}
		if err := db.Set(append(p, key...), []byte{1}); err != nil {
			return errors.Wrap(err, "cannot set index entry")
		}
	}
	return nil
}
