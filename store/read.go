package store

import (
	"github.com/iov-one/custody/errors"
)

// ReadAll consumes given iterator and returns all its entries. The iterator
// is not released.
func ReadAll(it Iterator) ([]Model, error) {
	var res []Model
	for {
		key, value, err := it.Next()
		switch {
		case err == nil:
			res = append(res, Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// PrefixRange turns a prefix into (start, end) to create
// an iterator over all keys starting with that prefix
func PrefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}

	start := append([]byte(nil), prefix...)
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return start, end[:i+1]
		}
	}
	// A prefix made only of 0xFF bytes has no upper bound.
	return start, nil
}
