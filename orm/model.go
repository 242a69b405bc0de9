package orm

import (
	"github.com/iov-one/custody"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	custody.Persistent
}

// Indexer calculates the secondary index value for a given model. Returning
// nil value means that the model is not indexed.
type Indexer func(Model) ([]byte, error)
