package orm

import (
	"github.com/iov-one/remittance"
)

// Validater is implemented by anything that can sanity-check its own state.
// The name is intentional, as Validator is an overloaded term in this domain.
type Validater interface {
	Validate() error
}

// Object is what is stored in the bucket. Key is joined with the bucket
// prefix to form the full database key.
//
// This is a light wrapper around a serializable value.
type Object interface {
	Keyed
	Cloneable
	// Validate returns error if the object is not in a valid state to
	// save to the db (eg. field missing, out of range, ...).
	Validater
	Value() remittance.Persistent
}

// Reader defines an interface that allows reading objects from the db.
type Reader interface {
	Get(db remittance.ReadOnlyKVStore, key []byte) (Object, error)
}

// Keyed is anything that can identify itself.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is an intelligent value that can be embedded in a simple
// object to handle much of the details.
type CloneableData interface {
	Validater
	remittance.Persistent
	Copy() CloneableData
}

// Model is implemented by any entity that can be stored using ModelBucket.
//
// This is the same interface as CloneableData. Using the right type names
// provides an easier to read API.
type Model interface {
	remittance.Persistent
	Validate() error
	Copy() CloneableData
}
