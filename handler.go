package remittance

import (
	"encoding/json"
)

// Handler is a core engine that can process a few specific messages.
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in decorators.
type Checker interface {
	Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
type Deliverer interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of a
// router.
type Registry interface {
	Handle(path string, h Handler)
}

// QueryHandler can answer read-only requests against the state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRouter is the setup side for QueryHandler registration.
type QueryRouter interface {
	RegisterQuery(path string, h QueryHandler)
}

// Options are the application genesis options. Each extension can look up
// its key and parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the json
// into the given obj. Returns an error if it cannot parse. Noop and no error
// if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize extensions from genesis
// file contents.
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}
