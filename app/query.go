package app

import (
	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/errors"
)

// QueryRouter allows us to register many query handlers to different paths
// and then direct each query to the proper handler.
//
// Minimal interface, only supports read-only queries of the state.
type QueryRouter struct {
	routes map[string]remittance.QueryHandler
}

var _ remittance.QueryRouter = (*QueryRouter)(nil)

func NewQueryRouter() *QueryRouter {
	return &QueryRouter{
		routes: make(map[string]remittance.QueryHandler),
	}
}

// RegisterQuery adds a query handler at the given path. Duplicate paths are
// wiring bugs and panic at setup time.
func (r *QueryRouter) RegisterQuery(path string, h remittance.QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic("re-registering query path: " + path)
	}
	r.routes[path] = h
}

// Query executes the handler registered under the path.
func (r *QueryRouter) Query(db remittance.ReadOnlyKVStore, path, mod string, data []byte) ([]remittance.Model, error) {
	h, ok := r.routes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for %q", path)
	}
	return h.Query(db, mod, data)
}
