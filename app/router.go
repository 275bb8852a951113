package app

import (
	"fmt"
	"regexp"

	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/errors"
)

// isPath ensures routes are in the "module/action" format.
var isPath = regexp.MustCompile(`^[a-z]+/[a-z_]+$`).MatchString

// Router maps message paths to handlers.
type Router struct {
	routes map[string]remittance.Handler
}

var _ remittance.Registry = (*Router)(nil)
var _ remittance.Handler = (*Router)(nil)

func NewRouter() *Router {
	return &Router{
		routes: make(map[string]remittance.Handler),
	}
}

// Handle implements Registry. Paths must be unique and well formed; both
// violations are wiring bugs so they panic at setup time.
func (r *Router) Handle(path string, h remittance.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// handler returns the registered handler or the notFoundHandler.
func (r *Router) handler(path string) remittance.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg.Path()).Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg.Path()).Deliver(ctx, db, tx)
}

// notFoundHandler always returns ErrNotFound for the given path.
type notFoundHandler string

var _ remittance.Handler = notFoundHandler("")

func (p notFoundHandler) Check(remittance.Context, remittance.KVStore, remittance.Tx) (*remittance.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(p))
}

func (p notFoundHandler) Deliver(remittance.Context, remittance.KVStore, remittance.Tx) (*remittance.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(p))
}
