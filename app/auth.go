package app

import (
	"context"

	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/x"
)

type authKey int

const conditionsKey authKey = iota

// ctxAuth reads the caller conditions the dispatcher placed in the context.
// The ledger runs in-process, so callers are declared rather than proven by
// signature checks; a transport carrying real signatures would verify them
// before handing the conditions to the dispatcher.
type ctxAuth struct{}

var _ x.Authenticator = ctxAuth{}

func withConditions(ctx remittance.Context, conds []remittance.Condition) remittance.Context {
	return context.WithValue(ctx, conditionsKey, conds)
}

func (ctxAuth) GetConditions(ctx remittance.Context) []remittance.Condition {
	val, _ := ctx.Value(conditionsKey).([]remittance.Condition)
	return val
}

func (a ctxAuth) HasAddress(ctx remittance.Context, addr remittance.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
