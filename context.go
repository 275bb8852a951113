package remittance

import (
	"context"
	"regexp"
	"time"

	"github.com/iov-one/remittance/errors"
)

// Context is just a standard context, with ledger-specific values stored
// under private keys. For every value XYZ of type T there exist
//
//   WithXYZ(Context, T) Context
//   GetXYZ(Context) (val T, err error)
type Context = context.Context

type contextKey int

const (
	contextKeyChainID contextKey = iota
	contextKeyBlockTime
)

// IsValidChainID is the RegExp to ensure valid chain IDs.
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// WithChainID sets the chain id for the Context. Panics on an invalid chain
// id or when one was already set, as lower level modules must not overwrite
// the instance identity.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic("invalid chain id: " + chainID)
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id from the context. It panics when the chain
// id was not set, as this marks a grave initialization flaw.
func GetChainID(ctx Context) string {
	val := ctx.Value(contextKeyChainID)
	if val == nil {
		panic("chain id is not in context")
	}
	return val.(string)
}

// WithBlockTime sets the execution time for the Context. Every operation of a
// single transaction observes the same "now".
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyBlockTime, t)
}

// BlockTime returns the execution time as declared in the context.
func BlockTime(ctx Context) (time.Time, error) {
	val, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}
	if val.IsZero() {
		return val, errors.Wrap(errors.ErrHuman, "zero block time in the context")
	}
	return val, nil
}

// IsExpired returns true if given time is in the past as compared to the
// "now" as declared for the execution context. Expiration is inclusive,
// meaning that if current time is equal to the expiration time then this
// function returns true.
//
// This function panics when the block time is not present in the context,
// because a missing execution time is a dispatcher bug, not a user error.
func IsExpired(ctx Context, t UnixTime) bool {
	now, err := BlockTime(ctx)
	if err != nil {
		panic(err.Error())
	}
	return t <= AsUnixTime(now)
}
