package remittest

import (
	"context"
	"fmt"

	remittance "github.com/iov-one/remittance"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions. You can use
// either Signer or Signers (or both) attributes to reference conditions.
// Each time all signers (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convenience attribute when creating an authentication method for a
	// single signer.
	Signer remittance.Condition

	// Signers represents an authentication of multiple signers.
	Signers []remittance.Condition
}

func (a *Auth) GetConditions(remittance.Context) []remittance.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx remittance.Context, addr remittance.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx remittance.Context, permissions ...remittance.Condition) remittance.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), permissions)
}

func (a *CtxAuth) GetConditions(ctx remittance.Context) []remittance.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]remittance.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []remittance.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx remittance.Context, addr remittance.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
