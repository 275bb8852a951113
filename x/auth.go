package x

import (
	remittance "github.com/iov-one/remittance"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can have multiple ways of authenticating transactions.
type Authenticator interface {
	// GetConditions reveals all conditions fulfilled, such as
	// logged in users, or hash preimages.
	GetConditions(remittance.Context) []remittance.Condition

	// HasAddress checks if any condition matches this address.
	HasAddress(remittance.Context, remittance.Address) bool
}

// MultiAuth chains together many authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all conditions of all authenticators.
func (m MultiAuth) GetConditions(ctx remittance.Context) []remittance.Condition {
	var res []remittance.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	// TODO: remove duplicates?
	return res
}

// HasAddress returns true if any Authenticator vouches for this address.
func (m MultiAuth) HasAddress(ctx remittance.Context, addr remittance.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signed condition or nil if none.
func MainSigner(ctx remittance.Context, auth Authenticator) remittance.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllConditions returns true if all elements in required are
// also in context.
func HasAllConditions(ctx remittance.Context, auth Authenticator, required []remittance.Condition) bool {
	return HasNConditions(ctx, auth, required, len(required))
}

// HasNConditions returns true if at least n elements in requested are
// also in context. Useful for threshold conditions (1 of 3, 4 of 7, etc.)
func HasNConditions(ctx remittance.Context, auth Authenticator, requested []remittance.Condition, n int) bool {
	// Special case: is this an error???
	if n <= 0 {
		return true
	}

	perms := auth.GetConditions(ctx)
	for _, req := range requested {
		for _, perm := range perms {
			if perm.Equals(req) {
				n--
				if n == 0 {
					return true
				}
				break
			}
		}
	}
	return false
}
