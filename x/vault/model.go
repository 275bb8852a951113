package vault

import (
	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/coin"
	"github.com/iov-one/remittance/errors"
	"github.com/iov-one/remittance/orm"
)

var _ orm.Model = (*Balance)(nil)

// Validate ensures the balance is meaningful.
func (b *Balance) Validate() error {
	if err := b.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if b.Amount == nil {
		return errors.Wrap(errors.ErrEmpty, "amount")
	}
	if err := b.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !b.Amount.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// Copy produces an independent copy of the balance.
func (b *Balance) Copy() orm.CloneableData {
	return &Balance{
		Owner:  b.Owner.Clone(),
		Amount: b.Amount.Clone(),
	}
}

// NewBalance returns a zero balance of the given currency for the owner.
func NewBalance(owner remittance.Address, ticker string) *Balance {
	return &Balance{
		Owner:  owner,
		Amount: coin.NewCoinp(0, 0, ticker),
	}
}

// NewBucket creates the bucket holding all balances, keyed by owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("vault", &Balance{})
}
