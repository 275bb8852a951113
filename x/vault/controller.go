package vault

import (
	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/coin"
	"github.com/iov-one/remittance/errors"
	"github.com/iov-one/remittance/orm"
)

// Controller is the functionality needed by other extensions to move value
// in and out of the vault. This is implemented by CoinVault and should be
// passed into handler constructors.
type Controller interface {
	// Balance returns the amount held for the given identity. A missing
	// balance is not an error, it reports a nil coin.
	Balance(db remittance.ReadOnlyKVStore, owner remittance.Address) (*coin.Coin, error)

	// Credit adds the amount to the owner's balance. It fails only when
	// the addition itself is invalid (overflow, currency mismatch).
	Credit(db remittance.KVStore, owner remittance.Address, amount coin.Coin) error

	// Debit removes the amount from the owner's balance. It fails when
	// the amount is not positive or exceeds the held balance.
	Debit(db remittance.KVStore, owner remittance.Address, amount coin.Coin) error
}

// CoinVault is the permanent storage of balances, implementing Controller
// on top of the balance bucket.
type CoinVault struct {
	bucket orm.ModelBucket
}

var _ Controller = (*CoinVault)(nil)

// NewController returns a controller over the given balance bucket.
func NewController(bucket orm.ModelBucket) *CoinVault {
	return &CoinVault{bucket: bucket}
}

func (v *CoinVault) Balance(db remittance.ReadOnlyKVStore, owner remittance.Address) (*coin.Coin, error) {
	var b Balance
	switch err := v.bucket.One(db, owner, &b); {
	case err == nil:
		return b.Amount, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "cannot load balance")
	}
}

func (v *CoinVault) Credit(db remittance.KVStore, owner remittance.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "credit must be positive")
	}
	held, err := v.Balance(db, owner)
	if err != nil {
		return err
	}
	if held == nil {
		held = coin.NewCoinp(0, 0, amount.Ticker)
	}
	total, err := held.Add(amount)
	if err != nil {
		return errors.Wrap(err, "cannot credit")
	}
	return v.bucket.Put(db, owner, &Balance{Owner: owner, Amount: &total})
}

func (v *CoinVault) Debit(db remittance.KVStore, owner remittance.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "debit must be positive")
	}
	held, err := v.Balance(db, owner)
	if err != nil {
		return err
	}
	if held == nil || !held.IsGTE(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds")
	}
	rest, err := held.Subtract(amount)
	if err != nil {
		return errors.Wrap(err, "cannot debit")
	}
	return v.bucket.Put(db, owner, &Balance{Owner: owner, Amount: &rest})
}
