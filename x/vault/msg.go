package vault

import (
	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/coin"
	"github.com/iov-one/remittance/errors"
)

const (
	pathWithdraw   = "vault/withdraw"
	pathCollectFee = "vault/collect_fee"
)

var _ remittance.Msg = (*WithdrawMsg)(nil)

// WithdrawMsg pays out part of the caller's vault balance through the
// configured paymaster.
type WithdrawMsg struct {
	// Source is the caller. It must be authenticated and own the balance.
	Source remittance.Address `json:"source"`
	Amount *coin.Coin         `json:"amount"`
}

func (WithdrawMsg) Path() string {
	return pathWithdraw
}

func (m WithdrawMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if m.Amount == nil {
		return errors.Wrap(errors.ErrEmpty, "amount")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "must withdraw a positive amount")
	}
	return nil
}

var _ remittance.Msg = (*CollectFeeMsg)(nil)

// CollectFeeMsg moves accrued fees out of the ledger owner's balance. Only
// the configured owner may issue it.
type CollectFeeMsg struct {
	// Owner is the caller, checked against the ledger configuration.
	Owner  remittance.Address `json:"owner"`
	Amount *coin.Coin         `json:"amount"`
}

func (CollectFeeMsg) Path() string {
	return pathCollectFee
}

func (m CollectFeeMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if m.Amount == nil {
		return errors.Wrap(errors.ErrEmpty, "amount")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "must collect a positive amount")
	}
	return nil
}
