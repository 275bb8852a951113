package vault

import (
	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/errors"
	"github.com/iov-one/remittance/x"
)

const (
	withdrawCost   int64 = 100
	collectFeeCost int64 = 100
)

// OwnerLookup resolves the configured ledger owner. It is injected by the
// application so this package does not depend on where the configuration
// lives.
type OwnerLookup func(db remittance.ReadOnlyKVStore) (remittance.Address, error)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r remittance.Registry, auth x.Authenticator, ctrl Controller, pay Paymaster, owner OwnerLookup) {
	r.Handle(pathWithdraw, &withdrawHandler{
		auth: auth,
		ctrl: ctrl,
		pay:  pay,
	})
	r.Handle(pathCollectFee, &collectFeeHandler{
		auth:  auth,
		ctrl:  ctrl,
		pay:   pay,
		owner: owner,
	})
}

// RegisterQuery will register this bucket as "/balances".
func RegisterQuery(qr remittance.QueryRouter) {
	NewBucket().Register("balances", qr)
}

type withdrawHandler struct {
	auth x.Authenticator
	ctrl Controller
	pay  Paymaster
}

var _ remittance.Handler = (*withdrawHandler)(nil)

func (h *withdrawHandler) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &remittance.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h *withdrawHandler) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.ctrl.Debit(db, msg.Source, *msg.Amount); err != nil {
		return nil, err
	}
	// The paymaster runs after the debit on purpose. If the transfer
	// fails the transaction is discarded and the balance stays untouched.
	if err := h.pay.Pay(ctx, msg.Source, *msg.Amount); err != nil {
		return nil, errors.Wrap(err, "paymaster")
	}

	res := remittance.DeliverResult{
		Events: []remittance.Event{
			{
				Type: "withdraw",
				Attributes: []remittance.EventAttribute{
					remittance.Attr("recipient", msg.Source.String()),
					remittance.Attr("amount", msg.Amount.String()),
				},
			},
		},
	}
	return &res, nil
}

// validate returns the message if it passes all requirements.
func (h *withdrawHandler) validate(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*WithdrawMsg, error) {
	var msg WithdrawMsg
	if err := remittance.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the balance owner")
	}
	return &msg, nil
}

type collectFeeHandler struct {
	auth  x.Authenticator
	ctrl  Controller
	pay   Paymaster
	owner OwnerLookup
}

var _ remittance.Handler = (*collectFeeHandler)(nil)

func (h *collectFeeHandler) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &remittance.CheckResult{GasAllocated: collectFeeCost}, nil
}

func (h *collectFeeHandler) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.ctrl.Debit(db, msg.Owner, *msg.Amount); err != nil {
		return nil, err
	}
	if err := h.pay.Pay(ctx, msg.Owner, *msg.Amount); err != nil {
		return nil, errors.Wrap(err, "paymaster")
	}

	res := remittance.DeliverResult{
		Events: []remittance.Event{
			{
				Type: "owner_cut",
				Attributes: []remittance.EventAttribute{
					remittance.Attr("owner", msg.Owner.String()),
					remittance.Attr("amount", msg.Amount.String()),
				},
			},
		},
	}
	return &res, nil
}

func (h *collectFeeHandler) validate(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*CollectFeeMsg, error) {
	var msg CollectFeeMsg
	if err := remittance.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	owner, err := h.owner(db)
	if err != nil {
		return nil, errors.Wrap(err, "owner lookup")
	}
	if !owner.Equals(msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the ledger owner")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}
