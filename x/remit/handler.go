package remit

import (
	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/errors"
	"github.com/iov-one/remittance/orm"
	"github.com/iov-one/remittance/x"
	"github.com/iov-one/remittance/x/vault"
)

const (
	createCost  int64 = 300
	redeemCost  int64 = 200
	reclaimCost int64 = 200
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r remittance.Registry, auth x.Authenticator, ctrl vault.Controller) {
	bucket := NewBucket()
	r.Handle(pathCreate, &createHandler{auth: auth, bucket: bucket, ctrl: ctrl})
	r.Handle(pathRedeem, &redeemHandler{auth: auth, bucket: bucket, ctrl: ctrl})
	r.Handle(pathReclaim, &reclaimHandler{auth: auth, bucket: bucket, ctrl: ctrl})
}

// RegisterQuery will register remittance records as "/remittances".
func RegisterQuery(qr remittance.QueryRouter) {
	NewBucket().Register("remittances", qr)
	NewConfBucket().Register("configuration", qr)
}

type createHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ctrl   vault.Controller
}

var _ remittance.Handler = (*createHandler)(nil)

func (h *createHandler) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &remittance.CheckResult{GasAllocated: createCost}, nil
}

func (h *createHandler) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	conf, err := LoadConf(db)
	if err != nil {
		return nil, err
	}

	fee := conf.Fee(*msg.Amount)
	net, err := msg.Amount.Subtract(fee)
	if err != nil {
		return nil, errors.Wrap(err, "fee")
	}

	if fee.IsPositive() {
		if err := h.ctrl.Credit(db, conf.Owner, fee); err != nil {
			return nil, errors.Wrap(err, "owner fee")
		}
	}

	rem := Remittance{
		Source:    msg.Source,
		Recipient: msg.Recipient,
		Amount:    &net,
		Deadline:  msg.Deadline,
	}
	if err := h.bucket.Put(db, msg.Commitment, &rem); err != nil {
		return nil, errors.Wrap(err, "cannot store remittance")
	}

	res := remittance.DeliverResult{
		Data: msg.Commitment,
		Events: []remittance.Event{
			{
				Type: "remit",
				Attributes: []remittance.EventAttribute{
					remittance.Attr("commitment", fmtCommitment(msg.Commitment)),
					remittance.Attr("source", msg.Source.String()),
					remittance.Attr("recipient", msg.Recipient.String()),
					remittance.Attr("amount", net.String()),
					remittance.Attr("fee", fee.String()),
				},
			},
		},
	}
	return &res, nil
}

func (h *createHandler) validate(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := remittance.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the source")
	}
	if remittance.IsExpired(ctx, msg.Deadline) {
		return nil, errors.Wrap(errors.ErrInput, "deadline already expired")
	}
	// A commitment can be used at most once, settled records included.
	switch has, err := h.bucket.Has(db, msg.Commitment); {
	case err != nil:
		return nil, errors.Wrap(err, "cannot check commitment")
	case has:
		return nil, errors.Wrap(errors.ErrDuplicate, "commitment already used")
	}
	return &msg, nil
}

type redeemHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ctrl   vault.Controller
}

var _ remittance.Handler = (*redeemHandler)(nil)

func (h *redeemHandler) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &remittance.CheckResult{GasAllocated: redeemCost}, nil
}

func (h *redeemHandler) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, commitment, rem, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	rem.Settled = true
	if err := h.bucket.Put(db, commitment, rem); err != nil {
		return nil, errors.Wrap(err, "cannot update remittance")
	}
	// A zero net amount is possible when the whole amount went into the
	// fee. The record still settles, there is just nothing to credit.
	if rem.Amount.IsPositive() {
		if err := h.ctrl.Credit(db, msg.Recipient, *rem.Amount); err != nil {
			return nil, errors.Wrap(err, "cannot credit recipient")
		}
	}

	res := remittance.DeliverResult{
		Data: commitment,
		Events: []remittance.Event{
			{
				Type: "redeem",
				Attributes: []remittance.EventAttribute{
					remittance.Attr("commitment", fmtCommitment(commitment)),
					remittance.Attr("recipient", msg.Recipient.String()),
					remittance.Attr("amount", rem.Amount.String()),
				},
			},
		},
	}
	return &res, nil
}

// validate recomputes the commitment from the revealed secret and loads the
// matching record. Every failure mode collapses into the same ErrNotFound
// answer so callers probing the ledger cannot tell an unknown commitment, a
// foreign secret or an already settled remittance apart.
func (h *redeemHandler) validate(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*RedeemMsg, []byte, *Remittance, error) {
	var msg RedeemMsg
	if err := remittance.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Recipient) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "not the recipient")
	}

	ledger := LedgerAddress(remittance.GetChainID(ctx))
	commitment, err := Commitment(msg.Secret, msg.Recipient, ledger)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "commitment")
	}

	var rem Remittance
	if err := h.bucket.One(db, commitment, &rem); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, nil, nil, errRedeem()
		}
		return nil, nil, nil, errors.Wrap(err, "cannot load remittance")
	}
	if rem.Settled {
		return nil, nil, nil, errRedeem()
	}
	// The commitment already binds the recipient; the stored field is
	// checked anyway so a crafted record can never pay the wrong identity.
	if !rem.Recipient.Equals(msg.Recipient) {
		return nil, nil, nil, errRedeem()
	}
	return &msg, commitment, &rem, nil
}

// errRedeem is the single answer for every redeem failure.
func errRedeem() error {
	return errors.Wrap(errors.ErrNotFound, "no redeemable remittance")
}

type reclaimHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ctrl   vault.Controller
}

var _ remittance.Handler = (*reclaimHandler)(nil)

func (h *reclaimHandler) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &remittance.CheckResult{GasAllocated: reclaimCost}, nil
}

func (h *reclaimHandler) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, rem, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	rem.Settled = true
	if err := h.bucket.Put(db, msg.Commitment, rem); err != nil {
		return nil, errors.Wrap(err, "cannot update remittance")
	}
	if rem.Amount.IsPositive() {
		if err := h.ctrl.Credit(db, msg.Source, *rem.Amount); err != nil {
			return nil, errors.Wrap(err, "cannot credit source")
		}
	}

	res := remittance.DeliverResult{
		Data: msg.Commitment,
		Events: []remittance.Event{
			{
				Type: "reclaim",
				Attributes: []remittance.EventAttribute{
					remittance.Attr("commitment", fmtCommitment(msg.Commitment)),
					remittance.Attr("source", msg.Source.String()),
					remittance.Attr("amount", rem.Amount.String()),
				},
			},
		},
	}
	return &res, nil
}

func (h *reclaimHandler) validate(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*ReclaimMsg, *Remittance, error) {
	var msg ReclaimMsg
	if err := remittance.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not the source")
	}

	var rem Remittance
	if err := h.bucket.One(db, msg.Commitment, &rem); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load remittance")
	}
	if !rem.Source.Equals(msg.Source) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the source can reclaim")
	}
	if rem.Settled {
		return nil, nil, errors.Wrap(errors.ErrState, "already settled")
	}
	if !remittance.IsExpired(ctx, rem.Deadline) {
		return nil, nil, errors.Wrap(errors.ErrState, "deadline not reached")
	}
	return &msg, &rem, nil
}
