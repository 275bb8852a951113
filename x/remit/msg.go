package remit

import (
	"encoding/hex"

	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/coin"
	"github.com/iov-one/remittance/errors"
)

const (
	pathCreate  = "remit/create"
	pathRedeem  = "remit/redeem"
	pathReclaim = "remit/reclaim"
)

var _ remittance.Msg = (*CreateMsg)(nil)

// CreateMsg locks an amount under a commitment. The commitment is computed
// by the sender off-ledger, so the secret is never revealed here.
type CreateMsg struct {
	// Source is the caller funding the remittance.
	Source remittance.Address `json:"source"`
	// Recipient is the only identity allowed to redeem. The commitment
	// binds it too, this field is kept as a second, explicit check.
	Recipient remittance.Address `json:"recipient"`
	// Commitment the funds are locked under.
	Commitment []byte `json:"commitment"`
	// Amount is the gross amount; the fee is taken out of it.
	Amount *coin.Coin `json:"amount"`
	// Deadline after which the source may reclaim.
	Deadline remittance.UnixTime `json:"deadline"`
}

func (CreateMsg) Path() string {
	return pathCreate
}

func (m CreateMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if len(m.Commitment) != CommitmentSize {
		return errors.Wrapf(errors.ErrInput, "commitment must be %d bytes", CommitmentSize)
	}
	if m.Amount == nil {
		return errors.Wrap(errors.ErrEmpty, "amount")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if m.Deadline == 0 {
		return errors.Wrap(errors.ErrInput, "deadline is required")
	}
	if err := m.Deadline.Validate(); err != nil {
		return errors.Wrap(err, "deadline")
	}
	return nil
}

var _ remittance.Msg = (*RedeemMsg)(nil)

// RedeemMsg collects a remittance by revealing its secret. The commitment is
// recomputed from the secret and the caller identity, so only the committed
// recipient can collect.
type RedeemMsg struct {
	// Recipient is the caller.
	Recipient remittance.Address `json:"recipient"`
	// Secret as shared off-ledger by the sender.
	Secret []byte `json:"secret"`
}

func (RedeemMsg) Path() string {
	return pathRedeem
}

func (m RedeemMsg) Validate() error {
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if len(m.Secret) != SecretSize {
		return errors.Wrapf(errors.ErrInput, "secret must be %d bytes", SecretSize)
	}
	return nil
}

var _ remittance.Msg = (*ReclaimMsg)(nil)

// ReclaimMsg returns an expired, unredeemed remittance to its source.
type ReclaimMsg struct {
	// Source is the caller and must match the record's source.
	Source remittance.Address `json:"source"`
	// Commitment of the remittance to reclaim.
	Commitment []byte `json:"commitment"`
}

func (ReclaimMsg) Path() string {
	return pathReclaim
}

func (m ReclaimMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if len(m.Commitment) != CommitmentSize {
		return errors.Wrapf(errors.ErrInput, "commitment must be %d bytes", CommitmentSize)
	}
	return nil
}

// fmtCommitment renders a commitment for event payloads and logs.
func fmtCommitment(c []byte) string {
	return hex.EncodeToString(c)
}
