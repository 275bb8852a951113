package remit

import (
	"github.com/iov-one/remittance/errors"
	"github.com/iov-one/remittance/orm"
)

var _ orm.Model = (*Remittance)(nil)

// Validate ensures the remittance record is well formed.
func (r *Remittance) Validate() error {
	if err := r.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := r.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if r.Amount == nil {
		return errors.Wrap(errors.ErrEmpty, "amount")
	}
	if err := r.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !r.Amount.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative amount")
	}
	if r.Deadline == 0 {
		// Zero deadline dates to 1970-01-01 which can only mean the
		// value was never provided.
		return errors.Wrap(errors.ErrInput, "deadline is required")
	}
	if err := r.Deadline.Validate(); err != nil {
		return errors.Wrap(err, "deadline")
	}
	return nil
}

// Copy produces an independent copy of the record.
func (r *Remittance) Copy() orm.CloneableData {
	return &Remittance{
		Source:    r.Source.Clone(),
		Recipient: r.Recipient.Clone(),
		Amount:    r.Amount.Clone(),
		Deadline:  r.Deadline,
		Settled:   r.Settled,
	}
}

// NewBucket creates the bucket of all remittance records, keyed by their
// 32 byte commitment.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("remit", &Remittance{})
}
