package remittance

import (
	"reflect"

	"github.com/iov-one/remittance/errors"
)

// Persistent is implemented by anything that can be serialized to, and
// deserialized from, its binary wire representation.
type Persistent interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// Msg is a request to make a single state transition. It is routed to a
// handler by its path and validated before any state is touched.
type Msg interface {
	// Path natively routes this message to its handler, format "module/action".
	Path() string

	// Validate performs static checks that need no state access. Anything
	// failing here is a caller error that can be fixed and retried.
	Validate() error
}

// Tx represents the action one caller submits for atomic execution. It
// carries exactly one message.
type Tx interface {
	GetMsg() (Msg, error)
}

// LoadMsg extracts the message from the transaction, validates it and loads
// it into the destination value. The destination must be a pointer of the
// exact message type carried by the transaction.
func LoadMsg(tx Tx, dest Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrEmpty, "msg")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid msg")
	}

	if !reflect.TypeOf(msg).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", msg, dest)
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(msg).Elem())
	return nil
}
