package remittest

import remittance "github.com/iov-one/remittance"

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg remittance.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ remittance.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (remittance.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a mock message with a declared routing path.
type Msg struct {
	// RoutePath is returned by the Path method, consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ remittance.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
