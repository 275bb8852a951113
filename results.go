package remittance

// CheckResult captures any immediate effect of validating a transaction.
type CheckResult struct {
	// GasAllocated is the cost the caller pays up-front for execution.
	GasAllocated int64
}

// DeliverResult captures any immediate effect of executing a transaction.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a record
	// created by this transaction.
	Data []byte

	// Log is a human readable success note.
	Log string

	// Events, if present, are appended to the instance's event log so
	// external consumers can follow state transitions.
	Events []Event
}

// Event is one entry of the append-only observability log. One event is
// emitted per successful state-changing operation.
type Event struct {
	// Type names the operation, eg. "remit" or "withdraw".
	Type string

	// Attributes enumerate the operation payload.
	Attributes []EventAttribute
}

// EventAttribute is a single key-value element of an event payload.
type EventAttribute struct {
	Key   string
	Value string
}

// Attr is a shorthand constructor for an event attribute.
func Attr(key, value string) EventAttribute {
	return EventAttribute{Key: key, Value: value}
}
