package remittest

import (
	"encoding/binary"
	"sync/atomic"

	remittance "github.com/iov-one/remittance"
)

// conditionCounter is used to generate unique conditions.
var conditionCounter uint64

// NewCondition returns a new, unique condition.
func NewCondition() remittance.Condition {
	c := atomic.AddUint64(&conditionCounter, 1)
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, c)
	return remittance.NewCondition("test", "seq", raw)
}

// SequenceID returns an ID encoded as if it was generated by a bucket
// sequence. This is a helper for declaring keys of entities that are usually
// created with a sequence counter.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
