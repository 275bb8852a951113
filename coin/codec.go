package coin

import (
	"io"

	"github.com/gogo/protobuf/proto"

	"github.com/iov-one/remittance/errors"
)

// Coin can hold any amount between -1 billion and +1 billion at steps of
// 10^-9. It is a signed type on the wire, but the ledger enforces
// non-negative values everywhere a balance or payment is expressed.
type Coin struct {
	// Whole coins, -10^15 < integer < 10^15
	Whole int64
	// Billionth of coins. 0 <= abs(fractional) < 10^9
	// If fractional != 0, must have same sign as whole.
	Fractional int64
	// Ticker is 3-4 upper-case letters and all coins of the same currency
	// can be combined.
	Ticker string
}

// Protobuf wire field numbers. The repository does not check in generated
// code, so the codec below writes the exact same encoding by hand.
const (
	coinFieldWhole      = 1 // varint
	coinFieldFractional = 2 // varint
	coinFieldTicker     = 3 // length-delimited
)

var _ proto.Message = (*Coin)(nil)

func (c *Coin) Reset()      { *c = Coin{} }
func (*Coin) ProtoMessage() {}

// Marshal implements the Persistent interface with protobuf encoding.
func (c *Coin) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if c.Whole != 0 {
		_ = buf.EncodeVarint(coinFieldWhole<<3 | proto.WireVarint)
		_ = buf.EncodeVarint(uint64(c.Whole))
	}
	if c.Fractional != 0 {
		_ = buf.EncodeVarint(coinFieldFractional<<3 | proto.WireVarint)
		_ = buf.EncodeVarint(uint64(c.Fractional))
	}
	if c.Ticker != "" {
		_ = buf.EncodeVarint(coinFieldTicker<<3 | proto.WireBytes)
		_ = buf.EncodeStringBytes(c.Ticker)
	}
	return buf.Bytes(), nil
}

// Unmarshal implements the Persistent interface with protobuf decoding.
func (c *Coin) Unmarshal(raw []byte) error {
	c.Reset()
	buf := proto.NewBuffer(raw)
	for {
		tag, err := buf.DecodeVarint()
		if err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(errors.ErrInput, "cannot decode tag")
		}
		switch tag >> 3 {
		case coinFieldWhole:
			v, err := buf.DecodeVarint()
			if err != nil {
				return errors.Wrap(errors.ErrInput, "whole")
			}
			c.Whole = int64(v)
		case coinFieldFractional:
			v, err := buf.DecodeVarint()
			if err != nil {
				return errors.Wrap(errors.ErrInput, "fractional")
			}
			c.Fractional = int64(v)
		case coinFieldTicker:
			s, err := buf.DecodeStringBytes()
			if err != nil {
				return errors.Wrap(errors.ErrInput, "ticker")
			}
			c.Ticker = s
		default:
			return errors.Wrapf(errors.ErrInput, "unknown field %d", tag>>3)
		}
	}
}
