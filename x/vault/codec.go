package vault

import (
	"io"

	"github.com/gogo/protobuf/proto"

	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/coin"
	"github.com/iov-one/remittance/errors"
)

// Balance is the withdrawable amount held for a single identity.
type Balance struct {
	// Owner is the only identity allowed to withdraw.
	Owner remittance.Address `json:"owner"`
	// Amount currently held. Never negative.
	Amount *coin.Coin `json:"amount"`
}

const (
	balanceFieldOwner  = 1 // length-delimited
	balanceFieldAmount = 2 // length-delimited
)

var _ proto.Message = (*Balance)(nil)

func (b *Balance) Reset()         { *b = Balance{} }
func (b *Balance) String() string { return "balance of " + b.Owner.String() }
func (*Balance) ProtoMessage()    {}

func (b *Balance) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if len(b.Owner) != 0 {
		_ = buf.EncodeVarint(balanceFieldOwner<<3 | proto.WireBytes)
		_ = buf.EncodeRawBytes(b.Owner)
	}
	if b.Amount != nil {
		raw, err := b.Amount.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "amount")
		}
		_ = buf.EncodeVarint(balanceFieldAmount<<3 | proto.WireBytes)
		_ = buf.EncodeRawBytes(raw)
	}
	return buf.Bytes(), nil
}

func (b *Balance) Unmarshal(raw []byte) error {
	b.Reset()
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
		case balanceFieldOwner:
			bz, err := buf.DecodeRawBytes(true)
			if err != nil {
				return errors.Wrap(errors.ErrInput, "owner")
			}
			b.Owner = bz
		case balanceFieldAmount:
			bz, err := buf.DecodeRawBytes(true)
			if err != nil {
				return errors.Wrap(errors.ErrInput, "amount")
			}
			var c coin.Coin
			if err := c.Unmarshal(bz); err != nil {
				return errors.Wrap(err, "amount")
			}
			b.Amount = &c
		default:
			return errors.Wrapf(errors.ErrInput, "unknown field %d", tag>>3)
		}
	}
}
