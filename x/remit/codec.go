package remit

import (
	"io"

	"github.com/gogo/protobuf/proto"

	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/coin"
	"github.com/iov-one/remittance/errors"
)

// Remittance is a single commitment-locked payment. It is stored under its
// commitment and stays in the store forever; Settled flips to true exactly
// once, on redeem or reclaim.
type Remittance struct {
	// Source created the remittance and may reclaim it after the deadline.
	Source remittance.Address `json:"source"`
	// Recipient is the only identity allowed to redeem.
	Recipient remittance.Address `json:"recipient"`
	// Amount is the net value locked, after the creation fee was taken.
	Amount *coin.Coin `json:"amount"`
	// Deadline after which (inclusive) the source may reclaim.
	Deadline remittance.UnixTime `json:"deadline"`
	// Settled is true once the value left this record.
	Settled bool `json:"settled"`
}

const (
	remFieldSource    = 1 // length-delimited
	remFieldRecipient = 2 // length-delimited
	remFieldAmount    = 3 // length-delimited
	remFieldDeadline  = 4 // varint
	remFieldSettled   = 5 // varint
)

var _ proto.Message = (*Remittance)(nil)

func (r *Remittance) Reset()         { *r = Remittance{} }
func (r *Remittance) String() string { return "remittance from " + r.Source.String() }
func (*Remittance) ProtoMessage()    {}

func (r *Remittance) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if len(r.Source) != 0 {
		_ = buf.EncodeVarint(remFieldSource<<3 | proto.WireBytes)
		_ = buf.EncodeRawBytes(r.Source)
	}
	if len(r.Recipient) != 0 {
		_ = buf.EncodeVarint(remFieldRecipient<<3 | proto.WireBytes)
		_ = buf.EncodeRawBytes(r.Recipient)
	}
	if r.Amount != nil {
		raw, err := r.Amount.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "amount")
		}
		_ = buf.EncodeVarint(remFieldAmount<<3 | proto.WireBytes)
		_ = buf.EncodeRawBytes(raw)
	}
	if r.Deadline != 0 {
		_ = buf.EncodeVarint(remFieldDeadline<<3 | proto.WireVarint)
		_ = buf.EncodeVarint(uint64(r.Deadline))
	}
	if r.Settled {
		_ = buf.EncodeVarint(remFieldSettled<<3 | proto.WireVarint)
		_ = buf.EncodeVarint(1)
	}
	return buf.Bytes(), nil
}

func (r *Remittance) Unmarshal(raw []byte) error {
	r.Reset()
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
		case remFieldSource:
			bz, err := buf.DecodeRawBytes(true)
			if err != nil {
				return errors.Wrap(errors.ErrInput, "source")
			}
			r.Source = bz
		case remFieldRecipient:
			bz, err := buf.DecodeRawBytes(true)
			if err != nil {
				return errors.Wrap(errors.ErrInput, "recipient")
			}
			r.Recipient = bz
		case remFieldAmount:
			bz, err := buf.DecodeRawBytes(true)
			if err != nil {
				return errors.Wrap(errors.ErrInput, "amount")
			}
			var c coin.Coin
			if err := c.Unmarshal(bz); err != nil {
				return errors.Wrap(err, "amount")
			}
			r.Amount = &c
		case remFieldDeadline:
			v, err := buf.DecodeVarint()
			if err != nil {
				return errors.Wrap(errors.ErrInput, "deadline")
			}
			r.Deadline = remittance.UnixTime(v)
		case remFieldSettled:
			v, err := buf.DecodeVarint()
			if err != nil {
				return errors.Wrap(errors.ErrInput, "settled")
			}
			r.Settled = v != 0
		default:
			return errors.Wrapf(errors.ErrInput, "unknown field %d", tag>>3)
		}
	}
}

// Configuration is the ledger-wide fee policy and ownership, set at genesis
// and stored as a singleton.
type Configuration struct {
	// Owner collects fees and is the only identity allowed to issue
	// vault/collect_fee.
	Owner remittance.Address `json:"owner"`
	// FlatFee is charged on remittance creation when the amount reaches
	// FeeThreshold.
	FlatFee *coin.Coin `json:"flat_fee"`
	// FeeThreshold is the smallest amount that is charged a fee.
	FeeThreshold *coin.Coin `json:"fee_threshold"`
}

const (
	confFieldOwner     = 1 // length-delimited
	confFieldFlatFee   = 2 // length-delimited
	confFieldThreshold = 3 // length-delimited
)

var _ proto.Message = (*Configuration)(nil)

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return "configuration, owner " + c.Owner.String() }
func (*Configuration) ProtoMessage()    {}

func (c *Configuration) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if len(c.Owner) != 0 {
		_ = buf.EncodeVarint(confFieldOwner<<3 | proto.WireBytes)
		_ = buf.EncodeRawBytes(c.Owner)
	}
	if c.FlatFee != nil {
		raw, err := c.FlatFee.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "flat fee")
		}
		_ = buf.EncodeVarint(confFieldFlatFee<<3 | proto.WireBytes)
		_ = buf.EncodeRawBytes(raw)
	}
	if c.FeeThreshold != nil {
		raw, err := c.FeeThreshold.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "fee threshold")
		}
		_ = buf.EncodeVarint(confFieldThreshold<<3 | proto.WireBytes)
		_ = buf.EncodeRawBytes(raw)
	}
	return buf.Bytes(), nil
}

func (c *Configuration) Unmarshal(raw []byte) error {
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
		case confFieldOwner:
			bz, err := buf.DecodeRawBytes(true)
			if err != nil {
				return errors.Wrap(errors.ErrInput, "owner")
			}
			c.Owner = bz
		case confFieldFlatFee:
			bz, err := buf.DecodeRawBytes(true)
			if err != nil {
				return errors.Wrap(errors.ErrInput, "flat fee")
			}
			var fee coin.Coin
			if err := fee.Unmarshal(bz); err != nil {
				return errors.Wrap(err, "flat fee")
			}
			c.FlatFee = &fee
		case confFieldThreshold:
			bz, err := buf.DecodeRawBytes(true)
			if err != nil {
				return errors.Wrap(errors.ErrInput, "fee threshold")
			}
			var th coin.Coin
			if err := th.Unmarshal(bz); err != nil {
				return errors.Wrap(err, "fee threshold")
			}
			c.FeeThreshold = &th
		default:
			return errors.Wrapf(errors.ErrInput, "unknown field %d", tag>>3)
		}
	}
}
