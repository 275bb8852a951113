package remit

import (
	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/coin"
	"github.com/iov-one/remittance/errors"
	"github.com/iov-one/remittance/orm"
)

var _ orm.Model = (*Configuration)(nil)

// configurationKey is the fixed key of the singleton configuration entity.
var configurationKey = []byte("_c")

// Validate ensures the configuration cannot produce a negative net amount.
func (c *Configuration) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if c.FlatFee == nil {
		return errors.Wrap(errors.ErrEmpty, "flat fee")
	}
	if err := c.FlatFee.Validate(); err != nil {
		return errors.Wrap(err, "flat fee")
	}
	if !c.FlatFee.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative flat fee")
	}
	if c.FeeThreshold == nil {
		return errors.Wrap(errors.ErrEmpty, "fee threshold")
	}
	if err := c.FeeThreshold.Validate(); err != nil {
		return errors.Wrap(err, "fee threshold")
	}
	// Any amount that is charged must cover the fee, otherwise the net
	// locked value would be negative.
	if !c.FeeThreshold.IsGTE(*c.FlatFee) {
		return errors.Wrap(errors.ErrAmount, "fee threshold below flat fee")
	}
	return nil
}

// Copy produces an independent copy of the configuration.
func (c *Configuration) Copy() orm.CloneableData {
	return &Configuration{
		Owner:        c.Owner.Clone(),
		FlatFee:      c.FlatFee.Clone(),
		FeeThreshold: c.FeeThreshold.Clone(),
	}
}

// Fee returns the fee charged when locking the given amount: the configured
// flat fee once the amount reaches the threshold, nothing below it.
func (c *Configuration) Fee(amount coin.Coin) coin.Coin {
	if amount.IsGTE(*c.FeeThreshold) {
		return *c.FlatFee
	}
	return coin.NewCoin(0, 0, amount.Ticker)
}

// NewConfBucket creates the bucket holding the singleton configuration.
func NewConfBucket() orm.ModelBucket {
	return orm.NewModelBucket("rconf", &Configuration{})
}

// LoadConf returns the ledger configuration. It is an error to run a ledger
// that was never initialized.
func LoadConf(db remittance.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := NewConfBucket().One(db, configurationKey, &conf); err != nil {
		return nil, errors.Wrap(err, "no ledger configuration")
	}
	return &conf, nil
}

// SaveConf persists the ledger configuration.
func SaveConf(db remittance.KVStore, conf *Configuration) error {
	return NewConfBucket().Put(db, configurationKey, conf)
}

// LoadOwner is a vault.OwnerLookup resolving the configured ledger owner.
func LoadOwner(db remittance.ReadOnlyKVStore) (remittance.Address, error) {
	conf, err := LoadConf(db)
	if err != nil {
		return nil, err
	}
	return conf.Owner, nil
}
