package remit

import (
	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/coin"
	"github.com/iov-one/remittance/errors"
)

const (
	// DefaultTicker is the currency used when genesis does not name one.
	DefaultTicker = "WEI"

	defaultFlatFee      int64 = 100
	defaultFeeThreshold int64 = 10000
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ remittance.Initializer = (*Initializer)(nil)

// FromGenesis initializes the ledger configuration from genesis options. The
// owner is mandatory, fee values fall back to the defaults of the reference
// deployment.
func (Initializer) FromGenesis(opts remittance.Options, db remittance.KVStore) error {
	var conf struct {
		Owner        remittance.Address `json:"owner"`
		FlatFee      *coin.Coin         `json:"flat_fee"`
		FeeThreshold *coin.Coin         `json:"fee_threshold"`
	}
	if err := opts.ReadOptions("remit", &conf); err != nil {
		return errors.Wrap(err, "cannot load remit options")
	}
	if conf.Owner.IsEmpty() {
		return errors.Wrap(errors.ErrEmpty, "remit owner is required")
	}
	if conf.FlatFee == nil {
		conf.FlatFee = coin.NewCoinp(defaultFlatFee, 0, DefaultTicker)
	}
	if conf.FeeThreshold == nil {
		conf.FeeThreshold = coin.NewCoinp(defaultFeeThreshold, 0, conf.FlatFee.Ticker)
	}

	c := Configuration{
		Owner:        conf.Owner,
		FlatFee:      conf.FlatFee,
		FeeThreshold: conf.FeeThreshold,
	}
	if err := SaveConf(db, &c); err != nil {
		return errors.Wrap(err, "cannot save configuration")
	}
	return nil
}
