package main

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v2"

	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/errors"
)

// Config is the node configuration loaded from a YAML file.
type Config struct {
	// ListenAddr the HTTP API binds to, eg. ":8084".
	ListenAddr string `yaml:"listen_addr"`
	// ChainID names this ledger instance. Commitments are bound to it.
	ChainID string `yaml:"chain_id"`
	// Owner is the fee collecting identity, a hex address.
	Owner string `yaml:"owner"`
	// FlatFee in human coin format, eg. "100 WEI". Optional.
	FlatFee string `yaml:"flat_fee"`
	// FeeThreshold in human coin format, eg. "10000 WEI". Optional.
	FeeThreshold string `yaml:"fee_threshold"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8084",
		ChainID:    "remit-local",
	}
}

// LoadConfig reads the YAML configuration from the given path. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	if path == "" {
		return conf, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := yaml.UnmarshalStrict(raw, &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "cannot parse config: %s", err)
	}
	return conf, nil
}

// Validate ensures the configuration can start a node.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.Wrap(errors.ErrEmpty, "listen_addr")
	}
	if !remittance.IsValidChainID(c.ChainID) {
		return errors.Wrapf(errors.ErrInput, "chain_id: %q", c.ChainID)
	}
	if c.Owner == "" {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	if _, err := remittance.ParseAddress(c.Owner); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// genesis converts the node configuration into ledger genesis options.
func (c Config) genesis() (remittance.Options, error) {
	opts := map[string]string{"owner": c.Owner}
	if c.FlatFee != "" {
		opts["flat_fee"] = c.FlatFee
	}
	if c.FeeThreshold != "" {
		opts["fee_threshold"] = c.FeeThreshold
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode genesis")
	}
	return remittance.Options{"remit": raw}, nil
}
