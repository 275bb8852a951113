package remit

import (
	"golang.org/x/crypto/sha3"

	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/errors"
)

const (
	// SecretSize is the exact byte length of a remittance secret.
	SecretSize = 32
	// CommitmentSize is the byte length of a commitment digest.
	CommitmentSize = 32
)

// LedgerCondition names the ledger instance itself. Its address is mixed
// into every commitment so a digest computed for one deployment cannot be
// replayed on another.
func LedgerCondition(chainID string) remittance.Condition {
	return remittance.NewCondition("remit", "ledger", []byte(chainID))
}

// LedgerAddress is the address form of LedgerCondition.
func LedgerAddress(chainID string) remittance.Address {
	return LedgerCondition(chainID).Address()
}

// Commitment computes the digest a remittance is locked under:
//
//   keccak256(secret || recipient || ledger)
//
// Binding the recipient makes a stolen secret worthless to anyone else, and
// binding the ledger address prevents cross-instance replay.
func Commitment(secret []byte, recipient remittance.Address, ledger remittance.Address) ([]byte, error) {
	if len(secret) != SecretSize {
		return nil, errors.Wrapf(errors.ErrInput, "secret must be %d bytes", SecretSize)
	}
	if err := recipient.Validate(); err != nil {
		return nil, errors.Wrap(err, "recipient")
	}
	if err := ledger.Validate(); err != nil {
		return nil, errors.Wrap(err, "ledger")
	}

	h := sha3.NewLegacyKeccak256()
	h.Write(secret)
	h.Write(recipient)
	h.Write(ledger)
	return h.Sum(nil), nil
}
