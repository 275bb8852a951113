package remit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/remittance/errors"
	"github.com/iov-one/remittance/remittest"
)

func TestCommitmentIsDeterministic(t *testing.T) {
	secret := bytes.Repeat([]byte{7}, SecretSize)
	recipient := remittest.NewCondition().Address()
	ledger := LedgerAddress("remit-chain-1")

	a, err := Commitment(secret, recipient, ledger)
	require.NoError(t, err)
	b, err := Commitment(secret, recipient, ledger)
	require.NoError(t, err)

	assert.Len(t, a, CommitmentSize)
	assert.Equal(t, a, b)
}

func TestCommitmentBindsAllInputs(t *testing.T) {
	secret := bytes.Repeat([]byte{1}, SecretSize)
	recipient := remittest.NewCondition().Address()
	ledger := LedgerAddress("remit-chain-1")

	base, err := Commitment(secret, recipient, ledger)
	require.NoError(t, err)

	otherSecret := bytes.Repeat([]byte{2}, SecretSize)
	c, err := Commitment(otherSecret, recipient, ledger)
	require.NoError(t, err)
	assert.NotEqual(t, base, c, "secret must change the digest")

	c, err = Commitment(secret, remittest.NewCondition().Address(), ledger)
	require.NoError(t, err)
	assert.NotEqual(t, base, c, "recipient must change the digest")

	c, err = Commitment(secret, recipient, LedgerAddress("remit-chain-2"))
	require.NoError(t, err)
	assert.NotEqual(t, base, c, "ledger instance must change the digest")
}

func TestCommitmentInputValidation(t *testing.T) {
	recipient := remittest.NewCondition().Address()
	ledger := LedgerAddress("remit-chain-1")

	_, err := Commitment([]byte("too short"), recipient, ledger)
	assert.True(t, errors.ErrInput.Is(err))

	_, err = Commitment(bytes.Repeat([]byte{1}, SecretSize), nil, ledger)
	assert.True(t, errors.ErrInput.Is(err))

	_, err = Commitment(bytes.Repeat([]byte{1}, SecretSize), recipient, nil)
	assert.True(t, errors.ErrInput.Is(err))
}
