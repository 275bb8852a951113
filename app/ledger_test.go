package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/coin"
	"github.com/iov-one/remittance/errors"
	"github.com/iov-one/remittance/remittest"
	"github.com/iov-one/remittance/store"
	"github.com/iov-one/remittance/x/remit"
	"github.com/iov-one/remittance/x/vault"
)

const testChainID = "remit-test-1"

func genesisOpts(owner remittance.Address) remittance.Options {
	return remittance.Options{
		"remit": json.RawMessage(fmt.Sprintf(`{"owner": %q}`, owner.String())),
	}
}

func testSecret(b byte) []byte {
	return bytes.Repeat([]byte{b}, remit.SecretSize)
}

func TestLedgerLifecycle(t *testing.T) {
	ownerCond := remittest.NewCondition()
	aliceCond := remittest.NewCondition()
	bobCond := remittest.NewCondition()
	bob := bobCond.Address()

	pay := vault.NewRecordingPaymaster()
	ledger, err := NewLedger(testChainID, store.MemStore(), pay, genesisOpts(ownerCond.Address()))
	require.NoError(t, err)

	now := time.Now().UTC().Round(time.Second)
	secret := testSecret(1)
	commitment, err := remit.Commitment(secret, bob, ledger.LedgerAddress())
	require.NoError(t, err)

	// Alice locks 50 000, fee is 100 so 49 900 stay redeemable.
	_, err = ledger.DeliverTx(now, conds(aliceCond), &remit.CreateMsg{
		Source:     aliceCond.Address(),
		Recipient:  bob,
		Commitment: commitment,
		Amount:     coin.NewCoinp(50000, 0, "WEI"),
		Deadline:   remittance.AsUnixTime(now.Add(24 * time.Hour)),
	})
	require.NoError(t, err)

	// Bob reveals the secret and is credited the net amount.
	_, err = ledger.DeliverTx(now, conds(bobCond), &remit.RedeemMsg{
		Recipient: bob,
		Secret:    secret,
	})
	require.NoError(t, err)

	held, err := ledger.Balance(bob)
	require.NoError(t, err)
	require.NotNil(t, held)
	assert.True(t, coin.NewCoin(49900, 0, "WEI").Equals(*held))

	// Bob pulls the money out through the paymaster.
	_, err = ledger.DeliverTx(now, conds(bobCond), &vault.WithdrawMsg{
		Source: bob,
		Amount: coin.NewCoinp(49900, 0, "WEI"),
	})
	require.NoError(t, err)
	require.Len(t, pay.Payouts(), 1)

	// The owner collects the accrued fee.
	_, err = ledger.DeliverTx(now, conds(ownerCond), &vault.CollectFeeMsg{
		Owner:  ownerCond.Address(),
		Amount: coin.NewCoinp(100, 0, "WEI"),
	})
	require.NoError(t, err)

	// Every operation left exactly one event, in order.
	var types []string
	for _, e := range ledger.Events() {
		types = append(types, e.Type)
		assert.NotEmpty(t, e.ID)
	}
	assert.Equal(t, []string{"remit", "redeem", "withdraw", "owner_cut"}, types)
}

func TestLedgerReclaimAfterDeadline(t *testing.T) {
	ownerCond := remittest.NewCondition()
	aliceCond := remittest.NewCondition()
	alice := aliceCond.Address()
	bob := remittest.NewCondition().Address()

	ledger, err := NewLedger(testChainID, store.MemStore(), vault.NewRecordingPaymaster(), genesisOpts(ownerCond.Address()))
	require.NoError(t, err)

	now := time.Now().UTC().Round(time.Second)
	deadline := now.Add(time.Hour)
	commitment, err := remit.Commitment(testSecret(2), bob, ledger.LedgerAddress())
	require.NoError(t, err)

	_, err = ledger.DeliverTx(now, conds(aliceCond), &remit.CreateMsg{
		Source:     alice,
		Recipient:  bob,
		Commitment: commitment,
		Amount:     coin.NewCoinp(500, 0, "WEI"),
		Deadline:   remittance.AsUnixTime(deadline),
	})
	require.NoError(t, err)

	reclaim := &remit.ReclaimMsg{Source: alice, Commitment: commitment}

	_, err = ledger.DeliverTx(now, conds(aliceCond), reclaim)
	assert.True(t, errors.ErrState.Is(err), "too early to reclaim")

	_, err = ledger.DeliverTx(deadline, conds(aliceCond), reclaim)
	require.NoError(t, err)

	held, err := ledger.Balance(alice)
	require.NoError(t, err)
	assert.True(t, coin.NewCoin(500, 0, "WEI").Equals(*held), "no fee below the threshold")
}

func TestLedgerRollsBackFailedWithdraw(t *testing.T) {
	ownerCond := remittest.NewCondition()
	aliceCond := remittest.NewCondition()
	alice := aliceCond.Address()

	ledger, err := NewLedger(testChainID, store.MemStore(), brokenPaymaster{}, genesisOpts(ownerCond.Address()))
	require.NoError(t, err)

	now := time.Now().UTC()
	secret := testSecret(3)
	commitment, err := remit.Commitment(secret, alice, ledger.LedgerAddress())
	require.NoError(t, err)

	_, err = ledger.DeliverTx(now, conds(aliceCond), &remit.CreateMsg{
		Source:     alice,
		Recipient:  alice,
		Commitment: commitment,
		Amount:     coin.NewCoinp(500, 0, "WEI"),
		Deadline:   remittance.AsUnixTime(now.Add(time.Hour)),
	})
	require.NoError(t, err)
	_, err = ledger.DeliverTx(now, conds(aliceCond), &remit.RedeemMsg{Recipient: alice, Secret: secret})
	require.NoError(t, err)

	// The paymaster refuses the transfer, so the whole withdraw must be
	// rolled back and the balance stay untouched.
	_, err = ledger.DeliverTx(now, conds(aliceCond), &vault.WithdrawMsg{
		Source: alice,
		Amount: coin.NewCoinp(500, 0, "WEI"),
	})
	assert.True(t, errors.ErrNetwork.Is(err))

	held, err := ledger.Balance(alice)
	require.NoError(t, err)
	require.NotNil(t, held)
	assert.True(t, coin.NewCoin(500, 0, "WEI").Equals(*held))

	// No event was logged for the failed transaction.
	for _, e := range ledger.Events() {
		assert.NotEqual(t, "withdraw", e.Type)
	}
}

func TestLedgerCommitmentsDoNotCrossInstances(t *testing.T) {
	ownerCond := remittest.NewCondition()
	aliceCond := remittest.NewCondition()
	bobCond := remittest.NewCondition()
	bob := bobCond.Address()

	one, err := NewLedger("remit-one-1", store.MemStore(), vault.NewRecordingPaymaster(), genesisOpts(ownerCond.Address()))
	require.NoError(t, err)
	two, err := NewLedger("remit-two-1", store.MemStore(), vault.NewRecordingPaymaster(), genesisOpts(ownerCond.Address()))
	require.NoError(t, err)

	now := time.Now().UTC()
	secret := testSecret(4)

	// Commitment computed for instance one...
	commitment, err := remit.Commitment(secret, bob, one.LedgerAddress())
	require.NoError(t, err)
	_, err = one.DeliverTx(now, conds(aliceCond), &remit.CreateMsg{
		Source:     aliceCond.Address(),
		Recipient:  bob,
		Commitment: commitment,
		Amount:     coin.NewCoinp(500, 0, "WEI"),
		Deadline:   remittance.AsUnixTime(now.Add(time.Hour)),
	})
	require.NoError(t, err)

	// ...and replayed on instance two, where the same secret derives a
	// different digest and finds nothing.
	_, err = two.DeliverTx(now, conds(bobCond), &remit.RedeemMsg{Recipient: bob, Secret: secret})
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestLedgerCheckTxLeavesNoTrace(t *testing.T) {
	ownerCond := remittest.NewCondition()
	aliceCond := remittest.NewCondition()
	bob := remittest.NewCondition().Address()

	ledger, err := NewLedger(testChainID, store.MemStore(), vault.NewRecordingPaymaster(), genesisOpts(ownerCond.Address()))
	require.NoError(t, err)

	now := time.Now().UTC()
	commitment, err := remit.Commitment(testSecret(5), bob, ledger.LedgerAddress())
	require.NoError(t, err)

	msg := &remit.CreateMsg{
		Source:     aliceCond.Address(),
		Recipient:  bob,
		Commitment: commitment,
		Amount:     coin.NewCoinp(50000, 0, "WEI"),
		Deadline:   remittance.AsUnixTime(now.Add(time.Hour)),
	}
	res, err := ledger.CheckTx(now, conds(aliceCond), msg)
	require.NoError(t, err)
	assert.NotZero(t, res.GasAllocated)

	// Check must not have created the record, so Deliver still succeeds.
	_, err = ledger.DeliverTx(now, conds(aliceCond), msg)
	require.NoError(t, err)
	assert.Len(t, ledger.Events(), 1, "only the delivered tx is logged")
}

func conds(cs ...remittance.Condition) []remittance.Condition {
	return cs
}

// brokenPaymaster refuses every transfer.
type brokenPaymaster struct{}

func (brokenPaymaster) Pay(remittance.Context, remittance.Address, coin.Coin) error {
	return errors.Wrap(errors.ErrNetwork, "no settlement backend")
}
