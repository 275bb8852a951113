package remit

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/coin"
	"github.com/iov-one/remittance/errors"
	"github.com/iov-one/remittance/remittest"
	"github.com/iov-one/remittance/store"
	"github.com/iov-one/remittance/x/vault"
)

const testChainID = "remit-chain-1"

// ledgerFixture wires a complete remit + vault setup over a fresh store.
type ledgerFixture struct {
	db       store.CacheableKVStore
	handlers map[string]remittance.Handler
	ctrl     vault.Controller
	auth     *remittest.CtxAuth

	ownerCond remittance.Condition
	owner     remittance.Address
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	f := &ledgerFixture{
		db:        store.MemStore(),
		handlers:  make(map[string]remittance.Handler),
		auth:      &remittest.CtxAuth{Key: "auth"},
		ownerCond: remittest.NewCondition(),
	}
	f.owner = f.ownerCond.Address()
	f.ctrl = vault.NewController(vault.NewBucket())

	conf := Configuration{
		Owner:        f.owner,
		FlatFee:      coin.NewCoinp(100, 0, "WEI"),
		FeeThreshold: coin.NewCoinp(10000, 0, "WEI"),
	}
	require.NoError(t, SaveConf(f.db, &conf))

	RegisterRoutes(f, f.auth, f.ctrl)
	return f
}

func (f *ledgerFixture) Handle(path string, h remittance.Handler) {
	f.handlers[path] = h
}

// ctx returns an execution context for the given caller and time.
func (f *ledgerFixture) ctx(caller remittance.Condition, now time.Time) remittance.Context {
	ctx := remittance.WithChainID(context.Background(), testChainID)
	ctx = remittance.WithBlockTime(ctx, now)
	return f.auth.SetConditions(ctx, caller)
}

func (f *ledgerFixture) deliver(t *testing.T, caller remittance.Condition, now time.Time, msg remittance.Msg) (*remittance.DeliverResult, error) {
	t.Helper()
	h, ok := f.handlers[msg.Path()]
	require.True(t, ok, "no handler for %q", msg.Path())
	return h.Deliver(f.ctx(caller, now), f.db, &remittest.Tx{Msg: msg})
}

func (f *ledgerFixture) balance(t *testing.T, addr remittance.Address) coin.Coin {
	t.Helper()
	held, err := f.ctrl.Balance(f.db, addr)
	require.NoError(t, err)
	if held == nil {
		return coin.NewCoin(0, 0, "WEI")
	}
	return *held
}

func testSecret(b byte) []byte {
	return bytes.Repeat([]byte{b}, SecretSize)
}

func TestCreateRedeemRoundtrip(t *testing.T) {
	f := newLedgerFixture(t)
	now := time.Now().UTC().Round(time.Second)

	aliceCond := remittest.NewCondition()
	bobCond := remittest.NewCondition()
	bob := bobCond.Address()

	secret := testSecret(1)
	commitment, err := Commitment(secret, bob, LedgerAddress(testChainID))
	require.NoError(t, err)

	create := &CreateMsg{
		Source:     aliceCond.Address(),
		Recipient:  bob,
		Commitment: commitment,
		Amount:     coin.NewCoinp(50000, 0, "WEI"),
		Deadline:   remittance.AsUnixTime(now.Add(time.Hour)),
	}
	res, err := f.deliver(t, aliceCond, now, create)
	require.NoError(t, err)
	assert.Equal(t, commitment, res.Data)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "remit", res.Events[0].Type)

	// The flat fee accrued to the owner at creation.
	assert.True(t, coin.NewCoin(100, 0, "WEI").Equals(f.balance(t, f.owner)))

	redeem := &RedeemMsg{Recipient: bob, Secret: secret}
	res, err = f.deliver(t, bobCond, now, redeem)
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "redeem", res.Events[0].Type)

	// Bob holds the net amount in his vault balance.
	assert.True(t, coin.NewCoin(49900, 0, "WEI").Equals(f.balance(t, bob)))

	// The record is settled and remembers who collected.
	var rem Remittance
	require.NoError(t, NewBucket().One(f.db, commitment, &rem))
	assert.True(t, rem.Settled)
	assert.True(t, rem.Recipient.Equals(bob))
}

func TestCreateBelowThresholdIsFree(t *testing.T) {
	f := newLedgerFixture(t)
	now := time.Now().UTC()

	aliceCond := remittest.NewCondition()
	bob := remittest.NewCondition().Address()

	commitment, err := Commitment(testSecret(2), bob, LedgerAddress(testChainID))
	require.NoError(t, err)

	create := &CreateMsg{
		Source:     aliceCond.Address(),
		Recipient:  bob,
		Commitment: commitment,
		Amount:     coin.NewCoinp(9999, 0, "WEI"),
		Deadline:   remittance.AsUnixTime(now.Add(time.Hour)),
	}
	_, err = f.deliver(t, aliceCond, now, create)
	require.NoError(t, err)

	assert.True(t, f.balance(t, f.owner).IsZero(), "no fee below the threshold")

	var rem Remittance
	require.NoError(t, NewBucket().One(f.db, commitment, &rem))
	assert.True(t, coin.NewCoin(9999, 0, "WEI").Equals(*rem.Amount), "full amount locked")
}

func TestCreateFailures(t *testing.T) {
	f := newLedgerFixture(t)
	now := time.Now().UTC()

	aliceCond := remittest.NewCondition()
	alice := aliceCond.Address()
	bob := remittest.NewCondition().Address()

	commitment, err := Commitment(testSecret(3), bob, LedgerAddress(testChainID))
	require.NoError(t, err)

	valid := CreateMsg{
		Source:     alice,
		Recipient:  bob,
		Commitment: commitment,
		Amount:     coin.NewCoinp(20000, 0, "WEI"),
		Deadline:   remittance.AsUnixTime(now.Add(time.Hour)),
	}

	t.Run("not the source", func(t *testing.T) {
		msg := valid
		_, err := f.deliver(t, remittest.NewCondition(), now, &msg)
		assert.True(t, errors.ErrUnauthorized.Is(err))
	})

	t.Run("expired deadline", func(t *testing.T) {
		msg := valid
		msg.Deadline = remittance.AsUnixTime(now.Add(-time.Hour))
		_, err := f.deliver(t, aliceCond, now, &msg)
		assert.True(t, errors.ErrInput.Is(err))
	})

	t.Run("zero amount", func(t *testing.T) {
		msg := valid
		msg.Amount = coin.NewCoinp(0, 0, "WEI")
		_, err := f.deliver(t, aliceCond, now, &msg)
		assert.True(t, errors.ErrAmount.Is(err))
	})

	t.Run("duplicate commitment", func(t *testing.T) {
		msg := valid
		_, err := f.deliver(t, aliceCond, now, &msg)
		require.NoError(t, err)
		_, err = f.deliver(t, aliceCond, now, &msg)
		assert.True(t, errors.ErrDuplicate.Is(err))
	})
}

func TestRedeemFailuresAreIndistinguishable(t *testing.T) {
	f := newLedgerFixture(t)
	now := time.Now().UTC()

	aliceCond := remittest.NewCondition()
	bobCond := remittest.NewCondition()
	bob := bobCond.Address()
	carolCond := remittest.NewCondition()

	secret := testSecret(4)
	commitment, err := Commitment(secret, bob, LedgerAddress(testChainID))
	require.NoError(t, err)

	create := &CreateMsg{
		Source:     aliceCond.Address(),
		Recipient:  bob,
		Commitment: commitment,
		Amount:     coin.NewCoinp(20000, 0, "WEI"),
		Deadline:   remittance.AsUnixTime(now.Add(time.Hour)),
	}
	_, err = f.deliver(t, aliceCond, now, create)
	require.NoError(t, err)

	attempts := map[string]struct {
		caller remittance.Condition
		msg    *RedeemMsg
	}{
		"wrong secret": {
			caller: bobCond,
			msg:    &RedeemMsg{Recipient: bob, Secret: testSecret(9)},
		},
		"stolen secret, wrong caller": {
			caller: carolCond,
			msg:    &RedeemMsg{Recipient: carolCond.Address(), Secret: secret},
		},
		"no such remittance at all": {
			caller: bobCond,
			msg:    &RedeemMsg{Recipient: bob, Secret: testSecret(5)},
		},
	}
	for name, tc := range attempts {
		t.Run(name, func(t *testing.T) {
			_, err := f.deliver(t, tc.caller, now, tc.msg)
			require.Error(t, err)
			// Every failure must collapse into the same answer.
			assert.True(t, errors.ErrNotFound.Is(err), "unexpected error: %+v", err)
			assert.Equal(t, errRedeem().Error(), err.Error())
		})
	}

	// The real recipient with the real secret still collects.
	_, err = f.deliver(t, bobCond, now, &RedeemMsg{Recipient: bob, Secret: secret})
	require.NoError(t, err)

	// A second redeem of a settled remittance gets the same coarse answer.
	_, err = f.deliver(t, bobCond, now, &RedeemMsg{Recipient: bob, Secret: secret})
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestReclaimLifecycle(t *testing.T) {
	f := newLedgerFixture(t)
	now := time.Now().UTC().Round(time.Second)
	deadline := now.Add(time.Hour)

	aliceCond := remittest.NewCondition()
	alice := aliceCond.Address()
	bob := remittest.NewCondition().Address()

	secret := testSecret(6)
	commitment, err := Commitment(secret, bob, LedgerAddress(testChainID))
	require.NoError(t, err)

	create := &CreateMsg{
		Source:     alice,
		Recipient:  bob,
		Commitment: commitment,
		Amount:     coin.NewCoinp(20000, 0, "WEI"),
		Deadline:   remittance.AsUnixTime(deadline),
	}
	_, err = f.deliver(t, aliceCond, now, create)
	require.NoError(t, err)

	reclaim := &ReclaimMsg{Source: alice, Commitment: commitment}

	t.Run("before the deadline", func(t *testing.T) {
		_, err := f.deliver(t, aliceCond, now, reclaim)
		assert.True(t, errors.ErrState.Is(err))
	})

	t.Run("not the source", func(t *testing.T) {
		strangerCond := remittest.NewCondition()
		msg := &ReclaimMsg{Source: strangerCond.Address(), Commitment: commitment}
		_, err := f.deliver(t, strangerCond, deadline, msg)
		assert.True(t, errors.ErrUnauthorized.Is(err))
	})

	t.Run("exactly at the deadline", func(t *testing.T) {
		// Expiration is inclusive.
		res, err := f.deliver(t, aliceCond, deadline, reclaim)
		require.NoError(t, err)
		require.Len(t, res.Events, 1)
		assert.Equal(t, "reclaim", res.Events[0].Type)

		// The net amount returned to Alice's vault balance; the fee
		// stays with the owner.
		assert.True(t, coin.NewCoin(19900, 0, "WEI").Equals(f.balance(t, alice)))
		assert.True(t, coin.NewCoin(100, 0, "WEI").Equals(f.balance(t, f.owner)))
	})

	t.Run("second reclaim", func(t *testing.T) {
		_, err := f.deliver(t, aliceCond, deadline.Add(time.Hour), reclaim)
		assert.True(t, errors.ErrState.Is(err))
	})

	t.Run("redeem after reclaim", func(t *testing.T) {
		bobCond := remittest.NewCondition()
		msg := &RedeemMsg{Recipient: bobCond.Address(), Secret: secret}
		_, err := f.deliver(t, bobCond, deadline.Add(time.Hour), msg)
		assert.True(t, errors.ErrNotFound.Is(err))
	})
}

func TestReclaimUnknownCommitment(t *testing.T) {
	f := newLedgerFixture(t)
	now := time.Now().UTC()

	aliceCond := remittest.NewCondition()
	msg := &ReclaimMsg{Source: aliceCond.Address(), Commitment: testSecret(8)}
	_, err := f.deliver(t, aliceCond, now, msg)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestCheckAllocatesGas(t *testing.T) {
	f := newLedgerFixture(t)
	now := time.Now().UTC()

	aliceCond := remittest.NewCondition()
	bob := remittest.NewCondition().Address()
	commitment, err := Commitment(testSecret(7), bob, LedgerAddress(testChainID))
	require.NoError(t, err)

	msg := &CreateMsg{
		Source:     aliceCond.Address(),
		Recipient:  bob,
		Commitment: commitment,
		Amount:     coin.NewCoinp(500, 0, "WEI"),
		Deadline:   remittance.AsUnixTime(now.Add(time.Hour)),
	}
	res, err := f.handlers[pathCreate].Check(f.ctx(aliceCond, now), f.db, &remittest.Tx{Msg: msg})
	require.NoError(t, err)
	assert.Equal(t, createCost, res.GasAllocated)
}
