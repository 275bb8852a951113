package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/remittance/coin"
	"github.com/iov-one/remittance/errors"
	"github.com/iov-one/remittance/remittest"
	"github.com/iov-one/remittance/store"
)

func TestControllerCreditAndBalance(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	alice := remittest.NewCondition().Address()

	// Missing balance reads as nil, not as an error.
	held, err := ctrl.Balance(db, alice)
	require.NoError(t, err)
	assert.Nil(t, held)

	require.NoError(t, ctrl.Credit(db, alice, coin.NewCoin(900, 0, "WEI")))
	require.NoError(t, ctrl.Credit(db, alice, coin.NewCoin(100, 0, "WEI")))

	held, err = ctrl.Balance(db, alice)
	require.NoError(t, err)
	require.NotNil(t, held)
	assert.True(t, coin.NewCoin(1000, 0, "WEI").Equals(*held))
}

func TestControllerCreditInvalid(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	alice := remittest.NewCondition().Address()

	err := ctrl.Credit(db, alice, coin.NewCoin(0, 0, "WEI"))
	assert.True(t, errors.ErrAmount.Is(err))

	require.NoError(t, ctrl.Credit(db, alice, coin.NewCoin(1, 0, "WEI")))
	err = ctrl.Credit(db, alice, coin.NewCoin(1, 0, "ETH"))
	assert.True(t, errors.ErrCurrency.Is(err))

	require.NoError(t, ctrl.Credit(db, alice, coin.NewCoin(coin.MaxInt-1, 0, "WEI")))
	err = ctrl.Credit(db, alice, coin.NewCoin(coin.MaxInt, 0, "WEI"))
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestControllerDebit(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	alice := remittest.NewCondition().Address()

	require.NoError(t, ctrl.Credit(db, alice, coin.NewCoin(500, 0, "WEI")))

	cases := map[string]struct {
		amount  coin.Coin
		wantErr *errors.Error
	}{
		"partial debit":      {amount: coin.NewCoin(100, 0, "WEI")},
		"zero debit":         {amount: coin.NewCoin(0, 0, "WEI"), wantErr: errors.ErrAmount},
		"negative debit":     {amount: coin.NewCoin(-1, 0, "WEI"), wantErr: errors.ErrAmount},
		"over the balance":   {amount: coin.NewCoin(501, 0, "WEI"), wantErr: errors.ErrAmount},
		"another balance":    {amount: coin.NewCoin(1, 0, "ETH"), wantErr: errors.ErrAmount},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cache := db.CacheWrap()
			err := ctrl.Debit(cache, alice, tc.amount)
			if tc.wantErr == nil {
				require.NoError(t, err)
				held, err := ctrl.Balance(cache, alice)
				require.NoError(t, err)
				assert.True(t, coin.NewCoin(400, 0, "WEI").Equals(*held))
			} else {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			}
			cache.Discard()
		})
	}
}

func TestControllerDebitToZeroKeepsBalance(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	alice := remittest.NewCondition().Address()

	require.NoError(t, ctrl.Credit(db, alice, coin.NewCoin(5, 0, "WEI")))
	require.NoError(t, ctrl.Debit(db, alice, coin.NewCoin(5, 0, "WEI")))

	held, err := ctrl.Balance(db, alice)
	require.NoError(t, err)
	require.NotNil(t, held)
	assert.True(t, held.IsZero())
}
