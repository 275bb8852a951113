package remittance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainID(t *testing.T) {
	ctx := WithChainID(context.Background(), "remit-chain-1")
	assert.Equal(t, "remit-chain-1", GetChainID(ctx))

	assert.Panics(t, func() { GetChainID(context.Background()) })
	assert.Panics(t, func() { WithChainID(ctx, "remit-chain-2") }, "no overwriting")
	assert.Panics(t, func() { WithChainID(context.Background(), "no") }, "too short")
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"remit-local": true,
		"chain_01":    true,
		"ab":          false,
		"":            false,
		"white space": false,
		"much-too-long-chain-id-for-anyone": false,
	}
	for chainID, want := range cases {
		assert.Equal(t, want, IsValidChainID(chainID), chainID)
	}
}

func TestBlockTime(t *testing.T) {
	now := time.Now().UTC()
	ctx := WithBlockTime(context.Background(), now)

	got, err := BlockTime(ctx)
	require.NoError(t, err)
	assert.True(t, now.Equal(got))

	_, err = BlockTime(context.Background())
	assert.Error(t, err)
}
