package remittance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionParse(t *testing.T) {
	c := NewCondition("remit", "ledger", []byte("chain-1"))

	ext, typ, data, err := c.Parse()
	require.NoError(t, err)
	assert.Equal(t, "remit", ext)
	assert.Equal(t, "ledger", typ)
	assert.Equal(t, []byte("chain-1"), data)
	require.NoError(t, c.Validate())
}

func TestConditionValidate(t *testing.T) {
	cases := map[string]struct {
		cond  Condition
		valid bool
	}{
		"valid":               {cond: NewCondition("sigs", "ed25519", []byte{1, 2, 3}), valid: true},
		"binary data section": {cond: NewCondition("test", "seq", []byte{0, 10, 20}), valid: true},
		"empty":               {cond: Condition{}},
		"no separators":       {cond: Condition("foobar")},
		"extension too short": {cond: NewCondition("ab", "ed25519", []byte{1})},
		"no data":             {cond: Condition("sigs/ed25519/")},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.cond.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConditionAddress(t *testing.T) {
	a := NewCondition("remit", "ledger", []byte("one")).Address()
	b := NewCondition("remit", "ledger", []byte("two")).Address()

	require.NoError(t, a.Validate())
	assert.Len(t, []byte(a), AddressLength)
	assert.False(t, a.Equals(b))

	// Address derivation must be stable.
	assert.True(t, a.Equals(NewCondition("remit", "ledger", []byte("one")).Address()))
}

func TestAddressJSONRoundtrip(t *testing.T) {
	addr := NewCondition("test", "seq", []byte{1}).Address()

	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, addr.Equals(got))
}

func TestAddressUnmarshalJSONFormats(t *testing.T) {
	cond := NewCondition("sigs", "ed25519", []byte("somekey"))
	addr := cond.Address()

	cases := map[string]string{
		"default hex": `"` + addr.String() + `"`,
		"hex":         `"hex:` + addr.String() + `"`,
		"cond":        `"cond:sigs/ed25519/736F6D656B6579"`,
	}
	for name, enc := range cases {
		t.Run(name, func(t *testing.T) {
			var got Address
			require.NoError(t, json.Unmarshal([]byte(enc), &got))
			assert.True(t, addr.Equals(got), "got %s", got)
		})
	}

	t.Run("bech32 roundtrip", func(t *testing.T) {
		enc, err := addr.Bech32("iov")
		require.NoError(t, err)
		var got Address
		require.NoError(t, json.Unmarshal([]byte(`"bech32:`+enc+`"`), &got))
		assert.True(t, addr.Equals(got))
	})

	t.Run("unknown format", func(t *testing.T) {
		var got Address
		assert.Error(t, json.Unmarshal([]byte(`"base64:AAAA"`), &got))
	})

	t.Run("zero value", func(t *testing.T) {
		var got Address
		require.NoError(t, json.Unmarshal([]byte(`""`), &got))
		assert.True(t, got.IsEmpty())
	})
}

func TestParseAddress(t *testing.T) {
	addr := NewCondition("test", "seq", []byte{7}).Address()

	got, err := ParseAddress(addr.String())
	require.NoError(t, err)
	assert.True(t, addr.Equals(got))

	_, err = ParseAddress("deadbeef")
	assert.Error(t, err, "wrong length must be rejected")
}
