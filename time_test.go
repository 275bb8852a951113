package remittance

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnixTimeUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantErr  bool
		wantTime UnixTime
	}{
		"number":        {raw: `1234567`, wantTime: 1234567},
		"zero":          {raw: `0`, wantTime: 0},
		"negative":      {raw: `-1`, wantErr: true},
		"rfc3339":       {raw: `"2019-04-04T11:35:10Z"`, wantTime: 1554377710},
		"invalid":       {raw: `"not a time"`, wantErr: true},
		"empty string":  {raw: `""`, wantErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTime, got)
		})
	}
}

func TestUnixTimeAddClamps(t *testing.T) {
	assert.Equal(t, UnixTime(10), UnixTime(4).Add(6*time.Second))
	assert.Equal(t, UnixTime(0), UnixTime(4).Add(-6*time.Second).Add(-math.MaxInt64))
	assert.Equal(t, UnixTime(math.MaxInt64), UnixTime(math.MaxInt64).Add(time.Hour))
	// Sub-second precision is dropped.
	assert.Equal(t, UnixTime(4), UnixTime(4).Add(900*time.Millisecond))
}

func TestIsExpired(t *testing.T) {
	now := time.Now()
	ctx := WithBlockTime(context.Background(), now)

	assert.True(t, IsExpired(ctx, AsUnixTime(now.Add(-time.Minute))))
	// Expiration is inclusive of "now".
	assert.True(t, IsExpired(ctx, AsUnixTime(now)))
	assert.False(t, IsExpired(ctx, AsUnixTime(now.Add(time.Minute))))
}

func TestIsExpiredRequiresBlockTime(t *testing.T) {
	assert.Panics(t, func() {
		IsExpired(context.Background(), AsUnixTime(time.Now()))
	})
}

func TestUnixDurationUnmarshalJSON(t *testing.T) {
	var d UnixDuration
	require.NoError(t, json.Unmarshal([]byte(`600`), &d))
	assert.Equal(t, 10*time.Minute, d.Duration())

	require.NoError(t, json.Unmarshal([]byte(`"2h"`), &d))
	assert.Equal(t, 2*time.Hour, d.Duration())

	assert.Error(t, json.Unmarshal([]byte(`"never"`), &d))
}
