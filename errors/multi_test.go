package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	assert.Nil(t, Append(nil, nil))

	single := Append(nil, ErrState)
	assert.True(t, ErrState.Is(single))

	multi := Append(ErrState, ErrAmount)
	require.Error(t, multi)
	// The first error dominates the classification.
	assert.True(t, ErrState.Is(multi))
	assert.False(t, ErrAmount.Is(multi))

	m, ok := multi.(multiError)
	require.True(t, ok)
	assert.True(t, m.Contains(ErrState))
	assert.True(t, m.Contains(ErrAmount))
	assert.False(t, m.Contains(ErrNotFound))
}

func TestAppendFlattens(t *testing.T) {
	multi := Append(Append(ErrState, ErrAmount), ErrInput)
	m, ok := multi.(multiError)
	require.True(t, ok)
	require.Len(t, m, 3)
	assert.Equal(t, "invalid state; invalid amount; invalid input", m.Error())
}
