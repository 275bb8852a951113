package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/remittance/errors"
	"github.com/iov-one/remittance/store"
)

func TestModelBucketPutOne(t *testing.T) {
	db := store.MemStore()
	mb := NewModelBucket("cntr", &counter{})

	require.NoError(t, mb.Put(db, []byte("one"), &counter{Count: 7}))

	var dest counter
	require.NoError(t, mb.One(db, []byte("one"), &dest))
	assert.Equal(t, int64(7), dest.Count)
}

func TestModelBucketOneMissing(t *testing.T) {
	db := store.MemStore()
	mb := NewModelBucket("cntr", &counter{})

	var dest counter
	err := mb.One(db, []byte("nope"), &dest)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestModelBucketOneWrongType(t *testing.T) {
	db := store.MemStore()
	mb := NewModelBucket("cntr", &counter{})
	require.NoError(t, mb.Put(db, []byte("one"), &counter{Count: 7}))

	var dest gauge
	err := mb.One(db, []byte("one"), &dest)
	assert.True(t, errors.ErrType.Is(err))
}

func TestModelBucketPutValidates(t *testing.T) {
	db := store.MemStore()
	mb := NewModelBucket("cntr", &counter{})

	err := mb.Put(db, []byte("one"), &counter{Count: -1})
	assert.True(t, errors.ErrState.Is(err))

	err = mb.Put(db, nil, &counter{Count: 1})
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestModelBucketHasDelete(t *testing.T) {
	db := store.MemStore()
	mb := NewModelBucket("cntr", &counter{})

	ok, err := mb.Has(db, []byte("one"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mb.Put(db, []byte("one"), &counter{Count: 1}))

	ok, err = mb.Has(db, []byte("one"))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, mb.Delete(db, []byte("one")))

	err = mb.Delete(db, []byte("one"))
	assert.True(t, errors.ErrNotFound.Is(err))
}

// gauge is a second model type, to test type mismatch detection.
type gauge struct {
	counter
}

func (g *gauge) Copy() CloneableData {
	return &gauge{counter: counter{Count: g.Count}}
}
