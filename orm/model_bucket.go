package orm

import (
	"reflect"

	"github.com/iov-one/remittance"
	"github.com/iov-one/remittance/errors"
)

// ModelBucket is implemented by buckets that operate on Models rather than
// Objects.
type ModelBucket interface {
	// One queries the database for a single model instance. Lookup is
	// done by the primary key. The result is loaded into the given
	// destination model.
	// This method returns ErrNotFound if the entity does not exist in
	// the database.
	// If the given model type cannot be used to contain the stored
	// entity, ErrType is returned.
	One(db remittance.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns whether an entity with the given primary key exists,
	// without deserializing it.
	Has(db remittance.ReadOnlyKVStore, key []byte) (bool, error)

	// Put saves given model in the database under the given key.
	Put(db remittance.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db remittance.KVStore, key []byte) error

	// Register registers this bucket for queries under the given name.
	Register(name string, r remittance.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance backed by a Bucket with the
// given name, storing entities of the proto type.
func NewModelBucket(name string, proto Model) ModelBucket {
	return &modelBucket{
		b: NewBucket(name, NewSimpleObj(nil, proto)),
	}
}

type modelBucket struct {
	b Bucket
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db remittance.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	res := obj.Value()

	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", res, dest)
	}

	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) Has(db remittance.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(mb.b.DBKey(key))
}

func (mb *modelBucket) Put(db remittance.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	obj := NewSimpleObj(key, m)
	if err := mb.b.Save(db, obj); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db remittance.KVStore, key []byte) error {
	has, err := mb.Has(db, key)
	if err != nil {
		return err
	}
	if !has {
		return errors.Wrapf(errors.ErrNotFound, "no entity under key %X", key)
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Register(name string, r remittance.QueryRouter) {
	mb.b.Register(name, r)
}
