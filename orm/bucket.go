package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/remittance"
	"github.com/iov-one/remittance/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores data of one type under a common
// key prefix.
//
// This is a generic building block that should generally be embedded in a
// type-safe wrapper to ensure all data is the same type.
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

var _ remittance.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this bucket with the query router. You can define a
// name here for queries, which may differ from the bucket name used to
// prefix the data.
func (b Bucket) Register(name string, r remittance.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.RegisterQuery("/"+name, b)
}

// Query handles queries from the QueryRouter.
func (b Bucket) Query(db remittance.ReadOnlyKVStore, mod string, data []byte) ([]remittance.Model, error) {
	switch mod {
	case remittance.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []remittance.Model{{Key: key, Value: value}}, nil
	case remittance.PrefixQueryMod:
		prefix := b.DBKey(data)
		return queryPrefix(db, prefix)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %s", mod)
	}
}

// DBKey is the full key we store in the db, including prefix. We copy into a
// new array rather than use append, as we don't want consecutive calls to
// overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element.
func (b Bucket) Get(db remittance.ReadOnlyKVStore, key []byte) (Object, error) {
	dbkey := b.DBKey(key)
	bz, err := db.Get(dbkey)
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Parse takes a key and value data and reconstructs the data this bucket
// would return. Used internally as part of Get, exposed as a test helper.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	obj.SetKey(key)
	return obj, nil
}

// Save will write a model, it must be of the same type as proto.
func (b Bucket) Save(db remittance.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return err
	}

	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete will remove the value at a key.
func (b Bucket) Delete(db remittance.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// queryPrefix returns all key-value pairs under the given db key prefix.
func queryPrefix(db remittance.ReadOnlyKVStore, prefix []byte) ([]remittance.Model, error) {
	iter, err := db.Iterator(prefix, prefixRangeEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var res []remittance.Model
	for iter.Valid() {
		res = append(res, remittance.Model{
			Key:   append([]byte(nil), iter.Key()...),
			Value: append([]byte(nil), iter.Value()...),
		})
		if err := iter.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// prefixRangeEnd returns the lowest key that is above all keys carrying the
// given prefix, or nil when the prefix is all 0xff.
func prefixRangeEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
