package store

import "github.com/iov-one/remittance"

// Alias the storage contracts from the root package for shorter names
// everywhere in this package.

type ReadOnlyKVStore = remittance.ReadOnlyKVStore
type KVStore = remittance.KVStore
type SetDeleter = remittance.SetDeleter
type Batch = remittance.Batch
type Iterator = remittance.Iterator
type CacheableKVStore = remittance.CacheableKVStore
type KVCacheWrap = remittance.KVCacheWrap
type Model = remittance.Model
