/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* Keys are stored as "<name>:<key>" so buckets never collide.
* Easy queries for one and iteration by prefix.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a prefixed subspace of the DB.
// proto defines the Model type of all elements stored in it.
type Bucket struct {
	name   string
	prefix []byte
	proto  Model
}

var _ ledger.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data
func NewBucket(name string, proto Model) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name used to prefix all keys.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this Bucket for queries.
// You can define a name here for queries, which is
// different than the bucket name used to prefix the data
func (b Bucket) Register(name string, r ledger.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter
func (b Bucket) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	switch mod {
	case ledger.KeyQueryMod:
		key := b.DBKey(data)
		value := db.Get(key)
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []ledger.Model{{Key: key, Value: value}}, nil
	case ledger.PrefixQueryMod:
		prefix := b.DBKey(data)
		return queryPrefix(db, prefix), nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod %q", mod)
	}
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get loads one element. Returns nil model if the key is not found.
func (b Bucket) Get(db ledger.ReadOnlyKVStore, key []byte) (Model, error) {
	bz := db.Get(b.DBKey(key))
	if bz == nil {
		return nil, nil
	}
	return b.Parse(bz)
}

// Parse reconstructs the model stored under a key from its raw value.
func (b Bucket) Parse(value []byte) (Model, error) {
	obj := b.proto.Copy()
	if err := obj.Unmarshal(value); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal %T", obj)
	}
	return obj, nil
}

// Save writes a model, it must be of the same type as proto
func (b Bucket) Save(db ledger.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return err
	}
	bz, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", m)
	}
	// A model holding only default values encodes to no bytes. It must
	// still be stored as present.
	if bz == nil {
		bz = []byte{}
	}
	db.Set(b.DBKey(key), bz)
	return nil
}

// Delete will remove the value at a key
func (b Bucket) Delete(db ledger.KVStore, key []byte) {
	db.Delete(b.DBKey(key))
}

// Has returns true if a value is stored under the key.
func (b Bucket) Has(db ledger.ReadOnlyKVStore, key []byte) bool {
	return db.Has(b.DBKey(key))
}
