package orm

import (
	"reflect"

	"github.com/campuspay/ledger"
	"github.com/campuspay/ledger/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	ledger.Persistent
	Validate() error
	Copy() Model
}

// ModelBucket is implemented by buckets that operates on Models rather than
// raw bytes.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrInvalidType
	// is returned.
	One(db ledger.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given key exists, ErrNotFound
	// otherwise.
	Has(db ledger.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database.
	Put(db ledger.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db ledger.KVStore, key []byte) error

	// Register registers the bucket for queries under "/" + name.
	Register(name string, r ledger.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance storing models of the
// same type as proto under the given bucket name.
func NewModelBucket(name string, proto Model) ModelBucket {
	return &modelBucket{
		b:     NewBucket(name, proto),
		model: reflect.TypeOf(proto),
	}
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db ledger.ReadOnlyKVStore, key []byte, dest Model) error {
	res, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if res == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}

	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrInvalidType, "%T cannot be represented as %T", res, dest)
	}

	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) Has(db ledger.ReadOnlyKVStore, key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrNotFound, "nil key")
	}
	if !mb.b.Has(db, key) {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) Put(db ledger.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot store %T in %s bucket", m, mb.b.Name())
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	if err := mb.b.Save(db, key, m); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db ledger.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	mb.b.Delete(db, key)
	return nil
}

func (mb *modelBucket) Register(name string, r ledger.QueryRouter) {
	mb.b.Register(name, r)
}
