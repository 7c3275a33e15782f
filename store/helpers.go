package store

// SliceIterator iterates over models that are already loaded and sorted.
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Valid() bool {
	return s.idx < len(s.data)
}

// Next panics when the iterator is no longer valid.
func (s *SliceIterator) Next() {
	s.current()
	s.idx++
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) Close() {
	s.data = nil
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("iterator used past the end")
	}
	return s.data[s.idx]
}

// EmptyKVStore holds no data and ignores writes. It is the bottom layer of
// a MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) []byte { return nil }
func (EmptyKVStore) Has(key []byte) bool { return false }
func (EmptyKVStore) Set(key, value []byte) {}
func (EmptyKVStore) Delete(key []byte) {}
func (EmptyKVStore) Iterator(start, end []byte) Iterator { return NewSliceIterator(nil) }
func (EmptyKVStore) ReverseIterator(start, end []byte) Iterator { return NewSliceIterator(nil) }

// Op is a single pending write. A nil value marks a delete.
type Op struct {
	key   []byte
	value []byte
}

// SetOp returns an operation that stores value under key.
func SetOp(key, value []byte) Op {
	if value == nil {
		value = []byte{}
	}
	return Op{key: key, value: value}
}

// DelOp returns an operation that removes key.
func DelOp(key []byte) Op {
	return Op{key: key}
}

// Apply performs the operation on the given store.
func (o Op) Apply(out SetDeleter) {
	if o.value == nil {
		out.Delete(o.key)
		return
	}
	out.Set(o.key, o.value)
}

// NonAtomicBatch queues writes and replays them in order on Write. It is
// used on top of stores that have no native batch, such as the in memory
// store.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch writing to out.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) {
	b.ops = append(b.ops, SetOp(key, value))
}

func (b *NonAtomicBatch) Delete(key []byte) {
	b.ops = append(b.ops, DelOp(key))
}

// Write applies all queued operations and empties the batch.
func (b *NonAtomicBatch) Write() {
	for _, op := range b.ops {
		op.Apply(b.out)
	}
	b.ops = nil
}

func (b *NonAtomicBatch) discard() {
	b.ops = nil
}

type discarder interface {
	discard()
}
