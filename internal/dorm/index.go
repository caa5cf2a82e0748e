package dorm

// Index is an insertion-ordered collection with O(1) lookup by key.
// Duplicate keys loaded from storage are kept in place; lookups resolve to
// the first occurrence.
type Index[K comparable, V any] struct {
	keyOf func(V) K
	items []V
	pos   map[K]int
}

// NewIndex builds an index over items, preserving their order
func NewIndex[K comparable, V any](keyOf func(V) K, items []V) *Index[K, V] {
	idx := &Index[K, V]{
		keyOf: keyOf,
		items: append([]V(nil), items...),
	}
	idx.rebuild()
	return idx
}

func (idx *Index[K, V]) rebuild() {
	idx.pos = make(map[K]int, len(idx.items))
	for i, item := range idx.items {
		k := idx.keyOf(item)
		if _, exists := idx.pos[k]; !exists {
			idx.pos[k] = i
		}
	}
}

// Get returns the first value stored under key
func (idx *Index[K, V]) Get(key K) (V, bool) {
	i, ok := idx.pos[key]
	if !ok {
		var zero V
		return zero, false
	}
	return idx.items[i], true
}

// Has reports whether key is present
func (idx *Index[K, V]) Has(key K) bool {
	_, ok := idx.pos[key]
	return ok
}

// Put replaces the first value with the same key, or appends a new one.
// It reports whether an existing value was replaced.
func (idx *Index[K, V]) Put(v V) bool {
	k := idx.keyOf(v)
	if i, ok := idx.pos[k]; ok {
		idx.items[i] = v
		return true
	}
	idx.pos[k] = len(idx.items)
	idx.items = append(idx.items, v)
	return false
}

// Update applies fn to the first value stored under key
func (idx *Index[K, V]) Update(key K, fn func(*V)) bool {
	i, ok := idx.pos[key]
	if !ok {
		return false
	}
	fn(&idx.items[i])
	if k := idx.keyOf(idx.items[i]); k != key {
		idx.rebuild()
	}
	return true
}

// Delete removes every value stored under key
func (idx *Index[K, V]) Delete(key K) bool {
	if _, ok := idx.pos[key]; !ok {
		return false
	}
	kept := idx.items[:0]
	for _, item := range idx.items {
		if idx.keyOf(item) != key {
			kept = append(kept, item)
		}
	}
	idx.items = kept
	idx.rebuild()
	return true
}

// Filter returns the values matching fn, in order
func (idx *Index[K, V]) Filter(fn func(V) bool) []V {
	var out []V
	for _, item := range idx.items {
		if fn(item) {
			out = append(out, item)
		}
	}
	return out
}

// Values returns a copy of all values in order
func (idx *Index[K, V]) Values() []V {
	return append([]V(nil), idx.items...)
}

// Len returns the number of stored values
func (idx *Index[K, V]) Len() int {
	return len(idx.items)
}

// Index constructors for each keyed collection.

func RoomIndex(rooms []Room) *Index[string, Room] {
	return NewIndex(func(r Room) string { return r.RoomNo }, rooms)
}

func TenantIndex(tenants []Tenant) *Index[string, Tenant] {
	return NewIndex(func(t Tenant) string { return t.TenantID }, tenants)
}

func ContractIndex(contracts []Contract) *Index[string, Contract] {
	return NewIndex(func(c Contract) string { return c.ContractID }, contracts)
}

func UtilityIndex(utilities []Utility) *Index[UtilityKey, Utility] {
	return NewIndex(Utility.Key, utilities)
}

func InvoiceIndex(invoices []Invoice) *Index[string, Invoice] {
	return NewIndex(func(i Invoice) string { return i.InvoiceID }, invoices)
}

func AdminIndex(admins []Admin) *Index[string, Admin] {
	return NewIndex(func(a Admin) string { return a.Username }, admins)
}
