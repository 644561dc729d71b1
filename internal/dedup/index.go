// Package dedup provides the seen-hash index used to drop duplicate
// records during a merge. The index is an explicit value owned by the
// caller, so independent merges in one process never share state.
package dedup

// Index records content hashes and answers whether a hash was seen
// before. Add returns true the first time a hash is inserted and false
// for every later insert of the same hash.
type Index interface {
	Add(hash string) (bool, error)
	Close() error
}

// Memory is the default in-memory index.
type Memory struct {
	seen map[string]struct{}
}

// NewMemory creates an empty in-memory index.
func NewMemory() *Memory {
	return &Memory{seen: make(map[string]struct{})}
}

// Add inserts a hash, reporting whether it was new.
func (m *Memory) Add(hash string) (bool, error) {
	if _, ok := m.seen[hash]; ok {
		return false, nil
	}
	m.seen[hash] = struct{}{}
	return true, nil
}

// Len returns the number of distinct hashes seen.
func (m *Memory) Len() int {
	return len(m.seen)
}

// Close is a no-op for the in-memory index.
func (m *Memory) Close() error {
	return nil
}
