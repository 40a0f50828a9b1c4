package shutter

import (
	"sync"

	"github.com/zeebo/blake3"
)

// InstanceTable is a content-addressed index of motion blocks. Exporters use
// it to emit one shared definition for every node whose resolved transform
// samples are identical. It is passed explicitly to whoever needs it; nothing
// in this package keeps one globally.
type InstanceTable struct {
	mu     sync.Mutex
	byHash map[[32]byte]string
}

// NewInstanceTable returns an empty table.
func NewInstanceTable() *InstanceTable {
	return &InstanceTable{byHash: make(map[[32]byte]string)}
}

// Intern records path as the owner of b's content if the content is new.
// It returns the owning path and whether b duplicated earlier content.
func (t *InstanceTable) Intern(path string, b MotionBlock) (string, bool) {
	sum, ok := blockDigest(b)
	if !ok {
		return path, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if owner, found := t.byHash[sum]; found {
		return owner, true
	}
	t.byHash[sum] = path
	return path, false
}

// Len returns the number of distinct blocks recorded.
func (t *InstanceTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byHash)
}

// blockDigest hashes the deterministic CBOR form of b.
func blockDigest(b MotionBlock) ([32]byte, bool) {
	data, err := MarshalCBOR(b)
	if err != nil {
		return [32]byte{}, false
	}
	return blake3.Sum256(data), true
}
