// Package memo implements a hash memo table that assigns dense, insertion-
// ordered indices to distinct fixed-width byte keys. It backs dictionary
// encoding: each distinct element value receives one index, and the arena of
// inserted keys becomes the dictionary in first-appearance order.
package memo

import "github.com/cespare/xxhash/v2"

const (
	initialSlots = 64 // power of two
	maxLoadNum   = 3  // grow when size > slots * 3/4
	maxLoadDen   = 4
)

// Table maps fixed-width byte keys to dense int32 indices. Open addressing
// with linear probing; keys are hashed with xxhash. Not safe for concurrent
// use.
type Table struct {
	width  int
	slots  []int32 // index+1 per slot, 0 marks an empty slot
	mask   uint64
	keys   []byte   // arena of inserted keys, key i at [i*width, (i+1)*width)
	hashes []uint64 // hash of key i, kept to make rehashing cheap
}

// NewTable creates a memo table for keys of the given byte width.
func NewTable(width int) *Table {
	return &Table{
		width: width,
		slots: make([]int32, initialSlots),
		mask:  initialSlots - 1,
	}
}

// Len returns the number of distinct keys inserted so far.
func (t *Table) Len() int {
	return len(t.hashes)
}

// Keys returns the arena of distinct keys in insertion order. The slice is
// owned by the table and valid until the next GetOrInsert.
func (t *Table) Keys() []byte {
	return t.keys
}

// Key returns the key stored at the given index.
func (t *Table) Key(index int32) []byte {
	start := int(index) * t.width
	return t.keys[start : start+t.width]
}

// GetOrInsert returns the index assigned to key, inserting it if it has not
// been seen before. found reports whether the key was already present. The
// key must be exactly the table's width.
func (t *Table) GetOrInsert(key []byte) (index int32, found bool) {
	h := xxhash.Sum64(key)

	slot := t.findSlot(h, key)
	if t.slots[slot] != 0 {
		return t.slots[slot] - 1, true
	}

	index = int32(len(t.hashes))
	t.slots[slot] = index + 1
	t.keys = append(t.keys, key...)
	t.hashes = append(t.hashes, h)

	if len(t.hashes)*maxLoadDen > len(t.slots)*maxLoadNum {
		t.grow()
	}

	return index, false
}

// findSlot probes from the hash position to the first slot that is empty or
// holds an equal key.
func (t *Table) findSlot(h uint64, key []byte) uint64 {
	slot := h & t.mask
	for t.slots[slot] != 0 {
		idx := t.slots[slot] - 1
		if t.hashes[idx] == h && t.keyEqual(idx, key) {
			return slot
		}
		slot = (slot + 1) & t.mask
	}

	return slot
}

func (t *Table) keyEqual(index int32, key []byte) bool {
	stored := t.Key(index)
	for i := range key {
		if stored[i] != key[i] {
			return false
		}
	}

	return true
}

func (t *Table) grow() {
	newSlots := make([]int32, len(t.slots)*2)
	newMask := uint64(len(newSlots) - 1)

	for idx, h := range t.hashes {
		slot := h & newMask
		for newSlots[slot] != 0 {
			slot = (slot + 1) & newMask
		}
		newSlots[slot] = int32(idx) + 1
	}

	t.slots = newSlots
	t.mask = newMask
}
