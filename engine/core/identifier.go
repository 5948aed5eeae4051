package core

import "fmt"

// Handle is an opaque token addressing an entry of a HandleTable. The low 32
// bits hold the slot index plus one, the high 32 bits the slot generation, so
// the zero value never refers to a live entry.
type Handle uint64

const InvalidHandle Handle = 0

func makeHandle(index, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index+1))
}

func (h Handle) index() (uint32, bool) {
	low := uint32(h)
	if low == 0 {
		return 0, false
	}
	return low - 1, true
}

func (h Handle) generation() uint32 {
	return uint32(h >> 32)
}

type handleSlot[T any] struct {
	owner      *T
	generation uint32
}

// HandleTable owns heap allocated values and hands out handles to them.
// Released slots are reused; their generation is bumped so that handles to
// the previous owner are rejected.
type HandleTable[T any] struct {
	slots []handleSlot[T]
	live  int
}

// Acquire stores owner in the first free slot and returns its handle.
func (t *HandleTable[T]) Acquire(owner *T) Handle {
	length := uint32(len(t.slots))
	for i := uint32(0); i < length; i++ {
		// Existing free spot. Take it.
		if t.slots[i].owner == nil {
			t.slots[i].owner = owner
			t.live++
			return makeHandle(i, t.slots[i].generation)
		}
	}

	// No existing free slots, push a new one.
	t.slots = append(t.slots, handleSlot[T]{owner: owner})
	t.live++
	return makeHandle(length, 0)
}

// Get returns the owner addressed by h, or false when h is invalid or stale.
func (t *HandleTable[T]) Get(h Handle) (*T, bool) {
	i, ok := h.index()
	if !ok || i >= uint32(len(t.slots)) {
		return nil, false
	}
	slot := t.slots[i]
	if slot.owner == nil || slot.generation != h.generation() {
		return nil, false
	}
	return slot.owner, true
}

// Release frees the slot addressed by h.
func (t *HandleTable[T]) Release(h Handle) error {
	i, ok := h.index()
	if !ok {
		return fmt.Errorf("handle table: invalid handle %#x. Nothing was done", uint64(h))
	}
	if i >= uint32(len(t.slots)) {
		return fmt.Errorf("handle table: handle %#x out of range (max=%d). Nothing was done", uint64(h), len(t.slots))
	}
	slot := &t.slots[i]
	if slot.owner == nil || slot.generation != h.generation() {
		return fmt.Errorf("handle table: handle %#x is stale. Nothing was done", uint64(h))
	}
	slot.owner = nil
	slot.generation++
	t.live--
	return nil
}

// Len reports the number of live entries.
func (t *HandleTable[T]) Len() int {
	return t.live
}

// Each calls fn for every live entry in slot order.
func (t *HandleTable[T]) Each(fn func(h Handle, owner *T)) {
	for i, slot := range t.slots {
		if slot.owner != nil {
			fn(makeHandle(uint32(i), slot.generation), slot.owner)
		}
	}
}
