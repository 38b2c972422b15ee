package ecs

// Slots is a dense arena of nullable items addressed by Handle. slot i is
// either nil or an item whose handle has Index() == i. Freed slots are reused
// lowest-index first, each time under a fresh uid.
type Slots[T any] struct {
	items   []*T
	handles []Handle
	nextUID uint32
	maxUID  uint32
	live    int
}

// NewSlots creates an arena whose uid counter stops at maxUID. Values of
// zero or above MaxUID are clamped to MaxUID. uids start at 1.
func NewSlots[T any](maxUID uint32) *Slots[T] {
	if maxUID == 0 || maxUID > MaxUID {
		maxUID = MaxUID
	}
	return &Slots[T]{
		items:   make([]*T, 0, 64),
		handles: make([]Handle, 0, 64),
		nextUID: 1,
		maxUID:  maxUID,
	}
}

// Alloc stores item and returns its handle. It returns false once the uid
// counter is exhausted or every addressable index is occupied.
func (s *Slots[T]) Alloc(item *T) (Handle, bool) {
	if s.nextUID >= s.maxUID {
		return InvalidHandle, false
	}
	idx := -1
	for i, it := range s.items {
		if it == nil {
			idx = i
			break
		}
	}
	if idx < 0 {
		if len(s.items) > maxIndex {
			return InvalidHandle, false
		}
		idx = len(s.items)
		s.items = append(s.items, nil)
		s.handles = append(s.handles, InvalidHandle)
	}
	h := NewHandle(s.nextUID, uint32(idx))
	s.nextUID++
	s.items[idx] = item
	s.handles[idx] = h
	s.live++
	return h, true
}

// Resolve returns the item h refers to, or nil when h is invalid, out of
// range, freed, or belongs to a previous occupant of the slot.
func (s *Slots[T]) Resolve(h Handle) *T {
	if h == InvalidHandle {
		return nil
	}
	idx := int(h.Index())
	if idx >= len(s.items) {
		return nil
	}
	if s.items[idx] == nil || s.handles[idx] != h {
		return nil
	}
	return s.items[idx]
}

// Free nulls the slot h refers to. Stale handles are ignored.
func (s *Slots[T]) Free(h Handle) bool {
	if s.Resolve(h) == nil {
		return false
	}
	idx := h.Index()
	s.items[idx] = nil
	s.handles[idx] = InvalidHandle
	s.live--
	return true
}

// Len is the number of slots, occupied or not.
func (s *Slots[T]) Len() int { return len(s.items) }

// Live is the number of occupied slots.
func (s *Slots[T]) Live() int { return s.live }

// NextUID is the uid the next successful Alloc will use.
func (s *Slots[T]) NextUID() uint32 { return s.nextUID }

// At returns the item in slot i and its handle; nil and InvalidHandle for an
// empty or out-of-range slot.
func (s *Slots[T]) At(i int) (*T, Handle) {
	if i < 0 || i >= len(s.items) || s.items[i] == nil {
		return nil, InvalidHandle
	}
	return s.items[i], s.handles[i]
}

// Each calls fn for every occupied slot in index order. Slots appended during
// iteration are visited; iteration stops when fn returns false.
func (s *Slots[T]) Each(fn func(h Handle, item *T) bool) {
	for i := 0; i < len(s.items); i++ {
		if s.items[i] == nil {
			continue
		}
		if !fn(s.handles[i], s.items[i]) {
			return
		}
	}
}
