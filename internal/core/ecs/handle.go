package ecs

// Handle packs a 16-bit uid in the upper bits and a 16-bit slot index in the
// lower bits. The uid changes every time a slot is reused, so a stale handle
// never resolves to the slot's new occupant.
type Handle uint32

const (
	// InvalidHandle never resolves and never equals an issued handle.
	InvalidHandle Handle = 0xFFFFFFFF

	// MaxUID bounds the uid counter. Allocation is refused once the counter
	// reaches it, which keeps uid 0xFFFF (part of InvalidHandle) unissued.
	MaxUID uint32 = 0xFFFE

	maxIndex = 0xFFFF
)

func NewHandle(uid uint32, index uint32) Handle {
	return Handle((uid&0xFFFF)<<16 | index&0xFFFF)
}

func (h Handle) UID() uint32   { return uint32(h) >> 16 }
func (h Handle) Index() uint32 { return uint32(h) & 0xFFFF }

// IsValid reports whether h is not InvalidHandle. A valid handle may still
// refer to a freed slot; use Slots.Resolve to check liveness.
func (h Handle) IsValid() bool { return h != InvalidHandle }
