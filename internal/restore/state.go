package restore

import (
	"github.com/google/uuid"

	"github.com/flashfs/nffsrestore/internal/interfaces"
	"github.com/flashfs/nffsrestore/internal/objects"
	"github.com/flashfs/nffsrestore/internal/types"
)

// noScratch marks Handle.ScratchIdx when no scratch area has been
// registered.
const noScratch = -1

// Handle is the explicit, caller-owned form of what the source system
// keeps as process-wide globals: the hash index, the area table, the
// scratch index, the root pointer, and the next-id counter. Restore
// constructs and returns one; nothing is shared across Handles.
type Handle struct {
	// Index is held through the ObjectIndex interface, not the concrete
	// *objects.HashIndex, so tests can substitute a fake index without
	// touching the merge logic that drives it.
	Index interfaces.ObjectIndex
	Pools *objects.Pools

	Areas      []*Area
	ScratchIdx int

	Root   *objects.Inode
	NextID uint32

	// MountID identifies this particular Restore call in diagnostic
	// log lines; it carries no on-disk meaning.
	MountID uuid.UUID
}

// newHandle builds an empty Handle ready to be populated by the driver.
func newHandle(poolCapacity int) *Handle {
	return &Handle{
		Index:      objects.NewHashIndex(),
		Pools:      objects.NewPools(poolCapacity),
		ScratchIdx: noScratch,
		MountID:    uuid.New(),
	}
}

// HasScratch reports whether a scratch area has been registered.
func (h *Handle) HasScratch() bool { return h.ScratchIdx != noScratch }

// bumpNextID maintains the next-id counter after accepting a record.
func (h *Handle) bumpNextID(id uint32) {
	if id+1 > h.NextID {
		h.NextID = id + 1
	}
}

// Stats summarizes a completed mount for CLI/log reporting. It adds no
// new invariants; it is a read path over state the core already built.
type Stats struct {
	Areas      int
	LiveInodes int
	LiveBlocks int
	ScratchIdx int
	NextID     uint32
}

func (h *Handle) Stats() Stats {
	s := Stats{Areas: len(h.Areas), ScratchIdx: h.ScratchIdx, NextID: h.NextID}
	h.Index.Each(func(kind types.ObjType, inode *objects.Inode, block *objects.Block) {
		switch kind {
		case types.ObjTypeInode:
			s.LiveInodes++
		case types.ObjTypeBlock:
			s.LiveBlocks++
		}
	})
	return s
}

// Reset clears a Handle's index, area table, scratch index, root and
// next-id back to the pre-mount empty state. Pools are left as they
// are. Restore never reuses a Handle (each call builds a new one); it
// calls Reset on its fatal paths after areas are registered, before
// returning an error.
func (h *Handle) Reset() {
	h.Index = objects.NewHashIndex()
	h.Areas = nil
	h.ScratchIdx = noScratch
	h.Root = nil
	h.NextID = 0
}
