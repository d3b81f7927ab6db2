package objects

import "github.com/flashfs/nffsrestore/internal/types"

// entry is a tagged union: either a real inode, a real block, or (not
// modeled separately — dummy-ness lives on Inode/Block flags instead, per
// the design note that a flag bit and a tagged Pending variant are
// equivalent encodings of the same "not yet defined" state).
type entry struct {
	id    uint32
	kind  types.ObjType
	inode *Inode
	block *Block
}

// numBuckets is fixed; ids are distributed across it by id % numBuckets.
// The sweep iterates bucket by bucket, which is what lets it stay
// resilient to removal of the element it is currently visiting — it
// operates on a snapshot slice of the bucket contents, not the live bucket.
const numBuckets = 64

// HashIndex maps object id to in-RAM object, bucketed for sweep
// iteration. It is the sole authority on "does an object with this id
// exist yet" during restore.
type HashIndex struct {
	buckets [numBuckets][]*entry
}

func NewHashIndex() *HashIndex {
	return &HashIndex{}
}

func bucketOf(id uint32) int {
	return int(id % numBuckets)
}

// InsertInode installs i under its own id. It is an error to insert a
// second object under an id already present; callers must Remove first.
func (h *HashIndex) InsertInode(i *Inode) {
	b := bucketOf(i.ID)
	h.buckets[b] = append(h.buckets[b], &entry{id: i.ID, kind: types.ObjTypeInode, inode: i})
}

// InsertBlock installs b under its own id.
func (h *HashIndex) InsertBlock(blk *Block) {
	b := bucketOf(blk.ID)
	h.buckets[b] = append(h.buckets[b], &entry{id: blk.ID, kind: types.ObjTypeBlock, block: blk})
}

// FindInode looks up id, returning ok=false if absent or if id names a
// block instead.
func (h *HashIndex) FindInode(id uint32) (*Inode, bool) {
	for _, e := range h.buckets[bucketOf(id)] {
		if e.id == id && e.kind == types.ObjTypeInode {
			return e.inode, true
		}
	}
	return nil, false
}

// FindBlock looks up id, returning ok=false if absent or if id names an
// inode instead.
func (h *HashIndex) FindBlock(id uint32) (*Block, bool) {
	for _, e := range h.buckets[bucketOf(id)] {
		if e.id == id && e.kind == types.ObjTypeBlock {
			return e.block, true
		}
	}
	return nil, false
}

// Remove drops id from the index. It does not unlink the object from
// any parent/owner collection or return it to a pool; callers (the
// sweeper) are responsible for that.
func (h *HashIndex) Remove(id uint32) {
	b := bucketOf(id)
	bucket := h.buckets[b]
	for idx, e := range bucket {
		if e.id == id {
			h.buckets[b] = append(bucket[:idx], bucket[idx+1:]...)
			return
		}
	}
}

// Len returns the total number of objects indexed, inodes and blocks
// combined.
func (h *HashIndex) Len() int {
	n := 0
	for _, b := range h.buckets {
		n += len(b)
	}
	return n
}

// Sweep walks every bucket, removing and returning-to-pool any object
// flagged DUMMY or DELETED, or any block whose owner is nil. It is
// resilient to removing the entry it is currently visiting because it
// iterates over a snapshot of each bucket, not the live slice.
//
// A dummy inode that is never resolved orphans whatever real children
// were attached to it while restore ran; those children are swept in
// turn rather than left pointing at freed memory, so the pass repeats
// until a full round removes nothing. maxPasses bounds this in case a
// malformed image somehow produces a cycle.
func (h *HashIndex) Sweep(pools *Pools) {
	const maxPasses = 64
	for pass := 0; pass < maxPasses; pass++ {
		if !h.sweepOnce(pools) {
			return
		}
	}
}

func (h *HashIndex) sweepOnce(pools *Pools) (removedAny bool) {
	for b := range h.buckets {
		snapshot := append([]*entry(nil), h.buckets[b]...)
		for _, e := range snapshot {
			switch e.kind {
			case types.ObjTypeInode:
				in := e.inode
				if in.IsDummy() || in.IsDeleted() {
					for _, child := range in.Children {
						child.Flags |= types.InodeFlagDummy
					}
					for _, blk := range in.Blocks {
						blk.Flags |= types.BlockFlagDummy
					}
					in.detachFromParent()
					h.Remove(in.ID)
					pools.Inodes.Free(in)
					removedAny = true
				}
			case types.ObjTypeBlock:
				blk := e.block
				if blk.IsDummy() || blk.IsDeleted() || blk.Owner == nil {
					blk.detachFromOwner()
					h.Remove(blk.ID)
					pools.Blocks.Free(blk)
					removedAny = true
				}
			}
		}
	}
	return removedAny
}

// Each calls fn for every live inode and every live block currently
// indexed. Order across buckets is unspecified.
func (h *HashIndex) Each(fn func(kind types.ObjType, inode *Inode, block *Block)) {
	for _, bucket := range h.buckets {
		for _, e := range bucket {
			fn(e.kind, e.inode, e.block)
		}
	}
}
