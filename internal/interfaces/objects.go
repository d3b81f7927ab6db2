package interfaces

import (
	"github.com/flashfs/nffsrestore/internal/objects"
	"github.com/flashfs/nffsrestore/internal/types"
)

// ObjectIndex is the hash-index contract the reconstructor and sweeper
// are built against: insert, typed find-by-id, and bucket iteration.
type ObjectIndex interface {
	// InsertInode installs i under its own id. Callers must Remove any
	// existing entry under that id first.
	InsertInode(i *objects.Inode)

	// InsertBlock installs b under its own id.
	InsertBlock(b *objects.Block)

	// FindInode looks up id, reporting ok=false if absent or if id
	// names a block instead.
	FindInode(id uint32) (*objects.Inode, bool)

	// FindBlock looks up id, reporting ok=false if absent or if id
	// names an inode instead.
	FindBlock(id uint32) (*objects.Block, bool)

	// Remove drops id from the index without touching pools or parent
	// links.
	Remove(id uint32)

	// Sweep removes every object flagged dummy or deleted, and every
	// block with no owner, returning each to its pool.
	Sweep(pools *objects.Pools)

	// Each visits every live inode and block. Order is unspecified.
	Each(fn func(kind types.ObjType, inode *objects.Inode, block *objects.Block))

	// Len reports the number of objects currently indexed.
	Len() int
}
