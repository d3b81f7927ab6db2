// Package types holds the on-disk and in-RAM data model shared by the
// restore pipeline: objects, inodes, blocks, areas, and the flags and
// sentinels that tie them together.
package types

// Sentinel values used throughout the restore pipeline in place of a
// nullable reference.
const (
	// NoneID marks an absent object id (no parent, no owner).
	NoneID uint32 = 0xFFFFFFFF

	// NoneArea marks an absent area index (an object with no known
	// on-disk location yet, or the scratch area's logical "id").
	NoneArea uint16 = 0xFFFF
)

// ObjType discriminates the two kinds of logged entity.
type ObjType uint8

const (
	// ObjTypeInode marks a directory or file inode record.
	ObjTypeInode ObjType = iota
	// ObjTypeBlock marks a file data block record.
	ObjTypeBlock
)

func (t ObjType) String() string {
	switch t {
	case ObjTypeInode:
		return "inode"
	case ObjTypeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// InodeFlags is a bitset carried by every inode, both on disk and in RAM.
type InodeFlags uint8

const (
	// InodeFlagDeleted marks an inode whose defining record has been
	// superseded by a delete; swept on the next sweep pass.
	InodeFlagDeleted InodeFlags = 1 << iota
	// InodeFlagDummy marks a placeholder created because some other
	// record referenced this id before its defining record was seen.
	InodeFlagDummy
	// InodeFlagDirectory marks an inode as a directory (has a child
	// list) rather than a file (has a block list).
	InodeFlagDirectory
)

func (f InodeFlags) Has(bit InodeFlags) bool { return f&bit != 0 }

// BlockFlags is a bitset carried by every block, both on disk and in RAM.
type BlockFlags uint8

const (
	// BlockFlagDeleted marks a block superseded by a delete.
	BlockFlagDeleted BlockFlags = 1 << iota
	// BlockFlagDummy mirrors InodeFlagDummy for symmetry. Nothing in the
	// log references a block by id before its defining record, so the
	// merge logic never sets this; the sweeper sets it on the blocks of
	// an inode it removes, so those blocks are swept in turn.
	BlockFlagDummy
)

func (f BlockFlags) Has(bit BlockFlags) bool { return f&bit != 0 }
