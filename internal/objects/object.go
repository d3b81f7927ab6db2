// Package objects defines the in-RAM inode and block graph and the hash
// index that ties ids to objects during restore.
package objects

import "github.com/flashfs/nffsrestore/internal/types"

// Inode is the in-RAM form of a directory or file inode. Parent is a
// weak (lookup-only) back reference: the sweeper must be able to remove
// an inode without having to fix up anyone who merely points at it.
type Inode struct {
	ID     uint32
	Seq    uint32
	Area   uint16
	Flags  types.InodeFlags
	Refs   uint32
	Parent *Inode
	// Children is populated only when Flags has InodeFlagDirectory set.
	// Order is the order records were encountered during restore; callers
	// needing a stable order (e.g. directory listing) must sort it.
	Children []*Inode
	// Blocks is populated only for file inodes, in the order block
	// records were encountered during restore.
	Blocks   []*Block
	Filename string
}

func (i *Inode) IsDummy() bool   { return i.Flags.Has(types.InodeFlagDummy) }
func (i *Inode) IsDeleted() bool { return i.Flags.Has(types.InodeFlagDeleted) }
func (i *Inode) IsDir() bool     { return i.Flags.Has(types.InodeFlagDirectory) }

// detachFromParent removes i from its current parent's child list, if any.
func (i *Inode) detachFromParent() {
	if i.Parent == nil {
		return
	}
	siblings := i.Parent.Children
	for idx, c := range siblings {
		if c == i {
			i.Parent.Children = append(siblings[:idx], siblings[idx+1:]...)
			break
		}
	}
	i.Parent = nil
}

// Block is the in-RAM form of a file data block. Owner is a strong
// reference: a block with no owner is meaningless and is swept.
type Block struct {
	ID      uint32
	Seq     uint32
	Area    uint16
	Offset  uint32
	Flags   types.BlockFlags
	Owner   *Inode
	DataLen uint32
}

func (b *Block) IsDummy() bool   { return b.Flags.Has(types.BlockFlagDummy) }
func (b *Block) IsDeleted() bool { return b.Flags.Has(types.BlockFlagDeleted) }

// detachFromOwner removes b from its owner's block list, if any.
func (b *Block) detachFromOwner() {
	if b.Owner == nil {
		return
	}
	siblings := b.Owner.Blocks
	for idx, c := range siblings {
		if c == b {
			b.Owner.Blocks = append(siblings[:idx], siblings[idx+1:]...)
			break
		}
	}
	b.Owner = nil
}
