package restore

import (
	"github.com/flashfs/nffsrestore/internal/codec"
	"github.com/flashfs/nffsrestore/internal/flash"
	"github.com/flashfs/nffsrestore/internal/objects"
	"github.com/flashfs/nffsrestore/internal/types"
)

// accepter returns the scanArea callback that decodes one record at
// offset and folds it into h's object graph. It closes over dev, and
// receives the area (whose Index it stamps on each object) as an
// argument, purely to keep scanArea itself codec-agnostic.
func (h *Handle) accepter(dev flash.Device) func(a *Area, magic uint32, offset int64) error {
	return func(a *Area, magic uint32, offset int64) error {
		av := flash.AreaView{Device: dev, Base: a.Base, Length: a.Length}
		switch magic {
		case types.InodeMagic:
			rec, err := codec.ReadInodeRecord(av, offset)
			if err != nil {
				return err
			}
			a.Cur = offset + rec.Size()
			return h.mergeInode(rec, a.Index)
		case types.BlockMagic:
			rec, err := codec.ReadBlockRecord(av, offset)
			if err != nil {
				return err
			}
			dataOffset := offset + types.BlockHeaderSize
			a.Cur = offset + rec.Size()
			return h.mergeBlock(rec, a.Index, dataOffset)
		default:
			return &ErrInvalid{Reason: "accepter called with unrecognized magic"}
		}
	}
}

// mergeInode is the heart of the restore pipeline: it resolves one
// decoded inode record against whatever the index already holds for
// that id and links it into the tree.
//
// The four cases below follow directly from the log's append-only
// semantics: a higher sequence number always wins, a tie is a
// corruption (the same id was written twice at the same logical time,
// which the writer never does), and a record for an id not yet seen
// either creates the object outright or fills in a dummy that an
// earlier record's forward reference already created.
func (h *Handle) mergeInode(rec *codec.InodeRecord, areaIdx int) error {
	existing, found := h.Index.FindInode(rec.ID)

	var in *objects.Inode
	switch {
	case !found:
		var err error
		in, err = h.Pools.Inodes.Alloc()
		if err != nil {
			return err
		}
		in.ID = rec.ID
		in.Refs = 1
		h.Index.InsertInode(in)
	case existing.IsDummy():
		in = existing
	case existing.Seq < rec.Seq:
		in = existing
		in.detachFromParent()
	case existing.Seq > rec.Seq:
		return nil
	default:
		return &codec.ErrCorrupt{Reason: "duplicate sequence number for inode id"}
	}

	in.Seq = rec.Seq
	in.Area = uint16(areaIdx)
	in.Flags = rec.Flags &^ types.InodeFlagDummy
	in.Filename = rec.Filename
	h.bumpNextID(rec.ID)

	if rec.ParentID == types.NoneID {
		if rec.ID == types.RootID && in.Flags.Has(types.InodeFlagDirectory) {
			h.Root = in
		}
		return nil
	}

	parent, err := h.findOrCreateDummyInode(rec.ParentID)
	if err != nil {
		return err
	}
	in.Parent = parent
	parent.Children = append(parent.Children, in)
	return nil
}

// mergeBlock mirrors mergeInode for data blocks. A block never defines
// a forward reference target itself — nothing points to a block by
// id — so the only dummy object it can create is its owner inode. A
// block's own dummy/deleted flags are never set during scanning (only
// the sweeper sets BlockFlagDummy, after scanning is done), so, unlike
// mergeInode, sequence number alone decides which copy survives here.
// The one extra check a replace needs is that the owner id on the
// winning record still names the same inode the prior copy pointed at;
// the log format has no mechanism for a block to legitimately change
// owners between two records sharing an id.
func (h *Handle) mergeBlock(rec *codec.BlockRecord, areaIdx int, dataOffset int64) error {
	existing, found := h.Index.FindBlock(rec.ID)

	var blk *objects.Block
	switch {
	case !found:
		var err error
		blk, err = h.Pools.Blocks.Alloc()
		if err != nil {
			return err
		}
		blk.ID = rec.ID
		h.Index.InsertBlock(blk)
	case existing.Seq < rec.Seq:
		if existing.Owner != nil && existing.Owner.ID != rec.OwnerID {
			return &codec.ErrCorrupt{Reason: "block owner id changed across a sequence replace"}
		}
		blk = existing
		blk.detachFromOwner()
	case existing.Seq > rec.Seq:
		return nil
	default:
		return &codec.ErrCorrupt{Reason: "duplicate sequence number for block id"}
	}

	blk.Seq = rec.Seq
	blk.Area = uint16(areaIdx)
	blk.Offset = uint32(dataOffset)
	blk.DataLen = rec.DataLen
	h.bumpNextID(rec.ID)

	owner, err := h.findOrCreateDummyInode(rec.OwnerID)
	if err != nil {
		return err
	}
	blk.Owner = owner
	owner.Blocks = append(owner.Blocks, blk)
	return nil
}

// findOrCreateDummyInode returns the object already indexed under id,
// whatever its state, or allocates a placeholder flagged dummy so a
// record that references id before id's own defining record has been
// scanned still has something concrete to attach to. The sweeper is
// what later decides an unresolved dummy was never legitimate.
func (h *Handle) findOrCreateDummyInode(id uint32) (*objects.Inode, error) {
	if in, ok := h.Index.FindInode(id); ok {
		return in, nil
	}
	in, err := h.Pools.Inodes.Alloc()
	if err != nil {
		return nil, err
	}
	in.ID = id
	in.Flags = types.InodeFlagDummy
	h.Index.InsertInode(in)
	return in, nil
}
