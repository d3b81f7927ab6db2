package types

// On-disk magic values. The first 32 bits of every area header and every
// log record carry one of these, little-endian.
const (
	// AreaMagic identifies a valid area header.
	AreaMagic uint32 = 0x9E5D8A3F

	// InodeMagic identifies an inode record.
	InodeMagic uint32 = 0x2F6881A3

	// BlockMagic identifies a block record.
	BlockMagic uint32 = 0x53ED8C64

	// EmptyMagic at a record position marks clean end-of-log.
	EmptyMagic uint32 = 0xFFFFFFFF
)

// RootID is the well-known id of the filesystem's root directory inode.
// The reconstructor treats a parentless inode record as the actual root
// only when it carries this id and the directory flag; every other
// parentless record is just an orphaned subtree awaiting a parent that
// may never arrive.
const RootID uint32 = 1

// Fixed on-disk sizes, in bytes.
const (
	// AreaHeaderSize is the size of the fixed area header, magic
	// through GC sequence plus a 16-byte device UUID.
	AreaHeaderSize = 4 + 2 + 4 + 16

	// InodeHeaderSize is the fixed portion of an inode record: magic,
	// id, seq, parent id, flags byte, filename length byte.
	InodeHeaderSize = 4 + 4 + 4 + 4 + 1 + 1

	// MaxFilenameLen bounds the inline filename.
	MaxFilenameLen = 255

	// BlockHeaderSize is the fixed portion of a block record: magic,
	// id, seq, owner id, data length.
	BlockHeaderSize = 4 + 4 + 4 + 4 + 4
)
