package restore

import "github.com/flashfs/nffsrestore/internal/types"

// Area is the in-RAM descriptor of one registered flash region.
type Area struct {
	// Index is this area's position in Handle.Areas, the value stored
	// in every Inode/Block's Area field.
	Index int

	// Base and Length describe the region on the underlying device,
	// header included.
	Base   int64
	Length int64

	// AreaID is the id the area's own header advertised. types.NoneArea
	// means this area is the scratch area.
	AreaID     uint16
	GCSeq      uint32
	DeviceUUID [16]byte

	// Cur is the write cursor: header size plus the sum of sizes of
	// every valid record scanned so far.
	Cur int64
}

func (a *Area) IsScratch() bool { return a.AreaID == types.NoneArea }

// AreaDescriptor is one entry of the caller-supplied list handed to
// Restore: where a candidate region starts and how long it is.
type AreaDescriptor struct {
	Offset int64
	Length int64
}
