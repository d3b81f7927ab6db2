package restore

import (
	"github.com/flashfs/nffsrestore/internal/codec"
	"github.com/flashfs/nffsrestore/internal/flash"
	"github.com/flashfs/nffsrestore/internal/types"
)

// detectArea reads and validates the header of one caller-supplied
// region, producing the in-RAM Area descriptor that every later stage
// keys off. It never looks past the header: a valid header with an
// otherwise unreadable body is the scanner's problem, not the
// detector's.
// detectArea does not assign Area.Index: a region that is dropped (a
// corrupt header skipped by Restore, or a second scratch area dropped
// by the registry) must not leave
// a gap in the index space, so indices are only handed out once the
// final accepted set is known.
func detectArea(dev flash.Device, desc AreaDescriptor) (*Area, error) {
	hdr, err := codec.ReadAreaHeader(dev, desc.Offset)
	if err != nil {
		return nil, err
	}
	return &Area{
		Index:      -1,
		Base:       desc.Offset,
		Length:     desc.Length,
		AreaID:     hdr.AreaID,
		GCSeq:      hdr.GCSeq,
		DeviceUUID: hdr.DeviceUUID,
		Cur:        types.AreaHeaderSize,
	}, nil
}
