// Package codec parses and serializes the on-disk area header and
// inode/block log records, field by field with encoding/binary, in the
// manual little-endian style the teacher uses for its own on-disk
// superblock parsing rather than reflection-based struct decoding.
package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/flashfs/nffsrestore/internal/flash"
	"github.com/flashfs/nffsrestore/internal/types"
)

// ErrCorrupt marks a record or header that failed a structural check:
// bad magic, a length field that would overrun the area, or (at the
// reconstructor layer) a duplicate (id, seq) pair.
type ErrCorrupt struct {
	Reason string
}

func (e *ErrCorrupt) Error() string { return "corrupt: " + e.Reason }

// AreaHeader is the fixed-size record at the start of every area.
type AreaHeader struct {
	AreaID     uint16 // types.NoneArea marks scratch
	GCSeq      uint32
	DeviceUUID [16]byte
}

func (h *AreaHeader) IsScratch() bool { return h.AreaID == types.NoneArea }

// ReadAreaHeader reads and validates the header at an absolute device
// offset. A bad magic is reported as *ErrCorrupt so the caller (the area
// detector) can classify the region as unreadable without aborting the
// whole mount; any other read failure propagates as-is (fatal).
func ReadAreaHeader(dev flash.Device, offset int64) (*AreaHeader, error) {
	buf := make([]byte, types.AreaHeaderSize)
	if err := dev.ReadAt(buf, offset); err != nil {
		return nil, err
	}

	magic := binary.LittleEndian.Uint32(buf[0:4])
	if magic != types.AreaMagic {
		return nil, &ErrCorrupt{Reason: fmt.Sprintf("area header magic mismatch at %d: got %#x", offset, magic)}
	}

	h := &AreaHeader{
		AreaID: binary.LittleEndian.Uint16(buf[4:6]),
		GCSeq:  binary.LittleEndian.Uint32(buf[6:10]),
	}
	copy(h.DeviceUUID[:], buf[10:26])
	return h, nil
}

// WriteAreaHeader serializes h at offset, used by the corruption
// recoverer when it reformats a bad area as the fresh scratch area.
func WriteAreaHeader(dev interface {
	WriteAt(buf []byte, offset int64) error
}, offset int64, h *AreaHeader) error {
	buf := make([]byte, types.AreaHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], types.AreaMagic)
	binary.LittleEndian.PutUint16(buf[4:6], h.AreaID)
	binary.LittleEndian.PutUint32(buf[6:10], h.GCSeq)
	copy(buf[10:26], h.DeviceUUID[:])
	return dev.WriteAt(buf, offset)
}
