package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/flashfs/nffsrestore/internal/flash"
	"github.com/flashfs/nffsrestore/internal/types"
)

// InodeRecord is a disk inode record decoded from the log, minus the
// leading magic (identified beforehand by PeekMagic, not stored here).
type InodeRecord struct {
	ID       uint32
	Seq      uint32
	ParentID uint32
	Flags    types.InodeFlags
	Filename string
}

// Size is the exact number of bytes this record occupies on disk,
// including its magic.
func (r *InodeRecord) Size() int64 {
	return types.InodeHeaderSize + int64(len(r.Filename))
}

// BlockRecord is a disk block record decoded from the log, minus the
// leading magic. Data is never copied into RAM; DataLen and the record's
// own on-disk offset are enough to locate it later.
type BlockRecord struct {
	ID      uint32
	Seq     uint32
	OwnerID uint32
	DataLen uint32
}

func (r *BlockRecord) Size() int64 {
	return types.BlockHeaderSize + int64(r.DataLen)
}

// PeekMagic reads the 32-bit discriminator at areaOffset without
// consuming it, so the log scanner can dispatch to the right decoder (or
// recognize EmptyMagic / an invalid value) before committing to a read
// size.
func PeekMagic(av flash.AreaView, areaOffset int64) (uint32, error) {
	buf := make([]byte, 4)
	if err := av.ReadAt(buf, areaOffset); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadInodeRecord decodes an inode record starting at areaOffset, which
// must point at a magic already identified as types.InodeMagic; the
// fixed header read from there includes that magic.
// The filename length is validated against the area bound before it is
// trusted.
func ReadInodeRecord(av flash.AreaView, areaOffset int64) (*InodeRecord, error) {
	if !av.InBounds(areaOffset, types.InodeHeaderSize) {
		return nil, &flash.ErrRange{Offset: areaOffset, Length: types.InodeHeaderSize, Bound: av.Length}
	}
	hdr := make([]byte, types.InodeHeaderSize)
	if err := av.ReadAt(hdr, areaOffset); err != nil {
		return nil, err
	}

	id := binary.LittleEndian.Uint32(hdr[4:8])
	seq := binary.LittleEndian.Uint32(hdr[8:12])
	parent := binary.LittleEndian.Uint32(hdr[12:16])
	flagsByte := hdr[16]
	nameLen := int(hdr[17])

	if nameLen > types.MaxFilenameLen {
		return nil, &ErrCorrupt{Reason: fmt.Sprintf("inode %d: filename length %d exceeds max %d", id, nameLen, types.MaxFilenameLen)}
	}
	nameOffset := areaOffset + types.InodeHeaderSize
	if !av.InBounds(nameOffset, int64(nameLen)) {
		return nil, &ErrCorrupt{Reason: fmt.Sprintf("inode %d: filename of length %d runs past area bound", id, nameLen)}
	}

	name := make([]byte, nameLen)
	if nameLen > 0 {
		if err := av.ReadAt(name, nameOffset); err != nil {
			return nil, err
		}
	}

	return &InodeRecord{
		ID:       id,
		Seq:      seq,
		ParentID: parent,
		Flags:    types.InodeFlags(flagsByte),
		Filename: string(name),
	}, nil
}

// ReadBlockRecord decodes a block record starting at areaOffset, which
// must point at a magic already identified as types.BlockMagic; the
// fixed header read from there includes that magic.
// The data length is validated against the area bound but the data
// itself is never read.
func ReadBlockRecord(av flash.AreaView, areaOffset int64) (*BlockRecord, error) {
	if !av.InBounds(areaOffset, types.BlockHeaderSize) {
		return nil, &flash.ErrRange{Offset: areaOffset, Length: types.BlockHeaderSize, Bound: av.Length}
	}
	hdr := make([]byte, types.BlockHeaderSize)
	if err := av.ReadAt(hdr, areaOffset); err != nil {
		return nil, err
	}

	id := binary.LittleEndian.Uint32(hdr[4:8])
	seq := binary.LittleEndian.Uint32(hdr[8:12])
	owner := binary.LittleEndian.Uint32(hdr[12:16])
	dataLen := binary.LittleEndian.Uint32(hdr[16:20])

	dataOffset := areaOffset + types.BlockHeaderSize
	if !av.InBounds(dataOffset, int64(dataLen)) {
		return nil, &ErrCorrupt{Reason: fmt.Sprintf("block %d: data length %d runs past area bound", id, dataLen)}
	}

	return &BlockRecord{ID: id, Seq: seq, OwnerID: owner, DataLen: dataLen}, nil
}

// WriteInodeRecord serializes r at areaOffset, including its magic. Used
// only by test fixtures to assemble flash images.
func WriteInodeRecord(av flash.AreaView, areaOffset int64, w interface {
	WriteAt(buf []byte, offset int64) error
}, r *InodeRecord) error {
	buf := make([]byte, r.Size())
	binary.LittleEndian.PutUint32(buf[0:4], types.InodeMagic)
	binary.LittleEndian.PutUint32(buf[4:8], r.ID)
	binary.LittleEndian.PutUint32(buf[8:12], r.Seq)
	binary.LittleEndian.PutUint32(buf[12:16], r.ParentID)
	buf[16] = byte(r.Flags)
	buf[17] = byte(len(r.Filename))
	copy(buf[18:], r.Filename)
	return w.WriteAt(buf, av.Base+areaOffset)
}

// WriteBlockRecord serializes r and its data payload at areaOffset,
// including its magic. Used only by test fixtures.
func WriteBlockRecord(av flash.AreaView, areaOffset int64, w interface {
	WriteAt(buf []byte, offset int64) error
}, r *BlockRecord, data []byte) error {
	buf := make([]byte, types.BlockHeaderSize+len(data))
	binary.LittleEndian.PutUint32(buf[0:4], types.BlockMagic)
	binary.LittleEndian.PutUint32(buf[4:8], r.ID)
	binary.LittleEndian.PutUint32(buf[8:12], r.Seq)
	binary.LittleEndian.PutUint32(buf[12:16], r.OwnerID)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(len(data)))
	copy(buf[20:], data)
	return w.WriteAt(buf, av.Base+areaOffset)
}
