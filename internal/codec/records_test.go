package codec_test

import (
	"testing"

	"github.com/flashfs/nffsrestore/internal/codec"
	"github.com/flashfs/nffsrestore/internal/flash"
	"github.com/flashfs/nffsrestore/internal/types"
)

func TestWriteReadInodeRecordRoundTrip(t *testing.T) {
	dev := flash.NewMemDevice(4096)
	av := flash.AreaView{Device: dev, Base: 0, Length: 4096}

	rec := &codec.InodeRecord{ID: 7, Seq: 3, ParentID: types.RootID, Flags: types.InodeFlagDirectory, Filename: "etc"}
	if err := codec.WriteInodeRecord(av, 0, dev, rec); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := codec.ReadInodeRecord(av, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if *got != *rec {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, rec)
	}
}

func TestReadInodeRecordRejectsFilenameRunningPastAreaBound(t *testing.T) {
	dev := flash.NewMemDevice(40)
	av := flash.AreaView{Device: dev, Base: 0, Length: 40}

	hdr := make([]byte, types.InodeHeaderSize)
	hdr[0], hdr[1], hdr[2], hdr[3] = 0xa3, 0x81, 0x68, 0x2f // InodeMagic little-endian
	hdr[17] = 30                                            // nameLen: header(18) + 30 > area length(40)
	if err := dev.WriteAt(hdr, 0); err != nil {
		t.Fatalf("prep: %v", err)
	}

	if _, err := codec.ReadInodeRecord(av, 0); err == nil {
		t.Fatal("expected an error for a filename length that overruns the area, got nil")
	}
}

func TestReadInodeRecordAcceptsFilenameAtMax(t *testing.T) {
	dev := flash.NewMemDevice(4096)
	av := flash.AreaView{Device: dev, Base: 0, Length: 4096}

	hdr := make([]byte, types.InodeHeaderSize)
	hdr[0], hdr[1], hdr[2], hdr[3] = 0xa3, 0x81, 0x68, 0x2f
	hdr[17] = 255 // byte max; still within MaxFilenameLen, this only checks the boundary type
	if err := dev.WriteAt(hdr, 0); err != nil {
		t.Fatalf("prep: %v", err)
	}
	if _, err := codec.ReadInodeRecord(av, 0); err != nil {
		t.Fatalf("255 is within MaxFilenameLen, expected success: %v", err)
	}
}

func TestWriteReadBlockRecordRoundTrip(t *testing.T) {
	dev := flash.NewMemDevice(4096)
	av := flash.AreaView{Device: dev, Base: 0, Length: 4096}

	data := []byte("hello world")
	rec := &codec.BlockRecord{ID: 9, Seq: 1, OwnerID: 2}
	if err := codec.WriteBlockRecord(av, 0, dev, rec, data); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := codec.ReadBlockRecord(av, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.ID != rec.ID || got.Seq != rec.Seq || got.OwnerID != rec.OwnerID || got.DataLen != uint32(len(data)) {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestReadBlockRecordRejectsDataLenPastAreaBound(t *testing.T) {
	dev := flash.NewMemDevice(40)
	av := flash.AreaView{Device: dev, Base: 0, Length: 40}

	hdr := make([]byte, types.BlockHeaderSize)
	hdr[0], hdr[1], hdr[2], hdr[3] = 0x64, 0x8c, 0xed, 0x53 // BlockMagic little-endian
	hdr[16], hdr[17], hdr[18], hdr[19] = 0xff, 0x00, 0x00, 0x00 // dataLen = 255, area is 40 bytes
	if err := dev.WriteAt(hdr, 0); err != nil {
		t.Fatalf("prep: %v", err)
	}

	if _, err := codec.ReadBlockRecord(av, 0); err == nil {
		t.Fatal("expected an error for a data length that overruns the area, got nil")
	}
}

func TestPeekMagicDoesNotConsume(t *testing.T) {
	dev := flash.NewMemDevice(64)
	av := flash.AreaView{Device: dev, Base: 0, Length: 64}

	rec := &codec.InodeRecord{ID: 1, Seq: 1, ParentID: types.NoneID, Flags: 0, Filename: "a"}
	if err := codec.WriteInodeRecord(av, 0, dev, rec); err != nil {
		t.Fatalf("write: %v", err)
	}

	m1, err := codec.PeekMagic(av, 0)
	if err != nil {
		t.Fatalf("peek 1: %v", err)
	}
	m2, err := codec.PeekMagic(av, 0)
	if err != nil {
		t.Fatalf("peek 2: %v", err)
	}
	if m1 != m2 || m1 != types.InodeMagic {
		t.Fatalf("peek not idempotent or wrong magic: %#x, %#x", m1, m2)
	}
}
