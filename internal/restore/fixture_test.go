package restore_test

import (
	"github.com/flashfs/nffsrestore/internal/codec"
	"github.com/flashfs/nffsrestore/internal/flash"
	"github.com/flashfs/nffsrestore/internal/restore"
	"github.com/flashfs/nffsrestore/internal/types"
)

// fixtureArea describes one area of a hand-assembled test image: its
// header and the ordered list of records to write starting just past
// it.
type fixtureArea struct {
	offset  int64
	length  int64
	areaID  uint16
	gcSeq   uint32
	records []any // *codec.InodeRecord or blockWithData
}

type blockWithData struct {
	rec  *codec.BlockRecord
	data []byte
}

// buildImage assembles a MemDevice from a list of fixture areas, writing
// each area's header followed by its records back to back, and returns
// the area descriptor list Restore expects.
func buildImage(areas []fixtureArea) (*flash.MemDevice, []restore.AreaDescriptor) {
	var total int64
	for _, a := range areas {
		if a.offset+a.length > total {
			total = a.offset + a.length
		}
	}
	dev := flash.NewMemDevice(int(total))

	descs := make([]restore.AreaDescriptor, 0, len(areas))
	for _, a := range areas {
		av := flash.AreaView{Device: dev, Base: a.offset, Length: a.length}
		hdr := &codec.AreaHeader{AreaID: a.areaID, GCSeq: a.gcSeq}
		if err := codec.WriteAreaHeader(dev, a.offset, hdr); err != nil {
			panic(err)
		}

		cur := int64(types.AreaHeaderSize)
		for _, r := range a.records {
			switch rec := r.(type) {
			case *codec.InodeRecord:
				if err := codec.WriteInodeRecord(av, cur, dev, rec); err != nil {
					panic(err)
				}
				cur += rec.Size()
			case blockWithData:
				if err := codec.WriteBlockRecord(av, cur, dev, rec.rec, rec.data); err != nil {
					panic(err)
				}
				cur += rec.rec.Size()
			}
		}
		descs = append(descs, restore.AreaDescriptor{Offset: a.offset, Length: a.length})
	}
	return dev, descs
}
