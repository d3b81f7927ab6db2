package restore

import (
	"errors"
	"fmt"

	"github.com/flashfs/nffsrestore/internal/codec"
	"github.com/flashfs/nffsrestore/internal/flash"
	"github.com/flashfs/nffsrestore/internal/types"
)

// twinGroups partitions data areas by AreaID. A group with more than
// one member is the signature the recoverer looks for: GC was copying
// an area into scratch when power was lost, so both the original and
// the in-progress copy survived under the same logical area id.
func twinGroups(areas []*Area) map[uint16][]*Area {
	groups := make(map[uint16][]*Area)
	for _, a := range areas {
		groups[a.AreaID] = append(groups[a.AreaID], a)
	}
	return groups
}

// resolveTwins decides, for every AreaID that appears more than once
// among the registered data areas, which copy is authoritative and
// which is the crash residue that must be reformatted as scratch
// before it is mistaken for real data on the next mount.
//
// The copy with the higher GC sequence number is the one GC was
// writing when the crash happened, so it is preferred whenever it
// scans cleanly end to end: that is what "GC finished, the crash hit
// during the old area's reclaim" looks like. If the higher-sequence
// copy fails to scan, GC was still mid-write when power was lost, and
// the lower-sequence (original) copy is the one still intact.
//
// It returns the areas to feed to the normal scan pass and the areas
// that should be reformatted as the new scratch area afterward.
func (h *Handle) resolveTwins(dev flash.Device, areas []*Area, strictScan bool) (active, stale []*Area, err error) {
	for _, group := range twinGroups(areas) {
		if len(group) == 1 {
			active = append(active, group[0])
			continue
		}

		primary := group[0]
		for _, a := range group[1:] {
			if a.GCSeq > primary.GCSeq {
				primary = a
			}
		}

		if !scanValidates(dev, primary, strictScan) {
			// fall back to the next-highest surviving sequence number
			var fallback *Area
			for _, a := range group {
				if a == primary {
					continue
				}
				if fallback == nil || a.GCSeq > fallback.GCSeq {
					fallback = a
				}
			}
			if fallback == nil || !scanValidates(dev, fallback, strictScan) {
				return nil, nil, &ErrNoMountableFilesystem{Cause: &codec.ErrCorrupt{Reason: "no surviving copy of a duplicated area scans cleanly"}}
			}
			primary = fallback
		}

		active = append(active, primary)
		for _, a := range group {
			if a != primary {
				stale = append(stale, a)
			}
		}
	}
	return active, stale, nil
}

// scanValidates performs a dry-run scan of a: every record must decode
// without error up to the point scanning would stop normally. Nothing
// is merged into the index; a is left with Cur unchanged by running the
// walk against a disposable copy of the cursor.
func scanValidates(dev flash.Device, a *Area, strictScan bool) bool {
	dry := *a
	av := flash.AreaView{Device: dev, Base: dry.Base, Length: dry.Length}
	for {
		if !av.InBounds(dry.Cur, 4) {
			return true
		}
		magic, err := codec.PeekMagic(av, dry.Cur)
		if err != nil {
			return false
		}
		switch magic {
		case types.InodeMagic:
			rec, err := codec.ReadInodeRecord(av, dry.Cur)
			if err != nil {
				var rangeErr *flash.ErrRange
				if errors.As(err, &rangeErr) {
					return true
				}
				return !strictScan
			}
			dry.Cur += rec.Size()
		case types.BlockMagic:
			rec, err := codec.ReadBlockRecord(av, dry.Cur)
			if err != nil {
				var rangeErr *flash.ErrRange
				if errors.As(err, &rangeErr) {
					return true
				}
				return !strictScan
			}
			dry.Cur += rec.Size()
		default:
			if strictScan && magic != types.EmptyMagic {
				return false
			}
			return true
		}
	}
}

// reformatStaleAreas overwrites every stale twin's header with a fresh
// scratch header, so a subsequent mount sees it as free space rather
// than as a second copy of a live area. It is only reachable after
// resolveTwins already proved some other area is the live copy of the
// same AreaID.
//
// minScratchBytes is the floor below which a reformatted area is too
// small to be useful as the device's new scratch area; a stale twin
// that doesn't meet it is reported rather than silently reformatted
// into an area GC would immediately be unable to use.
func reformatStaleAreas(writer interface {
	WriteAt(buf []byte, offset int64) error
}, stale []*Area, deviceUUID [16]byte, minScratchBytes int) error {
	for _, a := range stale {
		if int64(minScratchBytes) > 0 && a.Length < int64(minScratchBytes) {
			return &ErrInvalid{Reason: fmt.Sprintf("stale area %d is %d bytes, below the configured scratch minimum of %d", a.Index, a.Length, minScratchBytes)}
		}
	}
	for _, a := range stale {
		hdr := &codec.AreaHeader{AreaID: types.NoneArea, GCSeq: 0, DeviceUUID: deviceUUID}
		if err := codec.WriteAreaHeader(writer, a.Base, hdr); err != nil {
			return err
		}
		a.AreaID = types.NoneArea
		a.GCSeq = 0
	}
	return nil
}
