package restore

import (
	"errors"

	"github.com/flashfs/nffsrestore/internal/codec"
	"github.com/flashfs/nffsrestore/internal/flash"
	"github.com/flashfs/nffsrestore/internal/types"
)

// scanArea walks one data area from its current cursor to the first
// position that cannot hold another valid record, feeding each decoded
// record to accept. It advances a.Cur as it goes so a later caller
// (the recoverer, re-scanning a surviving twin) can resume rather than
// restart.
//
// End of log is not an error: a trailing erased stretch reads back as
// either types.EmptyMagic or, on devices that don't model bulk erase,
// a magic that matches neither record type. Both are treated the same
// way unless strictScan is set, in which case an unrecognized magic
// mid-area is reported as *ErrStrictCorruption instead of silently
// ending the scan.
//
// A record that fails to decode (a variable-length field running past
// the area bound, reported by the codec as *codec.ErrCorrupt) also ends
// the log unless strictScan is set. A *codec.ErrCorrupt raised after the
// record decoded — a duplicate (id, seq) or a block owner change found
// while merging — is returned as an error and fails the restore.
//
// A record whose magic is valid but whose fixed header would run past
// the area boundary — the signature of a crash mid-write, truncating
// the log at an arbitrary byte — surfaces as *flash.ErrRange from the
// codec. That case is end-of-log unconditionally,
// even under strictScan: §4.3's "a read that runs off the end of the
// area" termination case is distinct from, and not gated by, the
// mid-area-corruption diagnostic.
func (h *Handle) scanArea(dev flash.Device, a *Area, strictScan bool, accept func(a *Area, magic uint32, offset int64) error) error {
	av := flash.AreaView{Device: dev, Base: a.Base, Length: a.Length}
	for {
		if !av.InBounds(a.Cur, 4) {
			return nil
		}
		magic, err := codec.PeekMagic(av, a.Cur)
		if err != nil {
			return err
		}
		if magic != types.InodeMagic && magic != types.BlockMagic {
			if strictScan && magic != types.EmptyMagic {
				return &ErrStrictCorruption{AreaIndex: a.Index, Offset: a.Cur, Cause: &codec.ErrCorrupt{Reason: "unrecognized record magic"}}
			}
			return nil
		}
		before := a.Cur
		if err := accept(a, magic, a.Cur); err != nil {
			var rangeErr *flash.ErrRange
			if errors.As(err, &rangeErr) {
				return nil
			}
			// accept only advances a.Cur once the record has decoded, so
			// an unchanged cursor means the codec rejected the record.
			var corrupt *codec.ErrCorrupt
			if errors.As(err, &corrupt) && !strictScan && a.Cur == before {
				return nil
			}
			if strictScan {
				return &ErrStrictCorruption{AreaIndex: a.Index, Offset: before, Cause: err}
			}
			return err
		}
		if a.Cur == before {
			// accept didn't advance the cursor; treat as a stall rather
			// than loop forever on a malformed accept implementation.
			return &ErrInvalid{Reason: "scan did not advance"}
		}
	}
}
