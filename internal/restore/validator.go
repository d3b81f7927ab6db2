package restore

import "github.com/flashfs/nffsrestore/internal/types"

// validate checks the two structural guarantees a caller is entitled
// to rely on once Restore returns successfully: a scratch area exists
// to absorb future writes, and a root directory was found so the tree
// has somewhere to hang from. Both failing modes collapse to the same
// *ErrNoMountableFilesystem the distilled contract promises — the
// caller's only recourse in either case is to format.
func (h *Handle) validate() error {
	if !h.HasScratch() {
		return &ErrNoMountableFilesystem{Cause: &ErrInvalid{Reason: "no scratch area present"}}
	}
	if h.Root == nil {
		return &ErrNoMountableFilesystem{Cause: &ErrInvalid{Reason: "no root directory found"}}
	}
	if h.Root.IsDummy() {
		return &ErrNoMountableFilesystem{Cause: &ErrInvalid{Reason: "root directory never resolved past a forward reference"}}
	}
	return nil
}

// MaxBlockPayload returns the largest block data length a write could
// use without overrunning the smallest registered data area, the bound
// a mounted filesystem must respect for every future block append.
//
// The current scratch area is excluded from this computation: it holds
// no live data yet, so sizing future writes against it would be sizing
// against whichever area GC happened to reclaim last rather than
// against the areas actually in use. This is an interpretation choice —
// after the next GC cycle the scratch area becomes a data area like any
// other, so a caller that writes right up to this bound today could see
// it change on the next mount.
func (h *Handle) MaxBlockPayload() int64 {
	var min int64 = -1
	for _, a := range h.Areas {
		if a.IsScratch() {
			continue
		}
		usable := a.Length - types.AreaHeaderSize - types.BlockHeaderSize
		if min < 0 || usable < min {
			min = usable
		}
	}
	if min < 0 {
		return 0
	}
	return min
}
