// Package restore rebuilds the in-RAM object graph of a log-structured
// flash filesystem by scanning its areas end to end, the way the
// teacher codebase walks a container's checkpoint chain to recover its
// latest consistent state rather than trusting a single fixed
// superblock location.
package restore

import (
	"errors"
	"fmt"

	"github.com/flashfs/nffsrestore/internal/codec"
	"github.com/flashfs/nffsrestore/internal/config"
	"github.com/flashfs/nffsrestore/internal/flash"
)

// writableDevice is satisfied by flash.Device implementations that also
// support WriteAt, the minimum the corruption recoverer needs to
// reformat a stale twin area. With a device that lacks WriteAt (none
// shipped today), Restore fails with *ErrInvalid whenever there is a
// stale area to reformat and ReadOnly is not set.
type writableDevice interface {
	WriteAt(buf []byte, offset int64) error
}

// Restore scans every area descriptor against dev and returns a Handle
// holding the reconstructed object graph, or an error if no consistent
// filesystem could be recovered. It is the entry point of the restore
// pipeline; the unexported functions here each implement one of its
// stages.
func Restore(dev flash.Device, descs []AreaDescriptor, cfg *config.RestoreConfig) (*Handle, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if len(descs) == 0 {
		return nil, &ErrNoMountableFilesystem{Cause: &ErrInvalid{Reason: "no area descriptors supplied"}}
	}
	if len(descs) > cfg.MaxAreas {
		return nil, &ErrNoMountableFilesystem{Cause: &ErrInvalid{Reason: fmt.Sprintf("%d areas exceeds configured max of %d", len(descs), cfg.MaxAreas)}}
	}

	h := newHandle(cfg.PoolCapacity)

	areas := make([]*Area, 0, len(descs))
	for i, desc := range descs {
		a, err := detectArea(dev, desc)
		if err != nil {
			var corrupt *codec.ErrCorrupt
			if errors.As(err, &corrupt) {
				// A bad magic means this region is unreadable, not that
				// the mount is doomed: skip it and keep registering the
				// rest, per the area detector's contract.
				continue
			}
			return nil, &ErrNoMountableFilesystem{Cause: fmt.Errorf("area descriptor %d: %w", i, err)}
		}
		areas = append(areas, a)
	}

	h.registerAreas(areas)

	active, stale, err := h.resolveTwins(dev, h.dataAreas(), cfg.StrictScan)
	if err != nil {
		h.Reset()
		return nil, err
	}

	for _, a := range active {
		if err := h.scanArea(dev, a, cfg.StrictScan, h.accepter(dev)); err != nil {
			h.Reset()
			return nil, &ErrNoMountableFilesystem{Cause: fmt.Errorf("area %d: %w", a.Index, err)}
		}
	}

	if len(stale) > 0 && !cfg.ReadOnly {
		w, ok := dev.(writableDevice)
		if !ok {
			h.Reset()
			return nil, &ErrNoMountableFilesystem{Cause: &ErrInvalid{Reason: "crash recovery needs to reformat a stale area but the device is read-only"}}
		}
		var uuid [16]byte
		if len(active) > 0 {
			uuid = active[0].DeviceUUID
		}
		if err := reformatStaleAreas(w, stale, uuid, cfg.ScratchMinBytes); err != nil {
			h.Reset()
			return nil, &ErrNoMountableFilesystem{Cause: fmt.Errorf("reformatting stale area: %w", err)}
		}
	}

	h.sweep()

	if err := h.validate(); err != nil {
		h.Reset()
		return nil, err
	}

	return h, nil
}
