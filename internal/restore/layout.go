package restore

import "github.com/flashfs/nffsrestore/internal/config"

// EvenAreaLayout carves a device of the given total size into
// contiguous, equally-sized areas of cfg.AreaSize bytes, discarding any
// short final area that doesn't fill a whole one. It is the layout a
// CLI front end uses when it only has a raw device path and a
// configured area size, as opposed to an embedded caller that already
// knows its own flash map.
func EvenAreaLayout(deviceSize int64, cfg *config.RestoreConfig) []AreaDescriptor {
	if cfg.AreaSize <= 0 {
		return nil
	}
	count := deviceSize / cfg.AreaSize
	descs := make([]AreaDescriptor, 0, count)
	for i := int64(0); i < count; i++ {
		descs = append(descs, AreaDescriptor{Offset: i * cfg.AreaSize, Length: cfg.AreaSize})
	}
	return descs
}
