package cmd

import (
	"fmt"

	"github.com/flashfs/nffsrestore/internal/config"
	"github.com/flashfs/nffsrestore/internal/flash"
	"github.com/flashfs/nffsrestore/internal/restore"
	"github.com/flashfs/nffsrestore/pkg/app"
)

// openAndRestore opens imagePath as a flash device, lays it out into
// evenly-sized areas per cfg, and runs the restore pipeline. readOnly
// suppresses every write the pipeline would otherwise make to imagePath
// (fsck sets this so diagnosing an image never mutates it). The caller
// owns closing the returned device once done with the handle.
func openAndRestore(imagePath string, strictScan, readOnly bool) (*restore.Handle, flash.Device, error) {
	ctx := appContext()
	ctx.Log(fmt.Sprintf("loading config for %s", imagePath))

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, app.NewError(app.ErrCodeInvalidInput, "loading config", err)
	}
	cfg.StrictScan = strictScan
	cfg.ReadOnly = readOnly

	dev, err := flash.OpenFileDevice(imagePath)
	if err != nil {
		return nil, nil, app.NewError(app.ErrCodeDeviceAccess, fmt.Sprintf("opening %s", imagePath), err)
	}

	descs := restore.EvenAreaLayout(dev.Size(), cfg)
	if len(descs) == 0 {
		dev.Close()
		return nil, nil, app.NewError(app.ErrCodeInvalidInput,
			fmt.Sprintf("%s is smaller than one configured area (%d bytes)", imagePath, cfg.AreaSize), nil)
	}
	ctx.Log(fmt.Sprintf("restoring %d areas from %s", len(descs), imagePath))

	h, err := restore.Restore(dev, descs, cfg)
	if err != nil {
		dev.Close()
		return nil, nil, app.NewError(app.ErrCodeNotMountable, "restore failed", err)
	}
	ctx.Log(fmt.Sprintf("mount session %s: restored %s", h.MountID, imagePath))
	return h, dev, nil
}
