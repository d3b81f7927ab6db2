package flash

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// FileDevice backs a Device with a real file or block device path,
// following the same os.File + ReadAt + byte-budget cache shape the
// teacher codebase uses for its container reader: reads are cached by
// aligned chunk, and the whole cache is dropped rather than evicted
// piecemeal once it grows past maxCacheBytes.
type FileDevice struct {
	file *os.File
	size int64

	mu            sync.RWMutex
	cache         map[int64][]byte
	cacheBytes    int
	maxCacheBytes int
	chunkSize     int64
}

const defaultMaxCacheBytes = 8 * 1024 * 1024
const defaultChunkSize = 4096

// OpenFileDevice opens path for reading and writing raw bytes.
func OpenFileDevice(path string) (*FileDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open flash image: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat flash image: %w", err)
	}
	return &FileDevice{
		file:          f,
		size:          info.Size(),
		cache:         make(map[int64][]byte),
		maxCacheBytes: defaultMaxCacheBytes,
		chunkSize:     defaultChunkSize,
	}, nil
}

func (d *FileDevice) Size() int64 { return d.size }

func (d *FileDevice) Close() error { return d.file.Close() }

func (d *FileDevice) ReadAt(buf []byte, offset int64) error {
	if offset < 0 || offset+int64(len(buf)) > d.size {
		return &ErrRange{Offset: offset, Length: int64(len(buf)), Bound: d.size}
	}

	chunk := offset - offset%d.chunkSize
	d.mu.RLock()
	cached, ok := d.cache[chunk]
	d.mu.RUnlock()
	if ok && offset+int64(len(buf)) <= chunk+int64(len(cached)) {
		copy(buf, cached[offset-chunk:])
		return nil
	}

	// Read from the start of the chunk so the cached entry holds real
	// bytes for every offset it covers, not just the requested range.
	region := make([]byte, offset-chunk+int64(len(buf)))
	n, err := d.file.ReadAt(region, chunk)
	if err != nil && err != io.EOF {
		return &ErrFlash{Offset: offset, Cause: err}
	}
	if n < len(region) {
		return &ErrFlash{Offset: offset, Cause: fmt.Errorf("short read: got %d, want %d", n, len(region))}
	}
	copy(buf, region[offset-chunk:])

	d.cacheChunk(chunk, region, chunk)
	return nil
}

// WriteAt is used by the corruption recoverer to reformat a bad area as
// the new scratch; it is not part of the restore read path proper.
func (d *FileDevice) WriteAt(buf []byte, offset int64) error {
	if offset < 0 || offset+int64(len(buf)) > d.size {
		return &ErrRange{Offset: offset, Length: int64(len(buf)), Bound: d.size}
	}
	if _, err := d.file.WriteAt(buf, offset); err != nil {
		return &ErrFlash{Offset: offset, Cause: err}
	}
	d.mu.Lock()
	d.cache = make(map[int64][]byte)
	d.cacheBytes = 0
	d.mu.Unlock()
	return nil
}

func (d *FileDevice) cacheChunk(chunk int64, buf []byte, offset int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cacheBytes+len(buf) > d.maxCacheBytes {
		d.cache = make(map[int64][]byte)
		d.cacheBytes = 0
	}
	entry := make([]byte, offset-chunk+int64(len(buf)))
	copy(entry[offset-chunk:], buf)
	d.cache[chunk] = entry
	d.cacheBytes += len(entry)
}
