package objects

import "fmt"

// ErrOOM is returned by a pool when its fixed capacity is exhausted. It
// is always fatal to the mount that triggered it.
type ErrOOM struct {
	Pool string
}

func (e *ErrOOM) Error() string { return fmt.Sprintf("%s pool exhausted", e.Pool) }

// InodePool is a fixed-capacity allocator for Inode records, modeling
// the embedded-systems object pool the restore core allocates from.
type InodePool struct {
	cap  int
	live map[*Inode]struct{}
}

func NewInodePool(capacity int) *InodePool {
	return &InodePool{cap: capacity, live: make(map[*Inode]struct{}, capacity)}
}

func (p *InodePool) Alloc() (*Inode, error) {
	if len(p.live) >= p.cap {
		return nil, &ErrOOM{Pool: "inode"}
	}
	in := &Inode{}
	p.live[in] = struct{}{}
	return in, nil
}

func (p *InodePool) Free(in *Inode) {
	delete(p.live, in)
}

func (p *InodePool) Len() int { return len(p.live) }

// BlockPool is a fixed-capacity allocator for Block records.
type BlockPool struct {
	cap  int
	live map[*Block]struct{}
}

func NewBlockPool(capacity int) *BlockPool {
	return &BlockPool{cap: capacity, live: make(map[*Block]struct{}, capacity)}
}

func (p *BlockPool) Alloc() (*Block, error) {
	if len(p.live) >= p.cap {
		return nil, &ErrOOM{Pool: "block"}
	}
	blk := &Block{}
	p.live[blk] = struct{}{}
	return blk, nil
}

func (p *BlockPool) Free(blk *Block) {
	delete(p.live, blk)
}

func (p *BlockPool) Len() int { return len(p.live) }

// Pools bundles the two object pools the reconstructor and sweeper share.
type Pools struct {
	Inodes *InodePool
	Blocks *BlockPool
}

// NewPools creates pools sized for capacity objects of each kind.
func NewPools(capacity int) *Pools {
	return &Pools{
		Inodes: NewInodePool(capacity),
		Blocks: NewBlockPool(capacity),
	}
}
