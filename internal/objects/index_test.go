package objects_test

import (
	"testing"

	"github.com/flashfs/nffsrestore/internal/objects"
	"github.com/flashfs/nffsrestore/internal/types"
)

func TestHashIndexInsertFind(t *testing.T) {
	idx := objects.NewHashIndex()
	in := &objects.Inode{ID: 5}
	idx.InsertInode(in)

	got, ok := idx.FindInode(5)
	if !ok || got != in {
		t.Fatalf("FindInode(5) = %v, %v", got, ok)
	}
	if _, ok := idx.FindBlock(5); ok {
		t.Fatal("FindBlock should not match an inode id")
	}
	if _, ok := idx.FindInode(6); ok {
		t.Fatal("FindInode(6) should not be found")
	}
}

func TestHashIndexRemove(t *testing.T) {
	idx := objects.NewHashIndex()
	idx.InsertInode(&objects.Inode{ID: 1})
	idx.Remove(1)
	if _, ok := idx.FindInode(1); ok {
		t.Fatal("expected id 1 to be removed")
	}
	if idx.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", idx.Len())
	}
}

func TestHashIndexLenCountsBothKinds(t *testing.T) {
	idx := objects.NewHashIndex()
	idx.InsertInode(&objects.Inode{ID: 1})
	idx.InsertBlock(&objects.Block{ID: 2})
	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", idx.Len())
	}
}

func TestSweepRemovesDummyInode(t *testing.T) {
	idx := objects.NewHashIndex()
	pools := objects.NewPools(16)

	dummy, err := pools.Inodes.Alloc()
	if err != nil {
		t.Fatalf("alloc: %v", err)
	}
	dummy.ID = 1
	dummy.Flags = types.InodeFlagDummy
	idx.InsertInode(dummy)

	idx.Sweep(pools)

	if _, ok := idx.FindInode(1); ok {
		t.Fatal("expected dummy inode to be swept")
	}
	if pools.Inodes.Len() != 0 {
		t.Fatalf("pool still holds %d inodes after sweep", pools.Inodes.Len())
	}
}

func TestSweepCascadesThroughRealChildrenOfAnUnresolvedDummyParent(t *testing.T) {
	idx := objects.NewHashIndex()
	pools := objects.NewPools(16)

	parent, _ := pools.Inodes.Alloc()
	parent.ID = 1
	parent.Flags = types.InodeFlagDummy
	idx.InsertInode(parent)

	child, _ := pools.Inodes.Alloc()
	child.ID = 2
	child.Flags = types.InodeFlagDirectory
	child.Parent = parent
	parent.Children = append(parent.Children, child)
	idx.InsertInode(child)

	grandchild, _ := pools.Inodes.Alloc()
	grandchild.ID = 3
	grandchild.Parent = child
	child.Children = append(child.Children, grandchild)
	idx.InsertInode(grandchild)

	idx.Sweep(pools)

	if idx.Len() != 0 {
		t.Fatalf("expected every object reachable only through the dummy parent to be swept, Len() = %d", idx.Len())
	}
	if pools.Inodes.Len() != 0 {
		t.Fatalf("expected pool to reclaim every swept inode, got %d still live", pools.Inodes.Len())
	}
}

func TestSweepRemovesOwnerlessBlock(t *testing.T) {
	idx := objects.NewHashIndex()
	pools := objects.NewPools(16)

	blk, _ := pools.Blocks.Alloc()
	blk.ID = 1
	idx.InsertBlock(blk)

	idx.Sweep(pools)

	if _, ok := idx.FindBlock(1); ok {
		t.Fatal("expected ownerless block to be swept")
	}
}

func TestSweepKeepsLiveObjects(t *testing.T) {
	idx := objects.NewHashIndex()
	pools := objects.NewPools(16)

	owner, _ := pools.Inodes.Alloc()
	owner.ID = 1
	owner.Flags = types.InodeFlagDirectory
	idx.InsertInode(owner)

	blk, _ := pools.Blocks.Alloc()
	blk.ID = 2
	blk.Owner = owner
	owner.Blocks = append(owner.Blocks, blk)
	idx.InsertBlock(blk)

	idx.Sweep(pools)

	if _, ok := idx.FindInode(1); !ok {
		t.Fatal("live inode should survive sweep")
	}
	if _, ok := idx.FindBlock(2); !ok {
		t.Fatal("owned block should survive sweep")
	}
}

func TestEachVisitsEveryObject(t *testing.T) {
	idx := objects.NewHashIndex()
	idx.InsertInode(&objects.Inode{ID: 1})
	idx.InsertInode(&objects.Inode{ID: 2})
	idx.InsertBlock(&objects.Block{ID: 3})

	var inodes, blocks int
	idx.Each(func(kind types.ObjType, _ *objects.Inode, _ *objects.Block) {
		switch kind {
		case types.ObjTypeInode:
			inodes++
		case types.ObjTypeBlock:
			blocks++
		}
	})
	if inodes != 2 || blocks != 1 {
		t.Fatalf("inodes=%d blocks=%d, want 2 and 1", inodes, blocks)
	}
}
