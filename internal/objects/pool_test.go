package objects_test

import (
	"testing"

	"github.com/flashfs/nffsrestore/internal/objects"
)

func TestInodePoolExhaustion(t *testing.T) {
	p := objects.NewInodePool(2)
	if _, err := p.Alloc(); err != nil {
		t.Fatalf("alloc 1: %v", err)
	}
	if _, err := p.Alloc(); err != nil {
		t.Fatalf("alloc 2: %v", err)
	}
	if _, err := p.Alloc(); err == nil {
		t.Fatal("expected OOM on third alloc, got nil")
	}
}

func TestInodePoolFreeReclaimsSlot(t *testing.T) {
	p := objects.NewInodePool(1)
	in, err := p.Alloc()
	if err != nil {
		t.Fatalf("alloc: %v", err)
	}
	p.Free(in)
	if _, err := p.Alloc(); err != nil {
		t.Fatalf("expected alloc to succeed after free: %v", err)
	}
}

func TestBlockPoolExhaustion(t *testing.T) {
	p := objects.NewBlockPool(1)
	if _, err := p.Alloc(); err != nil {
		t.Fatalf("alloc 1: %v", err)
	}
	if _, err := p.Alloc(); err == nil {
		t.Fatal("expected OOM, got nil")
	}
}
