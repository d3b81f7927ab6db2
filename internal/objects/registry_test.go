package objects

import (
	"testing"

	"github.com/flashfs/nffsrestore/internal/types"
)

func TestTypeRegistryLookup(t *testing.T) {
	r := NewTypeRegistry()

	tests := []struct {
		name      string
		input     types.ObjType
		wantFound bool
		wantName  string
	}{
		{"inode", types.ObjTypeInode, true, "Inode"},
		{"block", types.ObjTypeBlock, true, "Block"},
		{"unknown", types.ObjType(99), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := r.Lookup(tt.input)
			if ok != tt.wantFound {
				t.Fatalf("Lookup(%v): found = %v, want %v", tt.input, ok, tt.wantFound)
			}
			if ok && info.Name != tt.wantName {
				t.Errorf("Lookup(%v): name = %q, want %q", tt.input, info.Name, tt.wantName)
			}
		})
	}
}

func TestTypeRegistryListHasNoDuplicates(t *testing.T) {
	r := NewTypeRegistry()
	all := r.List()
	if len(all) == 0 {
		t.Fatal("List() returned 0 results")
	}

	seen := map[types.ObjType]bool{}
	for _, info := range all {
		if seen[info.Type] {
			t.Errorf("duplicate type in List(): %v", info.Type)
		}
		seen[info.Type] = true
	}
}
