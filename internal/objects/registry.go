package objects

import "github.com/flashfs/nffsrestore/internal/types"

// TypeInfo is human-readable metadata about one of the object kinds the
// restore pipeline recognizes, used by CLI reporting rather than by the
// merge logic itself.
type TypeInfo struct {
	Type        types.ObjType
	Name        string
	Description string
}

// TypeRegistry is a small static lookup from ObjType to its display
// metadata, the same shape as a type-code-to-description table but
// keyed on the two object kinds this filesystem actually has instead
// of a large enumerated on-disk type space.
type TypeRegistry struct {
	entries map[types.ObjType]TypeInfo
}

// NewTypeRegistry builds the registry. The two object kinds are fixed
// by the on-disk format, so this never needs to grow at runtime.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		entries: map[types.ObjType]TypeInfo{
			types.ObjTypeInode: {
				Type:        types.ObjTypeInode,
				Name:        "Inode",
				Description: "directory or file inode record",
			},
			types.ObjTypeBlock: {
				Type:        types.ObjTypeBlock,
				Name:        "Block",
				Description: "file data block record",
			},
		},
	}
}

// Lookup returns the display metadata for kind.
func (r *TypeRegistry) Lookup(kind types.ObjType) (TypeInfo, bool) {
	info, ok := r.entries[kind]
	return info, ok
}

// List returns every registered type, in no particular order.
func (r *TypeRegistry) List() []TypeInfo {
	out := make([]TypeInfo, 0, len(r.entries))
	for _, info := range r.entries {
		out = append(out, info)
	}
	return out
}
