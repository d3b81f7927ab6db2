package restore

// sweep removes every dummy/deleted object and orphaned block left
// over once every area has been scanned and recovery has run. It is a
// thin entry point; the resilient bucket-snapshot walk itself lives on
// HashIndex, shared with anything else that needs the same removal
// semantics.
func (h *Handle) sweep() {
	h.Index.Sweep(h.Pools)
}
