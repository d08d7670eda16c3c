package digest

import "sync/atomic"

// Handle publishes an immutable Digest to concurrent readers. The digest has
// no write path after construction; a materials reload builds a fresh value
// and swaps it in wholesale, so readers only need publish-once visibility.
type Handle struct {
	ptr atomic.Pointer[Digest]
}

// NewHandle returns a handle publishing d.
func NewHandle(d *Digest) *Handle {
	h := &Handle{}
	h.ptr.Store(d)
	return h
}

// Current returns the currently published digest. Never nil once the handle
// is constructed via NewHandle.
func (h *Handle) Current() *Digest {
	return h.ptr.Load()
}

// Swap publishes a freshly built digest, replacing the previous one for all
// subsequent readers. In-flight readers keep the value they already loaded.
func (h *Handle) Swap(d *Digest) {
	h.ptr.Store(d)
}
