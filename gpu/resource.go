package gpu

import (
	"fmt"

	"github.com/phanxgames/sapling/internal/logging"
)

// Resource is a GPU object that owns a native handle.
type Resource interface {
	Handle() uint32
	IsDisposed() bool
	Dispose()
}

// resource is the handle/latch pair embedded by every wrapper.
type resource struct {
	kind     string
	handle   uint32
	disposed bool
}

// Handle returns the native handle. It stays readable after disposal.
func (r *resource) Handle() uint32 {
	return r.handle
}

// IsDisposed reports whether the handle has been released.
func (r *resource) IsDisposed() bool {
	return r.disposed
}

func (r *resource) checkDisposed(op string) error {
	if r.disposed {
		return fmt.Errorf("gpu: %s on %s %d: %w", op, r.kind, r.handle, ErrDisposed)
	}
	return nil
}

// release calls free with the handle and then latches. Later calls are no-ops.
func (r *resource) release(free func(uint32)) {
	if r.disposed {
		return
	}
	free(r.handle)
	r.disposed = true
	logging.Logger().Debug("gpu: released", "kind", r.kind, "handle", r.handle)
}
