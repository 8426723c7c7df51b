// Package gpu wraps native graphics objects (vertex arrays, buffers, shaders
// and shader programs) behind handle-owning types.
//
// Every wrapper acquires its handle from an injected adapter at construction,
// exposes it read-only through Handle, and releases it exactly once in
// Dispose. Any other operation on a disposed wrapper fails with [ErrDisposed].
// Wrappers never talk to a graphics API directly: all work is delegated to the
// adapter, so the same code drives OpenGL, Ebitengine, or the recording
// adapter in gpu/gputest.
//
// The package is single-threaded. Call it from the goroutine that owns the
// graphics context.
package gpu
