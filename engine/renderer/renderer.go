package renderer

import "github.com/cogentcore/webgpu/wgpu"

// Renderer owns the GPU Backend and the configuration collected from
// builder options before the backend is constructed. Unlike the teacher's
// Renderer, it caches no pipeline map — there is exactly one pipeline in
// this system, owned directly by the backend.
type Renderer struct {
	Backend Backend

	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// NewRenderer applies options, then constructs the wgpu backend against
// surfaceDescriptor. Panics on adapter/device acquisition failure, matching
// the teacher's construction-time panic convention for unrecoverable
// environment errors.
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...RendererBuilderOption) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		opt(r)
	}

	backend := newWGPUBackend(surfaceDescriptor, r.forceFallbackAdapter)
	if r.pendingPresentMode != nil {
		backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.Backend = backend
	return r
}
