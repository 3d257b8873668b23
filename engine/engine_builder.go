package engine

import (
	"github.com/Carmen-Shannon/oxy-go/common"
	"github.com/Carmen-Shannon/oxy-go/engine/pipeline"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer"
	"github.com/Carmen-Shannon/oxy-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine
// during construction via NewEngine.
type EngineBuilderOption func(*Engine)

// WithWindow sets a pre-configured window for the engine to use instead of
// letting NewEngine create one with defaults.
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *Engine) {
		e.window = w
	}
}

// WithInitialQuads sets the quad array the UIWorker starts with.
func WithInitialQuads(quads []pipeline.Quad) EngineBuilderOption {
	return func(e *Engine) {
		e.initialQuads = quads
	}
}

// WithMutator sets the per-iteration quad mutator the UIWorker applies.
func WithMutator(mutate pipeline.QuadMutator) EngineBuilderOption {
	return func(e *Engine) {
		e.mutate = mutate
	}
}

// WithParallelMin sets the instance-count threshold at or above which quad
// mutation is spread across a persistent worker pool. 0 (default) always
// mutates sequentially.
func WithParallelMin(threshold int) EngineBuilderOption {
	return func(e *Engine) {
		e.parallelMin = threshold
	}
}

// WithProfiling enables or disables the periodic heap/GC profiler report,
// ticked once per render frame.
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *Engine) {
		e.profilingEnabled = enabled
	}
}

// WithStagingBufferSize sets the staging pool's initial buffer size in bytes.
// A zero value leaves the engine's default size in place instead of seeding
// the pool with a useless zero-capacity buffer.
func WithStagingBufferSize(bytes uint64) EngineBuilderOption {
	return func(e *Engine) {
		e.stagingSize = common.Coalesce(bytes, e.stagingSize)
	}
}

// WithStorageBufferSize sets the storage pool's initial buffer size in bytes.
// A zero value leaves the engine's default size in place instead of seeding
// the pool with a useless zero-capacity buffer.
func WithStorageBufferSize(bytes uint64) EngineBuilderOption {
	return func(e *Engine) {
		e.storageSize = common.Coalesce(bytes, e.storageSize)
	}
}

// WithStorageRetain controls whether the storage pool retains buffers for
// reuse (default true) or hands out one-shot buffers.
func WithStorageRetain(retain bool) EngineBuilderOption {
	return func(e *Engine) {
		e.storageRetain = retain
	}
}

// WithForceSoftwareRenderer forces the GPU backend onto a CPU/software
// fallback adapter (requires a software Vulkan ICD on the host).
func WithForceSoftwareRenderer(force bool) EngineBuilderOption {
	return func(e *Engine) {
		e.forceFallback = force
	}
}

// WithPresentMode sets the surface present mode applied once the backend is
// constructed.
func WithPresentMode(mode renderer.PresentMode) EngineBuilderOption {
	return func(e *Engine) {
		e.presentMode = &mode
	}
}
