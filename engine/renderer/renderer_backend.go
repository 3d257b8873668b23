package renderer

import "github.com/cogentcore/webgpu/wgpu"

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency. Default.
	PresentModeUncapped
)

// SurfaceStatus classifies the outcome of acquiring the next presentable surface texture.
type SurfaceStatus int

const (
	// SurfaceStatusGood means the texture was acquired and a frame can be drawn.
	SurfaceStatusGood SurfaceStatus = iota

	// SurfaceStatusReconfigure means the surface was lost or is outdated; the caller must
	// reconfigure the surface (ConfigureSurface) and skip this frame.
	SurfaceStatusReconfigure

	// SurfaceStatusSkip means a transient timeout occurred; skip this frame and try again
	// next iteration, no reconfiguration needed.
	SurfaceStatusSkip

	// SurfaceStatusFatal means the surface is out of memory or otherwise unrecoverable.
	SurfaceStatusFatal
)

// Backend is the GPU backend interface consumed by the render driver. It is deliberately
// narrow — only what a flat, bindless instanced quad draw needs — unlike a general-purpose
// scene renderer that also manages meshes, materials, and multiple cached pipelines.
type Backend interface {
	// Device returns the shared GPU device handle used to create buffers.
	Device() *wgpu.Device

	// Queue returns the shared GPU queue handle used to submit commands and
	// register submission-completion callbacks.
	Queue() *wgpu.Queue

	// ConfigureSurface (re)configures the swapchain for the given pixel dimensions.
	// Ignores zero dimensions per the windowing contract (§6).
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// AcquireFrame begins a frame: acquires the next surface texture, creates a command
	// encoder, and begins a render pass that clears to black. The second return value
	// classifies recoverable/fatal acquisition failures (§4.6 step 2).
	AcquireFrame() (*Frame, SurfaceStatus)

	// SubmitFrame ends the render pass, submits the command buffer, and registers
	// onDone to run once the GPU queue signals submission completion. It does not
	// present — call PresentFrame after SubmitFrame.
	SubmitFrame(f *Frame, onDone func())

	// PresentFrame presents the frame's surface texture and releases frame-local handles.
	PresentFrame(f *Frame)

	// DrawQuads binds bindGroup at slot 0, buffer as vertex buffer 0, and draws
	// 4 vertices per instance as a triangle strip.
	DrawQuads(f *Frame, buffer *wgpu.Buffer, bindGroup *wgpu.BindGroup, numInstances uint32)

	// QuadPipeline returns the render pipeline and bind group layout used to
	// draw instanced quads, built once at backend construction.
	QuadPipeline() *QuadPipeline
}
