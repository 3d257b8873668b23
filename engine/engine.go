package engine

import (
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-go/engine/pipeline"
	"github.com/Carmen-Shannon/oxy-go/engine/profiler"
	"github.com/Carmen-Shannon/oxy-go/engine/renderer"
	"github.com/Carmen-Shannon/oxy-go/engine/window"
)

// defaultBufferSize is the initial byte size staging and storage pools are
// seeded with — enough for a modest instance count (§8 scenario 1) without an
// immediate grow-on-first-request.
const defaultBufferSize = 64 * pipeline.QuadSize

// Engine wires a window, a GPU backend, and the three pipeline stages
// (UIWorker, TransferWorker, RenderDriver) into a single runnable unit.
// Generalizes the teacher's engine.go — tick/render/quit goroutines driven
// by one shared quitChannel/WaitGroup — to the pipeline's UI/Transfer/Render
// goroutines, with the upstream-last join order the pipeline's handoffs
// require (the teacher's three goroutines don't reference each other, so it
// never needed ordered joins; this one does).
type Engine struct {
	window   window.Window
	renderer *renderer.Renderer

	ui       *pipeline.UIWorker
	transfer *pipeline.TransferWorker
	render   *pipeline.RenderDriver

	wg       sync.WaitGroup
	quitOnce sync.Once

	profiler         *profiler.Profiler
	profilingEnabled bool

	initialQuads  []pipeline.Quad
	mutate        pipeline.QuadMutator
	parallelMin   int
	stagingSize   uint64
	storageSize   uint64
	storageRetain bool
	forceFallback bool
	presentMode   *renderer.PresentMode
}

// NewEngine constructs a window (unless one was supplied via WithWindow), the
// GPU backend and pipeline stages, and wires the window's resize/close
// callbacks. The returned Engine has not started its goroutines yet — call
// Run.
func NewEngine(options ...EngineBuilderOption) *Engine {
	e := &Engine{
		stagingSize:   defaultBufferSize,
		storageSize:   defaultBufferSize,
		storageRetain: true,
		profiler:      profiler.NewProfiler(),
		mutate:        func(quads []pipeline.Quad, start, end int) {},
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		e.window = window.NewWindow()
	}

	var rendererOpts []renderer.RendererBuilderOption
	if e.presentMode != nil {
		rendererOpts = append(rendererOpts, renderer.WithPresentMode(*e.presentMode))
	}
	rendererOpts = append(rendererOpts, renderer.WithForceSoftwareRenderer(e.forceFallback))
	e.renderer = renderer.NewRenderer(e.window.SurfaceDescriptor(), rendererOpts...)
	e.renderer.Backend.ConfigureSurface(e.window.Width(), e.window.Height())

	backend := e.renderer.Backend
	device := backend.Device()
	queue := backend.Queue()
	layout := backend.QuadPipeline().BindGroupLayout

	stagingPool := pipeline.NewStagingPool(device, e.stagingSize)
	storagePool := pipeline.NewStoragePool(device, layout, e.storageSize, e.storageRetain)

	uiToTransfer := pipeline.NewBoundedHandoff[pipeline.UIMessage]()
	transferToRender := pipeline.NewBoundedHandoff[pipeline.TransferMessage]()

	e.ui = pipeline.NewUIWorker(stagingPool, uiToTransfer, e.initialQuads, e.mutate, e.parallelMin)
	e.transfer = pipeline.NewTransferWorker(device, queue, storagePool, uiToTransfer, transferToRender, e.ui)
	e.render = pipeline.NewRenderDriver(backend, transferToRender, e.window)

	e.window.SetResizeCallback(func(width, height int) {
		backend.ConfigureSurface(width, height)
	})
	e.window.SetCloseCallback(func() {
		e.Quit()
	})

	return e
}

// SetQuads replaces the UIWorker's live quad array, e.g. for a demo that
// ramps instance count over time.
func (e *Engine) SetQuads(quads []pipeline.Quad) {
	e.ui.SetQuads(quads)
}

// Window returns the underlying window.
func (e *Engine) Window() window.Window {
	return e.window
}

// Run starts the UI and Transfer goroutines, then blocks running the window
// message loop on the calling goroutine — the render driver's Frame is
// called once per loop iteration, since the GPU surface and its render pass
// must stay on the thread that owns the window (per §6's windowing
// contract).
func (e *Engine) Run() {
	e.wg.Add(2)
	go func() {
		defer e.wg.Done()
		e.ui.Run()
	}()
	go func() {
		defer e.wg.Done()
		e.transfer.Run()
	}()

	e.window.SetUpdateCallback(func() {
		e.render.Frame()
		if e.profilingEnabled {
			e.profiler.Tick()
		}
	})

	e.window.ProcessMessages()
	e.wg.Wait()
}

// Quit begins the shutdown cascade: RenderDriver stops first, which closes
// the Transfer→Render handoff's receive end so TransferWorker's next
// forwarding send observes Closed and stops UIWorker in turn. Safe to call
// multiple times.
func (e *Engine) Quit() {
	e.quitOnce.Do(func() {
		log.Println("[engine] shutdown requested")
		e.render.Stop()
	})
}
