package pipeline

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-go/engine/renderer"
)

// TitleSetter updates the host window's title bar, used for the per-frame
// FPS readout. window.Window satisfies this directly; kept as an interface
// here so this package never imports the window package directly.
type TitleSetter interface {
	SetTitle(title string)
}

// RenderDriver lives on the thread that owns the display surface — the
// windowing event-loop thread. Each call to Frame receives one Transfer
// message, draws it, and schedules the storage buffer's recycle once the GPU
// submission completes.
type RenderDriver struct {
	backend renderer.Backend
	in      *BoundedHandoff[TransferMessage]
	title   TitleSetter

	quit     chan struct{}
	quitOnce sync.Once
	stats    Stats
}

// NewRenderDriver constructs a RenderDriver. title may be nil to skip the
// FPS window-title readout (e.g. in headless tests).
func NewRenderDriver(backend renderer.Backend, in *BoundedHandoff[TransferMessage], title TitleSetter) *RenderDriver {
	return &RenderDriver{
		backend: backend,
		in:      in,
		title:   title,
		quit:    make(chan struct{}),
	}
}

// Frame blocks for the next Transfer message (or shutdown) and, if one
// arrives, draws and presents it. Returns false once the driver has been
// stopped, signaling the caller's windowing loop to stop calling Frame.
func (r *RenderDriver) Frame() bool {
	select {
	case <-r.quit:
		return false
	case msg, ok := <-r.in.Chan():
		if !ok {
			return false
		}
		start := time.Now()
		r.draw(msg)
		elapsed := time.Since(start)
		r.stats.Update(elapsed.Seconds())
		r.updateTitle(elapsed)
		return true
	}
}

func (r *RenderDriver) draw(msg TransferMessage) {
	frame, status := r.backend.AcquireFrame()
	switch status {
	case renderer.SurfaceStatusGood:
		r.backend.DrawQuads(frame, msg.Storage.Buffer, msg.Storage.BindGroup, uint32(msg.NumInstances))
		storage := msg.Storage
		r.backend.SubmitFrame(frame, func() {
			storage.Ready.Release()
		})
		r.backend.PresentFrame(frame)
	case renderer.SurfaceStatusReconfigure:
		log.Printf("[render driver] surface lost/outdated, skipping frame")
		// The driver does not call ConfigureSurface itself; the surface is
		// reconfigured only by the window's resize callback on the next
		// Resized event. No GPU work references the storage buffer, so it
		// is released back to its pool right away.
		msg.Storage.Ready.Release()
	case renderer.SurfaceStatusSkip:
		log.Printf("[render driver] surface acquisition timed out, skipping frame")
		msg.Storage.Ready.Release()
	case renderer.SurfaceStatusFatal:
		log.Printf("[render driver] fatal surface error, stopping")
		r.Stop()
	}
}

func (r *RenderDriver) updateTitle(frameTime time.Duration) {
	if r.title == nil {
		return
	}
	fps := 1.0 / frameTime.Seconds()
	r.title.SetTitle(fmt.Sprintf("FPS: %.2f", fps))
}

// Stop signals the render loop to stop and marks this handoff's receive end
// closed so TransferWorker's next forwarding TrySend observes Closed and
// begins the downstream cascade, per the upstream-last shutdown ordering.
func (r *RenderDriver) Stop() {
	r.quitOnce.Do(func() { close(r.quit) })
	r.in.CloseReceive()
	log.Printf("╰─ render : %s", r.stats.String())
}
