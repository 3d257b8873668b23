package pipeline

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
)

// TransferWorker copies staging→storage on the GPU queue and remaps staging
// once the copy completes. It owns a storage BufferPool, the shared
// device/queue handles, the receive end of UI→Transfer, and the send end of
// Transfer→Render.
type TransferWorker struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	pool   *StoragePool
	in     *BoundedHandoff[UIMessage]
	out    *BoundedHandoff[TransferMessage]

	ui    *UIWorker
	alive atomic.Bool
	stats Stats
}

// NewTransferWorker constructs a TransferWorker. ui is the upstream worker
// this TransferWorker stops once its own loop exits, per the upstream-last
// shutdown cascade. It does not wait for the UIWorker's goroutine to return;
// Engine.Run's WaitGroup waits for both goroutines.
func NewTransferWorker(device *wgpu.Device, queue *wgpu.Queue, pool *StoragePool, in *BoundedHandoff[UIMessage], out *BoundedHandoff[TransferMessage], ui *UIWorker) *TransferWorker {
	t := &TransferWorker{device: device, queue: queue, pool: pool, in: in, out: out, ui: ui}
	t.alive.Store(true)
	return t
}

// Run is the TransferWorker's long-lived loop. On exit it stops the
// UIWorker (without waiting for it to return), then prints its timing stats.
func (t *TransferWorker) Run() {
	storage, err := t.pool.Request(0)
	if err != nil {
		log.Printf("[transfer worker] initial storage allocation failed: %v", err)
	}

	for t.alive.Load() {
		msg, ok := t.in.Recv()
		if !ok {
			break
		}

		start := time.Now()
		storage = t.iterate(msg, storage)
		t.stats.Update(time.Since(start).Seconds())
	}

	t.ui.Stop()
	log.Printf("├─ transfer : %s", t.stats.String())
}

func (t *TransferWorker) iterate(msg UIMessage, storage *StorageBuffer) *StorageBuffer {
	numBytes := uint64(msg.NumInstances) * QuadSize

	if storage == nil || storage.Size < numBytes {
		next, err := t.pool.Request(numBytes)
		if err != nil {
			log.Printf("[transfer worker] storage (re)allocation failed: %v", err)
			return storage
		}
		storage = next
	}

	encoder, err := t.device.CreateCommandEncoder(nil)
	if err != nil {
		log.Printf("[transfer worker] command encoder creation failed: %v", err)
		return storage
	}
	encoder.CopyBufferToBuffer(msg.Staging.Buffer, 0, storage.Buffer, 0, numBytes)

	cmd, err := encoder.Finish(nil)
	if err != nil {
		log.Printf("[transfer worker] command buffer finish failed: %v", err)
		encoder.Release()
		return storage
	}
	t.queue.Submit(cmd)
	cmd.Release()
	encoder.Release()

	staging := msg.Staging
	device := t.device
	queue := t.queue
	t.queue.OnSubmittedWorkDone(func() {
		staging.Buffer.MapAsync(wgpu.MapModeWrite, 0, staging.Size, func(status wgpu.BufferMapAsyncStatus) {
			if status != wgpu.BufferMapAsyncStatusSuccess {
				log.Printf("[transfer worker] staging remap failed: status=%v", status)
				return
			}
			staging.Ready.Release()
		})
		device.Poll(true, nil)
		_ = queue
	})

	switch t.out.TrySend(TransferMessage{Storage: storage, NumInstances: msg.NumInstances}) {
	case Delivered:
		// Render now owns this buffer; acquire a fresh one to pre-request next iteration.
		next, err := t.pool.Request(0)
		if err != nil {
			log.Printf("[transfer worker] pre-request after delivery failed: %v", err)
			return nil
		}
		return next
	case Full:
		// Render hasn't consumed the prior message; keep this buffer for next iteration.
		return storage
	case Closed:
		t.alive.Store(false)
		return storage
	}
	return storage
}
