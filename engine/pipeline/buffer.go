package pipeline

import "github.com/cogentcore/webgpu/wgpu"

// StagingBuffer is a host-mappable, copy-source GPU buffer used to upload
// quad data from the UI stage. When Ready is true the buffer is host-mapped
// and its contents are stale/undefined; when false, a producer is writing it
// or a transfer is reading it.
type StagingBuffer struct {
	Buffer *wgpu.Buffer
	Ready  *ReadyFlag
	Size   uint64
}

// StorageBuffer is a device-local, shader-readable GPU buffer used as draw
// input. Its bind group is built once at allocation time against a fixed
// bind group layout (binding 0 = the whole buffer) and stays valid for the
// buffer's lifetime. When Ready is true the buffer holds no in-flight work.
type StorageBuffer struct {
	Buffer    *wgpu.Buffer
	BindGroup *wgpu.BindGroup
	Ready     *ReadyFlag
	Size      uint64
}

func (b *StagingBuffer) readyFlag() *ReadyFlag { return b.Ready }
func (b *StagingBuffer) byteSize() uint64      { return b.Size }

func (b *StorageBuffer) readyFlag() *ReadyFlag { return b.Ready }
func (b *StorageBuffer) byteSize() uint64      { return b.Size }

// createStagingBuffer allocates a new host-mapped staging buffer of size
// bytes. Usage bits include host-write and copy-source per the staging
// allocator contract.
func createStagingBuffer(device *wgpu.Device, size uint64) (*StagingBuffer, error) {
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Staging Buffer",
		Size:             size,
		Usage:            wgpu.BufferUsageMapWrite | wgpu.BufferUsageCopySrc,
		MappedAtCreation: true,
	})
	if err != nil {
		return nil, err
	}
	return &StagingBuffer{
		Buffer: buf,
		Ready:  NewReadyFlag(false),
		Size:   size,
	}, nil
}

// createStorageBuffer allocates a new device-local storage buffer of size
// bytes and builds its fixed bind group against layout. Usage bits include
// copy-destination, storage, and vertex per the storage allocator contract.
func createStorageBuffer(device *wgpu.Device, layout *wgpu.BindGroupLayout, size uint64) (*StorageBuffer, error) {
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Storage Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageStorage | wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Storage Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buf,
				Offset:  0,
				Size:    size,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return &StorageBuffer{
		Buffer:    buf,
		BindGroup: bindGroup,
		Ready:     NewReadyFlag(false),
		Size:      size,
	}, nil
}
