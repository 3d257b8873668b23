package renderer

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/quad.wgsl
var quadShaderSource string

// Frame holds the per-frame GPU handles created by AcquireFrame and consumed
// by SubmitFrame/PresentFrame. It is opaque to callers outside this package.
type Frame struct {
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
	surface *wgpu.Texture
	view    *wgpu.TextureView
}

// QuadPipeline is the single, static render pipeline this engine ever
// builds: one vertex-pulled, bindless instanced quad draw. Grounded directly
// on the original engine's QuadRenderer::new, which likewise builds its
// pipeline inline with no reflection or caching layer, because there is
// exactly one shader in the whole system.
type QuadPipeline struct {
	RenderPipeline  *wgpu.RenderPipeline
	BindGroupLayout *wgpu.BindGroupLayout
	PipelineLayout  *wgpu.PipelineLayout
}

// buildQuadPipeline creates the quad bind group layout (binding 0, read-only
// storage, vertex-stage visibility) and the render pipeline that draws
// instanced triangle-strip quads against it.
func buildQuadPipeline(device *wgpu.Device, surfaceFormat wgpu.TextureFormat) (*QuadPipeline, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Quad Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: quadShaderSource,
		},
	})
	if err != nil {
		return nil, err
	}

	bindGroupLayout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Quad Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeReadOnlyStorage,
					HasDynamicOffset: false,
					MinBindingSize:   0,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Quad Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{bindGroupLayout},
	})
	if err != nil {
		return nil, err
	}

	renderPipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Quad Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: 8, // vec2<f32>, unused for geometry — see quad.wgsl
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         0,
							ShaderLocation: 0,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format: surfaceFormat,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorZero,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorZero,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleStrip,
			FrontFace: wgpu.FrontFaceCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	return &QuadPipeline{
		RenderPipeline:  renderPipeline,
		BindGroupLayout: bindGroupLayout,
		PipelineLayout:  pipelineLayout,
	}, nil
}
