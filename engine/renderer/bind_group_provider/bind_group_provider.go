package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when no longer needed. They are populated by the Renderer during initialization, not by user-creation.

	// bindGroup is the GPU bind group created for this provider, or nil if not initialized with the Renderer.
	bindGroup *wgpu.BindGroup
	// bindGroupLayout is the GPU bind group layout created for this provider, or nil if not initialized with the Renderer.
	bindGroupLayout *wgpu.BindGroupLayout
	// buffers holds the GPU uniform buffers created for this provider, keyed by binding index.
	buffers map[int]*wgpu.Buffer

	// The following fields are specific to instanced providers such as the star cloud.

	// vertexBuffer is the per-instance vertex buffer, or nil if not initialized with the Renderer.
	vertexBuffer *wgpu.Buffer
	// instanceCount is the number of instances the Renderer draws from vertexBuffer.
	instanceCount int

	released bool
}

// BindGroupProvider defines the interface for components that require GPU bind group resources.
// Components (Camera, PointsMaterial, the displayed star cloud) hold a BindGroupProvider to describe
// their GPU binding requirements. The Renderer then uses this provider to initialize and update GPU resources.
//
// Usage pattern:
//  1. Component creates a BindGroupProvider with a debug label
//  2. Scene calls Renderer.InitBindGroup(provider, descriptor) to create uniform buffers and the bind group
//  3. Scene calls Renderer.WriteBuffers to update uniforms each frame
//  4. Renderer reads BindGroup() and VertexBuffer() while recording draw calls
type BindGroupProvider interface {
	// Release releases any GPU resources held by this provider.
	// Calling Release more than once is a no-op.
	Release()

	// Released reports whether Release has been called.
	//
	// Returns:
	//   - bool: true once the provider's GPU resources were released
	Released() bool

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the bind group layout used to create the bind group.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the GPU buffer for a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil if not created
	Buffer(binding int) *wgpu.Buffer

	// Buffers returns all GPU buffers keyed by binding index.
	//
	// Returns:
	//   - map[int]*wgpu.Buffer: the buffers
	Buffers() map[int]*wgpu.Buffer

	// VertexBuffer returns the per-instance vertex buffer.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// InstanceCount returns the number of instances to draw.
	//
	// Returns:
	//   - int: the instance count
	InstanceCount() int

	// SetBindGroup sets the bind group.
	//
	// Parameters:
	//   - bg: the bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout sets the bind group layout.
	//
	// Parameters:
	//   - bgl: the bind group layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer sets the GPU buffer for a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetVertexBuffer sets the per-instance vertex buffer.
	//
	// Parameters:
	//   - buf: the vertex buffer
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetInstanceCount sets the number of instances to draw.
	//
	// Parameters:
	//   - count: the instance count
	SetInstanceCount(count int)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: debug label used for every GPU object created for this provider
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Released() bool {
	return p.released
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Buffers() map[int]*wgpu.Buffer {
	return p.buffers
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) InstanceCount() int {
	return p.instanceCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = make(map[int]*wgpu.Buffer)
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetInstanceCount(count int) {
	p.instanceCount = count
}

func (p *bindGroupProvider) Release() {
	if p.released {
		return
	}
	p.released = true

	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	p.instanceCount = 0
}
