package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBindGroupLayout sets the bind group layout for this provider.
// Providers sharing a pipeline group pass the pipeline's layout so the bind group stays compatible.
//
// Parameters:
//   - bgl: the bind group layout to use for this provider
//
// Returns:
//   - BindGroupProviderOption: a function that sets the bind group layout for this provider
func WithBindGroupLayout(bgl *wgpu.BindGroupLayout) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.bindGroupLayout = bgl
	}
}

// WithInstanceCount sets the number of instances drawn from the provider's vertex buffer.
//
// Parameters:
//   - count: the instance count
//
// Returns:
//   - BindGroupProviderOption: a function that sets the instance count for this provider
func WithInstanceCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.instanceCount = count
	}
}
