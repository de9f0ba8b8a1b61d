package model

import (
	"math"

	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/bind_group_provider"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMeshProvider is an option builder that attaches an already created BindGroupProvider.
//
// Parameters:
//   - provider: the provider owning the vertex buffer
//
// Returns:
//   - ModelBuilderOption: a function that applies the provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
