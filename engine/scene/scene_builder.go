package scene

import (
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/material"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithMaterial replaces the default additive points material.
// Blending and depth writes are read once when the pipeline is built.
//
// Parameters:
//   - mat: the points material
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMaterial(mat material.Material) SceneBuilderOption {
	return func(s *scene) {
		s.mat = mat
	}
}

// WithDisplayedCloud replaces the default GPU-backed cloud slot.
//
// Parameters:
//   - cloud: the slot the scene draws from
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDisplayedCloud(cloud DisplayedCloud) SceneBuilderOption {
	return func(s *scene) {
		s.cloud = cloud
	}
}

// WithPipelineKey sets the key the star pipeline is registered under.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPipelineKey(key string) SceneBuilderOption {
	return func(s *scene) {
		if key != "" {
			s.pipelineKey = key
		}
	}
}

// WithPixelRatio sets the initial device pixel ratio.
//
// Parameters:
//   - ratio: the device pixel ratio
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPixelRatio(ratio float32) SceneBuilderOption {
	return func(s *scene) {
		if ratio > 0 {
			s.pixelRatio = ratio
		}
	}
}
