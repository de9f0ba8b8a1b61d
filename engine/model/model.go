package model

import (
	"github.com/Carmen-Shannon/oxy-galaxy/common"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
	"github.com/lucasb-eyer/go-colorful"
)

// model is the implementation of the Model interface.
type model struct {
	name          string
	instanceData  []byte
	instanceCount int
	hasColors     bool
	boundingRad   float32
	pointSize     float32
	tint          colorful.Color
	meshProvider  bind_group_provider.BindGroupProvider
}

// Model is a GPU-ready star cloud: the packed per-instance vertex data of a galaxy.PointCloud
// plus the BindGroupProvider that owns its vertex buffer once uploaded.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// InstanceData retrieves the packed GPUStarInstance bytes.
	//
	// Returns:
	//   - []byte: InstanceCount * 24 bytes
	InstanceData() []byte

	// InstanceCount retrieves the number of stars.
	//
	// Returns:
	//   - int: the star count
	InstanceCount() int

	// HasColors reports whether the source cloud carried per-star colors.
	//
	// Returns:
	//   - bool: true if colors came from the cloud rather than defaulting to white
	HasColors() bool

	// BoundingRadius retrieves the largest distance of any star from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// PointSize retrieves the star size the cloud was generated with.
	//
	// Returns:
	//   - float32: the star size
	PointSize() float32

	// Tint retrieves the material color the cloud was generated with.
	//
	// Returns:
	//   - colorful.Color: the tint
	Tint() colorful.Color

	// MeshProvider retrieves the BindGroupProvider holding the uploaded vertex buffer.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider, or nil before upload
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider sets the BindGroupProvider holding the uploaded vertex buffer.
	//
	// Parameters:
	//   - provider: the provider
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)

	// Release releases the mesh provider's GPU resources and drops the packed data.
	Release()
}

var _ Model = &model{}

// NewModel packs a point cloud into per-instance vertex data.
// Stars without colors are packed white so the material tint shows through unchanged.
//
// Parameters:
//   - cloud: the generated point cloud; it is read, not retained
//   - options: functional options to configure the model
//
// Returns:
//   - Model: a new Model ready for upload
func NewModel(cloud *galaxy.PointCloud, options ...ModelBuilderOption) Model {
	m := &model{name: "galaxy", tint: colorful.Color{R: 1, G: 1, B: 1}}
	for _, opt := range options {
		opt(m)
	}
	if cloud == nil {
		return m
	}

	m.pointSize = cloud.Size
	m.tint = cloud.Tint
	m.instanceCount = cloud.Count()
	m.hasColors = cloud.HasColors()
	stars := make([]GPUStarInstance, m.instanceCount)
	var maxSq float32
	for i := range stars {
		i3 := i * 3
		star := &stars[i]
		copy(star.Position[:], cloud.Positions[i3:i3+3])
		if m.hasColors {
			copy(star.Color[:], cloud.Colors[i3:i3+3])
		} else {
			star.Color = [3]float32{1, 1, 1}
		}

		sq := star.Position[0]*star.Position[0] + star.Position[1]*star.Position[1] + star.Position[2]*star.Position[2]
		if sq > maxSq {
			maxSq = sq
		}
	}
	// GPUStarInstance is tightly packed float32s, so its memory is already the vertex buffer layout.
	m.instanceData = common.SliceToBytes(stars)
	m.boundingRad = sqrt32(maxSq)
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) InstanceData() []byte {
	return m.instanceData
}

func (m *model) InstanceCount() int {
	return m.instanceCount
}

func (m *model) HasColors() bool {
	return m.hasColors
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRad
}

func (m *model) PointSize() float32 {
	return m.pointSize
}

func (m *model) Tint() colorful.Color {
	return m.tint
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}

func (m *model) Release() {
	if m.meshProvider != nil {
		m.meshProvider.Release()
	}
	m.instanceData = nil
}
