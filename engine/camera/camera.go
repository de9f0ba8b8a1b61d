package camera

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-galaxy/common"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/bind_group_provider"
)

// cameraCount is an atomic counter used to generate unique bind group provider names for each camera instance.
var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	up [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	controller        CameraController
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera defines the interface for the camera system.
// The camera holds perspective settings and computes view/projection matrices
// from an attached CameraController each frame via Update().
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - x, y, z: up vector components
	Up() (x, y, z float32)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns the current view matrix (column-major).
	//
	// Returns:
	//   - [16]float32: view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current projection matrix (column-major).
	//
	// Returns:
	//   - [16]float32: projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns projection * view (column-major).
	//
	// Returns:
	//   - [16]float32: combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Uniform returns the camera state packed for the GPU camera uniform buffer.
	//
	// Returns:
	//   - GPUCameraUniform: view, projection and world-space position
	Uniform() GPUCameraUniform

	// Controller returns the attached camera controller, or nil.
	//
	// Returns:
	//   - CameraController: the attached controller
	Controller() CameraController

	// BindGroupProvider returns the camera's bind group provider.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider holding the camera uniform buffer
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Update advances the controller's damped motion and recomputes the matrices.
	// This is a no-op when no controller is attached.
	//
	// Returns:
	//   - bool: true if the controller moved the camera
	Update() bool

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - x, y, z: up vector components
	SetUp(x, y, z float32)

	// SetFov sets the vertical field of view.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio. Non-positive values are ignored.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetController attaches a controller and recomputes the matrices from it.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// SetBindGroupProvider sets the camera's bind group provider.
	//
	// Parameters:
	//   - provider: the bind group provider to set
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new perspective Camera with a 75 degree field of view and a
// near/far range of 0.1 to 100. A controller must be attached via SetController or the
// WithController option before position/target data is available.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		up:                   [3]float32{0, 1, 0},
		fov:                  75.0 * (math.Pi / 180.0), // radians
		aspect:               1.0,
		near:                 0.1,
		far:                  100.0,
		viewMatrix:           [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		projectionMatrix:     [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		viewProjectionMatrix: [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	cameraCount.Add(1)
	return c
}

func (c *cameraImpl) Up() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up[0], c.up[1], c.up[2]
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := GPUCameraUniform{
		View:       c.viewMatrix,
		Projection: c.projectionMatrix,
	}
	if c.controller != nil {
		u.CameraPosition[0], u.CameraPosition[1], u.CameraPosition[2] = c.controller.Position()
	}
	return u
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return false
	}
	moved := c.controller.Update()
	c.updateMatrices()
	return moved
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

func (c *cameraImpl) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindGroupProvider = provider
}

// updateMatrices recalculates the view, projection, and view-projection matrices.
// The projection is always rebuilt; the view needs a controller for position and target.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	common.Perspective(c.projectionMatrix[:],
		c.fov, c.aspect, c.near, c.far,
	)

	if c.controller != nil {
		px, py, pz := c.controller.Position()
		tx, ty, tz := c.controller.Target()

		common.LookAt(c.viewMatrix[:],
			px, py, pz,
			tx, ty, tz,
			c.up[0], c.up[1], c.up[2],
		)
	}

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
