package camera

import (
	"math"
	"sync"
)

// motionEpsilon is the magnitude below which pending motion is dropped.
const motionEpsilon = 1e-6

// cameraControllerImpl is the single implementation of CameraController.
// Orbit input accumulates spherical deltas and planar input accumulates a world-space
// pan offset. Update applies a damped share of both and decays what is left.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position [3]float32
	target   [3]float32

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
	damping          float32

	// Pending motion
	azimuthDelta   float32
	elevationDelta float32
	zoomDelta      float32
	panDelta       [3]float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new damped orbit controller.
// The default camera sits at (3, 3, 3) looking at the origin with a damping factor of 0.05.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		minRadius:    0.5,
		maxRadius:    60.0,
		minElevation: -float32(math.Pi/2 - 0.01),
		maxElevation: float32(math.Pi/2 - 0.01),

		mouseSensitivity: 0.005,
		zoomSpeed:        1.0,
		panSpeed:         0.05,
		damping:          0.05,
	}
	cc.setFromPosition(3, 3, 3)

	for _, option := range options {
		option(cc)
	}

	cc.clampOrbit()
	cc.updatePosition()
	return cc
}

// --- internal helpers ---

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(cc.elevation)))
	sinElev := float32(math.Sin(float64(cc.elevation)))
	cosAzim := float32(math.Cos(float64(cc.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.azimuth)))

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

// setFromPosition derives spherical coordinates from a world-space position relative to the target.
// Caller must hold the mutex or own the controller exclusively.
func (cc *cameraControllerImpl) setFromPosition(x, y, z float32) {
	dx := float64(x - cc.target[0])
	dy := float64(y - cc.target[1])
	dz := float64(z - cc.target[2])
	r := math.Sqrt(dx*dx + dy*dy + dz*dz)
	cc.radius = float32(r)
	if r < motionEpsilon {
		cc.azimuth, cc.elevation = 0, 0
		return
	}
	cc.azimuth = float32(math.Atan2(dx, dz))
	cc.elevation = float32(math.Asin(dy / r))
}

// clampOrbit keeps radius and elevation inside their bounds.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) clampOrbit() {
	cc.radius = clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = clamp(cc.elevation, cc.minElevation, cc.maxElevation)
}

// localAxes computes the camera's local coordinate axes consistent with the LookAt matrix.
// Returns right (rx,ry,rz), up (ux,uy,uz), and forward (fx,fy,fz) vectors.
// If position and target coincide, all returned components are zero.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (rx, ry, rz, ux, uy, uz, fx, fy, fz float32) {
	// backward = normalize(position - target), matching LookAt's z-axis
	bx := cc.position[0] - cc.target[0]
	by := cc.position[1] - cc.target[1]
	bz := cc.position[2] - cc.target[2]
	bLen := float32(math.Sqrt(float64(bx*bx + by*by + bz*bz)))
	if bLen < 1e-8 {
		return
	}
	bx /= bLen
	by /= bLen
	bz /= bLen

	// right = normalize(cross(worldUp, backward)) where worldUp = (0, 1, 0)
	rx = bz
	rz = -bx
	rLen := float32(math.Sqrt(float64(rx*rx + rz*rz)))
	if rLen < 1e-8 {
		return
	}
	rx /= rLen
	rz /= rLen

	// up = cross(backward, right), matching LookAt's y-axis
	ux = by*rz - bz*ry
	uy = bz*rx - bx*rz
	uz = bx*ry - by*rx

	fx = -bx
	fy = -by
	fz = -bz
	return
}

// step returns the share of a pending delta applied this update.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) step(delta float32) float32 {
	if cc.damping <= 0 {
		return delta
	}
	return delta * cc.damping
}

// decay shrinks a pending delta after an update, zeroing it once it is negligible.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) decay(delta float32) float32 {
	if cc.damping <= 0 {
		return 0
	}
	delta *= 1 - cc.damping
	if float32(math.Abs(float64(delta))) < motionEpsilon {
		return 0
	}
	return delta
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setFromPosition(x, y, z)
	cc.clampOrbit()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = [3]float32{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoomDelta += delta * cc.zoomSpeed
}

func (cc *cameraControllerImpl) Damping() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.damping
}

func (cc *cameraControllerImpl) Update() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	moving := cc.azimuthDelta != 0 || cc.elevationDelta != 0 || cc.zoomDelta != 0 ||
		cc.panDelta != [3]float32{}
	if !moving {
		return false
	}

	cc.azimuth += cc.step(cc.azimuthDelta)
	cc.elevation += cc.step(cc.elevationDelta)
	// Each zoom unit scales the radius by 0.95.
	cc.radius *= float32(math.Pow(0.95, float64(cc.step(cc.zoomDelta))))
	for i := range 3 {
		cc.target[i] += cc.step(cc.panDelta[i])
	}
	cc.clampOrbit()
	cc.updatePosition()

	cc.azimuthDelta = cc.decay(cc.azimuthDelta)
	cc.elevationDelta = cc.decay(cc.elevationDelta)
	cc.zoomDelta = cc.decay(cc.zoomDelta)
	for i := range 3 {
		cc.panDelta[i] = cc.decay(cc.panDelta[i])
	}
	return true
}

// --- orbitCameraController implementation ---

func (cc *cameraControllerImpl) Rotate(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	// Dragging right swings the camera left around the target.
	cc.azimuthDelta -= dx * cc.mouseSensitivity
	cc.elevationDelta += dy * cc.mouseSensitivity
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) MinRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minRadius
}

func (cc *cameraControllerImpl) MaxRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxRadius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = clamp(elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) MinElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minElevation
}

func (cc *cameraControllerImpl) MaxElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxElevation
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

// --- planarCameraController implementation ---

// Pan offsets scale with the orbit radius.

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	rx, ry, rz, _, _, _, _, _, _ := cc.localAxes()
	offset := delta * cc.panSpeed * cc.radius
	cc.panDelta[0] += rx * offset
	cc.panDelta[1] += ry * offset
	cc.panDelta[2] += rz * offset
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	_, _, _, ux, uy, uz, _, _, _ := cc.localAxes()
	offset := delta * cc.panSpeed * cc.radius
	cc.panDelta[0] += ux * offset
	cc.panDelta[1] += uy * offset
	cc.panDelta[2] += uz * offset
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	_, _, _, _, _, _, fx, _, fz := cc.localAxes()
	l := float32(math.Sqrt(float64(fx*fx + fz*fz)))
	if l < 1e-8 {
		return
	}
	offset := delta * cc.panSpeed * cc.radius / l
	cc.panDelta[0] += fx * offset
	cc.panDelta[2] += fz * offset
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}
