package camera

// CameraController defines the union interface for camera control systems.
// Controllers own positional state (position, target). Camera reads from controller
// and computes view/projection matrices. Embeds both orbitCameraController and
// planarCameraController, enabling orbit and planar controls to work simultaneously
// from a single controller instance.
//
// Input methods do not move the camera directly. They accumulate a velocity that
// Update applies and decays, so motion eases out after the input stops.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetPosition places the camera at a world-space position and derives the orbit
	// radius, azimuth and elevation relative to the current target.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Zoom queues a change of orbit radius.
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Damping returns the fraction of the pending motion applied per Update.
	// A value of 0 disables damping and applies all pending motion at once.
	//
	// Returns:
	//   - float32: damping factor in [0, 1)
	Damping() float32

	// Update applies the pending motion and decays it by (1 - Damping).
	// Must be called once per frame.
	//
	// Returns:
	//   - bool: true if the camera moved
	Update() bool
}

// orbitCameraController defines orbit-specific control methods.
// Provides third-person orbit controls using spherical coordinates (radius, azimuth, elevation)
// relative to the target/pivot point.
type orbitCameraController interface {
	// Rotate queues an orbit around the target from a mouse drag.
	//
	// Parameters:
	//   - dx: horizontal drag in pixels, scaled by MouseSensitivity
	//   - dy: vertical drag in pixels, scaled by MouseSensitivity
	Rotate(dx, dy float32)

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// MinRadius returns the minimum allowed orbit radius.
	//
	// Returns:
	//   - float32: minimum zoom distance
	MinRadius() float32

	// MaxRadius returns the maximum allowed orbit radius.
	//
	// Returns:
	//   - float32: maximum zoom distance
	MaxRadius() float32

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle directly and recomputes position.
	//
	// Parameters:
	//   - azimuth: new horizontal angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - elevation: new vertical angle in radians
	SetElevation(elevation float32)

	// MinElevation returns the minimum allowed elevation angle.
	MinElevation() float32

	// MaxElevation returns the maximum allowed elevation angle.
	MaxElevation() float32

	// MouseSensitivity returns the mouse drag sensitivity multiplier.
	MouseSensitivity() float32

	// ZoomSpeed returns the zoom speed multiplier.
	ZoomSpeed() float32
}

// planarCameraController defines planar translation control methods.
// Panning shifts both position and target by the same offset, preserving the orbit relationship.
type planarCameraController interface {
	// PanRight queues a translation along the camera's local right axis.
	// Positive delta moves right, negative moves left.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanUp queues a translation along the camera's local up axis.
	// Positive delta moves up, negative moves down.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanUp(delta float32)

	// PanForward queues a translation along the camera's forward axis projected onto the ground plane.
	// Positive delta moves toward the target, negative moves away.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanForward(delta float32)

	// PanSpeed returns the pan speed multiplier.
	PanSpeed() float32
}
