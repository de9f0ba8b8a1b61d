package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithTarget sets the look-at/pivot point.
// Options are applied in order, so WithTarget should precede WithPosition.
//
// Parameters:
//   - x: X coordinate of the target
//   - y: Y coordinate of the target
//   - z: Z coordinate of the target
//
// Returns:
//   - CameraControllerOption: functional option to set the target position
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = [3]float32{x, y, z}
	}
}

// WithPosition sets the initial camera position, deriving orbit radius and angles from it.
//
// Parameters:
//   - x, y, z: world-space camera position
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.setFromPosition(x, y, z)
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - CameraControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: minimum vertical angle in radians
//   - max: maximum vertical angle in radians
//
// Returns:
//   - CameraControllerOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithMouseSensitivity sets the mouse drag sensitivity.
//
// Parameters:
//   - sensitivity: radians per dragged pixel
//
// Returns:
//   - CameraControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - CameraControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the planar pan speed multiplier.
//
// Parameters:
//   - speed: fraction of the orbit radius moved per pan unit
//
// Returns:
//   - CameraControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithDamping sets the damping factor. Values outside [0, 1) are clamped.
// A factor of 0 applies input immediately.
//
// Parameters:
//   - damping: fraction of pending motion applied per update
//
// Returns:
//   - CameraControllerOption: functional option to set damping
func WithDamping(damping float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.damping = clamp(damping, 0, 0.99)
	}
}
