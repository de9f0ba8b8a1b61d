package main

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-galaxy/common"
	"github.com/Carmen-Shannon/oxy-galaxy/engine"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/camera"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/panel"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/window"
)

// dragPanScale converts right-drag pixels into pan steps.
const dragPanScale = 0.02

// controls maps window input onto the orbit camera and the parameter panel.
//
//	Left drag        orbit
//	Right drag, WASD pan (Q/E up and down)
//	Scroll           zoom
//	Left/Right, Tab  select parameter (Shift+Tab goes back)
//	Up/Down          adjust, held keys repeat, Shift for 10 steps; release commits
//	R                reset to the preset
type controls struct {
	mu *sync.Mutex

	cam   camera.CameraController
	panel panel.Panel

	// onChange runs after any panel edit, typically to refresh the window title.
	onChange func()
	// onReset runs when the reset key is pressed.
	onReset func()

	keys     map[uint32]bool
	drag     window.MouseButton
	dragging bool
	lastX    int32
	lastY    int32
}

func newControls(cam camera.CameraController, pnl panel.Panel, onChange, onReset func()) *controls {
	return &controls{
		mu:       &sync.Mutex{},
		cam:      cam,
		panel:    pnl,
		onChange: onChange,
		onReset:  onReset,
		keys:     make(map[uint32]bool),
	}
}

// attach registers the controls on the engine's window and tick loop.
func (c *controls) attach(eng engine.Engine) {
	w := eng.Window()
	w.SetKeyDownCallback(c.keyDown)
	w.SetKeyUpCallback(c.keyUp)
	w.SetMouseDownCallback(c.mouseDown)
	w.SetMouseUpCallback(c.mouseUp)
	w.SetMouseMoveCallback(c.mouseMove)
	w.SetScrollCallback(c.scroll)
	eng.SetTickCallback(c.tick)
}

// press records a key as held and reports whether it already was, which
// means the event is an auto-repeat.
func (c *controls) press(code uint32) (repeat, shift bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	repeat = c.keys[code]
	c.keys[code] = true
	shift = c.keys[common.KeyLeftShift] || c.keys[common.KeyRightShift]
	return repeat, shift
}

func (c *controls) held(code uint32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keys[code]
}

func (c *controls) keyDown(code uint32) {
	repeat, shift := c.press(code)

	steps := 1
	if shift {
		steps = 10
	}

	switch code {
	case common.KeyLeft, common.KeyRight:
		if repeat {
			return
		}
		c.panel.Select(code == common.KeyRight)
	case common.KeyTab:
		if repeat {
			return
		}
		c.panel.Select(!shift)
	case common.KeyUp, common.KeyDown:
		if code == common.KeyDown {
			steps = -steps
		}
		if repeat {
			if !c.panel.Repeat(steps) {
				return
			}
		} else {
			c.panel.Press(steps)
		}
	case common.KeyR:
		if repeat || c.onReset == nil {
			return
		}
		c.onReset()
	default:
		return
	}
	c.changed()
}

func (c *controls) keyUp(code uint32) {
	c.mu.Lock()
	c.keys[code] = false
	c.mu.Unlock()

	if code == common.KeyUp || code == common.KeyDown {
		c.panel.Release()
		c.changed()
	}
}

func (c *controls) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *controls) mouseDown(button window.MouseButton, x, y int32) {
	if button != window.MouseButtonLeft && button != window.MouseButtonRight {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drag, c.dragging = button, true
	c.lastX, c.lastY = x, y
}

func (c *controls) mouseUp(button window.MouseButton, _, _ int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging && button == c.drag {
		c.dragging = false
	}
}

func (c *controls) mouseMove(x, y int32) {
	c.mu.Lock()
	if !c.dragging {
		c.mu.Unlock()
		return
	}
	dx, dy := float32(x-c.lastX), float32(y-c.lastY)
	c.lastX, c.lastY = x, y
	button := c.drag
	c.mu.Unlock()

	if button == window.MouseButtonLeft {
		c.cam.Rotate(dx, dy)
		return
	}
	c.cam.PanRight(-dx * dragPanScale)
	c.cam.PanUp(dy * dragPanScale)
}

func (c *controls) scroll(delta float32) {
	c.cam.Zoom(delta)
}

// tick pans the camera while movement keys are held.
func (c *controls) tick(_ float32) {
	if c.held(common.KeyW) {
		c.cam.PanForward(1)
	}
	if c.held(common.KeyS) {
		c.cam.PanForward(-1)
	}
	if c.held(common.KeyA) {
		c.cam.PanRight(-1)
	}
	if c.held(common.KeyD) {
		c.cam.PanRight(1)
	}
	if c.held(common.KeyQ) {
		c.cam.PanUp(1)
	}
	if c.held(common.KeyE) {
		c.cam.PanUp(-1)
	}
}
