package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	renderer.Renderer
	calls    []string
	beginErr error
	width    int
	height   int
}

func (r *fakeRenderer) BeginFrame() error {
	r.calls = append(r.calls, "begin")
	return r.beginErr
}

func (r *fakeRenderer) EndFrame() {
	r.calls = append(r.calls, "end")
}

func (r *fakeRenderer) Present() {
	r.calls = append(r.calls, "present")
}

func (r *fakeRenderer) Resize(width, height int) {
	r.width, r.height = width, height
}

type fakeScene struct {
	scene.Scene
	name    string
	active  bool
	r       *fakeRenderer
	drawErr error
	updates int
	width   int
	ratio   float32
}

func (s *fakeScene) Active() bool                { return s.active }
func (s *fakeScene) Renderer() renderer.Renderer { return s.r }
func (s *fakeScene) Update(float32)              { s.updates++ }
func (s *fakeScene) Resize(width, _ int)         { s.width = width }
func (s *fakeScene) SetPixelRatio(ratio float32) { s.ratio = ratio }

func (s *fakeScene) DrawCalls() error {
	s.r.calls = append(s.r.calls, "draw:"+s.name)
	return s.drawErr
}

func TestActiveScenesAreOrderedByKey(t *testing.T) {
	r := &fakeRenderer{}
	e := NewEngine(
		WithScene(5, &fakeScene{name: "top", active: true, r: r}),
		WithScene(-1, &fakeScene{name: "bottom", active: true, r: r}),
		WithScene(2, &fakeScene{name: "hidden", active: false, r: r}),
	).(*engine)

	active := e.activeScenes()
	require.Len(t, active, 2)
	assert.Equal(t, "bottom", active[0].(*fakeScene).name)
	assert.Equal(t, "top", active[1].(*fakeScene).name)
}

func TestRenderFrameLifecycle(t *testing.T) {
	r := &fakeRenderer{}
	a := &fakeScene{name: "a", active: true, r: r, drawErr: errors.New("boom")}
	b := &fakeScene{name: "b", active: true, r: r}
	e := NewEngine().(*engine)

	e.renderFrame(r, []scene.Scene{a, b})
	assert.Equal(t, []string{"begin", "draw:a", "draw:b", "end", "present"}, r.calls)

	r.calls = nil
	r.beginErr = errors.New("surface lost")
	e.renderFrame(r, []scene.Scene{a, b})
	assert.Equal(t, []string{"begin"}, r.calls)

	assert.NotPanics(t, func() { e.renderFrame(nil, nil) })
}

func TestResizeForwardsToScenes(t *testing.T) {
	r := &fakeRenderer{}
	s := &fakeScene{name: "s", r: r}
	e := NewEngine(WithScene(0, s)).(*engine)

	e.resize(800, 600)
	assert.Equal(t, 800, r.width)
	assert.Equal(t, 600, r.height)
	assert.Equal(t, 800, s.width)
	assert.Equal(t, float32(1), s.ratio)

	e.resize(0, 0)
	assert.Equal(t, 800, r.width, "minimized windows are ignored")
}

func TestSceneRegistry(t *testing.T) {
	e := NewEngine()
	s := &fakeScene{name: "s"}
	e.AddScene(3, s)
	assert.Same(t, s, e.Scene(3))

	cp := e.Scenes()
	delete(cp, 3)
	assert.NotNil(t, e.Scene(3), "Scenes returns a copy")

	e.RemoveScene(3)
	assert.Nil(t, e.Scene(3))
}

func TestTickAndFrameRates(t *testing.T) {
	e := NewEngine(WithTickRate(0), WithRenderFrameLimit(120)).(*engine)
	assert.Equal(t, time.Second/60, e.engineTickRate)
	assert.Equal(t, time.Second/120, e.renderFrameLimit)

	e.SetTickRate(30)
	assert.Equal(t, time.Second/30, e.engineTickRate)

	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
}

func TestQuitIsIdempotent(t *testing.T) {
	e := NewEngine()
	e.Quit()
	assert.NotPanics(t, e.Quit)
}
