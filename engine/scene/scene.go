package scene

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-galaxy/common"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/camera"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/model"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/shader"
)

//go:embed assets/galaxy_vertex.wgsl
var galaxyVertexSource string

//go:embed assets/galaxy_fragment.wgsl
var galaxyFragmentSource string

// starVertices is the number of vertices in one star billboard (two triangles).
const starVertices = 6

// Scene draws the displayed galaxy cloud with a camera and a points material.
// Scenes can be hot-swapped via the Active flag. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Material returns the points material used for every star.
	Material() material.Material

	// Cloud returns the slot holding the displayed point cloud.
	Cloud() DisplayedCloud

	// PipelineKey returns the key of the star render pipeline.
	PipelineKey() string

	// Update advances the camera controller.
	//
	// Parameters:
	//   - deltaTime: seconds since the last update
	Update(deltaTime float32)

	// Resize records the framebuffer size used for the camera aspect and the material viewport.
	// Zero sizes are ignored.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	Resize(width, height int)

	// SetPixelRatio records the device pixel ratio used to scale star size.
	//
	// Parameters:
	//   - ratio: the device pixel ratio
	SetPixelRatio(ratio float32)

	// DrawCalls writes the camera and material uniforms and encodes the star draw.
	// Must be called between the renderer's BeginFrame and EndFrame.
	//
	// Returns:
	//   - error: an error if the draw could not be encoded
	DrawCalls() error

	// Release disposes the displayed cloud and the scene's GPU bind groups.
	Release()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam   camera.Camera
	r     renderer.Renderer
	mat   material.Material
	cloud DisplayedCloud

	pipelineKey string
	width       int
	height      int
	pixelRatio  float32

	// Resolved once at construction, ordered by @group index.
	bindGroups      []bind_group_provider.BindGroupProvider
	cameraBinding   int
	materialBinding int

	writePool []bind_group_provider.BufferWrite
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates the galaxy scene: it compiles the embedded star shaders, registers the
// billboard pipeline, and initializes the camera and material bind groups on the GPU.
// NewScene panics if cam or r is nil or if GPU initialization fails.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - width: initial framebuffer width in pixels
//   - height: initial framebuffer height in pixels
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, width, height int, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:          &sync.RWMutex{},
		name:        name,
		cam:         cam,
		r:           r,
		pipelineKey: "galaxy_points",
		pixelRatio:  1,
		writePool:   make([]bind_group_provider.BufferWrite, 0, 2),
	}
	for _, option := range options {
		option(s)
	}
	if s.mat == nil {
		s.mat = material.NewMaterial()
	}
	if s.cloud == nil {
		s.cloud = NewDisplayedCloud(NewGPUUploader(r))
	}
	s.Resize(width, height)

	vs, err := shader.NewShaderFromSource("galaxy_vertex", shader.ShaderTypeVertex, galaxyVertexSource)
	if err != nil {
		panic(fmt.Sprintf("scene: failed to parse vertex shader: %v", err))
	}
	fs, err := shader.NewShaderFromSource("galaxy_fragment", shader.ShaderTypeFragment, galaxyFragmentSource)
	if err != nil {
		panic(fmt.Sprintf("scene: failed to parse fragment shader: %v", err))
	}

	s.mat.SetPipelineKey(s.pipelineKey)
	if s.mat.BindGroupProvider() == nil {
		s.mat.SetBindGroupProvider(bind_group_provider.NewBindGroupProvider(s.mat.Name()))
	}

	if err := r.RegisterPipelines(newStarPipeline(s.pipelineKey, vs, fs, s.mat)); err != nil {
		panic(fmt.Sprintf("scene: %v", err))
	}

	var decls []shader.Annotation
	decls = append(decls, vs.Declarations()...)
	decls = append(decls, fs.Declarations()...)
	groups, err := resolveBindGroups(decls, cam.BindGroupProvider(), s.mat.BindGroupProvider())
	if err != nil {
		panic(fmt.Sprintf("scene: %v", err))
	}
	s.cameraBinding = groups.cameraBinding
	s.materialBinding = groups.materialBinding
	s.bindGroups = groups.providers

	// The pipeline layout merges both stages, so bind groups are created from the merged descriptors.
	layouts := renderer.MergeBindGroupLayouts(vs.BindGroupLayoutDescriptors(), fs.BindGroupLayoutDescriptors())
	for g, provider := range s.bindGroups {
		if err := r.InitBindGroup(provider, layouts[g]); err != nil {
			panic(fmt.Sprintf("scene: failed to init bind group %d (%s): %v", g, provider.Label(), err))
		}
	}

	return s
}

// newStarPipeline describes the billboard pipeline for a points material.
// Depth is tested but, unless the material asks for it, not written so overlapping stars all blend.
func newStarPipeline(key string, vs, fs shader.Shader, mat material.Material) pipeline.Pipeline {
	opts := []pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithDepthTestEnabled(true),
		pipeline.WithDepthWriteEnabled(mat.DepthWrite()),
		pipeline.WithVerticesPerInstance(starVertices),
	}
	switch mat.Blending() {
	case material.BlendAdditive:
		opts = append(opts, pipeline.WithAdditiveBlending())
	default:
		opts = append(opts, pipeline.WithBlendEnabled(true))
	}
	return pipeline.NewPipeline(key, opts...)
}

// resolvedBindGroups is the result of matching shader declarations to providers.
type resolvedBindGroups struct {
	providers       []bind_group_provider.BindGroupProvider
	cameraBinding   int
	materialBinding int
}

// resolveBindGroups maps each declared @group to the provider that backs it.
// Groups must be contiguous from 0 since the pipeline layout is built in index order.
//
// Parameters:
//   - decls: declarations collected from every shader stage of the pipeline
//   - cameraProvider: the provider backing camera uniforms
//   - materialProvider: the provider backing points material uniforms
//
// Returns:
//   - resolvedBindGroups: providers ordered by group plus the uniform bindings
//   - error: an error if a declared group has no provider or groups are not contiguous
func resolveBindGroups(decls []shader.Annotation, cameraProvider, materialProvider bind_group_provider.BindGroupProvider) (resolvedBindGroups, error) {
	res := resolvedBindGroups{cameraBinding: -1, materialBinding: -1}
	byGroup := make(map[int]bind_group_provider.BindGroupProvider)

	for _, decl := range decls {
		if decl.Group == nil {
			continue
		}
		g := *decl.Group

		var provider bind_group_provider.BindGroupProvider
		switch decl.Type {
		case shader.AnnotationTypeProvider:
			switch decl.Args[0] {
			case shader.AnnotationArgCamera:
				provider = cameraProvider
			case shader.AnnotationArgMaterial:
				provider = materialProvider
			}
		case shader.AnnotationTypeBindingGroup:
			switch decl.Args[2] {
			case shader.AnnotationArgCamera:
				provider = cameraProvider
				res.cameraBinding = *decl.Binding
			case shader.AnnotationArgPointsMaterial:
				provider = materialProvider
				res.materialBinding = *decl.Binding
			}
		}
		if provider == nil {
			return res, fmt.Errorf("no provider for @group(%d) declared on line %d", g, decl.Line)
		}
		if existing, ok := byGroup[g]; ok && existing != provider {
			return res, fmt.Errorf("@group(%d) is claimed by both %s and %s", g, existing.Label(), provider.Label())
		}
		byGroup[g] = provider
	}

	groups := make([]int, 0, len(byGroup))
	for g := range byGroup {
		groups = append(groups, g)
	}
	sort.Ints(groups)
	for i, g := range groups {
		if g != i {
			return res, fmt.Errorf("bind groups must be contiguous from 0, missing @group(%d)", i)
		}
		res.providers = append(res.providers, byGroup[g])
	}
	return res, nil
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Material() material.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mat
}

func (s *scene) Cloud() DisplayedCloud {
	return s.cloud
}

func (s *scene) PipelineKey() string {
	return s.pipelineKey
}

func (s *scene) Update(deltaTime float32) {
	s.mu.RLock()
	cam := s.cam
	s.mu.RUnlock()
	cam.Update()
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	s.width = width
	s.height = height
	cam := s.cam
	s.mu.Unlock()
	cam.SetAspect(float32(width) / float32(height))
}

func (s *scene) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pixelRatio = ratio
}

func (s *scene) DrawCalls() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var drawErr error
	s.cloud.Draw(func(res CloudResource) {
		mdl, ok := res.(model.Model)
		if !ok || mdl.MeshProvider() == nil {
			return
		}
		// The cloud is centered on the origin; skip it when the camera looks away entirely.
		frustum := common.ExtractFrustum(s.cam.ViewProjectionMatrix())
		if !frustum.IntersectsSphere(0, 0, 0, mdl.BoundingRadius()+mdl.PointSize()) {
			return
		}

		s.mat.SetSize(mdl.PointSize())
		s.mat.SetTint(mdl.Tint())
		s.mat.SetVertexColors(mdl.HasColors())

		camUniform := s.cam.Uniform()
		matUniform := s.mat.Uniform(s.width, s.height, s.pixelRatio)
		s.writePool = append(s.writePool[:0],
			bind_group_provider.BufferWrite{
				Provider: s.cam.BindGroupProvider(),
				Binding:  s.cameraBinding,
				Data:     camUniform.Marshal(),
			},
			bind_group_provider.BufferWrite{
				Provider: s.mat.BindGroupProvider(),
				Binding:  s.materialBinding,
				Data:     matUniform.Marshal(),
			},
		)
		s.r.WriteBuffers(s.writePool)

		if err := s.r.DrawInstanced(s.pipelineKey, mdl.MeshProvider(), s.bindGroups); err != nil {
			drawErr = fmt.Errorf("draw call failed in scene %q: %w", s.name, err)
		}
	})
	return drawErr
}

func (s *scene) Release() {
	s.cloud.Dispose()

	s.mu.Lock()
	defer s.mu.Unlock()
	if bgp := s.mat.BindGroupProvider(); bgp != nil {
		bgp.Release()
	}
	if bgp := s.cam.BindGroupProvider(); bgp != nil {
		bgp.Release()
	}
	s.bindGroups = nil
}
