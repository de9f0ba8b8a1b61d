package main

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-galaxy/common"
	"github.com/Carmen-Shannon/oxy-galaxy/config"
	"github.com/Carmen-Shannon/oxy-galaxy/engine"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/camera"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/panel"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/regenerator"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/scene"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/window"
	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open a window and render the galaxy with live parameter controls",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			run(cfg)
			return nil
		},
	}
}

// randomSourceFactory returns a per-commit source: fixed when seed is set so equal
// parameters always give the same cloud, entropy-seeded otherwise.
func randomSourceFactory(seed uint64) func(uint64) galaxy.RandomSource {
	if seed == 0 {
		return func(uint64) galaxy.RandomSource { return galaxy.NewEntropySource() }
	}
	return func(uint64) galaxy.RandomSource { return galaxy.NewRandomSource(seed) }
}

func run(cfg *config.Config) {
	title := common.Coalesce(cfg.Window.Title, "Galaxy")

	// ── Engine + Window ─────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithProfiling(cfg.Profile),
		engine.WithTickRate(60),
		engine.WithWindow(window.NewWindow(
			window.WithTitle(title),
			window.WithWidth(cfg.Window.Width),
			window.WithHeight(cfg.Window.Height),
		)),
	)
	win := eng.Window()

	// ── Renderer ────────────────────────────────────────────────────────
	presentMode := renderer.PresentModeVSync
	if !cfg.Window.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
		renderer.WithClearColor(colorful.Color{}),
	)

	// ── Camera ──────────────────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithController(camera.NewCameraController()),
	)

	// ── Scene ───────────────────────────────────────────────────────────
	cloud := scene.NewDisplayedCloud(scene.NewGPUUploader(r))
	sc := scene.NewScene("galaxy", cam, r, win.Width(), win.Height(),
		scene.WithActive(true),
		scene.WithPixelRatio(win.PixelRatio()),
		scene.WithDisplayedCloud(cloud),
		scene.WithMaterial(material.NewMaterial(
			material.WithName("galaxy_points"),
			material.WithSize(cfg.Params.Size),
			material.WithTint(cfg.Params.Color),
			material.WithVertexColors(cfg.Variant.ColorStrategy().Enabled()),
			material.WithBlending(material.BlendAdditive),
			material.WithDepthWrite(false),
		)),
	)
	eng.AddScene(0, sc)

	// ── Regeneration ────────────────────────────────────────────────────
	regenOpts := []regenerator.RegeneratorBuilderOption{
		regenerator.WithRandomSourceFactory(randomSourceFactory(cfg.Seed)),
		regenerator.WithOnInstalled(func(seq uint64, c *galaxy.PointCloud) {
			log.Printf("[Galaxy] displaying cloud %d with %d stars", seq, c.Count())
		}),
	}
	if cfg.Workers > 0 {
		regenOpts = append(regenOpts, regenerator.WithWorkers(cfg.Workers))
	}
	regen := regenerator.NewRegenerator(galaxy.NewGenerator(galaxy.WithVariant(cfg.Variant)), cloud, regenOpts...)

	// ── Panel + Input ───────────────────────────────────────────────────
	pnl := panel.NewPanel(cfg.Params, panel.WithOnCommit(func(ev regenerator.ParameterCommitted) {
		regen.Commit(ev)
	}))
	refreshTitle := func() {
		win.SetTitle(fmt.Sprintf("%s | %s", title, pnl.Summary()))
	}
	reset := func() {
		preset := cfg.Variant.Preset()
		pnl.Reset(preset)
		regen.Commit(regenerator.ParameterCommitted{Params: preset, Field: "reset"})
	}
	newControls(cam.Controller(), pnl, refreshTitle, reset).attach(eng)

	regen.Commit(regenerator.ParameterCommitted{Params: cfg.Params, Field: "initial"})
	refreshTitle()

	log.Printf("[Galaxy] %s variant, %d stars", cfg.Variant, cfg.Params.Count)
	log.Println("[Galaxy] drag to orbit, right-drag or WASD to pan, scroll to zoom")
	log.Println("[Galaxy] left/right or tab selects a parameter, up/down adjusts, R resets")
	eng.Run()

	regen.Close()
	sc.Release()
	r.Release()
}
