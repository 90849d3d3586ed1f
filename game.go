package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/redact/assets"
	"github.com/milk9111/redact/clock"
	"github.com/milk9111/redact/common"
	"github.com/milk9111/redact/prefabs"
	"github.com/milk9111/redact/render"
	"github.com/milk9111/redact/scene"
	"github.com/milk9111/redact/scene/system"
	"github.com/milk9111/redact/tween"
)

type Options struct {
	Debug bool
	Scene string
	// Seed drives the glitch generator. Zero picks one from the time.
	Seed  uint64
	Watch bool
	Orbit bool
}

type Game struct {
	frames    int
	debug     bool
	showPanel bool
	sceneName string

	clock    clock.Clock
	state    *scene.State
	sched    *scene.Scheduler
	scroll   *system.ScrollSystem
	renderer *render.Renderer
	page     *Page
	input    *Input
	ui       *DebugUI
	watcher  *prefabs.Watcher

	// sceneMod is the on-disk scene's mtime at the last load.
	sceneMod time.Time

	// buffer is the last backbuffer size handed to ebiten.
	bufferW, bufferH float64
}

func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadSceneSpec(opts.Scene)
	if err != nil {
		return nil, fmt.Errorf("game: load scene: %w", err)
	}

	tex, err := assets.LoadImage(spec.Image)
	if err != nil {
		return nil, fmt.Errorf("game: load question image: %w", err)
	}
	src, err := assets.LoadShaderSource(spec.Shader)
	if err != nil {
		return nil, fmt.Errorf("game: load shader: %w", err)
	}
	r, err := render.NewRenderer(spec, tex, src)
	if err != nil {
		return nil, fmt.Errorf("game: build renderer: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := &Game{
		debug:     opts.Debug,
		showPanel: opts.Debug,
		sceneName: opts.Scene,
		clock:     clock.NewReal(),
		state:     scene.NewState(spec, common.BaseWidth, common.BaseHeight, seed),
		renderer:  r,
		page:      NewPage(spec),
		input:     NewInput(),
	}
	if opts.Orbit {
		g.state.Orbit.Enabled = true
	}
	if err := g.applySpec(spec); err != nil {
		return nil, err
	}

	g.scroll = system.NewScrollSystem(spec)
	g.sched = scene.NewScheduler(
		system.NewTweenSystem(),
		system.NewPointerSystem(),
		system.NewInteractionSystem(),
		g.scroll,
		system.NewFrameSystem(),
		system.NewControlsSystem(),
	)

	g.sceneMod, _ = prefabs.ModTime(g.sceneFile())
	g.ui = NewDebugUI(g)
	g.input.Blocked = func(x, y int) bool {
		return g.showPanel && g.ui.Contains(x, y)
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts", "assets/shaders")
		if err != nil {
			log.Printf("watch: disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	log.Printf("scene: %s loaded, glitch seed %d", spec.Name, seed)
	return g, nil
}

// applySpec resolves the eases first so a bad name leaves the running
// scene untouched.
func (g *Game) applySpec(spec *prefabs.SceneSpec) error {
	redactEase, err := tween.Resolve(spec.Redact.Ease, prefabs.LoadScript)
	if err != nil {
		return fmt.Errorf("game: redact ease: %w", err)
	}
	glitchEase, err := tween.Resolve(spec.Glitch.Ease, prefabs.LoadScript)
	if err != nil {
		return fmt.Errorf("game: glitch ease: %w", err)
	}

	g.state.Spec = spec
	g.state.RedactEase = redactEase
	g.state.Glitcher.SetParams(scene.GlitchParams(spec, glitchEase))
	g.renderer.ApplySpec(spec)
	g.page.SetSpec(spec)
	if g.scroll != nil {
		g.scroll.Reload(spec)
	}
	return nil
}

func (g *Game) sceneFile() string {
	if g.sceneName == "" {
		return "scene.yaml"
	}
	return g.sceneName
}

// sceneTouched reports whether the on-disk scene changed since the last
// load. Editors often emit several events for one save.
func (g *Game) sceneTouched() bool {
	mod, ok := prefabs.ModTime(g.sceneFile())
	if !ok {
		return true
	}
	return !mod.Equal(g.sceneMod)
}

func (g *Game) reloadScene() {
	g.sceneMod, _ = prefabs.ModTime(g.sceneFile())
	spec, err := prefabs.LoadSceneSpec(g.sceneName)
	if err != nil {
		log.Printf("scene: reload: %v", err)
		return
	}
	if err := g.applySpec(spec); err != nil {
		log.Printf("scene: reload: %v", err)
		return
	}
	log.Printf("scene: reloaded %s", spec.Name)
}

func (g *Game) reloadShader() {
	src, err := assets.LoadShaderSource(g.state.Spec.Shader)
	if err != nil {
		log.Printf("shader: reload: %v", err)
		return
	}
	if err := g.renderer.Material.Recompile(src); err != nil {
		log.Printf("shader: reload: %v", err)
		return
	}
	log.Printf("shader: reloaded %s", g.state.Spec.Shader)
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for drained := false; !drained; {
		select {
		case err := <-g.watcher.Errors:
			log.Printf("watch: %v", err)
		default:
			drained = true
		}
	}

	var sceneChanged, shaderChanged bool
	for _, name := range g.watcher.Poll() {
		switch {
		case prefabs.IsShaderFile(name):
			shaderChanged = true
		case prefabs.IsScriptFile(name):
			sceneChanged = true
		case prefabs.IsSpecFile(name):
			sceneChanged = sceneChanged || g.sceneTouched()
		}
	}
	if sceneChanged {
		g.reloadScene()
	}
	if shaderChanged {
		g.reloadShader()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showPanel = !g.showPanel
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		system.ToggleControls(g.state)
	}
	if g.showPanel {
		g.ui.UI.Update()
	}

	g.state.Input = g.input.Update()
	g.state.Elapsed = g.clock.Elapsed()
	g.sched.Update(g.state)

	if g.showPanel {
		g.ui.Refresh(g.state)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.state)
	g.page.Draw(screen, g.state, g.renderer.Viewport.PixelRatio)

	if g.showPanel {
		g.ui.UI.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	}
}

// LayoutF renders at the window size times the capped device scale. A
// zero-sized window (minimized) keeps the previous buffer.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if err := g.renderer.Resize(outsideWidth, outsideHeight, scale); err != nil {
		if g.bufferW == 0 {
			return common.BaseWidth, common.BaseHeight
		}
		return g.bufferW, g.bufferH
	}

	vp := g.renderer.Viewport
	if g.state.Viewport.Width != vp.Width || g.state.Viewport.Height != vp.Height {
		g.state.SetViewport(vp.Width, vp.Height)
	}
	g.input.PixelRatio = vp.PixelRatio
	g.bufferW, g.bufferH = vp.Width*vp.PixelRatio, vp.Height*vp.PixelRatio
	return g.bufferW, g.bufferH
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("watch: close: %v", err)
		}
	}
}
