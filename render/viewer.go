package render

import (
	"context"
	"fmt"

	"github.com/ByteArena/impulse2d"
	"github.com/ByteArena/impulse2d/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Viewer runs a scene in real time in an ebiten window.
//
// Space pauses, R restarts, S single steps while paused, the mouse wheel
// zooms. When Watcher is set, changed files reload the scene.
type Viewer struct {
	Load    func() (*scene.Scene, error)
	Watcher *scene.Watcher
	Palette Palette

	scene    *scene.Scene
	camera   *Camera
	stats    *scene.StepStats
	lag      float64
	paused   bool
	finished bool
	err      error
}

// NewViewer loads the first scene. The camera frames [min, max].
func NewViewer(load func() (*scene.Scene, error), min, max impulse2d.Vec2, width, height int) (*Viewer, error) {
	v := &Viewer{
		Load:    load,
		Palette: DefaultPalette,
	}
	if err := v.reload(); err != nil {
		return nil, err
	}
	v.camera = NewCamera(min, max, width, height)
	return v, nil
}

func (v *Viewer) reload() error {
	s, err := v.Load()
	if err != nil {
		return err
	}
	v.scene = s
	v.stats = scene.NewStepStats(s.World.GetTimeStep())
	v.lag = 0
	v.finished = false
	v.err = nil
	return nil
}

func (v *Viewer) Scene() *scene.Scene {
	return v.scene
}

func (v *Viewer) Update() error {
	v.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := v.reload(); err != nil {
			v.err = err
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		x, y := ebiten.CursorPosition()
		factor := 1.1
		if dy < 0 {
			factor = 1 / factor
		}
		v.camera.Zoom(factor, float64(x), float64(y))
	}

	if v.err != nil || v.finished {
		return nil
	}
	if v.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			v.step()
		}
		return nil
	}

	// Step at the world's own cadence, independent of the tick rate.
	dt := v.scene.World.GetTimeStep()
	v.lag += 1 / float64(ebiten.TPS())
	for v.lag >= dt && v.err == nil && !v.finished {
		v.lag -= dt
		v.step()
	}

	return nil
}

func (v *Viewer) step() {
	if err := v.scene.Step(context.Background()); err != nil {
		v.err = err
		return
	}
	v.stats.Add(v.scene.World.GetProfile().Step)

	if d := v.scene.Duration; d > 0 && v.scene.World.GetStepCount() >= v.scene.Steps(d) {
		v.finished = true
	}
}

func (v *Viewer) pollWatcher() {
	if v.Watcher == nil {
		return
	}

	changed := false
	for {
		select {
		case _, ok := <-v.Watcher.Events:
			if !ok {
				v.Watcher = nil
				return
			}
			changed = true
			continue
		case err, ok := <-v.Watcher.Errors:
			if !ok {
				v.Watcher = nil
				return
			}
			v.err = err
			continue
		default:
		}
		break
	}

	if changed {
		if err := v.reload(); err != nil {
			v.err = err
		}
	}
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	DrawWorld(screen, v.scene.World, v.camera, v.Palette)

	status := fmt.Sprintf("%s  t = %.3gs (%.3gms/step)", v.scene.Name, v.scene.World.GetTime(), v.stats.Average)
	if v.paused {
		status += "  [paused]"
	}
	if v.finished {
		status += "  [done]"
	}
	if v.err != nil {
		status += "\n" + v.err.Error()
	}
	ebitenutil.DebugPrint(screen, status)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.camera.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
