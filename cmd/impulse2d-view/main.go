package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"

	"github.com/ByteArena/impulse2d"
	"github.com/ByteArena/impulse2d/render"
	"github.com/ByteArena/impulse2d/scene"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	scenePath := flag.String("scene", "", "scene file (.yaml)")
	preset := flag.String("preset", "chain", "built-in scene when -scene is not set: "+strings.Join(scene.PresetNames(), ", "))
	duration := flag.Float64("duration", 0, "simulated seconds to run (0 uses the scene's run.duration, or runs forever)")
	watch := flag.Bool("watch", false, "reload whenever the scene or its scripts change")
	width := flag.Int("width", 640, "window width")
	height := flag.Int("height", 480, "window height")
	minX := flag.Float64("minx", -10, "left edge of the framed world")
	minY := flag.Float64("miny", 0, "bottom edge of the framed world")
	maxX := flag.Float64("maxx", 10, "right edge of the framed world")
	maxY := flag.Float64("maxy", 15, "top edge of the framed world")
	flag.Parse()

	log.SetPrefix("impulse2d-view: ")
	log.SetFlags(0)

	load := func() (*scene.Scene, error) {
		var spec *scene.Spec
		var err error
		if *scenePath != "" {
			spec, err = scene.Load(*scenePath)
		} else {
			spec, err = scene.Preset(*preset)
		}
		if err != nil {
			return nil, err
		}
		if *duration != 0 {
			spec.Run.Duration = *duration
		}
		return scene.Build(spec)
	}

	viewer, err := render.NewViewer(load, impulse2d.MakeVec2(*minX, *minY), impulse2d.MakeVec2(*maxX, *maxY), *width, *height)
	if err != nil {
		log.Fatal(err)
	}

	if *watch {
		if *scenePath == "" {
			log.Fatal("-watch needs -scene")
		}
		w, err := scene.NewWatcher(filepath.Dir(*scenePath))
		if err != nil {
			log.Fatal(err)
		}
		defer w.Close()
		viewer.Watcher = w
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("impulse2d - " + viewer.Scene().Name)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
