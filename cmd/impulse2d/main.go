package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ByteArena/impulse2d/scene"
)

func main() {
	scenePath := flag.String("scene", "", "scene file (.yaml)")
	preset := flag.String("preset", "chain", "built-in scene when -scene is not set: "+strings.Join(scene.PresetNames(), ", "))
	duration := flag.Float64("duration", 0, "simulated seconds to run (0 uses the scene's run.duration)")
	trace := flag.Int("trace", 0, "print body poses every N steps (0 disables)")
	dumpScene := flag.Bool("dump-scene", false, "print the scene as YAML and exit")
	watch := flag.Bool("watch", false, "run again whenever the scene or its scripts change")
	quiet := flag.Bool("q", false, "do not log step timings")
	flag.Parse()

	log.SetPrefix("impulse2d: ")
	log.SetFlags(0)

	load := func() (*scene.Spec, error) {
		if *scenePath != "" {
			return scene.Load(*scenePath)
		}
		return scene.Preset(*preset)
	}

	if *dumpScene {
		spec, err := load()
		if err != nil {
			log.Fatal(err)
		}
		data, err := scene.Marshal(spec)
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(data)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	r := runner{
		out:      out,
		duration: *duration,
		trace:    *trace,
		quiet:    *quiet,
	}

	if err := r.run(ctx, load); err != nil {
		if !*watch {
			out.Flush()
			log.Fatal(err)
		}
		log.Print(err)
	}

	if !*watch {
		return
	}
	if *scenePath == "" {
		log.Fatal("-watch needs -scene")
	}

	w, err := scene.NewWatcher(filepath.Dir(*scenePath))
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	log.Printf("watching %s", filepath.Dir(*scenePath))
	for {
		out.Flush()
		select {
		case <-ctx.Done():
			return
		case err := <-w.Errors:
			log.Printf("watch: %v", err)
		case change := <-w.Events:
			log.Printf("%s %s changed", change.Kind, change.Path)
			if err := r.run(ctx, load); err != nil {
				log.Print(err)
			}
		}
	}
}

type runner struct {
	out      *bufio.Writer
	duration float64
	trace    int
	quiet    bool
}

func (r runner) run(ctx context.Context, load func() (*scene.Spec, error)) error {
	spec, err := load()
	if err != nil {
		return err
	}
	s, err := scene.Build(spec)
	if err != nil {
		return err
	}

	duration := r.duration
	if duration == 0 {
		duration = s.Duration
	}
	if duration == 0 {
		return fmt.Errorf("scene %q: no duration, use -duration", s.Name)
	}

	stats := scene.NewStepStats(s.World.GetTimeStep())
	total := s.Steps(duration)
	log.Printf("%s: %d bodies, %d joints, %d steps of %.4gs", s.Name, s.World.GetBodyCount(), s.World.GetJointCount(), total, s.World.GetTimeStep())

	err = s.Run(ctx, duration, func(s *scene.Scene) error {
		if stats.Add(s.World.GetProfile().Step) && !r.quiet {
			log.Printf("t = %.3gs (%.3gms/step)", s.World.GetTime(), stats.Average)
		}

		n := s.World.GetStepCount()
		if r.trace > 0 && (n%r.trace == 0 || n == total) {
			return s.World.Dump(r.out)
		}
		return nil
	})
	if err != nil {
		return err
	}

	p := s.World.GetProfile()
	log.Printf("done at t = %.3gs, last step %.3gms (forces %.3g, init %.3g, solve %.3g, positions %.3g)",
		s.World.GetTime(), p.Step, p.IntegrateForces, p.SolveInit, p.SolveVelocity, p.IntegratePositions)
	return nil
}
