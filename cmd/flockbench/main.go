package main

import (
	"flag"
	"log"
	"math"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
	"gonum.org/v1/gonum/stat"
)

// The benchmark runs the same flight domain as the interactive window.
const (
	worldWidth    = 1700
	worldHeight   = 950
	predatorSpeed = 4.0
)

var (
	frames       = flag.Int("frames", 1000, "Number of simulation frames to run.")
	population   = flag.Int("population", 0, "Override the target population (0 keeps the configured value).")
	configFile   = flag.String("config", "", "Path to a JSON parameter file (built-in defaults when empty).")
	schemaFile   = flag.String("schema", "configs/config.schema.json", "Path to the JSON schema validating the parameter file.")
	withPredator = flag.Bool("predator", true, "Drive a wandering predator through the flock.")
	seed         = flag.Int64("seed", 1, "Seed for the predator wander path.")
)

// wanderer moves the benchmark predator along a Perlin noise heading, so the
// flock keeps reacting to a smoothly turning threat instead of white noise.
type wanderer struct {
	noise  *perlin.Perlin
	pos    geometry.Vector2D
	bounds flock.Bounds
	t      float64
}

func newWanderer(seed int64, bounds flock.Bounds) *wanderer {
	return &wanderer{
		noise: perlin.NewPerlin(2, 2, 2, seed),
		pos: geometry.Vector2D{
			X: (bounds.Left + bounds.Right) / 2,
			Y: (bounds.Top + bounds.Bottom) / 2,
		},
		bounds: bounds,
	}
}

func (w *wanderer) step() *geometry.Vector2D {
	// Map the noise value from [-1, 1] to a full turn
	angle := (w.noise.Noise2D(w.t, 0) + 1) / 2 * 2 * math.Pi
	w.t += 0.01
	w.pos = w.pos.Add(geometry.NewVectorPolar(predatorSpeed, angle))

	// Wrap like the boids so the predator keeps crossing the flock
	if w.pos.X > w.bounds.Right {
		w.pos.X = w.bounds.Left
	} else if w.pos.X < w.bounds.Left {
		w.pos.X = w.bounds.Right
	}
	if w.pos.Y > w.bounds.Bottom {
		w.pos.Y = w.bounds.Top
	} else if w.pos.Y < w.bounds.Top {
		w.pos.Y = w.bounds.Bottom
	}
	return &w.pos
}

func main() {
	flag.Parse()
	if *frames <= 0 {
		log.Fatal("frames must be positive")
	}

	params := flock.DefaultParameters()
	if *configFile != "" {
		var err error
		params, err = flock.LoadParameters(*configFile, *schemaFile)
		if err != nil {
			log.Fatalf("could not load parameters: %v", err)
		}
	}
	if *population > 0 {
		params.TargetPopulation = *population
	}

	bounds := flock.Bounds{Left: 0, Right: worldWidth, Top: 0, Bottom: worldHeight}
	f := flock.NewFlock(bounds)
	wander := newWanderer(*seed, bounds)

	start := time.Now()
	for i := 0; i < *frames; i++ {
		var predator *geometry.Vector2D
		if *withPredator {
			predator = wander.step()
		}
		f.Update(params, predator)
	}
	elapsed := time.Since(start)

	// Final-frame statistics
	speeds := make([]float64, 0, len(f.Boids))
	counts := make(map[flock.Force]int)
	for _, b := range f.Boids {
		speeds = append(speeds, b.Vel.Len())
		counts[b.Dominant]++
	}

	log.Printf("simulated %d frames with %d boids in %v (%.3f ms/frame)",
		*frames, len(f.Boids), elapsed.Round(time.Millisecond),
		float64(elapsed.Microseconds())/1000.0/float64(*frames))
	if len(speeds) > 1 {
		log.Printf("final speeds: mean %.3f stddev %.3f (limit %.1f)",
			stat.Mean(speeds, nil), stat.StdDev(speeds, nil), params.MaxSpeed)
	}
	for _, fc := range []flock.Force{
		flock.ForceSeparation,
		flock.ForceAlignment,
		flock.ForceCohesion,
		flock.ForceAvoidance,
		flock.ForceNone,
	} {
		log.Printf("dominant %-10s %5d", fc, counts[fc])
	}
}
