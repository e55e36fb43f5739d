package flock

import (
	"math/rand"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

// Flock owns the boid population and is its only mutator. Everything runs on
// the caller's goroutine: Update is synchronous and between two calls the
// Boids slice is safe for read-only iteration by a renderer.
type Flock struct {
	// Boids is the population in insertion order. Treat it as read-only
	// outside this package; Resize removes from the tail.
	Boids []*Boid

	bounds Bounds

	// forces is the scratch buffer of the per-frame force pass, reused
	// across frames to avoid reallocating.
	forces []boidForces
}

// boidForces keeps the four steering forces of one boid separate for one
// frame, so they can be compared for classification before being summed.
type boidForces struct {
	separation geometry.Vector2D
	alignment  geometry.Vector2D
	cohesion   geometry.Vector2D
	avoidance  geometry.Vector2D
}

// NewFlock creates an empty flock living in the given bounds. The population
// appears on the first Update, which reconciles it with the configured
// target.
func NewFlock(bounds Bounds) *Flock {
	return &Flock{bounds: bounds}
}

// Bounds returns the world rectangle the flock wraps in.
func (f *Flock) Bounds() Bounds {
	return f.bounds
}

// Resize reconciles the population with target in a single call: excess
// boids are removed from the tail, missing ones spawn at a uniformly random
// position inside the bounds with a per-axis velocity drawn from
// [-maxSpeed, maxSpeed]. A matching count is a no-op, so calling this every
// frame costs nothing.
func (f *Flock) Resize(target int, maxSpeed float64) {
	if target < 0 {
		target = 0
	}
	if len(f.Boids) > target {
		f.Boids = f.Boids[:target]
		return
	}
	for len(f.Boids) < target {
		pos := geometry.Vector2D{
			X: f.bounds.Left + rand.Float64()*f.bounds.Width(),
			Y: f.bounds.Top + rand.Float64()*f.bounds.Height(),
		}
		vel := geometry.Vector2D{
			X: (rand.Float64()*2 - 1) * maxSpeed,
			Y: (rand.Float64()*2 - 1) * maxSpeed,
		}
		f.Boids = append(f.Boids, NewBoid(pos, vel))
	}
}

// UpdateForces runs the force pass in two phases. Phase one computes the
// four steering forces of every boid against the same unmutated population,
// so no boid reacts to a neighbor's half-applied frame. Phase two sums them
// into each boid's accumulator and re-tags the boid when one force strictly
// dominates the other three.
func (f *Flock) UpdateForces(p *SimulationParameters, predator *geometry.Vector2D) {
	f.forces = f.forces[:0]
	for _, b := range f.Boids {
		f.forces = append(f.forces, boidForces{
			separation: b.SeparationForce(f.Boids, p),
			alignment:  b.AlignmentForce(f.Boids, p),
			cohesion:   b.CohesionForce(f.Boids, p),
			avoidance:  b.AvoidanceForce(predator, p),
		})
	}

	for i, b := range f.Boids {
		fr := &f.forces[i]
		b.Acc = b.Acc.Add(fr.separation).Add(fr.alignment).Add(fr.cohesion).Add(fr.avoidance)
		b.Dominant = dominantForce(fr, b.Dominant)
	}
}

// dominantForce picks the strict winner among the four forces by squared
// magnitude. Any tie, including the common all-zero frame of an isolated
// boid, keeps the previous tag: a boid only changes class when one force
// clearly wins.
func dominantForce(fr *boidForces, prev Force) Force {
	sep := fr.separation.LenSqr()
	ali := fr.alignment.LenSqr()
	coh := fr.cohesion.LenSqr()
	avo := fr.avoidance.LenSqr()

	switch {
	case sep > ali && sep > coh && sep > avo:
		return ForceSeparation
	case ali > sep && ali > coh && ali > avo:
		return ForceAlignment
	case coh > sep && coh > ali && coh > avo:
		return ForceCohesion
	case avo > sep && avo > ali && avo > coh:
		return ForceAvoidance
	}
	return prev
}

// Update advances the simulation one frame: population reconciliation, the
// two-phase force pass, then integration and wrapping per boid. A nil
// predator means no avoidance this frame. Pausing is simply not calling
// Update.
func (f *Flock) Update(p *SimulationParameters, predator *geometry.Vector2D) {
	f.Resize(p.TargetPopulation, p.MaxSpeed)
	f.UpdateForces(p, predator)
	for _, b := range f.Boids {
		b.ApplyForces(p.MaxSpeed)
		b.Wrap(f.bounds)
	}
}
