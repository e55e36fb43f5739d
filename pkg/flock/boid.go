package flock

import (
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

// Force identifies which steering force dominated a boid during the last
// update. It is purely presentational: renderers map it to a color, the
// physics never reads it.
type Force int

const (
	ForceNone Force = iota
	ForceSeparation
	ForceAlignment
	ForceCohesion
	ForceAvoidance
)

// String implements fmt.Stringer for overlays and reports.
func (f Force) String() string {
	switch f {
	case ForceSeparation:
		return "separation"
	case ForceAlignment:
		return "alignment"
	case ForceCohesion:
		return "cohesion"
	case ForceAvoidance:
		return "avoidance"
	default:
		return "none"
	}
}

// Bounds is the rectangular world the flock lives in.
// Left < Right and Top < Bottom numerically, whatever the screen convention.
type Bounds struct {
	Left, Right float64
	Top, Bottom float64
}

// Width returns the horizontal extent of the world.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns the vertical extent of the world.
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

// Boid is a single agent of the flock.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds: each agent steers only by
// looking at its local neighbors, yet the group moves as one.
// https://en.wikipedia.org/wiki/Boids
// Fields are exported so renderers can read position, velocity and the
// dominant-force tag; only the owning Flock writes them.
type Boid struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D
	// Acc accumulates the frame's steering forces and is consumed (and
	// zeroed) by ApplyForces.
	Acc geometry.Vector2D

	// Dominant is the classification of the strongest steering force of the
	// last update. It only changes when a force is a strict winner, so a
	// quiet boid keeps its previous tag.
	Dominant Force
}

// NewBoid creates a boid at the given position with the given velocity.
func NewBoid(pos, vel geometry.Vector2D) *Boid {
	return &Boid{Pos: pos, Vel: vel}
}

// SeparationForce pushes the boid away from flockmates closer than
// NeighborRadius: the average of the unit vectors pointing away from each
// close neighbor, clamped to MaxForce and scaled by SeparationWeight.
// No neighbor in range yields the zero vector.
func (b *Boid) SeparationForce(others []*Boid, p *SimulationParameters) geometry.Vector2D {
	var sum geometry.Vector2D
	neighbors := 0
	radiusSq := p.NeighborRadius * p.NeighborRadius

	for _, other := range others {
		distSq := b.Pos.DistanceSquaredTo(other.Pos)
		// Strictly positive distance excludes the boid itself and exact
		// overlaps, where no away direction exists.
		if distSq > 0 && distSq < radiusSq {
			sum = sum.Add(b.Pos.Sub(other.Pos).Normalize())
			neighbors++
		}
	}
	if neighbors == 0 {
		return geometry.Vector2D{}
	}

	avg := sum.Mul(1 / float64(neighbors))
	return avg.Limit(p.MaxForce).Mul(p.SeparationWeight)
}

// AlignmentForce steers the boid toward the average heading of its
// neighbors: the mean neighbor velocity is normalized to MaxSpeed, the own
// velocity subtracted, the result clamped to MaxForce and scaled by
// AlignmentWeight. No neighbor in range yields the zero vector.
func (b *Boid) AlignmentForce(others []*Boid, p *SimulationParameters) geometry.Vector2D {
	var sum geometry.Vector2D
	neighbors := 0
	radiusSq := p.NeighborRadius * p.NeighborRadius

	for _, other := range others {
		distSq := b.Pos.DistanceSquaredTo(other.Pos)
		if distSq > 0 && distSq < radiusSq {
			sum = sum.Add(other.Vel)
			neighbors++
		}
	}
	if neighbors == 0 {
		return geometry.Vector2D{}
	}

	avg := sum.Mul(1 / float64(neighbors))
	desired := avg.Normalize().Mul(p.MaxSpeed)
	return desired.Sub(b.Vel).Limit(p.MaxForce).Mul(p.AlignmentWeight)
}

// CohesionForce steers the boid toward the center of mass of its neighbors
// using the classic seek steering, clamped to MaxForce and scaled by
// CohesionWeight. No neighbor in range yields the zero vector.
func (b *Boid) CohesionForce(others []*Boid, p *SimulationParameters) geometry.Vector2D {
	var sum geometry.Vector2D
	neighbors := 0
	radiusSq := p.NeighborRadius * p.NeighborRadius

	for _, other := range others {
		distSq := b.Pos.DistanceSquaredTo(other.Pos)
		if distSq > 0 && distSq < radiusSq {
			sum = sum.Add(other.Pos)
			neighbors++
		}
	}
	if neighbors == 0 {
		return geometry.Vector2D{}
	}

	center := sum.Mul(1 / float64(neighbors))
	return b.seek(center, p.MaxSpeed).Limit(p.MaxForce).Mul(p.CohesionWeight)
}

// AvoidanceForce repels the boid from a predator closer than
// AvoidanceRadius: the unit vector pointing away, clamped to MaxForce and
// scaled by AvoidanceWeight. A nil or out-of-range predator yields the zero
// vector, and a predator exactly on the boid produces no direction to flee,
// so the force stays zero there too.
func (b *Boid) AvoidanceForce(predator *geometry.Vector2D, p *SimulationParameters) geometry.Vector2D {
	if predator == nil {
		return geometry.Vector2D{}
	}
	distSq := b.Pos.DistanceSquaredTo(*predator)
	if distSq >= p.AvoidanceRadius*p.AvoidanceRadius {
		return geometry.Vector2D{}
	}

	away := b.Pos.Sub(*predator).Normalize()
	return away.Limit(p.MaxForce).Mul(p.AvoidanceWeight)
}

// seek is the Reynolds steering toward target: desired velocity is the
// direction to the target at full speed, the steering is desired minus the
// current velocity. A target on top of the boid has no direction, so the
// desired velocity degrades to zero and the steering becomes pure braking.
func (b *Boid) seek(target geometry.Vector2D, maxSpeed float64) geometry.Vector2D {
	desired := target.Sub(b.Pos).Normalize().Mul(maxSpeed)
	return desired.Sub(b.Vel)
}

// ApplyForces integrates one fixed step: the accumulated acceleration is
// added to the velocity, the velocity clamped to maxSpeed (direction
// preserved), the accumulator zeroed and the position advanced by the
// velocity. One call is one step; pacing the calls is the host loop's job.
func (b *Boid) ApplyForces(maxSpeed float64) {
	b.Vel = b.Vel.Add(b.Acc).Limit(maxSpeed)
	b.Acc = geometry.Vector2D{}
	b.Pos = b.Pos.Add(b.Vel)
}

// Wrap teleports the boid to the opposite edge when it leaves the bounds.
// The comparisons are strict: a boid exactly on an edge stays put, and an
// overshoot of any size lands exactly on the opposite bound. A single snap,
// not a modulo.
func (b *Boid) Wrap(bounds Bounds) {
	if b.Pos.X > bounds.Right {
		b.Pos.X = bounds.Left
	} else if b.Pos.X < bounds.Left {
		b.Pos.X = bounds.Right
	}
	if b.Pos.Y > bounds.Bottom {
		b.Pos.Y = bounds.Top
	} else if b.Pos.Y < bounds.Top {
		b.Pos.Y = bounds.Bottom
	}
}
