package flock

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= geometry.Epsilon
}

func TestSeparationForce(t *testing.T) {
	p := DefaultParameters()

	t.Run("PushesAwayFromNeighbor", func(t *testing.T) {
		// Setup: Me at origin, a neighbor to my right. I should be pushed
		// to the left, clamped to MaxForce.
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})
		other := NewBoid(geometry.Vector2D{X: 10, Y: 0}, geometry.Vector2D{})

		got := me.SeparationForce([]*Boid{me, other}, p)

		want := geometry.Vector2D{X: -p.MaxForce, Y: 0}
		if !got.Eq(want) {
			t.Errorf("SeparationForce() = %v; want %v", got, want)
		}
	})

	t.Run("ZeroWithoutNeighbors", func(t *testing.T) {
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})
		far := NewBoid(geometry.Vector2D{X: 500, Y: 500}, geometry.Vector2D{})

		got := me.SeparationForce([]*Boid{me, far}, p)

		if !got.Eq(geometry.Vector2D{}) {
			t.Errorf("SeparationForce() with no neighbor in range = %v; want (0,0)", got)
		}
	})

	t.Run("SelfAndCoincidentExcluded", func(t *testing.T) {
		// A boid sharing my exact position has no away direction, the
		// strict distance window drops it just like it drops myself.
		me := NewBoid(geometry.Vector2D{X: 3, Y: 4}, geometry.Vector2D{})
		twin := NewBoid(geometry.Vector2D{X: 3, Y: 4}, geometry.Vector2D{})

		got := me.SeparationForce([]*Boid{me, twin}, p)

		if !got.Eq(geometry.Vector2D{}) {
			t.Errorf("SeparationForce() with coincident boid = %v; want (0,0)", got)
		}
	})

	t.Run("ExactRadiusExcluded", func(t *testing.T) {
		// The neighborhood window is exclusive on both ends.
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})
		edge := NewBoid(geometry.Vector2D{X: p.NeighborRadius, Y: 0}, geometry.Vector2D{})

		got := me.SeparationForce([]*Boid{me, edge}, p)

		if !got.Eq(geometry.Vector2D{}) {
			t.Errorf("SeparationForce() with boid at exact radius = %v; want (0,0)", got)
		}
	})

	t.Run("SymmetricNeighborsCancel", func(t *testing.T) {
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})
		left := NewBoid(geometry.Vector2D{X: -10, Y: 0}, geometry.Vector2D{})
		right := NewBoid(geometry.Vector2D{X: 10, Y: 0}, geometry.Vector2D{})

		got := me.SeparationForce([]*Boid{me, left, right}, p)

		if !got.Eq(geometry.Vector2D{}) {
			t.Errorf("SeparationForce() between symmetric neighbors = %v; want (0,0)", got)
		}
	})

	t.Run("WeightScalesAfterClamp", func(t *testing.T) {
		// The clamp happens before the weight, so the weight can push the
		// final magnitude past MaxForce.
		weighted := DefaultParameters()
		weighted.SeparationWeight = 2.0
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})
		other := NewBoid(geometry.Vector2D{X: 10, Y: 0}, geometry.Vector2D{})

		got := me.SeparationForce([]*Boid{me, other}, weighted)

		want := geometry.Vector2D{X: -weighted.MaxForce * 2, Y: 0}
		if !got.Eq(want) {
			t.Errorf("SeparationForce() weighted = %v; want %v", got, want)
		}
	})
}

func TestAlignmentForce(t *testing.T) {
	p := DefaultParameters()

	t.Run("SteersTowardNeighborHeading", func(t *testing.T) {
		// Setup: I am at rest, my neighbor flies to the right. The steering
		// should pull me to the right, clamped to MaxForce.
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})
		other := NewBoid(geometry.Vector2D{X: 10, Y: 0}, geometry.Vector2D{X: 3, Y: 0})

		got := me.AlignmentForce([]*Boid{me, other}, p)

		want := geometry.Vector2D{X: p.MaxForce, Y: 0}
		if !got.Eq(want) {
			t.Errorf("AlignmentForce() = %v; want %v", got, want)
		}
	})

	t.Run("ZeroWithoutNeighbors", func(t *testing.T) {
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{X: 1, Y: 1})

		got := me.AlignmentForce([]*Boid{me}, p)

		if !got.Eq(geometry.Vector2D{}) {
			t.Errorf("AlignmentForce() alone = %v; want (0,0)", got)
		}
	})

	t.Run("StationaryNeighborsBrake", func(t *testing.T) {
		// The neighbors average velocity is zero, which normalizes to a
		// zero desired velocity instead of blowing up. The steering is
		// then pure braking against my own velocity.
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{X: 2, Y: 0})
		other := NewBoid(geometry.Vector2D{X: 10, Y: 0}, geometry.Vector2D{})

		got := me.AlignmentForce([]*Boid{me, other}, p)

		want := geometry.Vector2D{X: -p.MaxForce, Y: 0}
		if !got.Eq(want) {
			t.Errorf("AlignmentForce() with stationary neighbors = %v; want %v", got, want)
		}
	})
}

func TestCohesionForce(t *testing.T) {
	p := DefaultParameters()

	t.Run("SteersTowardCenter", func(t *testing.T) {
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})
		other := NewBoid(geometry.Vector2D{X: 10, Y: 0}, geometry.Vector2D{})

		got := me.CohesionForce([]*Boid{me, other}, p)

		want := geometry.Vector2D{X: p.MaxForce, Y: 0}
		if !got.Eq(want) {
			t.Errorf("CohesionForce() = %v; want %v", got, want)
		}
	})

	t.Run("ZeroWithoutNeighbors", func(t *testing.T) {
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})

		got := me.CohesionForce([]*Boid{me}, p)

		if !got.Eq(geometry.Vector2D{}) {
			t.Errorf("CohesionForce() alone = %v; want (0,0)", got)
		}
	})

	t.Run("AtCenterOfMassBrakes", func(t *testing.T) {
		// Setup: I sit exactly on the center of mass of my neighbors, so
		// seek has no direction and degrades to braking my velocity.
		me := NewBoid(geometry.Vector2D{X: 5, Y: 0}, geometry.Vector2D{X: 1, Y: 0})
		left := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})
		right := NewBoid(geometry.Vector2D{X: 10, Y: 0}, geometry.Vector2D{})

		got := me.CohesionForce([]*Boid{me, left, right}, p)

		want := geometry.Vector2D{X: -p.MaxForce, Y: 0}
		if !got.Eq(want) {
			t.Errorf("CohesionForce() at center of mass = %v; want %v", got, want)
		}
	})
}

func TestAvoidanceForce(t *testing.T) {
	p := DefaultParameters()

	t.Run("NilPredator", func(t *testing.T) {
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})

		got := me.AvoidanceForce(nil, p)

		if !got.Eq(geometry.Vector2D{}) {
			t.Errorf("AvoidanceForce(nil) = %v; want (0,0)", got)
		}
	})

	t.Run("FleesNearPredator", func(t *testing.T) {
		// Setup: predator to my right, well within the avoidance radius.
		// I should be pushed left; the unit repulsion is capped at
		// MaxForce.
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})
		predator := geometry.Vector2D{X: 10, Y: 0}

		got := me.AvoidanceForce(&predator, p)

		want := geometry.Vector2D{X: -p.MaxForce, Y: 0}
		if !got.Eq(want) {
			t.Errorf("AvoidanceForce() near = %v; want %v", got, want)
		}
	})

	t.Run("IgnoresFarPredator", func(t *testing.T) {
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})
		predator := geometry.Vector2D{X: p.AvoidanceRadius + 1, Y: 0}

		got := me.AvoidanceForce(&predator, p)

		if !got.Eq(geometry.Vector2D{}) {
			t.Errorf("AvoidanceForce() far = %v; want (0,0)", got)
		}
	})

	t.Run("ExactRadiusExcluded", func(t *testing.T) {
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})
		predator := geometry.Vector2D{X: p.AvoidanceRadius, Y: 0}

		got := me.AvoidanceForce(&predator, p)

		if !got.Eq(geometry.Vector2D{}) {
			t.Errorf("AvoidanceForce() at exact radius = %v; want (0,0)", got)
		}
	})

	t.Run("PredatorOnTopOfBoid", func(t *testing.T) {
		// No direction to flee in, so the force must stay zero instead of
		// going NaN.
		me := NewBoid(geometry.Vector2D{X: 7, Y: 7}, geometry.Vector2D{})
		predator := geometry.Vector2D{X: 7, Y: 7}

		got := me.AvoidanceForce(&predator, p)

		if !got.Eq(geometry.Vector2D{}) {
			t.Errorf("AvoidanceForce() on top = %v; want (0,0)", got)
		}
	})

	t.Run("WeightCanExceedMaxForce", func(t *testing.T) {
		weighted := DefaultParameters()
		weighted.MaxForce = 2.0
		weighted.AvoidanceWeight = 1.5
		me := NewBoid(geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{})
		predator := geometry.Vector2D{X: 10, Y: 0}

		// The unit repulsion is below MaxForce here, so only the weight
		// scales it.
		got := me.AvoidanceForce(&predator, weighted)

		want := geometry.Vector2D{X: -1.5, Y: 0}
		if !got.Eq(want) {
			t.Errorf("AvoidanceForce() weighted = %v; want %v", got, want)
		}
	})
}

func TestApplyForces(t *testing.T) {
	t.Run("IntegratesAccelerationAndMoves", func(t *testing.T) {
		// 1. Setup
		b := NewBoid(geometry.Vector2D{X: 100, Y: 100}, geometry.Vector2D{X: 1, Y: 0})
		b.Acc = geometry.Vector2D{X: 0, Y: 2}

		// 2. Execute
		b.ApplyForces(5.0)

		// 3. Verify
		wantVel := geometry.Vector2D{X: 1, Y: 2}
		if !b.Vel.Eq(wantVel) {
			t.Errorf("Vel after ApplyForces = %v; want %v", b.Vel, wantVel)
		}
		wantPos := geometry.Vector2D{X: 101, Y: 102}
		if !b.Pos.Eq(wantPos) {
			t.Errorf("Pos after ApplyForces = %v; want %v", b.Pos, wantPos)
		}
		if !b.Acc.Eq(geometry.Vector2D{}) {
			t.Errorf("Acc after ApplyForces = %v; want (0,0)", b.Acc)
		}
	})

	t.Run("ClampsSpeedPreservingDirection", func(t *testing.T) {
		b := NewBoid(geometry.Vector2D{}, geometry.Vector2D{X: 3, Y: 4})
		b.Acc = geometry.Vector2D{X: 3, Y: 4}

		b.ApplyForces(5.0)

		if !floatEquals(b.Vel.Len(), 5.0) {
			t.Errorf("speed after clamp = %v; want 5", b.Vel.Len())
		}
		// (6,8) clamped to length 5 is (3,4) again
		if !b.Vel.Eq(geometry.Vector2D{X: 3, Y: 4}) {
			t.Errorf("Vel after clamp = %v; want (3,4)", b.Vel)
		}
	})

	t.Run("InertiaWithoutForces", func(t *testing.T) {
		b := NewBoid(geometry.Vector2D{X: 10, Y: 20}, geometry.Vector2D{X: 2, Y: -1})

		b.ApplyForces(5.0)
		b.ApplyForces(5.0)

		wantPos := geometry.Vector2D{X: 14, Y: 18}
		if !b.Pos.Eq(wantPos) {
			t.Errorf("Pos after two inertial steps = %v; want %v", b.Pos, wantPos)
		}
		if !b.Vel.Eq(geometry.Vector2D{X: 2, Y: -1}) {
			t.Errorf("Vel changed without forces: %v", b.Vel)
		}
	})
}

func TestWrap(t *testing.T) {
	bounds := Bounds{Left: -850, Right: 850, Top: -475, Bottom: 475}

	tests := []struct {
		name string
		pos  geometry.Vector2D
		want geometry.Vector2D
	}{
		{"InsideStays", geometry.Vector2D{X: 0, Y: 0}, geometry.Vector2D{X: 0, Y: 0}},
		{"OnRightEdgeStays", geometry.Vector2D{X: 850, Y: 0}, geometry.Vector2D{X: 850, Y: 0}},
		{"OnTopEdgeStays", geometry.Vector2D{X: 0, Y: -475}, geometry.Vector2D{X: 0, Y: -475}},
		{"BeyondRightSnapsLeft", geometry.Vector2D{X: 850.5, Y: 10}, geometry.Vector2D{X: -850, Y: 10}},
		{"BeyondLeftSnapsRight", geometry.Vector2D{X: -851, Y: 10}, geometry.Vector2D{X: 850, Y: 10}},
		{"BeyondBottomSnapsTop", geometry.Vector2D{X: 10, Y: 476}, geometry.Vector2D{X: 10, Y: -475}},
		{"BeyondTopSnapsBottom", geometry.Vector2D{X: 10, Y: -476}, geometry.Vector2D{X: 10, Y: 475}},
		{"FarOvershootSingleSnap", geometry.Vector2D{X: 3000, Y: 0}, geometry.Vector2D{X: -850, Y: 0}},
		{"CornerWrapsBothAxes", geometry.Vector2D{X: 900, Y: 500}, geometry.Vector2D{X: -850, Y: -475}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoid(tt.pos, geometry.Vector2D{})
			b.Wrap(bounds)
			if !b.Pos.Eq(tt.want) {
				t.Errorf("Wrap(%v) = %v; want %v", tt.pos, b.Pos, tt.want)
			}
			if b.Pos.X < bounds.Left || b.Pos.X > bounds.Right ||
				b.Pos.Y < bounds.Top || b.Pos.Y > bounds.Bottom {
				t.Errorf("Wrap(%v) left the bounds: %v", tt.pos, b.Pos)
			}
		})
	}
}

func TestForceString(t *testing.T) {
	tests := []struct {
		force Force
		want  string
	}{
		{ForceNone, "none"},
		{ForceSeparation, "separation"},
		{ForceAlignment, "alignment"},
		{ForceCohesion, "cohesion"},
		{ForceAvoidance, "avoidance"},
	}
	for _, tt := range tests {
		if got := tt.force.String(); got != tt.want {
			t.Errorf("Force(%d).String() = %q; want %q", tt.force, got, tt.want)
		}
	}
}
