package flock

// SimulationParameters controls the physics constants of the flock.
// The host passes it into Update every frame, so every field can be changed
// at runtime. The engine never validates it: a zero radius simply matches no
// neighbor and a zero weight cancels a force, nothing here can crash the
// simulation.
type SimulationParameters struct {
	// Population
	TargetPopulation int `json:"targetPopulation"` // Desired boid count, reconciled every frame

	// Physics limits
	MaxSpeed float64 `json:"maxSpeed"` // Velocity cap after integration
	MaxForce float64 `json:"maxForce"` // Per-force steering cap

	// Steering weights
	SeparationWeight float64 `json:"separationWeight"` // Keep distance from flockmates
	AlignmentWeight  float64 `json:"alignmentWeight"`  // Match flockmates velocity
	CohesionWeight   float64 `json:"cohesionWeight"`   // Move toward flockmates center
	AvoidanceWeight  float64 `json:"avoidanceWeight"`  // Flee the predator

	// Interaction radii
	NeighborRadius  float64 `json:"neighborRadius"`  // Perception range for the three flocking forces
	AvoidanceRadius float64 `json:"avoidanceRadius"` // Predator detection range
}

// DefaultParameters returns the canonical starting values.
func DefaultParameters() *SimulationParameters {
	return &SimulationParameters{
		TargetPopulation: 100,
		MaxSpeed:         5.0,
		MaxForce:         0.5,
		SeparationWeight: 1.0,
		AlignmentWeight:  1.0,
		CohesionWeight:   1.0,
		AvoidanceWeight:  1.0,
		NeighborRadius:   50,
		AvoidanceRadius:  75,
	}
}

// Reset restores every field to its default value in place, so bindings to
// the struct (UI widgets, the running flock) keep working.
func (p *SimulationParameters) Reset() {
	*p = *DefaultParameters()
}
