package env

import (
	"math"

	"path-follower/internal/geometry/vector"
)

// Floor implements ground collision protection: the vehicle is never
// allowed below the terrain elevation plus a safety margin. Altitude is
// -Z in the local NED frame.
type Floor struct {
	// SafetyMarginM is the minimum allowed height above terrain in meters
	SafetyMarginM float64
}

// GroundElevation calculates the terrain height at a given position.
// This is a simple synthetic terrain function that can be replaced with
// real elevation data; it produces a gentle wave pattern.
func (f Floor) GroundElevation(pos vector.Vec3) float64 {
	wave1 := math.Sin(pos.X/1000) * 100
	wave2 := math.Sin((pos.X+pos.Y)/500) * 50
	return wave1 + wave2
}

// Apply clips the vehicle to the terrain floor. If it is below terrain
// plus the safety margin it is moved up, and any remaining sink rate is
// zeroed so it does not immediately descend again.
func (f Floor) Apply(dt float64, pos vector.Vec3, vel vector.Vec3) (vector.Vec3, vector.Vec3, string) {
	minAltitude := f.GroundElevation(pos) + f.SafetyMarginM

	if -pos.Z < minAltitude {
		pos.Z = -minAltitude

		// positive Z velocity is downward in NED
		if vel.Z > 0 {
			vel.Z = 0
		}

		return pos, vel, "terrain-floor: altitude clipped to safety margin"
	}

	return pos, vel, ""
}

// DefaultFloor returns a Floor with a reasonable default safety margin.
func DefaultFloor() Floor {
	return Floor{
		SafetyMarginM: 80,
	}
}
