package env

import (
	"path-follower/internal/geometry/vector"
)

// Environment is an interface for applying environmental effects to the
// vehicle. Each implementation can modify the vehicle's velocity or
// position based on factors like wind or terrain.
type Environment interface {
	// Apply takes the current position and velocity of the vehicle and
	// returns the modified position, velocity, and an optional warning
	// message. The dt parameter is the time step in seconds.
	Apply(dt float64, pos vector.Vec3, vel vector.Vec3) (vector.Vec3, vector.Vec3, string)
}

// Chain is a composite environment that applies multiple effects in sequence.
type Chain struct {
	Effects []Environment
}

// Apply runs all effects in order, threading position and velocity
// through each one. The last non-empty warning wins.
func (c *Chain) Apply(dt float64, pos vector.Vec3, vel vector.Vec3) (vector.Vec3, vector.Vec3, string) {
	var warning string
	for _, effect := range c.Effects {
		newPos, newVel, w := effect.Apply(dt, pos, vel)
		if w != "" {
			warning = w
		}
		pos, vel = newPos, newVel
	}
	return pos, vel, warning
}

// NoOp is an environment that does nothing.
var NoOp Environment = noOpEnv{}

type noOpEnv struct{}

func (noOpEnv) Apply(dt float64, pos, vel vector.Vec3) (vector.Vec3, vector.Vec3, string) {
	return pos, vel, ""
}
