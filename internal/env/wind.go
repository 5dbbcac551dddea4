package env

import (
	"math"

	"path-follower/internal/geometry/vector"
)

// Wind represents a constant wind over the area of operation, specified
// in meters per second along the local north and east axes.
type Wind struct {
	// North is the northward component of the wind in m/s
	North float64
	// East is the eastward component of the wind in m/s
	East float64
}

// Apply adds wind as a constant ground drift. Position is shifted
// directly (ground track) without touching the vehicle's own velocity.
func (w Wind) Apply(dt float64, pos vector.Vec3, vel vector.Vec3) (vector.Vec3, vector.Vec3, string) {
	drift := vector.Vec3{X: w.North * dt, Y: w.East * dt}
	return pos.Add(drift), vel, ""
}

// Calm returns a Wind with zero velocity (no wind).
func Calm() Wind {
	return Wind{}
}

// FromSpeedAndDir creates a Wind from a speed (m/s) and the direction the
// wind blows toward, in degrees clockwise from north (0 = north, 90 = east).
func FromSpeedAndDir(speed, directionDeg float64) Wind {
	rad := directionDeg * math.Pi / 180
	return Wind{
		North: speed * math.Cos(rad),
		East:  speed * math.Sin(rad),
	}
}
