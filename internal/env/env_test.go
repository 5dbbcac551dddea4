package env

import (
	"testing"

	"github.com/stretchr/testify/require"

	"path-follower/internal/geometry/vector"
)

func TestWindDrift(t *testing.T) {
	t.Parallel()

	w := Wind{North: 5, East: -2}
	pos, vel, warn := w.Apply(2, vector.NewVec3(100, 100, -500), vector.Vec3{X: 80})

	require.Empty(t, warn)
	require.InDelta(t, 110, pos.X, 1e-12)
	require.InDelta(t, 96, pos.Y, 1e-12)
	// wind drifts the ground track, it never changes airspeed
	require.Equal(t, vector.Vec3{X: 80}, vel)
}

func TestWindFromSpeedAndDir(t *testing.T) {
	t.Parallel()

	w := FromSpeedAndDir(10, 90) // blowing toward east
	require.InDelta(t, 0, w.North, 1e-9)
	require.InDelta(t, 10, w.East, 1e-9)

	w = FromSpeedAndDir(10, 0) // blowing toward north
	require.InDelta(t, 10, w.North, 1e-9)
	require.InDelta(t, 0, w.East, 1e-9)
}

func TestFloorClipsAltitude(t *testing.T) {
	t.Parallel()

	f := Floor{SafetyMarginM: 50}
	ground := f.GroundElevation(vector.Vec3{})

	// 10 m above ground with a 50 m margin, sinking at 5 m/s
	pos := vector.Vec3{Z: -(ground + 10)}
	vel := vector.Vec3{Z: 5}

	newPos, newVel, warn := f.Apply(0.05, pos, vel)
	require.NotEmpty(t, warn)
	require.InDelta(t, -(ground + 50), newPos.Z, 1e-9)
	require.Zero(t, newVel.Z)
}

func TestFloorLeavesClearAltitudeAlone(t *testing.T) {
	t.Parallel()

	f := DefaultFloor()
	pos := vector.Vec3{Z: -2000}
	vel := vector.Vec3{Z: 5}

	newPos, newVel, warn := f.Apply(0.05, pos, vel)
	require.Empty(t, warn)
	require.Equal(t, pos, newPos)
	require.Equal(t, vel, newVel)
}

func TestChainAppliesInOrder(t *testing.T) {
	t.Parallel()

	chain := &Chain{Effects: []Environment{
		Wind{North: 1},
		NoOp,
		Wind{East: 2},
	}}
	pos, _, warn := chain.Apply(1, vector.Vec3{}, vector.Vec3{})

	require.Empty(t, warn)
	require.InDelta(t, 1, pos.X, 1e-12)
	require.InDelta(t, 2, pos.Y, 1e-12)
}
