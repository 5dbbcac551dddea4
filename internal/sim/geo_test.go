package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"path-follower/internal/geometry/vector"
)

func TestGeoRoundTrip(t *testing.T) {
	t.Parallel()

	g := GeoRef{OriginLat: 32.0853, OriginLon: 34.7818}

	p := g.GeoToLocal(32.09, 34.79, 750)
	lat, lon, alt := g.LocalToGeo(p)

	require.InDelta(t, 32.09, lat, 1e-9)
	require.InDelta(t, 34.79, lon, 1e-9)
	require.InDelta(t, 750, alt, 1e-9)
}

func TestGeoToLocalAxes(t *testing.T) {
	t.Parallel()

	g := GeoRef{OriginLat: 0, OriginLon: 0}

	p := g.GeoToLocal(0.001, 0, 100)
	require.InDelta(t, 0.001*metersPerDegLat, p.X, 1e-9) // north
	require.InDelta(t, 0, p.Y, 1e-9)
	require.InDelta(t, -100, p.Z, 1e-9) // down

	p = g.GeoToLocal(0, 0.001, 0)
	require.InDelta(t, 0, p.X, 1e-9)
	require.Greater(t, p.Y, 0.0) // east
}

func TestHeadingDegFromVec(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 0, HeadingDegFromVec(vector.Vec3{X: 1}), 1e-9)
	require.InDelta(t, 90, HeadingDegFromVec(vector.Vec3{Y: 1}), 1e-9)
	require.InDelta(t, 180, HeadingDegFromVec(vector.Vec3{X: -1}), 1e-9)
	require.InDelta(t, 270, HeadingDegFromVec(vector.Vec3{Y: -1}), 1e-9)
	require.Zero(t, HeadingDegFromVec(vector.Vec3{Z: -5}))
}
