package sim

import (
	"math"

	"path-follower/internal/geometry/vector"
)

// GeoRef anchors the local NED frame to a geodetic origin.
type GeoRef struct {
	OriginLat float64
	OriginLon float64
}

const metersPerDegLat = 111_320.0

func (g GeoRef) metersPerDegLon() float64 {
	return metersPerDegLat * math.Cos(g.OriginLat*math.Pi/180.0)
}

// GeoToLocal converts lat/lon/altitude to local NED meters.
func (g GeoRef) GeoToLocal(lat, lon, alt float64) vector.Vec3 {
	dLat := lat - g.OriginLat
	dLon := lon - g.OriginLon
	return vector.Vec3{
		X: dLat * metersPerDegLat,     // north
		Y: dLon * g.metersPerDegLon(), // east
		Z: -alt,                       // down
	}
}

// LocalToGeo converts local NED meters back to lat/lon/altitude.
func (g GeoRef) LocalToGeo(p vector.Vec3) (lat, lon, alt float64) {
	lat = g.OriginLat + p.X/metersPerDegLat
	lon = g.OriginLon + p.Y/g.metersPerDegLon()
	alt = -p.Z
	return
}

// HeadingDegFromVec returns the heading of a NED vector in degrees,
// 0=north, 90=east.
func HeadingDegFromVec(v vector.Vec3) float64 {
	if math.Abs(v.X) < 1e-9 && math.Abs(v.Y) < 1e-9 {
		return 0
	}
	angleRad := math.Atan2(v.Y, v.X)
	deg := angleRad * 180.0 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
