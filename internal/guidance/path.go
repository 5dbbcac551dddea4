// Package guidance computes per-tick progress along a commanded path
// segment and the deviation from it. Each evaluation is a pure function
// of its inputs; the controller that consumes the result owns all state.
package guidance

import (
	"math"

	"path-follower/internal/geometry/vector"
)

// Epsilon is the distance threshold (meters) below which a denominator is
// treated as zero and the documented fallback branch is taken instead of
// dividing. Kept at the original tuning value.
const Epsilon = 1e-6

// PathSegment describes one commanded segment in the local NED frame.
// For vector and endpoint modes End is the destination; for circle modes
// End is the circle center and Start is a point on the circle. The
// evaluator does not (and cannot) check that reinterpretation.
type PathSegment struct {
	Start vector.Vec3 `json:"start"`
	End   vector.Vec3 `json:"end"`
	Mode  PathMode    `json:"mode"`
}

// PathStatus is the result of evaluating a segment at a position.
//
// PathDirection and CorrectionDirection are unit vectors or one of the
// documented fallbacks; they are never NaN and never an unnormalized
// nonzero vector.
type PathStatus struct {
	// FractionalProgress is clamped to [0,1] for vector segments and
	// unclamped elsewhere.
	FractionalProgress float64 `json:"fractionalProgress"`
	// Error is the deviation magnitude in meters, always >= 0.
	Error float64 `json:"error"`
	// PathDirection is the tangent direction of travel.
	PathDirection vector.Vec3 `json:"pathDirection"`
	// CorrectionDirection points toward the path to reduce Error.
	CorrectionDirection vector.Vec3 `json:"correctionDirection"`
}

// Progress evaluates the segment at the current position. Unknown modes
// fall back to 2D endpoint guidance: a malformed mode must still steer
// the vehicle somewhere rather than silently doing nothing.
func Progress(seg PathSegment, cur vector.Vec3) PathStatus {
	switch seg.Mode {
	case ModeFlyVector:
		return vectorProgress(seg.Start, seg.End, cur, true)
	case ModeDriveVector:
		return vectorProgress(seg.Start, seg.End, cur, false)
	case ModeFlyCircleRight, ModeDriveCircleRight:
		return circleProgress(seg.Start, seg.End, cur, true)
	case ModeFlyCircleLeft, ModeDriveCircleLeft:
		return circleProgress(seg.Start, seg.End, cur, false)
	case ModeFlyEndpoint:
		return endpointProgress(seg.Start, seg.End, cur, true)
	default:
		return endpointProgress(seg.Start, seg.End, cur, false)
	}
}

// endpointProgress computes progress toward a destination point. The
// deviation equals the remaining distance: this mode closes distance, it
// does not correct onto a track, so CorrectionDirection stays zero.
func endpointProgress(start, end, cur vector.Vec3, mode3D bool) PathStatus {
	var st PathStatus

	path := end.Sub(start)
	diff := end.Sub(cur)
	if !mode3D {
		path.Z = 0
		diff.Z = 0
	}

	distDiff := diff.Norm()
	distPath := path.Norm()

	if distDiff < Epsilon {
		// Arrived: there is no meaningful direction left to report.
		st.FractionalProgress = 1
		st.PathDirection = vector.Vec3{Z: 1}
		return st
	}

	if distPath+1 > distDiff {
		st.FractionalProgress = 1 - distDiff/(1+distPath)
	}
	// otherwise progress stays 0 rather than going negative
	st.Error = distDiff

	// Direction to travel: toward the endpoint from where we are now.
	st.PathDirection = diff.Mul(1 / distDiff)
	return st
}

// vectorProgress computes progress along the straight segment start->end
// and the perpendicular deviation from it.
func vectorProgress(start, end, cur vector.Vec3, mode3D bool) PathStatus {
	var st PathStatus

	path := end.Sub(start)
	diff := cur.Sub(start)
	if !mode3D {
		path.Z = 0
		diff.Z = 0
	}

	dot := path.Dot(diff)
	distPath := path.Norm()

	if distPath > Epsilon {
		st.PathDirection = path.Mul(1 / distPath)
		st.FractionalProgress = dot / (distPath * distPath)
	} else {
		// Path too short to determine a direction. Treat as flown.
		st.FractionalProgress = 1
	}

	// Bounding progress also pins the track point between start and end.
	st.FractionalProgress = clamp(st.FractionalProgress, 0, 1)

	trackPoint := start.Add(path.Mul(st.FractionalProgress))
	correction := trackPoint.Sub(cur)
	st.Error = correction.Norm()

	if st.Error > Epsilon {
		st.CorrectionDirection = correction.Mul(1 / st.Error)
	} else {
		st.CorrectionDirection = vector.Vec3{Z: 1}
	}
	return st
}

// circleProgress computes angular progress around the circle of radius
// |center-start| about center, and the radial deviation from it. Circular
// guidance works in the horizontal plane only; altitude is ignored.
func circleProgress(start, center, cur vector.Vec3, clockwise bool) PathStatus {
	var st PathStatus

	radiusVec := center.Sub(start).Flat()
	offset := cur.Sub(center).Flat()

	radius := radiusVec.Norm2D()
	cradius := offset.Norm2D()

	if cradius < Epsilon {
		// Sitting on the center there is no tangent or radial; hand back
		// fixed unit directions so the controller still gets a normal.
		st.FractionalProgress = 1
		st.Error = radius
		st.CorrectionDirection = vector.Vec3{Y: 1}
		st.PathDirection = vector.Vec3{X: 1}
		return st
	}

	// Unit tangent: the radial rotated 90 degrees, sense per direction.
	var normal vector.Vec3
	if clockwise {
		normal = vector.Vec3{X: -offset.Y / cradius, Y: offset.X / cradius}
	} else {
		normal = vector.Vec3{X: offset.Y / cradius, Y: -offset.X / cradius}
	}

	// Angular progress normalized to [0,1). The half-turn offset and the
	// clockwise inversion after the wrap are deliberate: the start point
	// reads as 0 counter-clockwise and 1 clockwise.
	aOffset := math.Atan2(offset.X, offset.Y)
	aRadius := math.Atan2(radiusVec.X, radiusVec.Y)
	if aOffset < 0 {
		aOffset += 2 * math.Pi
	}
	if aRadius < 0 {
		aRadius += 2 * math.Pi
	}

	progress := (aOffset - aRadius + math.Pi) / (2 * math.Pi)
	if progress < 0 {
		progress += 1
	} else if progress >= 1 {
		progress -= 1
	}
	if clockwise {
		progress = 1 - progress
	}
	st.FractionalProgress = progress

	// Radial error is positive when inside the wanted radius, so the
	// correction points outward when too close and inward when too far.
	errSigned := radius - cradius
	sign := -1.0
	if errSigned > 0 {
		sign = 1.0
	}
	st.CorrectionDirection = vector.Vec3{
		X: sign * offset.X / cradius,
		Y: sign * offset.Y / cradius,
	}
	st.PathDirection = normal
	st.Error = math.Abs(errSigned)
	return st
}

// clamp keeps value inside [lo, hi].
func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
