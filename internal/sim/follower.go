package sim

import (
	"path-follower/internal/geometry/vector"
	"path-follower/internal/guidance"
)

// FollowerConfig tunes how a guidance result becomes a velocity command.
type FollowerConfig struct {
	// CorrectionGain weights the correction direction per meter of
	// deviation before blending it with the path tangent.
	CorrectionGain float64
	// MaxCorrectionWeight caps the blended correction so a large error
	// turns the vehicle toward the path instead of fully sideways.
	MaxCorrectionWeight float64
	// MaxClimbRate limits the vertical component of the command, m/s.
	MaxClimbRate float64
}

// DefaultFollowerConfig returns sane tuning for a small fixed-wing class
// vehicle at tens of m/s.
func DefaultFollowerConfig() FollowerConfig {
	return FollowerConfig{
		CorrectionGain:      0.05,
		MaxCorrectionWeight: 1.5,
		MaxClimbRate:        8,
	}
}

// DesiredVelocity blends the path tangent with an error-weighted
// correction toward the path and scales to the commanded speed. The
// correction weight is proportional to the deviation, so the on-track
// fallback correction direction never deflects the command.
func DesiredVelocity(st guidance.PathStatus, speed float64, cfg FollowerConfig) vector.Vec3 {
	weight := st.Error * cfg.CorrectionGain
	if weight > cfg.MaxCorrectionWeight {
		weight = cfg.MaxCorrectionWeight
	}

	dir := st.PathDirection.Add(st.CorrectionDirection.Mul(weight)).Normalize()
	vel := dir.Mul(speed)

	if vel.Z > cfg.MaxClimbRate {
		vel.Z = cfg.MaxClimbRate
	} else if vel.Z < -cfg.MaxClimbRate {
		vel.Z = -cfg.MaxClimbRate
	}
	return vel
}
