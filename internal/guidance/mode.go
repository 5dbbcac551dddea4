package guidance

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PathMode selects which progress algorithm evaluates a segment.
// "Fly" variants compute in 3D, "Drive" variants ignore the down axis.
type PathMode int

const (
	ModeUndefined PathMode = iota
	ModeFlyVector
	ModeDriveVector
	ModeFlyCircleRight
	ModeDriveCircleRight
	ModeFlyCircleLeft
	ModeDriveCircleLeft
	ModeFlyEndpoint
	ModeDriveEndpoint
)

func (m PathMode) String() string {
	switch m {
	case ModeFlyVector:
		return "FLY_VECTOR"
	case ModeDriveVector:
		return "DRIVE_VECTOR"
	case ModeFlyCircleRight:
		return "FLY_CIRCLE_RIGHT"
	case ModeDriveCircleRight:
		return "DRIVE_CIRCLE_RIGHT"
	case ModeFlyCircleLeft:
		return "FLY_CIRCLE_LEFT"
	case ModeDriveCircleLeft:
		return "DRIVE_CIRCLE_LEFT"
	case ModeFlyEndpoint:
		return "FLY_ENDPOINT"
	case ModeDriveEndpoint:
		return "DRIVE_ENDPOINT"
	default:
		return fmt.Sprintf("PathMode(%d)", int(m))
	}
}

// ParsePathMode converts a mode name into a PathMode.
func ParsePathMode(value string) (PathMode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	switch normalized {
	case "FLY_VECTOR":
		return ModeFlyVector, nil
	case "DRIVE_VECTOR":
		return ModeDriveVector, nil
	case "FLY_CIRCLE_RIGHT":
		return ModeFlyCircleRight, nil
	case "DRIVE_CIRCLE_RIGHT":
		return ModeDriveCircleRight, nil
	case "FLY_CIRCLE_LEFT":
		return ModeFlyCircleLeft, nil
	case "DRIVE_CIRCLE_LEFT":
		return ModeDriveCircleLeft, nil
	case "FLY_ENDPOINT":
		return ModeFlyEndpoint, nil
	case "DRIVE_ENDPOINT":
		return ModeDriveEndpoint, nil
	default:
		return ModeUndefined, fmt.Errorf("unknown path mode %q", value)
	}
}

// MarshalJSON encodes modes as their string names.
func (m PathMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON allows modes to be loaded from JSON strings.
func (m *PathMode) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParsePathMode(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
