package guidance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePathMode(t *testing.T) {
	t.Parallel()

	mode, err := ParsePathMode("fly_circle_left")
	require.NoError(t, err)
	require.Equal(t, ModeFlyCircleLeft, mode)

	mode, err = ParsePathMode("  FLY_VECTOR ")
	require.NoError(t, err)
	require.Equal(t, ModeFlyVector, mode)

	_, err = ParsePathMode("hover")
	require.Error(t, err)
}

func TestPathModeJSONRoundTrip(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(ModeDriveCircleRight)
	require.NoError(t, err)
	require.JSONEq(t, `"DRIVE_CIRCLE_RIGHT"`, string(b))

	var mode PathMode
	require.NoError(t, json.Unmarshal(b, &mode))
	require.Equal(t, ModeDriveCircleRight, mode)

	require.Error(t, json.Unmarshal([]byte(`"NO_SUCH_MODE"`), &mode))
}

func TestPathModeStringUnknown(t *testing.T) {
	t.Parallel()

	require.Equal(t, "PathMode(42)", PathMode(42).String())
}
