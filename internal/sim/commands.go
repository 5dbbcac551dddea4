package sim

import (
	"time"

	"path-follower/internal/guidance"
)

type CommandType string

const (
	CmdGoTo    CommandType = "goto"
	CmdOrbit   CommandType = "orbit"
	CmdRoute   CommandType = "route"
	CmdSegment CommandType = "segment"
	CmdHold    CommandType = "hold"
	CmdStop    CommandType = "stop"
)

type Command interface {
	Type() CommandType
	ReceivedAt() time.Time
}

// GoToCommand steers toward a single destination in endpoint mode.
type GoToCommand struct {
	At    time.Time
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Alt   float64 `json:"alt"`
	Speed float64 `json:"speed,omitempty"` // m/s
}

func (c GoToCommand) Type() CommandType     { return CmdGoTo }
func (c GoToCommand) ReceivedAt() time.Time { return c.At }

// OrbitCommand circles a center point at a fixed radius. Orbits never
// complete on their own; they run until replaced.
type OrbitCommand struct {
	At        time.Time
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Alt       float64 `json:"alt"`
	RadiusM   float64 `json:"radiusM"`
	Clockwise bool    `json:"clockwise,omitempty"`
	Speed     float64 `json:"speed,omitempty"` // m/s
}

func (c OrbitCommand) Type() CommandType     { return CmdOrbit }
func (c OrbitCommand) ReceivedAt() time.Time { return c.At }

type Waypoint struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Alt   float64 `json:"alt"`
	Speed float64 `json:"speed,omitempty"` // m/s optional
}

// RouteCommand tracks consecutive straight legs through the waypoints,
// starting with a leg from the position at acceptance time.
type RouteCommand struct {
	At        time.Time
	Waypoints []Waypoint `json:"waypoints"`
	Loop      bool       `json:"loop,omitempty"`
}

func (c RouteCommand) Type() CommandType     { return CmdRoute }
func (c RouteCommand) ReceivedAt() time.Time { return c.At }

// SegmentCommand follows a raw path segment given directly in the local
// NED frame. The mode is taken as supplied, trusted or not; unknown modes
// ride the guidance failsafe.
type SegmentCommand struct {
	At      time.Time
	Segment guidance.PathSegment `json:"segment"`
	Speed   float64              `json:"speed,omitempty"` // m/s
}

func (c SegmentCommand) Type() CommandType     { return CmdSegment }
func (c SegmentCommand) ReceivedAt() time.Time { return c.At }

type HoldCommand struct{ At time.Time }

func (c HoldCommand) Type() CommandType     { return CmdHold }
func (c HoldCommand) ReceivedAt() time.Time { return c.At }

type StopCommand struct{ At time.Time }

func (c StopCommand) Type() CommandType     { return CmdStop }
func (c StopCommand) ReceivedAt() time.Time { return c.At }
