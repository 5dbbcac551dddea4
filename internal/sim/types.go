package sim

import (
	"time"
)

// VehicleState is the published per-tick snapshot.
type VehicleState struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Alt float64 `json:"alt"` // meters

	// "Air" velocity in NED (commanded / controlled)
	Vn float64 `json:"vn"`
	Ve float64 `json:"ve"`
	Vd float64 `json:"vd"`

	HeadingDeg float64   `json:"headingDeg"`
	TS         time.Time `json:"ts"`

	ActiveCommand string `json:"activeCommand,omitempty"`
	SegmentIndex  int    `json:"segmentIndex,omitempty"`

	// Guidance status for the active segment
	PathMode           string  `json:"pathMode,omitempty"`
	FractionalProgress float64 `json:"fractionalProgress,omitempty"`
	PathError          float64 `json:"pathError,omitempty"`

	Warning string `json:"warning,omitempty"`
}
