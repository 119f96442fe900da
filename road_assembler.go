package shp2xodr

import (
	"github.com/paulmach/orb"
)

// WidthEntry is a polynomial lane width record: width(ds) = A + B*ds + C*ds^2 + D*ds^3,
// where ds is the offset from S (meters). Constant-width lanes carry a single entry
// with only A set
type WidthEntry struct {
	S float64
	A float64
	B float64
	C float64
	D float64
}

// LaneWidthTable is the serializable per-lane-surface width description. An entry at
// s = 0 is guaranteed to exist
type LaneWidthTable struct {
	SurfaceID     string
	VariableWidth bool
	Entries       []WidthEntry
	Attributes    BoundaryAttributes
}

// RoadGeometry is the final road model handed to the serializer: one plan-view segment
// list per road and width tables of all its lane surfaces. Not mutated after assembly
type RoadGeometry struct {
	RoadID        string
	PlanView      []GeometrySegment
	ReferenceLine orb.LineString
	Length        float64
	Lanes         []LaneWidthTable
}

// averageWidth returns mean of all width samples
func averageWidth(profile []WidthSample) float64 {
	sum := 0.0
	for _, sample := range profile {
		sum += sample.Width
	}
	return sum / float64(len(profile))
}

// buildWidthTable flattens a surface width profile into serializable entries.
// Constant-width surfaces collapse to exactly one averaged entry at s = 0;
// variable-width surfaces get a linear ramp entry per sample interval
func buildWidthTable(surface *LaneSurface) LaneWidthTable {
	table := LaneWidthTable{
		SurfaceID:     surface.SurfaceID,
		VariableWidth: surface.VariableWidth,
		Attributes:    surface.Attributes,
	}
	if !surface.VariableWidth {
		table.Entries = []WidthEntry{{S: 0, A: averageWidth(surface.WidthProfile)}}
		return table
	}
	profile := surface.WidthProfile
	table.Entries = make([]WidthEntry, 0, len(profile)-1)
	for i := 0; i+1 < len(profile); i++ {
		ds := profile[i+1].S - profile[i].S
		entry := WidthEntry{
			S: profile[i].S,
			A: profile[i].Width,
			B: (profile[i+1].Width - profile[i].Width) / ds,
		}
		table.Entries = append(table.Entries, entry)
	}
	// The first sample always sits at the surface start
	table.Entries[0].S = 0
	return table
}

// assembleRoad combines resolved reference-line segments with per-surface width tables
// into the output road model
func assembleRoad(group *RoadSurfaceGroup, referenceLine orb.LineString, segments []GeometrySegment) *RoadGeometry {
	road := &RoadGeometry{
		RoadID:        group.RoadID,
		PlanView:      segments,
		ReferenceLine: referenceLine,
		Length:        totalSegmentsLength(segments),
		Lanes:         make([]LaneWidthTable, 0, len(group.Surfaces)),
	}
	for _, surface := range group.Surfaces {
		road.Lanes = append(road.Lanes, buildWidthTable(surface))
	}
	return road
}
