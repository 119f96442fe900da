package shp2xodr

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrEmptyGroup is returned for a road with no lane surfaces
var ErrEmptyGroup = errors.New("road group has no lane surfaces")

// RoadSurfaceGroup is the set of lane surfaces sharing one road identifier plus the
// declared neighbor roads (filled from the external connection data, may be empty)
type RoadSurfaceGroup struct {
	RoadID       string
	Surfaces     []*LaneSurface
	Predecessors []string
	Successors   []string
}

// resolveReferenceLine selects the single plan-view reference line for a road group.
// A multi-surface road has no canonical centerline, so a strict fallback order applies:
//
//  1. left boundary of a surface whose left index is "0";
//  2. right boundary of a surface whose right index is "0";
//  3. center line of the first surface;
//  4. freshly computed midpoint line between the first surface's boundaries.
//
// Index "0" is the source data convention for the canonical centerline boundary.
// The later steps degrade gracefully, they are never silent failures
func resolveReferenceLine(group *RoadSurfaceGroup, cfg *Config) (orb.LineString, error) {
	if group == nil || len(group.Surfaces) == 0 {
		return nil, errors.Wrapf(ErrEmptyGroup, "road %s", groupID(group))
	}
	for _, surface := range group.Surfaces {
		if surface.Left.Index == "0" {
			return surface.Left.Geom.Clone(), nil
		}
	}
	for _, surface := range group.Surfaces {
		if surface.Right.Index == "0" {
			return surface.Right.Geom.Clone(), nil
		}
	}
	first := group.Surfaces[0]
	if len(first.CenterLine) >= 2 {
		return first.CenterLine.Clone(), nil
	}
	// Guard against a missing precomputed center line
	centerLine, _ := pairBoundaries(first.Left, first.Right, cfg)
	if len(centerLine) < 2 {
		return nil, errors.Wrapf(ErrEmptyGroup, "road %s: can not derive a reference line", group.RoadID)
	}
	return centerLine, nil
}

func groupID(group *RoadSurfaceGroup) string {
	if group == nil {
		return "<nil>"
	}
	return group.RoadID
}
