package shp2xodr

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

func TestResolveReferenceLineLeftZero(t *testing.T) {
	cfg := NewDefaultConfig()
	// The surface with right index "0" comes first: left index "0" must still win
	group := &RoadSurfaceGroup{
		RoadID: "5",
		Surfaces: []*LaneSurface{
			{
				Left:       straightBoundary("5", "-1", -3.5, 50),
				Right:      straightBoundary("5", "0", 0.0, 50),
				CenterLine: orb.LineString{{0.0, -1.75}, {49.0, -1.75}},
			},
			{
				Left:       straightBoundary("5", "0", 0.0, 50),
				Right:      straightBoundary("5", "1", 3.5, 50),
				CenterLine: orb.LineString{{0.0, 1.75}, {49.0, 1.75}},
			},
		},
	}
	reference, err := resolveReferenceLine(group, cfg)
	if err != nil {
		t.Errorf("Error should be nil, but got: %s", err.Error())
		return
	}
	if reference[0].Y() != 0.0 || reference[len(reference)-1].Y() != 0.0 {
		t.Errorf("Reference line should be the left index '0' boundary at y = 0, but got y = %f", reference[0].Y())
	}
}

func TestResolveReferenceLineRightZero(t *testing.T) {
	cfg := NewDefaultConfig()
	group := &RoadSurfaceGroup{
		RoadID: "5",
		Surfaces: []*LaneSurface{
			{
				Left:       straightBoundary("5", "-1", -3.5, 50),
				Right:      straightBoundary("5", "0", 0.0, 50),
				CenterLine: orb.LineString{{0.0, -1.75}, {49.0, -1.75}},
			},
		},
	}
	reference, err := resolveReferenceLine(group, cfg)
	if err != nil {
		t.Errorf("Error should be nil, but got: %s", err.Error())
		return
	}
	if reference[0].Y() != 0.0 {
		t.Errorf("Reference line should be the right index '0' boundary at y = 0, but got y = %f", reference[0].Y())
	}
}

func TestResolveReferenceLineCenterFallback(t *testing.T) {
	cfg := NewDefaultConfig()
	group := &RoadSurfaceGroup{
		RoadID: "5",
		Surfaces: []*LaneSurface{
			{
				Left:       straightBoundary("5", "1", 0.0, 50),
				Right:      straightBoundary("5", "2", 3.5, 50),
				CenterLine: orb.LineString{{0.0, 1.75}, {49.0, 1.75}},
			},
		},
	}
	reference, err := resolveReferenceLine(group, cfg)
	if err != nil {
		t.Errorf("Error should be nil, but got: %s", err.Error())
		return
	}
	if reference[0].Y() != 1.75 {
		t.Errorf("Reference line should fall back to the first surface center line at y = 1.75, but got y = %f", reference[0].Y())
	}
	// Returned line is a copy, mutating it must not touch the surface
	reference[0] = orb.Point{-100.0, -100.0}
	if group.Surfaces[0].CenterLine[0].X() == -100.0 {
		t.Errorf("Reference line should be a copy of the center line")
	}
}

func TestResolveReferenceLineFreshMidpoint(t *testing.T) {
	cfg := NewDefaultConfig()
	group := &RoadSurfaceGroup{
		RoadID: "5",
		Surfaces: []*LaneSurface{
			{
				Left:  straightBoundary("5", "1", 0.0, 50),
				Right: straightBoundary("5", "2", 3.5, 50),
			},
		},
	}
	reference, err := resolveReferenceLine(group, cfg)
	if err != nil {
		t.Errorf("Error should be nil, but got: %s", err.Error())
		return
	}
	for i, point := range reference {
		if point.Y() != 1.75 {
			t.Errorf("Fresh midpoint point %d should sit at y = 1.75, but got %f", i, point.Y())
		}
	}
}

func TestResolveReferenceLineEmptyGroup(t *testing.T) {
	cfg := NewDefaultConfig()
	_, err := resolveReferenceLine(&RoadSurfaceGroup{RoadID: "5"}, cfg)
	if !errors.Is(err, ErrEmptyGroup) {
		t.Errorf("Error should wrap ErrEmptyGroup, but got: %v", err)
	}
	_, err = resolveReferenceLine(nil, cfg)
	if !errors.Is(err, ErrEmptyGroup) {
		t.Errorf("Error should wrap ErrEmptyGroup for nil group, but got: %v", err)
	}
}
