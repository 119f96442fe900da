package shp2xodr

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

// straightBoundary builds a horizontal boundary at given y with pointCount points
// spaced 1 meter apart
func straightBoundary(roadID, index string, y float64, pointCount int) LaneBoundary {
	geom := make(orb.LineString, pointCount)
	for i := 0; i < pointCount; i++ {
		geom[i] = orb.Point{float64(i), y}
	}
	return LaneBoundary{RoadID: roadID, Index: index, Geom: geom}
}

// rampBoundary builds a horizontal boundary whose y grows linearly from yFrom to yTo
func rampBoundary(roadID, index string, yFrom, yTo float64, pointCount int) LaneBoundary {
	geom := make(orb.LineString, pointCount)
	for i := 0; i < pointCount; i++ {
		fraction := float64(i) / float64(pointCount-1)
		geom[i] = orb.Point{float64(i), yFrom + fraction*(yTo-yFrom)}
	}
	return LaneBoundary{RoadID: roadID, Index: index, Geom: geom}
}

func TestBuildLaneSurfacesParallel(t *testing.T) {
	cfg := NewDefaultConfig()
	boundaries := []LaneBoundary{
		straightBoundary("12", "0", 0.0, 100),
		straightBoundary("12", "1", 3.5, 100),
	}
	surfaces := buildLaneSurfaces("12", boundaries, cfg, false)
	if len(surfaces) != 1 {
		t.Errorf("Two boundaries should yield 1 surface, but got %d", len(surfaces))
		return
	}
	surface := surfaces[0]
	if surface.SurfaceID != "12_0_1" {
		t.Errorf("Surface ID should be '12_0_1', but got '%s'", surface.SurfaceID)
	}
	if surface.VariableWidth {
		t.Errorf("Parallel boundaries should yield constant width")
	}
	for i, sample := range surface.WidthProfile {
		if math.Abs(sample.Width-3.5) > 1e-9 {
			t.Errorf("Width sample %d should be 3.5, but got %f", i, sample.Width)
		}
	}
	for i, point := range surface.CenterLine {
		if math.Abs(point.Y()-1.75) > 1e-9 {
			t.Errorf("Center point %d should sit at y = 1.75, but got %f", i, point.Y())
		}
	}
}

func TestWidthProfileStrictlyIncreasing(t *testing.T) {
	cfg := NewDefaultConfig()
	boundaries := []LaneBoundary{
		straightBoundary("7", "0", 0.0, 100),
		rampBoundary("7", "1", 3.5, 4.5, 100),
	}
	surfaces := buildLaneSurfaces("7", boundaries, cfg, false)
	if len(surfaces) != 1 {
		t.Errorf("Two boundaries should yield 1 surface, but got %d", len(surfaces))
		return
	}
	profile := surfaces[0].WidthProfile
	if profile[0].S != 0.0 {
		t.Errorf("First width sample should sit at s = 0, but got %f", profile[0].S)
	}
	for i := 1; i < len(profile); i++ {
		if profile[i].S <= profile[i-1].S {
			t.Errorf("Width sample s-coordinates should strictly increase, but sample %d has %f after %f", i, profile[i].S, profile[i-1].S)
		}
	}
}

func TestVariableWidthThreshold(t *testing.T) {
	cfg := NewDefaultConfig()

	// Width grows 3.5 to 3.59 meters: 0.09 spread stays under the 0.1 threshold
	constant := buildLaneSurfaces("c", []LaneBoundary{
		straightBoundary("c", "0", 0.0, 100),
		rampBoundary("c", "1", 3.5, 3.59, 100),
	}, cfg, false)
	if len(constant) != 1 {
		t.Errorf("Expected 1 surface, but got %d", len(constant))
		return
	}
	if constant[0].VariableWidth {
		t.Errorf("Width spread of 0.09 should classify as constant")
	}

	// Width grows 3.5 to 3.61 meters: 0.11 spread crosses the threshold
	variable := buildLaneSurfaces("v", []LaneBoundary{
		straightBoundary("v", "0", 0.0, 100),
		rampBoundary("v", "1", 3.5, 3.61, 100),
	}, cfg, false)
	if len(variable) != 1 {
		t.Errorf("Expected 1 surface, but got %d", len(variable))
		return
	}
	if !variable[0].VariableWidth {
		t.Errorf("Width spread of 0.11 should classify as variable")
	}
}

func TestBuildLaneSurfacesOrdering(t *testing.T) {
	cfg := NewDefaultConfig()
	// Indices arrive shuffled and include a two-digit one
	boundaries := []LaneBoundary{
		straightBoundary("9", "10", 10.5, 50),
		straightBoundary("9", "0", 0.0, 50),
		straightBoundary("9", "2", 7.0, 50),
		straightBoundary("9", "1", 3.5, 50),
	}
	surfaces := buildLaneSurfaces("9", boundaries, cfg, false)
	if len(surfaces) != 3 {
		t.Errorf("Four boundaries should yield 3 surfaces, but got %d", len(surfaces))
		return
	}
	expectedIDs := []string{"9_0_1", "9_1_2", "9_2_10"}
	for i, surface := range surfaces {
		if surface.SurfaceID != expectedIDs[i] {
			t.Errorf("Surface %d ID should be '%s', but got '%s'", i, expectedIDs[i], surface.SurfaceID)
		}
	}
}

func TestBuildLaneSurfacesSkipsMalformed(t *testing.T) {
	cfg := NewDefaultConfig()
	boundaries := []LaneBoundary{
		straightBoundary("3", "0", 0.0, 50),
		{RoadID: "3", Index: "1", Geom: orb.LineString{{0.0, 3.5}}},
		straightBoundary("3", "2", 7.0, 50),
	}
	surfaces := buildLaneSurfaces("3", boundaries, cfg, false)
	if len(surfaces) != 1 {
		t.Errorf("Malformed boundary should be skipped leaving 1 surface, but got %d", len(surfaces))
		return
	}
	if surfaces[0].SurfaceID != "3_0_2" {
		t.Errorf("Surface ID should be '3_0_2', but got '%s'", surfaces[0].SurfaceID)
	}

	single := buildLaneSurfaces("4", []LaneBoundary{
		straightBoundary("4", "0", 0.0, 50),
		{RoadID: "4", Index: "1", Geom: orb.LineString{{0.0, 3.5}}},
	}, cfg, false)
	if single != nil {
		t.Errorf("A road with one usable boundary should yield no surfaces, but got %d", len(single))
	}
}

func TestMergeAttributes(t *testing.T) {
	left := BoundaryAttributes{Width: 3.2, RoadType: "primary"}
	right := BoundaryAttributes{Width: 3.8, SpeedLimit: 60.0, RoadType: "secondary"}
	merged := mergeAttributes(left, right)
	if merged.Width != 3.2 {
		t.Errorf("Left width should win, but got %f", merged.Width)
	}
	if merged.RoadType != "primary" {
		t.Errorf("Left road type should win, but got '%s'", merged.RoadType)
	}
	if merged.SpeedLimit != 60.0 {
		t.Errorf("Right speed limit should be kept, but got %f", merged.SpeedLimit)
	}

	fallback := mergeAttributes(BoundaryAttributes{SpeedLimit: 40.0}, BoundaryAttributes{})
	if fallback.SpeedLimit != 40.0 {
		t.Errorf("Left speed limit should be used when right has none, but got %f", fallback.SpeedLimit)
	}
}
