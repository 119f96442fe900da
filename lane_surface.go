package shp2xodr

import (
	"fmt"

	"github.com/paulmach/orb"
)

// WidthSample is lane width at given arc-length along the surface center line
type WidthSample struct {
	S     float64
	Width float64
}

// LaneSurface is the drivable strip between two adjacent ordered boundaries of one road.
// Center line and width profile are derived once during construction; the connection
// consistency adjustment replaces them with new values, it never mutates them in place
type LaneSurface struct {
	RoadID        string
	SurfaceID     string
	Left          LaneBoundary
	Right         LaneBoundary
	CenterLine    orb.LineString
	WidthProfile  []WidthSample
	VariableWidth bool
	Attributes    BoundaryAttributes
}

// StartHeading returns tangent direction at the beginning of the center line
func (surface *LaneSurface) StartHeading() float64 {
	return headingBetween(surface.CenterLine[0], surface.CenterLine[1])
}

// EndHeading returns tangent direction at the end of the center line
func (surface *LaneSurface) EndHeading() float64 {
	last := len(surface.CenterLine) - 1
	return headingBetween(surface.CenterLine[last-1], surface.CenterLine[last])
}

// resampleTargetCount picks a common point count for a boundary pair. Sparse sources
// get boosted harder: the midpoint line loses curve shape when computed over few points
func resampleTargetCount(leftCount, rightCount int, cfg *Config) int {
	target := leftCount
	if rightCount > target {
		target = rightCount
	}
	smaller := leftCount
	if rightCount < smaller {
		smaller = rightCount
	}
	if smaller < cfg.SparsePointCount {
		return target * cfg.BoostSparse
	}
	return target * cfg.BoostDense
}

// pairBoundaries derives center line and width profile for two adjacent boundaries.
// Both polylines are resampled to a common count by cumulative arc-length, the center
// line is the point-wise midpoint, and width is sampled at every resampled point pair
// (sampling everywhere, as opposed to interpolating between start/end widths only, is
// the variant implemented here; the two are not interchangeable within one run)
func pairBoundaries(left, right LaneBoundary, cfg *Config) (orb.LineString, []WidthSample) {
	targetCount := resampleTargetCount(len(left.Geom), len(right.Geom), cfg)
	leftResampled := resampleLine(left.Geom, targetCount)
	rightResampled := resampleLine(right.Geom, targetCount)

	centerLine := make(orb.LineString, targetCount)
	for i := 0; i < targetCount; i++ {
		centerLine[i] = orb.Point{
			(leftResampled[i].X() + rightResampled[i].X()) / 2.0,
			(leftResampled[i].Y() + rightResampled[i].Y()) / 2.0,
		}
	}

	profile := make([]WidthSample, 0, targetCount)
	traveled := 0.0
	for i := 0; i < targetCount; i++ {
		if i > 0 {
			step := findDistance(centerLine[i-1], centerLine[i])
			if step == 0 {
				// Duplicate center point, keep s strictly increasing
				continue
			}
			traveled += step
		}
		profile = append(profile, WidthSample{
			S:     traveled,
			Width: findDistance(leftResampled[i], rightResampled[i]),
		})
	}
	return centerLine, profile
}

// isVariableWidth reports whether width samples spread wider than the configured threshold
func isVariableWidth(profile []WidthSample, cfg *Config) bool {
	if len(profile) == 0 {
		return false
	}
	minWidth := profile[0].Width
	maxWidth := profile[0].Width
	for _, sample := range profile[1:] {
		if sample.Width < minWidth {
			minWidth = sample.Width
		}
		if sample.Width > maxWidth {
			maxWidth = sample.Width
		}
	}
	return maxWidth-minWidth > cfg.WidthVariationThreshold
}

// buildLaneSurfaces pairs adjacent ordered boundaries of one road into lane surfaces.
// Boundaries with less than 2 points are skipped (malformed input is isolated, not fatal);
// a road with a single usable boundary yields no surfaces
func buildLaneSurfaces(roadID string, boundaries []LaneBoundary, cfg *Config, verbose bool) []*LaneSurface {
	usable := make([]LaneBoundary, 0, len(boundaries))
	for _, boundary := range boundaries {
		if len(boundary.Geom) < 2 {
			if verbose {
				fmt.Printf("\tWarning. Road %s: boundary %s has %d points, skipping\n", roadID, boundary.Index, len(boundary.Geom))
			}
			continue
		}
		usable = append(usable, boundary)
	}
	if len(usable) < 2 {
		return nil
	}
	ordered := sortBoundaries(usable)

	surfaces := make([]*LaneSurface, 0, len(ordered)-1)
	for i := 0; i+1 < len(ordered); i++ {
		left := ordered[i]
		right := ordered[i+1]
		centerLine, profile := pairBoundaries(left, right, cfg)
		if len(centerLine) < 2 || len(profile) < 2 {
			if verbose {
				fmt.Printf("\tWarning. Road %s: degenerate surface between boundaries %s and %s, skipping\n", roadID, left.Index, right.Index)
			}
			continue
		}
		surfaces = append(surfaces, &LaneSurface{
			RoadID:        roadID,
			SurfaceID:     fmt.Sprintf("%s_%s_%s", roadID, left.Index, right.Index),
			Left:          left,
			Right:         right,
			CenterLine:    centerLine,
			WidthProfile:  profile,
			VariableWidth: isVariableWidth(profile, cfg),
			Attributes:    mergeAttributes(left.Attributes, right.Attributes),
		})
	}
	return surfaces
}
