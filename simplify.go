package shp2xodr

import (
	"github.com/paulmach/orb"
)

// simplifyLine reduces number of points in given line using the Douglas-Peucker algorithm.
// Endpoints of the input are always preserved in the result. Degenerate input (less than
// 3 points) is returned unchanged. Tolerance is expected in same units as coordinates (meters)
func simplifyLine(line orb.LineString, tolerance float64) orb.LineString {
	if len(line) < 3 {
		return line.Clone()
	}

	start := line[0]
	end := line[len(line)-1]

	// Find the point of maximum perpendicular distance from the chord start->end
	maxDistance := 0.0
	maxIndex := 0
	for i := 1; i < len(line)-1; i++ {
		distance := perpendicularDistance(line[i], start, end)
		if distance > maxDistance {
			maxDistance = distance
			maxIndex = i
		}
	}

	// Whole subsequence collapses to its chord
	if maxDistance <= tolerance {
		return orb.LineString{start, end}
	}

	// Split at the farthest point and recurse on both halves
	leftPart := simplifyLine(line[:maxIndex+1], tolerance)
	rightPart := simplifyLine(line[maxIndex:], tolerance)

	// Merge halves without duplicating the split point
	merged := make(orb.LineString, 0, len(leftPart)+len(rightPart)-1)
	merged = append(merged, leftPart[:len(leftPart)-1]...)
	merged = append(merged, rightPart...)
	return merged
}
