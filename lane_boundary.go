package shp2xodr

import (
	"sort"
	"strconv"

	"github.com/paulmach/orb"
)

// BoundaryAttributes are optional hints attached to a lane boundary by the data source.
// Zero values mean "not provided"
type BoundaryAttributes struct {
	Width      float64 // meters
	SpeedLimit float64 // km/h
	RoadType   string
}

// LaneBoundary is a single lane boundary polyline of one road. Boundaries of a road
// are totally ordered by Index; index "0" is the source data convention for the
// canonical centerline boundary. Created once from input data and never mutated
type LaneBoundary struct {
	RoadID     string
	Index      string
	Geom       orb.LineString
	Attributes BoundaryAttributes
}

// boundaryIndexLess orders boundary indices numerically when both parse as numbers
// and lexicographically otherwise ("2" goes before "10", "a" after "9")
func boundaryIndexLess(left, right string) bool {
	leftNum, leftErr := strconv.ParseFloat(left, 64)
	rightNum, rightErr := strconv.ParseFloat(right, 64)
	if leftErr == nil && rightErr == nil {
		return leftNum < rightNum
	}
	if leftErr == nil {
		return true
	}
	if rightErr == nil {
		return false
	}
	return left < right
}

// sortBoundaries orders boundaries by index. Returns new slice
func sortBoundaries(boundaries []LaneBoundary) []LaneBoundary {
	ordered := make([]LaneBoundary, len(boundaries))
	copy(ordered, boundaries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return boundaryIndexLess(ordered[i].Index, ordered[j].Index)
	})
	return ordered
}

// mergeAttributes merges attributes of two paired boundaries. Right boundary values win
// on conflicting optional fields unless the left one explicitly provides width or type
func mergeAttributes(left, right BoundaryAttributes) BoundaryAttributes {
	merged := right
	if left.Width > 0 {
		merged.Width = left.Width
	}
	if left.RoadType != "" {
		merged.RoadType = left.RoadType
	}
	if merged.SpeedLimit == 0 {
		merged.SpeedLimit = left.SpeedLimit
	}
	return merged
}
