package shp2xodr

import (
	"math"

	"github.com/paulmach/orb"
)

type runKind uint16

const (
	RUN_LINE = runKind(iota + 1)
	RUN_CURVE
)

func (iotaIdx runKind) String() string {
	return [...]string{"line", "curve"}[iotaIdx-1]
}

// lineRun is a contiguous range of polyline points classified as straight or curved.
// Indices are inclusive; consecutive runs share their boundary point
type lineRun struct {
	kind  runKind
	first int
	last  int
}

// classifyRuns splits given line into straight and curved ranges by heading change rate.
// A vertex is considered turning when heading change at it exceeds the threshold; a curved
// range is flagged once at least minRunLength consecutive turning vertices are found.
// Returned runs are contiguous and cover the whole line without gaps or overlaps
func classifyRuns(line orb.LineString, threshold float64, minRunLength int) []lineRun {
	if len(line) < 3 {
		return []lineRun{{kind: RUN_LINE, first: 0, last: len(line) - 1}}
	}
	if minRunLength < 1 {
		minRunLength = 1
	}

	// Heading change at every interior vertex
	turning := make([]bool, len(line))
	for i := 1; i < len(line)-1; i++ {
		headingIn := headingBetween(line[i-1], line[i])
		headingOut := headingBetween(line[i], line[i+1])
		turning[i] = math.Abs(normalizeAngle(headingOut-headingIn)) > threshold
	}

	runs := []lineRun{}
	cursor := 0
	i := 1
	for i < len(line)-1 {
		if !turning[i] {
			i++
			continue
		}
		blockStart := i
		for i < len(line)-1 && turning[i] {
			i++
		}
		blockEnd := i - 1
		if blockEnd-blockStart+1 < minRunLength {
			continue
		}
		// Curved range spans from the vertex before the block to the vertex after it
		curveFirst := blockStart - 1
		curveLast := blockEnd + 1
		if curveFirst > cursor {
			runs = append(runs, lineRun{kind: RUN_LINE, first: cursor, last: curveFirst})
		}
		runs = append(runs, lineRun{kind: RUN_CURVE, first: curveFirst, last: curveLast})
		cursor = curveLast
	}
	if cursor < len(line)-1 {
		runs = append(runs, lineRun{kind: RUN_LINE, first: cursor, last: len(line) - 1})
	}
	return runs
}
