package shp2xodr

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// findDistance returns Euclidean distance between two points (meters)
func findDistance(p, q orb.Point) float64 {
	dx := p.X() - q.X()
	dy := p.Y() - q.Y()
	return math.Sqrt(dx*dx + dy*dy)
}

// lineLength returns length for given line (meters)
func lineLength(line orb.LineString) float64 {
	totalLength := 0.0
	if len(line) < 2 {
		return totalLength
	}
	for i := 1; i < len(line); i++ {
		totalLength += findDistance(line[i-1], line[i])
	}
	return totalLength
}

// headingBetween returns tangent direction angle of segment p->q (radians)
func headingBetween(p, q orb.Point) float64 {
	return math.Atan2(q.Y()-p.Y(), q.X()-p.X())
}

// normalizeAngle wraps given angle into (-Pi; Pi]
func normalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// averageHeading returns circular mean of given angles
func averageHeading(angles []float64) float64 {
	sumSin, sumCos := 0.0, 0.0
	for _, angle := range angles {
		sumSin += math.Sin(angle)
		sumCos += math.Cos(angle)
	}
	return math.Atan2(sumSin, sumCos)
}

// perpendicularDistance returns distance from point to the chord lineStart->lineEnd.
// Degenerates to point-to-point distance when the chord has zero length
func perpendicularDistance(point, lineStart, lineEnd orb.Point) float64 {
	chordLength := findDistance(lineStart, lineEnd)
	if chordLength == 0 {
		return findDistance(point, lineStart)
	}
	x0, y0 := point.X(), point.Y()
	x1, y1 := lineStart.X(), lineStart.Y()
	x2, y2 := lineEnd.X(), lineEnd.Y()
	return math.Abs((y2-y1)*x0-(x2-x1)*y0+x2*y1-y2*x1) / chordLength
}

// pointOnSegmentByFraction returns a point on given segment using known fraction
func pointOnSegmentByFraction(p, q orb.Point, fraction float64) orb.Point {
	return orb.Point{
		(1-fraction)*p.X() + fraction*q.X(),
		(1-fraction)*p.Y() + fraction*q.Y(),
	}
}

// interpolateAlong returns a point at given arc-length distance from the start of the line.
// Distances outside of [0; length] are clamped to the corresponding endpoint
func interpolateAlong(line orb.LineString, distance float64) orb.Point {
	if distance <= 0 {
		return line[0]
	}
	traveled := 0.0
	for i := 1; i < len(line); i++ {
		segmentLength := findDistance(line[i-1], line[i])
		if traveled+segmentLength >= distance {
			if segmentLength == 0 {
				return line[i]
			}
			return pointOnSegmentByFraction(line[i-1], line[i], (distance-traveled)/segmentLength)
		}
		traveled += segmentLength
	}
	return line[len(line)-1]
}

// resampleLine redistributes points of given line uniformly by cumulative arc-length.
// Endpoints of the original line are preserved. Returns new slice
func resampleLine(line orb.LineString, targetCount int) orb.LineString {
	if len(line) < 2 || targetCount < 2 {
		return line.Clone()
	}
	totalLength := lineLength(line)
	resampled := make(orb.LineString, targetCount)
	resampled[0] = line[0]
	for i := 1; i < targetCount-1; i++ {
		distance := totalLength * float64(i) / float64(targetCount-1)
		resampled[i] = interpolateAlong(line, distance)
	}
	resampled[targetCount-1] = line[len(line)-1]
	return resampled
}

// turningDirection returns accumulated cross-product of consecutive edge vectors.
// Positive value means net counter-clockwise turn, negative means clockwise
func turningDirection(line orb.LineString) float64 {
	accumulated := 0.0
	for i := 1; i < len(line)-1; i++ {
		ax := line[i].X() - line[i-1].X()
		ay := line[i].Y() - line[i-1].Y()
		bx := line[i+1].X() - line[i].X()
		by := line[i+1].Y() - line[i].Y()
		accumulated += ax*by - ay*bx
	}
	return accumulated
}

// Check if two segments intersects and returns intersections Point
// p1, p2 - first segment
// p3, p4 - second segment
// Note: Euclidean space
func intersect(p1, p2, p3, p4 orb.Point) (orb.Point, error) {
	// Calculate the coefficients of the linear equations
	a1 := p2[1] - p1[1]
	b1 := p1[0] - p2[0]
	c1 := a1*p1[0] + b1*p1[1]
	a2 := p4[1] - p3[1]
	b2 := p3[0] - p4[0]
	c2 := a2*p3[0] + b2*p3[1]

	// Calculate the determinant
	det := a1*b2 - a2*b1
	if det == 0 {
		return orb.Point{}, fmt.Errorf("The lines are parallel")
	}

	// Calculate the intersection point
	x := (b2*c1 - b1*c2) / det
	y := (a1*c2 - a2*c1) / det
	return orb.Point{x, y}, nil
}

// offsetCurve returns a line shifted perpendicularly by given distance.
// Positive distance shifts to the left of travel direction, negative to the right
func offsetCurve(line orb.LineString, distance float64) orb.LineString {
	// Initialize result list and segment list
	var result orb.LineString
	var segments [][2]orb.Point

	// Iterate over line segments and calculate offset segments
	for i := 1; i < len(line); i++ {
		// Get current and previous points
		p1 := line[i-1]
		p2 := line[i]

		// Calculate the vector between the points
		vec := [2]float64{p2[0] - p1[0], p2[1] - p1[1]}

		// Normalize the vector
		vecLen := math.Sqrt(vec[0]*vec[0] + vec[1]*vec[1])
		vec = [2]float64{vec[0] / vecLen, vec[1] / vecLen}

		// Rotate the vector by 90 degrees
		rotated := [2]float64{-vec[1], vec[0]}

		// Scale the rotated vector by the distance
		offset := [2]float64{rotated[0] * distance, rotated[1] * distance}

		// Calculate the offset points
		op1 := [2]float64{p1[0] + offset[0], p1[1] + offset[1]}
		op2 := [2]float64{p2[0] + offset[0], p2[1] + offset[1]}

		// Add the offset segment to the list of segments
		segments = append(segments, [2]orb.Point{op1, op2})
	}

	result = append(result, segments[0][0])
	// Iterate over the segments and calculate the intersections
	for i := 1; i < len(segments); i++ {
		// Get the current and previous segments
		seg1 := segments[i-1]
		seg2 := segments[i]
		// Calculate the intersection point
		intersection, err := intersect(seg1[0], seg1[1], seg2[0], seg2[1])
		if err != nil {
			continue
		}
		// If there is an intersection, add the intersection and the current segment to the result
		result = append(result, intersection)
	}
	result = append(result, segments[len(segments)-1][1])
	return result
}
