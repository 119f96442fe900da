package shp2xodr

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

var (
	// ErrShortBoundary is returned for polylines with less than 2 points
	ErrShortBoundary = errors.New("boundary has less than 2 points")
	// ErrContinuityBroken indicates a defect in pose propagation arithmetic.
	// Unlike fit failures it must never be swallowed
	ErrContinuityBroken = errors.New("geometry continuity broken")
)

// Arcs with radius below this threshold degrade to chained line segments
const minArcRadius = 1.0

// segmentChain accumulates segments carrying the current pose explicitly.
// The position is seeded once from the absolute origin of the source polyline and
// after that always propagated from the previous segment's end, never re-derived
// from raw coordinates. Historically every new polyline restarted at (0, 0);
// the explicit accumulator makes that impossible by construction
type segmentChain struct {
	segments []GeometrySegment
	s        float64
	position orb.Point
}

func newSegmentChain(origin orb.Point) *segmentChain {
	return &segmentChain{
		segments: []GeometrySegment{},
		position: origin,
	}
}

// addLineTowards appends a straight segment headed at given target point.
// Zero-length chords (duplicate source points) are dropped
func (chain *segmentChain) addLineTowards(target orb.Point) {
	length := findDistance(chain.position, target)
	if length == 0 {
		return
	}
	segment := LineSegment{
		SegS: chain.s,
		SegStart: Pose{
			X:   chain.position.X(),
			Y:   chain.position.Y(),
			Hdg: headingBetween(chain.position, target),
		},
		SegLen: length,
	}
	chain.segments = append(chain.segments, segment)
	chain.s += length
	chain.position = segment.End().Point()
}

// addArc appends an arc segment with given length and signed curvature starting
// at given heading
func (chain *segmentChain) addArc(length, curvature, heading float64) {
	segment := ArcSegment{
		SegS: chain.s,
		SegStart: Pose{
			X:   chain.position.X(),
			Y:   chain.position.Y(),
			Hdg: heading,
		},
		SegLen:    length,
		Curvature: curvature,
	}
	chain.segments = append(chain.segments, segment)
	chain.s += length
	chain.position = segment.End().Point()
}

// fitArcRange fits a single arc over given curved range and appends it to the chain.
// Returns an error when the range can not be represented by an arc; the caller is
// expected to degrade such range to chained lines
func (chain *segmentChain) fitArcRange(rangePoints orb.LineString) error {
	center, radius, err := fitCircle(rangePoints)
	if err != nil {
		return err
	}
	if radius < minArcRadius {
		return errors.Wrapf(ErrNoFit, "radius %f is below %f", radius, minArcRadius)
	}
	direction := turningDirection(rangePoints)
	if direction == 0 {
		return errors.Wrap(ErrNoFit, "ambiguous turning direction")
	}

	startPoint := rangePoints[0]
	endPoint := rangePoints[len(rangePoints)-1]
	startAngle := math.Atan2(startPoint.Y()-center.Y(), startPoint.X()-center.X())
	endAngle := math.Atan2(endPoint.Y()-center.Y(), endPoint.X()-center.X())

	// Sweep follows the net turning direction of the source points
	sweep := normalizeAngle(endAngle - startAngle)
	if direction > 0 && sweep < 0 {
		sweep += 2 * math.Pi
	}
	if direction < 0 && sweep > 0 {
		sweep -= 2 * math.Pi
	}
	arcLength := math.Abs(sweep) * radius
	if arcLength == 0 {
		return errors.Wrap(ErrNoFit, "zero arc length")
	}

	curvature := 1.0 / radius
	heading := startAngle + math.Pi/2 // tangent for counter-clockwise travel
	if direction < 0 {
		curvature = -curvature
		heading = startAngle - math.Pi/2
	}
	chain.addArc(arcLength, curvature, normalizeAngle(heading))
	return nil
}

// convertGeometry converts a polyline into an ordered, positionally-continuous list
// of line/arc segments. Without arc fitting the line is Douglas-Peucker simplified and
// every remaining chord becomes a line segment. With arc fitting enabled curved ranges
// are detected first and fitted with single arcs; a failed fit degrades that range to
// chained line segments (never fatal)
func convertGeometry(line orb.LineString, cfg *Config, verbose bool) ([]GeometrySegment, error) {
	if len(line) < 2 {
		return nil, errors.Wrapf(ErrShortBoundary, "got %d points", len(line))
	}

	chain := newSegmentChain(line[0])

	if !cfg.UseArcFitting {
		simplified := simplifyLine(line, cfg.Tolerance)
		for i := 1; i < len(simplified); i++ {
			chain.addLineTowards(simplified[i])
		}
		return chain.segments, nil
	}

	runs := classifyRuns(line, cfg.CurveDetectionThreshold, cfg.MinCurveRunLength)
	for _, run := range runs {
		rangePoints := line[run.first : run.last+1]
		if run.kind == RUN_CURVE {
			err := chain.fitArcRange(rangePoints)
			if err == nil {
				continue
			}
			if verbose {
				fmt.Printf("\tWarning. Degrading curved range [%d:%d] to lines: %s\n", run.first, run.last, err.Error())
			}
		}
		for i := 1; i < len(rangePoints); i++ {
			chain.addLineTowards(rangePoints[i])
		}
	}
	return chain.segments, nil
}

// validateContinuity recomputes every propagated end pose and checks it equals the next
// segment's start within given tolerance. A failure indicates a defect in the conversion
// logic rather than a recoverable input problem
func validateContinuity(segments []GeometrySegment, eps float64) error {
	for i := 0; i+1 < len(segments); i++ {
		current := segments[i]
		next := segments[i+1]
		if gap := math.Abs(current.S() + current.Length() - next.S()); gap > eps {
			return errors.Wrapf(ErrContinuityBroken, "s-coordinate gap %e between segments %d and %d", gap, i, i+1)
		}
		end := current.End()
		start := next.Start()
		if gap := math.Hypot(end.X-start.X, end.Y-start.Y); gap > eps {
			return errors.Wrapf(ErrContinuityBroken, "positional gap %e between segments %d and %d", gap, i, i+1)
		}
	}
	return nil
}
