package shp2xodr

import (
	"math"

	"github.com/paulmach/orb"
)

// Pose is a position and tangent direction on the plan view
type Pose struct {
	X   float64
	Y   float64
	Hdg float64
}

// Point returns position part of the pose
func (p Pose) Point() orb.Point {
	return orb.Point{p.X, p.Y}
}

// GeometrySegment is a single piece of plan-view geometry: a straight line or an arc
// of constant curvature. The set of implementations is closed (LineSegment, ArcSegment),
// so curvature exists only where it is meaningful.
//
// Within one geometry S() of every next segment equals S()+Length() of the previous one,
// and the propagated End() of the previous segment is the position of the next one.
// Heading is free to change at segment joints (the source polylines are G0-continuous)
type GeometrySegment interface {
	// S returns start arc-length along the owning geometry
	S() float64
	// Start returns pose at the beginning of the segment
	Start() Pose
	// Length returns segment length, always positive
	Length() float64
	// End returns closed-form pose at the end of the segment
	End() Pose

	sealedSegment()
}

// LineSegment is a straight plan-view geometry piece
type LineSegment struct {
	SegS     float64
	SegStart Pose
	SegLen   float64
}

func (seg LineSegment) S() float64      { return seg.SegS }
func (seg LineSegment) Start() Pose     { return seg.SegStart }
func (seg LineSegment) Length() float64 { return seg.SegLen }
func (seg LineSegment) sealedSegment()  {}

func (seg LineSegment) End() Pose {
	return Pose{
		X:   seg.SegStart.X + seg.SegLen*math.Cos(seg.SegStart.Hdg),
		Y:   seg.SegStart.Y + seg.SegLen*math.Sin(seg.SegStart.Hdg),
		Hdg: seg.SegStart.Hdg,
	}
}

// ArcSegment is a constant-curvature plan-view geometry piece.
// Curvature is signed: positive bends left, negative bends right (1/meters)
type ArcSegment struct {
	SegS      float64
	SegStart  Pose
	SegLen    float64
	Curvature float64
}

func (seg ArcSegment) S() float64      { return seg.SegS }
func (seg ArcSegment) Start() Pose     { return seg.SegStart }
func (seg ArcSegment) Length() float64 { return seg.SegLen }
func (seg ArcSegment) sealedSegment()  {}

func (seg ArcSegment) End() Pose {
	hdg := seg.SegStart.Hdg
	endHdg := hdg + seg.Curvature*seg.SegLen
	return Pose{
		X:   seg.SegStart.X + (math.Sin(endHdg)-math.Sin(hdg))/seg.Curvature,
		Y:   seg.SegStart.Y - (math.Cos(endHdg)-math.Cos(hdg))/seg.Curvature,
		Hdg: normalizeAngle(endHdg),
	}
}

// totalSegmentsLength returns overall length of given geometry
func totalSegmentsLength(segments []GeometrySegment) float64 {
	total := 0.0
	for _, segment := range segments {
		total += segment.Length()
	}
	return total
}

// sampleSegments reconstructs a polyline from given geometry with approximately
// given step between points (meters). Segment joints are always sampled
func sampleSegments(segments []GeometrySegment, step float64) orb.LineString {
	if len(segments) == 0 {
		return orb.LineString{}
	}
	if step <= 0 {
		step = 1.0
	}
	line := orb.LineString{segments[0].Start().Point()}
	for _, segment := range segments {
		steps := int(math.Ceil(segment.Length() / step))
		if steps < 1 {
			steps = 1
		}
		for i := 1; i <= steps; i++ {
			partial := segment.Length() * float64(i) / float64(steps)
			line = append(line, poseAlongSegment(segment, partial).Point())
		}
	}
	return line
}

// poseAlongSegment returns pose at given arc-length distance from the segment start
func poseAlongSegment(segment GeometrySegment, distance float64) Pose {
	switch seg := segment.(type) {
	case LineSegment:
		part := seg
		part.SegLen = distance
		return part.End()
	case ArcSegment:
		part := seg
		part.SegLen = distance
		return part.End()
	}
	// Unreachable: the GeometrySegment set is closed
	return segment.Start()
}
