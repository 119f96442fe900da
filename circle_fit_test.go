package shp2xodr

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func circlePoints(centerX, centerY, radius, fromDeg, toDeg, stepDeg float64) orb.LineString {
	line := orb.LineString{}
	for angle := fromDeg; angle <= toDeg+1e-9; angle += stepDeg {
		rad := angle * math.Pi / 180.0
		line = append(line, orb.Point{
			centerX + radius*math.Cos(rad),
			centerY + radius*math.Sin(rad),
		})
	}
	return line
}

func TestFitCircleExact(t *testing.T) {
	correctCenter := orb.Point{2.0, 3.0}
	correctRadius := 5.0
	points := circlePoints(correctCenter.X(), correctCenter.Y(), correctRadius, 0, 270, 10)

	center, radius, err := fitCircle(points)
	if err != nil {
		t.Error(err)
		return
	}
	if relErr := math.Abs(radius-correctRadius) / correctRadius; relErr > 1e-6 {
		t.Errorf("Radius should be %f, but got %f (relative error %e)", correctRadius, radius, relErr)
	}
	if findDistance(center, correctCenter)/correctRadius > 1e-6 {
		t.Errorf("Center should be %v, but got %v", correctCenter, center)
	}
}

func TestFitCircleTooFewPoints(t *testing.T) {
	points := orb.LineString{{0.0, 0.0}, {1.0, 1.0}}
	_, _, err := fitCircle(points)
	if !errors.Is(err, ErrNoFit) {
		t.Errorf("Two points should produce ErrNoFit, but got %v", err)
	}
}

func TestFitCircleCollinearPoints(t *testing.T) {
	points := orb.LineString{{0.0, 0.0}, {1.0, 1.0}, {2.0, 2.0}, {3.0, 3.0}, {4.0, 4.0}}
	_, _, err := fitCircle(points)
	if !errors.Is(err, ErrNoFit) {
		t.Errorf("Collinear points should produce ErrNoFit, but got %v", err)
	}
}

func TestFitCircleNearCollinearPoints(t *testing.T) {
	// Deviation around 1e-12 meters over a 4 meter chord: the system conditioning
	// must reject this, not a distance heuristic
	points := orb.LineString{{0.0, 0.0}, {1.0, 1.0 + 1e-12}, {2.0, 2.0}, {3.0, 3.0 - 1e-12}, {4.0, 4.0}}
	_, _, err := fitCircle(points)
	if !errors.Is(err, ErrNoFit) {
		t.Errorf("Near-collinear points should produce ErrNoFit, but got %v", err)
	}
}
