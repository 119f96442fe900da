package shp2xodr

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrNoFit is returned when a circle can not be fitted through given points
var ErrNoFit = errors.New("no circle fit")

// Condition number limit for the Kasa linear system. Collinear points make the
// system rank-deficient, near-collinear points make it badly conditioned
const circleFitMaxCond = 1e10

// fitCircle estimates center and radius of a circle through given points with
// the algebraic least-squares (Kasa) method: x^2+y^2 = 2*cx*x + 2*cy*y + (r^2 - cx^2 - cy^2)
// is linear in the unknowns, so the fit reduces to an overdetermined linear system.
// Fails with ErrNoFit for less than 3 points or when the system is ill-conditioned
func fitCircle(points orb.LineString) (orb.Point, float64, error) {
	if len(points) < 3 {
		return orb.Point{}, 0.0, errors.Wrapf(ErrNoFit, "need at least 3 points, got %d", len(points))
	}

	a := mat.NewDense(len(points), 3, nil)
	b := mat.NewVecDense(len(points), nil)
	for i, pt := range points {
		a.Set(i, 0, pt.X())
		a.Set(i, 1, pt.Y())
		a.Set(i, 2, 1.0)
		b.SetVec(i, pt.X()*pt.X()+pt.Y()*pt.Y())
	}

	if cond := mat.Cond(a, 2); math.IsInf(cond, 1) || cond > circleFitMaxCond {
		return orb.Point{}, 0.0, errors.Wrapf(ErrNoFit, "system is ill-conditioned (cond = %e)", cond)
	}

	var solution mat.VecDense
	if err := solution.SolveVec(a, b); err != nil {
		return orb.Point{}, 0.0, errors.Wrap(ErrNoFit, err.Error())
	}

	centerX := solution.AtVec(0) / 2.0
	centerY := solution.AtVec(1) / 2.0
	radiusSquared := solution.AtVec(2) + centerX*centerX + centerY*centerY
	if radiusSquared <= 0 {
		return orb.Point{}, 0.0, errors.Wrap(ErrNoFit, "non-positive squared radius")
	}

	return orb.Point{centerX, centerY}, math.Sqrt(radiusSquared), nil
}
