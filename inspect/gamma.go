package inspect

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/rustyeddy/optfixture/fixture"
)

// GammaWindow is how many rows either side of the reference strike are
// summed by GammaWindowSum.
const GammaWindow = 4

// TrendDecay is the per-file decay of the weights used to fit GammaTrend.
const TrendDecay = 0.1

// Trend is a weighted least-squares line y = Slope*x + Intercept.
type Trend struct {
	Slope     float64
	Intercept float64
}

// GammaWindowSum finds the first row whose strike is nearest ref and sums
// GAMMA_CALL over that row and up to GammaWindow rows on each side.
func GammaWindowSum(rows []fixture.Row, ref float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	at := 0
	best := math.Inf(1)
	for i, r := range rows {
		if d := math.Abs(float64(r.StrikePrice) - ref); d < best {
			best, at = d, i
		}
	}

	var sum float64
	for _, r := range rows[max(0, at-GammaWindow):min(len(rows), at+GammaWindow+1)] {
		sum += r.GammaCall
	}
	return sum
}

// ExpWeights returns n weights decaying by exp(-decay) per step back from
// the last element, so the newest sample weighs 1.
func ExpWeights(n int, decay float64) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = math.Exp(-decay * float64(n-1-i))
	}
	return w
}

// WeightedFit solves (XᵀWX)β = XᵀWy for the line through (x, y).
func WeightedFit(x, y, w []float64) (Trend, error) {
	n := len(x)
	if len(y) != n || len(w) != n {
		return Trend{}, fmt.Errorf("weighted fit: lengths %d, %d, %d differ", n, len(y), len(w))
	}
	if n < 2 {
		return Trend{}, errors.New("weighted fit: need at least two points")
	}

	X := mat.NewDense(n, 2, nil)
	for i := range x {
		X.Set(i, 0, 1)
		X.Set(i, 1, x[i])
	}
	Y := mat.NewVecDense(n, append([]float64(nil), y...))
	W := mat.NewDiagDense(n, append([]float64(nil), w...))

	var xtw mat.Dense
	xtw.Mul(X.T(), W)
	var xtwx mat.Dense
	xtwx.Mul(&xtw, X)
	var xtwy mat.VecDense
	xtwy.MulVec(&xtw, Y)

	var beta mat.VecDense
	if err := beta.SolveVec(&xtwx, &xtwy); err != nil {
		return Trend{}, fmt.Errorf("weighted fit: %w", err)
	}
	return Trend{Slope: beta.AtVec(1), Intercept: beta.AtVec(0)}, nil
}

// gammaTrend fits the per-file window sums against file index.
func gammaTrend(sums []float64) Trend {
	if len(sums) < 2 {
		return Trend{}
	}
	x := make([]float64, len(sums))
	for i := range x {
		x[i] = float64(i)
	}
	t, err := WeightedFit(x, sums, ExpWeights(len(sums), TrendDecay))
	if err != nil {
		return Trend{}
	}
	return t
}
