// Package seasonal implements an additive time series model for daily data:
// a piecewise-linear trend with automatic changepoints, Fourier seasonality
// and optional holiday regressors, fit with ridge-regularised least squares.
package seasonal

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Results holds point estimates and uncertainty bounds per requested time.
type Results struct {
	T        []time.Time `json:"time"`
	Forecast []float64   `json:"forecast"`
	Upper    []float64   `json:"upper"`
	Lower    []float64   `json:"lower"`
}

// Model is a single-use additive forecast model. It is not safe for
// concurrent use; build one per fit.
type Model struct {
	opt *Options

	design *design
	coef   *mat.VecDense
	yScale float64
	sigma  float64
	z      float64

	residual []float64
	trained  bool
}

// New creates a model with the given options. If none are provided a default is used.
func New(opt *Options) (*Model, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if err := opt.validate(); err != nil {
		return nil, err
	}
	return &Model{opt: opt}, nil
}

// Fit trains the model on strictly increasing times t with observations y.
// NaN observations are ignored.
func (m *Model) Fit(t []time.Time, y []float64) error {
	if len(t) != len(y) {
		return fmt.Errorf("%d times and %d values, %w", len(t), len(y), ErrMismatchedDataLen)
	}
	trainT := make([]time.Time, 0, len(t))
	trainY := make([]float64, 0, len(y))
	for i := range t {
		if i > 0 && !t[i].After(t[i-1]) {
			return fmt.Errorf("index %d, %w", i, ErrUnsortedTime)
		}
		if math.IsNaN(y[i]) {
			continue
		}
		trainT = append(trainT, t[i])
		trainY = append(trainY, y[i])
	}
	if len(trainT) < 2 {
		return ErrInsufficientTrainingData
	}

	m.design = newDesign(trainT, m.opt)
	m.yScale = maxAbs(trainY)

	x := m.design.matrix(trainT)
	scaledY := make([]float64, len(trainY))
	for i, v := range trainY {
		scaledY[i] = v / m.yScale
	}

	coef, err := solveRidge(x, mat.NewVecDense(len(scaledY), scaledY), m.opt.Regularization)
	if err != nil {
		return err
	}
	m.coef = coef

	var fitted mat.VecDense
	fitted.MulVec(x, coef)
	m.residual = make([]float64, len(trainY))
	for i := range trainY {
		m.residual[i] = trainY[i] - fitted.AtVec(i)*m.yScale
	}
	m.sigma = stat.StdDev(m.residual, nil)
	m.z = distuv.UnitNormal.Quantile(0.5 + m.opt.IntervalWidth/2)
	m.trained = true
	return nil
}

// Predict evaluates the fitted model at any set of times.
func (m *Model) Predict(t []time.Time) (Results, error) {
	if !m.trained {
		return Results{}, ErrUntrainedModel
	}
	res := Results{
		T:        t,
		Forecast: make([]float64, len(t)),
		Upper:    make([]float64, len(t)),
		Lower:    make([]float64, len(t)),
	}
	if len(t) == 0 {
		return res, nil
	}

	var yhat mat.VecDense
	yhat.MulVec(m.design.matrix(t), m.coef)

	band := m.z * m.sigma
	for i := range t {
		v := yhat.AtVec(i) * m.yScale
		res.Forecast[i] = v
		res.Upper[i] = v + band
		res.Lower[i] = v - band
	}
	return res, nil
}

// Residuals returns observed minus fitted values over the training points.
func (m *Model) Residuals() []float64 {
	out := make([]float64, len(m.residual))
	copy(out, m.residual)
	return out
}

// NumFeatures reports the width of the fitted design matrix, intercept included.
func (m *Model) NumFeatures() int {
	if m.design == nil {
		return 0
	}
	return m.design.numFeatures()
}

// FutureDates returns periods consecutive days following last.
func FutureDates(last time.Time, periods int) []time.Time {
	if periods <= 0 {
		return nil
	}
	out := make([]time.Time, periods)
	for i := range out {
		out[i] = last.AddDate(0, 0, i+1)
	}
	return out
}

// solveRidge solves (XᵀX + λD)β = Xᵀy where D is the identity with the
// intercept entry zeroed.
func solveRidge(x *mat.Dense, y *mat.VecDense, lambda float64) (*mat.VecDense, error) {
	_, p := x.Dims()

	var a mat.SymDense
	a.SymOuterK(1, x.T())
	for i := 1; i < p; i++ {
		a.SetSym(i, i, a.At(i, i)+lambda)
	}

	var b mat.VecDense
	b.MulVec(x.T(), y)

	var chol mat.Cholesky
	if ok := chol.Factorize(&a); !ok {
		return nil, ErrSingularSystem
	}
	coef := mat.NewVecDense(p, nil)
	if err := chol.SolveVecTo(coef, &b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("solve normal equations, %w", err)
		}
	}
	return coef, nil
}

func maxAbs(v []float64) float64 {
	out := 0.0
	for _, x := range v {
		out = math.Max(out, math.Abs(x))
	}
	if out == 0 {
		return 1
	}
	return out
}
