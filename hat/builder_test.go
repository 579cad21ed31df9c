package hat

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/nozzle/tdr/density"
)

func point(t *testing.T, d density.Density, x float64) Interval {
	t.Helper()
	iv, err := Evaluate(d, x)
	require.NoError(t, err)
	return iv
}

func integrate(f func(float64) float64, a, b float64) float64 {
	return quad.Fixed(f, a, b, 40, nil, 0)
}

func TestPairNormal(t *testing.T) {
	d := density.Normal{Mu: 0, Sigma: 1}
	l, r := point(t, d, -1), point(t, d, 1.5)
	require.NoError(t, Pair(&l, &r, Tolerance))

	assert.InDelta(t, (r.LogF-l.LogF)/2.5, l.SqueezeSlope, 1e-14)

	ip := (r.LogF - l.LogF - r.DLogF*r.X + l.DLogF*l.X) / (l.DLogF - r.DLogF)
	left := integrate(func(x float64) float64 { return math.Exp(l.Tangent(x)) }, l.X, ip)
	right := integrate(func(x float64) float64 { return math.Exp(r.Tangent(x)) }, ip, r.X)
	assert.InDelta(t, math.Log(left+right), l.LogHatArea, 1e-9)
	assert.InDelta(t, right/(left+right), l.RightFraction, 1e-9)

	squeeze := integrate(func(x float64) float64 { return math.Exp(l.Squeeze(x)) }, l.X, r.X)
	assert.InDelta(t, math.Log(squeeze), l.LogSqueezeArea, 1e-9)

	for x := l.X; x <= r.X; x += 0.05 {
		logF := d.LogPDF(x)
		hat := math.Min(l.Tangent(x), r.Tangent(x))
		assert.LessOrEqual(t, logF, hat+1e-12, "hat at %g", x)
		assert.GreaterOrEqual(t, logF, l.Squeeze(x)-1e-12, "squeeze at %g", x)
	}
}

func TestPairVerticalTangent(t *testing.T) {
	d := density.Beta{Alpha: 2, Beta: 2}
	l, r := point(t, d, 0), point(t, d, 0.5)
	require.True(t, math.IsInf(l.DLogF, 1))
	require.NoError(t, Pair(&l, &r, Tolerance))

	assert.True(t, math.IsInf(l.SqueezeSlope, -1))
	assert.True(t, math.IsInf(l.LogSqueezeArea, -1))
	assert.Equal(t, 1.0, l.RightFraction)
	// the tangent at the mode is flat
	assert.InDelta(t, r.LogF+math.Log(0.5), l.LogHatArea, 1e-12)
}

func TestPairErrors(t *testing.T) {
	convex := density.NewFunc(
		func(x float64) float64 { return x * x },
		func(x float64) float64 { return 2 * x },
	)
	normal := density.Normal{Mu: 0, Sigma: 1}

	tests := []struct {
		name string
		d    density.Density
		l, r float64
		want error
	}{
		{"convex", convex, 0.5, 1, ErrNotConcave},
		{"rising tail", normal, -1, math.Inf(1), ErrUnbounded},
		{"too close", normal, 1, 1 + 1e-12, ErrDegenerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, r := point(t, tt.d, tt.l), point(t, tt.d, tt.r)
			err := Pair(&l, &r, Tolerance)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestEvaluate(t *testing.T) {
	d := density.NewFunc(
		func(x float64) float64 {
			if x > 1 {
				return math.NaN()
			}
			return -x * x
		},
		func(x float64) float64 { return -2 * x },
	)

	iv := point(t, d, math.Inf(-1))
	assert.True(t, math.IsInf(iv.LogF, -1))
	assert.True(t, math.IsInf(iv.DLogF, 1))
	assert.True(t, math.IsInf(float64(iv.Cumulative), 1))

	iv = point(t, d, 0.5)
	assert.Equal(t, -0.25, iv.LogF)
	assert.Equal(t, -1.0, iv.DLogF)

	_, err := Evaluate(d, 2)
	assert.True(t, errors.Is(err, ErrInvalidValue))
	_, err = Evaluate(d, math.NaN())
	assert.True(t, errors.Is(err, ErrInvalidValue))
}
