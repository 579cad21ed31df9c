package hat

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nozzle/tdr/density"
)

// find returns the interval whose span contains x.
func find(s *Store, x float64) int {
	for i := s.Head(); !s.IsSentinel(i); i = s.Next(i) {
		if l, r := s.Span(i); x > l && x < r {
			return i
		}
	}
	return -1
}

func TestSplitRefinesHat(t *testing.T) {
	d := density.Normal{Mu: 0, Sigma: 1}
	s, err := Build(d, Options{Count: 2})
	require.NoError(t, err)
	before := s.HatArea()

	for _, x := range []float64{1.2, -2.5, 0.1} {
		i := find(s, x)
		require.NotEqual(t, -1, i)
		require.NoError(t, s.Split(i, x, d.LogPDF(x), d.DLogPDF(x), Tolerance))
		s.RebuildAreas()
	}

	assert.Equal(t, 7, s.Len())
	assert.Less(t, s.HatArea(), before)
	assert.GreaterOrEqual(t, s.HatArea(), 1.0)
	sp := StartingPoints(math.Inf(-1), math.Inf(1), 2)
	assert.Equal(t, []float64{math.Inf(-1), -2.5, sp[0], 0.1, sp[1], 1.2, math.Inf(1)}, xs(s))
}

func TestSplitRejected(t *testing.T) {
	d := density.Normal{Mu: 0, Sigma: 1}
	s, err := Build(d, Options{Count: 2})
	require.NoError(t, err)
	want := s.Intervals()

	i := find(s, 1.2)
	tests := []struct {
		name      string
		x, logF   float64
		wantCause error
	}{
		{"outside", 5, d.LogPDF(5), ErrSplitOutside},
		{"bump", 1.2, d.LogPDF(1.2) + 5, ErrNotConcave},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := i
			if tt.name == "outside" {
				at = s.Head()
			}
			err := s.Split(at, tt.x, tt.logF, d.DLogPDF(tt.x), Tolerance)
			assert.True(t, errors.Is(err, ErrSplitFailed), "got %v", err)
			assert.True(t, errors.Is(err, tt.wantCause), "got %v", err)
			assert.Equal(t, want, s.Intervals())
			assert.Equal(t, len(want), s.Len())
		})
	}

	require.NoError(t, s.Split(i, math.NaN(), 0, 0, Tolerance))
	assert.Equal(t, want, s.Intervals())
}

func TestSplitZeroDensity(t *testing.T) {
	s, err := Build(semicircle, Options{Count: 2})
	require.NoError(t, err)

	// right tail is cut at the zero
	i := find(s, 1.5)
	require.NoError(t, s.Split(i, 1.5, math.Inf(-1), math.Inf(1), Tolerance))
	// left tail likewise
	require.NoError(t, s.Split(s.Head(), -1.5, math.Inf(-1), math.Inf(1), Tolerance))
	s.RebuildAreas()

	pts := xs(s)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, -1.5, pts[0])
	assert.Equal(t, 1.5, pts[3])
	assert.False(t, math.IsInf(s.HatArea(), 0))

	// a zero inside the support contradicts log-concavity
	err = s.Split(find(s, 0.1), 0.1, math.Inf(-1), math.Inf(1), Tolerance)
	assert.True(t, errors.Is(err, ErrNotConcave))
	assert.True(t, errors.Is(err, ErrSplitFailed))
}
