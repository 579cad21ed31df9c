package parallel

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPreservesOrder(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 16} {
		out, err := Map(10, workers, func(i int) (int, error) { return i * i, nil })
		require.NoError(t, err)
		for i, v := range out {
			assert.Equal(t, i*i, v)
		}
	}
}

func TestMapError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Map(8, 4, func(i int) (int, error) {
		if i == 5 {
			return 0, boom
		}
		return i, nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestMapLimit(t *testing.T) {
	var running, peak atomic.Int32
	out, err := Map(20, 3, func(i int) (int, error) {
		n := running.Add(1)
		defer running.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		return i, nil
	})
	require.NoError(t, err)
	assert.Len(t, out, 20)
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Positive(t, peak.Load())
}

func TestMapSkipsAfterError(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	_, err := Map(100, 1, func(i int) (int, error) {
		calls.Add(1)
		if i == 2 {
			return 0, boom
		}
		return i, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []int{4, 3, 3}, Split(10, 3))
	assert.Equal(t, []int{0, 0}, Split(0, 2))
	assert.Nil(t, Split(5, 0))

	sum := 0
	for _, p := range Split(1001, 7) {
		sum += p
	}
	assert.Equal(t, 1001, sum)
}
