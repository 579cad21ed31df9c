package hat

import "math"

// RebuildAreas recomputes the cumulative hat areas of all intervals relative
// to the largest interval area and returns the reference and the total.
// It must run after every change of the intervals.
func (s *Store) RebuildAreas() (float64, RescaledArea) {
	logMax := math.Inf(-1)
	for i := s.head; i != nilIndex; i = s.ivs[i].next {
		if s.ivs[i].next != nilIndex && s.ivs[i].LogHatArea > logMax {
			logMax = s.ivs[i].LogHatArea
		}
	}
	s.LogAreaMax = logMax

	var total, squeeze RescaledArea
	for i := s.head; i != nilIndex; i = s.ivs[i].next {
		iv := &s.ivs[i]
		if iv.next == nilIndex {
			iv.clear()
			break
		}
		if !math.IsInf(logMax, -1) {
			total += Rescale(iv.LogHatArea, logMax)
			squeeze += Rescale(iv.LogSqueezeArea, logMax)
		}
		iv.Cumulative = total
	}
	s.Total = total
	s.SqueezeTotal = squeeze
	return logMax, total
}

// HatArea returns the absolute area below the hat.
func (s *Store) HatArea() float64 {
	return s.Total.Absolute(s.LogAreaMax)
}

// LogHatArea returns the log of the area below the hat.
func (s *Store) LogHatArea() float64 {
	return math.Log(float64(s.Total)) + s.LogAreaMax
}

// SqueezeArea returns the absolute area below the squeeze.
func (s *Store) SqueezeArea() float64 {
	return s.SqueezeTotal.Absolute(s.LogAreaMax)
}

// SqueezeRatio returns the ratio of squeeze area to hat area, the acceptance
// rate that needs no density evaluation.
func (s *Store) SqueezeRatio() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.SqueezeTotal / s.Total)
}
