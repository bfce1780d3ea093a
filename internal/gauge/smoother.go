package gauge

import "fmt"

// MaxStep bounds how far a needle may move in one update.
const MaxStep = 96

// Range is the valid deflection range of a channel, a sub-range of the
// protocol's 0..255 value byte. Bipolar channels rest at the midpoint
// instead of the low end.
type Range struct {
	Min, Max int
	Bipolar  bool
}

// FullRange is the canonical unipolar 0..255 deflection range.
var FullRange = Range{Min: 0, Max: 255}

func (r Range) rest() int {
	if r.Bipolar {
		return (r.Min + r.Max) / 2
	}
	return r.Min
}

func (r Range) clamp(v float64) int {
	switch {
	case v > float64(r.Max):
		return r.Max
	case v < float64(r.Min):
		return r.Min
	default:
		return int(v)
	}
}

// Smoother rate-limits channel movement for visual smoothness of the
// physical needles. It holds the last displayed value per channel and
// has exactly one writer, the loop driving the display.
type Smoother struct {
	rng  Range
	last []int
}

// NewSmoother creates smoothing state for channels 1..n, all at rest.
// rng must lie within 0..255.
func NewSmoother(channels int, rng Range) (*Smoother, error) {
	if channels < 1 {
		return nil, fmt.Errorf("gauge: channel count %d must be >= 1", channels)
	}
	if rng.Min < 0 || rng.Max > 255 || rng.Min >= rng.Max {
		return nil, fmt.Errorf("gauge: invalid range %d..%d", rng.Min, rng.Max)
	}

	last := make([]int, channels+1)
	for i := range last {
		last[i] = rng.rest()
	}
	return &Smoother{rng: rng, last: last}, nil
}

// Next clamps target into the channel's range, moves the channel at
// most MaxStep towards it and returns the new displayed value.
// Arithmetic is signed throughout so ranges not starting at zero cannot
// underflow.
func (s *Smoother) Next(channel uint8, target float64) (uint8, error) {
	ch := int(channel)
	if ch < 1 || ch >= len(s.last) {
		return 0, fmt.Errorf("gauge: channel %d out of range 1..%d", ch, len(s.last)-1)
	}

	want := s.rng.clamp(target)
	delta := want - s.last[ch]
	if delta > MaxStep {
		delta = MaxStep
	} else if delta < -MaxStep {
		delta = -MaxStep
	}
	v := s.last[ch] + delta
	s.last[ch] = v
	return uint8(v), nil
}
