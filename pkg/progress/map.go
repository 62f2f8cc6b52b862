package progress

import "errors"

var ErrEmptyRange = errors.New("empty input range")

// Map converts x from [inMin, inMax] to [outMin, outMax] by proportional
// interpolation. Division truncates toward zero and the result is not clamped,
// so values outside the input range map outside the output range.
func Map(x, inMin, inMax, outMin, outMax int) (int, error) {
	if inMax == inMin {
		return 0, ErrEmptyRange
	}
	return outMin + (x-inMin)*(outMax-outMin)/(inMax-inMin), nil
}

func clamp(x, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
