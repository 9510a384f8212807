package stats

import (
	"math"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// MinSupport converts a fraction of the database size into an absolute
// support threshold. The default rounding (floor) truncates size*fraction.
// The threshold is never below 1.
func MinSupport(size int, fraction float64, rounding string) (int, error) {
	if fraction <= 0 || fraction > 1 {
		return 0, errors.Errorf("support fraction %v not in (0, 1]", fraction)
	}
	x := float64(size) * fraction
	var sup float64
	switch rounding {
	case "", "floor":
		sup = math.Floor(x)
	case "ceil":
		sup = math.Ceil(x)
	case "round":
		sup = Round(x, 0)
	default:
		return 0, errors.Errorf("unknown rounding policy '%v' (floor, ceil, round)", rounding)
	}
	if sup < 1 {
		sup = 1
	}
	return int(sup), nil
}

func Round(val float64, places int) (newVal float64) {
	var round float64
	roundOn := .5
	pow := math.Pow(10, float64(places))
	digit := pow * val
	_, div := math.Modf(digit)
	_div := math.Copysign(div, val)
	_roundOn := math.Copysign(roundOn, val)
	if _div >= _roundOn {
		round = math.Ceil(digit)
	} else {
		round = math.Floor(digit)
	}
	return round / pow
}
