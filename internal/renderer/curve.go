package renderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/linuxmatters/binviz/internal/config"
)

// Curve maps a cell count to a brightness level in [0, 1].
type Curve int

const (
	// CurveLog scales ln(1+count) against ln(1+max). Keeps sparse cells
	// visible next to the handful of cells that dominate real files.
	CurveLog Curve = iota
	// CurveMean divides by the mean non-zero count and saturates at 1, so
	// full brightness means "at least average".
	CurveMean
)

func (c Curve) String() string {
	switch c {
	case CurveLog:
		return "log"
	case CurveMean:
		return "mean"
	}
	return fmt.Sprintf("Curve(%d)", int(c))
}

// ParseCurve accepts "log" or "mean".
func ParseCurve(s string) (Curve, error) {
	switch strings.ToLower(s) {
	case "log":
		return CurveLog, nil
	case "mean":
		return CurveMean, nil
	}
	return 0, fmt.Errorf("%w: unknown curve %q (must be log or mean)", config.ErrInvalid, s)
}

// scale is a Curve fitted to one matrix.
type scale struct {
	curve Curve
	// Count that maps to full brightness for CurveMean, the maximum count
	// for CurveLog.
	fullScale float64
	logMax    float64
}

func fitScale(curve Curve, counts []uint64) (scale, error) {
	var sum, peak uint64
	distinct := 0
	for _, v := range counts {
		if v == 0 {
			continue
		}
		sum += v
		distinct++
		if v > peak {
			peak = v
		}
	}

	s := scale{curve: curve}
	switch curve {
	case CurveLog:
		s.fullScale = float64(peak)
		s.logMax = math.Log1p(float64(peak))
	case CurveMean:
		if distinct > 0 {
			s.fullScale = float64(sum) / float64(distinct)
		}
	default:
		return s, fmt.Errorf("%w: unknown curve %d", config.ErrInvalid, int(curve))
	}
	return s, nil
}

// level returns the brightness of count. Zero counts and empty matrices
// always map to 0.
func (s scale) level(count uint64) float64 {
	if count == 0 {
		return 0
	}
	switch s.curve {
	case CurveLog:
		if s.logMax == 0 {
			return 0
		}
		return math.Log1p(float64(count)) / s.logMax
	default:
		if s.fullScale == 0 {
			return 0
		}
		return math.Min(1, float64(count)/s.fullScale)
	}
}
