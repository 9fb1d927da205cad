package tzdata

import "strconv"

// YearKind distinguishes a finite calendar year from the "indefinite past"
// and "indefinite future" sentinels that the tzdata grammar allows in the
// FROM/TO columns of a rule.
//
// Earlier prototypes of this compiler represented these sentinels as
// math.MinInt/math.MaxInt and let them flow through ordinary integer
// arithmetic. That is a trap: incrementing the MaxInt sentinel wraps to a
// large negative number and silently corrupts every comparison downstream.
// YearBound makes the sentinel a distinct case so the compiler has to
// decide, at every arithmetic site, what "one past forever" means.
type YearKind uint8

const (
	YearMin YearKind = iota
	YearFinite
	YearMax
)

// YearBound is a year in the proleptic Gregorian calendar, or one of the
// two sentinels meaning "indefinite past" (YearMin) and "indefinite future"
// (YearMax).
type YearBound struct {
	Kind YearKind
	Year int // meaningful only when Kind == YearFinite
}

// Min is the indefinite-past sentinel.
var Min = YearBound{Kind: YearMin}

// Max is the indefinite-future sentinel.
var Max = YearBound{Kind: YearMax}

// Finite returns the bound for a concrete calendar year.
func Finite(y int) YearBound { return YearBound{Kind: YearFinite, Year: y} }

func (y YearBound) String() string {
	switch y.Kind {
	case YearMin:
		return "minimum"
	case YearMax:
		return "maximum"
	default:
		return strconv.Itoa(y.Year)
	}
}

// Compare returns -1, 0, or 1 as y is less than, equal to, or greater than o.
// YearMin sorts before every finite year, which sorts before YearMax; this
// matches YearKind's own declaration order (YearMin < YearFinite < YearMax).
func (y YearBound) Compare(o YearBound) int {
	if y.Kind != o.Kind {
		if y.Kind < o.Kind {
			return -1
		}
		return 1
	}
	if y.Kind != YearFinite {
		return 0
	}
	switch {
	case y.Year < o.Year:
		return -1
	case y.Year > o.Year:
		return 1
	default:
		return 0
	}
}

func (y YearBound) Less(o YearBound) bool    { return y.Compare(o) < 0 }
func (y YearBound) LessEq(o YearBound) bool  { return y.Compare(o) <= 0 }
func (y YearBound) Greater(o YearBound) bool { return y.Compare(o) > 0 }

// AddOne returns the bound one year later. YearMax.AddOne() is YearMax:
// there is no "past forever".
func (y YearBound) AddOne() YearBound {
	switch y.Kind {
	case YearMax:
		return y
	case YearMin:
		return y // "minimum + 1" is still treated as indefinite past
	default:
		return Finite(y.Year + 1)
	}
}

// Resolve substitutes a concrete year for the Min/Max sentinels: floor for
// YearMin, ceil for YearMax. It is used where a window or rule range must be
// enumerated concretely and the grammar allowed an open-ended bound.
func (y YearBound) Resolve(floor, ceil int) int {
	switch y.Kind {
	case YearMin:
		return floor
	case YearMax:
		return ceil
	default:
		return y.Year
	}
}

func max2(a, b YearBound) YearBound {
	if a.Greater(b) {
		return a
	}
	return b
}
