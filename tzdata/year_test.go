package tzdata

import "testing"

func TestYearBoundCompare(t *testing.T) {
	cases := []struct {
		a, b YearBound
		want int
	}{
		{Min, Min, 0},
		{Max, Max, 0},
		{Finite(2000), Finite(2000), 0},
		{Finite(1999), Finite(2000), -1},
		{Finite(2000), Finite(1999), 1},
		{Min, Max, -1},
		{Max, Min, 1},
		{Min, Finite(1900), -1},
		{Finite(1900), Min, 1},
		{Finite(2100), Max, -1},
		{Max, Finite(2100), 1},
	}
	for _, c := range cases {
		if got := c.a.Compare(c.b); got != c.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestYearBoundLessGreaterLessEq(t *testing.T) {
	if !Min.Less(Finite(1900)) {
		t.Error("Min should be Less than a finite year")
	}
	if !Finite(2100).Less(Max) {
		t.Error("a finite year should be Less than Max")
	}
	if !Finite(1900).Greater(Min) {
		t.Error("a finite year should be Greater than Min")
	}
	if !Max.Greater(Finite(2100)) {
		t.Error("Max should be Greater than a finite year")
	}
	if !Finite(2000).LessEq(Finite(2000)) {
		t.Error("a year should be LessEq itself")
	}
	if Finite(2001).LessEq(Finite(2000)) {
		t.Error("2001 should not be LessEq 2000")
	}
}
