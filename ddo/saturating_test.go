package ddo_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/katalvlaran/ddopt/ddo"
)

// finite draws an int far enough from the ±∞ sentinels that ordinary
// arithmetic on it never collides with the sentinel values themselves.
func finite(t *rapid.T, label string) int {
	return rapid.IntRange(-1<<40, 1<<40).Draw(t, label)
}

func TestSatAddStaysWithinSentinelBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := finite(t, "a")
		b := finite(t, "b")
		sum := ddo.SatAdd(a, b)
		if sum < ddo.MinusInf || sum > ddo.PlusInf {
			t.Fatalf("SatAdd(%d, %d) = %d escaped [MinusInf, PlusInf]", a, b, sum)
		}
	})
}

func TestSatAddIsCommutative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := finite(t, "a")
		b := finite(t, "b")
		if ddo.SatAdd(a, b) != ddo.SatAdd(b, a) {
			t.Fatalf("SatAdd(%d, %d) != SatAdd(%d, %d)", a, b, b, a)
		}
	})
}

func TestSatAddIdentityIsZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := finite(t, "a")
		if ddo.SatAdd(a, 0) != a {
			t.Fatalf("SatAdd(%d, 0) = %d, want %d", a, ddo.SatAdd(a, 0), a)
		}
	})
}

func TestSatAddPlusInfAbsorbs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := finite(t, "a")
		if got := ddo.SatAdd(a, ddo.PlusInf); got != ddo.PlusInf {
			t.Fatalf("SatAdd(%d, PlusInf) = %d, want PlusInf", a, got)
		}
	})
}

func TestSatSubOfSelfIsZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := finite(t, "a")
		if got := ddo.SatSub(a, a); got != 0 {
			t.Fatalf("SatSub(%d, %d) = %d, want 0", a, a, got)
		}
	})
}

func TestSatMinSatMaxBracketBothOperands(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := finite(t, "a")
		b := finite(t, "b")
		lo, hi := ddo.SatMin(a, b), ddo.SatMax(a, b)
		if lo > a || lo > b {
			t.Fatalf("SatMin(%d, %d) = %d exceeds an operand", a, b, lo)
		}
		if hi < a || hi < b {
			t.Fatalf("SatMax(%d, %d) = %d is below an operand", a, b, hi)
		}
	})
}
