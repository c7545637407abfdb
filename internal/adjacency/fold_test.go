package adjacency

import (
	"testing"

	"github.com/linuxmatters/binviz/internal/config"
)

// TestFoldBijection verifies every pair lands on a distinct pixel and
// Unfold recovers it.
func TestFoldBijection(t *testing.T) {
	seen := make([]bool, config.MatrixSize*config.MatrixSize)

	for pair := 0; pair < 1<<16; pair++ {
		a, b := byte(pair>>8), byte(pair)
		x, y := Fold(a, b)

		if x < 0 || x >= config.MatrixSize || y < 0 || y >= config.MatrixSize {
			t.Fatalf("Fold(%#x, %#x) = (%d, %d) out of bounds", a, b, x, y)
		}
		if seen[y*config.MatrixSize+x] {
			t.Fatalf("Fold(%#x, %#x) = (%d, %d) already used", a, b, x, y)
		}
		seen[y*config.MatrixSize+x] = true

		ua, ub := Unfold(x, y)
		if ua != a || ub != b {
			t.Fatalf("Unfold(Fold(%#x, %#x)) = (%#x, %#x)", a, b, ua, ub)
		}
	}
}

// TestFoldLocality checks consecutive pair values are adjacent pixels, the
// defining property of a Hilbert curve.
func TestFoldLocality(t *testing.T) {
	px, py := Fold(0, 0)
	if px != 0 || py != 0 {
		t.Errorf("Fold(0, 0) = (%d, %d), want (0, 0)", px, py)
	}

	for pair := 1; pair < 1<<16; pair++ {
		x, y := Fold(byte(pair>>8), byte(pair))
		dx, dy := x-px, y-py
		if dx*dx+dy*dy != 1 {
			t.Fatalf("pair %#04x at (%d, %d) not adjacent to previous (%d, %d)", pair, x, y, px, py)
		}
		px, py = x, y
	}
}

func TestHilbertDistanceInverse(t *testing.T) {
	for _, n := range []int{2, 4, 16, 256} {
		for d := 0; d < n*n; d++ {
			x, y := hilbertPoint(n, d)
			if got := hilbertDistance(n, x, y); got != d {
				t.Fatalf("n=%d: hilbertDistance(hilbertPoint(%d)) = %d", n, d, got)
			}
		}
	}
}
