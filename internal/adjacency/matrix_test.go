package adjacency

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/linuxmatters/binviz/internal/config"
)

func randomStream(n int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	stream := make([]byte, n)
	rng.Read(stream)
	return stream
}

func TestDigraphScenarios(t *testing.T) {
	t.Run("three zeros", func(t *testing.T) {
		m := Digraph([]byte{0x00, 0x00, 0x00})
		if m.Pair(0, 0) != 2 {
			t.Errorf("cell[0][0] = %d, want 2", m.Pair(0, 0))
		}
		if m.Sum() != 2 || m.Distinct() != 1 {
			t.Errorf("sum = %d, distinct = %d, want 2 and 1", m.Sum(), m.Distinct())
		}
	})

	t.Run("alternating pair", func(t *testing.T) {
		m := Digraph([]byte{0x00, 0x01, 0x00, 0x01})
		if m.Pair(0, 1) != 2 {
			t.Errorf("cell[0][1] = %d, want 2", m.Pair(0, 1))
		}
		if m.Pair(1, 0) != 1 {
			t.Errorf("cell[1][0] = %d, want 1", m.Pair(1, 0))
		}
		if m.Sum() != 3 {
			t.Errorf("sum = %d, want 3", m.Sum())
		}
		// x is the first byte, y the second
		if m.At(0, 1) != 2 || m.At(1, 0) != 1 {
			t.Errorf("At(0,1)=%d At(1,0)=%d, want 2 and 1", m.At(0, 1), m.At(1, 0))
		}
	})
}

func TestDigraphShortStreams(t *testing.T) {
	for _, stream := range [][]byte{nil, {}, {0xAB}} {
		m := Digraph(stream)
		if m.Sum() != 0 || m.Max() != 0 {
			t.Errorf("Digraph(%v): sum = %d, max = %d, want all zero", stream, m.Sum(), m.Max())
		}
	}
}

func TestDigraphSum(t *testing.T) {
	for _, n := range []int{2, 3, 100, 10000} {
		m := Digraph(randomStream(n, int64(n)))
		if m.Sum() != uint64(n-1) {
			t.Errorf("len %d: sum = %d, want %d", n, m.Sum(), n-1)
		}
	}
}

func TestParseMode(t *testing.T) {
	testCases := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "digraph", want: ModeDigraph},
		{input: "Trigraph", want: ModeTrigraph},
		{input: "quadgraph", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMode(tc.input)
			if tc.wantErr {
				if !errors.Is(err, config.ErrInvalid) {
					t.Errorf("ParseMode(%q) error = %v, want ErrInvalid", tc.input, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseMode(%q) = %v, %v; want %v", tc.input, got, err, tc.want)
			}
			if got.String() != tc.want.String() {
				t.Errorf("String() = %q", got.String())
			}
		})
	}

	if ModeDigraph.Window() != 2 || ModeTrigraph.Window() != 3 {
		t.Errorf("Window() = %d/%d, want 2/3", ModeDigraph.Window(), ModeTrigraph.Window())
	}
}
