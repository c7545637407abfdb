// Package adjacency counts consecutive byte pairs and triples into 256x256
// matrices for digraph and trigraph visualisation.
package adjacency

import (
	"fmt"
	"strings"

	"github.com/linuxmatters/binviz/internal/config"
)

// Mode selects the visualisation.
type Mode int

const (
	ModeDigraph Mode = iota
	ModeTrigraph
)

func (m Mode) String() string {
	switch m {
	case ModeDigraph:
		return "digraph"
	case ModeTrigraph:
		return "trigraph"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Window returns the number of bytes per counted window (2 or 3).
func (m Mode) Window() int {
	if m == ModeTrigraph {
		return 3
	}
	return 2
}

// ParseMode accepts "digraph" or "trigraph", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "digraph":
		return ModeDigraph, nil
	case "trigraph":
		return ModeTrigraph, nil
	}
	return 0, fmt.Errorf("%w: unknown visualization mode %q (must be digraph or trigraph)", config.ErrInvalid, s)
}

const cells = config.MatrixSize * config.MatrixSize

// Matrix is a 256x256 grid of counts, row-major by y.
type Matrix struct {
	cells []uint64
}

func newMatrix() *Matrix {
	return &Matrix{cells: make([]uint64, cells)}
}

// Digraph counts every window (a, b) of stream into cell x=a, y=b.
// Streams shorter than two bytes give an all-zero matrix.
func Digraph(stream []byte) *Matrix {
	m := newMatrix()
	for i := 0; i+1 < len(stream); i++ {
		m.cells[int(stream[i+1])<<8|int(stream[i])]++
	}
	return m
}

// At returns the count at image coordinates (x, y).
func (m *Matrix) At(x, y int) uint64 {
	return m.cells[y*config.MatrixSize+x]
}

// Pair returns how often a was followed by b. Only meaningful for a matrix
// built by Digraph or TrigraphMatrix.ToDigraph.
func (m *Matrix) Pair(a, b byte) uint64 {
	return m.At(int(a), int(b))
}

// Sum returns the total over all cells.
func (m *Matrix) Sum() uint64 {
	var sum uint64
	for _, v := range m.cells {
		sum += v
	}
	return sum
}

// Max returns the largest cell.
func (m *Matrix) Max() uint64 {
	var peak uint64
	for _, v := range m.cells {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Distinct returns the number of non-zero cells.
func (m *Matrix) Distinct() int {
	n := 0
	for _, v := range m.cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// Equal reports whether both matrices hold identical counts.
func (m *Matrix) Equal(other *Matrix) bool {
	for i, v := range m.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// Cells exposes the row-major counts for renderers. Callers must not modify it.
func (m *Matrix) Cells() []uint64 {
	return m.cells
}
