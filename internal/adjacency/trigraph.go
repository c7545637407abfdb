package adjacency

import "github.com/linuxmatters/binviz/internal/config"

// TrigraphMatrix counts windows (a, b, c). The pair (a, b) picks the cell via
// Fold; the third byte picks one of config.SuccessorBands bands, which the
// renderer maps to colour channels. The last pair of a stream has no third
// byte and is kept separately as the tail, so that bands plus tail reduce to
// the digraph matrix of the same stream.
type TrigraphMatrix struct {
	bands   [config.SuccessorBands][]uint64 // indexed by folded cell, y*256+x
	tail    [2]byte
	hasTail bool
}

// Band returns the band a successor byte falls into:
// 0 for 0x00-0x55, 1 for 0x56-0xAA, 2 for 0xAB-0xFF.
func Band(c byte) int {
	return int(c) * config.SuccessorBands / 256
}

// Trigraph counts every window of three bytes of stream. Streams shorter than
// three bytes leave every band empty.
func Trigraph(stream []byte) *TrigraphMatrix {
	t := &TrigraphMatrix{}
	for i := range t.bands {
		t.bands[i] = make([]uint64, cells)
	}

	for i := 0; i+2 < len(stream); i++ {
		pair := uint16(stream[i])<<8 | uint16(stream[i+1])
		t.bands[Band(stream[i+2])][foldTable[pair]]++
	}

	if len(stream) >= 2 {
		t.tail = [2]byte{stream[len(stream)-2], stream[len(stream)-1]}
		t.hasTail = true
	}
	return t
}

// BandAt returns the count of band at image coordinates (x, y).
func (t *TrigraphMatrix) BandAt(band, x, y int) uint64 {
	return t.bands[band][y*config.MatrixSize+x]
}

// Cell returns all band counts at image coordinates (x, y).
func (t *TrigraphMatrix) Cell(x, y int) [config.SuccessorBands]uint64 {
	var cell [config.SuccessorBands]uint64
	i := y*config.MatrixSize + x
	for b := range t.bands {
		cell[b] = t.bands[b][i]
	}
	return cell
}

// Tail returns the final pair of the stream, if it had at least two bytes.
func (t *TrigraphMatrix) Tail() (a, b byte, ok bool) {
	return t.tail[0], t.tail[1], t.hasTail
}

// Windows returns the number of triples counted.
func (t *TrigraphMatrix) Windows() uint64 {
	var sum uint64
	for _, band := range t.bands {
		for _, v := range band {
			sum += v
		}
	}
	return sum
}

// Reduce sums the bands, giving per-cell triple counts in image coordinates.
func (t *TrigraphMatrix) Reduce() *Matrix {
	m := newMatrix()
	for _, band := range t.bands {
		for i, v := range band {
			m.cells[i] += v
		}
	}
	return m
}

// ToDigraph unfolds the reduced matrix back to pair coordinates and adds the
// tail pair. The result equals Digraph on the same stream.
func (t *TrigraphMatrix) ToDigraph() *Matrix {
	reduced := t.Reduce()
	m := newMatrix()
	for pair := 0; pair < cells; pair++ {
		a, b := pair>>8, pair&0xFF
		m.cells[b<<8|a] = reduced.cells[foldTable[pair]]
	}
	if t.hasTail {
		m.cells[int(t.tail[1])<<8|int(t.tail[0])]++
	}
	return m
}
