package adjacency

import "github.com/linuxmatters/binviz/internal/config"

// Fold places byte pairs on the trigraph image. The 16-bit pair value a<<8|b
// is treated as a distance along an order-8 Hilbert curve filling the
// 256x256 grid, so pairs with close values stay spatially close. The mapping
// is a bijection between the 65536 pairs and the 65536 pixels.

var (
	foldTable   [1 << 16]uint16 // pair -> y<<8 | x
	unfoldTable [1 << 16]uint16 // y<<8 | x -> pair
)

func init() {
	for d := 0; d < 1<<16; d++ {
		x, y := hilbertPoint(config.MatrixSize, d)
		cell := uint16(y<<8 | x)
		foldTable[d] = cell
		unfoldTable[cell] = uint16(d)
	}
}

// Fold returns the image coordinates of the pair (a, b).
func Fold(a, b byte) (x, y int) {
	cell := foldTable[uint16(a)<<8|uint16(b)]
	return int(cell & 0xFF), int(cell >> 8)
}

// Unfold returns the pair stored at image coordinates (x, y).
func Unfold(x, y int) (a, b byte) {
	pair := unfoldTable[uint16(y)<<8|uint16(x)]
	return byte(pair >> 8), byte(pair)
}

// hilbertPoint converts distance d along the Hilbert curve of side n into
// coordinates. n must be a power of two.
func hilbertPoint(n, d int) (x, y int) {
	t := d
	for s := 1; s < n; s *= 2 {
		rx := 1 & (t / 2)
		ry := 1 & (t ^ rx)
		x, y = hilbertRotate(s, x, y, rx, ry)
		x += s * rx
		y += s * ry
		t /= 4
	}
	return x, y
}

// hilbertDistance is the inverse of hilbertPoint.
func hilbertDistance(n, x, y int) int {
	d := 0
	for s := n / 2; s > 0; s /= 2 {
		rx, ry := 0, 0
		if x&s > 0 {
			rx = 1
		}
		if y&s > 0 {
			ry = 1
		}
		d += s * s * ((3 * rx) ^ ry)
		x, y = hilbertRotate(n, x, y, rx, ry)
	}
	return d
}

func hilbertRotate(n, x, y, rx, ry int) (int, int) {
	if ry == 0 {
		if rx == 1 {
			x = n - 1 - x
			y = n - 1 - y
		}
		x, y = y, x
	}
	return x, y
}
