// Package bytestat computes descriptive statistics over raw byte streams:
// n-gram counts, Shannon entropy per order and byte frequency rankings.
package bytestat

import (
	"fmt"

	"github.com/linuxmatters/binviz/internal/config"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Strategy selects how n-gram counts are stored.
type Strategy int

const (
	// Auto uses a flat table up to config.DenseOrderLimit and a map above it.
	Auto Strategy = iota
	// Dense forces a flat 256^n table; refused above config.DenseOrderLimit.
	Dense
	// Sparse forces a map from n-gram to count.
	Sparse
)

func (s Strategy) String() string {
	switch s {
	case Auto:
		return "auto"
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Counts is the occurrence table of every overlapping n-byte window of a
// stream. Total always equals max(0, len(stream)-n+1).
type Counts struct {
	order int
	total uint64

	dense  []uint64          // index is the big-endian value of the window
	packed map[uint64]uint64 // sparse, order <= config.PackedOrderMax
	wide   map[string]uint64 // sparse, larger orders
}

func newCounts(order int, strategy Strategy) (*Counts, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: n-gram order %d (must be >= 1)", config.ErrInvalid, order)
	}
	if order > config.MaxOrderLimit {
		return nil, fmt.Errorf("%w: n-gram order %d exceeds %d", config.ErrResourceLimit, order, config.MaxOrderLimit)
	}

	c := &Counts{order: order}
	switch strategy {
	case Auto, Dense:
		if order <= config.DenseOrderLimit {
			c.dense = make([]uint64, 1<<(8*order))
			return c, nil
		}
		if strategy == Dense {
			return nil, fmt.Errorf("%w: dense table for order %d needs 256^%d slots", config.ErrResourceLimit, order, order)
		}
	case Sparse:
	default:
		return nil, fmt.Errorf("%w: unknown counting strategy %d", config.ErrInvalid, int(strategy))
	}

	if order <= config.PackedOrderMax {
		c.packed = make(map[uint64]uint64)
	} else {
		c.wide = make(map[string]uint64)
	}
	return c, nil
}

// add records one window. key is the window packed big-endian; it is only
// meaningful when order <= config.PackedOrderMax.
func (c *Counts) add(key uint64, window []byte) {
	switch {
	case c.dense != nil:
		c.dense[key]++
	case c.packed != nil:
		c.packed[key]++
	default:
		c.wide[string(window)]++
	}
	c.total++
}

// Count builds the order-n table for stream using the Auto strategy.
func Count(stream []byte, order int) (*Counts, error) {
	return CountWith(stream, order, Auto)
}

// CountWith builds the order-n table for stream using the given strategy.
func CountWith(stream []byte, order int, strategy Strategy) (*Counts, error) {
	c, err := newCounts(order, strategy)
	if err != nil {
		return nil, err
	}
	for i := 0; i+order <= len(stream); i++ {
		window := stream[i : i+order]
		c.add(pack(window), window)
	}
	return c, nil
}

// CountAll builds the tables for every order 1..maxOrder in a single pass
// over stream. The result is indexed by order-1.
func CountAll(stream []byte, maxOrder int, strategy Strategy) ([]*Counts, error) {
	if maxOrder < 1 {
		return nil, fmt.Errorf("%w: max order %d (must be >= 1)", config.ErrInvalid, maxOrder)
	}

	all := make([]*Counts, maxOrder)
	for n := 1; n <= maxOrder; n++ {
		c, err := newCounts(n, strategy)
		if err != nil {
			return nil, err
		}
		all[n-1] = c
	}

	for i := range stream {
		var key uint64
		for n := 1; n <= maxOrder && i+n <= len(stream); n++ {
			key = key<<8 | uint64(stream[i+n-1])
			all[n-1].add(key, stream[i:i+n])
		}
	}
	return all, nil
}

func pack(window []byte) uint64 {
	if len(window) > config.PackedOrderMax {
		return 0
	}
	var key uint64
	for _, b := range window {
		key = key<<8 | uint64(b)
	}
	return key
}

func unpack(key uint64, order int, dst []byte) []byte {
	dst = dst[:0]
	for i := order - 1; i >= 0; i-- {
		dst = append(dst, byte(key>>(8*uint(i))))
	}
	return dst
}

// Order returns the n-gram length.
func (c *Counts) Order() int { return c.order }

// Total returns the number of windows counted.
func (c *Counts) Total() uint64 { return c.total }

// Distinct returns the number of n-grams with a non-zero count.
func (c *Counts) Distinct() int {
	switch {
	case c.dense != nil:
		n := 0
		for _, v := range c.dense {
			if v != 0 {
				n++
			}
		}
		return n
	case c.packed != nil:
		return len(c.packed)
	}
	return len(c.wide)
}

// Dense reports whether the table is stored as a flat array.
func (c *Counts) Dense() bool { return c.dense != nil }

// Get returns the count of gram, or 0 if its length differs from Order.
func (c *Counts) Get(gram []byte) uint64 {
	if len(gram) != c.order {
		return 0
	}
	switch {
	case c.dense != nil:
		return c.dense[pack(gram)]
	case c.packed != nil:
		return c.packed[pack(gram)]
	}
	return c.wide[string(gram)]
}

// Each calls fn for every n-gram with a non-zero count in ascending byte
// order. gram is reused between calls.
func (c *Counts) Each(fn func(gram []byte, count uint64)) {
	buf := make([]byte, 0, c.order)
	switch {
	case c.dense != nil:
		for key, v := range c.dense {
			if v != 0 {
				fn(unpack(uint64(key), c.order, buf), v)
			}
		}
	case c.packed != nil:
		keys := maps.Keys(c.packed)
		slices.Sort(keys)
		for _, key := range keys {
			fn(unpack(key, c.order, buf), c.packed[key])
		}
	default:
		keys := maps.Keys(c.wide)
		slices.Sort(keys)
		for _, key := range keys {
			fn(append(buf[:0], key...), c.wide[key])
		}
	}
}

// Bytes returns the order-1 table as a byte-indexed histogram.
func (c *Counts) Bytes() ([256]uint64, error) {
	var hist [256]uint64
	if c.order != 1 {
		return hist, fmt.Errorf("%w: byte histogram needs order 1, have %d", config.ErrInvalid, c.order)
	}
	c.Each(func(gram []byte, count uint64) {
		hist[gram[0]] = count
	})
	return hist, nil
}
