package bytestat

import (
	"math"
)

// OrderEntropy is the Shannon entropy of the order-n windows of a stream, in
// bits per n-byte window.
type OrderEntropy struct {
	Order int
	Bits  float64
}

// Relative scales Bits into [0, 1] against the 8 bits per byte maximum.
func (e OrderEntropy) Relative() float64 {
	return e.Bits / (8.0 * float64(e.Order))
}

// EntropyResult holds one entry per order, ascending from 1.
type EntropyResult []OrderEntropy

// Entropy computes H = -sum(p * log2 p) over the non-zero counts of c.
// An empty table has zero entropy.
func Entropy(c *Counts) float64 {
	if c.Total() == 0 {
		return 0
	}

	total := float64(c.Total())
	var h float64
	c.Each(func(_ []byte, count uint64) {
		p := float64(count) / total
		h -= p * math.Log2(p)
	})

	// A single distinct symbol yields -0
	if h <= 0 {
		return 0
	}
	return h
}

// EntropyOf converts a set of tables (as returned by CountAll) into an
// EntropyResult.
func EntropyOf(all []*Counts) EntropyResult {
	result := make(EntropyResult, len(all))
	for i, c := range all {
		result[i] = OrderEntropy{Order: c.Order(), Bits: Entropy(c)}
	}
	return result
}

// ComputeEntropy returns the entropy of stream for every order 1..maxOrder.
func ComputeEntropy(stream []byte, maxOrder int) (EntropyResult, error) {
	all, err := CountAll(stream, maxOrder, Auto)
	if err != nil {
		return nil, err
	}
	return EntropyOf(all), nil
}
