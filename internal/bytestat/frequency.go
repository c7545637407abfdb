package bytestat

import (
	"golang.org/x/exp/slices"
)

// ByteFrequency is one row of a FrequencyTable.
type ByteFrequency struct {
	Value byte
	Count uint64
}

// FrequencyTable lists all 256 byte values by descending count, ties broken
// by ascending byte value.
type FrequencyTable []ByteFrequency

// Total returns the sum of all counts, which equals the stream length.
func (t FrequencyTable) Total() uint64 {
	var total uint64
	for _, f := range t {
		total += f.Count
	}
	return total
}

// Relative returns the share of row i in the stream, or 0 for an empty stream.
func (t FrequencyTable) Relative(i int) float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return float64(t[i].Count) / float64(total)
}

// Rank orders an order-1 table into a FrequencyTable.
func Rank(c *Counts) (FrequencyTable, error) {
	hist, err := c.Bytes()
	if err != nil {
		return nil, err
	}
	return rank(&hist), nil
}

// ComputeFrequency histograms stream and ranks the result.
func ComputeFrequency(stream []byte) FrequencyTable {
	var hist [256]uint64
	for _, b := range stream {
		hist[b]++
	}
	return rank(&hist)
}

func rank(hist *[256]uint64) FrequencyTable {
	table := make(FrequencyTable, 256)
	for v, count := range hist {
		table[v] = ByteFrequency{Value: byte(v), Count: count}
	}

	slices.SortStableFunc(table, func(a, b ByteFrequency) bool {
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Value < b.Value
	})
	return table
}
