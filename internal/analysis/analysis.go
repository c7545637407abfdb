// Package analysis runs the byte statistics and visualisations over one or
// many streams and assembles the per-file results.
package analysis

import (
	"fmt"
	"time"

	"github.com/linuxmatters/binviz/internal/adjacency"
	"github.com/linuxmatters/binviz/internal/bytestat"
	"github.com/linuxmatters/binviz/internal/config"
	"github.com/linuxmatters/binviz/internal/renderer"
)

// Bundle holds every result for one input.
type Bundle struct {
	Index  int    // Position in the input list
	Name   string // Source name, usually a file path
	Size   int    // Stream length in bytes
	Digest string // SipHash-128 of the contents, hex

	Entropy         bytestat.EntropyResult
	Frequency       bytestat.FrequencyTable
	Compressibility float64 // zstd size / original size

	Digraph  *renderer.PixelBuffer
	Trigraph *renderer.PixelBuffer

	Elapsed time.Duration // Zero when served from the cache
	Cached  bool
}

// ComputeEntropy returns the entropy for every order 1..maxOrder.
func ComputeEntropy(stream []byte, maxOrder int) (bytestat.EntropyResult, error) {
	return bytestat.ComputeEntropy(stream, maxOrder)
}

// ComputeFrequency ranks all 256 byte values of stream.
func ComputeFrequency(stream []byte) bytestat.FrequencyTable {
	return bytestat.ComputeFrequency(stream)
}

// ComputeVisualization renders stream as a digraph or trigraph image.
func ComputeVisualization(stream []byte, mode adjacency.Mode, opts renderer.Options) (*renderer.PixelBuffer, error) {
	return renderer.Render(stream, mode, opts)
}

// Analyze runs every analysis over one stream.
func Analyze(name string, stream []byte, opts Options) (*Bundle, error) {
	start := time.Now()

	b, err := analyze(stream, opts)
	if err != nil {
		return nil, fmt.Errorf("analysing %s: %w", name, err)
	}
	b.Name = name
	b.Digest = digestString(digest(stream))
	b.Elapsed = time.Since(start)
	return b, nil
}

func analyze(stream []byte, opts Options) (*Bundle, error) {
	maxOrder := opts.MaxOrder
	if maxOrder == 0 {
		maxOrder = config.DefaultMaxOrder
	}

	all, err := bytestat.CountAll(stream, maxOrder, bytestat.Auto)
	if err != nil {
		return nil, err
	}
	freq, err := bytestat.Rank(all[0])
	if err != nil {
		return nil, err
	}

	// The order-2 table already holds every pair, but the digraph matrix
	// is laid out for rendering, so it is counted separately.
	digraph, err := renderer.Gray(adjacency.Digraph(stream), opts.Render)
	if err != nil {
		return nil, err
	}
	trigraph, err := renderer.Colour(adjacency.Trigraph(stream), opts.Render)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Size:            len(stream),
		Entropy:         bytestat.EntropyOf(all),
		Frequency:       freq,
		Compressibility: bytestat.Compressibility(stream),
		Digraph:         digraph,
		Trigraph:        trigraph,
	}, nil
}
