// Package output writes analysis results: markdown tables, CSV files, PNG
// images, per-file result folders and the batch manifest.
package output

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/linuxmatters/binviz/internal/analysis"
	"github.com/linuxmatters/binviz/internal/bytestat"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// newTable returns a markdown-bordered table with padded cells.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers(headers...)
}

// EntropyTable renders one row per order with absolute and relative entropy.
func EntropyTable(result bytestat.EntropyResult) string {
	t := newTable("Dimension", "Entropy", "Relative Entropy")
	for _, e := range result {
		t.Row(
			strconv.Itoa(e.Order),
			fmt.Sprintf("%.5f (bits per %d byte(s))", e.Bits, e.Order),
			fmt.Sprintf("%.5f", e.Relative()),
		)
	}
	return t.String()
}

// FrequencyTable renders every byte value by rank.
func FrequencyTable(freq bytestat.FrequencyTable) string {
	return FrequencyTableTop(freq, len(freq))
}

// FrequencyTableTop renders the first n ranks. Relative frequencies are
// still shares of the whole stream.
func FrequencyTableTop(freq bytestat.FrequencyTable, n int) string {
	t := newTable("Rank", "Byte", "Hex", "Text", "Count", "Relative Frequency")
	for i, f := range freq {
		if i >= n {
			break
		}
		t.Row(
			strconv.Itoa(i),
			strconv.Itoa(int(f.Value)),
			fmt.Sprintf("0x%02x", f.Value),
			strconv.QuoteRune(rune(f.Value)),
			strconv.FormatUint(f.Count, 10),
			fmt.Sprintf("%.5f", freq.Relative(i)),
		)
	}
	return t.String()
}

// SummaryTable renders the scalar facts of a bundle.
func SummaryTable(b *analysis.Bundle) string {
	t := newTable("Property", "Value")
	t.Row("file", b.Name)
	t.Row("size", fmt.Sprintf("%s (%d bytes)", humanize.IBytes(uint64(b.Size)), b.Size))
	t.Row("digest", b.Digest)
	t.Row("zstd ratio", fmt.Sprintf("%.5f", b.Compressibility))
	if b.Digraph != nil {
		t.Row("byte pairs", strconv.FormatUint(b.Digraph.Windows, 10))
	}
	if b.Trigraph != nil {
		t.Row("byte triples", strconv.FormatUint(b.Trigraph.Windows, 10))
	}
	return t.String()
}
