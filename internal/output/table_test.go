package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/linuxmatters/binviz/internal/bytestat"
)

func TestEntropyTable(t *testing.T) {
	result, err := bytestat.ComputeEntropy([]byte("abcd"), 2)
	if err != nil {
		t.Fatalf("ComputeEntropy() returned error: %v", err)
	}

	out := EntropyTable(result)
	t.Logf("\n%s", out)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header, separator and 2 rows", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "|") || !strings.HasSuffix(strings.TrimSpace(line), "|") {
			t.Errorf("line %q is not a markdown row", line)
		}
	}

	for _, want := range []string{"Dimension", "Relative Entropy", "2.00000 (bits per 1 byte(s))", "1.58496 (bits per 2 byte(s))"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q", want)
		}
	}
}

func TestFrequencyTable(t *testing.T) {
	out := FrequencyTable(bytestat.ComputeFrequency([]byte("aab\n")))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2+256 {
		t.Fatalf("got %d lines, want %d", len(lines), 2+256)
	}

	// Rank 0 is 'a' (2 of 4), then '\n' (0x0a) before 'b' (0x62).
	tests := []struct {
		line int
		want []string
	}{
		{2, []string{"| 0 ", "| 97 ", "0x61", "'a'", "0.50000"}},
		{3, []string{"| 1 ", "| 10 ", "0x0a", `'\n'`, "0.25000"}},
		{4, []string{"| 2 ", "| 98 ", "0x62", "'b'", "0.25000"}},
		{5, []string{"| 3 ", "| 0 ", "0x00", `'\x00'`, "0.00000"}},
	}
	for _, tt := range tests {
		for _, want := range tt.want {
			if !strings.Contains(lines[tt.line], want) {
				t.Errorf("line %d = %q, missing %q", tt.line, lines[tt.line], want)
			}
		}
	}
}

func TestEntropyCSV(t *testing.T) {
	result, err := bytestat.ComputeEntropy([]byte("abcd"), 2)
	if err != nil {
		t.Fatalf("ComputeEntropy() returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteEntropyCSV(&buf, result); err != nil {
		t.Fatalf("WriteEntropyCSV() returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("written CSV does not parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2", len(records))
	}
	if strings.Join(records[0], ",") != "order,bits,relative" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "1" || records[1][1] != "2" || records[1][2] != "0.25" {
		t.Errorf("order 1 row = %v, want [1 2 0.25]", records[1])
	}
}

func TestFrequencyCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrequencyCSV(&buf, bytestat.ComputeFrequency([]byte{0x00, 0x00, 0x00})); err != nil {
		t.Fatalf("WriteFrequencyCSV() returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("written CSV does not parse: %v", err)
	}
	if len(records) != 257 {
		t.Fatalf("got %d records, want 257", len(records))
	}
	if got := strings.Join(records[1], ","); got != "0,0,3,1" {
		t.Errorf("rank 0 = %q, want 0,0,3,1", got)
	}
	if got := strings.Join(records[2], ","); got != "1,1,0,0" {
		t.Errorf("rank 1 = %q, want 1,1,0,0", got)
	}
}

func TestFrequencyTableTop(t *testing.T) {
	freq := bytestat.ComputeFrequency([]byte("aab\n"))
	out := FrequencyTableTop(freq, 2)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header, separator and 2 rows", len(lines))
	}
	if !strings.Contains(lines[3], "0.25000") {
		t.Errorf("relative frequency should use the whole stream: %q", lines[3])
	}
}
