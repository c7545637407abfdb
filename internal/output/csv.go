package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/linuxmatters/binviz/internal/bytestat"
)

// WriteEntropyCSV writes order,bits,relative rows with a header.
func WriteEntropyCSV(w io.Writer, result bytestat.EntropyResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"order", "bits", "relative"}); err != nil {
		return err
	}
	for _, e := range result {
		err := cw.Write([]string{
			strconv.Itoa(e.Order),
			strconv.FormatFloat(e.Bits, 'f', -1, 64),
			strconv.FormatFloat(e.Relative(), 'f', -1, 64),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFrequencyCSV writes rank,byte,count,relative rows with a header.
func WriteFrequencyCSV(w io.Writer, freq bytestat.FrequencyTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rank", "byte", "count", "relative"}); err != nil {
		return err
	}
	for i, f := range freq {
		err := cw.Write([]string{
			strconv.Itoa(i),
			strconv.Itoa(int(f.Value)),
			strconv.FormatUint(f.Count, 10),
			strconv.FormatFloat(freq.Relative(i), 'f', -1, 64),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
