package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/linuxmatters/binviz/internal/analysis"
	"github.com/linuxmatters/binviz/internal/renderer"
)

// Files written into each result folder.
const (
	EntropyFile       = "entropy.txt"
	FrequencyFile     = "most_frequent.txt"
	EntropyCSVFile    = "entropy.csv"
	FrequencyCSVFile  = "frequency.csv"
	DigraphImageFile  = "digraph.png"
	TrigraphImageFile = "trigraph.png"
)

// FolderNames returns one folder name per input path: the file name without
// its extension, with -2, -3, ... appended to repeats.
func FolderNames(paths []string) []string {
	names := make([]string, len(paths))
	seen := make(map[string]int, len(paths))
	for i, p := range paths {
		stem := stemOf(p)
		seen[stem]++
		if n := seen[stem]; n > 1 {
			candidate := fmt.Sprintf("%s-%d", stem, n)
			// A later input may already be called "name-2".
			for seen[candidate] > 0 {
				n++
				candidate = fmt.Sprintf("%s-%d", stem, n)
			}
			seen[stem] = n
			seen[candidate]++
			stem = candidate
		}
		names[i] = stem
	}
	return names
}

func stemOf(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		stem = strings.TrimPrefix(base, ".")
	}
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		stem = "input"
	}
	return stem
}

// FolderWriter writes each bundle into Root/<folder>/. It is used as the
// batch Emit callback, which is always called from one goroutine.
type FolderWriter struct {
	Root    string
	Image   ImageOptions
	Caption bool // Caption images with the file name and mode

	folders []string
	written []Result
}

// Result records one written result folder.
type Result struct {
	Bundle *analysis.Bundle
	Folder string
}

// NewFolderWriter prepares folder names for paths under root.
func NewFolderWriter(root string, paths []string, img ImageOptions) *FolderWriter {
	return &FolderWriter{
		Root:    root,
		Image:   img,
		folders: FolderNames(paths),
	}
}

// Folder returns the folder used for input index i.
func (w *FolderWriter) Folder(i int) string {
	return filepath.Join(w.Root, w.folders[i])
}

// Written returns the folders written so far, in emit order.
func (w *FolderWriter) Written() []Result { return w.written }

// Write is an analysis Emit callback.
func (w *FolderWriter) Write(b *analysis.Bundle) error {
	dir := w.Folder(b.Index)
	if err := WriteBundle(dir, b, w.imageOptions); err != nil {
		return err
	}
	w.written = append(w.written, Result{Bundle: b, Folder: dir})
	return nil
}

func (w *FolderWriter) imageOptions(b *analysis.Bundle, buf *renderer.PixelBuffer) ImageOptions {
	opts := w.Image
	if w.Caption {
		opts.Caption = Caption(filepath.Base(b.Name), buf)
	}
	return opts
}

// WriteBundle writes every result file of b into dir, creating it.
// imageOpts, when non-nil, chooses the options for each image.
func WriteBundle(dir string, b *analysis.Bundle, imageOpts func(*analysis.Bundle, *renderer.PixelBuffer) ImageOptions) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	summary := SummaryTable(b) + "\n\n" + EntropyTable(b.Entropy) + "\n"
	if err := writeFile(filepath.Join(dir, EntropyFile), []byte(summary)); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, FrequencyFile), []byte(FrequencyTable(b.Frequency)+"\n")); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := WriteEntropyCSV(&buf, b.Entropy); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, EntropyCSVFile), buf.Bytes()); err != nil {
		return err
	}
	buf.Reset()
	if err := WriteFrequencyCSV(&buf, b.Frequency); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, FrequencyCSVFile), buf.Bytes()); err != nil {
		return err
	}

	images := []struct {
		file string
		buf  *renderer.PixelBuffer
	}{
		{DigraphImageFile, b.Digraph},
		{TrigraphImageFile, b.Trigraph},
	}
	for _, img := range images {
		if img.buf == nil {
			continue
		}
		opts := DefaultImageOptions()
		if imageOpts != nil {
			opts = imageOpts(b, img.buf)
		}
		if err := SavePNG(filepath.Join(dir, img.file), img.buf, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
