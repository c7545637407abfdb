package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/linuxmatters/binviz/internal/analysis"
	"github.com/linuxmatters/binviz/internal/config"
	"github.com/linuxmatters/binviz/internal/output"
	"github.com/linuxmatters/binviz/internal/renderer"
)

func writeTestFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMaxOrder(t *testing.T) {
	three := 3
	tests := []struct {
		name string
		cfg  config.RuntimeConfig
		flag *int
		want int
	}{
		{"default", config.RuntimeConfig{}, nil, config.DefaultMaxOrder},
		{"config", config.RuntimeConfig{MaxOrder: 5}, nil, 5},
		{"flag wins", config.RuntimeConfig{MaxOrder: 5}, &three, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxOrder(&tt.cfg, tt.flag); got != tt.want {
				t.Errorf("maxOrder() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := &config.RuntimeConfig{Curve: "mean"}

	opts, err := renderOptions(cfg, "")
	if err != nil {
		t.Fatalf("renderOptions() returned error: %v", err)
	}
	if opts.Curve != renderer.CurveMean {
		t.Errorf("curve = %v, want mean from config", opts.Curve)
	}

	opts, err = renderOptions(cfg, "log")
	if err != nil || opts.Curve != renderer.CurveLog {
		t.Errorf("flag should override config: %v, %v", opts.Curve, err)
	}

	if _, err := renderOptions(cfg, "cubic"); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("unknown curve error = %v, want ErrInvalid", err)
	}
}

func TestImageOptions(t *testing.T) {
	r, g, b := uint8(1), uint8(2), uint8(3)
	cfg := &config.RuntimeConfig{ImageScale: 4, TextColorR: &r, TextColorG: &g, TextColorB: &b}

	if got := imageOptions(cfg, 0); got.Scale != 4 || got.TextColor.B != 3 {
		t.Errorf("imageOptions(cfg) = %+v", got)
	}
	if got := imageOptions(cfg, 2); got.Scale != 2 {
		t.Errorf("flag scale = %d, want 2", got.Scale)
	}
}

func TestSummarise(t *testing.T) {
	report := &analysis.Report{
		Bundles:   []*analysis.Bundle{{Size: 100}, {Size: 28}},
		Failures:  []analysis.Failure{{Name: "x"}},
		CacheHits: 1,
		Elapsed:   time.Second,
	}
	s := summarise(report, "out")
	if s.Files != 2 || s.Failed != 1 || s.Bytes != 128 || s.CacheHits != 1 || s.OutputDir != "out" {
		t.Errorf("summarise() = %+v", s)
	}
}

func TestFullCmd(t *testing.T) {
	src := t.TempDir()
	files := []string{
		writeTestFile(t, src, "alpha.bin", []byte("alpha alpha alpha")),
		writeTestFile(t, src, "beta.txt", []byte("the quick brown fox jumps")),
	}
	out := filepath.Join(t.TempDir(), "results")

	cmd := &FullCmd{Files: files, Out: out, Workers: 2, NoProgress: true}
	if err := cmd.Run(&Globals{}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	for _, folder := range []string{"alpha", "beta"} {
		if _, err := os.Stat(filepath.Join(out, folder, output.DigraphImageFile)); err != nil {
			t.Errorf("missing digraph for %s: %v", folder, err)
		}
	}

	m, err := output.ReadManifest(filepath.Join(out, config.ManifestName))
	if err != nil {
		t.Fatalf("ReadManifest() returned error: %v", err)
	}
	if len(m.Files) != 2 || m.Files[0].Name != files[0] {
		t.Errorf("manifest files = %+v", m.Files)
	}
}

func TestFullCmdReportsFailures(t *testing.T) {
	src := t.TempDir()
	files := []string{
		writeTestFile(t, src, "ok.bin", []byte{1, 2, 3}),
		filepath.Join(src, "missing.bin"),
	}
	out := filepath.Join(t.TempDir(), "results")

	err := (&FullCmd{Files: files, Out: out, NoProgress: true}).Run(&Globals{})
	if err == nil {
		t.Fatal("Run() should report the missing file")
	}

	m, err := output.ReadManifest(filepath.Join(out, config.ManifestName))
	if err != nil {
		t.Fatalf("manifest should still be written: %v", err)
	}
	if len(m.Files) != 1 || len(m.Failures) != 1 || m.Failures[0].Stage != analysis.StageRead {
		t.Errorf("manifest = %+v", m)
	}
}

func TestVisualizeCmd(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir, "sample.bin", []byte("visualise these bytes please"))
	outPath := filepath.Join(dir, "sample.png")

	cmd := &VisualizeCmd{File: in, Trigraph: true, Output: outPath, Scale: 2, Caption: true}
	if err := cmd.Run(&Globals{}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if info, err := os.Stat(outPath); err != nil || info.Size() == 0 {
		t.Errorf("image not written: %v", err)
	}
}

func TestEntropyCmdRejectsZeroOrder(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir, "sample.bin", []byte("abc"))
	zero := 0

	err := (&EntropyCmd{File: in, Count: &zero}).Run(&Globals{})
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Run(count 0) error = %v, want ErrInvalid", err)
	}
}
