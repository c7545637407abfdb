package output

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/linuxmatters/binviz/internal/analysis"
	"sigs.k8s.io/yaml"
)

// Manifest summarises a batch run. It is written as YAML next to the result
// folders.
type Manifest struct {
	RunID     string            `json:"runId"`
	Created   time.Time         `json:"created"`
	Elapsed   string            `json:"elapsed"`
	CacheHits int               `json:"cacheHits"`
	Files     []ManifestFile    `json:"files"`
	Failures  []ManifestFailure `json:"failures,omitempty"`
}

type ManifestFile struct {
	Name            string            `json:"name"`
	Folder          string            `json:"folder"`
	Size            string            `json:"size"`
	Bytes           int               `json:"bytes"`
	Digest          string            `json:"digest"`
	Entropy         []ManifestEntropy `json:"entropy"`
	Compressibility float64           `json:"compressibility"`
	Cached          bool              `json:"cached,omitempty"`
}

type ManifestEntropy struct {
	Order    int     `json:"order"`
	Bits     float64 `json:"bits"`
	Relative float64 `json:"relative"`
}

type ManifestFailure struct {
	Name  string `json:"name"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// NewManifest builds the manifest for a finished batch. written gives the
// folder of every bundle that reached disk.
func NewManifest(report *analysis.Report, written []Result) *Manifest {
	m := &Manifest{
		RunID:     uuid.NewString(),
		Created:   time.Now().UTC().Truncate(time.Second),
		Elapsed:   report.Elapsed.Round(time.Millisecond).String(),
		CacheHits: report.CacheHits,
	}

	for _, w := range written {
		b := w.Bundle
		f := ManifestFile{
			Name:            b.Name,
			Folder:          w.Folder,
			Size:            humanize.IBytes(uint64(b.Size)),
			Bytes:           b.Size,
			Digest:          b.Digest,
			Compressibility: b.Compressibility,
			Cached:          b.Cached,
		}
		for _, e := range b.Entropy {
			f.Entropy = append(f.Entropy, ManifestEntropy{Order: e.Order, Bits: e.Bits, Relative: e.Relative()})
		}
		m.Files = append(m.Files, f)
	}

	for _, f := range report.Failures {
		m.Failures = append(m.Failures, ManifestFailure{
			Name:  f.Name,
			Stage: f.Stage,
			Error: f.Err.Error(),
		})
	}
	return m
}

// WriteManifest writes m to path as YAML.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return m, nil
}
