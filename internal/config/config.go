package config

import "errors"

// Error kinds surfaced to callers. Wrap with fmt.Errorf("%w: ...") and test
// with errors.Is.
var (
	// ErrInvalid marks a configuration error: a value the engine will not
	// silently default, such as max order 0 or an unknown visualization mode.
	ErrInvalid = errors.New("invalid configuration")

	// ErrResourceLimit marks a request that would need unbounded memory.
	ErrResourceLimit = errors.New("resource limit exceeded")
)

// N-gram settings
const (
	DefaultMaxOrder = 2  // Orders computed by `full` and by `entropy` without --count
	DenseOrderLimit = 2  // Highest order counted in a flat 256^n table
	MaxOrderLimit   = 64 // Highest order accepted at all
	PackedOrderMax  = 8  // Highest order whose key fits a uint64
)

// Image settings
const (
	MatrixSize     = 256 // Digraph and trigraph images are MatrixSize x MatrixSize
	SuccessorBands = 3   // Trigraph colour channels (R, G, B)
)

// Rendering defaults
const (
	DefaultCurve      = "log"
	DefaultImageScale = 1
	MaxImageScale     = 8

	// Trigraph background (empty cells)
	BackgroundColorR = 0
	BackgroundColorG = 0
	BackgroundColorB = 0

	// Caption text colour, brand yellow #F8B31D
	TextColorR = 248
	TextColorG = 179
	TextColorB = 29

	CaptionFontSize = 13.0 // Points at 72 DPI
	CaptionHeight   = 22   // Pixels added below the image for the caption bar
)

// Batch settings
const (
	DefaultCacheSize = 64       // Distinct file contents remembered per run
	DefaultOutputDir = "output" // Root folder for `full`
	ManifestName     = "report.yaml"
)
