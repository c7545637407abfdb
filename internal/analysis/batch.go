package analysis

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/linuxmatters/binviz/internal/config"
	"github.com/linuxmatters/binviz/internal/renderer"
)

// ProgressCallback is called once per finished input, in completion order.
// err is non-nil when that input failed.
type ProgressCallback func(done, total int, name string, err error)

// Options configures Analyze and RunFull.
type Options struct {
	MaxOrder int // 0 means config.DefaultMaxOrder
	Render   renderer.Options

	Workers   int // 0 means one
	CacheSize int // 0 disables deduplication

	// Emit receives each successful bundle in input order. A returned error
	// is recorded as a failure for that input.
	Emit func(*Bundle) error

	Progress ProgressCallback
}

// Stage names where a batch input failed.
const (
	StageRead    = "read"
	StageAnalyse = "analyse"
	StageWrite   = "write"
)

// Failure records one input that produced no bundle.
type Failure struct {
	Index int
	Name  string
	Stage string
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", f.Name, f.Stage, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Report is the outcome of RunFull. Bundles are in input order.
type Report struct {
	Bundles   []*Bundle
	Failures  []Failure
	CacheHits int
	Elapsed   time.Duration
}

type result struct {
	index  int
	bundle *Bundle
	fail   *Failure
}

// RunFull analyses every source on a pool of workers and gathers the results
// back into input order. A failing input never stops the batch. The only
// returned error is an invalid Options value, detected before any input is
// read.
func RunFull(sources []Source, opts Options) (*Report, error) {
	start := time.Now()

	// A dry run over an empty stream rejects bad orders and curves up front.
	if _, err := analyze(nil, opts); err != nil {
		return nil, err
	}

	var cache *lru.Cache[[2]uint64, *Bundle]
	if opts.CacheSize > 0 {
		var err error
		cache, err = lru.New[[2]uint64, *Bundle](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("%w: cache size %d: %v", config.ErrInvalid, opts.CacheSize, err)
		}
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(sources) {
		workers = len(sources)
	}

	var hits atomic.Int64
	jobs := make(chan int)
	results := make(chan result)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results <- process(i, sources[i], opts, cache, &hits)
			}
		}()
	}

	go func() {
		for i := range sources {
			jobs <- i
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	report := &Report{}
	pending := make(map[int]result)
	next, done := 0, 0

	for res := range results {
		done++
		if opts.Progress != nil {
			var err error
			if res.fail != nil {
				err = res.fail.Err
			}
			opts.Progress(done, len(sources), sources[res.index].Name(), err)
		}

		// Hold results back until every earlier input has been emitted
		pending[res.index] = res
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			report.collect(r, opts.Emit)
		}
	}

	report.CacheHits = int(hits.Load())
	report.Elapsed = time.Since(start)
	return report, nil
}

func (r *Report) collect(res result, emit func(*Bundle) error) {
	if res.fail != nil {
		r.Failures = append(r.Failures, *res.fail)
		return
	}
	if emit != nil {
		if err := emit(res.bundle); err != nil {
			r.Failures = append(r.Failures, Failure{
				Index: res.index,
				Name:  res.bundle.Name,
				Stage: StageWrite,
				Err:   err,
			})
			return
		}
	}
	r.Bundles = append(r.Bundles, res.bundle)
}

func process(index int, src Source, opts Options, cache *lru.Cache[[2]uint64, *Bundle], hits *atomic.Int64) result {
	name := src.Name()
	fail := func(stage string, err error) result {
		return result{index: index, fail: &Failure{Index: index, Name: name, Stage: stage, Err: err}}
	}

	stream, err := src.Bytes()
	if err != nil {
		return fail(StageRead, err)
	}

	start := time.Now()
	key := digest(stream)
	if cache != nil {
		if cached, ok := cache.Get(key); ok {
			hits.Add(1)
			b := *cached
			b.Index, b.Name, b.Elapsed, b.Cached = index, name, 0, true
			return result{index: index, bundle: &b}
		}
	}

	b, err := analyze(stream, opts)
	if err != nil {
		return fail(StageAnalyse, err)
	}
	b.Index = index
	b.Name = name
	b.Digest = digestString(key)
	b.Elapsed = time.Since(start)

	if cache != nil {
		cache.Add(key, b)
	}
	return result{index: index, bundle: b}
}
