package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/binviz/internal/analysis"
	"github.com/linuxmatters/binviz/internal/cli"
	"github.com/linuxmatters/binviz/internal/config"
	"github.com/linuxmatters/binviz/internal/output"
	"github.com/linuxmatters/binviz/internal/ui"
	"github.com/mattn/go-isatty"
)

// FullCmd analyses many files into one result folder each.
type FullCmd struct {
	Files      []string `arg:"" name:"files" help:"Files to analyse"`
	Out        string   `short:"o" type:"path" placeholder:"DIR" help:"Output root (default from config, else ./output)"`
	Workers    int      `short:"j" help:"Files analysed in parallel (default: one per CPU)"`
	Count      *int     `short:"c" help:"Highest n-gram order for entropy (config maxOrder, else 2)"`
	Curve      string   `placeholder:"log|mean" help:"Brightness curve (default from config, else log)"`
	Scale      int      `help:"Integer upscale factor for images, 1-8"`
	Caption    bool     `help:"Add a caption bar to every image"`
	NoProgress bool     `help:"Print one line per file instead of the progress display"`
}

func (c *FullCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	renderOpts, err := renderOptions(cfg, c.Curve)
	if err != nil {
		return err
	}

	workers := cfg.GetWorkers()
	if c.Workers > 0 {
		workers = c.Workers
	}
	root := cfg.GetOutputDir()
	if c.Out != "" {
		root = c.Out
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	writer := output.NewFolderWriter(root, c.Files, imageOptions(cfg, c.Scale))
	writer.Caption = c.Caption || cfg.Caption

	sources := make([]analysis.Source, len(c.Files))
	for i, path := range c.Files {
		sources[i] = analysis.FileSource(path)
	}

	interactive := !c.NoProgress && !g.Verbose && isatty.IsTerminal(os.Stdout.Fd())
	var send func(ui.FileDone)
	var p *tea.Program
	if interactive {
		p = tea.NewProgram(ui.NewModel(len(sources)))
		send = func(f ui.FileDone) { p.Send(f) }
	} else {
		send = printFileDone
	}

	// Emit and Progress both run on the collecting goroutine.
	finished := 0
	opts := analysis.Options{
		MaxOrder:  maxOrder(cfg, c.Count),
		Render:    renderOpts,
		Workers:   workers,
		CacheSize: cfg.GetCacheSize(),
		Emit: func(b *analysis.Bundle) error {
			err := writer.Write(b)
			finished++
			f := ui.FileDone{Done: finished, Total: len(sources), Name: b.Name, Size: int64(b.Size), Err: err, Cached: b.Cached}
			if len(b.Entropy) > 0 {
				f.Entropy = b.Entropy[0].Relative()
			}
			send(f)
			return err
		},
		Progress: func(done, total int, name string, err error) {
			if err == nil {
				return
			}
			finished++
			send(ui.FileDone{Done: finished, Total: total, Name: name, Err: err})
		},
	}

	t := cli.StartTimer(g.verboseWriter(), fmt.Sprintf("full analysis of %d file(s)", len(sources)))
	var report *analysis.Report
	var runErr error
	if interactive {
		finishedRun := make(chan struct{})
		go func() {
			report, runErr = analysis.RunFull(sources, opts)
			close(finishedRun)
			if runErr != nil {
				p.Quit()
				return
			}
			p.Send(ui.BatchComplete{Summary: summarise(report, root)})
		}()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running UI: %w", err)
		}
		select {
		case <-finishedRun:
		default:
			return fmt.Errorf("analysis interrupted")
		}
	} else {
		report, runErr = analysis.RunFull(sources, opts)
	}
	t.Stop()
	if runErr != nil {
		return runErr
	}

	manifestPath := filepath.Join(root, config.ManifestName)
	if err := output.WriteManifest(manifestPath, output.NewManifest(report, writer.Written())); err != nil {
		return err
	}

	if !interactive {
		cli.PrintBatchSummary(summarise(report, root))
	}
	cli.PrintInfo("Manifest", manifestPath)

	if n := len(report.Failures); n > 0 {
		return fmt.Errorf("%d of %d file(s) failed", n, len(sources))
	}
	return nil
}

func summarise(report *analysis.Report, root string) cli.BatchSummary {
	s := cli.BatchSummary{
		Files:     len(report.Bundles),
		Failed:    len(report.Failures),
		CacheHits: report.CacheHits,
		Elapsed:   report.Elapsed,
		OutputDir: root,
	}
	for _, b := range report.Bundles {
		s.Bytes += int64(b.Size)
	}
	return s
}

func printFileDone(f ui.FileDone) {
	prefix := fmt.Sprintf("[%d/%d] %s", f.Done, f.Total, f.Name)
	if f.Err != nil {
		cli.PrintWarning(fmt.Sprintf("%s: %v", prefix, f.Err))
		return
	}
	detail := fmt.Sprintf("%s (%s, entropy %.3f)", prefix, cli.FormatBytes(f.Size), f.Entropy)
	if f.Cached {
		detail += " cached"
	}
	cli.PrintSuccess(detail)
}
