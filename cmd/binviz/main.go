package main

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/linuxmatters/binviz/internal/adjacency"
	"github.com/linuxmatters/binviz/internal/analysis"
	"github.com/linuxmatters/binviz/internal/cli"
	"github.com/linuxmatters/binviz/internal/config"
	"github.com/linuxmatters/binviz/internal/output"
	"github.com/linuxmatters/binviz/internal/renderer"
	"github.com/linuxmatters/binviz/internal/ui"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

type versionFlag bool

func (v versionFlag) BeforeApply(app *kong.Kong) error {
	cli.PrintVersion(version)
	app.Exit(0)
	return nil
}

// Globals are accepted by every command.
type Globals struct {
	Config  string      `help:"YAML config file" type:"path" placeholder:"FILE"`
	Verbose bool        `short:"v" help:"Print when each step starts and finishes"`
	Version versionFlag `help:"Show version information"`
}

var CLI struct {
	Globals

	Entropy   EntropyCmd   `cmd:"" help:"Print the Shannon entropy of a file for each n-gram order."`
	Frequency FrequencyCmd `cmd:"" help:"Rank the byte values of a file by frequency."`
	Visualize VisualizeCmd `cmd:"" help:"Render a digraph or trigraph image of a file."`
	Full      FullCmd      `cmd:"" help:"Run every analysis over many files into result folders."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("binviz"),
		kong.Description("Measure and picture the byte structure of any file."),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if err := ctx.Run(&CLI.Globals); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

// verboseWriter is where step timings go, or nil when quiet.
func (g *Globals) verboseWriter() io.Writer {
	if g.Verbose {
		return os.Stderr
	}
	return nil
}

func (g *Globals) load() (*config.RuntimeConfig, error) {
	t := cli.StartTimer(g.verboseWriter(), "loading config")
	defer t.Stop()
	return config.Load(g.Config)
}

func readInput(g *Globals, path string) ([]byte, error) {
	t := cli.StartTimer(g.verboseWriter(), "reading "+path)
	defer t.Stop()

	data, err := analysis.FileSource(path).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// maxOrder prefers the flag, then the config file.
func maxOrder(cfg *config.RuntimeConfig, flag *int) int {
	if flag != nil {
		return *flag
	}
	return cfg.GetMaxOrder()
}

func renderOptions(cfg *config.RuntimeConfig, curveFlag string) (renderer.Options, error) {
	name := cfg.GetCurve()
	if curveFlag != "" {
		name = curveFlag
	}
	curve, err := renderer.ParseCurve(name)
	if err != nil {
		return renderer.Options{}, err
	}

	r, g, b := cfg.GetBackgroundColor()
	return renderer.Options{
		Curve:      curve,
		Background: color.RGBA{R: r, G: g, B: b, A: 255},
	}, nil
}

func imageOptions(cfg *config.RuntimeConfig, scale int) output.ImageOptions {
	if scale == 0 {
		scale = cfg.GetImageScale()
	}
	r, g, b := cfg.GetTextColor()
	return output.ImageOptions{
		Scale:     scale,
		TextColor: color.RGBA{R: r, G: g, B: b, A: 255},
	}
}

// EntropyCmd prints one row per n-gram order.
type EntropyCmd struct {
	File  string `short:"f" required:"" type:"existingfile" help:"File to analyse"`
	Count *int   `short:"c" help:"Highest n-gram order (config maxOrder, else 2)"`
}

func (c *EntropyCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	data, err := readInput(g, c.File)
	if err != nil {
		return err
	}

	t := cli.StartTimer(g.verboseWriter(), "entropy")
	result, err := analysis.ComputeEntropy(data, maxOrder(cfg, c.Count))
	t.Stop()
	if err != nil {
		return err
	}

	fmt.Println(output.EntropyTable(result))
	return nil
}

// FrequencyCmd prints the byte ranking.
type FrequencyCmd struct {
	File string `short:"f" required:"" type:"existingfile" help:"File to analyse"`
	Top  int    `short:"n" help:"Show only the first N ranks (0 shows all 256)"`
	CSV  bool   `help:"Write CSV instead of a table"`
}

func (c *FrequencyCmd) Run(g *Globals) error {
	if c.Top < 0 || c.Top > 256 {
		return fmt.Errorf("%w: --top %d (must be 0-256)", config.ErrInvalid, c.Top)
	}
	data, err := readInput(g, c.File)
	if err != nil {
		return err
	}

	t := cli.StartTimer(g.verboseWriter(), "frequency")
	freq := analysis.ComputeFrequency(data)
	t.Stop()

	if c.CSV {
		return output.WriteFrequencyCSV(os.Stdout, freq)
	}
	top := c.Top
	if top == 0 {
		top = len(freq)
	}
	fmt.Println(output.FrequencyTableTop(freq, top))
	return nil
}

// VisualizeCmd renders one image.
type VisualizeCmd struct {
	File     string `short:"f" required:"" type:"existingfile" help:"File to visualise"`
	Trigraph bool   `short:"t" help:"Render byte triples instead of pairs"`
	Output   string `short:"o" type:"path" placeholder:"PNG" help:"Output image (default <name>-<mode>.png)"`
	Curve    string `placeholder:"log|mean" help:"Brightness curve (default from config, else log)"`
	Scale    int    `help:"Integer upscale factor, 1-8 (default from config, else 1)"`
	Caption  bool   `help:"Add a caption bar with the file name and mode"`
	Preview  bool   `help:"Show the image in the terminal"`
}

func (c *VisualizeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	opts, err := renderOptions(cfg, c.Curve)
	if err != nil {
		return err
	}
	data, err := readInput(g, c.File)
	if err != nil {
		return err
	}

	mode := adjacency.ModeDigraph
	if c.Trigraph {
		mode = adjacency.ModeTrigraph
	}

	t := cli.StartTimer(g.verboseWriter(), mode.String())
	buf, err := analysis.ComputeVisualization(data, mode, opts)
	t.Stop()
	if err != nil {
		return err
	}

	imgOpts := imageOptions(cfg, c.Scale)
	if c.Caption || cfg.Caption {
		imgOpts.Caption = output.Caption(filepath.Base(c.File), buf)
	}

	path := c.Output
	if path == "" {
		base := filepath.Base(c.File)
		path = strings.TrimSuffix(base, filepath.Ext(base)) + "-" + mode.String() + ".png"
	}

	t = cli.StartTimer(g.verboseWriter(), "writing "+path)
	err = output.SavePNG(path, buf, imgOpts)
	t.Stop()
	if err != nil {
		return err
	}

	unit := "pairs"
	if mode == adjacency.ModeTrigraph {
		unit = "triples"
	}
	cli.PrintInfo("Visualised", fmt.Sprintf("%d byte %s", buf.Windows, unit))
	cli.PrintInfo("Full brightness", fmt.Sprintf("%.1f occurrences (%s curve)", buf.FullScale, opts.Curve))
	if c.Preview {
		fmt.Print(ui.RenderPreview(ui.DownsampleImage(buf.Image, ui.DefaultPreviewConfig()), mode.String()+" preview"))
	}
	cli.PrintSuccess("Wrote " + path)
	return nil
}
