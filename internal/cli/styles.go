package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const (
	appName    = "binviz"
	appTagline = "Measure and picture the byte structure of any file: entropy, frequencies, digraph and trigraph maps."
)

// Color palette
var (
	primaryColor   = BrandYellow
	accentColor    = BandBlue
	successColor   = BandGreen
	errorColor     = BandRed
	mutedColor     = lipgloss.Color("#888888")
	highlightColor = lipgloss.Color("#FFFF00")
	textColor      = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	// Highlight style for important values
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlightColor)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)
)

// PrintBanner prints the application banner
func PrintBanner() {
	fmt.Println(TitleStyle.Render(appName))
	fmt.Println(SubtitleStyle.Render(appTagline))
	fmt.Println()
}

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render(appName))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a warning message to stderr
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", HighlightStyle.Render("Warning:"), message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints an informational message
func PrintInfo(key, value string) {
	fmt.Printf("%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Println(HeaderStyle.Render(title))
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatBytes formats bytes with binary units, e.g. "1.5 MiB".
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatRate formats throughput in bytes per second.
func FormatRate(bytes int64, d time.Duration) string {
	if d <= 0 || bytes <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(float64(bytes)/d.Seconds())) + "/s"
}

// PrintBox prints content in a styled box
func PrintBox(content string) {
	fmt.Println(BoxStyle.Render(content))
}

// BatchSummary holds the figures shown after a batch run.
type BatchSummary struct {
	Files     int
	Failed    int
	CacheHits int
	Bytes     int64
	Elapsed   time.Duration
	OutputDir string
}

// RenderBatchSummary formats the summary box content.
func RenderBatchSummary(s BatchSummary) string {
	var b strings.Builder

	if s.Failed == 0 {
		b.WriteString(SuccessStyle.Render("✓ Analysis Complete!"))
	} else {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("✗ Analysis finished with %d failure(s)", s.Failed)))
	}
	b.WriteString("\n\n")

	rows := []struct{ key, value string }{
		{"Files:     ", fmt.Sprintf("%d analysed, %d failed", s.Files, s.Failed)},
		{"Cached:    ", fmt.Sprintf("%d", s.CacheHits)},
		{"Input:     ", FormatBytes(s.Bytes)},
		{"Time:      ", FormatDuration(s.Elapsed)},
		{"Speed:     ", FormatRate(s.Bytes, s.Elapsed)},
		{"Output:    ", s.OutputDir},
	}
	for i, r := range rows {
		b.WriteString(KeyStyle.Render(r.key))
		b.WriteString(ValueStyle.Render(r.value))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// PrintBatchSummary prints the batch summary in a box
func PrintBatchSummary(s BatchSummary) {
	PrintBox(RenderBatchSummary(s))
}
