package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/binviz/internal/cli"
)

// recentLimit is how many finished files stay listed under the bar.
const recentLimit = 6

// FileDone reports one finished input of a batch.
type FileDone struct {
	Done  int
	Total int
	Name  string
	Size  int64
	Err   error

	// Entropy is the order-1 relative entropy (0-1), unset on failure.
	Entropy float64
	Cached  bool
}

// BatchComplete signals the end of a batch.
type BatchComplete struct {
	Summary cli.BatchSummary
}

// progressQuitMsg is sent when it's time to quit after showing completion
type progressQuitMsg struct{}

// Model is the Bubbletea model for a batch run.
type Model struct {
	progressBar progress.Model
	entropyBar  progress.Model

	total    int
	done     int
	failed   int
	bytes    int64
	recent   []FileDone
	complete *BatchComplete

	startTime       time.Time
	width           int
	completionDelay time.Duration
}

// NewModel creates a batch progress model for total inputs.
func NewModel(total int) *Model {
	p := progress.New(
		progress.WithGradient(string(cli.BandBlue), string(cli.BrandYellow)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	// Smaller bar for per-file entropy
	entropyBar := progress.New(
		progress.WithGradient(string(cli.BandGreen), string(cli.BandRed)),
		progress.WithWidth(16),
		progress.WithoutPercentage(),
	)

	return &Model{
		progressBar:     p,
		entropyBar:      entropyBar,
		total:           total,
		startTime:       time.Now(),
		completionDelay: 750 * time.Millisecond,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = max(10, min(msg.Width-30, 50))
		return m, nil

	case FileDone:
		m.done = msg.Done
		if msg.Total > 0 {
			m.total = msg.Total
		}
		if msg.Err != nil {
			m.failed++
		} else {
			m.bytes += msg.Size
		}
		m.recent = append(m.recent, msg)
		if len(m.recent) > recentLimit {
			m.recent = m.recent[len(m.recent)-recentLimit:]
		}
		return m, nil

	case BatchComplete:
		m.complete = &msg
		return m, tea.Tick(m.completionDelay, func(t time.Time) tea.Msg {
			return progressQuitMsg{}
		})

	case progressQuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.complete != nil {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.complete != nil {
		return m.renderProgress() + "\n" + cli.BoxStyle.Render(cli.RenderBatchSummary(m.complete.Summary)) + "\n"
	}
	return m.renderProgress()
}

// Done reports whether the batch has completed.
func (m *Model) Done() bool { return m.complete != nil }

func (m *Model) ratio() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m *Model) renderProgress() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.BrandYellow).
		Render("binviz")
	s.WriteString(title)
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Faint(true).Render("Analysing files"))
	s.WriteString("\n\n")

	s.WriteString(m.progressBar.ViewAs(m.ratio()))
	s.WriteString(fmt.Sprintf("  %3.0f%%\n", m.ratio()*100))

	elapsed := time.Since(m.startTime)
	labelStyle := lipgloss.NewStyle().Faint(true)
	s.WriteString(labelStyle.Render("Files: "))
	s.WriteString(fmt.Sprintf("%d/%d", m.done, m.total))
	s.WriteString("  │  ")
	s.WriteString(labelStyle.Render("Read: "))
	s.WriteString(cli.FormatBytes(m.bytes))
	s.WriteString("  │  ")
	s.WriteString(labelStyle.Render("Elapsed: "))
	s.WriteString(formatDuration(elapsed))
	if m.failed > 0 {
		s.WriteString("  │  ")
		s.WriteString(lipgloss.NewStyle().Foreground(cli.BandRed).Render(fmt.Sprintf("%d failed", m.failed)))
	}
	s.WriteString("\n")

	if len(m.recent) > 0 {
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Recent (order-1 entropy):"))
		s.WriteString("\n")
		for _, f := range m.recent {
			s.WriteString(m.renderFile(f))
			s.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(cli.BandBlue).
		Padding(1, 2).
		Render(strings.TrimRight(s.String(), "\n"))
}

func (m *Model) renderFile(f FileDone) string {
	name := truncateName(filepath.Base(f.Name), 24)
	if f.Err != nil {
		return fmt.Sprintf("  %s %-24s %s", cli.ErrorStyle.Render("✗"), name,
			lipgloss.NewStyle().Faint(true).Render(truncateName(f.Err.Error(), 40)))
	}

	mark := cli.SuccessStyle.Render("✓")
	suffix := cli.FormatBytes(f.Size)
	if f.Cached {
		suffix += " (cached)"
	}
	return fmt.Sprintf("  %s %-24s %s %.3f  %s", mark, name, m.entropyBar.ViewAs(f.Entropy), f.Entropy, suffix)
}

func truncateName(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
