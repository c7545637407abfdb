package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Help styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BrandYellow).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(SlateGray).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(BandBlue).
				MarginTop(1)

	helpCommandStyle = lipgloss.NewStyle().
				Foreground(BandGreen).
				Bold(true)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(BrandYellow).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(BandRed).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(SlateGray).
				Italic(true)
)

// StyledHelpPrinter creates a custom help printer with Lipgloss styling.
// At the top level it lists the commands; for a selected command it shows
// that command's arguments and flags along with the global flags.
func StyledHelpPrinter(options kong.HelpOptions) kong.HelpPrinter {
	return kong.HelpPrinter(func(options kong.HelpOptions, ctx *kong.Context) error {
		fmt.Fprint(ctx.Stdout, renderHelp(ctx))
		return nil
	})
}

func renderHelp(ctx *kong.Context) string {
	var sb strings.Builder
	root := ctx.Model.Node
	node := ctx.Selected()

	sb.WriteString(helpTitleStyle.Render(appName))
	sb.WriteString("\n")
	desc := appTagline
	if node != nil && node.Help != "" {
		desc = node.Help
	}
	sb.WriteString(helpDescStyle.Render(desc))
	sb.WriteString("\n")

	sb.WriteString(helpSectionStyle.Render("Usage:"))
	sb.WriteString("\n  ")
	if node == nil {
		sb.WriteString(fmt.Sprintf("%s <command> [flags]", root.Name))
	} else {
		usage := []string{root.Name, node.Name}
		for _, arg := range node.Positional {
			usage = append(usage, arg.Summary())
		}
		usage = append(usage, "[flags]")
		sb.WriteString(strings.Join(usage, " "))
	}
	sb.WriteString("\n")

	if node == nil {
		commands := getCommands(root)
		if len(commands) > 0 {
			writeSection(&sb, "Commands:", commands, helpCommandStyle)
		}
	}

	if node != nil {
		if args := getArguments(node); len(args) > 0 {
			writeSection(&sb, "Arguments:", args, helpArgStyle)
		}
		if flags := getFlags(node, false); len(flags) > 0 {
			writeSection(&sb, "Flags:", flags, helpFlagStyle)
		}
	}

	title := "Flags:"
	if node != nil {
		title = "Global Flags:"
	}
	writeSection(&sb, title, getFlags(root, true), helpFlagStyle)

	if node == nil {
		sb.WriteString("\n  ")
		sb.WriteString(helpDefaultStyle.Render(fmt.Sprintf(`Run "%s <command> --help" for more information on a command.`, root.Name)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	return sb.String()
}

type helpEntry struct {
	name       string
	help       string
	defaultVal string
}

func writeSection(sb *strings.Builder, title string, entries []helpEntry, style lipgloss.Style) {
	sb.WriteString("\n")
	sb.WriteString(helpSectionStyle.Render(title))
	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString("  ")
		sb.WriteString(style.Render(e.name))
		if e.help != "" {
			sb.WriteString("  ")
			sb.WriteString(e.help)
		}
		if e.defaultVal != "" {
			sb.WriteString(" ")
			sb.WriteString(helpDefaultStyle.Render("(default: " + e.defaultVal + ")"))
		}
		sb.WriteString("\n")
	}
}

func getCommands(node *kong.Node) []helpEntry {
	var commands []helpEntry
	for _, child := range node.Children {
		if child.Hidden {
			continue
		}
		commands = append(commands, helpEntry{name: child.Name, help: child.Help})
	}
	return commands
}

func getArguments(node *kong.Node) []helpEntry {
	var args []helpEntry
	for _, arg := range node.Positional {
		args = append(args, helpEntry{name: arg.Summary(), help: arg.Help})
	}
	return args
}

func getFlags(node *kong.Node, withHelp bool) []helpEntry {
	var flags []helpEntry

	if withHelp {
		flags = append(flags, helpEntry{
			name: "-h, --help",
			help: "Show context-sensitive help.",
		})
	}

	for _, f := range node.Flags {
		if f.Name == "help" || f.Hidden {
			continue
		}

		flagStr := ""
		if f.Short != 0 {
			flagStr = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
		} else {
			flagStr = fmt.Sprintf("--%s", f.Name)
		}

		if !f.IsBool() && f.PlaceHolder != "" {
			flagStr += "=" + strings.ToUpper(f.PlaceHolder)
		}

		// Only show default if it's a meaningful value (not empty, not type placeholder)
		defaultVal := ""
		if f.HasDefault && !f.IsBool() {
			val := f.Default
			if val != "" && val != "STRING" && val != "BOOL" {
				defaultVal = val
			}
		}

		flags = append(flags, helpEntry{
			name:       flagStr,
			help:       f.Help,
			defaultVal: defaultVal,
		})
	}

	return flags
}
