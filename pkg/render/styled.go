package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"clustat/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	primaryColor = lipgloss.Color("#7571f9")
	okColor      = lipgloss.Color("#42c767")
	dangerColor  = lipgloss.Color("#ff6b6b")
	mutedColor   = lipgloss.Color("#6c757d")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

// Styled writes the report as lipgloss tables. Like Text, everything renders
// into a buffer first and flushes in one shot. localHost marks which rows
// belong to the host the command runs on.
func Styled(w io.Writer, view *types.ClusterView, localHost string) error {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, titleStyle.Render("CLUSTER STATUS"))
	fmt.Fprintf(&buf, "Profile: %s\n", view.Profile)
	fmt.Fprintf(&buf, "Pools:   %s\n\n", strings.Join(view.Pools, ", "))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(primaryColor)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == 0:
				return lipgloss.NewStyle().
					Foreground(lipgloss.Color("#ffffff")).
					Bold(true).
					Padding(0, 1)
			default:
				return lipgloss.NewStyle().
					Padding(0, 1)
			}
		}).
		Headers("HOST", "STATUS", "ROLE", "FID", "ENDPOINT", "TYPE")

	for _, host := range view.Hosts {
		name := host.Name
		if name == view.Leader {
			name += " (leader)"
		}
		hostType := mutedStyle.Render("REMOTE")
		if host.Name == localHost {
			hostType = lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Render("LOCAL")
		}
		for _, proc := range host.Processes {
			t.Row(
				name,
				styledStatus(proc.Status),
				string(proc.Role),
				proc.Fid.String(),
				proc.Endpoint,
				hostType,
			)
		}
		if len(host.Processes) == 0 {
			t.Row(name, styledStatus(types.StatusUnknown), "-", "-", "-", hostType)
		}
	}
	fmt.Fprintln(&buf, t.Render())

	_, err := w.Write(buf.Bytes())
	return err
}

func styledStatus(s types.Status) string {
	switch s {
	case types.StatusStarted:
		return lipgloss.NewStyle().Foreground(okColor).Render(string(s))
	case types.StatusOffline:
		return lipgloss.NewStyle().Foreground(dangerColor).Bold(true).Render(string(s))
	default:
		return mutedStyle.Render(string(s))
	}
}
