package terminal

import "github.com/charmbracelet/lipgloss"

var (
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"} // blue
	colorServed = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"} // emerald
)

var (
	styleTitle  = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta   = lipgloss.NewStyle().Foreground(colorDim)
	styleIndex  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleServed = lipgloss.NewStyle().Foreground(colorServed).Bold(true)
	styleLabel  = lipgloss.NewStyle().Foreground(colorDim)
	styleStat   = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
)
