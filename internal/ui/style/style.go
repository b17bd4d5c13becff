// Package style holds the colors and icons shared by the log handler and the restore report.
package style

import "github.com/charmbracelet/lipgloss"

// Colors. Green and Red mark package outcomes, Slate marks packages left untouched.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Arrow   = "→"
	Dot     = "●"
)
