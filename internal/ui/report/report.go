// Package report renders restore outcomes for the terminal.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/ui/output"
	"go.trai.ch/pkgr/internal/ui/style"
)

// Renderer writes one line per package followed by a summary.
type Renderer struct {
	out *termenv.Output
}

// New creates a Renderer. Styled output uses the terminal color profile, plain output none.
func New(w io.Writer, styled bool) *Renderer {
	profile := output.PlainProfile
	if styled {
		profile = output.ColorProfile
	}
	return &Renderer{out: output.NewWithProfile(w, profile)}
}

// Render writes the report.
func (r *Renderer) Render(rep *domain.RestoreReport) error {
	if rep == nil || len(rep.Outcomes) == 0 {
		return r.line(style.Slate, "No packages to restore.")
	}

	for _, o := range rep.Outcomes {
		if err := r.outcome(o); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d %s: %d installed, %d already present, %d failed",
		len(rep.Outcomes), plural(len(rep.Outcomes)),
		rep.Count(domain.StatusInstalled),
		rep.Count(domain.StatusAlreadyPresent),
		rep.Count(domain.StatusFailed),
	)
	color := style.Green
	if rep.Failed() {
		color = style.Red
	}
	if _, err := r.out.WriteString("\n"); err != nil {
		return err
	}
	return r.line(color, summary)
}

func (r *Renderer) outcome(o domain.RestoreOutcome) error {
	id := o.Reference.Identity
	switch o.Status {
	case domain.StatusInstalled:
		from := o.Source.String()
		if o.FromCache {
			from = "cache"
		}
		return r.line(style.Green, fmt.Sprintf("%s %s installed from %s", style.Check, id, from))
	case domain.StatusAlreadyPresent:
		return r.line(style.Slate, fmt.Sprintf("%s %s already present", style.Tilde, id))
	default:
		line := fmt.Sprintf("%s %s failed", style.Cross, id)
		if o.Err != nil {
			line += "\n    " + style.Arrow + " " + o.Err.Error()
		}
		return r.line(style.Red, line)
	}
}

func (r *Renderer) line(color lipgloss.Color, msg string) error {
	styled := r.out.String(msg).Foreground(termenv.RGBColor(string(color)))
	_, err := r.out.WriteString(styled.String() + "\n")
	return err
}

func plural(n int) string {
	if n == 1 {
		return "package"
	}
	return "packages"
}
