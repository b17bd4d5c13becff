// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how results are rendered.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeStyled renders colors for an interactive terminal.
	ModeStyled
	// ModePlain renders plain text for logs and CI.
	ModePlain
)

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks if stdout is a TTY and if CI environment variables are set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModeStyled
}

// ResolveMode applies the user's --output flag to the detected mode.
// userFlag should be one of: "auto", "styled", "plain", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "styled":
		return ModeStyled
	case "plain", "ci":
		return ModePlain
	default:
		return autoDetected
	}
}

// Styled reports whether the mode renders colors.
func (m OutputMode) Styled() bool {
	return m == ModeStyled
}
