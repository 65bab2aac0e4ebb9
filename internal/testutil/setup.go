package testutil

import (
	"io"

	"github.com/javoire/refkit/internal/git"
	"github.com/javoire/refkit/internal/spinner"
	"github.com/javoire/refkit/internal/ui"
	"github.com/rs/zerolog"
)

// SetupTest initializes test environment (quiet logs, no colors, no spinner
// animation, real mutations)
func SetupTest() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	ui.SetNoColor(true)
	spinner.Enabled = false
	spinner.Output = io.Discard
	git.DryRun = false
}

// TeardownTest cleans up after tests
func TeardownTest() {
	git.DryRun = false
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
