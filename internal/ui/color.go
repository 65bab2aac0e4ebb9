package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// Color functions - these respect NoColor setting automatically
var (
	cyan      = color.New(color.FgCyan)
	green     = color.New(color.FgGreen)
	boldGreen = color.New(color.FgGreen, color.Bold)
	red       = color.New(color.FgRed)
	yellow    = color.New(color.FgYellow)
	magenta   = color.New(color.FgMagenta)
	dim       = color.New(color.Faint)
)

// shortHashLen is how much of a commit hash listings show
const shortHashLen = 7

// Branch returns a local branch name in cyan
func Branch(name string) string {
	return cyan.Sprint(name)
}

// RemoteBranch returns a remote-tracking branch as <remote>/<name> in red,
// the way git branch -a shows it
func RemoteBranch(remote, name string) string {
	return red.Sprintf("%s/%s", remote, name)
}

// Remote returns a remote name in magenta
func Remote(name string) string {
	return magenta.Sprint(name)
}

// CurrentBranchMarker returns the bold green asterisk for current branch
func CurrentBranchMarker() string {
	return boldGreen.Sprint("*")
}

// NotCurrentMarker pads rows that are not the current branch
func NotCurrentMarker() string {
	return " "
}

// Commit returns an abbreviated commit hash in yellow
func Commit(hash string) string {
	if len(hash) > shortHashLen {
		hash = hash[:shortHashLen]
	}
	return yellow.Sprint(hash)
}

// Worktree returns the path a branch is checked out at, dimmed and bracketed
func Worktree(path string) string {
	return dim.Sprintf("[%s]", path)
}

// Success returns a green success message with checkmark
func Success(msg string) string {
	return green.Sprintf("✓ %s", msg)
}

// Warning returns a yellow warning message with warning sign
func Warning(msg string) string {
	return yellow.Sprintf("⚠ %s", msg)
}

// Error returns a red error message with X
func Error(msg string) string {
	return red.Sprintf("✗ %s", msg)
}

// Command returns a command in green (for help text)
func Command(cmd string) string {
	return green.Sprint(cmd)
}

// Dim returns dimmed/gray text
func Dim(s string) string {
	return dim.Sprint(s)
}

// DryRun prefixes a message the way dry runs announce skipped work
func DryRun(format string, a ...any) string {
	return yellow.Sprint("[DRY RUN] ") + fmt.Sprintf(format, a...)
}

// SetNoColor sets whether color output is disabled
func SetNoColor(disabled bool) {
	color.NoColor = disabled
}
