package cmd

import (
	"fmt"
	"io"

	"github.com/javoire/refkit/internal/git"
	"github.com/javoire/refkit/internal/refs"
	"github.com/javoire/refkit/internal/ui"
	"github.com/spf13/cobra"
)

var stashCmd = &cobra.Command{
	Use:   "stash",
	Short: "Inspect the stash list",
}

var stashListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stash entries, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runStashList(newGitClient(), cmd.OutOrStdout()))
	},
}

func init() {
	stashCmd.AddCommand(stashListCmd)
}

func runStashList(gitClient git.GitClient, out io.Writer) error {
	entries, err := refs.Open(gitClient).Stashes().List()
	if err != nil {
		return fmt.Errorf("failed to list stashes: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No stash entries.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(out, "%s %s\n", ui.Dim(e.Ref+":"), e.Message)
	}
	return nil
}
