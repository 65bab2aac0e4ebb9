package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/javoire/refkit/internal/git"
	"github.com/javoire/refkit/internal/logging"
	"github.com/javoire/refkit/internal/spinner"
	"github.com/javoire/refkit/internal/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// remoteConfigKey names the git config entry holding the default remote
const remoteConfigKey = "refkit.remote"

const defaultRemote = "origin"

var (
	dryRun  bool
	verbose bool
	repoDir string
	logFile string
	noColor bool

	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "refkit",
	Short: "Work with branches and remotes of a git repository",
	Long: `A CLI tool for inspecting and manipulating the branches and remotes of a git repository.

Branches can be local (refs/heads) or remote-tracking (refs/remotes/<remote>).
Every mutating command honours --dry-run, which prints the git commands instead of running them.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		git.DryRun = dryRun
		ui.SetNoColor(noColor)
		if verbose {
			spinner.Enabled = false
		}

		closer, err := logging.Setup(logging.Options{
			Verbose: verbose,
			NoColor: noColor,
			LogFile: logFile,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logCloser = closer

		if cmd.Annotations["skipRepoCheck"] == "true" {
			return
		}

		// Validate we're in a git repository
		if _, err := newGitClient().GetRepoRoot(); err != nil {
			log.Debug().Err(err).Msg("repository check failed")
			fmt.Fprintf(os.Stderr, "Error: not in a git repository\n")
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show what would happen without executing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
	rootCmd.PersistentFlags().StringVarP(&repoDir, "repo", "C", "", "Run as if started in this directory")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write debug logs to this file (default $"+logging.EnvLogFile+")")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(stashCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// newGitClient returns a client for the repository selected by -C
func newGitClient() git.GitClient {
	if repoDir != "" {
		return git.NewGitClientInDir(repoDir)
	}
	return git.NewGitClient()
}

// defaultRemoteName returns the remote commands use when none is given
func defaultRemoteName(gitClient git.GitClient) string {
	if name := gitClient.GetConfig(remoteConfigKey); name != "" {
		return name
	}
	return defaultRemote
}

// exitOnError is the common tail of every Run func
func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
