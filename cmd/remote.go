package cmd

import (
	"fmt"
	"io"

	"github.com/javoire/refkit/internal/git"
	"github.com/javoire/refkit/internal/refs"
	"github.com/javoire/refkit/internal/spinner"
	"github.com/javoire/refkit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	fetchPrune bool
	fetchTags  bool
	fetchDepth int
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Inspect and change remotes",
	Long: `Inspect and change the remotes of the repository.

Commands that take an optional remote default to the value of git config
` + remoteConfigKey + `, or ` + defaultRemote + ` when it is unset.`,
}

var remoteShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a remote and its remote-tracking branches (all remotes without a name)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		exitOnError(runRemoteShow(newGitClient(), cmd.OutOrStdout(), name))
	},
}

var remoteFetchCmd = &cobra.Command{
	Use:   "fetch [name]",
	Short: "Fetch from a remote",
	Example: `  # Fetch the default remote and drop stale remote-tracking branches
  refkit remote fetch --prune

  # Shallow fetch of upstream
  refkit remote fetch upstream --depth 1`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		opts := git.FetchOptions{Prune: fetchPrune, Tags: fetchTags, Depth: fetchDepth}
		exitOnError(runRemoteFetch(newGitClient(), name, opts))
	},
}

var remoteMergeCmd = &cobra.Command{
	Use:   "merge [name] [branch]",
	Short: "Merge a remote-tracking branch into the current branch",
	Long: `Merge refs/remotes/<name>/<branch> into the current branch.

Without a branch, the remote-tracking branch with the current branch's name is merged.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		name, branch := "", ""
		if len(args) > 0 {
			name = args[0]
		}
		if len(args) > 1 {
			branch = args[1]
		}
		exitOnError(runRemoteMerge(newGitClient(), cmd.OutOrStdout(), name, branch))
	},
}

var remoteRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a remote and its remote-tracking branches",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runRemoteRemove(newGitClient(), cmd.OutOrStdout(), args[0]))
	},
}

var remoteAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a remote",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runRemoteAdd(newGitClient(), cmd.OutOrStdout(), args[0], args[1]))
	},
}

func init() {
	remoteFetchCmd.Flags().BoolVarP(&fetchPrune, "prune", "p", false, "Remove remote-tracking branches that no longer exist on the remote")
	remoteFetchCmd.Flags().BoolVarP(&fetchTags, "tags", "t", false, "Fetch all tags")
	remoteFetchCmd.Flags().IntVar(&fetchDepth, "depth", 0, "Limit fetching to this many commits")

	remoteCmd.AddCommand(remoteShowCmd)
	remoteCmd.AddCommand(remoteFetchCmd)
	remoteCmd.AddCommand(remoteMergeCmd)
	remoteCmd.AddCommand(remoteRemoveCmd)
	remoteCmd.AddCommand(remoteAddCmd)
}

// openRemote resolves name, falling back to the configured default remote
func openRemote(gitClient git.GitClient, name string) (*refs.Remote, error) {
	if name == "" {
		name = defaultRemoteName(gitClient)
	}
	remote, err := refs.Open(gitClient).Remote(name)
	if err != nil {
		if git.IsNotFound(err) {
			return nil, fmt.Errorf("remote %s is not configured: %w", name, err)
		}
		return nil, fmt.Errorf("failed to read remote %s: %w", name, err)
	}
	return remote, nil
}

func runRemoteShow(gitClient git.GitClient, out io.Writer, name string) error {
	repo := refs.Open(gitClient)

	var remotes []*refs.Remote
	if name == "" {
		all, err := repo.Remotes()
		if err != nil {
			return fmt.Errorf("failed to list remotes: %w", err)
		}
		if len(all) == 0 {
			fmt.Fprintln(out, "No remotes configured.")
			return nil
		}
		remotes = all
	} else {
		remote, err := openRemote(gitClient, name)
		if err != nil {
			return err
		}
		remotes = []*refs.Remote{remote}
	}

	branches, err := repo.RemoteBranches()
	if err != nil {
		return err
	}

	for i, remote := range remotes {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s\n", ui.Remote(remote.Name()))
		fmt.Fprintf(out, "  url:   %s\n", remote.URL())
		fmt.Fprintf(out, "  fetch: %s\n", remote.FetchRefspec())

		for _, b := range branches.All() {
			if b.Remote() == nil || b.Remote().Name() != remote.Name() {
				continue
			}
			info, _ := branches.Info(b)
			fmt.Fprintf(out, "  %s %s\n", ui.RemoteBranch(remote.Name(), b.Name()), ui.Commit(info.Commit))
		}
	}
	return nil
}

func runRemoteFetch(gitClient git.GitClient, name string, opts git.FetchOptions) error {
	remote, err := openRemote(gitClient, name)
	if err != nil {
		return err
	}

	return spinner.WrapWithSuccess(
		fmt.Sprintf("Fetching %s...", remote.Name()),
		fmt.Sprintf("Fetched %s", remote.Name()),
		func() error {
			if err := remote.Fetch(opts); err != nil {
				return fmt.Errorf("failed to fetch %s: %w", remote.Name(), err)
			}
			return nil
		},
	)
}

func runRemoteMerge(gitClient git.GitClient, out io.Writer, name, branch string) error {
	remote, err := openRemote(gitClient, name)
	if err != nil {
		return err
	}
	if err := remote.Merge(branch); err != nil {
		return fmt.Errorf("failed to merge from %s: %w", remote.Name(), err)
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Merged from %s", ui.Remote(remote.Name()))))
	return nil
}

func runRemoteRemove(gitClient git.GitClient, out io.Writer, name string) error {
	remote, err := openRemote(gitClient, name)
	if err != nil {
		return err
	}
	if err := remote.Remove(); err != nil {
		return fmt.Errorf("failed to remove remote %s: %w", name, err)
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Removed remote %s", ui.Remote(name))))
	return nil
}

func runRemoteAdd(gitClient git.GitClient, out io.Writer, name, url string) error {
	// The remote cannot be read back when the add was only logged
	if git.DryRun {
		if err := gitClient.AddRemote(name, url); err != nil {
			return fmt.Errorf("failed to add remote %s: %w", name, err)
		}
		fmt.Fprintln(out, ui.DryRun("would add remote %s (%s)", name, url))
		return nil
	}

	remote, err := refs.Open(gitClient).AddRemote(name, url)
	if err != nil {
		if git.IsAlreadyExists(err) {
			return fmt.Errorf("remote %s already exists: %w", name, err)
		}
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Added remote %s (%s)", ui.Remote(remote.Name()), remote.URL())))
	return nil
}
