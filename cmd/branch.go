package cmd

import (
	"fmt"
	"io"

	"github.com/javoire/refkit/internal/git"
	"github.com/javoire/refkit/internal/refs"
	"github.com/javoire/refkit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	listLocal     bool
	listRemote    bool
	mergeMessage  string
	archiveFormat string
	archivePrefix string
)

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Inspect and change branches",
	Long: `Inspect and change local and remote-tracking branches.

A branch name may be a short local name (feature), or a full remote-tracking ref
(refs/remotes/origin/feature).`,
}

var branchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List branches",
	Example: `  # List local and remote-tracking branches
  refkit branch list

  # Only remote-tracking branches
  refkit branch list --remote`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		scope := git.ScopeAll
		if listLocal {
			scope = git.ScopeLocal
		} else if listRemote {
			scope = git.ScopeRemote
		}
		exitOnError(runBranchList(newGitClient(), cmd.OutOrStdout(), scope))
	},
}

var branchCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a branch at HEAD (no-op if it exists)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runBranchCreate(newGitClient(), cmd.OutOrStdout(), args[0]))
	},
}

var branchCheckoutCmd = &cobra.Command{
	Use:   "checkout <name>",
	Short: "Switch to a branch, creating it at HEAD if needed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runBranchCheckout(newGitClient(), cmd.OutOrStdout(), args[0]))
	},
}

var branchDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Force delete a branch",
	Long: `Force delete a branch, even if it has unmerged commits.

Deleting the checked out branch or a branch that does not exist fails.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runBranchDelete(newGitClient(), cmd.OutOrStdout(), args[0]))
	},
}

var branchCurrentCmd = &cobra.Command{
	Use:   "current [name]",
	Short: "Print the current branch, or report whether name is checked out",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		exitOnError(runBranchCurrent(newGitClient(), cmd.OutOrStdout(), name))
	},
}

var branchContainsCmd = &cobra.Command{
	Use:   "contains <name> <commit>",
	Short: "Report whether a commit is reachable from a branch",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runBranchContains(newGitClient(), cmd.OutOrStdout(), args[0], args[1]))
	},
}

var branchUpdateRefCmd = &cobra.Command{
	Use:   "update-ref <name> <commit>",
	Short: "Point a branch at a commit",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runBranchUpdateRef(newGitClient(), cmd.OutOrStdout(), args[0], args[1]))
	},
}

var branchMergeCmd = &cobra.Command{
	Use:   "merge <name> [other]",
	Short: "Merge branches",
	Long: `With one branch, merge it into the current branch.

With two, check out <name>, merge <other> into it and return to the branch
that was checked out before.`,
	Example: `  # Merge feature into the current branch
  refkit branch merge feature

  # Merge main into feature without leaving the current branch
  refkit branch merge feature main -m "sync with main"`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		other := ""
		if len(args) > 1 {
			other = args[1]
		}
		exitOnError(runBranchMerge(newGitClient(), cmd.OutOrStdout(), args[0], other, mergeMessage))
	},
}

var branchCommitCmd = &cobra.Command{
	Use:   "commit <name>",
	Short: "Print the commit a branch points to",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runBranchCommit(newGitClient(), cmd.OutOrStdout(), args[0]))
	},
}

var branchArchiveCmd = &cobra.Command{
	Use:   "archive <name> <file>",
	Short: "Write the tree of a branch to an archive",
	Example: `  # Gzipped tarball with every path under project/
  refkit branch archive main project.tgz --format tgz --prefix project/`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		opts := git.ArchiveOptions{Format: archiveFormat, Prefix: archivePrefix}
		exitOnError(runBranchArchive(newGitClient(), cmd.OutOrStdout(), args[0], args[1], opts))
	},
}

func init() {
	branchListCmd.Flags().BoolVar(&listLocal, "local", false, "Only list local branches")
	branchListCmd.Flags().BoolVar(&listRemote, "remote", false, "Only list remote-tracking branches")
	branchListCmd.MarkFlagsMutuallyExclusive("local", "remote")

	branchMergeCmd.Flags().StringVarP(&mergeMessage, "message", "m", "", "Merge commit message")

	branchArchiveCmd.Flags().StringVar(&archiveFormat, "format", "tar", "Archive format (tar, zip, tgz)")
	branchArchiveCmd.Flags().StringVar(&archivePrefix, "prefix", "", "Prepend this directory to every path")

	branchCmd.AddCommand(branchListCmd)
	branchCmd.AddCommand(branchCreateCmd)
	branchCmd.AddCommand(branchCheckoutCmd)
	branchCmd.AddCommand(branchDeleteCmd)
	branchCmd.AddCommand(branchCurrentCmd)
	branchCmd.AddCommand(branchContainsCmd)
	branchCmd.AddCommand(branchUpdateRefCmd)
	branchCmd.AddCommand(branchMergeCmd)
	branchCmd.AddCommand(branchCommitCmd)
	branchCmd.AddCommand(branchArchiveCmd)
}

func runBranchList(gitClient git.GitClient, out io.Writer, scope git.BranchScope) error {
	repo := refs.Open(gitClient)

	var branches *refs.Branches
	var err error
	switch scope {
	case git.ScopeLocal:
		branches, err = repo.LocalBranches()
	case git.ScopeRemote:
		branches, err = repo.RemoteBranches()
	default:
		branches, err = repo.Branches()
	}
	if err != nil {
		return err
	}

	if branches.Len() == 0 {
		fmt.Fprintln(out, "No branches found.")
		return nil
	}

	for _, b := range branches.All() {
		info, _ := branches.Info(b)

		marker := ui.NotCurrentMarker()
		if info.Current {
			marker = ui.CurrentBranchMarker()
		}

		name := ui.Branch(b.Name())
		if b.IsRemote() {
			name = ui.RemoteBranch(info.Remote, b.Name())
		}

		line := fmt.Sprintf("%s %s %s", marker, name, ui.Commit(info.Commit))
		if info.CheckedOut() && !info.Current {
			line += " " + ui.Worktree(info.WorktreePath)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

// openBranch resolves a branch name given on the command line
func openBranch(gitClient git.GitClient, name string) (*refs.Branch, error) {
	b, err := refs.Open(gitClient).Branch(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open branch %s: %w", name, err)
	}
	return b, nil
}

func runBranchCreate(gitClient git.GitClient, out io.Writer, name string) error {
	b, err := openBranch(gitClient, name)
	if err != nil {
		return err
	}
	if err := b.Create(); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Branch %s is ready", ui.Branch(b.Name()))))
	return nil
}

func runBranchCheckout(gitClient git.GitClient, out io.Writer, name string) error {
	b, err := openBranch(gitClient, name)
	if err != nil {
		return err
	}
	if err := b.Checkout(); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", name, err)
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Switched to %s", ui.Branch(b.Name()))))
	return nil
}

func runBranchDelete(gitClient git.GitClient, out io.Writer, name string) error {
	b, err := openBranch(gitClient, name)
	if err != nil {
		return err
	}
	if err := b.Delete(); err != nil {
		if git.IsNotFound(err) {
			return fmt.Errorf("branch %s does not exist: %w", name, err)
		}
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Deleted %s", ui.Branch(b.FullRef()))))
	return nil
}

func runBranchCurrent(gitClient git.GitClient, out io.Writer, name string) error {
	if name == "" {
		current, err := refs.Open(gitClient).CurrentBranch()
		if err != nil {
			return fmt.Errorf("failed to get current branch: %w", err)
		}
		if current == "" {
			return refs.ErrDetachedHead
		}
		fmt.Fprintln(out, current)
		return nil
	}

	b, err := openBranch(gitClient, name)
	if err != nil {
		return err
	}
	current, err := b.Current()
	if err != nil {
		return fmt.Errorf("failed to get current branch: %w", err)
	}
	fmt.Fprintln(out, current)
	return nil
}

func runBranchContains(gitClient git.GitClient, out io.Writer, name, commit string) error {
	b, err := openBranch(gitClient, name)
	if err != nil {
		return err
	}
	ok, err := b.Contains(commit)
	if err != nil {
		return fmt.Errorf("failed to check whether %s contains %s: %w", name, commit, err)
	}
	fmt.Fprintln(out, ok)
	return nil
}

func runBranchUpdateRef(gitClient git.GitClient, out io.Writer, name, commit string) error {
	b, err := openBranch(gitClient, name)
	if err != nil {
		return err
	}
	if err := b.UpdateRef(commit); err != nil {
		return fmt.Errorf("failed to update %s: %w", name, err)
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("%s now points at %s", ui.Branch(b.Name()), ui.Commit(commit))))
	return nil
}

func runBranchMerge(gitClient git.GitClient, out io.Writer, name, other, message string) error {
	b, err := openBranch(gitClient, name)
	if err != nil {
		return err
	}

	if other == "" {
		if err := b.Merge(nil, message); err != nil {
			return fmt.Errorf("failed to merge %s: %w", name, err)
		}
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Merged %s", ui.Branch(b.Name()))))
		return nil
	}

	o, err := openBranch(gitClient, other)
	if err != nil {
		return err
	}
	if err := b.Merge(o, message); err != nil {
		return fmt.Errorf("failed to merge %s into %s: %w", other, name, err)
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Merged %s into %s", ui.Branch(o.Name()), ui.Branch(b.Name()))))
	return nil
}

func runBranchCommit(gitClient git.GitClient, out io.Writer, name string) error {
	b, err := openBranch(gitClient, name)
	if err != nil {
		return err
	}
	commit, err := b.Commit()
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", name, err)
	}
	fmt.Fprintln(out, commit)
	return nil
}

func runBranchArchive(gitClient git.GitClient, out io.Writer, name, dest string, opts git.ArchiveOptions) error {
	b, err := openBranch(gitClient, name)
	if err != nil {
		return err
	}
	if err := b.Archive(dest, opts); err != nil {
		return err
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Wrote %s to %s", ui.Branch(b.Name()), dest)))
	return nil
}
