package git

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// DryRun controls whether to actually execute mutation commands
var DryRun = false

type gitClient struct {
	dir string
}

// NewGitClient creates a GitClient operating on the current directory
func NewGitClient() GitClient {
	return &gitClient{}
}

// NewGitClientInDir creates a GitClient operating on the repository at dir
func NewGitClientInDir(dir string) GitClient {
	return &gitClient{dir: dir}
}

func (c *gitClient) command(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	if c.dir != "" {
		cmd.Dir = c.dir
	}
	return cmd
}

// runCmd executes a git command and returns trimmed stdout
func (c *gitClient) runCmd(args ...string) (string, error) {
	log.Debug().Str("dir", c.dir).Msgf("[git] %s", strings.Join(args, " "))

	cmd := c.command(args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", commandError(args, stderr.String(), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// runCmdMayFail runs a command that might fail (returns empty string on error)
func (c *gitClient) runCmdMayFail(args ...string) string {
	out, err := c.runCmd(args...)
	if err != nil {
		log.Debug().Err(err).Msg("[git] ignored failure")
		return ""
	}
	return out
}

// mutate runs a command that changes repository state, honouring DryRun
func (c *gitClient) mutate(args ...string) error {
	if DryRun {
		log.Info().Msgf("[DRY RUN] git %s", strings.Join(args, " "))
		return nil
	}
	_, err := c.runCmd(args...)
	return err
}

func commandError(args []string, stderr string, err error) *CommandError {
	stderr = strings.TrimSpace(stderr)
	ce := &CommandError{
		Args:     args,
		Stderr:   stderr,
		ExitCode: -1,
		Kind:     classify(stderr),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		ce.ExitCode = exitErr.ExitCode()
	}
	return ce
}

// GetRepoRoot returns the root directory of the git repository
func (c *gitClient) GetRepoRoot() (string, error) {
	return c.runCmd("rev-parse", "--show-toplevel")
}

// GetConfig reads a git config value
func (c *gitClient) GetConfig(key string) string {
	return c.runCmdMayFail("config", "--get", key)
}

// GetCommitHash resolves a ref to the commit it points to
func (c *gitClient) GetCommitHash(ref string) (string, error) {
	out, err := c.runCmd("rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		return "", asNotFound(err)
	}
	if out == "" {
		return "", &CommandError{Args: []string{"rev-parse", ref}, Kind: KindNotFound}
	}
	return out, nil
}

// GetCurrentBranch returns the name of the currently checked out branch,
// or an empty string when HEAD is detached
func (c *gitClient) GetCurrentBranch() (string, error) {
	return c.runCmd("branch", "--show-current")
}

// ListBranches returns the branches in scope
func (c *gitClient) ListBranches(scope BranchScope) ([]BranchInfo, error) {
	args := []string{"for-each-ref", "--format=" + branchFormat}
	switch scope {
	case ScopeLocal:
		args = append(args, "refs/heads")
	case ScopeRemote:
		args = append(args, "refs/remotes")
	default:
		args = append(args, "refs/heads", "refs/remotes")
	}

	output, err := c.runCmd(args...)
	if err != nil {
		return nil, err
	}
	return parseBranches(output)
}

// CreateBranch creates a branch at from (HEAD when empty) without checking it out
func (c *gitClient) CreateBranch(name, from string) error {
	args := []string{"branch", name}
	if from != "" {
		args = append(args, from)
	}
	return c.mutate(args...)
}

// CheckoutBranch switches to the specified ref
func (c *gitClient) CheckoutBranch(ref string) error {
	return c.mutate("checkout", ref)
}

// DeleteBranch deletes a branch safely (equivalent to git branch -d)
// This will fail if the branch has unmerged commits
func (c *gitClient) DeleteBranch(name string) error {
	return c.mutate("branch", "-d", name)
}

// DeleteBranchForce force deletes a branch (equivalent to git branch -D)
func (c *gitClient) DeleteBranchForce(name string) error {
	return c.mutate("branch", "-D", name)
}

// DeleteRemoteBranch deletes the remote-tracking branch <remote>/<name>
func (c *gitClient) DeleteRemoteBranch(remote, name string) error {
	return c.mutate("branch", "-r", "-D", remote+"/"+name)
}

// BranchContains reports whether commit is reachable from branch
func (c *gitClient) BranchContains(commit, branch string, remote bool) (bool, error) {
	args := []string{"branch", "--format=%(refname)"}
	if remote {
		args = append(args, "-r")
	}
	args = append(args, "--contains", commit, "--list", branch)

	output, err := c.runCmd(args...)
	if err != nil {
		return false, err
	}
	return output != "", nil
}

// UpdateRef points ref at commit
func (c *gitClient) UpdateRef(ref, commit string) error {
	return c.mutate("update-ref", ref, commit)
}

// Merge merges ref into the current branch
func (c *gitClient) Merge(ref, message string) error {
	args := []string{"merge", "--no-edit"}
	if message != "" {
		args = append(args, "-m", message)
	}
	args = append(args, ref)
	return c.mutate(args...)
}

// CommitAll commits every tracked change
func (c *gitClient) CommitAll(message string) error {
	return c.mutate("commit", "--all", "-m", message)
}

// ResetHard resets the index and working tree to ref
func (c *gitClient) ResetHard(ref string) error {
	return c.mutate("reset", "--hard", ref)
}

// Archive writes the tree of ref to dest
func (c *gitClient) Archive(ref, dest string, opts ArchiveOptions) error {
	format := opts.Format
	if format == "" {
		format = "tar"
	}
	gzipped := format == "tgz" || format == "tar.gz"
	if gzipped {
		format = "tar"
	}

	args := []string{"archive", "--format=" + format}
	if opts.Prefix != "" {
		args = append(args, "--prefix="+opts.Prefix)
	}
	args = append(args, ref)
	if opts.Path != "" {
		args = append(args, opts.Path)
	}

	if DryRun {
		log.Info().Msgf("[DRY RUN] git %s > %s", strings.Join(args, " "), dest)
		return nil
	}
	log.Debug().Str("dir", c.dir).Msgf("[git] %s > %s", strings.Join(args, " "), dest)

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer f.Close()

	var out io.Writer = f
	var gz *gzip.Writer
	if gzipped {
		gz = gzip.NewWriter(f)
		out = gz
	}

	cmd := c.command(args...)
	var stderr bytes.Buffer
	cmd.Stdout = out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		_ = os.Remove(dest)
		return commandError(args, stderr.String(), err)
	}

	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("failed to finish archive: %w", err)
		}
	}
	return f.Close()
}

// GetRemoteConfig returns the url and fetch refspec of a remote
func (c *gitClient) GetRemoteConfig(name string) (RemoteConfig, error) {
	output, err := c.runCmd("config", "--get-regexp", remoteConfigPattern(name))
	if err != nil {
		var ce *CommandError
		// git config exits 1 when no key matches
		if errors.As(err, &ce) && ce.ExitCode == 1 {
			ce.Kind = KindNotFound
			ce.Stderr = fmt.Sprintf("no such remote '%s'", name)
		}
		return RemoteConfig{}, err
	}

	cfg := parseRemoteConfig(name, output)
	if cfg.URL == "" && cfg.Fetch == "" {
		return RemoteConfig{}, &CommandError{
			Args:   []string{"config", "--get-regexp", remoteConfigPattern(name)},
			Stderr: fmt.Sprintf("no such remote '%s'", name),
			Kind:   KindNotFound,
		}
	}
	return cfg, nil
}

// ListRemotes returns the configured remote names
func (c *gitClient) ListRemotes() ([]string, error) {
	output, err := c.runCmd("remote")
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// AddRemote configures a new remote
func (c *gitClient) AddRemote(name, url string) error {
	return c.mutate("remote", "add", name, url)
}

// RemoveRemote removes a remote and its remote-tracking branches
func (c *gitClient) RemoveRemote(name string) error {
	return c.mutate("remote", "remove", name)
}

// Fetch fetches from remote
func (c *gitClient) Fetch(remote string, opts FetchOptions) error {
	args := []string{"fetch"}
	if opts.Prune {
		args = append(args, "--prune")
	}
	if opts.Tags {
		args = append(args, "--tags")
	}
	if opts.Depth > 0 {
		args = append(args, "--depth="+strconv.Itoa(opts.Depth))
	}
	args = append(args, remote)
	if opts.Ref != "" {
		args = append(args, opts.Ref)
	}
	return c.mutate(args...)
}

// ListStashes returns the stash list, newest first
func (c *gitClient) ListStashes() ([]StashEntry, error) {
	output, err := c.runCmd("stash", "list", "--format="+stashFormat)
	if err != nil {
		return nil, err
	}
	return parseStashes(output)
}

// Stash stashes the current changes
func (c *gitClient) Stash(message string) error {
	args := []string{"stash", "push"}
	if message != "" {
		args = append(args, "-m", message)
	}
	return c.mutate(args...)
}

// StashApply applies stash@{index} without dropping it
func (c *gitClient) StashApply(index int) error {
	return c.mutate("stash", "apply", fmt.Sprintf("stash@{%d}", index))
}

// StashPop pops the most recent stash
func (c *gitClient) StashPop() error {
	return c.mutate("stash", "pop")
}
