package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Repo is a throwaway repository on disk, built with go-git so fixtures do
// not depend on the git binary under test
type Repo struct {
	Dir  string
	repo *gogit.Repository
	t    *testing.T
}

// RequireGit skips the test when no git binary is available
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not found in PATH")
	}
}

// NewRepo initializes a repository whose initial branch is master and whose
// local config carries a committer identity
func NewRepo(t *testing.T) *Repo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName("master"),
		},
	})
	require.NoError(t, err)

	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "Test User"
	cfg.User.Email = "test@example.com"
	require.NoError(t, repo.SetConfig(cfg))

	return &Repo{Dir: dir, repo: repo, t: t}
}

// Commit writes file with content, stages it and commits on the current branch
func (r *Repo) Commit(file, content, message string) string {
	r.t.Helper()
	path := filepath.Join(r.Dir, file)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))

	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)
	_, err = wt.Add(file)
	require.NoError(r.t, err)

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(r.t, err)
	return hash.String()
}

// Branch points refs/heads/<name> at commit
func (r *Repo) Branch(name, commit string) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), plumbing.NewHash(commit))
	require.NoError(r.t, r.repo.Storer.SetReference(ref))
}

// RemoteBranch points refs/remotes/<remote>/<name> at commit
func (r *Repo) RemoteBranch(remote, name, commit string) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName(remote, name), plumbing.NewHash(commit))
	require.NoError(r.t, r.repo.Storer.SetReference(ref))
}

// Checkout switches the worktree to an existing local branch
func (r *Repo) Checkout(name string) {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)
	require.NoError(r.t, wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	}))
}

// AddRemote configures a remote with the default fetch refspec
func (r *Repo) AddRemote(name, url string) {
	r.t.Helper()
	_, err := r.repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	require.NoError(r.t, err)
}

// Head returns the commit HEAD points to, re-read from disk
func (r *Repo) Head() string {
	r.t.Helper()
	repo, err := gogit.PlainOpen(r.Dir)
	require.NoError(r.t, err)
	head, err := repo.Head()
	require.NoError(r.t, err)
	return head.Hash().String()
}

// Ref returns the commit a full ref name points to, or "" if it does not exist
func (r *Repo) Ref(name string) string {
	r.t.Helper()
	repo, err := gogit.PlainOpen(r.Dir)
	require.NoError(r.t, err)
	ref, err := repo.Reference(plumbing.ReferenceName(name), true)
	if err != nil {
		return ""
	}
	return ref.Hash().String()
}

// IsAncestor reports whether ancestor is reachable from the commit descendant
func (r *Repo) IsAncestor(ancestor, descendant string) bool {
	r.t.Helper()
	repo, err := gogit.PlainOpen(r.Dir)
	require.NoError(r.t, err)
	a, err := repo.CommitObject(plumbing.NewHash(ancestor))
	require.NoError(r.t, err)
	d, err := repo.CommitObject(plumbing.NewHash(descendant))
	require.NoError(r.t, err)
	ok, err := a.IsAncestor(d)
	require.NoError(r.t, err)
	return ok
}
