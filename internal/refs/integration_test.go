package refs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/javoire/refkit/internal/git"
	"github.com/javoire/refkit/internal/refs"
	"github.com/javoire/refkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRepo(t *testing.T) (*testutil.Repo, *refs.Repository) {
	t.Helper()
	testutil.RequireGit(t)
	testutil.SetupTest()
	t.Cleanup(testutil.TeardownTest)

	repo := testutil.NewRepo(t)
	repo.Commit("file.txt", "hello world", "Initial commit")
	return repo, refs.Open(git.NewGitClientInDir(repo.Dir))
}

func branch(t *testing.T, repo *refs.Repository, name string) *refs.Branch {
	t.Helper()
	b, err := repo.Branch(name)
	require.NoError(t, err)
	return b
}

func countNamed(t *testing.T, repo *refs.Repository, name string) int {
	t.Helper()
	branches, err := repo.LocalBranches()
	require.NoError(t, err)
	n := 0
	for _, b := range branches.All() {
		if b.Name() == name {
			n++
		}
	}
	return n
}

func TestBranchCreateAndSwitch(t *testing.T) {
	_, repo := openRepo(t)

	current, err := branch(t, repo, "new_branch").Current()
	require.NoError(t, err)
	assert.False(t, current)

	require.NoError(t, branch(t, repo, "other_branch").Create())
	require.NoError(t, branch(t, repo, "other_branch").Create())
	current, err = branch(t, repo, "other_branch").Current()
	require.NoError(t, err)
	assert.False(t, current)

	require.NoError(t, branch(t, repo, "new_branch").Checkout())
	current, err = branch(t, repo, "new_branch").Current()
	require.NoError(t, err)
	assert.True(t, current)
	current, err = branch(t, repo, "master").Current()
	require.NoError(t, err)
	assert.False(t, current)
	assert.Equal(t, 1, countNamed(t, repo, "new_branch"))

	err = branch(t, repo, "new_branch").Delete()
	assert.ErrorIs(t, err, git.ErrOperationFailed)
	assert.Equal(t, 1, countNamed(t, repo, "new_branch"))

	require.NoError(t, branch(t, repo, "master").Checkout())
	require.NoError(t, branch(t, repo, "new_branch").Delete())
	assert.Equal(t, 0, countNamed(t, repo, "new_branch"))

	err = branch(t, repo, "new_branch").Delete()
	assert.ErrorIs(t, err, git.ErrOperationFailed)
}

func TestBranchContainsScenario(t *testing.T) {
	fixture, repo := openRepo(t)

	require.NoError(t, branch(t, repo, "other").Create())
	x := fixture.Commit("file.txt", "rev 2", "Commit X")
	require.NoError(t, branch(t, repo, "feature").Create())

	ok, err := branch(t, repo, "feature").Contains(x)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = branch(t, repo, "other").Contains(x)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBranchUpdateRefScenario(t *testing.T) {
	fixture, repo := openRepo(t)

	require.NoError(t, branch(t, repo, "testing").Create())
	head := fixture.Commit("file.txt", "rev 2", "rev 2")

	require.NoError(t, branch(t, repo, "testing").UpdateRef(head))
	assert.Equal(t, head, fixture.Ref("refs/heads/testing"))
}

func TestRemoteTrackingUpdateRef(t *testing.T) {
	fixture, repo := openRepo(t)
	fixture.AddRemote("origin", "../origin.git")
	head := fixture.Head()

	tracking, err := repo.Branch("refs/remotes/origin/master")
	require.NoError(t, err)
	require.NoError(t, tracking.UpdateRef(head))

	assert.Equal(t, head, fixture.Ref("refs/remotes/origin/master"))
}

func TestBranchCommitIsSnapshot(t *testing.T) {
	fixture, repo := openRepo(t)
	first := fixture.Head()

	b := branch(t, repo, "master")
	commit, err := b.Commit()
	require.NoError(t, err)
	assert.Equal(t, first, commit)

	second := fixture.Commit("file.txt", "rev 2", "rev 2")

	stale, err := b.Commit()
	require.NoError(t, err)
	assert.Equal(t, first, stale)

	fresh, err := branch(t, repo, "master").Commit()
	require.NoError(t, err)
	assert.Equal(t, second, fresh)
}

func TestBranchMergeScenario(t *testing.T) {
	fixture, repo := openRepo(t)

	require.NoError(t, branch(t, repo, "A").Create())
	require.NoError(t, branch(t, repo, "B").Checkout())
	bTip := fixture.Commit("b.txt", "from B", "B commit")
	require.NoError(t, branch(t, repo, "A").Checkout())

	a := branch(t, repo, "A")
	require.NoError(t, a.Merge(branch(t, repo, "B"), "m"))

	current, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "A", current)

	aTip, err := branch(t, repo, "A").Commit()
	require.NoError(t, err)
	assert.True(t, fixture.IsAncestor(bTip, aTip))
}

func TestBranchMergeFromAnotherBranch(t *testing.T) {
	fixture, repo := openRepo(t)

	require.NoError(t, branch(t, repo, "A").Create())
	require.NoError(t, branch(t, repo, "B").Checkout())
	bTip := fixture.Commit("b.txt", "from B", "B commit")
	require.NoError(t, branch(t, repo, "master").Checkout())

	require.NoError(t, branch(t, repo, "A").Merge(branch(t, repo, "B"), "m"))

	current, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", current)

	aTip, err := branch(t, repo, "A").Commit()
	require.NoError(t, err)
	assert.True(t, fixture.IsAncestor(bTip, aTip))
	assert.False(t, fixture.IsAncestor(bTip, fixture.Head()))
}

func TestInBranchScenario(t *testing.T) {
	fixture, repo := openRepo(t)
	before := fixture.Head()
	path := filepath.Join(fixture.Dir, "file.txt")

	work := branch(t, repo, "work")

	err := work.InBranch("discarded", func() (bool, error) {
		return false, os.WriteFile(path, []byte("discard me"), 0o644)
	})
	require.NoError(t, err)

	current, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", current)
	assert.Equal(t, before, fixture.Head())
	assert.Equal(t, before, fixture.Ref("refs/heads/work"))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))

	err = work.InBranch("kept", func() (bool, error) {
		return true, os.WriteFile(path, []byte("keep me"), 0o644)
	})
	require.NoError(t, err)

	current, err = repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", current)
	assert.Equal(t, before, fixture.Head())
	assert.NotEqual(t, before, fixture.Ref("refs/heads/work"))
}

func TestRemoteScenario(t *testing.T) {
	fixture, repo := openRepo(t)

	_, err := repo.Remote("working")
	assert.ErrorIs(t, err, git.ErrNotFound)

	fixture.AddRemote("working", "../working.git")
	fixture.RemoteBranch("working", "master", fixture.Head())

	remote, err := repo.Remote("working")
	require.NoError(t, err)
	assert.Equal(t, "../working.git", remote.URL())
	assert.Equal(t, "+refs/heads/*:refs/remotes/working/*", remote.FetchRefspec())

	branches, err := repo.Branches()
	require.NoError(t, err)
	tracking := branches.Get("refs/remotes/working/master")
	require.NotNil(t, tracking)
	assert.Equal(t, "working", tracking.Remote().Name())

	fromRemote, err := remote.Branch("")
	require.NoError(t, err)
	assert.Equal(t, "refs/remotes/working/master", fromRemote.FullRef())

	require.NoError(t, remote.Merge(""))

	require.NoError(t, remote.Remove())
	_, err = repo.Remote("working")
	assert.ErrorIs(t, err, git.ErrNotFound)
}

func TestTrackingRefLeavesLocalNamesakeAlone(t *testing.T) {
	fixture, repo := openRepo(t)
	fixture.AddRemote("origin", "../origin.git")
	local := fixture.Head()
	fixture.Branch("feature", local)
	newer := fixture.Commit("file.txt", "rev 2", "rev 2")

	tracking, err := refs.NewBranch(repo.Client(), "", "refs/remotes/origin/feature")
	require.NoError(t, err)

	err = tracking.Delete()
	assert.ErrorIs(t, err, git.ErrOperationFailed)
	assert.Equal(t, local, fixture.Ref("refs/heads/feature"))

	require.NoError(t, tracking.UpdateRef(newer))
	assert.Equal(t, newer, fixture.Ref("refs/remotes/origin/feature"))
	assert.Equal(t, local, fixture.Ref("refs/heads/feature"))

	require.NoError(t, tracking.Delete())
	assert.Empty(t, fixture.Ref("refs/remotes/origin/feature"))
	assert.Equal(t, local, fixture.Ref("refs/heads/feature"))
}
