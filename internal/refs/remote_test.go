package refs

import (
	"testing"

	"github.com/javoire/refkit/internal/git"
	"github.com/javoire/refkit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRemote(t *testing.T) {
	testutil.SetupTest()
	defer testutil.TeardownTest()

	t.Run("configured", func(t *testing.T) {
		mockGit := new(testutil.MockGitClient)
		mockGit.OnRemote("working", "../working.git")

		r, err := NewRemote(mockGit, "working")
		require.NoError(t, err)
		assert.Equal(t, "working", r.Name())
		assert.Equal(t, "working", r.String())
		assert.Equal(t, "../working.git", r.URL())
		assert.Equal(t, "+refs/heads/*:refs/remotes/working/*", r.FetchRefspec())
	})

	t.Run("not configured", func(t *testing.T) {
		mockGit := new(testutil.MockGitClient)
		mockGit.On("GetRemoteConfig", "nope").Return(git.RemoteConfig{}, testutil.NotFoundError("no such remote 'nope'"))

		r, err := NewRemote(mockGit, "nope")
		assert.Nil(t, r)
		assert.ErrorIs(t, err, git.ErrNotFound)
	})

	t.Run("snapshot", func(t *testing.T) {
		mockGit := new(testutil.MockGitClient)
		mockGit.OnRemote("origin", "old-url").Once()

		r, err := NewRemote(mockGit, "origin")
		require.NoError(t, err)
		assert.Equal(t, "old-url", r.URL())
		assert.Equal(t, "old-url", r.URL())
		mockGit.AssertNumberOfCalls(t, "GetRemoteConfig", 1)
	})
}

func TestRemoteFetch(t *testing.T) {
	testutil.SetupTest()
	defer testutil.TeardownTest()

	opts := git.FetchOptions{Prune: true, Depth: 10}

	mockGit := new(testutil.MockGitClient)
	mockGit.OnRemote("origin", "git@example.com:repo.git")
	mockGit.On("Fetch", "origin", opts).Return(nil)

	r, err := NewRemote(mockGit, "origin")
	require.NoError(t, err)
	require.NoError(t, r.Fetch(opts))
	mockGit.AssertExpectations(t)
}

func TestRemoteMerge(t *testing.T) {
	testutil.SetupTest()
	defer testutil.TeardownTest()

	t.Run("named branch", func(t *testing.T) {
		mockGit := new(testutil.MockGitClient)
		mockGit.OnRemote("origin", "git@example.com:repo.git")
		mockGit.On("Merge", "refs/remotes/origin/develop", "").Return(nil)

		r, err := NewRemote(mockGit, "origin")
		require.NoError(t, err)
		require.NoError(t, r.Merge("develop"))
		mockGit.AssertNotCalled(t, "GetCurrentBranch")
	})

	t.Run("defaults to current branch", func(t *testing.T) {
		mockGit := new(testutil.MockGitClient)
		mockGit.OnRemote("origin", "git@example.com:repo.git")
		mockGit.On("GetCurrentBranch").Return("feature", nil)
		mockGit.On("Merge", "refs/remotes/origin/feature", "").Return(nil)

		r, err := NewRemote(mockGit, "origin")
		require.NoError(t, err)
		require.NoError(t, r.Merge(""))
		mockGit.AssertExpectations(t)
	})

	t.Run("detached head", func(t *testing.T) {
		mockGit := new(testutil.MockGitClient)
		mockGit.OnRemote("origin", "git@example.com:repo.git")
		mockGit.On("GetCurrentBranch").Return("", nil)

		r, err := NewRemote(mockGit, "origin")
		require.NoError(t, err)
		assert.ErrorIs(t, r.Merge(""), ErrDetachedHead)
	})
}

func TestRemoteBranch(t *testing.T) {
	testutil.SetupTest()
	defer testutil.TeardownTest()

	mockGit := new(testutil.MockGitClient)
	mockGit.OnRemote("origin", "git@example.com:repo.git")
	mockGit.On("GetCurrentBranch").Return("master", nil)

	r, err := NewRemote(mockGit, "origin")
	require.NoError(t, err)

	b, err := r.Branch("develop")
	require.NoError(t, err)
	assert.Equal(t, "refs/remotes/origin/develop", b.FullRef())
	assert.Equal(t, "develop", b.Name())
	assert.Equal(t, "origin", b.Remote().Name())

	current, err := r.Branch("")
	require.NoError(t, err)
	assert.Equal(t, "refs/remotes/origin/master", current.FullRef())

	again, err := r.Branch("develop")
	require.NoError(t, err)
	assert.NotSame(t, b, again)
}

func TestRemoteRemove(t *testing.T) {
	testutil.SetupTest()
	defer testutil.TeardownTest()

	mockGit := new(testutil.MockGitClient)
	mockGit.OnRemote("origin", "git@example.com:repo.git")
	mockGit.On("RemoveRemote", "origin").Return(nil)

	r, err := NewRemote(mockGit, "origin")
	require.NoError(t, err)
	require.NoError(t, r.Remove())
	mockGit.AssertExpectations(t)
}
