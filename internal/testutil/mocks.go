package testutil

import (
	"github.com/javoire/refkit/internal/git"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of git.GitClient for testing
type MockGitClient struct {
	mock.Mock
}

var _ git.GitClient = (*MockGitClient)(nil)

func (m *MockGitClient) GetRepoRoot() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockGitClient) GetConfig(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockGitClient) GetCommitHash(ref string) (string, error) {
	args := m.Called(ref)
	return args.String(0), args.Error(1)
}

func (m *MockGitClient) GetCurrentBranch() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockGitClient) ListBranches(scope git.BranchScope) ([]git.BranchInfo, error) {
	args := m.Called(scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]git.BranchInfo), args.Error(1)
}

func (m *MockGitClient) CreateBranch(name, from string) error {
	args := m.Called(name, from)
	return args.Error(0)
}

func (m *MockGitClient) CheckoutBranch(ref string) error {
	args := m.Called(ref)
	return args.Error(0)
}

func (m *MockGitClient) DeleteBranch(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockGitClient) DeleteBranchForce(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockGitClient) DeleteRemoteBranch(remote, name string) error {
	args := m.Called(remote, name)
	return args.Error(0)
}

func (m *MockGitClient) BranchContains(commit, branch string, remote bool) (bool, error) {
	args := m.Called(commit, branch, remote)
	return args.Bool(0), args.Error(1)
}

func (m *MockGitClient) UpdateRef(ref, commit string) error {
	args := m.Called(ref, commit)
	return args.Error(0)
}

func (m *MockGitClient) Merge(ref, message string) error {
	args := m.Called(ref, message)
	return args.Error(0)
}

func (m *MockGitClient) CommitAll(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockGitClient) ResetHard(ref string) error {
	args := m.Called(ref)
	return args.Error(0)
}

func (m *MockGitClient) Archive(ref, dest string, opts git.ArchiveOptions) error {
	args := m.Called(ref, dest, opts)
	return args.Error(0)
}

func (m *MockGitClient) GetRemoteConfig(name string) (git.RemoteConfig, error) {
	args := m.Called(name)
	return args.Get(0).(git.RemoteConfig), args.Error(1)
}

func (m *MockGitClient) ListRemotes() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGitClient) AddRemote(name, url string) error {
	args := m.Called(name, url)
	return args.Error(0)
}

func (m *MockGitClient) RemoveRemote(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockGitClient) Fetch(remote string, opts git.FetchOptions) error {
	args := m.Called(remote, opts)
	return args.Error(0)
}

func (m *MockGitClient) ListStashes() ([]git.StashEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]git.StashEntry), args.Error(1)
}

func (m *MockGitClient) Stash(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockGitClient) StashApply(index int) error {
	args := m.Called(index)
	return args.Error(0)
}

func (m *MockGitClient) StashPop() error {
	args := m.Called()
	return args.Error(0)
}

// OnRemote registers a GetRemoteConfig expectation for a configured remote
func (m *MockGitClient) OnRemote(name, url string) *mock.Call {
	return m.On("GetRemoteConfig", name).Return(git.RemoteConfig{
		Name:  name,
		URL:   url,
		Fetch: "+refs/heads/*:refs/remotes/" + name + "/*",
	}, nil)
}
