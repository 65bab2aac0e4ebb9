package git

// GitClient defines the interface for all git operations
type GitClient interface {
	GetRepoRoot() (string, error)
	GetConfig(key string) string

	// Refs and branches
	GetCommitHash(ref string) (string, error)
	GetCurrentBranch() (string, error)
	ListBranches(scope BranchScope) ([]BranchInfo, error)
	CreateBranch(name, from string) error
	CheckoutBranch(ref string) error
	DeleteBranch(name string) error
	DeleteBranchForce(name string) error
	DeleteRemoteBranch(remote, name string) error
	BranchContains(commit, branch string, remote bool) (bool, error)
	UpdateRef(ref, commit string) error

	// Working tree
	Merge(ref, message string) error
	CommitAll(message string) error
	ResetHard(ref string) error
	Archive(ref, dest string, opts ArchiveOptions) error

	// Remotes
	GetRemoteConfig(name string) (RemoteConfig, error)
	ListRemotes() ([]string, error)
	AddRemote(name, url string) error
	RemoveRemote(name string) error
	Fetch(remote string, opts FetchOptions) error

	// Stashes
	ListStashes() ([]StashEntry, error)
	Stash(message string) error
	StashApply(index int) error
	StashPop() error
}

// BranchScope selects which branches ListBranches returns
type BranchScope int

const (
	ScopeAll BranchScope = iota
	ScopeLocal
	ScopeRemote
)

func (s BranchScope) String() string {
	switch s {
	case ScopeLocal:
		return "local"
	case ScopeRemote:
		return "remote"
	default:
		return "all"
	}
}

// BranchInfo describes one branch as reported by the engine
type BranchInfo struct {
	// Ref is the name the engine knows the branch by: the short name for local
	// branches, refs/remotes/<remote>/<name> for remote-tracking ones.
	Ref          string
	Name         string
	Remote       string
	Current      bool
	WorktreePath string
	Commit       string
}

// IsRemote reports whether the branch is a remote-tracking branch
func (b BranchInfo) IsRemote() bool {
	return b.Remote != ""
}

// IsLocal reports whether the branch lives under refs/heads
func (b BranchInfo) IsLocal() bool {
	return b.Remote == ""
}

// CheckedOut reports whether the branch is checked out in any worktree
func (b BranchInfo) CheckedOut() bool {
	return b.WorktreePath != ""
}

// RemoteConfig is the configuration of a single remote
type RemoteConfig struct {
	Name  string
	URL   string
	Fetch string
}

// FetchOptions controls git fetch
type FetchOptions struct {
	Prune bool
	Tags  bool
	Depth int
	// Ref limits the fetch to a single refspec
	Ref string
}

// ArchiveOptions controls git archive
type ArchiveOptions struct {
	// Format is tar, zip or tgz (tar.gz). Empty means tar.
	Format string
	Prefix string
	// Path restricts the archive to a subdirectory
	Path string
}

// StashEntry is a single entry of the stash list
type StashEntry struct {
	Index   int
	Ref     string
	Message string
}
