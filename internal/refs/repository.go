package refs

import (
	"fmt"

	"github.com/javoire/refkit/internal/git"
)

// Repository is the entry point that hands out Branch and Remote facades
type Repository struct {
	client git.GitClient
}

// Open wraps client
func Open(client git.GitClient) *Repository {
	return &Repository{client: client}
}

// Client returns the engine behind the repository
func (r *Repository) Client() git.GitClient {
	return r.client
}

// Branches lists every local and remote-tracking branch
func (r *Repository) Branches() (*Branches, error) {
	return r.listBranches(git.ScopeAll)
}

// LocalBranches lists the branches under refs/heads
func (r *Repository) LocalBranches() (*Branches, error) {
	return r.listBranches(git.ScopeLocal)
}

// RemoteBranches lists the remote-tracking branches
func (r *Repository) RemoteBranches() (*Branches, error) {
	return r.listBranches(git.ScopeRemote)
}

func (r *Repository) listBranches(scope git.BranchScope) (*Branches, error) {
	infos, err := r.client.ListBranches(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s branches: %w", scope, err)
	}
	return newBranches(r.client, infos)
}

// Branch returns a facade for name without checking that it exists.
// An empty name means the current branch; refs/remotes/<remote>/<name>
// yields a remote-tracking branch owned by <remote>.
func (r *Repository) Branch(name string) (*Branch, error) {
	if name == "" {
		current, err := r.CurrentBranch()
		if err != nil {
			return nil, err
		}
		if current == "" {
			return nil, ErrDetachedHead
		}
		name = current
	}

	return NewBranch(r.client, "", name)
}

// CurrentBranch returns the name of the checked out branch, "" when detached
func (r *Repository) CurrentBranch() (string, error) {
	return r.client.GetCurrentBranch()
}

// Remote looks up a configured remote
func (r *Repository) Remote(name string) (*Remote, error) {
	return NewRemote(r.client, name)
}

// Remotes returns every configured remote
func (r *Repository) Remotes() ([]*Remote, error) {
	names, err := r.client.ListRemotes()
	if err != nil {
		return nil, err
	}

	remotes := make([]*Remote, 0, len(names))
	for _, name := range names {
		remote, err := NewRemote(r.client, name)
		if err != nil {
			return nil, err
		}
		remotes = append(remotes, remote)
	}
	return remotes, nil
}

// AddRemote configures a new remote and returns it
func (r *Repository) AddRemote(name, url string) (*Remote, error) {
	if err := r.client.AddRemote(name, url); err != nil {
		return nil, err
	}
	return NewRemote(r.client, name)
}

// Stashes returns the repository's stash list
func (r *Repository) Stashes() *Stashes {
	return NewStashes(r.client)
}
