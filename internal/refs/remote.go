package refs

import (
	"errors"

	"github.com/javoire/refkit/internal/git"
)

// ErrDetachedHead is returned when an operation defaults to the current
// branch but HEAD is not on a branch
var ErrDetachedHead = errors.New("HEAD is detached, name a branch explicitly")

// Remote is a configured remote. URL and fetch refspec are read once when
// the Remote is created.
type Remote struct {
	client git.GitClient
	name   string
	url    string
	fetch  string
}

// NewRemote looks up the configuration of remote name. It fails with
// git.ErrNotFound if the remote is not configured.
func NewRemote(client git.GitClient, name string) (*Remote, error) {
	cfg, err := client.GetRemoteConfig(name)
	if err != nil {
		return nil, err
	}
	return &Remote{
		client: client,
		name:   name,
		url:    cfg.URL,
		fetch:  cfg.Fetch,
	}, nil
}

func (r *Remote) Name() string {
	return r.name
}

// URL returns the fetch URL
func (r *Remote) URL() string {
	return r.url
}

// FetchRefspec returns the configured fetch refspec
func (r *Remote) FetchRefspec() string {
	return r.fetch
}

// Fetch fetches from this remote
func (r *Remote) Fetch(opts git.FetchOptions) error {
	return r.client.Fetch(r.name, opts)
}

// Merge merges refs/remotes/<remote>/<branch> into the current branch.
// An empty branch means the current branch's name.
func (r *Remote) Merge(branch string) error {
	branch, err := r.branchOrCurrent(branch)
	if err != nil {
		return err
	}
	return r.client.Merge(RemoteRef(r.name, branch), "")
}

// Branch returns a new remote-tracking Branch for branch on this remote.
// An empty branch means the current branch's name.
func (r *Remote) Branch(branch string) (*Branch, error) {
	branch, err := r.branchOrCurrent(branch)
	if err != nil {
		return nil, err
	}
	return NewBranch(r.client, r.name, RemoteRef(r.name, branch))
}

// Remove deletes the remote from the repository configuration
func (r *Remote) Remove() error {
	return r.client.RemoveRemote(r.name)
}

func (r *Remote) String() string {
	return r.name
}

func (r *Remote) branchOrCurrent(branch string) (string, error) {
	if branch != "" {
		return branch, nil
	}
	current, err := r.client.GetCurrentBranch()
	if err != nil {
		return "", err
	}
	if current == "" {
		return "", ErrDetachedHead
	}
	return current, nil
}
