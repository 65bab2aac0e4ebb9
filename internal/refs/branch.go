package refs

import (
	"fmt"

	"github.com/javoire/refkit/internal/git"
	"github.com/rs/zerolog/log"
)

// DefaultInBranchMessage is the commit message InBranch uses when none is given
const DefaultInBranchMessage = "in branch work"

// Branch is a local or remote-tracking branch. It is a snapshot: the commit it
// resolves to is looked up once and never refreshed, so a Branch obtained
// before the ref moved keeps reporting the old commit.
type Branch struct {
	client  git.GitClient
	fullRef string
	name    string
	remote  *Remote

	commit   string
	resolved bool

	stashes *Stashes
}

// NewBranch creates a Branch for ref. A non-empty remote makes it a
// remote-tracking branch and looks the remote up immediately, so a missing
// remote fails here with git.ErrNotFound. Without a remote, a ref of the form
// refs/remotes/<remote>/<name> is owned by <remote>.
func NewBranch(client git.GitClient, remote, ref string) (*Branch, error) {
	if remote == "" {
		if inferred, _, ok := SplitRemoteRef(ref); ok {
			remote = inferred
		}
	}

	var owner *Remote
	if remote != "" {
		r, err := NewRemote(client, remote)
		if err != nil {
			return nil, err
		}
		owner = r
	}
	return newBranch(client, owner, ref), nil
}

func newBranch(client git.GitClient, remote *Remote, ref string) *Branch {
	remoteName := ""
	if remote != nil {
		remoteName = remote.name
	}
	full, short := ParseRef(remoteName, ref)
	return &Branch{
		client:  client,
		fullRef: full,
		name:    short,
		remote:  remote,
	}
}

// Name returns the short branch name
func (b *Branch) Name() string {
	return b.name
}

// FullRef returns the ref the engine knows this branch by
func (b *Branch) FullRef() string {
	return b.fullRef
}

// Remote returns the owning remote, or nil for local branches
func (b *Branch) Remote() *Remote {
	return b.remote
}

// IsRemote reports whether this is a remote-tracking branch
func (b *Branch) IsRemote() bool {
	return b.remote != nil
}

// Commit returns the commit the branch pointed to when first asked
func (b *Branch) Commit() (string, error) {
	if b.resolved {
		return b.commit, nil
	}
	commit, err := b.client.GetCommitHash(b.fullRef)
	if err != nil {
		return "", err
	}
	b.commit = commit
	b.resolved = true
	return b.commit, nil
}

// Stashes returns the stash list of the repository the branch belongs to
func (b *Branch) Stashes() *Stashes {
	if b.stashes == nil {
		b.stashes = NewStashes(b.client)
	}
	return b.stashes
}

// Create makes sure the branch exists. Creating an existing branch is a no-op.
func (b *Branch) Create() error {
	return b.ensureExists()
}

// Checkout creates the branch if needed and switches to it
func (b *Branch) Checkout() error {
	if err := b.ensureExists(); err != nil {
		return err
	}
	return b.client.CheckoutBranch(b.fullRef)
}

// ensureExists creates a local branch at HEAD, ignoring only the failure
// caused by the branch already being there. Remote-tracking branches belong
// to their remote and are never created locally.
func (b *Branch) ensureExists() error {
	if b.IsRemote() {
		return nil
	}
	err := b.client.CreateBranch(b.name, "")
	if err == nil {
		log.Debug().Msgf("Created branch %s", b.name)
		return nil
	}
	if git.IsAlreadyExists(err) {
		return nil
	}
	return err
}

// Delete force deletes the branch. It fails if the branch does not exist or
// is checked out.
func (b *Branch) Delete() error {
	if b.remote != nil {
		return b.client.DeleteRemoteBranch(b.remote.name, b.name)
	}
	return b.client.DeleteBranchForce(b.name)
}

// Current reports whether this branch is checked out right now.
// Remote-tracking branches are never current.
func (b *Branch) Current() (bool, error) {
	if b.IsRemote() {
		return false, nil
	}
	current, err := b.client.GetCurrentBranch()
	if err != nil {
		return false, err
	}
	return current == b.name, nil
}

// Contains reports whether commit is reachable from this branch
func (b *Branch) Contains(commit string) (bool, error) {
	if b.remote != nil {
		return b.client.BranchContains(commit, b.remote.name+"/"+b.name, true)
	}
	return b.client.BranchContains(commit, b.name, false)
}

// Merge merges other into this branch and returns to the branch that was
// checked out before. With a nil other it instead merges this branch into
// whatever is currently checked out.
//
// The first form is several git commands in a row; a failure part way leaves
// the repository wherever the last successful command put it.
func (b *Branch) Merge(other *Branch, message string) error {
	if other == nil {
		return b.client.Merge(b.fullRef, message)
	}
	return b.InBranch(message, func() (bool, error) {
		if err := b.client.Merge(other.fullRef, message); err != nil {
			return false, err
		}
		return false, nil
	})
}

// InBranch checks this branch out, runs work and then returns to the branch
// (or detached commit) that was checked out before. When work reports true
// every tracked change is committed with message; otherwise the working tree
// is hard reset. The previous checkout is restored even when work fails.
func (b *Branch) InBranch(message string, work func() (bool, error)) (err error) {
	if message == "" {
		message = DefaultInBranchMessage
	}

	previous, err := b.client.GetCurrentBranch()
	if err != nil {
		return err
	}
	if previous == "" {
		if previous, err = b.client.GetCommitHash("HEAD"); err != nil {
			return err
		}
	}

	if err := b.Checkout(); err != nil {
		return err
	}

	defer func() {
		restoreErr := b.client.CheckoutBranch(previous)
		if restoreErr == nil {
			return
		}
		if err == nil {
			err = restoreErr
			return
		}
		log.Warn().Err(restoreErr).Msgf("Failed to return to %s", previous)
	}()

	commit, err := work()
	if err != nil {
		return err
	}
	if commit {
		return b.client.CommitAll(message)
	}
	return b.client.ResetHard("HEAD")
}

// UpdateRef points the branch at commit
func (b *Branch) UpdateRef(commit string) error {
	if b.remote != nil {
		return b.client.UpdateRef(RemoteRef(b.remote.name, b.name), commit)
	}
	return b.client.UpdateRef(HeadsRef(b.name), commit)
}

// Archive writes the branch's tree to dest
func (b *Branch) Archive(dest string, opts git.ArchiveOptions) error {
	if err := b.client.Archive(b.fullRef, dest, opts); err != nil {
		return fmt.Errorf("failed to archive %s: %w", b.fullRef, err)
	}
	return nil
}

// Refs returns the branch as a one-element list of refs
func (b *Branch) Refs() []string {
	return []string{b.fullRef}
}

func (b *Branch) String() string {
	return b.fullRef
}
