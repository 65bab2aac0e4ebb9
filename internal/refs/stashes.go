package refs

import "github.com/javoire/refkit/internal/git"

// Stashes is the stash list of a repository
type Stashes struct {
	client git.GitClient
}

// NewStashes creates a handle on the repository's stash list
func NewStashes(client git.GitClient) *Stashes {
	return &Stashes{client: client}
}

// List returns the stash entries, newest first
func (s *Stashes) List() ([]git.StashEntry, error) {
	return s.client.ListStashes()
}

// Len returns the number of stash entries
func (s *Stashes) Len() (int, error) {
	entries, err := s.client.ListStashes()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Save stashes the working tree changes
func (s *Stashes) Save(message string) error {
	return s.client.Stash(message)
}

// Apply applies stash@{index} and keeps it in the list
func (s *Stashes) Apply(index int) error {
	return s.client.StashApply(index)
}

// Pop applies the newest stash and drops it
func (s *Stashes) Pop() error {
	return s.client.StashPop()
}
