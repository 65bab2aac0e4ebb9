package refs

import (
	"github.com/javoire/refkit/internal/git"
	"github.com/rs/zerolog/log"
)

type listedBranch struct {
	branch *Branch
	info   git.BranchInfo
}

// Branches is the result of listing a repository's branches
type Branches struct {
	items []listedBranch
}

// newBranches builds the facades for a listing. Remote-tracking refs left
// behind by a remote that is no longer configured are skipped.
func newBranches(client git.GitClient, infos []git.BranchInfo) (*Branches, error) {
	remotes := make(map[string]*Remote)
	missing := make(map[string]bool)
	items := make([]listedBranch, 0, len(infos))

	for _, info := range infos {
		var remote *Remote
		if info.IsRemote() {
			if missing[info.Remote] {
				continue
			}
			remote = remotes[info.Remote]
			if remote == nil {
				r, err := NewRemote(client, info.Remote)
				if git.IsNotFound(err) {
					log.Warn().Msgf("Skipping %s: remote %s is not configured", info.Ref, info.Remote)
					missing[info.Remote] = true
					continue
				}
				if err != nil {
					return nil, err
				}
				remotes[info.Remote] = r
				remote = r
			}
		}
		items = append(items, listedBranch{
			branch: newBranch(client, remote, info.Ref),
			info:   info,
		})
	}

	return &Branches{items: items}, nil
}

// All returns every listed branch
func (bs *Branches) All() []*Branch {
	return bs.filter(func(git.BranchInfo) bool { return true })
}

// Local returns the branches under refs/heads
func (bs *Branches) Local() []*Branch {
	return bs.filter(git.BranchInfo.IsLocal)
}

// Remote returns the remote-tracking branches
func (bs *Branches) Remote() []*Branch {
	return bs.filter(git.BranchInfo.IsRemote)
}

// Len returns the number of listed branches
func (bs *Branches) Len() int {
	return len(bs.items)
}

// Get finds a branch by short name (local branches), <remote>/<name> or full ref
func (bs *Branches) Get(name string) *Branch {
	for _, item := range bs.items {
		b := item.branch
		if b.fullRef == name {
			return b
		}
		if b.remote == nil && b.name == name {
			return b
		}
		if b.remote != nil && b.remote.name+"/"+b.name == name {
			return b
		}
	}
	return nil
}

// Current returns the branch that was checked out when listed, or nil when
// HEAD was detached
func (bs *Branches) Current() *Branch {
	for _, item := range bs.items {
		if item.info.Current {
			return item.branch
		}
	}
	return nil
}

// Info returns what the engine reported about b when it was listed
func (bs *Branches) Info(b *Branch) (git.BranchInfo, bool) {
	for _, item := range bs.items {
		if item.branch == b {
			return item.info, true
		}
	}
	return git.BranchInfo{}, false
}

func (bs *Branches) filter(keep func(git.BranchInfo) bool) []*Branch {
	out := []*Branch{}
	for _, item := range bs.items {
		if keep(item.info) {
			out = append(out, item.branch)
		}
	}
	return out
}
