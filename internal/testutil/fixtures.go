package testutil

import (
	"errors"
	"fmt"

	"github.com/javoire/refkit/internal/git"
)

// NotFoundError builds an engine failure that matches git.ErrNotFound
func NotFoundError(stderr string) error {
	return &git.CommandError{Args: []string{"test"}, Stderr: stderr, ExitCode: 128, Kind: git.KindNotFound}
}

// AlreadyExistsError builds an engine failure that matches git.ErrAlreadyExists
func AlreadyExistsError(name string) error {
	return &git.CommandError{
		Args:     []string{"branch", name},
		Stderr:   fmt.Sprintf("fatal: a branch named '%s' already exists", name),
		ExitCode: 128,
		Kind:     git.KindAlreadyExists,
	}
}

// FailedError builds a plain engine failure
func FailedError(stderr string) error {
	return &git.CommandError{Args: []string{"test"}, Stderr: stderr, ExitCode: 1, Err: errors.New("exit status 1")}
}

// LocalBranch builds the listing entry of a local branch
func LocalBranch(name, commit string, current bool) git.BranchInfo {
	return git.BranchInfo{Ref: name, Name: name, Current: current, Commit: commit}
}

// RemoteBranch builds the listing entry of a remote-tracking branch
func RemoteBranch(remote, name, commit string) git.BranchInfo {
	return git.BranchInfo{
		Ref:    "refs/remotes/" + remote + "/" + name,
		Name:   name,
		Remote: remote,
		Commit: commit,
	}
}
