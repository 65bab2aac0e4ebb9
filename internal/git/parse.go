package git

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const fieldSep = "\x00"

// branchFormat is the for-each-ref format consumed by parseBranches
const branchFormat = "%(refname)%00%(HEAD)%00%(worktreepath)%00%(objectname)"

// parseBranches parses for-each-ref output produced with branchFormat
func parseBranches(output string) ([]BranchInfo, error) {
	branches := []BranchInfo{}
	if output == "" {
		return branches, nil
	}

	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, fieldSep)
		if len(fields) != 4 {
			return nil, fmt.Errorf("unexpected branch line: %q", line)
		}
		refname := fields[0]

		info := BranchInfo{
			Current:      fields[1] == "*",
			WorktreePath: fields[2],
			Commit:       fields[3],
		}

		switch {
		case strings.HasPrefix(refname, "refs/heads/"):
			info.Name = strings.TrimPrefix(refname, "refs/heads/")
			info.Ref = info.Name
		case strings.HasPrefix(refname, "refs/remotes/"):
			rest := strings.TrimPrefix(refname, "refs/remotes/")
			remote, name, ok := strings.Cut(rest, "/")
			if !ok {
				// refs/remotes/<remote> with no branch part
				continue
			}
			info.Ref = refname
			info.Remote = remote
			info.Name = name
		default:
			continue
		}

		branches = append(branches, info)
	}

	return branches, nil
}

// parseRemoteConfig parses `git config --get-regexp ^remote\.<name>\.` output.
// Later values override earlier ones, as with git config --get.
func parseRemoteConfig(name, output string) RemoteConfig {
	cfg := RemoteConfig{Name: name}
	prefix := "remote." + name + "."

	for _, line := range strings.Split(output, "\n") {
		key, value, _ := strings.Cut(strings.TrimSpace(line), " ")
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		switch strings.ToLower(strings.TrimPrefix(key, prefix)) {
		case "url":
			cfg.URL = value
		case "fetch":
			cfg.Fetch = value
		}
	}

	return cfg
}

// remoteConfigPattern builds the --get-regexp pattern for a remote's keys
func remoteConfigPattern(name string) string {
	return "^remote\\." + regexp.QuoteMeta(name) + "\\."
}

var stashRefPattern = regexp.MustCompile(`^stash@\{(\d+)\}$`)

// stashFormat is the stash list format consumed by parseStashes
const stashFormat = "%gd%x00%gs"

// parseStashes parses `git stash list` output produced with stashFormat
func parseStashes(output string) ([]StashEntry, error) {
	stashes := []StashEntry{}
	if output == "" {
		return stashes, nil
	}

	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		ref, message, ok := strings.Cut(line, fieldSep)
		if !ok {
			return nil, fmt.Errorf("unexpected stash line: %q", line)
		}
		m := stashRefPattern.FindStringSubmatch(ref)
		if m == nil {
			return nil, fmt.Errorf("unexpected stash ref: %q", ref)
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("invalid stash index in %q: %w", ref, err)
		}
		stashes = append(stashes, StashEntry{Index: index, Ref: ref, Message: message})
	}

	return stashes, nil
}
