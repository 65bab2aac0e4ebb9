package refs

import "strings"

const (
	headsPrefix   = "refs/heads/"
	remotesPrefix = "refs/remotes/"
)

// HeadsRef returns the full ref of a local branch
func HeadsRef(name string) string {
	return headsPrefix + name
}

// RemoteRef returns the full ref of a remote-tracking branch
func RemoteRef(remote, name string) string {
	return remotesPrefix + remote + "/" + name
}

// SplitRemoteRef splits refs/remotes/<remote>/<name>. The remote is taken to
// be the first path segment.
func SplitRemoteRef(ref string) (remote, name string, ok bool) {
	rest, found := strings.CutPrefix(ref, remotesPrefix)
	if !found {
		return "", "", false
	}
	remote, name, ok = strings.Cut(rest, "/")
	if !ok || remote == "" || name == "" {
		return "", "", false
	}
	return remote, name, true
}

// ParseRef returns the full ref the engine should be given and the short
// branch name for ref, as seen from remote ("" for local branches).
//
// Local branches are addressed by their short name: checking out
// refs/heads/<name> would detach HEAD. Without a remote any other ref is
// kept whole, so it can never be mistaken for the local branch sharing its
// last path segment.
func ParseRef(remote, ref string) (full, short string) {
	if name, ok := strings.CutPrefix(ref, headsPrefix); ok {
		return name, name
	}

	if remote == "" {
		return ref, ref
	}

	for _, prefix := range []string{remotesPrefix + remote + "/", "remotes/" + remote + "/"} {
		if name, ok := strings.CutPrefix(ref, prefix); ok {
			return ref, name
		}
	}
	return RemoteRef(remote, ref), ref
}
