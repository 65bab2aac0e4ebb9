package git

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func branchLine(fields ...string) string {
	return strings.Join(fields, "\x00")
}

func TestParseBranches(t *testing.T) {
	output := strings.Join([]string{
		branchLine("refs/heads/master", "*", "/src/repo", "1111"),
		branchLine("refs/heads/feature/login", " ", "", "2222"),
		branchLine("refs/heads/wt", " ", "/src/repo-wt", "3333"),
		branchLine("refs/remotes/origin/HEAD", " ", "", "1111"),
		branchLine("refs/remotes/origin/master", " ", "", "1111"),
		branchLine("refs/remotes/upstream/release/1.x", " ", "", "4444"),
	}, "\n")

	branches, err := parseBranches(output)
	require.NoError(t, err)
	require.Len(t, branches, 6)

	assert.Equal(t, BranchInfo{Ref: "master", Name: "master", Current: true, WorktreePath: "/src/repo", Commit: "1111"}, branches[0])
	assert.Equal(t, "feature/login", branches[1].Ref)
	assert.False(t, branches[1].Current)
	assert.False(t, branches[1].CheckedOut())
	assert.True(t, branches[2].CheckedOut())

	assert.Equal(t, "refs/remotes/origin/HEAD", branches[3].Ref)
	assert.Equal(t, "HEAD", branches[3].Name)
	assert.Equal(t, "origin", branches[3].Remote)

	assert.Equal(t, "upstream", branches[5].Remote)
	assert.Equal(t, "release/1.x", branches[5].Name)
}

func TestParseBranchesEmpty(t *testing.T) {
	branches, err := parseBranches("")
	require.NoError(t, err)
	assert.Empty(t, branches)
}

func TestParseBranchesSkipsOtherRefs(t *testing.T) {
	output := strings.Join([]string{
		branchLine("refs/tags/v1.0.0", " ", "", "1111"),
		branchLine("refs/remotes/origin", " ", "", "1111"),
		branchLine("refs/heads/master", "*", "", "1111"),
	}, "\n")

	branches, err := parseBranches(output)
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assert.Equal(t, "master", branches[0].Name)
}

func TestParseBranchesMalformed(t *testing.T) {
	_, err := parseBranches("refs/heads/master *")
	assert.Error(t, err)
}

func TestParseRemoteConfig(t *testing.T) {
	output := `remote.working.url ../working.git
remote.working.fetch +refs/heads/*:refs/remotes/working/*
remote.working.pushurl ../push.git`

	cfg := parseRemoteConfig("working", output)
	assert.Equal(t, RemoteConfig{
		Name:  "working",
		URL:   "../working.git",
		Fetch: "+refs/heads/*:refs/remotes/working/*",
	}, cfg)
}

func TestParseRemoteConfigLastFetchWins(t *testing.T) {
	output := `remote.origin.url git@example.com:repo.git
remote.origin.fetch +refs/heads/*:refs/remotes/origin/*
remote.origin.fetch +refs/pull/*:refs/remotes/origin/pr/*`

	cfg := parseRemoteConfig("origin", output)
	assert.Equal(t, "+refs/pull/*:refs/remotes/origin/pr/*", cfg.Fetch)
}

func TestRemoteConfigPattern(t *testing.T) {
	assert.Equal(t, `^remote\.origin\.`, remoteConfigPattern("origin"))
	assert.Equal(t, `^remote\.my\.fork\.`, remoteConfigPattern("my.fork"))
}

func TestParseStashes(t *testing.T) {
	output := "stash@{0}\x00On master: wip parser\nstash@{1}\x00WIP on feature: 1234567 add tests"

	stashes, err := parseStashes(output)
	require.NoError(t, err)
	require.Len(t, stashes, 2)
	assert.Equal(t, StashEntry{Index: 0, Ref: "stash@{0}", Message: "On master: wip parser"}, stashes[0])
	assert.Equal(t, 1, stashes[1].Index)
}

func TestParseStashesMalformed(t *testing.T) {
	_, err := parseStashes("stash@{x}\x00msg")
	assert.Error(t, err)

	_, err = parseStashes("no separator")
	assert.Error(t, err)
}
