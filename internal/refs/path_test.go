package refs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadsAndRemoteRef(t *testing.T) {
	assert.Equal(t, "refs/heads/feature", HeadsRef("feature"))
	assert.Equal(t, "refs/remotes/origin/feature", RemoteRef("origin", "feature"))
}

func TestSplitRemoteRef(t *testing.T) {
	tests := []struct {
		ref        string
		wantRemote string
		wantName   string
		wantOK     bool
	}{
		{"refs/remotes/origin/master", "origin", "master", true},
		{"refs/remotes/origin/feature/login", "origin", "feature/login", true},
		{"refs/remotes/origin", "", "", false},
		{"refs/remotes/origin/", "", "", false},
		{"refs/heads/master", "", "", false},
		{"master", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			remote, name, ok := SplitRemoteRef(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRemote, remote)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		ref       string
		wantFull  string
		wantShort string
	}{
		{"short local", "", "master", "master", "master"},
		{"qualified local", "", "refs/heads/feature/x", "feature/x", "feature/x"},
		{"remote ref without owner", "", "refs/remotes/origin/master", "refs/remotes/origin/master", "refs/remotes/origin/master"},
		{"remote ref", "working", "refs/remotes/working/master", "refs/remotes/working/master", "master"},
		{"remotes shorthand", "working", "remotes/working/master", "remotes/working/master", "master"},
		{"bare name on remote", "origin", "develop", "refs/remotes/origin/develop", "develop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full, short := ParseRef(tt.remote, tt.ref)
			assert.Equal(t, tt.wantFull, full)
			assert.Equal(t, tt.wantShort, short)
		})
	}
}
