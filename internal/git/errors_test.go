package git

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"nothing to commit", &GitError{Stderr: "nothing to commit, working tree clean"}, IsNothingToCommit, true},
		{"auth failed", &GitError{Stderr: "fatal: Authentication failed for 'https://github.com/x/y'"}, IsAuthRequired, true},
		{"permission denied", &GitError{Stderr: "git@github.com: Permission denied (publickey)."}, IsAuthRequired, true},
		{"rejected", &GitError{Stderr: " ! [rejected]        main -> main (fetch first)"}, IsRejected, true},
		{"not a repository", errors.New("fatal: not a git repository (or any of the parent directories): .git"), IsNotRepository, true},
		{"no upstream", &GitError{Stderr: "fatal: The current branch main has no upstream branch."}, IsNoUpstream, true},
		{"wrapped", fmt.Errorf("publish: %w", &GitError{Stderr: "Nothing To Commit"}), IsNothingToCommit, true},
		{"nil", nil, IsNothingToCommit, false},
		{"unrelated", &GitError{Stderr: "fatal: bad revision"}, IsAuthRequired, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, 0, GetExitCode(nil))
	assert.Equal(t, 128, GetExitCode(&GitError{ExitCode: 128}))
	assert.Equal(t, -1, GetExitCode(errors.New("plain")))
}

func TestGitError_Error(t *testing.T) {
	inner := errors.New("exit status 1")

	withStderr := NewGitError([]string{"push", "origin"}, "fatal: unable to access\n", inner)
	assert.Equal(t, "git push failed: fatal: unable to access", withStderr.Error())
	assert.Equal(t, -1, withStderr.ExitCode)
	assert.ErrorIs(t, withStderr, inner)

	bare := NewGitError(nil, "", inner)
	assert.Equal(t, "git failed: exit status 1", bare.Error())
}
