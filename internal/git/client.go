// Package git runs the git commands that publish the profile document.
// Pattern inspired by github.com/cli/cli
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Client runs git inside one working tree
type Client struct {
	RepoDir string    // Working tree the commands run in
	GitPath string    // Path to git executable
	Stdout  io.Writer // Receives push progress; nil discards it
	Stderr  io.Writer
}

// NewClient creates a client for the working tree at repoDir
func NewClient(repoDir string) (*Client, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("git executable not found: %w", err)
	}

	return &Client{
		RepoDir: repoDir,
		GitPath: gitPath,
		Stderr:  os.Stderr,
	}, nil
}

// Command creates a git command rooted at RepoDir.
// Note: Do not set Stdout/Stderr if you plan to use CombinedOutput()
func (c *Client) Command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.GitPath, args...)

	if c.RepoDir != "" {
		cmd.Dir = c.RepoDir
	}

	return cmd
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := c.Command(ctx, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// git prints "nothing to commit" on stdout
		msg := stderr.String()
		if msg == "" {
			msg = stdout.String()
		}

		return "", NewGitError(args, msg, err)
	}

	return stdout.String(), nil
}

// TopLevel returns the root of the working tree containing RepoDir.
// Outside a working tree the error satisfies IsNotRepository.
func (c *Client) TopLevel(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// Add stages paths
func (c *Client) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)

	_, err := c.run(ctx, args...)

	return err
}

// HasStagedChanges reports whether the index differs from HEAD for paths.
// With no paths the whole index is compared.
func (c *Client) HasStagedChanges(ctx context.Context, paths ...string) (bool, error) {
	args := append([]string{"diff", "--cached", "--quiet", "--"}, paths...)

	_, err := c.run(ctx, args...)
	if err == nil {
		return false, nil
	}

	// --quiet exits 1 when there are differences
	var gitErr *GitError
	if errors.As(err, &gitErr) && gitErr.ExitCode == 1 {
		return true, nil
	}

	return false, err
}

// Commit records the staged changes with message
func (c *Client) Commit(ctx context.Context, message string) error {
	_, err := c.run(ctx, "commit", "-m", message)
	return err
}

// Push pushes branch to remote. An empty branch pushes the current one,
// so a branch without an upstream is still pushed by name.
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	if remote == "" {
		remote = "origin"
	}

	if branch == "" {
		current, err := c.CurrentBranch(ctx)
		if err != nil {
			return err
		}

		if current == "HEAD" {
			return ErrDetachedHead
		}

		branch = current
	}

	args := []string{"push", remote, branch}

	cmd := c.Command(ctx, args...)

	var stderr bytes.Buffer

	cmd.Stdout = c.Stdout
	if c.Stderr != nil {
		cmd.Stderr = io.MultiWriter(c.Stderr, &stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		return NewGitError(args, stderr.String(), err)
	}

	return nil
}

// CurrentBranch returns the current branch name
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// HeadCommit returns the abbreviated hash of HEAD
func (c *Client) HeadCommit(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// GitError represents a git command error
type GitError struct {
	ExitCode int
	Stderr   string
	Args     []string
	err      error
}

func (e *GitError) Error() string {
	cmd := "git"
	if len(e.Args) > 0 {
		cmd = "git " + e.Args[0]
	}

	if strings.TrimSpace(e.Stderr) == "" {
		return fmt.Sprintf("%s failed: %v", cmd, e.err)
	}

	return fmt.Sprintf("%s failed: %s", cmd, strings.TrimSpace(e.Stderr))
}

func (e *GitError) Unwrap() error {
	return e.err
}
