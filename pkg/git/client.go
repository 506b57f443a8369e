// Package git derives remote permalinks from a local repository checkout.
package git

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
)

// githubRemote matches SSH and HTTPS GitHub remotes, with or without the
// trailing .git.
var githubRemote = regexp.MustCompile(`github\.com[:/]([^/]+)/(.+?)(?:\.git)?$`)

// Client wraps git command execution rooted at a working directory.
//
// It implements the remote link lookup port: the lookup is best-effort and
// bounded by the caller's context, so a missing repository, a missing remote,
// or an unrecognized hosting pattern all degrade to "no link" instead of
// surfacing an error.
type Client struct {
	WorkDir string
	Logger  *slog.Logger
}

// NewClient creates a new git client for the given working directory.
func NewClient(workDir string, logger *slog.Logger) *Client {
	return &Client{WorkDir: workDir, Logger: logger}
}

// IsInstalled checks if git is available in the system path.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Run executes a raw git command in the working directory.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}

	return strings.TrimSpace(output), nil
}

// IsRepo reports whether the working directory is inside a git work tree.
func (c *Client) IsRepo(ctx context.Context) bool {
	out, err := c.Run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// RemoteOriginURL returns the configured origin remote URL.
func (c *Client) RemoteOriginURL(ctx context.Context) (string, error) {
	return c.Run(ctx, "config", "--get", "remote.origin.url")
}

// Head returns the commit hash the work tree is currently at.
func (c *Client) Head(ctx context.Context) (string, error) {
	return c.Run(ctx, "rev-parse", "HEAD")
}

// FileURL derives a permanent GitHub blob URL for a project-relative file,
// pinned to the current HEAD commit. Any failure along the way (no git, no
// repository, no origin remote, non-GitHub remote) yields ok=false.
func (c *Client) FileURL(ctx context.Context, relPath string) (string, bool) {
	remote, err := c.RemoteOriginURL(ctx)
	if err != nil {
		return "", false
	}
	commit, err := c.Head(ctx)
	if err != nil {
		return "", false
	}
	return BlobURL(remote, commit, relPath)
}

// BlobURL builds a GitHub blob URL from a remote URL, a commit hash, and a
// project-relative file path. It returns ok=false when the remote does not
// match a recognized GitHub pattern.
func BlobURL(remote, commit, relPath string) (string, bool) {
	m := githubRemote.FindStringSubmatch(strings.TrimSpace(remote))
	if m == nil {
		return "", false
	}
	user, repo := m[1], m[2]
	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", user, repo, commit, relPath), true
}
