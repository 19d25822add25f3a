// Package publish writes the rendered document into a git working tree and
// commits and pushes it.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/inovacc/ghprofile/internal/core"
	"github.com/inovacc/ghprofile/internal/encoding"
	"github.com/inovacc/ghprofile/internal/git"
	"github.com/inovacc/ghprofile/internal/security"
)

// DefaultCommitMessage is used when no message template is configured
const DefaultCommitMessage = "Update repository list ({{ .Count }} repositories)"

// ErrSecretsFound aborts a publish whose document contains credentials
var ErrSecretsFound = errors.New("document contains potential secrets")

// VCS is the subset of git the publisher needs
type VCS interface {
	Add(ctx context.Context, paths ...string) error
	HasStagedChanges(ctx context.Context, paths ...string) (bool, error)
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context, remote, branch string) error
	HeadCommit(ctx context.Context) (string, error)
}

// Scanner checks content for leaked secrets
type Scanner interface {
	ScanContent(name string, content []byte) *security.ScanResult
}

// Options configures a Publisher
type Options struct {
	RepoDir       string
	OutputFile    string // Relative to RepoDir
	Remote        string
	Branch        string // Empty pushes the current branch
	CommitMessage string // text/template with sprig functions

	// DryRun writes the document but skips every git step
	DryRun bool
}

// MessageData is the data available to the commit message template
type MessageData struct {
	User    string
	Count   int
	Pages   int
	Forks   int
	Partial bool
	Date    time.Time
}

// Publisher persists documents. A nil scanner disables secret scanning.
type Publisher struct {
	vcs     VCS
	scanner Scanner
	opts    Options
	message *template.Template
	logger  *slog.Logger
}

// New creates a publisher, validating the commit message template
func New(vcs VCS, scanner Scanner, opts Options, logger *slog.Logger) (*Publisher, error) {
	if opts.OutputFile == "" {
		return nil, errors.New("output file is required")
	}

	if filepath.IsAbs(opts.OutputFile) || strings.HasPrefix(filepath.Clean(opts.OutputFile), "..") {
		return nil, fmt.Errorf("output file %q must be inside the repository", opts.OutputFile)
	}

	if opts.CommitMessage == "" {
		opts.CommitMessage = DefaultCommitMessage
	}

	tmpl, err := template.New("commit").Funcs(sprig.TxtFuncMap()).Parse(opts.CommitMessage)
	if err != nil {
		return nil, fmt.Errorf("invalid commit message template: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Publisher{
		vcs:     vcs,
		scanner: scanner,
		opts:    opts,
		message: tmpl,
		logger:  logger,
	}, nil
}

// Path returns the absolute location the document is written to
func (p *Publisher) Path() string {
	return filepath.Join(p.opts.RepoDir, p.opts.OutputFile)
}

// CommitMessage renders the commit message for summary
func (p *Publisher) CommitMessage(summary core.Summary) (string, error) {
	data := MessageData{
		User:    summary.User,
		Count:   summary.Repositories,
		Pages:   summary.Pages,
		Forks:   summary.Forks,
		Partial: summary.Partial,
		Date:    summary.GeneratedAt,
	}

	var buf bytes.Buffer
	if err := p.message.Execute(&buf, data); err != nil {
		return "", err
	}

	msg := strings.TrimSpace(buf.String())
	if msg == "" {
		return "", errors.New("commit message is empty")
	}

	return msg, nil
}

// Publish writes doc, scans it, then stages, commits and pushes it. An
// unchanged document produces no commit and no push. Every failure is a
// *core.PublishError naming the step.
func (p *Publisher) Publish(ctx context.Context, doc []byte, summary core.Summary) (*core.PublishResult, error) {
	path := p.Path()
	result := &core.PublishResult{Path: path}

	if p.scanner != nil {
		scan := p.scanner.ScanContent(p.opts.OutputFile, doc)
		if scan.HasLeaks {
			p.logger.Error("secret scan failed", slog.String("findings", security.FormatFindings(scan.Findings)))

			return nil, &core.PublishError{
				Step: "scan",
				Err:  fmt.Errorf("%w: %d finding(s)", ErrSecretsFound, len(scan.Findings)),
			}
		}
	}

	previous, err := encoding.ReadFile(path)
	if err != nil {
		return nil, &core.PublishError{Step: "write", Err: err}
	}

	if err := encoding.WriteFileAtomic(path, doc, 0o644); err != nil {
		return nil, &core.PublishError{Step: "write", Err: err}
	}

	p.logger.Info("wrote document", slog.String("path", path), slog.Int("bytes", len(doc)))

	if p.opts.DryRun {
		result.Changed = !bytes.Equal(previous, doc)
		p.logger.Info("dry run, skipping git", slog.Bool("changed", result.Changed))

		return result, nil
	}

	if err := p.vcs.Add(ctx, p.opts.OutputFile); err != nil {
		return nil, &core.PublishError{Step: "stage", Err: err}
	}

	staged, err := p.vcs.HasStagedChanges(ctx, p.opts.OutputFile)
	if err != nil {
		return nil, &core.PublishError{Step: "stage", Err: err}
	}

	if !staged {
		p.logger.Info("document unchanged, nothing to publish")
		return result, nil
	}

	result.Changed = true

	msg, err := p.CommitMessage(summary)
	if err != nil {
		return nil, &core.PublishError{Step: "commit", Err: err}
	}

	if err := p.vcs.Commit(ctx, msg); err != nil {
		if git.IsNothingToCommit(err) {
			p.logger.Warn("git reported nothing to commit after staging", slog.Any("error", err))
			return result, nil
		}

		return nil, &core.PublishError{Step: "commit", Err: err}
	}

	result.Committed = true

	if hash, err := p.vcs.HeadCommit(ctx); err != nil {
		p.logger.Warn("commit hash unavailable", slog.Any("error", err))
	} else {
		result.Commit = hash
	}

	p.logger.Info("committed document", slog.String("commit", result.Commit), slog.String("message", msg))

	p.logRemote()

	if err := p.vcs.Push(ctx, p.opts.Remote, p.opts.Branch); err != nil {
		p.logger.Error("push failed",
			slog.String("remote", p.opts.Remote),
			slog.String("commit", result.Commit),
			slog.Int("exit_code", git.GetExitCode(err)),
			slog.String("hint", pushHint(err)),
		)

		return result, &core.PublishError{Step: "push", Err: err}
	}

	result.Pushed = true

	p.logger.Info("pushed document", slog.String("remote", p.opts.Remote), slog.String("branch", p.opts.Branch))

	return result, nil
}

// pushHint suggests a remedy for a failed push, or "" when none applies
func pushHint(err error) string {
	switch {
	case git.IsAuthRequired(err):
		return "check the token has write access to the remote"
	case git.IsRejected(err):
		return "the remote has commits this checkout lacks; pull and run again"
	case git.IsNoUpstream(err):
		return "set branch or configure an upstream for the current branch"
	case errors.Is(err, git.ErrDetachedHead):
		return "check out a branch or set branch"
	default:
		return ""
	}
}

func (p *Publisher) logRemote() {
	u, err := git.RemoteURL(p.opts.RepoDir, p.opts.Remote)
	if err != nil {
		p.logger.Debug("remote url unavailable", slog.String("remote", p.opts.Remote), slog.Any("error", err))
		return
	}

	p.logger.Info("pushing", slog.String("remote", p.opts.Remote), slog.String("url", git.SanitizeURL(u)))
}
