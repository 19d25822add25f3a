package core

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inovacc/ghprofile/internal/model"
)

// ErrNoParent is returned by a ParentLookup when the detail record has no
// upstream information.
var ErrNoParent = errors.New("detail record has no parent")

// LanguageLookup fetches the byte-weighted language breakdown of a repository
type LanguageLookup interface {
	Languages(ctx context.Context, owner, name string) (model.LanguageStats, error)
}

// ParentLookup resolves the upstream owner/name of a fork from its detail URL
type ParentLookup interface {
	Parent(ctx context.Context, detailURL string) (string, error)
}

// Resolver derives display attributes for repositories.
// A nil Languages disables statistics lookups; a nil Parents makes every
// fork without an embedded parent resolve to model.UnknownParent.
type Resolver struct {
	Languages LanguageLookup
	Parents   ParentLookup
	Logger    *slog.Logger
}

// NewResolver creates a resolver using the given lookups
func NewResolver(languages LanguageLookup, parents ParentLookup, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		Languages: languages,
		Parents:   parents,
		Logger:    logger,
	}
}

// ResolveLanguage returns the primary language of repo.
// Byte statistics win over the reported label; model.NoLanguage is
// returned when neither is available.
func (r *Resolver) ResolveLanguage(ctx context.Context, repo model.Repository) string {
	stats := repo.LanguageStats

	if len(stats) == 0 && r.Languages != nil {
		fetched, err := r.Languages.Languages(ctx, repo.Owner, repo.Name)
		if err != nil {
			r.logger().Warn("language statistics unavailable, using reported language",
				slog.String("repository", repo.FullName()),
				slog.String("kind", KindResolution.String()),
				slog.Any("error", &ResolutionError{Repository: repo.FullName(), Op: "language", Err: err}),
			)
		} else {
			stats = fetched
		}
	}

	if lang, ok := stats.Primary(); ok {
		return lang
	}

	if repo.ReportedLanguage != "" {
		return repo.ReportedLanguage
	}

	return model.NoLanguage
}

// ResolveForkParent returns the upstream owner/name of a fork.
// Non-forks resolve to "". An embedded parent is returned without any
// lookup; otherwise the detail URL is queried once and any failure yields
// model.UnknownParent.
func (r *Resolver) ResolveForkParent(ctx context.Context, repo model.Repository) string {
	if !repo.Fork {
		return ""
	}

	if repo.Parent != "" {
		return repo.Parent
	}

	if r.Parents == nil {
		r.logger().Warn("fork parent unresolved",
			slog.String("repository", repo.FullName()),
			slog.String("kind", KindResolution.String()),
			slog.String("reason", "no parent lookup configured"),
		)

		return model.UnknownParent
	}

	parent, err := r.Parents.Parent(ctx, repo.DetailURL)
	if err == nil && parent == "" {
		err = ErrNoParent
	}

	if err != nil {
		r.logger().Warn("fork parent unresolved",
			slog.String("repository", repo.FullName()),
			slog.String("kind", KindResolution.String()),
			slog.Any("error", &ResolutionError{Repository: repo.FullName(), Op: "fork parent", Err: err}),
		)

		return model.UnknownParent
	}

	return parent
}

// Resolve derives display attributes for every repository, keeping order
func (r *Resolver) Resolve(ctx context.Context, repos []model.Repository) []model.Entry {
	entries := make([]model.Entry, 0, len(repos))

	for _, repo := range repos {
		entries = append(entries, model.Entry{
			Repository: repo,
			Language:   r.ResolveLanguage(ctx, repo),
			ForkParent: r.ResolveForkParent(ctx, repo),
		})
	}

	return entries
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}

	return r.Logger
}
