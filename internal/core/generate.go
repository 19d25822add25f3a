package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inovacc/ghprofile/internal/model"
	"github.com/inovacc/ghprofile/internal/render"
)

// Source lists every repository of the configured user
type Source interface {
	FetchAll(ctx context.Context) ([]model.Repository, error)
}

// Publisher persists a rendered document
type Publisher interface {
	Publish(ctx context.Context, doc []byte, summary Summary) (*PublishResult, error)
}

// Summary describes a rendered document
type Summary struct {
	User           string    `json:"user"`
	Repositories   int       `json:"repositories"`
	Pages          int       `json:"pages"`
	Forks          int       `json:"forks"`
	UnknownParents int       `json:"unknown_parents"`
	Partial        bool      `json:"partial"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Document is the output of one generation pass
type Document struct {
	Content []byte
	Pages   []model.Page
	Summary Summary
}

// PublishResult reports what the publisher did
type PublishResult struct {
	Path      string `json:"path"`
	Changed   bool   `json:"changed"`
	Committed bool   `json:"committed"`
	Commit    string `json:"commit,omitempty"` // Abbreviated hash when Committed
	Pushed    bool   `json:"pushed"`
}

// RunResult is the outcome of a full run
type RunResult struct {
	Document *Document
	Publish  *PublishResult
}

// Options configures a Generator
type Options struct {
	User     string
	PageSize int
	Preamble string

	// AllowPartial renders whatever was fetched before a listing failure
	// instead of aborting the run
	AllowPartial bool
}

// Generator runs fetch, resolve, sort, paginate, render and publish in order
type Generator struct {
	source    Source
	resolver  *Resolver
	renderer  *render.Renderer
	publisher Publisher
	opts      Options
	logger    *slog.Logger
	now       func() time.Time
}

// NewGenerator wires a pipeline. publisher may be nil for render-only use.
func NewGenerator(source Source, resolver *Resolver, renderer *render.Renderer, publisher Publisher, opts Options, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}

	return &Generator{
		source:    source,
		resolver:  resolver,
		renderer:  renderer,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Build fetches and renders the document without publishing it
func (g *Generator) Build(ctx context.Context) (*Document, error) {
	repos, err := g.source.FetchAll(ctx)

	partial := false
	if err != nil {
		if !g.opts.AllowPartial {
			g.logger.Error("repository fetch failed",
				slog.String("kind", KindOf(err).String()),
				slog.Int("collected", len(repos)),
				slog.Any("error", err),
			)

			return nil, fmt.Errorf("fetch repositories: %w", err)
		}

		g.logger.Warn("repository fetch failed, continuing with partial list",
			slog.String("kind", KindOf(err).String()),
			slog.Int("collected", len(repos)),
			slog.Any("error", err),
		)

		partial = true
	}

	g.logger.Info("fetched repositories", slog.Int("count", len(repos)))

	entries := SortByCreation(g.resolver.Resolve(ctx, repos))

	pages, err := Paginate(entries, g.opts.PageSize)
	if err != nil {
		return nil, err
	}

	summary := Summary{
		User:         g.opts.User,
		Repositories: len(entries),
		Pages:        len(pages),
		Partial:      partial,
		GeneratedAt:  g.now().UTC(),
	}

	for _, e := range entries {
		if !e.Fork {
			continue
		}

		summary.Forks++
		if e.ForkParent == model.UnknownParent {
			summary.UnknownParents++
		}
	}

	content := g.renderer.Render(pages, g.opts.Preamble)

	g.logger.Info("rendered document",
		slog.Int("repositories", summary.Repositories),
		slog.Int("pages", summary.Pages),
		slog.Int("forks", summary.Forks),
		slog.Int("bytes", len(content)),
	)

	return &Document{
		Content: content,
		Pages:   pages,
		Summary: summary,
	}, nil
}

// Run builds the document and hands it to the publisher
func (g *Generator) Run(ctx context.Context) (*RunResult, error) {
	doc, err := g.Build(ctx)
	if err != nil {
		return nil, err
	}

	result := &RunResult{Document: doc}

	if g.publisher == nil {
		return result, nil
	}

	published, err := g.publisher.Publish(ctx, doc.Content, doc.Summary)
	result.Publish = published

	if err != nil {
		g.logger.Error("publish failed",
			slog.String("kind", KindOf(err).String()),
			slog.Any("error", err),
		)

		return result, err
	}

	return result, nil
}
