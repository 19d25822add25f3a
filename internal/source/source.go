package source

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/ghprofile/internal/core"
	"github.com/inovacc/ghprofile/internal/model"
)

// MaxPages bounds the listing loop
const MaxPages = 1000

// ErrTooManyPages is returned when the listing never produced an empty page
var ErrTooManyPages = errors.New("listing did not terminate")

// Source lists a user's repositories and answers per-repository lookups
type Source struct {
	client  *github.Client
	user    string
	perPage int
	logger  *slog.Logger
}

// NewSource creates a source listing user's repositories perPage at a time
func NewSource(client *github.Client, user string, perPage int, logger *slog.Logger) *Source {
	if perPage <= 0 {
		perPage = core.DefaultPageSize
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Source{
		client:  client,
		user:    user,
		perPage: perPage,
		logger:  logger,
	}
}

// Pages yields one slice of repositories per listing page, starting at
// page 1, and stops after the first empty page. A failed request yields a
// *core.TransportError and ends the sequence.
func (s *Source) Pages(ctx context.Context) iter.Seq2[[]model.Repository, error] {
	return func(yield func([]model.Repository, error) bool) {
		for page := 1; page <= MaxPages; page++ {
			opts := &github.RepositoryListByUserOptions{
				ListOptions: github.ListOptions{Page: page, PerPage: s.perPage},
			}

			repos, resp, err := s.client.Repositories.ListByUser(ctx, s.user, opts)
			if err != nil {
				yield(nil, transportError("list repositories", page, resp, err))
				return
			}

			s.logger.Debug("fetched repository page",
				slog.Int("page", page),
				slog.Int("count", len(repos)),
			)

			if len(repos) == 0 {
				return
			}

			batch := make([]model.Repository, 0, len(repos))
			for _, r := range repos {
				batch = append(batch, toModel(r))
			}

			if !yield(batch, nil) {
				return
			}
		}

		yield(nil, &core.TransportError{Op: "list repositories", Page: MaxPages, Err: ErrTooManyPages})
	}
}

// FetchAll collects every page. On failure it returns the repositories
// gathered before the failing page together with the error; the caller
// decides whether a partial list is usable.
func (s *Source) FetchAll(ctx context.Context) ([]model.Repository, error) {
	var all []model.Repository

	for batch, err := range s.Pages(ctx) {
		if err != nil {
			return all, err
		}

		all = append(all, batch...)
	}

	return all, nil
}

// Languages returns the byte count per language of owner/name in the
// order the API reports them
func (s *Source) Languages(ctx context.Context, owner, name string) (model.LanguageStats, error) {
	path := fmt.Sprintf("repos/%s/%s/languages", url.PathEscape(owner), url.PathEscape(name))

	req, err := s.client.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var stats model.LanguageStats

	resp, err := s.client.Do(ctx, req, &stats)
	if err != nil {
		return nil, transportError("list languages", 0, resp, err)
	}

	return stats, nil
}

// Parent fetches the repository detail at detailURL and returns the
// owner/name of its parent
func (s *Source) Parent(ctx context.Context, detailURL string) (string, error) {
	if detailURL == "" {
		return "", errors.New("repository has no detail URL")
	}

	req, err := s.client.NewRequest(http.MethodGet, detailURL, nil)
	if err != nil {
		return "", err
	}

	var repo github.Repository

	resp, err := s.client.Do(ctx, req, &repo)
	if err != nil {
		return "", transportError("get repository", 0, resp, err)
	}

	parent := repo.GetParent().GetFullName()
	if parent == "" {
		return "", core.ErrNoParent
	}

	return parent, nil
}

func toModel(r *github.Repository) model.Repository {
	return model.Repository{
		Name:             r.GetName(),
		Owner:            r.GetOwner().GetLogin(),
		URL:              r.GetHTMLURL(),
		DetailURL:        r.GetURL(),
		CreatedAt:        r.GetCreatedAt().Time.UTC(),
		UpdatedAt:        r.GetUpdatedAt().Time.UTC(),
		Fork:             r.GetFork(),
		ReportedLanguage: r.GetLanguage(),
		Parent:           r.GetParent().GetFullName(),
	}
}

func transportError(op string, page int, resp *github.Response, err error) *core.TransportError {
	te := &core.TransportError{Op: op, Page: page, Err: err}
	if resp != nil && resp.Response != nil {
		te.StatusCode = resp.StatusCode
	}

	return te
}
