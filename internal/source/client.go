// Package source adapts the GitHub REST API to the repository source and
// lookup interfaces used by the pipeline.
package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"
)

// NewClient creates a GitHub API client. An empty token yields an
// unauthenticated client; a non-empty apiURL targets GitHub Enterprise.
func NewClient(ctx context.Context, token, apiURL string) (*github.Client, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(httpClient)

	if apiURL == "" {
		return client, nil
	}

	client, err := client.WithEnterpriseURLs(apiURL, apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
	}

	return client, nil
}
