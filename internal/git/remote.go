package git

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// RemoteURL reads the URL of remote from the working tree's .git/config
// without running git
func RemoteURL(repoDir, remote string) (string, error) {
	path := filepath.Join(repoDir, ".git", "config")

	cfg, err := ini.Load(path)
	if err != nil {
		return "", fmt.Errorf("failed to read git config: %w", err)
	}

	section := fmt.Sprintf("remote %q", remote)
	if !cfg.HasSection(section) {
		return "", fmt.Errorf("remote %q not configured", remote)
	}

	u := cfg.Section(section).Key("url").String()
	if u == "" {
		return "", fmt.Errorf("remote %q has no url", remote)
	}

	return u, nil
}

// SanitizeURL removes credentials from a remote URL so it can be logged
func SanitizeURL(rawURL string) string {
	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok {
		return rawURL
	}

	host, path, _ := strings.Cut(rest, "/")

	if at := strings.LastIndex(host, "@"); at != -1 {
		host = host[at+1:]
	}

	if path == "" && !strings.Contains(rest, "/") {
		return scheme + "://" + host
	}

	return scheme + "://" + host + "/" + path
}
