package gitlog

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
)

// RemoteURL returns the https browse URL of the "origin" remote, or empty
// string if the repository has no origin. SSH and SCP-style remote URLs are
// rewritten to https so the result can be used as a commit link base.
func RemoteURL(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		if err == git.ErrRemoteNotFound {
			logDebug("[gitlog] RemoteURL: no origin remote")
			return "", nil
		}
		return "", fmt.Errorf("looking up origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}

	normalized := NormalizeRemoteURL(urls[0])
	logDebug("[gitlog] RemoteURL: %s -> %s", urls[0], normalized)
	return normalized, nil
}

// NormalizeRemoteURL converts any common git remote URL form into an https
// browse URL with no trailing ".git":
//   - git@github.com:owner/repo.git -> https://github.com/owner/repo
//   - ssh://git@host/owner/repo.git -> https://host/owner/repo
//   - https://host/owner/repo.git   -> https://host/owner/repo
//
// URLs that do not match a known form are returned with only the ".git"
// suffix trimmed.
func NormalizeRemoteURL(raw string) string {
	url := strings.TrimSpace(raw)
	url = strings.TrimSuffix(url, "/")

	switch {
	case strings.HasPrefix(url, "ssh://"):
		url = strings.TrimPrefix(url, "ssh://")
		if at := strings.Index(url, "@"); at >= 0 {
			url = url[at+1:]
		}
		url = "https://" + url
	case strings.HasPrefix(url, "git+ssh://"):
		url = strings.TrimPrefix(url, "git+ssh://")
		if at := strings.Index(url, "@"); at >= 0 {
			url = url[at+1:]
		}
		url = "https://" + url
	case strings.HasPrefix(url, "git@"):
		// SCP-style: git@host:owner/repo
		url = strings.TrimPrefix(url, "git@")
		url = "https://" + strings.Replace(url, ":", "/", 1)
	case strings.HasPrefix(url, "git://"):
		url = "https://" + strings.TrimPrefix(url, "git://")
	}

	return strings.TrimSuffix(url, ".git")
}
