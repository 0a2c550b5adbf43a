package scans

import "strings"

// NormalizeRepoURL menghasilkan bentuk kanonik https dari macam-macam cara
// nulis repo URL. Idempotent: URL yang sudah kanonik tidak berubah.
//
//	git@github.com:acme/widget.git -> https://github.com/acme/widget.git
//	git://github.com/acme/widget.git -> https://github.com/acme/widget.git
//	github.com/acme/widget -> https://github.com/acme/widget.git
func NormalizeRepoURL(raw string) string {
	u := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(u, "git@"):
		// ssh shorthand: user@host:owner/repo
		rest := strings.TrimPrefix(u, "git@")
		rest = strings.Replace(rest, ":", "/", 1)
		u = "https://" + rest
	case strings.HasPrefix(u, "git://"):
		u = "https://" + strings.TrimPrefix(u, "git://")
	case strings.HasPrefix(u, "ssh://"):
		rest := strings.TrimPrefix(u, "ssh://")
		if i := strings.Index(rest, "@"); i >= 0 {
			rest = rest[i+1:]
		}
		u = "https://" + rest
	case strings.HasPrefix(u, "http://"):
		u = "https://" + strings.TrimPrefix(u, "http://")
	case strings.HasPrefix(u, "https://"):
		// sudah kanonik
	default:
		u = "https://" + u
	}
	if !strings.HasSuffix(u, ".git") {
		u += ".git"
	}
	return u
}

// RepoNameFromURL derives the short repository name: extension stripped,
// protocol/user prefix stripped, last path segment kept. Falls back to
// "unknown-repository" when no path segment exists.
func RepoNameFromURL(raw string) string {
	u := strings.TrimSuffix(strings.TrimSpace(raw), ".git")
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.Index(u, "@"); i >= 0 {
		u = u[i+1:]
	}
	u = strings.Replace(u, ":", "/", 1)
	parts := strings.Split(u, "/")
	// parts[0] is the host, never a repo name
	for i := len(parts) - 1; i >= 1; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return "unknown-repository"
}

// DetectProvider tebak provider dari host URL, fallback "git".
func DetectProvider(url string) string {
	u := strings.ToLower(url)
	switch {
	case strings.Contains(u, "github"):
		return "github"
	case strings.Contains(u, "gitlab"):
		return "gitlab"
	case strings.Contains(u, "bitbucket"):
		return "bitbucket"
	case strings.Contains(u, "azure"), strings.Contains(u, "visualstudio"):
		return "azure"
	}
	return "git"
}
