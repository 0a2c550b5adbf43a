package ghactions

import "os"
import "strings"

// Context is the slice of the runner environment the pipeline cares about:
// who triggered what, where, and which API base to publish findings to.
type Context struct {
	Owner     string
	Repo      string
	Ref       string
	CommitSHA string
	Actor     string
	Workflow  string
	RunID     string
	EventName string
	APIBase   string
	ServerURL string
}

// FromEnv reads the GITHUB_* variables the runner injects into every step.
// Missing values stay empty; callers decide what is required.
func FromEnv() Context {
	owner, repo := splitRepo(os.Getenv("GITHUB_REPOSITORY"))
	apiBase := os.Getenv("GITHUB_API_URL")
	if apiBase == "" {
		apiBase = "https://api.github.com"
	}
	serverURL := os.Getenv("GITHUB_SERVER_URL")
	if serverURL == "" {
		serverURL = "https://github.com"
	}
	return Context{
		Owner:     owner,
		Repo:      repo,
		Ref:       os.Getenv("GITHUB_REF"),
		CommitSHA: os.Getenv("GITHUB_SHA"),
		Actor:     os.Getenv("GITHUB_ACTOR"),
		Workflow:  os.Getenv("GITHUB_WORKFLOW"),
		RunID:     os.Getenv("GITHUB_RUN_ID"),
		EventName: os.Getenv("GITHUB_EVENT_NAME"),
		APIBase:   apiBase,
		ServerURL: serverURL,
	}
}

func splitRepo(full string) (owner, repo string) {
	parts := strings.SplitN(full, "/", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
