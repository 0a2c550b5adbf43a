package scans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRepoURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"ssh shorthand", "git@github.com:acme/widget.git", "https://github.com/acme/widget.git"},
		{"git protocol", "git://github.com/acme/widget.git", "https://github.com/acme/widget.git"},
		{"bare host path", "github.com/acme/widget", "https://github.com/acme/widget.git"},
		{"plain http", "http://github.com/acme/widget.git", "https://github.com/acme/widget.git"},
		{"already canonical", "https://github.com/acme/widget.git", "https://github.com/acme/widget.git"},
		{"missing extension", "https://gitlab.com/acme/widget", "https://gitlab.com/acme/widget.git"},
		{"ssh url with user", "ssh://git@bitbucket.org/acme/widget.git", "https://bitbucket.org/acme/widget.git"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeRepoURL(tc.in))
		})
	}
}

func TestNormalizeRepoURL_Idempotent(t *testing.T) {
	inputs := []string{
		"git@github.com:acme/widget.git",
		"github.com/acme/widget",
		"https://github.com/acme/widget.git",
	}
	for _, in := range inputs {
		once := NormalizeRepoURL(in)
		assert.Equal(t, once, NormalizeRepoURL(once))
	}
}

func TestRepoNameFromURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://github.com/acme/widget.git", "widget"},
		{"git@github.com:acme/widget.git", "widget"},
		{"https://gitlab.com/group/subgroup/widget", "widget"},
		{"https://github.com", "unknown-repository"},
		{"github.com", "unknown-repository"},
		{"https://github.com/acme/widget/", "widget"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RepoNameFromURL(tc.in), "input %q", tc.in)
	}
}

func TestDetectProvider(t *testing.T) {
	assert.Equal(t, "github", DetectProvider("https://github.com/acme/widget.git"))
	assert.Equal(t, "gitlab", DetectProvider("https://gitlab.example.io/acme/widget.git"))
	assert.Equal(t, "bitbucket", DetectProvider("https://bitbucket.org/acme/widget.git"))
	assert.Equal(t, "azure", DetectProvider("https://dev.azure.com/acme/widget"))
	assert.Equal(t, "git", DetectProvider("https://code.internal.example/acme/widget.git"))
}
