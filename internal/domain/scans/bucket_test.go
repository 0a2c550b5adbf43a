package scans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketViolationType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"sast", "Security Issues"},
		{"SAST", "Security Issues"},
		{"Agentic_Sast", "Security Issues"},
		{"secret", "Secret Exposure"},
		{"secrets", "Secret Exposure"},
		{"SECRETS", "Secret Exposure"},
		{"sca", "Dependency Issues"},
		{"iac", "Infrastructure-as-Code Issues"},
		{"sbom", "Software Bill of Materials"},
		{"foo", "Foo"},
		{"custom check", "Custom Check"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BucketViolationType(tc.in), "input %q", tc.in)
	}
}

func TestBucketViolationType_Stable(t *testing.T) {
	// same input always lands in the same bucket
	assert.Equal(t, BucketViolationType("sast"), BucketViolationType("SAST"))
	assert.Equal(t, BucketViolationType("secret"), BucketViolationType("secrets"))
}

func TestDashboardURL(t *testing.T) {
	assert.Equal(t,
		"https://app.scanplatform.io/orgs/acme/scans/scan-42",
		DashboardURL("https://api.scanplatform.io", "acme", "scan-42"))
	assert.Equal(t,
		"https://app.scanplatform.io/orgs/acme/scans/scan-42",
		DashboardURL("https://api.scanplatform.io/api/", "acme", "scan-42"))
	// host without the api prefix keeps its name
	assert.Equal(t,
		"https://scanner.example.com/orgs/acme/scans/s1",
		DashboardURL("https://scanner.example.com/api", "acme", "s1"))
}
