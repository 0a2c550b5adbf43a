package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	domain "github.com/bryanwahyu/scanbridge/internal/domain/scans"
)

// Config holds every run parameter. Built once per run by Load and read-only
// after that.
type Config struct {
	Token     string
	ServerURL string
	OrgID     string

	RepoURL string
	Branch  string

	Wait            bool
	TimeoutSec      int
	PollIntervalSec int

	OutputFormat string
	OutputFile   string

	UploadSARIF        bool
	FailOnCritical     bool
	FailOnHigh         bool
	MaxViolations      int
	SkipImportIfExists bool
	Verbose            bool

	// credential terpisah untuk ingestion endpoint
	GitHubToken string

	Mirror MirrorConfig
	AI     AIConfig
}

// MirrorConfig is the optional S3-compatible artifact mirror. Enabled only
// when Endpoint is set.
type MirrorConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"useSSL"`
}

// AIConfig is the optional remediation-summary feature. Enabled only when
// APIKey is set.
type AIConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

const (
	MinTimeoutSec      = 60
	MaxTimeoutSec      = 86400
	MinPollIntervalSec = 10
	MaxPollIntervalSec = 60

	defaultTimeoutSec      = 1800
	defaultPollIntervalSec = 30
	defaultFormat          = "sarif"
	defaultOutputBase      = "scan-results"
)

var validFormats = map[string]bool{
	"json":  true,
	"sarif": true,
	"csv":   true,
	"xml":   true,
	"junit": true,
}

// fileConfig is the optional YAML overlay, loaded before the environment so
// explicit inputs always win.
type fileConfig struct {
	ServerURL string       `yaml:"serverUrl"`
	OrgID     string       `yaml:"orgId"`
	Mirror    MirrorConfig `yaml:"mirror"`
	AI        AIConfig     `yaml:"ai"`
}

// input reads a GitHub Actions step input: INPUT_<NAME>, dashes mapped to
// underscores, surrounding whitespace trimmed.
func input(name string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return strings.TrimSpace(os.Getenv(key))
}

// boolInput parses with Actions boolean semantics: only true/True/TRUE and
// false/False/FALSE are accepted.
func boolInput(name string, def bool) (bool, error) {
	v := input(name)
	if v == "" {
		return def, nil
	}
	switch v {
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	}
	return false, fmt.Errorf("%w: input %q must be true or false, got %q", domain.ErrConfiguration, name, v)
}

func intInput(name string, def int) (int, error) {
	v := input(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: input %q must be an integer, got %q", domain.ErrConfiguration, name, v)
	}
	return n, nil
}

// Load resolves the full run configuration from the Actions environment plus
// the optional YAML overlay file. No side effects beyond reading env.
func Load() (*Config, error) {
	var overlay fileConfig
	if path := os.Getenv("SCANBRIDGE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read config file %s: %v", domain.ErrConfiguration, path, err)
		}
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			return nil, fmt.Errorf("%w: parse config file %s: %v", domain.ErrConfiguration, path, err)
		}
	}

	cfg := &Config{
		Token:     input("token"),
		ServerURL: firstOf(input("server-url"), overlay.ServerURL),
		OrgID:     firstOf(input("org-id"), overlay.OrgID),
		RepoURL:   input("repo-url"),
		Branch:    input("branch"),
		Mirror:    overlay.Mirror,
		AI:        overlay.AI,
	}

	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: input \"token\" is required", domain.ErrConfiguration)
	}
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("%w: input \"server-url\" is required", domain.ErrConfiguration)
	}
	if cfg.OrgID == "" {
		return nil, fmt.Errorf("%w: input \"org-id\" is required", domain.ErrConfiguration)
	}

	// repo/branch default dari context runner
	if cfg.RepoURL == "" {
		server := os.Getenv("GITHUB_SERVER_URL")
		repo := os.Getenv("GITHUB_REPOSITORY")
		if server != "" && repo != "" {
			cfg.RepoURL = server + "/" + repo
		}
	}
	if cfg.Branch == "" {
		cfg.Branch = os.Getenv("GITHUB_REF_NAME")
	}
	if cfg.RepoURL == "" {
		return nil, fmt.Errorf("%w: input \"repo-url\" is required outside a GitHub runner", domain.ErrConfiguration)
	}

	var err error
	if cfg.Wait, err = boolInput("wait", true); err != nil {
		return nil, err
	}
	if cfg.TimeoutSec, err = intInput("timeout", defaultTimeoutSec); err != nil {
		return nil, err
	}
	if cfg.TimeoutSec < MinTimeoutSec || cfg.TimeoutSec > MaxTimeoutSec {
		return nil, fmt.Errorf("%w: timeout must be between %d and %d seconds, got %d",
			domain.ErrConfiguration, MinTimeoutSec, MaxTimeoutSec, cfg.TimeoutSec)
	}
	if cfg.PollIntervalSec, err = intInput("poll-interval", defaultPollIntervalSec); err != nil {
		return nil, err
	}
	if cfg.PollIntervalSec < MinPollIntervalSec || cfg.PollIntervalSec > MaxPollIntervalSec {
		return nil, fmt.Errorf("%w: poll-interval must be between %d and %d seconds, got %d",
			domain.ErrConfiguration, MinPollIntervalSec, MaxPollIntervalSec, cfg.PollIntervalSec)
	}

	cfg.OutputFormat = strings.ToLower(input("output-format"))
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = defaultFormat
	}
	if !validFormats[cfg.OutputFormat] {
		return nil, fmt.Errorf("%w: output-format must be one of json, sarif, csv, xml, junit; got %q",
			domain.ErrConfiguration, cfg.OutputFormat)
	}
	cfg.OutputFile = input("output-file")
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile(cfg.OutputFormat)
	}

	if cfg.UploadSARIF, err = boolInput("upload-sarif", true); err != nil {
		return nil, err
	}
	if cfg.FailOnCritical, err = boolInput("fail-on-critical", false); err != nil {
		return nil, err
	}
	if cfg.FailOnHigh, err = boolInput("fail-on-high", false); err != nil {
		return nil, err
	}
	if cfg.MaxViolations, err = intInput("max-violations", 0); err != nil {
		return nil, err
	}
	if cfg.MaxViolations < 0 {
		return nil, fmt.Errorf("%w: max-violations must be non-negative, got %d",
			domain.ErrConfiguration, cfg.MaxViolations)
	}
	if cfg.SkipImportIfExists, err = boolInput("skip-import-if-exists", false); err != nil {
		return nil, err
	}
	if cfg.Verbose, err = boolInput("verbose", false); err != nil {
		return nil, err
	}

	cfg.GitHubToken = input("github-token")
	if cfg.GitHubToken == "" {
		cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}

	// mirror/AI inputs menimpa overlay file
	if v := input("mirror-endpoint"); v != "" {
		cfg.Mirror.Endpoint = v
	}
	if v := input("mirror-bucket"); v != "" {
		cfg.Mirror.Bucket = v
	}
	if v := input("mirror-access-key"); v != "" {
		cfg.Mirror.AccessKey = v
	}
	if v := input("mirror-secret-key"); v != "" {
		cfg.Mirror.SecretKey = v
	}
	if v := input("mirror-use-ssl"); v != "" {
		ssl, err := boolInput("mirror-use-ssl", false)
		if err != nil {
			return nil, err
		}
		cfg.Mirror.UseSSL = ssl
	}
	if v := input("openai-api-key"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := input("openai-model"); v != "" {
		cfg.AI.Model = v
	}
	if cfg.Mirror.Endpoint != "" && cfg.Mirror.Bucket == "" {
		return nil, fmt.Errorf("%w: mirror-bucket is required when mirror-endpoint is set", domain.ErrConfiguration)
	}

	return cfg, nil
}

// DefaultOutputFile derives the results filename from the format. JUnit is an
// XML dialect so it maps to the .xml extension.
func DefaultOutputFile(format string) string {
	if format == "junit" {
		return defaultOutputBase + ".xml"
	}
	return defaultOutputBase + "." + format
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
