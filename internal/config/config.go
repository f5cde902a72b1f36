package config

// Config represents the full application configuration.
type Config struct {
	Repo          RepoConfig          `yaml:"repo"`
	Tracker       TrackerConfig       `yaml:"tracker"`
	HTTP          HTTPConfig          `yaml:"http"`
	Issue         IssueConfig         `yaml:"issue"`
	Output        OutputConfig        `yaml:"output"`
	Redaction     RedactionConfig     `yaml:"redaction"`
	Store         StoreConfig         `yaml:"store"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// RepoConfig locates the local checkout a run is scoped to.
type RepoConfig struct {
	Owner         string `yaml:"owner"`
	Name          string `yaml:"name"`
	RepositoryDir string `yaml:"repositoryDir"`
	Ref           string `yaml:"ref"`
}

// TrackerConfig configures the issue-tracker backend.
type TrackerConfig struct {
	Provider string `yaml:"provider"` // currently only "github"
	Token    string `yaml:"token"`
	BaseURL  string `yaml:"baseURL"`
}

// HTTPConfig holds global HTTP client settings shared by every tracker
// client.
type HTTPConfig struct {
	Timeout           string  `yaml:"timeout"`
	MaxRetries        int     `yaml:"maxRetries"`
	InitialBackoff    string  `yaml:"initialBackoff"`
	MaxBackoff        string  `yaml:"maxBackoff"`
	BackoffMultiplier float64 `yaml:"backoffMultiplier"`
}

// IssueConfig is the on-disk form of domain.IssueConfig, expanded with the
// string-keyed enum fields a YAML file can express directly.
type IssueConfig struct {
	Enabled             bool     `yaml:"enabled"`
	Label               string   `yaml:"label"`
	MaxNewPerRun        int      `yaml:"maxNewPerRun"`
	SeverityThreshold   string   `yaml:"severityThreshold"`
	ConfidenceThreshold string   `yaml:"confidenceThreshold"`
	CloseResolved       bool     `yaml:"closeResolved"`
	Assignees           []string `yaml:"assignees"`
}

// OutputConfig configures where SARIF exports and other artifacts land.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// RedactionConfig toggles scrubbing of secrets from rendered issue bodies.
type RedactionConfig struct {
	Enabled bool `yaml:"enabled"`
}

// StoreConfig configures the diagnostic operation-audit store.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures request/response logging.
type LoggingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Level         string `yaml:"level"`  // debug, info, error
	Format        string `yaml:"format"` // json, human
	RedactSecrets bool   `yaml:"redactSecrets"`
}

// Merge combines multiple configuration instances, prioritising the latter
// ones. Used to layer a config file over built-in defaults.
func Merge(configs ...Config) Config {
	result := Config{}
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}

func merge(base, overlay Config) Config {
	result := base

	result.Repo = chooseRepo(base.Repo, overlay.Repo)
	result.Tracker = chooseTracker(base.Tracker, overlay.Tracker)
	result.HTTP = chooseHTTP(base.HTTP, overlay.HTTP)
	result.Issue = chooseIssue(base.Issue, overlay.Issue)
	result.Output = chooseOutput(base.Output, overlay.Output)
	result.Redaction = chooseRedaction(base.Redaction, overlay.Redaction)
	result.Store = chooseStore(base.Store, overlay.Store)
	result.Observability = chooseObservability(base.Observability, overlay.Observability)

	return result
}

func chooseRepo(base, overlay RepoConfig) RepoConfig {
	if overlay.Owner != "" || overlay.Name != "" || overlay.RepositoryDir != "" || overlay.Ref != "" {
		return overlay
	}
	return base
}

func chooseTracker(base, overlay TrackerConfig) TrackerConfig {
	if overlay.Provider != "" || overlay.Token != "" || overlay.BaseURL != "" {
		return overlay
	}
	return base
}

func chooseOutput(base, overlay OutputConfig) OutputConfig {
	if overlay.Directory != "" {
		return overlay
	}
	return base
}

func chooseHTTP(base, overlay HTTPConfig) HTTPConfig {
	if overlay.Timeout != "" || overlay.MaxRetries != 0 || overlay.InitialBackoff != "" || overlay.MaxBackoff != "" || overlay.BackoffMultiplier != 0 {
		return overlay
	}
	return base
}

func chooseIssue(base, overlay IssueConfig) IssueConfig {
	if overlay.Enabled || overlay.Label != "" || overlay.MaxNewPerRun != 0 ||
		overlay.SeverityThreshold != "" || overlay.ConfidenceThreshold != "" ||
		overlay.CloseResolved || len(overlay.Assignees) > 0 {
		return overlay
	}
	return base
}

func chooseRedaction(base, overlay RedactionConfig) RedactionConfig {
	if overlay.Enabled {
		return overlay
	}
	return base
}

func chooseStore(base, overlay StoreConfig) StoreConfig {
	if overlay.Enabled || overlay.Path != "" {
		return overlay
	}
	return base
}

func chooseObservability(base, overlay ObservabilityConfig) ObservabilityConfig {
	result := base
	if overlay.Logging.Enabled || overlay.Logging.Level != "" || overlay.Logging.Format != "" {
		result.Logging = overlay.Logging
	}
	return result
}
