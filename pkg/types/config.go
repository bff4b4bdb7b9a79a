package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "enuvex/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// APIConfig holds the congregation-API connection settings.
type APIConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API root for the people and group-membership endpoints.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// GroupsURL is the endpoint that lists all groups.
	GroupsURL string `json:"groups_url" yaml:"groups_url"`

	// Token is the bearer token sent in the Authorization header. The
	// "Bearer " prefix is added when absent.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// FetchConfig holds fan-out and retry settings for batch fetching.
type FetchConfig struct {
	// Concurrency is the ceiling on in-flight requests within one chunk
	// (default 50).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// PacingDelay is the wait between consecutive chunks (default 200ms).
	PacingDelay time.Duration `json:"pacing_delay" yaml:"pacing_delay"`

	// MaxAttempts is the number of attempts per request before the item is
	// reported failed (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// RetryBaseDelay is the base duration for exponential backoff between
	// attempts (default 1s).
	RetryBaseDelay time.Duration `json:"retry_base_delay" yaml:"retry_base_delay"`
}

// ExportConfig holds settings for the spreadsheet export run.
type ExportConfig struct {
	// OutputFile is the xlsx file to write. Empty selects a timestamped
	// default name.
	OutputFile string `json:"output_file" yaml:"output_file"`

	// GroupID restricts the export to a single group when non-zero.
	GroupID int `json:"group_id" yaml:"group_id"`

	// Dedupe attributes a person belonging to several groups to the first
	// group encountered instead of emitting duplicate rows.
	Dedupe bool `json:"dedupe" yaml:"dedupe"`
}

// UploadConfig holds settings for the spreadsheet upload run.
type UploadConfig struct {
	// InputFile is the xlsx file whose rows become person-creation calls.
	InputFile string `json:"input_file" yaml:"input_file"`

	// PostRate is the maximum creation requests per second (default 1).
	PostRate float64 `json:"post_rate" yaml:"post_rate"`

	// DefaultGroupID is assigned when a row names no groups.
	DefaultGroupID int `json:"default_group_id" yaml:"default_group_id"`

	// DefaultEmploymentID is assigned when a row names no employments.
	DefaultEmploymentID int `json:"default_employment_id" yaml:"default_employment_id"`
}

// LedgerConfig holds settings for the run-history ledger.
type LedgerConfig struct {
	// Path is the SQLite database file (default "enuvex.db").
	Path string `json:"path" yaml:"path"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	API    APIConfig    `json:"api" yaml:"api"`
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`
	Export ExportConfig `json:"export" yaml:"export"`
	Upload UploadConfig `json:"upload" yaml:"upload"`
	Ledger LedgerConfig `json:"ledger" yaml:"ledger"`
}
