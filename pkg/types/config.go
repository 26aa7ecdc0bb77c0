package types

import (
	"errors"
	"time"
)

// Defaults applied by the Config getters.
const (
	// DefaultPageName is the document key the record is stored under.
	DefaultPageName = "usernotes"

	// DefaultMaxRetries is the transient-error retry budget.
	DefaultMaxRetries = 2
)

// Config validation errors.
var (
	ErrSubredditEmpty = errors.New("subreddit must not be empty")
	ErrRetriesInvalid = errors.New("max retries must not be negative")
)

// Config holds the per-store settings for a UserNotes instance.
type Config struct {
	// Subreddit is the community the record belongs to. Used as the
	// context when expanding l-type shorthand links.
	Subreddit string `json:"subreddit" yaml:"subreddit"`

	// PageName is the document key. Empty means DefaultPageName.
	PageName string `json:"page_name" yaml:"page_name"`

	// Moderator is the acting session identity, used to fill a note's
	// author when the caller left it empty.
	Moderator string `json:"moderator" yaml:"moderator"`

	// MaxRetries is the transient-error retry budget. Zero means
	// DefaultMaxRetries; negative is invalid.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// CacheTTL is the freshness window: a Sync younger than this returns
	// the cached record without contacting the document store. Zero means
	// always fetch.
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`

	// LazyStart skips the initial fetch at construction.
	LazyStart bool `json:"lazy_start" yaml:"lazy_start"`
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Subreddit == "" {
		return ErrSubredditEmpty
	}
	if c.MaxRetries < 0 {
		return ErrRetriesInvalid
	}
	return nil
}

// GetPageName returns the configured page name or DefaultPageName.
func (c Config) GetPageName() string {
	if c.PageName == "" {
		return DefaultPageName
	}
	return c.PageName
}

// GetMaxRetries returns the configured retry budget or DefaultMaxRetries.
func (c Config) GetMaxRetries() int {
	if c.MaxRetries == 0 {
		return DefaultMaxRetries
	}
	return c.MaxRetries
}
