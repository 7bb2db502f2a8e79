package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Source represents a monitored changelog endpoint
type Source struct {
	ID            int64
	Name          string
	URL           string
	IsActive      bool
	LastVersion   string // empty until the first version is detected
	LastCheckedAt *time.Time
	CreatedAt     time.Time
}

// SourceUpdate holds a partial update of user-editable source fields, nil means unchanged
type SourceUpdate struct {
	Name     *string
	URL      *string
	IsActive *bool
}

// Empty reports whether the update carries no fields
func (u SourceUpdate) Empty() bool {
	return u.Name == nil && u.URL == nil && u.IsActive == nil
}

// Identifier returns a human-readable identifier for logs
func (s *Source) Identifier() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}

// ValidateSourceURL checks that the value is a syntactically valid absolute http(s) URL
func ValidateSourceURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &ValidationError{Field: "url", Reason: "is required"}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return &ValidationError{Field: "url", Reason: fmt.Sprintf("can't parse: %v", err)}
	}
	if !u.IsAbs() || u.Host == "" {
		return &ValidationError{Field: "url", Reason: "must be an absolute URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "url", Reason: "scheme must be http or https"}
	}
	return nil
}

// ValidateSourceName checks that the name is present
func ValidateSourceName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	return nil
}
