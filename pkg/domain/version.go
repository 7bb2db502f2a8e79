package domain

import "time"

// VersionRecord is a detected version of a source. One record per (version, source) pair.
type VersionRecord struct {
	ID             int64
	SourceID       int64
	SourceName     string // filled by history listings
	Version        string
	DetectedAt     time.Time
	Notified       bool
	NotifyAttempts int
}

// ParsedEntry is the latest version block extracted from a changelog document
type ParsedEntry struct {
	Version string
	Content string
}
