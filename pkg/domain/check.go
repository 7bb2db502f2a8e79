package domain

// CheckResult is the outcome of one pipeline cycle for a source
type CheckResult struct {
	SourceID   int64  `json:"sourceId"`
	Version    string `json:"version"`
	NewVersion bool   `json:"newVersion"` // version differs from the last known one
	Notified   bool   `json:"notified"`   // notification email sent in this cycle
}

// RunSummary aggregates one pass over all active sources
type RunSummary struct {
	Checked     int `json:"checked"`
	NewVersions int `json:"newVersions"`
	Notified    int `json:"notified"`
	Failed      int `json:"failed"`
	Reconciled  int `json:"reconciled"`
}
