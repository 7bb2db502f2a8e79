package domain

import "time"

// Sentiment is the overall tone of a release
type Sentiment string

// sentiment values
const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentCritical Sentiment = "critical"
)

// Analysis is a structured AI summary of a release, cached per (source, version)
type Analysis struct {
	Version     string     `json:"version"`
	TLDR        string     `json:"tldr"`
	Categories  Categories `json:"categories"`
	ActionItems []string   `json:"actionItems"`
	Sentiment   Sentiment  `json:"sentiment"`
	CreatedAt   time.Time  `json:"createdAt,omitempty"`
}

// Categories groups release changes by kind
type Categories struct {
	CriticalBreakingChanges []string  `json:"criticalBreakingChanges"`
	Removals                []Removal `json:"removals"`
	MajorFeatures           []string  `json:"majorFeatures"`
	ImportantFixes          []string  `json:"importantFixes"`
	NewSlashCommands        []string  `json:"newSlashCommands"`
	TerminalImprovements    []string  `json:"terminalImprovements"`
	APIChanges              []string  `json:"apiChanges"`
}

// Removal describes a removed or deprecated feature
type Removal struct {
	Feature  string `json:"feature"`
	Severity string `json:"severity"`
	Why      string `json:"why"`
}

// Normalize replaces nil slices with empty ones and coerces unknown sentiment to neutral
func (a *Analysis) Normalize() {
	c := &a.Categories
	for _, s := range []*[]string{&c.CriticalBreakingChanges, &c.MajorFeatures, &c.ImportantFixes,
		&c.NewSlashCommands, &c.TerminalImprovements, &c.APIChanges, &a.ActionItems} {
		if *s == nil {
			*s = []string{}
		}
	}
	if c.Removals == nil {
		c.Removals = []Removal{}
	}
	switch a.Sentiment {
	case SentimentPositive, SentimentNeutral, SentimentCritical:
	default:
		a.Sentiment = SentimentNeutral
	}
}
