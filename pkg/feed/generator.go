package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/changewatch/pkg/domain"
)

// Entry is a detected version with an optional cached analysis
type Entry struct {
	Record   domain.VersionRecord
	Analysis *domain.Analysis
}

// Generator creates RSS feeds of detected versions
type Generator struct {
	baseURL string
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GenerateRSS creates an RSS 2.0 feed of version records, entries expected newest first
func (g *Generator) GenerateRSS(entries []Entry) (string, error) {
	rssItems := make([]*RSSItem, 0, len(entries))
	for _, e := range entries {
		rssItems = append(rssItems, g.convertToRSSItem(e))
	}

	buildDate := time.Now()
	if len(entries) > 0 && !entries[0].Record.DetectedAt.IsZero() {
		buildDate = entries[0].Record.DetectedAt
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         "Changewatch - detected releases",
			Link:          g.baseURL + "/",
			Description:   "New versions detected in monitored changelogs",
			AtomLink:      &AtomLink{Href: g.baseURL + "/api/v1/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: buildDate.Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

// convertToRSSItem makes an item per version, guid is stable per (source, version)
func (g *Generator) convertToRSSItem(e Entry) *RSSItem {
	rec := e.Record
	name := rec.SourceName
	if name == "" {
		name = fmt.Sprintf("source #%d", rec.SourceID)
	}

	desc := fmt.Sprintf("Version %s of %s detected", rec.Version, name)
	var categories []string
	if a := e.Analysis; a != nil {
		if a.TLDR != "" {
			desc = a.TLDR
		}
		if n := len(a.Categories.CriticalBreakingChanges); n > 0 {
			desc += fmt.Sprintf("\nBreaking changes: %s", strings.Join(a.Categories.CriticalBreakingChanges, "; "))
		}
		if a.Sentiment != "" {
			categories = append(categories, string(a.Sentiment))
		}
	}

	return &RSSItem{
		Title:       fmt.Sprintf("[%s] %s", name, rec.Version),
		Link:        fmt.Sprintf("%s/api/v1/sources/%d/analysis", g.baseURL, rec.SourceID),
		GUID:        &RSSGUID{Value: fmt.Sprintf("changewatch:%d:%s", rec.SourceID, rec.Version), IsPermaLink: "false"},
		Description: desc,
		PubDate:     rec.DetectedAt.Format(time.RFC1123Z),
		Categories:  categories,
	}
}
