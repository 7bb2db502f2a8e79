package server

import (
	"errors"
	"net/http"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/changewatch/pkg/domain"
	"github.com/umputun/changewatch/pkg/feed"
)

const defaultRSSLimit = 50

// rssHandler serves the RSS feed of recently detected versions
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := s.monitor.History(ctx, defaultRSSLimit)
	if err != nil {
		log.Printf("[ERROR] failed to get history for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	entries := make([]feed.Entry, 0, len(records))
	for _, rec := range records {
		entry := feed.Entry{Record: rec}
		a, err := s.analyses.GetAnalysis(ctx, rec.SourceID, rec.Version)
		switch {
		case err == nil:
			entry.Analysis = a
		case !errors.Is(err, domain.ErrNotFound):
			log.Printf("[WARN] can't load analysis of %s for RSS: %v", rec.Version, err)
		}
		entries = append(entries, entry)
	}

	rss, err := feed.NewGenerator(s.config.GetBaseURL()).GenerateRSS(entries)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
