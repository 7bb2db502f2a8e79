package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/changewatch/pkg/domain"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

// sourceInfo is the API representation of a source
type sourceInfo struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	IsActive      bool       `json:"isActive"`
	LastVersion   string     `json:"lastVersion"`
	LastCheckedAt *time.Time `json:"lastCheckedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// versionInfo is the API representation of a version record
type versionInfo struct {
	SourceID       int64     `json:"sourceId"`
	SourceName     string    `json:"sourceName"`
	Version        string    `json:"version"`
	DetectedAt     time.Time `json:"detectedAt"`
	Notified       bool      `json:"notified"`
	NotifyAttempts int       `json:"notifyAttempts"`
}

// sourceRequest is the body of create and update requests, nil fields are left unchanged on update
type sourceRequest struct {
	Name     *string `json:"name"`
	URL      *string `json:"url"`
	IsActive *bool   `json:"isActive"`
}

func toSourceInfo(src *domain.Source) sourceInfo {
	return sourceInfo{
		ID:            src.ID,
		Name:          src.Name,
		URL:           src.URL,
		IsActive:      src.IsActive,
		LastVersion:   src.LastVersion,
		LastCheckedAt: src.LastCheckedAt,
		CreatedAt:     src.CreatedAt,
	}
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// listSourcesHandler returns all sources
func (s *Server) listSourcesHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := s.sources.ListSources(r.Context())
	if err != nil {
		renderError(w, r, fmt.Errorf("list sources: %w", err), http.StatusInternalServerError)
		return
	}
	res := make([]sourceInfo, 0, len(sources))
	for _, src := range sources {
		res = append(res, toSourceInfo(src))
	}
	renderJSON(w, r, http.StatusOK, res)
}

// createSourceHandler registers a new source
func (s *Server) createSourceHandler(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if req.Name == nil || req.URL == nil {
		renderError(w, r, &domain.ValidationError{Field: "source", Reason: "name and url are required"}, http.StatusBadRequest)
		return
	}

	src, err := s.sources.CreateSource(r.Context(), *req.Name, *req.URL)
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	if req.IsActive != nil && !*req.IsActive {
		if src, err = s.sources.UpdateSource(r.Context(), src.ID, domain.SourceUpdate{IsActive: req.IsActive}); err != nil {
			renderError(w, r, err, errorCode(err))
			return
		}
	}
	log.Printf("[INFO] source %q created, id %d", src.Name, src.ID)
	renderJSON(w, r, http.StatusCreated, toSourceInfo(src))
}

// getSourceHandler returns a single source
func (s *Server) getSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	src, err := s.sources.GetSource(r.Context(), id)
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, toSourceInfo(src))
}

// updateSourceHandler applies a partial update to a source
func (s *Server) updateSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req sourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	src, err := s.sources.UpdateSource(r.Context(), id, domain.SourceUpdate{Name: req.Name, URL: req.URL, IsActive: req.IsActive})
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, toSourceInfo(src))
}

// deleteSourceHandler removes a source with its history
func (s *Server) deleteSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.sources.DeleteSource(r.Context(), id); err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	log.Printf("[INFO] source %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// checkSourceHandler runs a check for one source and waits for the result
func (s *Server) checkSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := s.monitor.CheckSource(r.Context(), id)
	if err != nil {
		log.Printf("[WARN] check of source %d failed: %v", id, err)
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// analysisHandler returns the cached analysis of the source's last version
func (s *Server) analysisHandler(w http.ResponseWriter, r *http.Request) {
	src, a, ok := s.lastAnalysis(w, r)
	if !ok {
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"sourceId": src.ID, "version": src.LastVersion, "analysis": a})
}

// audioHandler returns WAV narration of the last analysis summary, synthesized on demand
func (s *Server) audioHandler(w http.ResponseWriter, r *http.Request) {
	_, a, ok := s.lastAnalysis(w, r)
	if !ok {
		return
	}
	voice := r.URL.Query().Get("voice")
	if voice == "" {
		if settings, err := s.monitor.Settings(r.Context()); err == nil {
			voice = settings[domain.SettingVoice]
		}
	}

	wav, err := s.synth.Synthesize(r.Context(), a.TLDR, voice)
	if err != nil {
		log.Printf("[WARN] audio for %s: %v", a.Version, err)
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(wav)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(wav); err != nil {
		log.Printf("[WARN] failed to write audio response: %v", err)
	}
}

// lastAnalysis loads the source and the cached analysis of its last version, renders errors itself
func (s *Server) lastAnalysis(w http.ResponseWriter, r *http.Request) (*domain.Source, *domain.Analysis, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, nil, false
	}
	src, err := s.sources.GetSource(r.Context(), id)
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return nil, nil, false
	}
	if src.LastVersion == "" {
		renderError(w, r, fmt.Errorf("source %d has no detected version: %w", id, domain.ErrNotFound), http.StatusNotFound)
		return nil, nil, false
	}
	a, err := s.analyses.GetAnalysis(r.Context(), id, src.LastVersion)
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return nil, nil, false
	}
	return src, a, true
}

// triggerCheckHandler starts a check of all active sources in background
func (s *Server) triggerCheckHandler(w http.ResponseWriter, r *http.Request) {
	s.monitor.TriggerCheck()
	renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "check started"})
}

// monitorStatusHandler returns scheduler state and the latest known version
func (s *Server) monitorStatusHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.monitor.Status(r.Context())
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, st)
}

// historyHandler returns recent version records, newest first
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	records, err := s.monitor.History(r.Context(), limit)
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	res := make([]versionInfo, 0, len(records))
	for _, rec := range records {
		res = append(res, versionInfo{SourceID: rec.SourceID, SourceName: rec.SourceName, Version: rec.Version,
			DetectedAt: rec.DetectedAt, Notified: rec.Notified, NotifyAttempts: rec.NotifyAttempts})
	}
	renderJSON(w, r, http.StatusOK, res)
}

// getSettingsHandler returns all settings
func (s *Server) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.monitor.Settings(r.Context())
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, settings)
}

// updateSettingsHandler stores settings and applies monitoring changes
func (s *Server) updateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if err := s.monitor.UpdateSettings(r.Context(), values); err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	settings, err := s.monitor.Settings(r.Context())
	if err != nil {
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, settings)
}

// pathID parses the {id} path value, renders 400 on failure
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		renderError(w, r, fmt.Errorf("invalid source ID %q", r.PathValue("id")), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// queryLimit parses the limit query parameter with default and upper bound
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultHistoryLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return min(limit, maxHistoryLimit), nil
}

// errorCode maps domain errors to HTTP status codes
func errorCode(err error) int {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrCheckInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
