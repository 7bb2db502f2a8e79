package changelog

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/go-pkgz/lgr"
)

// maxDocumentSize limits the changelog body read from the network
const maxDocumentSize = 10 * 1024 * 1024

// FetchError is returned for a non-success response status
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status code %d", e.URL, e.StatusCode)
}

// Retryable reports whether the status is worth retrying
func (e *FetchError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// HTTPFetcher retrieves changelog documents over HTTP
type HTTPFetcher struct {
	client      *http.Client
	userAgent   string
	convertHTML bool
	mdConverter *converter.Converter
}

// FetcherConfig holds HTTPFetcher parameters
type FetcherConfig struct {
	Timeout     time.Duration
	UserAgent   string
	ConvertHTML bool // convert text/html responses to markdown
}

// NewHTTPFetcher creates a new changelog fetcher
func NewHTTPFetcher(cfg FetcherConfig) *HTTPFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Changewatch/1.0"
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:   cfg.UserAgent,
		convertHTML: cfg.ConvertHTML,
		mdConverter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Fetch retrieves the document at url and returns its body as text
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	addBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}

	if f.convertHTML && isHTML(resp.Header.Get("Content-Type")) {
		return f.htmlToMarkdown(string(body), url), nil
	}
	return string(body), nil
}

// htmlToMarkdown converts an html page to markdown, falling back to the raw page on failure
func (f *HTTPFetcher) htmlToMarkdown(html, sourceURL string) string {
	result, err := f.mdConverter.ConvertString(html, converter.WithDomain(sourceURL))
	if err != nil || strings.TrimSpace(result) == "" {
		lgr.Printf("[WARN] can't convert html from %s to markdown, using raw body: %v", sourceURL, err)
		return html
	}
	return result
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
