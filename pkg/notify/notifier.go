package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/changewatch/pkg/domain"
)

//go:generate moq -out mocks/sender.go -pkg mocks -skip-ensure -fmt goimports . Sender

//go:embed templates
var templateFS embed.FS

// Sender delivers a composed email
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Release describes a detected version to notify about
type Release struct {
	SourceName string
	SourceURL  string
	Version    string
	Analysis   *domain.Analysis
	Audio      []byte // WAV, optional
	Recipient  string // overrides the default recipient if set
}

// Notifier renders release emails and hands them to the sender
type Notifier struct {
	sender    Sender
	defaultTo string
	textTmpl  *texttemplate.Template
	htmlTmpl  *htmltemplate.Template
	policy    *bluemonday.Policy
}

// NewNotifier makes a notifier with embedded templates
func NewNotifier(sender Sender, defaultTo string) (*Notifier, error) {
	textTmpl, err := texttemplate.New("email").ParseFS(templateFS, "templates/release_text.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	htmlTmpl, err := htmltemplate.New("email").ParseFS(templateFS, "templates/release_html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	return &Notifier{sender: sender, defaultTo: defaultTo, textTmpl: textTmpl, htmlTmpl: htmlTmpl,
		policy: bluemonday.StrictPolicy()}, nil
}

// NotifyRelease renders and sends the release email, with audio attached as WAV if present
func (n *Notifier) NotifyRelease(ctx context.Context, rel Release) error {
	to := strings.TrimSpace(rel.Recipient)
	if to == "" {
		to = n.defaultTo
	}
	if to == "" {
		return fmt.Errorf("no recipient configured")
	}
	if rel.Analysis == nil {
		return fmt.Errorf("no analysis for %s %s", rel.SourceName, rel.Version)
	}

	msg, err := n.Render(rel)
	if err != nil {
		return err
	}
	msg.To = splitRecipients(to)
	if len(rel.Audio) > 0 {
		msg.Attachments = []Attachment{{
			Filename: audioFilename(rel.SourceName, rel.Version),
			MimeType: "audio/wav",
			Data:     rel.Audio,
		}}
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send release email for %s %s: %w", rel.SourceName, rel.Version, err)
	}
	return nil
}

// Render builds subject and bodies of the release email
func (n *Notifier) Render(rel Release) (Message, error) {
	data := n.view(rel)
	var subject, plain, htmlBody bytes.Buffer
	if err := n.textTmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return Message{}, fmt.Errorf("render subject: %w", err)
	}
	if err := n.textTmpl.ExecuteTemplate(&plain, "plainBody", data); err != nil {
		return Message{}, fmt.Errorf("render plain body: %w", err)
	}
	if err := n.htmlTmpl.ExecuteTemplate(&htmlBody, "htmlBody", data); err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}
	return Message{
		Subject:  strings.TrimSpace(subject.String()),
		TextBody: strings.TrimSpace(plain.String()),
		HTMLBody: htmlBody.String(),
	}, nil
}

type section struct {
	Title string
	Items []string
}

type emailView struct {
	SourceName     string
	SourceURL      string
	Version        string
	TLDR           string
	Sentiment      string
	SentimentColor string
	Critical       bool
	Sections       []section
	Removals       []domain.Removal
	ActionItems    []string
	HasAudio       bool
}

// view prepares template data, model output is stripped of any markup
func (n *Notifier) view(rel Release) emailView {
	a := rel.Analysis
	v := emailView{
		SourceName:  n.clean(rel.SourceName),
		SourceURL:   rel.SourceURL,
		Version:     n.clean(rel.Version),
		TLDR:        n.clean(a.TLDR),
		Sentiment:   string(a.Sentiment),
		Critical:    a.Sentiment == domain.SentimentCritical || len(a.Categories.CriticalBreakingChanges) > 0,
		ActionItems: n.cleanAll(a.ActionItems),
		HasAudio:    len(rel.Audio) > 0,
	}
	switch a.Sentiment {
	case domain.SentimentPositive:
		v.SentimentColor = "#1a7f37"
	case domain.SentimentCritical:
		v.SentimentColor = "#cf222e"
	default:
		v.SentimentColor = "#57606a"
	}
	if v.Sentiment == "" {
		v.Sentiment = string(domain.SentimentNeutral)
	}

	c := a.Categories
	for _, s := range []section{
		{"Breaking changes", c.CriticalBreakingChanges},
		{"Major features", c.MajorFeatures},
		{"Important fixes", c.ImportantFixes},
		{"New slash commands", c.NewSlashCommands},
		{"Terminal improvements", c.TerminalImprovements},
		{"API changes", c.APIChanges},
	} {
		if items := n.cleanAll(s.Items); len(items) > 0 {
			v.Sections = append(v.Sections, section{Title: s.Title, Items: items})
		}
	}
	for _, r := range c.Removals {
		v.Removals = append(v.Removals, domain.Removal{Feature: n.clean(r.Feature), Severity: n.clean(r.Severity), Why: n.clean(r.Why)})
	}
	return v
}

// clean strips markup, unescaping entities so the html template escapes them exactly once
func (n *Notifier) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(n.policy.Sanitize(s)))
}

func (n *Notifier) cleanAll(items []string) []string {
	res := make([]string, 0, len(items))
	for _, s := range items {
		if c := n.clean(s); c != "" {
			res = append(res, c)
		}
	}
	return res
}

func splitRecipients(to string) []string {
	var res []string
	for _, r := range strings.Split(to, ",") {
		if r = strings.TrimSpace(r); r != "" {
			res = append(res, r)
		}
	}
	return res
}

func audioFilename(source, version string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		}
		return '-'
	}, source+"-"+version)
	return strings.ToLower(name) + ".wav"
}
