package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/changewatch/pkg/domain"
	"github.com/umputun/changewatch/pkg/notify"
	"github.com/umputun/changewatch/pkg/notify/mocks"
)

func testAnalysis() *domain.Analysis {
	a := &domain.Analysis{
		Version: "2.0.74",
		TLDR:    "Fixes <b>bar</b> & speeds up startup.",
		Categories: domain.Categories{
			MajorFeatures:  []string{"plugin marketplace"},
			ImportantFixes: []string{"bar no longer crashes <script>alert(1)</script>"},
			Removals:       []domain.Removal{{Feature: "legacy mode", Severity: "high", Why: "superseded"}},
		},
		ActionItems: []string{"remove --legacy flag"},
		Sentiment:   domain.SentimentPositive,
	}
	a.Normalize()
	return a
}

func TestNotifier_NotifyRelease(t *testing.T) {
	sender := &mocks.SenderMock{SendFunc: func(context.Context, notify.Message) error { return nil }}
	n, err := notify.NewNotifier(sender, "default@example.com")
	require.NoError(t, err)

	err = n.NotifyRelease(context.Background(), notify.Release{
		SourceName: "Claude Code",
		SourceURL:  "https://example.com/CHANGELOG.md",
		Version:    "2.0.74",
		Analysis:   testAnalysis(),
		Audio:      []byte("RIFFdata"),
	})
	require.NoError(t, err)
	require.Len(t, sender.SendCalls(), 1)

	msg := sender.SendCalls()[0].Msg
	assert.Equal(t, []string{"default@example.com"}, msg.To)
	assert.Equal(t, "[Claude Code] 2.0.74 released", msg.Subject)

	assert.Contains(t, msg.HTMLBody, "Fixes bar &amp; speeds up startup.")
	assert.NotContains(t, msg.HTMLBody, "<b>bar</b>")
	assert.NotContains(t, msg.HTMLBody, "<script>")
	assert.Contains(t, msg.HTMLBody, "plugin marketplace")
	assert.Contains(t, msg.HTMLBody, "legacy mode")
	assert.Contains(t, msg.HTMLBody, `href="https://example.com/CHANGELOG.md"`)
	assert.NotContains(t, msg.HTMLBody, "Breaking changes", "empty sections are skipped")

	assert.Contains(t, msg.TextBody, "Fixes bar & speeds up startup.")
	assert.Contains(t, msg.TextBody, "- remove --legacy flag")
	assert.Contains(t, msg.TextBody, "An audio briefing is attached.")

	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "claude-code-2.0.74.wav", msg.Attachments[0].Filename)
	assert.Equal(t, "audio/wav", msg.Attachments[0].MimeType)
	assert.Equal(t, []byte("RIFFdata"), msg.Attachments[0].Data)
}

func TestNotifier_RecipientOverrideAndNoAudio(t *testing.T) {
	sender := &mocks.SenderMock{SendFunc: func(context.Context, notify.Message) error { return nil }}
	n, err := notify.NewNotifier(sender, "default@example.com")
	require.NoError(t, err)

	a := testAnalysis()
	a.Sentiment = domain.SentimentCritical
	err = n.NotifyRelease(context.Background(), notify.Release{SourceName: "tool", Version: "1.0.0",
		Analysis: a, Recipient: "a@example.com, b@example.com"})
	require.NoError(t, err)

	msg := sender.SendCalls()[0].Msg
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, msg.To)
	assert.Empty(t, msg.Attachments)
	assert.Equal(t, "[tool] 1.0.0 released - action needed", msg.Subject)
	assert.NotContains(t, msg.TextBody, "audio briefing")
}

func TestNotifier_Errors(t *testing.T) {
	t.Run("no recipient", func(t *testing.T) {
		sender := &mocks.SenderMock{}
		n, err := notify.NewNotifier(sender, "")
		require.NoError(t, err)
		err = n.NotifyRelease(context.Background(), notify.Release{SourceName: "x", Version: "1", Analysis: testAnalysis()})
		require.Error(t, err)
		assert.Empty(t, sender.SendCalls())
	})

	t.Run("no analysis", func(t *testing.T) {
		n, err := notify.NewNotifier(&mocks.SenderMock{}, "to@example.com")
		require.NoError(t, err)
		require.Error(t, n.NotifyRelease(context.Background(), notify.Release{SourceName: "x", Version: "1"}))
	})

	t.Run("send failure", func(t *testing.T) {
		sender := &mocks.SenderMock{SendFunc: func(context.Context, notify.Message) error { return errors.New("smtp down") }}
		n, err := notify.NewNotifier(sender, "to@example.com")
		require.NoError(t, err)
		err = n.NotifyRelease(context.Background(), notify.Release{SourceName: "x", Version: "1", Analysis: testAnalysis()})
		require.ErrorContains(t, err, "smtp down")
	})
}
