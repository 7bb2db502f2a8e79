package changelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantVersion string
		wantContent string
	}{
		{
			name:        "latest of two versions",
			doc:         "## 2.0.74\nFix: bar\n## 2.0.73\n- older",
			wantVersion: "2.0.74",
			wantContent: "## 2.0.74\nFix: bar",
		},
		{
			name:        "single version runs to end of document",
			doc:         "# Changelog\n\nintro\n\n## 1.0.0\n- first\n- second\n",
			wantVersion: "1.0.0",
			wantContent: "## 1.0.0\n- first\n- second\n",
		},
		{
			name:        "bracketed keep-a-changelog header",
			doc:         "# Changelog\n## [1.4.0] - 2024-05-01\n### Added\n- thing\n## [1.3.9] - 2024-04-01\n",
			wantVersion: "1.4.0",
			wantContent: "## [1.4.0] - 2024-05-01\n### Added\n- thing",
		},
		{
			name:        "prerelease suffix",
			doc:         "## 3.0.0-beta.2\nnotes\n## 2.9.0\n",
			wantVersion: "3.0.0-beta.2",
			wantContent: "## 3.0.0-beta.2\nnotes",
		},
		{
			name:        "code fences and lists inside the block",
			doc:         "## 1.1.0\n```go\n## not a header\nfmt.Println()\n```\n- item\n## 1.0.0\n",
			wantVersion: "1.1.0",
			wantContent: "## 1.1.0\n```go\n## not a header\nfmt.Println()\n```\n- item",
		},
		{
			name:        "level three headers are not version headers",
			doc:         "### 9.9.9\n## 1.0.1\nfix\n### 1.0.0\nstill inside",
			wantVersion: "1.0.1",
			wantContent: "## 1.0.1\nfix\n### 1.0.0\nstill inside",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Parse(tc.doc)
			require.NotNil(t, res)
			assert.Equal(t, tc.wantVersion, res.Version)
			assert.Equal(t, tc.wantContent, res.Content)
		})
	}
}

func TestParse_NoVersion(t *testing.T) {
	for _, doc := range []string{"", "# Changelog\n\nnothing yet", "## Unreleased\n- wip", "## v1.2\n"} {
		assert.Nil(t, Parse(doc), "doc %q", doc)
	}
}

func TestParse_ContentBoundaries(t *testing.T) {
	// content is always the lines from the first header up to the second one
	versions := []string{"5.0.0", "4.2.1", "4.2.0", "1.0.0-rc.1"}
	var sb strings.Builder
	sb.WriteString("# Product changelog\n\n")
	for _, v := range versions {
		sb.WriteString("## " + v + "\n")
		sb.WriteString("- change for " + v + "\n\n")
	}

	res := Parser{}.Parse(sb.String())
	require.NotNil(t, res)
	assert.Equal(t, "5.0.0", res.Version)
	assert.Equal(t, "## 5.0.0\n- change for 5.0.0\n", res.Content)
	assert.NotContains(t, res.Content, "4.2.1")
}
