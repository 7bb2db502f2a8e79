// Package changelog fetches changelog documents and extracts the latest version block from them.
package changelog

import (
	"regexp"
	"strings"

	"github.com/umputun/changewatch/pkg/domain"
)

// versionHeader matches a level-two heading carrying a semver-like token, e.g. "## 1.2.3",
// "## [1.2.3] - 2024-01-01" or "## 2.0.0-beta.1"
var versionHeader = regexp.MustCompile(`^##\s+\[?(\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?)`)

// Parse returns the first version block of the document: the first version header line and every
// following line up to, but excluding, the next version header. Returns nil if the document has no
// version header.
func Parse(doc string) *domain.ParsedEntry {
	var version string
	var captured []string
	for _, line := range strings.Split(doc, "\n") {
		m := versionHeader.FindStringSubmatch(line)
		if m != nil {
			if version != "" {
				break // second header ends the block
			}
			version = m[1]
		}
		if version != "" {
			captured = append(captured, line)
		}
	}
	if version == "" {
		return nil
	}
	return &domain.ParsedEntry{Version: version, Content: strings.Join(captured, "\n")}
}

// Parser is a stateless VersionParser, usable where an interface is expected
type Parser struct{}

// Parse extracts the latest version block, see package-level Parse
func (Parser) Parse(doc string) *domain.ParsedEntry {
	return Parse(doc)
}
