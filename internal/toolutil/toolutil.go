// Package toolutil provides shared input helpers for go_cvmatch MCP tools.
package toolutil

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/anatolykoptev/go_cvmatch/internal/engine"
	"github.com/anatolykoptev/go_cvmatch/internal/engine/cvopt"
	"github.com/anatolykoptev/go_cvmatch/internal/ingest"
)

const maxJobTitleRunes = 80

// documentNS namespaces content-derived document IDs.
var documentNS = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/anatolykoptev/go_cvmatch/document"))

// ResolveText returns the inline text when set, otherwise the contents of path.
// Pasted HTML is converted to markdown. The result is normalized and capped at
// limit runes. When both are empty it fails with "<label> is required".
func ResolveText(text, path, label string, limit int) (string, error) {
	switch {
	case strings.TrimSpace(text) != "":
		if ingest.LooksLikeHTML(text) {
			md, err := ingest.FromHTML(text)
			if err != nil {
				return "", fmt.Errorf("%s: %w", label, err)
			}
			engine.IncrIngest("html_inline")
			text = md
		}
	case path != "":
		var err error
		text, err = ingest.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("%s: %w", label, err)
		}
	default:
		return "", cvopt.InvalidArgumentf("%s is required", label)
	}
	text = engine.NormalizeInput(text, limit)
	if text == "" {
		return "", cvopt.InvalidArgumentf("%s is empty", label)
	}
	return text, nil
}

// DocumentID returns id when set, otherwise a UUID derived from the texts so
// the same pair always maps to the same cache and history entry.
func DocumentID(id string, texts ...string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewSHA1(documentNS, []byte(strings.Join(texts, "\x00"))).String()
}

// GuessJobTitle picks a title for history listings: an explicit
// "Position:"/"Title:"/"Role:" line wins, else the first non-empty line.
func GuessJobTitle(jd string) string {
	first := ""
	for _, line := range strings.Split(jd, "\n") {
		line = cleanTitleLine(line)
		if line == "" {
			continue
		}
		if first == "" {
			first = line
		}
		lower := strings.ToLower(line)
		for _, p := range []string{"position:", "job title:", "title:", "role:"} {
			if strings.HasPrefix(lower, p) {
				if t := strings.TrimSpace(line[len(p):]); t != "" {
					return engine.TruncateAtWord(t, maxJobTitleRunes)
				}
			}
		}
	}
	return engine.TruncateAtWord(first, maxJobTitleRunes)
}

func cleanTitleLine(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "#>-• ")
	s = strings.ReplaceAll(s, "**", "")
	return strings.TrimSpace(s)
}
