// Package ingest turns résumé and job-description files into plain text.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/anatolykoptev/go_cvmatch/internal/engine"
)

// ErrUnsupportedFormat is returned for file extensions ReadFile cannot read.
var ErrUnsupportedFormat = errors.New("ingest: unsupported file format")

var (
	reDocxBreak = regexp.MustCompile(`</w:p>|<w:br[^>]*/>|<w:tab[^>]*/>`)
	reXMLTag    = regexp.MustCompile(`<[^>]+>`)
	reHTMLTag   = regexp.MustCompile(`(?i)<(html|body|div|p|ul|ol|li|h[1-6]|br|span|table|section|article)[\s/>]`)
	reBlankRuns = regexp.MustCompile(`\n{3,}`)
)

// ReadFile extracts text from a .pdf, .docx, .html/.htm, .txt or .md file.
func ReadFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = readPDF(path)
	case ".docx":
		text, err = readDocx(path)
	case ".html", ".htm":
		var data []byte
		if data, err = os.ReadFile(path); err == nil {
			text, err = FromHTML(string(data))
		}
	case ".txt", ".md", ".text", ".markdown":
		var data []byte
		if data, err = os.ReadFile(path); err == nil {
			text = string(data)
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", err
	}
	engine.IncrIngest(strings.TrimPrefix(ext, "."))
	return text, nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("ingest: open pdf: %w", err)
	}
	defer f.Close()

	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("ingest: read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("ingest: read pdf text: %w", err)
	}
	return buf.String(), nil
}

func readDocx(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("ingest: parse docx: %w", err)
	}
	defer r.Close()
	return docxText(r.Editable().GetContent()), nil
}

// docxText flattens WordprocessingML into lines, one per paragraph.
func docxText(xml string) string {
	s := reDocxBreak.ReplaceAllStringFunc(xml, func(m string) string {
		if strings.HasPrefix(m, "<w:tab") {
			return "\t"
		}
		return "\n"
	})
	s = reXMLTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	s = strings.Join(lines, "\n")
	return strings.TrimSpace(reBlankRuns.ReplaceAllString(s, "\n\n"))
}

// FromHTML converts an HTML fragment or page to markdown text.
func FromHTML(s string) (string, error) {
	md, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return "", fmt.Errorf("ingest: convert html: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// LooksLikeHTML reports whether pasted text carries block-level HTML markup.
func LooksLikeHTML(s string) bool {
	return reHTMLTag.MatchString(s)
}
