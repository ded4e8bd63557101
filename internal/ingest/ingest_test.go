package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFile_Text(t *testing.T) {
	for _, name := range []string{"cv.txt", "cv.md", "CV.TXT"} {
		path := writeFile(t, name, "SKILLS\nGo, Python\n")
		got, err := ReadFile(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != "SKILLS\nGo, Python\n" {
			t.Errorf("%s: got %q", name, got)
		}
	}
}

func TestReadFile_HTML(t *testing.T) {
	path := writeFile(t, "jd.html", `<html><body><h2>Requirements</h2><ul><li>Python</li><li>Docker</li></ul></body></html>`)
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Requirements", "Python", "Docker"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
	if strings.Contains(got, "<li>") {
		t.Errorf("html tags left in output: %q", got)
	}
}

func TestReadFile_Unsupported(t *testing.T) {
	path := writeFile(t, "cv.odt", "x")
	_, err := ReadFile(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Fatal("missing file reported as unsupported format")
	}
}

func TestReadFile_BrokenPDF(t *testing.T) {
	path := writeFile(t, "cv.pdf", "not a pdf")
	if _, err := ReadFile(path); err == nil {
		t.Fatal("expected error for invalid pdf")
	}
}

func TestDocxText(t *testing.T) {
	xml := `<w:document><w:body>` +
		`<w:p><w:r><w:t>EXPERIENCE</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Built APIs</w:t></w:r><w:r><w:tab/><w:t>2021 &amp; 2022</w:t></w:r></w:p>` +
		`<w:p></w:p><w:p></w:p><w:p></w:p>` +
		`<w:p><w:r><w:t>SKILLS</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	want := "EXPERIENCE\nBuilt APIs\t2021 & 2022\n\nSKILLS"
	if got := docxText(xml); got != want {
		t.Errorf("docxText = %q, want %q", got, want)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"<p>We need a Go engineer</p>", true},
		{"<div class=\"jd\">Role</div>", true},
		{"<UL><LI>Python</LI></UL>", true},
		{"Line one<br/>line two", true},
		{"Requires C++ and x < y comparisons", false},
		{"Plain job description", false},
		{"Use <T> generics", false},
	}
	for _, tt := range tests {
		if got := LooksLikeHTML(tt.in); got != tt.want {
			t.Errorf("LooksLikeHTML(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromHTML(t *testing.T) {
	got, err := FromHTML("<p>Senior <b>Go</b> Engineer</p>")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Senior **Go** Engineer" {
		t.Errorf("FromHTML = %q", got)
	}
}
