package cvopt

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	degreeRe      = regexp.MustCompile(`(?i)\b(?:bachelor|master|associate|doctor(?:ate)?|ph\.?\s?d|mba|b\.?sc|m\.?sc|b\.?eng|m\.?eng|b\.?s|m\.?s|b\.?a|m\.?a|diploma|certificate|degree|undergraduate|postgraduate)\b`)
	institutionRe = regexp.MustCompile(`(?i)\b(?:university|college|institute|school|academy|polytechnic|conservatory|universidad|universität)\b`)
	acronymRe     = regexp.MustCompile(`^[A-Z][A-Z&]{1,6}$`)
	yearRe        = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	gpaValueRe    = regexp.MustCompile(`[0-4]\.\d{1,2}`)
	gpaRe         = regexp.MustCompile(`(?i)\bGPA\s*:?\s*([0-4]\.\d{1,2})`)
	honorRe       = regexp.MustCompile(`(?i)\b(?:honou?rs?|award|dean'?s list|scholarship|cum laude|valedictorian|prize|distinction|fellowship|medal)\b`)
	eduLabelRe    = regexp.MustCompile(`(?i)^(degree|institution|university|school|location|year|graduated|graduation|gpa|courses|relevant courses|relevant coursework|coursework|honou?rs|achievements|awards)\s*:\s*(.*)$`)
)

// Degree levels on the ordinal scale used by scoring and synthesis.
const (
	levelNone = iota
	levelAssociate
	levelBachelor
	levelMaster
	levelPhD
)

var degreeLevels = []struct {
	re    *regexp.Regexp
	level int
}{
	{regexp.MustCompile(`(?i)\b(?:ph\.?\s?d|doctor(?:ate)?|doctoral)\b`), levelPhD},
	{regexp.MustCompile(`(?i)\b(?:master'?s?|mba|m\.?sc|m\.?eng|postgraduate|graduate degree)\b`), levelMaster},
	{regexp.MustCompile(`(?i)\b(?:bachelor'?s?|b\.?sc|b\.?eng|undergraduate|four-year degree)\b`), levelBachelor},
	{regexp.MustCompile(`(?i)\b(?:associate'?s?)\b`), levelAssociate},
}

// degreeLevel returns the highest degree level named in s. Two-letter forms
// ("MS", "BA") are left to entryLevel: in free text they collide with "MS Office".
func degreeLevel(s string) int {
	for _, dl := range degreeLevels {
		if dl.re.MatchString(s) {
			return dl.level
		}
	}
	return levelNone
}

// ExtractEducationData parses the education section into entries. Without an
// education header the result is empty.
func ExtractEducationData(text string) []EducationEntry {
	b, ok := findEntryBlock(text, educationHeaders)
	if !ok {
		return []EducationEntry{}
	}
	return parseEducationBlock(b)
}

type eduParser struct {
	entries []EducationEntry
	cur     *EducationEntry
	list    *[]string // open "Courses:" or "Honors:" list fed by following bullets
}

func (p *eduParser) flush() {
	if p.cur != nil && (p.cur.Degree != "" || p.cur.Institution != "") {
		p.entries = append(p.entries, *p.cur)
	}
	p.cur = nil
	p.list = nil
}

func (p *eduParser) entry() *EducationEntry {
	if p.cur == nil {
		p.cur = &EducationEntry{RelevantCourses: []string{}, Achievements: []string{}}
	}
	return p.cur
}

// parseEducationBlock handles paragraph format (one entry per blank-line separated
// paragraph) and bullet format (one entry per degree line, sub-bullets attach).
func parseEducationBlock(b block) []EducationEntry {
	p := &eduParser{}
	bulleted := b.hasBullets()
	for _, para := range b.paragraphs() {
		if !bulleted {
			p.flush()
		}
		for _, line := range para {
			item, isBullet := stripBullet(line)
			if item == "" {
				continue
			}
			if m := eduLabelRe.FindStringSubmatch(item); m != nil {
				p.label(strings.ToLower(m[1]), strings.TrimSpace(m[2]))
				continue
			}
			// a degree still waiting for its school takes the next unlabeled name
			awaiting := p.cur != nil && p.cur.Degree != "" && p.cur.Institution == "" && !(isBullet && p.list != nil)
			f := classifyEducationLine(item, awaiting)
			if isBullet && p.list != nil && f.Degree == "" && f.Institution == "" {
				*p.list = append(*p.list, item)
				continue
			}
			p.list = nil
			if f.Degree != "" || f.Institution != "" {
				if c := p.cur; c != nil && ((f.Degree != "" && c.Degree != "") || (f.Institution != "" && c.Institution != "")) {
					p.flush()
				}
				p.merge(f)
				continue
			}
			if p.cur == nil {
				continue
			}
			if honorRe.MatchString(item) {
				p.cur.Achievements = append(p.cur.Achievements, item)
				continue
			}
			p.merge(f)
		}
	}
	p.flush()
	return p.entries
}

func (p *eduParser) label(key, val string) {
	e := p.entry()
	switch key {
	case "degree":
		if e.Degree != "" {
			p.flush()
			e = p.entry()
		}
		e.Degree = val
	case "institution", "university", "school":
		if e.Institution != "" {
			p.flush()
			e = p.entry()
		}
		e.Institution = val
	case "location":
		e.Location = val
	case "year", "graduated", "graduation":
		if y := lastYear(val); y != "" {
			e.Year = y
		} else {
			e.Year = val
		}
	case "gpa":
		if m := gpaValueRe.FindString(val); m != "" {
			e.GPA = m
		}
	case "courses", "relevant courses", "relevant coursework", "coursework":
		e.RelevantCourses = append(e.RelevantCourses, splitList(val)...)
		p.openList(val, &e.RelevantCourses)
		return
	default:
		e.Achievements = append(e.Achievements, splitList(val)...)
		p.openList(val, &e.Achievements)
		return
	}
	p.list = nil
}

// openList lets the bullets after a bare "Courses:" label fill the list.
func (p *eduParser) openList(val string, list *[]string) {
	p.list = nil
	if val == "" {
		p.list = list
	}
}

func (p *eduParser) merge(f EducationEntry) {
	e := p.entry()
	if e.Degree == "" {
		e.Degree = f.Degree
	}
	if e.Institution == "" {
		e.Institution = f.Institution
	}
	if e.Location == "" {
		e.Location = f.Location
	}
	if e.Year == "" {
		e.Year = f.Year
	}
	if e.GPA == "" {
		e.GPA = f.GPA
	}
}

// classifyEducationLine splits a line on commas and pipes and assigns each part
// to a field by vocabulary: degree words, institution words or an acronym, a year,
// a GPA. Leftover parts after the institution become the location. When no part
// names an institution and the line holds a degree (or awaiting is set), the first
// leftover part that reads as a proper name is taken as the institution.
func classifyEducationLine(line string, awaiting bool) EducationEntry {
	var e EducationEntry
	var loc, unclaimed []string
	for _, part := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == '|' || r == '—' }) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if m := gpaRe.FindStringSubmatch(part); m != nil {
			e.GPA = m[1]
			continue
		}
		if isDateOnly(part) {
			e.Year = lastYear(part)
			continue
		}
		switch {
		case e.Degree == "" && degreeRe.MatchString(part) && !institutionRe.MatchString(part):
			e.Degree = stripYears(part)
		case e.Institution == "" && (institutionRe.MatchString(part) || acronymRe.MatchString(part)):
			e.Institution = stripYears(part)
			if y := lastYear(part); y != "" && e.Year == "" {
				e.Year = y
			}
		case e.Institution != "":
			loc = append(loc, part)
		default:
			unclaimed = append(unclaimed, part)
		}
	}
	if e.Institution == "" && (e.Degree != "" || awaiting) {
		for i, part := range unclaimed {
			if name := stripYears(part); isProperName(name) && !honorRe.MatchString(part) {
				e.Institution = name
				if y := lastYear(part); y != "" && e.Year == "" {
					e.Year = y
				}
				loc = unclaimed[i+1:]
				break
			}
		}
	}
	e.Location = strings.Join(loc, ", ")
	return e
}

var nameConnectors = map[string]bool{"of": true, "at": true, "the": true, "and": true, "&": true, "de": true, "in": true, "for": true}

// isProperName reports whether every word of s is capitalized or a connector.
func isProperName(s string) bool {
	if s == "" || strings.ContainsAny(s, ":;.!?") {
		return false
	}
	capped := 0
	for _, w := range strings.Fields(s) {
		r, _ := utf8.DecodeRuneInString(w)
		switch {
		case strings.ContainsFunc(w, unicode.IsDigit):
			return false
		case unicode.IsUpper(r):
			capped++
		case nameConnectors[w]:
		default:
			return false
		}
	}
	return capped > 0
}

var dateOnlyRe = regexp.MustCompile(`(?i)^(?:(?:class of|graduated|expected)\s+)?(?:[a-z]{3,9}\.?\s+)?(?:19|20)\d{2}(?:\s*(?:-|–|to)\s*(?:(?:[a-z]{3,9}\.?\s+)?(?:19|20)\d{2}|present|current))?$`)

func isDateOnly(s string) bool {
	return dateOnlyRe.MatchString(strings.Trim(s, "() "))
}

func lastYear(s string) string {
	ys := yearRe.FindAllString(s, -1)
	if len(ys) == 0 {
		return ""
	}
	return ys[len(ys)-1]
}

var yearsInParens = regexp.MustCompile(`\s*\(?(?:19|20)\d{2}(?:\s*[-–]\s*(?:(?:19|20)\d{2}|present))?\)?\s*$`)

func stripYears(s string) string {
	return strings.TrimSpace(yearsInParens.ReplaceAllString(s, ""))
}

// splitList splits a comma, semicolon or pipe separated list.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == '|' }) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
