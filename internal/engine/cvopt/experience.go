package cvopt

import (
	"regexp"
	"strconv"
	"strings"
)

const monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`

const datePattern = `(?:` + monthPattern + `\s+)?(?:\d{1,2}/)?(?:19|20)\d{2}`

var (
	dateRangeRe = regexp.MustCompile(`(?i)\(?(` + datePattern + `)\s*(?:-|–|—|to|until)\s*(` + datePattern + `|present|current|now|today)\)?`)
	presentRe   = regexp.MustCompile(`(?i)^(?:present|current|now|today)$`)
	titleSplit  = regexp.MustCompile(`\s+(?:at|@)\s+|\s*\|\s*|,\s+|\s+[-–—]\s+`)
)

// ExtractExperience parses the experience section. A non-bullet line opens a new
// entry (title, company, dates); bullet lines attach to the current entry.
func ExtractExperience(text string) []ExperienceEntry {
	out := []ExperienceEntry{}
	b, ok := findEntryBlock(text, experienceHeaders)
	if !ok {
		return out
	}

	var cur *ExperienceEntry
	flush := func() {
		if cur != nil && (cur.Title != "" || cur.Company != "" || len(cur.Bullets) > 0) {
			out = append(out, *cur)
		}
		cur = nil
	}
	for _, line := range b.lines {
		if line == "" {
			continue
		}
		item, isBullet := stripBullet(line)
		if isBullet {
			if cur == nil {
				cur = &ExperienceEntry{Bullets: []string{}}
			}
			if item != "" {
				cur.Bullets = append(cur.Bullets, item)
			}
			continue
		}
		// continuation of a heading split over two lines ("Engineer" / "Acme, 2019 - 2021")
		if cur != nil && len(cur.Bullets) == 0 && (cur.StartDate == "" || cur.Company == "") && len(strings.Fields(item)) <= 12 {
			fillEntry(cur, item)
			continue
		}
		// prose under a heading is kept as a description line
		if cur != nil && len(strings.Fields(item)) > 12 {
			cur.Bullets = append(cur.Bullets, item)
			continue
		}
		flush()
		cur = &ExperienceEntry{Bullets: []string{}}
		fillEntry(cur, item)
	}
	flush()
	return out
}

// fillEntry sets the empty fields of e from a heading line.
func fillEntry(e *ExperienceEntry, line string) {
	if m := dateRangeRe.FindStringSubmatchIndex(line); m != nil {
		if e.StartDate == "" {
			e.StartDate = strings.TrimSpace(line[m[2]:m[3]])
			e.EndDate = strings.TrimSpace(line[m[4]:m[5]])
		}
		line = line[:m[0]] + " " + line[m[1]:]
	}
	line = strings.Trim(strings.TrimSpace(line), "|,-–—() ")
	if line == "" {
		return
	}
	parts := titleSplit.Split(line, 2)
	switch {
	case e.Title == "":
		e.Title = strings.TrimSpace(parts[0])
		if len(parts) > 1 && e.Company == "" {
			e.Company = strings.Trim(strings.TrimSpace(parts[1]), "|,-–—() ")
		}
	case e.Company == "":
		e.Company = strings.TrimSpace(parts[0])
	}
}

// entryYears returns the span of an entry in whole years, 0 when dates are unusable.
// An open end ("Present") counts up to refYear.
func entryYears(e ExperienceEntry, refYear int) int {
	start := yearOf(e.StartDate, refYear)
	end := yearOf(e.EndDate, refYear)
	if start == 0 || end == 0 || end < start {
		return 0
	}
	return end - start
}

func yearOf(s string, refYear int) int {
	s = strings.TrimSpace(s)
	if presentRe.MatchString(s) {
		return refYear
	}
	y, err := strconv.Atoi(lastYear(s))
	if err != nil {
		return 0
	}
	return y
}
