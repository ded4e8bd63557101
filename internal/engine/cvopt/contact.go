package cvopt

import (
	"regexp"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`(?:\+\d{1,3}[\s.-]?)?(?:\(\d{2,4}\)[\s.-]?)?\d{2,4}[\s.-]\d{2,4}(?:[\s.-]\d{2,4}){0,2}`)
	linkedInRe = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/(?:in|pub)/[A-Za-z0-9_-]+/?`)
	websiteRe  = regexp.MustCompile(`(?i)\b(?:https?://)?(?:www\.)?[a-z0-9][a-z0-9-]*(?:\.[a-z0-9-]+)*\.(?:com|org|net|io|dev|me|co|ai|app|info|tech)(?:/[^\s,;]*)?`)
	nameRe     = regexp.MustCompile(`^(?:[A-Z][a-zA-Z'-]+)(?:\s+[A-Z][a-zA-Z'.-]*){1,2}$`)
)

// nameStopWords are capitalized words that start header lines, not names.
var nameStopWords = map[string]bool{
	"curriculum": true, "resume": true, "résumé": true, "contact": true, "profile": true,
	"summary": true, "professional": true, "experience": true, "education": true,
	"skills": true, "senior": true, "software": true, "technical": true, "personal": true,
}

// ExtractContactInfo pulls contact details from the whole text and a name from the
// first five non-empty lines.
func ExtractContactInfo(text string) ContactInfo {
	var c ContactInfo
	c.Email = emailRe.FindString(text)
	c.LinkedIn = strings.TrimSuffix(linkedInRe.FindString(text), "/")

	for _, m := range phoneRe.FindAllString(text, -1) {
		if countDigits(m) >= 7 && !looksLikeYearRange(m) {
			c.Phone = strings.TrimSpace(m)
			break
		}
	}

	for _, m := range websiteRe.FindAllString(text, -1) {
		lower := strings.ToLower(m)
		if strings.Contains(lower, "linkedin.") || strings.Contains(c.Email, strings.TrimPrefix(lower, "www.")) {
			continue
		}
		c.Website = strings.TrimRight(m, ".")
		break
	}

	seen := 0
	for _, line := range splitLines(text) {
		if line == "" {
			continue
		}
		if seen++; seen > 5 {
			break
		}
		if nameRe.MatchString(line) && !nameStopWords[strings.ToLower(strings.Fields(line)[0])] && !isHeaderLine(line) {
			c.Name = line
			break
		}
	}
	return c
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// looksLikeYearRange rejects "2019 - 2021" style matches of the phone pattern.
func looksLikeYearRange(s string) bool {
	return yearRangeRe.MatchString(strings.TrimSpace(s))
}

var yearRangeRe = regexp.MustCompile(`^(?:19|20)\d{2}\s*[-–]\s*(?:19|20)\d{2}$`)
