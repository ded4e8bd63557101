package cvopt

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Weights of the overall compatibility score.
const (
	weightSkills     = 0.25
	weightExperience = 0.25
	weightEducation  = 0.15
	weightIndustry   = 0.15
	weightDensity    = 0.10
	weightFormat     = 0.05
	weightContent    = 0.05
)

// Neutral values used when a job description gives nothing to measure against.
const (
	defaultExperienceHalf = 25
	defaultEducation      = 80
	defaultIndustry       = 50
	defaultContent        = 50
)

var (
	requiredYearsRe = regexp.MustCompile(`(?i)(\d{1,2})\+?\s*(?:-\s*\d{1,2}\s*)?(?:years?|yrs?)(?:\s+of)?(?:\s+[a-z-]+){0,3}?\s+experience`)
	claimedYearsRe  = regexp.MustCompile(`(?i)(\d{1,2})\+?\s*(?:years?|yrs?)\b`)
	jobTitleFieldRe = regexp.MustCompile(`(?im)^\s*(?:job title|position|role|title)\s*:\s*(.+?)\s*$`)
	bareBachelorRe  = regexp.MustCompile(`(?i)^(?:b\.?s|b\.?a)\b`)
	bareMasterRe    = regexp.MustCompile(`(?i)^(?:m\.?s|m\.?a)\b`)
)

var industries = []struct {
	name     string
	keywords []string
}{
	{"technology", []string{"software", "programming", "cloud", "data", "development", "engineering", "api", "database", "devops", "python", "java", "javascript", "infrastructure", "security", "agile"}},
	{"finance", []string{"finance", "financial", "accounting", "banking", "investment", "audit", "budget", "risk", "compliance", "trading", "portfolio"}},
	{"healthcare", []string{"healthcare", "medical", "clinical", "patient", "hospital", "pharmaceutical", "nursing", "health"}},
	{"marketing", []string{"marketing", "brand", "campaign", "seo", "content", "social media", "advertising", "market research"}},
	{"manufacturing", []string{"manufacturing", "production", "supply chain", "quality control", "lean", "logistics", "operations", "assembly"}},
	{"consulting", []string{"consulting", "client", "strategy", "advisory", "stakeholder", "business analysis", "transformation"}},
}

var contentCategories = []struct {
	name   string
	weight float64
	re     *regexp.Regexp
}{
	{"required", 0.4, regexp.MustCompile(`(?i)\b(?:required|requirements?|must|qualifications?|minimum)\b`)},
	{"responsibilities", 0.3, regexp.MustCompile(`(?i)\b(?:responsibilit(?:y|ies)|you will|duties|responsible for|day[- ]to[- ]day)\b`)},
	{"preferred", 0.2, regexp.MustCompile(`(?i)\b(?:preferred|nice to have|bonus|plus|desired|ideally)\b`)},
	{"benefits", 0.1, regexp.MustCompile(`(?i)\b(?:benefits?|we offer|perks|salary|compensation|insurance|vacation|pto)\b`)},
}

// Score computes every dimension independently, clamps each to [0,100] and combines
// them with the fixed weights. It segments the résumé itself; Analyze uses scoreSections
// to avoid segmenting twice.
func Score(resumeText, jdText string, resumeKeywords, jobKeywords []string, opts Options) DimensionalScores {
	opts = opts.withDefaults()
	return scoreSections(resumeText, jdText, Segment(resumeText), resumeKeywords, jobKeywords, opts)
}

func scoreSections(resumeText, jdText string, sec Sections, resumeKW, jobKW []string, opts Options) DimensionalScores {
	s := DimensionalScores{
		SkillsMatch:         clampScore(skillsMatch(resumeKW, jobKW)),
		ExperienceMatch:     clampScore(experienceMatch(resumeText, jdText, sec.Experience, opts.RefYear)),
		EducationMatch:      clampScore(educationMatch(resumeText, jdText, sec.Education)),
		IndustryFit:         clampScore(industryFit(resumeText, jdText)),
		KeywordDensity:      clampScore(keywordDensity(resumeText, jobKW)),
		FormatCompatibility: clampScore(formatCompatibility(resumeText)),
		ContentRelevance:    clampScore(contentRelevance(resumeText, jdText)),
	}
	s.OverallCompatibility = clampScore(roundInt(
		float64(s.SkillsMatch)*weightSkills +
			float64(s.ExperienceMatch)*weightExperience +
			float64(s.EducationMatch)*weightEducation +
			float64(s.IndustryFit)*weightIndustry +
			float64(s.KeywordDensity)*weightDensity +
			float64(s.FormatCompatibility)*weightFormat +
			float64(s.ContentRelevance)*weightContent))
	return s
}

// skillsMatch is the share of job keywords that equal, contain or are contained by
// some résumé keyword.
func skillsMatch(resumeKW, jobKW []string) int {
	if len(jobKW) == 0 {
		return 100
	}
	matched := 0
	for _, jk := range jobKW {
		if keywordCovered(jk, resumeKW) {
			matched++
		}
	}
	return roundInt(100 * float64(matched) / float64(len(jobKW)))
}

func keywordCovered(jk string, resumeKW []string) bool {
	j := strings.ToLower(jk)
	if j == "" {
		return false
	}
	for _, rk := range resumeKW {
		r := strings.ToLower(rk)
		if r != "" && (strings.Contains(r, j) || strings.Contains(j, r)) {
			return true
		}
	}
	return false
}

// experienceMatch: half for required years, half for a role-title match.
func experienceMatch(resumeText, jdText string, entries []ExperienceEntry, refYear int) int {
	years := defaultExperienceHalf
	if m := requiredYearsRe.FindStringSubmatch(jdText); m != nil {
		required, _ := strconv.Atoi(m[1])
		have := candidateYears(resumeText, entries, refYear)
		switch {
		case required <= 0 || have >= required:
			years = 50
		default:
			years = roundInt(50 * float64(have) / float64(required))
		}
	}

	title := defaultExperienceHalf
	if m := jobTitleFieldRe.FindStringSubmatch(jdText); m != nil {
		want := strings.ToLower(strings.TrimSpace(m[1]))
		title = 0
		for _, e := range entries {
			got := strings.ToLower(strings.TrimSpace(e.Title))
			if got != "" && want != "" && (strings.Contains(got, want) || strings.Contains(want, got)) {
				title = 50
				break
			}
		}
	}
	return years + title
}

// candidateYears sums entry spans, falling back to the largest "N years" claim.
func candidateYears(resumeText string, entries []ExperienceEntry, refYear int) int {
	total := 0
	for _, e := range entries {
		total += entryYears(e, refYear)
	}
	if total > 0 {
		return total
	}
	for _, m := range claimedYearsRe.FindAllStringSubmatch(resumeText, -1) {
		if n, _ := strconv.Atoi(m[1]); n > total {
			total = n
		}
	}
	return total
}

// levelValue is the score awarded at or above each degree level.
var levelValue = map[int]float64{
	levelAssociate: 40,
	levelBachelor:  60,
	levelMaster:    80,
	levelPhD:       100,
}

func educationMatch(resumeText, jdText string, entries []EducationEntry) int {
	required := requiredLevel(jdText)
	if required == levelNone {
		return defaultEducation
	}
	achieved := achievedLevel(resumeText, entries)
	switch {
	case achieved == levelNone:
		return 0
	case achieved >= required:
		return 100
	default:
		return roundInt(100 * levelValue[achieved] / levelValue[required])
	}
}

// requiredLevel is the lowest degree level the job description names.
func requiredLevel(jdText string) int {
	lowest := levelNone
	for _, dl := range degreeLevels {
		if dl.re.MatchString(jdText) && (lowest == levelNone || dl.level < lowest) {
			lowest = dl.level
		}
	}
	return lowest
}

// achievedLevel is the highest level among education entries, or named anywhere
// in the résumé when no entry was parsed.
func achievedLevel(resumeText string, entries []EducationEntry) int {
	best := levelNone
	for _, e := range entries {
		if l := entryLevel(e.Degree); l > best {
			best = l
		}
	}
	if best == levelNone && len(entries) == 0 {
		best = degreeLevel(resumeText)
	}
	return best
}

func entryLevel(degree string) int {
	if l := degreeLevel(degree); l != levelNone {
		return l
	}
	switch {
	case bareMasterRe.MatchString(degree):
		return levelMaster
	case bareBachelorRe.MatchString(degree):
		return levelBachelor
	}
	return levelNone
}

// industryFit: +20 per industry keyword shared by both texts, -10 per keyword only
// in the job description; the best industry wins.
func industryFit(resumeText, jdText string) int {
	jd := strings.ToLower(jdText)
	cv := strings.ToLower(resumeText)
	best, mentioned := 0, false
	for _, ind := range industries {
		score := 0
		for _, kw := range ind.keywords {
			if countWord(jd, kw) == 0 {
				continue
			}
			mentioned = true
			if countWord(cv, kw) > 0 {
				score += 20
			} else {
				score -= 10
			}
		}
		if score > best {
			best = score
		}
	}
	if !mentioned {
		return defaultIndustry
	}
	return best
}

// keywordDensity scores job-keyword occurrences per résumé word; 1–3% is optimal.
func keywordDensity(resumeText string, jobKW []string) int {
	words := len(strings.Fields(resumeText))
	if words == 0 || len(jobKW) == 0 {
		return 0
	}
	cv := strings.ToLower(resumeText)
	occ := 0
	for _, kw := range jobKW {
		occ += countWord(cv, strings.ToLower(kw))
	}
	density := 100 * float64(occ) / float64(words)
	switch {
	case density == 0:
		return 0
	case density < 1:
		return roundInt(density * 100)
	case density > 3:
		return roundInt(3 / density * 100)
	}
	return 100
}

// formatCompatibility: headers 30, bullets 20, year ranges 20, length up to 30.
func formatCompatibility(resumeText string) int {
	score := 0
	var hasHeader, hasBullet bool
	for _, l := range splitLines(resumeText) {
		if l == "" {
			continue
		}
		if _, ok := stripBullet(l); ok {
			hasBullet = true
		} else if isHeaderLine(l) {
			hasHeader = true
		}
	}
	if hasHeader {
		score += 30
	}
	if hasBullet {
		score += 20
	}
	if dateRangeRe.MatchString(resumeText) {
		score += 20
	}
	switch wc := len(strings.Fields(resumeText)); {
	case wc > 1000:
		score += 15
	case wc >= 300:
		score += 30
	default:
		score += roundInt(30 * float64(wc) / 300)
	}
	return score
}

// contentRelevance is the weighted share of categorized job-description sentences
// that share a significant word with the résumé.
func contentRelevance(resumeText, jdText string) int {
	cvTokens := make(map[string]bool)
	for _, t := range tokenize(resumeText) {
		cvTokens[t] = true
	}

	total := make([]int, len(contentCategories))
	hit := make([]int, len(contentCategories))
	for _, sentence := range splitSentences(jdText) {
		for i, cat := range contentCategories {
			if !cat.re.MatchString(sentence) {
				continue
			}
			total[i]++
			for _, t := range tokenize(cat.re.ReplaceAllString(sentence, " ")) {
				if cvTokens[t] {
					hit[i]++
					break
				}
			}
			break
		}
	}

	var sum, weights float64
	for i, cat := range contentCategories {
		if total[i] == 0 {
			continue
		}
		sum += cat.weight * float64(hit[i]) / float64(total[i])
		weights += cat.weight
	}
	if weights == 0 {
		return defaultContent
	}
	return roundInt(100 * sum / weights)
}

// countWord counts case-sensitive whole-word occurrences of word in s. Callers
// lowercase both sides.
func countWord(s, word string) int {
	if word == "" {
		return 0
	}
	n := 0
	for i := 0; ; {
		j := strings.Index(s[i:], word)
		if j < 0 {
			return n
		}
		start, end := i+j, i+j+len(word)
		if wordBoundaryBefore(s, start) && wordBoundaryAfter(s, end) {
			n++
		}
		i = start + 1
	}
}

func wordBoundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func wordBoundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func clampScore(v int) int {
	return max(0, min(100, v))
}

func roundInt(f float64) int {
	return int(math.Round(f))
}
