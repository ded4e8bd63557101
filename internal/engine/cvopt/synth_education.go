package cvopt

import (
	"sort"
	"strconv"
	"strings"
)

const (
	maxCourses          = 5
	maxEduAchievements  = 3
	educationKeywordCap = 10
)

var prestigiousInstitutions = []string{
	"mit", "massachusetts institute of technology", "stanford", "harvard", "oxford",
	"cambridge", "caltech", "princeton", "yale", "berkeley", "carnegie mellon",
	"eth zurich", "imperial college", "columbia", "university of chicago",
}

// rankEducation orders entries by relevance to the job and trims each entry's
// courses and achievements to the most relevant ones.
func rankEducation(entries []EducationEntry, jobKW []string, jdText string, refYear int) []EducationEntry {
	required := requiredLevel(jdText)
	jd := strings.ToLower(jdText)
	kws := topN(jobKW, educationKeywordCap)

	type scored struct {
		entry EducationEntry
		score int
	}
	ranked := make([]scored, 0, len(entries))
	for _, e := range entries {
		e.RelevantCourses = topByRelevance(e.RelevantCourses, kws, maxCourses)
		e.Achievements = topByRelevance(e.Achievements, kws, maxEduAchievements)
		ranked = append(ranked, scored{entry: e, score: educationScore(e, kws, jd, required, refYear)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	out := make([]EducationEntry, len(ranked))
	for i, r := range ranked {
		out[i] = r.entry
	}
	return out
}

// educationScore combines degree level, field match, prestige, a mention in the
// job description, recency, GPA and course/achievement keyword overlap.
func educationScore(e EducationEntry, kws []string, jd string, required, refYear int) int {
	level := entryLevel(e.Degree)
	score := level * 5
	if required != levelNone && level >= required {
		score += 10
	}
	if keywordHits(e.Degree, kws) > 0 {
		score += 15
	}
	inst := strings.ToLower(e.Institution)
	for _, p := range prestigiousInstitutions {
		if countWord(inst, p) > 0 {
			score += 10
			break
		}
	}
	if len(inst) > 2 && strings.Contains(jd, inst) {
		score += 10
	}
	if y, err := strconv.Atoi(e.Year); err == nil && refYear > 0 {
		switch age := refYear - y; {
		case age <= 5:
			score += 10
		case age <= 10:
			score += 5
		}
	}
	if gpa, err := strconv.ParseFloat(e.GPA, 64); err == nil {
		switch {
		case gpa >= 3.5:
			score += 10
		case gpa >= 3.0:
			score += 5
		}
	}
	overlap := 0
	for _, s := range append(append([]string{}, e.RelevantCourses...), e.Achievements...) {
		if keywordHits(s, kws) > 0 {
			overlap += 2
		}
	}
	return score + min(overlap, 10)
}

// topByRelevance stable-sorts items by job keyword hits and keeps the first n.
func topByRelevance(items, kws []string, n int) []string {
	out := append([]string{}, items...)
	sortByKeywordHits(out, kws)
	return topN(out, n)
}
