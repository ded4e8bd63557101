package cvopt

import (
	"fmt"
	"strings"
)

// Suggested placements for missing keywords.
const (
	SuggestSkills     = "Skills section"
	SuggestExperience = "Experience bullet points"
	SuggestProfile    = "Professional summary"
)

// positionWeight is round(100 - 50*i/n): the first keyword weighs 100, the last just above 50.
func positionWeight(i, n int) int {
	if n <= 0 {
		return 100
	}
	return clampScore(roundInt(100 - 50*float64(i)/float64(n)))
}

// MatchKeywords splits the ranked job keywords into those the résumé text already
// contains and those it lacks.
func MatchKeywords(jobKW []string, resumeText string, sec Sections) ([]MatchedKeyword, []MissingKeyword) {
	matched := []MatchedKeyword{}
	missing := []MissingKeyword{}
	cv := strings.ToLower(resumeText)
	placements := sectionTexts(sec)
	for i, kw := range jobKW {
		k := strings.ToLower(kw)
		if k == "" {
			continue
		}
		w := positionWeight(i, len(jobKW))
		if n := strings.Count(cv, k); n > 0 {
			matched = append(matched, MatchedKeyword{
				Keyword:   kw,
				Relevance: w,
				Frequency: n,
				Placement: placementOf(k, placements),
			})
			continue
		}
		missing = append(missing, MissingKeyword{
			Keyword:            kw,
			Importance:         w,
			SuggestedPlacement: suggestPlacement(k),
		})
	}
	return matched, missing
}

type placedText struct {
	placement Placement
	text      string
}

// sectionTexts flattens each section to lowercase text, in placement priority order.
func sectionTexts(sec Sections) []placedText {
	var exp, edu []string
	for _, e := range sec.Experience {
		exp = append(exp, e.Title, e.Company)
		exp = append(exp, e.Bullets...)
	}
	for _, e := range sec.Education {
		edu = append(edu, e.Degree, e.Institution)
		edu = append(edu, e.RelevantCourses...)
		edu = append(edu, e.Achievements...)
	}
	lower := func(parts []string) string { return strings.ToLower(strings.Join(parts, "\n")) }
	return []placedText{
		{PlacementProfile, strings.ToLower(sec.Profile)},
		{PlacementSkills, lower(append(append([]string{}, sec.TechnicalSkills...), sec.ProfessionalSkills...))},
		{PlacementExperience, lower(exp)},
		{PlacementAchievements, lower(sec.Achievements)},
		{PlacementEducation, lower(edu)},
	}
}

func placementOf(k string, texts []placedText) Placement {
	for _, t := range texts {
		if strings.Contains(t.text, k) {
			return t.placement
		}
	}
	return PlacementVarious
}

func suggestPlacement(k string) string {
	switch {
	case techVocabulary.MatchString(k) || strings.ContainsAny(k, "+#"):
		return SuggestSkills
	case industryTerms[k] || achievementVerbRe.MatchString(k) || isIndustryKeyword(k):
		return SuggestExperience
	}
	return SuggestProfile
}

func isIndustryKeyword(k string) bool {
	for _, ind := range industries {
		for _, kw := range ind.keywords {
			if kw == k {
				return true
			}
		}
	}
	return false
}

// AnalyzeSections scores the profile, skills, experience, education and
// achievements sections against the job keywords.
func AnalyzeSections(sec Sections, jobKW []string, jdText string) SectionResults {
	return SectionResults{
		Profile:      profileResult(sec.Profile, jobKW),
		Skills:       skillsResult(sec, jobKW),
		Experience:   experienceResult(sec.Experience, jobKW),
		Education:    educationResult(sec.Education, jobKW, jdText),
		Achievements: achievementsResult(sec.Achievements),
	}
}

// coverage returns the share of kws found in text and the ones that were not.
func coverage(text string, kws []string) (float64, []string) {
	if len(kws) == 0 {
		return 1, nil
	}
	t := strings.ToLower(text)
	var absent []string
	for _, k := range kws {
		if !strings.Contains(t, strings.ToLower(k)) {
			absent = append(absent, k)
		}
	}
	return float64(len(kws)-len(absent)) / float64(len(kws)), absent
}

func topN(kws []string, n int) []string {
	if len(kws) > n {
		return kws[:n]
	}
	return kws
}

func profileResult(profile string, jobKW []string) SectionResult {
	if strings.TrimSpace(profile) == "" {
		return SectionResult{Score: 30, Feedback: "No professional summary found; add one aimed at this role."}
	}
	cov, absent := coverage(profile, topN(jobKW, 5))
	score := 40 + roundInt(40*cov)
	if wc := len(strings.Fields(profile)); wc >= 30 && wc <= 120 {
		score += 20
	}
	if len(absent) == 0 {
		return SectionResult{Score: clampScore(score), Feedback: "The summary reflects the role's key requirements."}
	}
	return SectionResult{
		Score:    clampScore(score),
		Feedback: fmt.Sprintf("The summary could mention %s.", strings.Join(topN(absent, 3), ", ")),
	}
}

func skillsResult(sec Sections, jobKW []string) SectionResult {
	skills := append(append([]string{}, sec.TechnicalSkills...), sec.ProfessionalSkills...)
	if len(skills) == 0 {
		return SectionResult{Score: 20, Feedback: "No skills section found; list the tools and competencies the role asks for."}
	}
	if len(jobKW) == 0 {
		return SectionResult{Score: 70, Feedback: "Skills are listed clearly."}
	}
	covered := 0
	var absent []string
	for _, k := range jobKW {
		if keywordCovered(k, skills) {
			covered++
		} else {
			absent = append(absent, k)
		}
	}
	score := roundInt(100 * float64(covered) / float64(len(jobKW)))
	score = max(score, 25)
	if len(absent) == 0 {
		return SectionResult{Score: clampScore(score), Feedback: "The skills list covers every key requirement."}
	}
	return SectionResult{
		Score:    clampScore(score),
		Feedback: fmt.Sprintf("Consider adding %s to the skills list.", strings.Join(topN(absent, 3), ", ")),
	}
}

func experienceResult(entries []ExperienceEntry, jobKW []string) SectionResult {
	if len(entries) == 0 {
		return SectionResult{Score: 20, Feedback: "No work experience section found."}
	}
	var bullets []string
	for _, e := range entries {
		bullets = append(bullets, e.Title)
		bullets = append(bullets, e.Bullets...)
	}
	cov, _ := coverage(strings.Join(bullets, "\n"), topN(jobKW, 10))
	quantified := quantifiedShare(bullets)
	score := 40 + roundInt(30*cov) + roundInt(30*quantified)
	switch {
	case quantified < 0.3:
		return SectionResult{Score: clampScore(score), Feedback: "Add measurable results (numbers, percentages) to experience bullets."}
	case cov < 0.5:
		return SectionResult{Score: clampScore(score), Feedback: "Experience bullets could use more of the job's terminology."}
	}
	return SectionResult{Score: clampScore(score), Feedback: "Experience is relevant and backed by measurable results."}
}

func educationResult(entries []EducationEntry, jobKW []string, jdText string) SectionResult {
	if len(entries) == 0 {
		return SectionResult{Score: 40, Feedback: "No education section detected."}
	}
	score := 60
	required := requiredLevel(jdText)
	best := levelNone
	var text []string
	for _, e := range entries {
		best = max(best, entryLevel(e.Degree))
		text = append(text, e.Degree)
		text = append(text, e.RelevantCourses...)
	}
	if required == levelNone || best >= required {
		score += 20
	}
	if cov, _ := coverage(strings.Join(text, "\n"), topN(jobKW, 10)); cov > 0 {
		score += 20
	}
	if required != levelNone && best < required {
		return SectionResult{Score: clampScore(score), Feedback: "The role asks for a higher degree level than the one listed."}
	}
	return SectionResult{Score: clampScore(score), Feedback: "Education meets the role's requirements."}
}

func achievementsResult(items []string) SectionResult {
	if len(items) == 0 {
		return SectionResult{Score: 30, Feedback: "No achievements found; add two or three concrete accomplishments."}
	}
	score := 50 + roundInt(25*quantifiedShare(items)) + roundInt(25*min(1, float64(len(items))/3))
	if quantifiedShare(items) < 0.5 {
		return SectionResult{Score: clampScore(score), Feedback: "Quantify more achievements with concrete figures."}
	}
	return SectionResult{Score: clampScore(score), Feedback: "Achievements are specific and quantified."}
}

// quantifiedShare is the fraction of lines carrying a numeric metric.
func quantifiedShare(lines []string) float64 {
	n, q := 0, 0
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n++
		if metricRe.MatchString(l) {
			q++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(q) / float64(n)
}
