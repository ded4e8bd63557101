package cvopt

import (
	"regexp"
	"sort"
	"strings"
)

const (
	maxGoals     = 3
	maxLanguages = 3
)

var valueStatementRe = regexp.MustCompile(`(?i)\b(?:we value|we are looking for someone (?:to|who)|you will|opportunity to|our mission is to|join us to|help us) ([^.;\n]{8,120})`)

// Synthesize assembles the job-optimized résumé from the segmented sections.
// Output depends only on its arguments.
func Synthesize(sec Sections, jobKW []string, jdText string, opts Options) SynthesisResult {
	opts = opts.withDefaults()
	reqs := keyRequirements(jdText)

	tech, prof := synthesizeSkills(sec.TechnicalSkills, sec.ProfessionalSkills, reqs, jobKW)
	doc := buildDocument(cvContent{
		contact:      sec.Contact,
		profile:      synthesizeProfile(sec.Profile, reqs, jobKW),
		technical:    tech,
		professional: prof,
		experience:   sec.Experience,
		education:    rankEducation(sec.Education, jobKW, jdText, opts.RefYear),
		achievements: synthesizeAchievements(sec.Achievements, jobKW, reqs, jdText),
		goals:        synthesizeGoals(sec.Goals, jobKW, jdText),
		languages:    synthesizeLanguages(sec.Languages, jdText),
	})
	return SynthesisResult{OptimizedText: RenderText(doc), Document: doc}
}

// keyRequirements returns the deduplicated requirement phrases of a job description.
func keyRequirements(jdText string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range requirementPhrases(jdText) {
		k := normalizeTerm(p)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, strings.Join(strings.Fields(p), " "))
	}
	return out
}

// synthesizeProfile fabricates a summary from the top job keywords when there is
// none, otherwise appends the key requirements the summary does not mention.
func synthesizeProfile(profile string, reqs, jobKW []string) string {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		kws := lowerAll(topN(jobKW, 5))
		switch {
		case len(kws) == 0:
			return ""
		case len(kws) <= 3:
			return "Experienced professional with expertise in " + joinAnd(kws) +
				", seeking to leverage this background to deliver results in a new role."
		}
		return "Experienced professional with expertise in " + joinAnd(kws[:3]) +
			", seeking to leverage skills in " + joinAnd(kws[3:]) + " to drive results."
	}

	lower := strings.ToLower(profile)
	var absent []string
	for _, r := range reqs {
		if !strings.Contains(lower, strings.ToLower(r)) {
			absent = append(absent, r)
		}
	}
	if len(absent) == 0 {
		return profile
	}
	if !strings.HasSuffix(profile, ".") {
		profile += "."
	}
	return profile + " Additional strengths include " + joinAnd(topN(absent, 3)) + "."
}

// synthesizeSkills adds requirement phrases missing from both lists, then orders each
// list by how many job keywords it touches.
func synthesizeSkills(tech, prof, reqs, jobKW []string) ([]string, []string) {
	tech = append([]string{}, tech...)
	prof = append([]string{}, prof...)
	for _, r := range reqs {
		if keywordCovered(r, tech) || keywordCovered(r, prof) {
			continue
		}
		if isTechnicalSkill(r) {
			tech = append(tech, r)
		} else {
			prof = append(prof, r)
		}
	}
	sortByKeywordHits(tech, jobKW)
	sortByKeywordHits(prof, jobKW)
	return tech, prof
}

func sortByKeywordHits(items, jobKW []string) {
	hits := make(map[string]int, len(items))
	for _, it := range items {
		hits[it] = keywordHits(it, jobKW)
	}
	sort.SliceStable(items, func(i, j int) bool { return hits[items[i]] > hits[items[j]] })
}

// keywordHits counts job keywords that s contains or is contained by.
func keywordHits(s string, jobKW []string) int {
	l := strings.ToLower(s)
	n := 0
	for _, k := range jobKW {
		k = strings.ToLower(k)
		if k != "" && l != "" && (strings.Contains(l, k) || strings.Contains(k, l)) {
			n++
		}
	}
	return n
}

// synthesizeGoals keeps existing goals, else derives them from value statements in
// the job description, else from the top job keywords.
func synthesizeGoals(goals, jobKW []string, jdText string) []string {
	if len(goals) > 0 {
		return topN(append([]string{}, goals...), maxGoals)
	}
	out := []string{}
	for _, m := range valueStatementRe.FindAllStringSubmatch(jdText, -1) {
		if len(out) == maxGoals {
			return out
		}
		out = append(out, "Contribute to "+lowerFirst(strings.TrimSpace(m[1])))
	}
	kws := lowerAll(topN(jobKW, 4))
	switch {
	case len(out) > 0 || len(kws) == 0:
	case len(kws) == 1:
		out = append(out, "Deepen expertise in "+kws[0])
	default:
		out = append(out, "Deepen expertise in "+kws[0]+" and "+kws[1])
		if len(kws) >= 3 {
			out = append(out, "Deliver measurable impact through "+joinAnd(kws[2:]))
		}
	}
	return topN(out, maxGoals)
}

// synthesizeLanguages keeps existing languages, else lists the ones the job
// description asks for.
func synthesizeLanguages(langs []LanguageEntry, jdText string) []LanguageEntry {
	if len(langs) > 0 {
		return append([]LanguageEntry{}, langs[:min(len(langs), maxLanguages)]...)
	}
	out := []LanguageEntry{}
	seen := make(map[string]bool)
	for _, m := range explicitLanguageRe.FindAllStringSubmatch(jdText, -1) {
		name, level := m[1], m[2]
		if name == "" {
			name, level = m[4], m[3]
		}
		name = capitalize(name)
		if seen[name] || len(out) == maxLanguages {
			continue
		}
		seen[name] = true
		out = append(out, LanguageEntry{Language: name, Proficiency: normalizeProficiency(level)})
	}
	for _, name := range languageNameRe.FindAllString(jdText, -1) {
		name = capitalize(name)
		if seen[name] || len(out) == maxLanguages {
			continue
		}
		seen[name] = true
		out = append(out, LanguageEntry{Language: name, Proficiency: LevelProficient})
	}
	return out
}

func lowerAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	// keep acronyms ("AWS") intact
	if len(r) > 1 && r[1] >= 'A' && r[1] <= 'Z' {
		return s
	}
	return strings.ToLower(string(r[0])) + string(r[1:])
}

// joinAnd renders "a", "a and b", "a, b and c".
func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
