package cvopt

import (
	"fmt"
	"strings"
)

// Thresholds for praising or flagging a score.
const (
	praiseAbove        = 70
	flagBelow          = 50
	criticalAbove      = 70
	excellentAtOrAbove = 85
	maxListedMissing   = 8
)

// Recommend turns scores, keyword gaps and section feedback into readable advice.
func Recommend(matched []MatchedKeyword, missing []MissingKeyword, scores DimensionalScores, sections SectionResults) Narrative {
	return Narrative{
		Recommendations:      recommendations(missing, scores, sections),
		SkillGap:             skillGap(missing),
		DetailedAnalysis:     detailedAnalysis(matched, scores),
		ImprovementPotential: improvementPotential(scores),
	}
}

func improvementPotential(s DimensionalScores) int {
	return clampScore(100 - s.OverallCompatibility)
}

func recommendations(missing []MissingKeyword, s DimensionalScores, sec SectionResults) []string {
	out := []string{}
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, m := range missing[:min(len(missing), maxListedMissing)] {
			names = append(names, m.Keyword)
		}
		out = append(out, "Add these missing keywords where they truthfully apply: "+strings.Join(names, ", ")+".")
	} else {
		out = append(out, "Your résumé already covers the job's key terms.")
	}

	dims := []struct {
		score          int
		praise, remedy string
	}{
		{s.SkillsMatch, "Strong skills alignment with the job requirements.", "Strengthen the skills section with the tools and competencies the job lists."},
		{s.ExperienceMatch, "Your experience aligns well with the role.", "Emphasize experience that matches the role's title and required years."},
		{s.IndustryFit, "Good industry fit; keep highlighting domain-specific results.", "Use more of the industry terminology from the job description."},
	}
	for _, d := range dims {
		switch {
		case d.score > praiseAbove:
			out = append(out, d.praise)
		case d.score < flagBelow:
			out = append(out, d.remedy)
		}
	}

	parts := []struct {
		name string
		res  SectionResult
	}{
		{"profile", sec.Profile},
		{"skills", sec.Skills},
		{"experience", sec.Experience},
		{"education", sec.Education},
		{"achievements", sec.Achievements},
	}
	for _, p := range parts {
		switch {
		case p.res.Score > praiseAbove:
			out = append(out, fmt.Sprintf("Your %s section is strong: %s", p.name, p.res.Feedback))
		case p.res.Score < flagBelow:
			out = append(out, fmt.Sprintf("Improve your %s section: %s", p.name, p.res.Feedback))
		}
	}
	return out
}

func skillGap(missing []MissingKeyword) string {
	if len(missing) == 0 {
		return "No significant skill gaps: the résumé covers the job's key requirements."
	}
	var critical, desired []string
	for _, m := range missing {
		if m.Importance > criticalAbove {
			critical = append(critical, m.Keyword)
		} else {
			desired = append(desired, m.Keyword)
		}
	}
	first := "covers every critical skill"
	if len(critical) > 0 {
		first = "is missing critical skills (" + strings.Join(critical, ", ") + ")"
	}
	second := "has no gaps among desired skills"
	if len(desired) > 0 {
		second = "would benefit from desired skills (" + strings.Join(desired, ", ") + ")"
	}
	return "The résumé " + first + " and " + second + "."
}

func detailedAnalysis(matched []MatchedKeyword, s DimensionalScores) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The résumé matches %d%% of the job's key skills", s.SkillsMatch)
	if len(matched) > 0 {
		top := make([]string, 0, 3)
		for _, m := range matched[:min(len(matched), 3)] {
			top = append(top, m.Keyword)
		}
		b.WriteString(", including " + joinAnd(top))
	}
	fmt.Fprintf(&b, ". Experience alignment is %s (%d%%), education alignment is %s (%d%%) and industry fit is %s (%d%%).",
		qualifier(s.ExperienceMatch), s.ExperienceMatch,
		qualifier(s.EducationMatch), s.EducationMatch,
		qualifier(s.IndustryFit), s.IndustryFit)
	fmt.Fprintf(&b, " Overall compatibility is %d%%, with %d points of improvement potential.",
		s.OverallCompatibility, improvementPotential(s))
	return b.String()
}

func qualifier(score int) string {
	switch {
	case score >= excellentAtOrAbove:
		return "excellent"
	case score >= praiseAbove:
		return "strong"
	case score >= flagBelow:
		return "moderate"
	}
	return "limited"
}
