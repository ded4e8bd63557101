package cvopt

import (
	"regexp"
	"strings"
)

// techVocabulary marks a skill item as technical.
var techVocabulary = regexp.MustCompile(`(?i)\b(?:python|java|javascript|typescript|golang|go|rust|ruby|php|scala|kotlin|swift|sql|nosql|postgres(?:ql)?|mysql|mongodb|redis|kafka|rabbitmq|docker|kubernetes|k8s|terraform|ansible|aws|azure|gcp|cloud|linux|unix|bash|git|ci/cd|jenkins|react|angular|vue|node(?:\.js)?|django|flask|spring|graphql|rest(?:ful)?|api|apis|html|css|excel|tableau|power bi|spark|hadoop|airflow|pandas|numpy|tensorflow|pytorch|machine learning|deep learning|data analysis|statistics|microservices|devops|networking|security|database|databases|etl|matlab|salesforce|sap|jira|figma|photoshop|autocad|infrastructure|software|programming|backend|frontend)\b`)

var skillLineSplit = regexp.MustCompile(`\s*[,;|•·]\s*`)

// ExtractTechnicalSkills returns items under a technical skills header, or the
// technical half of a generic skills section.
func ExtractTechnicalSkills(text string) []string {
	if b, ok := findBlock(text, technicalSkillHeaders); ok {
		return skillItems(b)
	}
	tech, _ := splitGenericSkills(text)
	return tech
}

// ExtractProfessionalSkills returns items under a soft/professional skills header,
// or the non-technical half of a generic skills section.
func ExtractProfessionalSkills(text string) []string {
	if b, ok := findBlock(text, professionalSkillHeaders); ok {
		return skillItems(b)
	}
	_, prof := splitGenericSkills(text)
	return prof
}

// splitGenericSkills classifies each item of a plain "Skills" block.
func splitGenericSkills(text string) (tech, prof []string) {
	tech, prof = []string{}, []string{}
	b, ok := findBlock(text, genericSkillHeaders)
	if !ok {
		return tech, prof
	}
	for _, item := range skillItems(b) {
		if isTechnicalSkill(item) {
			tech = append(tech, item)
		} else {
			prof = append(prof, item)
		}
	}
	return tech, prof
}

func isTechnicalSkill(item string) bool {
	return techVocabulary.MatchString(item) || strings.ContainsAny(item, "0123456789+#.")
}

// skillItems splits a skills block into deduplicated items. A "Label: a, b" line
// contributes a and b.
func skillItems(b block) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, l := range b.lines {
		if l == "" {
			continue
		}
		l, _ = stripBullet(l)
		if i := strings.Index(l, ":"); i > 0 && i < 40 && !strings.Contains(l[:i], ",") {
			l = l[i+1:]
		}
		for _, item := range skillLineSplit.Split(l, -1) {
			item = strings.TrimSuffix(strings.TrimSpace(item), ".")
			key := strings.ToLower(item)
			if item == "" || seen[key] || len(strings.Fields(item)) > 6 {
				continue
			}
			seen[key] = true
			out = append(out, item)
		}
	}
	return out
}
