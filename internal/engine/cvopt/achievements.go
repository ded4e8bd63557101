package cvopt

import "regexp"

var (
	achievementVerbRe = regexp.MustCompile(`(?i)\b(?:led|increased|reduced|decreased|improved|achieved|saved|grew|launched|delivered|generated|won|awarded|exceeded|spearheaded|optimized|streamlined|boosted|doubled|tripled|accelerated|cut)\b`)
	metricRe          = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:%|x\b|k\b|m\b|million|billion|thousand|users|customers|clients|people|engineers|projects|hours|days|weeks)|[$€£]\s*\d`)
)

// isAchievementLike reports whether s has an achievement indicator or a numeric metric.
func isAchievementLike(s string) bool {
	return achievementVerbRe.MatchString(s) || metricRe.MatchString(s)
}

// ExtractAchievements returns the achievements section. Without one it falls back,
// in order, to indicator-bearing experience bullets, honor bullets in the education
// section, then indicator-bearing profile sentences. The first non-empty source wins.
func ExtractAchievements(text string) []string {
	if b, ok := findBlock(text, achievementHeaders); ok {
		if items := listItems(b); len(items) > 0 {
			return items
		}
	}

	out := []string{}
	for _, e := range ExtractExperience(text) {
		for _, bullet := range e.Bullets {
			if isAchievementLike(bullet) {
				out = append(out, bullet)
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	if b, ok := findEntryBlock(text, educationHeaders); ok {
		for _, l := range b.lines {
			if item, isBullet := stripBullet(l); isBullet && honorRe.MatchString(item) {
				out = append(out, item)
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, s := range splitSentences(ExtractProfile(text)) {
		if isAchievementLike(s) {
			out = append(out, s)
		}
	}
	return out
}
