package cvopt

import (
	"regexp"
	"strings"
)

// Proficiency levels a LanguageEntry is normalized to.
const (
	LevelNative       = "Native"
	LevelFluent       = "Fluent"
	LevelProficient   = "Proficient"
	LevelIntermediate = "Intermediate"
	LevelBasic        = "Basic"
)

var knownLanguages = []string{
	"English", "Spanish", "French", "German", "Italian", "Portuguese", "Dutch", "Russian",
	"Ukrainian", "Polish", "Czech", "Swedish", "Norwegian", "Danish", "Finnish", "Greek",
	"Turkish", "Arabic", "Hebrew", "Persian", "Hindi", "Urdu", "Bengali", "Punjabi",
	"Tamil", "Chinese", "Mandarin", "Cantonese", "Japanese", "Korean", "Vietnamese",
	"Thai", "Indonesian", "Malay", "Filipino", "Swahili", "Romanian", "Hungarian",
}

// proficiencyWords maps vocabulary and CEFR levels to the normalized scale.
var proficiencyWords = []struct {
	re    *regexp.Regexp
	level string
}{
	{regexp.MustCompile(`(?i)\b(?:native|mother tongue|first language|bilingual)\b`), LevelNative},
	{regexp.MustCompile(`(?i)\b(?:fluent|fluency|advanced|c2|c1)\b`), LevelFluent},
	{regexp.MustCompile(`(?i)\b(?:proficient|professional working|full professional|upper[- ]intermediate|b2)\b`), LevelProficient},
	{regexp.MustCompile(`(?i)\b(?:intermediate|conversational|working knowledge|b1)\b`), LevelIntermediate},
	{regexp.MustCompile(`(?i)\b(?:basic|beginner|elementary|limited|a2|a1)\b`), LevelBasic},
}

var languageNameRe = regexp.MustCompile(`(?i)\b(` + strings.Join(knownLanguages, "|") + `)\b`)

// explicitLanguageRe finds labeled mentions outside a languages section:
// "German (B2)", "Spanish - fluent", "fluent in Spanish", "native French speaker".
var explicitLanguageRe = regexp.MustCompile(`(?i)\b(?:(` + strings.Join(knownLanguages, "|") +
	`)\s*(?:\(|:|-|–)\s*(native|fluent|proficient|intermediate|basic|beginner|conversational|advanced|[abc][12])\b|` +
	`(native|fluent|proficient|conversational)(?: in| speaker of)?\s+(` + strings.Join(knownLanguages, "|") + `)\b)`)

// ExtractLanguages returns spoken languages with a normalized proficiency.
// Inside a languages section unlabeled mentions default to Proficient; elsewhere
// only explicitly labeled mentions count.
func ExtractLanguages(text string) []LanguageEntry {
	out := []LanguageEntry{}
	seen := make(map[string]bool)
	add := func(name, level string) {
		name = capitalize(name)
		if seen[name] {
			return
		}
		seen[name] = true
		out = append(out, LanguageEntry{Language: name, Proficiency: level})
	}

	if b, ok := findBlock(text, languageHeaders); ok {
		for _, item := range languageItems(b) {
			names := languageNameRe.FindAllStringIndex(item, -1)
			for i, loc := range names {
				// the level belongs to the text between this name and the next one
				end := len(item)
				if i+1 < len(names) {
					end = names[i+1][0]
				}
				level := normalizeProficiency(item[loc[1]:end])
				if level == "" && len(names) == 1 {
					level = normalizeProficiency(item[:loc[0]])
				}
				if level == "" {
					level = LevelProficient
				}
				add(item[loc[0]:loc[1]], level)
			}
		}
		return out
	}

	for _, m := range explicitLanguageRe.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			add(m[1], normalizeProficiency(m[2]))
		} else {
			add(m[4], normalizeProficiency(m[3]))
		}
	}
	return out
}

func languageItems(b block) []string {
	var items []string
	for _, l := range b.lines {
		if l == "" {
			continue
		}
		l, _ = stripBullet(l)
		for _, part := range strings.FieldsFunc(l, func(r rune) bool { return r == ',' || r == ';' || r == '|' }) {
			if p := strings.TrimSpace(part); p != "" {
				items = append(items, p)
			}
		}
	}
	return items
}

// normalizeProficiency maps free text to one of the five levels, "" if none found.
func normalizeProficiency(s string) string {
	for _, pw := range proficiencyWords {
		if pw.re.MatchString(s) {
			return pw.level
		}
	}
	return ""
}
