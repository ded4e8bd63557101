package cvopt

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// headerSet is an ordered list of header alternatives for one section.
// The first alternative that matches a line in the text wins.
type headerSet []*headerPattern

type headerPattern struct {
	whole  *regexp.Regexp // header on its own line
	inline *regexp.Regexp // "Header: content" on one line
}

func headers(alts ...string) headerSet {
	hs := make(headerSet, 0, len(alts))
	for _, alt := range alts {
		hs = append(hs, &headerPattern{
			whole:  regexp.MustCompile(`(?i)^#*\s*(?:` + alt + `)\s*:?$`),
			inline: regexp.MustCompile(`(?i)^#*\s*(?:` + alt + `)\s*:\s*(\S.*)$`),
		})
	}
	return hs
}

var (
	profileHeaders = headers(
		`summary|profile|about me|professional summary|career summary|objective|professional profile|personal statement`,
		`executive summary|overview|introduction|career profile`,
	)
	technicalSkillHeaders = headers(
		`technical skills|tech stack|technologies|tools|programming languages|technical expertise`,
		`tools (?:and|&) technologies|software|technical proficiencies`,
	)
	professionalSkillHeaders = headers(
		`soft skills|professional skills|core competencies|key skills|interpersonal skills`,
		`competencies|strengths`,
	)
	genericSkillHeaders = headers(
		`skills|skills (?:and|&) (?:abilities|expertise|qualifications)`,
		`areas of expertise|expertise|qualifications summary`,
	)
	experienceHeaders = headers(
		`(?:professional |work |relevant )?experience|employment(?: history)?|work history`,
		`career history|professional background|positions held`,
	)
	educationHeaders = headers(
		`education|academic|qualifications`,
		`academic background|educational background|academic history|education (?:and|&) training`,
		`degrees|diplomas|certifications|training|academic qualifications`,
	)
	achievementHeaders = headers(
		`(?:key )?achievements|accomplishments|key accomplishments`,
		`awards(?: (?:and|&) honors)?|honors(?: (?:and|&) awards)?|recognition`,
	)
	goalHeaders = headers(
		`career goals|goals|aspirations|career objectives|professional goals`,
		`career aspirations|future goals`,
	)
	languageHeaders = headers(
		`languages|language skills|spoken languages|language proficiency`,
	)
	contactHeaders = headers(
		`contact(?: information| details| info)?|personal (?:details|information)`,
	)
	// sections nothing extracts; known so they end the block above them
	otherHeaders = headers(
		`projects|personal projects|side projects|volunteer(?:ing| work| experience)?|interests|hobbies(?: (?:and|&) interests)?`,
		`publications|references|activities|extracurricular activities|memberships|affiliations|additional information`,
	)
)

// allHeaders is the union used to decide where a block ends.
var allHeaders = func() []headerSet {
	return []headerSet{
		profileHeaders, technicalSkillHeaders, professionalSkillHeaders, genericSkillHeaders,
		experienceHeaders, educationHeaders, achievementHeaders, goalHeaders,
		languageHeaders, contactHeaders, otherHeaders,
	}
}()

var (
	bulletRe   = regexp.MustCompile(`^(?:[•▪◦●–]\s*|[-*>+]\s+|\d{1,2}[.)]\s+)`)
	titleColon = regexp.MustCompile(`^(?:[A-Z][\w&'/-]*)(?:\s+(?:[A-Z][\w&'/-]*|and|of|&))*:$`)
	// sub-labels inside education and experience blocks; never section ends
	fieldLabel = regexp.MustCompile(`(?i)^(?:degree|institution|university|school|location|year|graduated|gpa|(?:relevant )?course(?:s|work)|honors|responsibilities|highlights)\s*:$`)
)

// block is the body of one labeled section: trimmed lines, "" for blank lines.
type block struct {
	lines []string
}

// paragraphs splits the block on blank lines.
func (b block) paragraphs() [][]string {
	var out [][]string
	var cur []string
	for _, l := range b.lines {
		if l == "" {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// hasBullets reports whether any line starts with a bullet glyph.
func (b block) hasBullets() bool {
	for _, l := range b.lines {
		if _, ok := stripBullet(l); ok {
			return true
		}
	}
	return false
}

// findBlock returns the single-paragraph block under the first header in hs that
// occurs in text. The first blank line ends it.
func findBlock(text string, hs headerSet) (block, bool) {
	return findBlockMode(text, hs, false)
}

// findEntryBlock is findBlock for sections made of blank-line separated entries
// (experience, education): only two consecutive blank lines end it.
func findEntryBlock(text string, hs headerSet) (block, bool) {
	return findBlockMode(text, hs, true)
}

func findBlockMode(text string, hs headerSet, multiParagraph bool) (block, bool) {
	lines := splitLines(text)
	for _, hp := range hs {
		for i, line := range lines {
			if hp.whole.MatchString(line) {
				return block{lines: collectBlock(lines[i+1:], multiParagraph)}, true
			}
			if m := hp.inline.FindStringSubmatch(line); m != nil {
				return block{lines: collectBlock(lines[i+1:], multiParagraph, strings.TrimSpace(m[1]))}, true
			}
		}
	}
	return block{}, false
}

// collectBlock takes lines after seed until a line that ends the block, a blank
// line (two in a row when multiParagraph), or end of text. Blank lines before the
// first content line are skipped; trailing ones are dropped.
func collectBlock(lines []string, multiParagraph bool, seed ...string) []string {
	out := append([]string{}, seed...)
	blanks := 0
	for _, l := range lines {
		if l == "" {
			if len(out) == 0 {
				continue
			}
			blanks++
			if !multiParagraph || blanks >= 2 {
				break
			}
			out = append(out, "")
			continue
		}
		afterBlank := blanks > 0
		blanks = 0
		if endsBlock(l, afterBlank) {
			break
		}
		out = append(out, l)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

// endsBlock reports whether line starts a new section. Known header phrases and
// "Title Case:" lines always do; bare ALL-CAPS and Title Case lines only after a
// blank line, so a company name like "GOOGLE" inside an entry stays put.
func endsBlock(line string, afterBlank bool) bool {
	if _, ok := stripBullet(line); ok {
		return false
	}
	if fieldLabel.MatchString(line) {
		return false
	}
	if isKnownHeader(line) || titleColon.MatchString(line) {
		return true
	}
	return afterBlank && !namesRoleOrOrg(line) && (isAllCapsHeader(line) || isTitleCaseHeader(line))
}

func isKnownHeader(line string) bool {
	for _, hs := range allHeaders {
		for _, hp := range hs {
			if hp.whole.MatchString(line) {
				return true
			}
		}
	}
	return false
}

// isHeaderLine reports whether a trimmed line reads as a section header on its
// own: a known header phrase, an ALL-CAPS line or a "Title Case:" line.
func isHeaderLine(line string) bool {
	if _, ok := stripBullet(line); ok {
		return false
	}
	if fieldLabel.MatchString(line) {
		return false
	}
	return isKnownHeader(line) || isAllCapsHeader(line) || titleColon.MatchString(line)
}

// isAllCapsHeader: up to 5 words, no digits, at least 5 letters, none lowercase.
// The letter minimum keeps acronyms like "IBM" or "MIT" inside a block.
func isAllCapsHeader(line string) bool {
	s := strings.TrimSuffix(strings.TrimLeft(line, "# "), ":")
	if len(strings.Fields(s)) > 5 {
		return false
	}
	letters := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r), unicode.IsLower(r):
			return false
		case unicode.IsLetter(r):
			letters++
		}
	}
	return letters >= 5
}

var titleConnectors = map[string]bool{"and": true, "&": true, "of": true, "the": true, "for": true, "in": true, "to": true}

// roleOrOrgWords end job titles and organization names, which open entries
// rather than sections ("Data Analyst", "Acme Corp", "Stanford University").
var roleOrOrgWords = map[string]bool{
	"engineer": true, "developer": true, "manager": true, "analyst": true, "designer": true,
	"consultant": true, "intern": true, "director": true, "lead": true, "scientist": true,
	"architect": true, "specialist": true, "officer": true, "administrator": true,
	"coordinator": true, "assistant": true, "associate": true, "executive": true,
	"president": true, "founder": true, "co-founder": true, "head": true, "owner": true,
	"accountant": true, "programmer": true, "technician": true, "researcher": true,
	"teacher": true, "tutor": true, "editor": true, "writer": true, "representative": true,
	"supervisor": true, "strategist": true, "advisor": true, "partner": true, "trainee": true,
	"contractor": true, "freelancer": true, "nurse": true, "recruiter": true, "instructor": true,
	"professor": true, "fellow": true, "student": true, "cto": true, "ceo": true, "vp": true,
	"inc": true, "corp": true, "corporation": true, "llc": true, "ltd": true, "gmbh": true,
	"co": true, "company": true, "group": true, "labs": true, "technologies": true,
	"solutions": true, "systems": true, "bank": true, "university": true, "college": true,
	"institute": true, "school": true, "agency": true, "studio": true, "ventures": true,
	"holdings": true, "consulting": true, "software": true,
}

func namesRoleOrOrg(s string) bool {
	words := strings.Fields(s)
	return len(words) > 0 && roleOrOrgWords[strings.ToLower(strings.Trim(words[len(words)-1], ".,"))]
}

// isTitleCaseHeader matches a short capitalized line such as "Volunteer Work":
// at most 4 words, no digits, no sentence punctuation, every word capitalized or a
// connector, at least one lowercase letter, not ending in a role or company word.
func isTitleCaseHeader(line string) bool {
	s := strings.TrimSpace(strings.TrimLeft(line, "# "))
	if s == "" || strings.ContainsAny(s, ".,;:!?|@()/") || !strings.ContainsFunc(s, unicode.IsLower) {
		return false
	}
	words := strings.Fields(s)
	if len(words) > 4 || namesRoleOrOrg(s) {
		return false
	}
	capped := 0
	for _, w := range words {
		if strings.ContainsFunc(w, unicode.IsDigit) {
			return false
		}
		r, _ := utf8.DecodeRuneInString(w)
		switch {
		case unicode.IsUpper(r):
			capped++
		case titleConnectors[w]:
		default:
			return false
		}
	}
	return capped > 0
}

// stripBullet removes a leading bullet glyph or list number.
func stripBullet(line string) (string, bool) {
	loc := bulletRe.FindStringIndex(line)
	if loc == nil {
		return line, false
	}
	return strings.TrimSpace(line[loc[1]:]), true
}

// splitLines normalizes line endings and trims every line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// splitSentences breaks text on sentence punctuation and newlines.
func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

var sentenceSplit = regexp.MustCompile(`[.!?]+(?:\s+|$)|\n+`)

// ExtractProfile returns the summary/profile paragraph, or "".
func ExtractProfile(text string) string {
	b, ok := findBlock(text, profileHeaders)
	if !ok {
		return ""
	}
	var parts []string
	for _, p := range b.paragraphs() {
		parts = append(parts, strings.Join(p, " "))
	}
	return strings.Join(parts, " ")
}

// ExtractGoals returns career goal statements: bullets if present, else sentences.
func ExtractGoals(text string) []string {
	b, ok := findBlock(text, goalHeaders)
	if !ok {
		return []string{}
	}
	return listItems(b)
}

// listItems returns bullet items of a block, or its sentences when it has none.
func listItems(b block) []string {
	out := []string{}
	if b.hasBullets() {
		for _, l := range b.lines {
			if item, ok := stripBullet(l); ok && item != "" {
				out = append(out, item)
			}
		}
		return out
	}
	for _, p := range b.paragraphs() {
		out = append(out, splitSentences(strings.Join(p, " "))...)
	}
	return out
}

// Segment runs every section extractor over text.
func Segment(text string) Sections {
	return Sections{
		Profile:            ExtractProfile(text),
		TechnicalSkills:    ExtractTechnicalSkills(text),
		ProfessionalSkills: ExtractProfessionalSkills(text),
		Experience:         ExtractExperience(text),
		Education:          ExtractEducationData(text),
		Achievements:       ExtractAchievements(text),
		Goals:              ExtractGoals(text),
		Languages:          ExtractLanguages(text),
		Contact:            ExtractContactInfo(text),
	}
}
