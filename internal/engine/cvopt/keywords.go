package cvopt

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultTopN is the reference keyword cutoff.
const DefaultTopN = 15

// minTokenLen: tokens of this length or shorter are dropped ("c", "ai", "of").
const minTokenLen = 2

// stopWords covers articles, prepositions, pronouns, auxiliaries and the filler
// words that dominate job ads without carrying meaning.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "you": true, "are": true,
	"have": true, "has": true, "had": true, "will": true, "this": true, "that": true,
	"these": true, "those": true, "from": true, "our": true, "your": true, "their": true,
	"they": true, "them": true, "his": true, "her": true, "she": true, "him": true,
	"its": true, "was": true, "were": true, "been": true, "being": true, "into": true,
	"onto": true, "about": true, "above": true, "below": true, "over": true, "under": true,
	"which": true, "what": true, "who": true, "whom": true, "how": true, "when": true,
	"where": true, "why": true, "can": true, "could": true, "would": true, "should": true,
	"shall": true, "may": true, "might": true, "must": true, "not": true, "but": true,
	"all": true, "any": true, "also": true, "more": true, "most": true, "than": true,
	"then": true, "each": true, "such": true, "some": true, "other": true, "only": true,
	"own": true, "same": true, "very": true, "just": true, "does": true, "did": true,
	"doing": true, "there": true, "here": true, "while": true, "within": true,
	"without": true, "through": true, "during": true, "before": true, "after": true,
	"between": true, "both": true, "either": true, "per": true, "via": true, "etc": true,
	"who's": true, "we're": true, "you'll": true, "we'll": true, "able": true,
	"well": true, "including": true, "across": true, "upon": true, "out": true,
	"off": true, "too": true, "yet": true, "nor": true, "because": true, "until": true,
	"against": true, "among": true, "myself": true, "ourselves": true, "yourself": true,
	"itself": true, "themselves": true, "what's": true, "i'm": true, "it's": true,
}

// industryTerms carry a 2× weight when ranking keywords.
var industryTerms = map[string]bool{
	"experience": true, "skills": true, "manage": true, "management": true,
	"develop": true, "development": true, "implement": true, "implementation": true,
	"analyze": true, "analysis": true, "design": true, "create": true, "maintain": true,
	"improve": true, "optimize": true, "lead": true, "leadership": true,
	"collaborate": true, "collaboration": true, "strategy": true, "strategic": true,
	"communication": true, "project": true, "projects": true, "team": true,
	"solutions": true, "deliver": true, "build": true, "architecture": true,
	"data": true, "cloud": true, "software": true, "engineering": true,
}

// requirementPatterns capture multi-word requirement phrases from job descriptions.
// The capture stops at punctuation, a conjunction, a copula or preference tail
// ("is a plus", "preferred", "would be nice") or end of line.
var requirementPatterns = requirementLeads(
	`experience (?:in|with)`,
	`knowledge of`,
	`proficien(?:t|cy) (?:in|with)`,
	`familiar(?:ity)? with`,
	`skills? in`,
	`expertise (?:in|with)`,
	`background in`,
	`understanding of`,
)

const requirementTail = `(?:[,;.:\n]| and | or |\s+(?:is|are|was|were|would|will|should|preferred|required|desired|desirable|needed|essential|strongly|highly|a plus|a must|an advantage|a bonus|nice to have)\b|$)`

func requirementLeads(leads ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(leads))
	for _, lead := range leads {
		out = append(out, regexp.MustCompile(`(?i)\b`+lead+` ([^,;.:\n]+?)`+requirementTail))
	}
	return out
}

// ExtractKeywords returns the top DefaultTopN keywords of text, most relevant first,
// first letter capitalized.
func ExtractKeywords(text string, isJobDescription bool) []string {
	return keywordTerms(ExtractKeywordDetails(text, isJobDescription, DefaultTopN))
}

// ExtractKeywordDetails ranks keyword candidates by weighted frequency and returns
// the top n with their rank and source. n <= 0 means DefaultTopN.
func ExtractKeywordDetails(text string, isJobDescription bool, n int) []Keyword {
	if n <= 0 {
		n = DefaultTopN
	}
	return rankKeywords(text, isJobDescription, n)
}

// rankKeywords is ExtractKeywordDetails without a default; limit <= 0 returns
// every candidate.
func rankKeywords(text string, isJobDescription bool, limit int) []Keyword {
	out := []Keyword{}
	if strings.TrimSpace(text) == "" {
		return out
	}

	type candidate struct {
		term   string
		weight int
		first  int
		source KeywordSource
	}
	byTerm := make(map[string]*candidate)
	var order []*candidate
	add := func(term string, weight int, source KeywordSource) {
		if c, ok := byTerm[term]; ok {
			c.weight += weight
			return
		}
		c := &candidate{term: term, weight: weight, first: len(order), source: source}
		byTerm[term] = c
		order = append(order, c)
	}

	for _, tok := range tokenize(text) {
		w := 1
		if industryTerms[tok] {
			w = 2
		}
		add(tok, w, SourceToken)
	}
	if isJobDescription {
		for _, phrase := range requirementPhrases(text) {
			add(normalizeTerm(phrase), 2, SourcePhrase)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].weight != order[j].weight {
			return order[i].weight > order[j].weight
		}
		return order[i].first < order[j].first
	})

	for _, c := range order {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, Keyword{Term: capitalize(c.term), Rank: len(out) + 1, Source: c.source})
	}
	return out
}

// tokenize lowercases text, turns punctuation into spaces and drops short tokens
// and stop words. "+" and "#" survive so "c++" and "c#" stay intact.
func tokenize(text string) []string {
	fields := strings.Fields(cleanForTokens(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if len([]rune(f)) <= minTokenLen || stopWords[f] || isNumeric(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func cleanForTokens(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '\'' {
			return r
		}
		return ' '
	}, strings.ToLower(norm.NFKC.String(text)))
}

// requirementPhrases returns trimmed requirement captures longer than 3 characters,
// in order of appearance.
func requirementPhrases(text string) []string {
	type hit struct {
		pos    int
		phrase string
	}
	var hits []hit
	for _, re := range requirementPatterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			p := strings.TrimSpace(text[m[2]:m[3]])
			p = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(p, "the "), "a "))
			if len(p) > 3 {
				hits = append(hits, hit{pos: m[2], phrase: p})
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.phrase)
	}
	return out
}

// normalizeTerm lowercases and collapses whitespace.
func normalizeTerm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(norm.NFKC.String(s))), " ")
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r := []rune(strings.ToLower(s))
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func keywordTerms(kws []Keyword) []string {
	out := make([]string, len(kws))
	for i, k := range kws {
		out[i] = k.Term
	}
	return out
}
