package cvopt

import (
	"strings"
)

// Section kinds of a StructuredCV, in render order.
const (
	KindProfile      = "profile"
	KindSkills       = "skills"
	KindExperience   = "experience"
	KindEducation    = "education"
	KindAchievements = "achievements"
	KindGoals        = "goals"
	KindLanguages    = "languages"
)

const bullet = "• "

type cvContent struct {
	contact      ContactInfo
	profile      string
	technical    []string
	professional []string
	experience   []ExperienceEntry
	education    []EducationEntry
	achievements []string
	goals        []string
	languages    []LanguageEntry
}

// buildDocument lays the content out as typed sections. Empty sections are omitted.
func buildDocument(c cvContent) StructuredCV {
	doc := StructuredCV{Contact: c.contact, Sections: []DocSection{}}
	add := func(s DocSection) {
		if s.Text != "" || len(s.Items) > 0 || len(s.Entries) > 0 {
			doc.Sections = append(doc.Sections, s)
		}
	}

	add(DocSection{Kind: KindProfile, Title: "PROFILE", Text: c.profile})

	var skills []string
	if len(c.technical) > 0 {
		skills = append(skills, "Technical: "+strings.Join(c.technical, ", "))
	}
	if len(c.professional) > 0 {
		skills = append(skills, "Professional: "+strings.Join(c.professional, ", "))
	}
	add(DocSection{Kind: KindSkills, Title: "SKILLS", Items: skills})

	var exp []DocEntry
	for _, e := range c.experience {
		exp = append(exp, DocEntry{
			Heading:    e.Title,
			Subheading: e.Company,
			Dates:      dateSpan(e.StartDate, e.EndDate),
			Details:    e.Bullets,
		})
	}
	add(DocSection{Kind: KindExperience, Title: "EXPERIENCE", Entries: exp})

	var edu []DocEntry
	for _, e := range c.education {
		var details []string
		if e.GPA != "" {
			details = append(details, "GPA: "+e.GPA)
		}
		if len(e.RelevantCourses) > 0 {
			details = append(details, "Relevant courses: "+strings.Join(e.RelevantCourses, ", "))
		}
		details = append(details, e.Achievements...)
		edu = append(edu, DocEntry{
			Heading:    e.Degree,
			Subheading: joinNonEmpty(", ", e.Institution, e.Location),
			Dates:      e.Year,
			Details:    details,
		})
	}
	add(DocSection{Kind: KindEducation, Title: "EDUCATION", Entries: edu})

	add(DocSection{Kind: KindAchievements, Title: "ACHIEVEMENTS", Items: c.achievements})
	add(DocSection{Kind: KindGoals, Title: "CAREER GOALS", Items: c.goals})

	var langs []string
	for _, l := range c.languages {
		langs = append(langs, l.Language+" ("+l.Proficiency+")")
	}
	add(DocSection{Kind: KindLanguages, Title: "LANGUAGES", Items: langs})
	return doc
}

// RenderText renders a StructuredCV as plain text with upper-case section labels.
func RenderText(doc StructuredCV) string {
	var b strings.Builder
	for i, s := range doc.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Title + ":\n")
		if s.Text != "" {
			b.WriteString(s.Text + "\n")
		}
		for _, it := range s.Items {
			b.WriteString(bullet + it + "\n")
		}
		for _, e := range s.Entries {
			head := joinNonEmpty(" | ", e.Heading, e.Subheading)
			if e.Dates != "" {
				head = joinNonEmpty(" ", head, "("+e.Dates+")")
			}
			if head != "" {
				b.WriteString(head + "\n")
			}
			for _, d := range e.Details {
				b.WriteString(bullet + d + "\n")
			}
		}
	}
	return b.String()
}

func dateSpan(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	}
	return end
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
