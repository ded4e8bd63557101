package cvopt

import (
	"reflect"
	"testing"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 555-123-4567 | linkedin.com/in/janedoe | janedoe.dev

PROFESSIONAL SUMMARY
Backend engineer with 6 years of experience building Python services.

TECHNICAL SKILLS
Python, Go, PostgreSQL, Docker

SOFT SKILLS
Leadership, Communication

EXPERIENCE
Senior Engineer at Acme Corp, 2019 - Present
• Led migration to Kubernetes, reducing costs by 30%
• Built REST APIs in Python
Software Engineer | Beta Inc | 2016 - 2019
• Maintained billing services

EDUCATION
Bachelor of Science in Computer Science, MIT, 2016, GPA: 3.8

LANGUAGES
English (Native), Spanish (B2)

CAREER GOALS
- Grow into a staff engineering role
- Mentor junior engineers
`

func TestSegment(t *testing.T) {
	s := Segment(sampleResume)

	if want := "Backend engineer with 6 years of experience building Python services."; s.Profile != want {
		t.Errorf("Profile = %q, want %q", s.Profile, want)
	}
	if want := []string{"Python", "Go", "PostgreSQL", "Docker"}; !reflect.DeepEqual(s.TechnicalSkills, want) {
		t.Errorf("TechnicalSkills = %v, want %v", s.TechnicalSkills, want)
	}
	if want := []string{"Leadership", "Communication"}; !reflect.DeepEqual(s.ProfessionalSkills, want) {
		t.Errorf("ProfessionalSkills = %v, want %v", s.ProfessionalSkills, want)
	}

	wantExp := []ExperienceEntry{
		{
			Title: "Senior Engineer", Company: "Acme Corp", StartDate: "2019", EndDate: "Present",
			Bullets: []string{"Led migration to Kubernetes, reducing costs by 30%", "Built REST APIs in Python"},
		},
		{
			Title: "Software Engineer", Company: "Beta Inc", StartDate: "2016", EndDate: "2019",
			Bullets: []string{"Maintained billing services"},
		},
	}
	if !reflect.DeepEqual(s.Experience, wantExp) {
		t.Errorf("Experience = %+v, want %+v", s.Experience, wantExp)
	}

	if len(s.Education) != 1 {
		t.Fatalf("Education len = %d, want 1", len(s.Education))
	}
	if got := s.Education[0]; got.Degree != "Bachelor of Science in Computer Science" || got.Institution != "MIT" || got.Year != "2016" || got.GPA != "3.8" {
		t.Errorf("Education[0] = %+v", got)
	}

	if want := []string{"Led migration to Kubernetes, reducing costs by 30%"}; !reflect.DeepEqual(s.Achievements, want) {
		t.Errorf("Achievements = %v, want %v", s.Achievements, want)
	}
	if want := []string{"Grow into a staff engineering role", "Mentor junior engineers"}; !reflect.DeepEqual(s.Goals, want) {
		t.Errorf("Goals = %v, want %v", s.Goals, want)
	}
	wantLang := []LanguageEntry{{"English", LevelNative}, {"Spanish", LevelProficient}}
	if !reflect.DeepEqual(s.Languages, wantLang) {
		t.Errorf("Languages = %v, want %v", s.Languages, wantLang)
	}

	wantContact := ContactInfo{
		Name:     "Jane Doe",
		Email:    "jane.doe@example.com",
		Phone:    "+1 555-123-4567",
		LinkedIn: "linkedin.com/in/janedoe",
		Website:  "janedoe.dev",
	}
	if s.Contact != wantContact {
		t.Errorf("Contact = %+v, want %+v", s.Contact, wantContact)
	}
}

func TestSegment_EmptyText(t *testing.T) {
	s := Segment("")
	if s.Profile != "" {
		t.Errorf("Profile = %q, want empty", s.Profile)
	}
	if s.TechnicalSkills == nil || s.ProfessionalSkills == nil || s.Experience == nil ||
		s.Education == nil || s.Achievements == nil || s.Goals == nil || s.Languages == nil {
		t.Errorf("Segment(\"\") has nil slices: %+v", s)
	}
	if s.Contact != (ContactInfo{}) {
		t.Errorf("Contact = %+v, want zero", s.Contact)
	}
}

func TestExtractEducationData(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []EducationEntry
	}{
		{
			name: "paragraph format",
			text: "Education\nBachelor of Science in Computer Science, MIT, 2020, GPA: 3.8",
			want: []EducationEntry{{
				Degree: "Bachelor of Science in Computer Science", Institution: "MIT", Year: "2020", GPA: "3.8",
				RelevantCourses: []string{}, Achievements: []string{},
			}},
		},
		{
			name: "no header",
			text: "I graduated from State University with a Master's degree in 2019",
			want: []EducationEntry{},
		},
		{
			name: "bullet format with coursework",
			text: "EDUCATION\n" +
				"• M.Sc. Data Science, University of Oxford, Oxford, UK, 2021\n" +
				"Relevant Coursework:\n" +
				"• Machine Learning\n" +
				"• Statistics\n" +
				"• B.A. Economics, State College, 2018\n" +
				"• Dean's List 2017",
			want: []EducationEntry{
				{
					Degree: "M.Sc. Data Science", Institution: "University of Oxford", Location: "Oxford, UK", Year: "2021",
					RelevantCourses: []string{"Machine Learning", "Statistics"}, Achievements: []string{},
				},
				{
					Degree: "B.A. Economics", Institution: "State College", Year: "2018",
					RelevantCourses: []string{}, Achievements: []string{"Dean's List 2017"},
				},
			},
		},
		{
			name: "labeled fields",
			text: "Academic Background\n" +
				"Degree: Master of Business Administration\n" +
				"University: Stanford University\n" +
				"Graduated: June 2015\n" +
				"GPA: 3.6/4.0\n" +
				"Courses: Finance, Strategy",
			want: []EducationEntry{{
				Degree: "Master of Business Administration", Institution: "Stanford University", Year: "2015", GPA: "3.6",
				RelevantCourses: []string{"Finance", "Strategy"}, Achievements: []string{},
			}},
		},
		{
			name: "institution without vocabulary word",
			text: "Education\nBachelor of Arts in Economics, UC Berkeley, 2016",
			want: []EducationEntry{{
				Degree: "Bachelor of Arts in Economics", Institution: "UC Berkeley", Year: "2016",
				RelevantCourses: []string{}, Achievements: []string{},
			}},
		},
		{
			name: "institution on the line after the degree",
			text: "Education\nBachelor of Arts in Economics\nUC Berkeley, Berkeley CA, 2016",
			want: []EducationEntry{{
				Degree: "Bachelor of Arts in Economics", Institution: "UC Berkeley", Location: "Berkeley CA", Year: "2016",
				RelevantCourses: []string{}, Achievements: []string{},
			}},
		},
		{
			name: "paragraphs separated by a blank line",
			text: "Education\n" +
				"PhD in Physics, California Institute of Technology, 2012\n" +
				"\n" +
				"Bachelor of Arts, Yale University, 2006",
			want: []EducationEntry{
				{Degree: "PhD in Physics", Institution: "California Institute of Technology", Year: "2012", RelevantCourses: []string{}, Achievements: []string{}},
				{Degree: "Bachelor of Arts", Institution: "Yale University", Year: "2006", RelevantCourses: []string{}, Achievements: []string{}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEducationData(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractEducationData() =\n%+v\nwant\n%+v", got, tt.want)
			}
		})
	}
}

func TestExtractExperience_SplitHeading(t *testing.T) {
	text := "Work Experience\nData Analyst\nGlobex, Jan 2018 – Mar 2020\n- Increased reporting accuracy by 15%"
	got := ExtractExperience(text)
	want := []ExperienceEntry{{
		Title: "Data Analyst", Company: "Globex", StartDate: "Jan 2018", EndDate: "Mar 2020",
		Bullets: []string{"Increased reporting accuracy by 15%"},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractExperience() = %+v, want %+v", got, want)
	}
	if y := entryYears(got[0], 2026); y != 2 {
		t.Errorf("entryYears = %d, want 2", y)
	}
}

func TestEntryYears(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2019", "Present", 7},
		{"03/2018", "05/2020", 2},
		{"2021", "2019", 0},
		{"", "2020", 0},
		{"Jan 2020", "current", 6},
	}
	for _, tt := range tests {
		e := ExperienceEntry{StartDate: tt.start, EndDate: tt.end}
		if got := entryYears(e, 2026); got != tt.want {
			t.Errorf("entryYears(%q, %q) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestExtractAchievements(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty",
			text: "",
			want: []string{},
		},
		{
			name: "dedicated section",
			text: "Key Achievements\n• Won the 2022 hackathon\n• Shipped v2 ahead of schedule",
			want: []string{"Won the 2022 hackathon", "Shipped v2 ahead of schedule"},
		},
		{
			name: "falls back to experience bullets",
			text: "Experience\nEngineer, Initech, 2018 - 2020\n- Reduced latency by 40%\n- Wrote documentation",
			want: []string{"Reduced latency by 40%"},
		},
		{
			name: "falls back to education honors",
			text: "Education\nBSc Mathematics, Leeds University, 2015\n• Graduated with First Class Honours",
			want: []string{"Graduated with First Class Honours"},
		},
		{
			name: "falls back to profile sentences",
			text: "Summary\nProduct manager. Grew revenue by $2M in two years. Loves hiking.",
			want: []string{"Grew revenue by $2M in two years"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAchievements(tt.text)
			if got == nil {
				t.Fatal("ExtractAchievements returned nil")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractAchievements() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractLanguages(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []LanguageEntry
	}{
		{
			name: "section with mixed labels",
			text: "Languages\n- French: fluent\n- German (C1)\n- Italian\n- Japanese - beginner",
			want: []LanguageEntry{
				{"French", LevelFluent}, {"German", LevelFluent}, {"Italian", LevelProficient}, {"Japanese", LevelBasic},
			},
		},
		{
			name: "inline section",
			text: "Languages: Polish (native), English (B1)",
			want: []LanguageEntry{{"Polish", LevelNative}, {"English", LevelIntermediate}},
		},
		{
			name: "explicit mentions without section",
			text: "Summary\nAnalyst, fluent in Spanish, with Portuguese (A2).",
			want: []LanguageEntry{{"Spanish", LevelFluent}, {"Portuguese", LevelBasic}},
		},
		{
			name: "bare mention without section is ignored",
			text: "Worked with the English team.",
			want: []LanguageEntry{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractLanguages(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractLanguages() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractSkills_GenericSection(t *testing.T) {
	text := "Skills\n• Python, Kubernetes, Teamwork\n• Languages: C++, Stakeholder management"
	tech := ExtractTechnicalSkills(text)
	prof := ExtractProfessionalSkills(text)
	if want := []string{"Python", "Kubernetes", "C++"}; !reflect.DeepEqual(tech, want) {
		t.Errorf("technical = %v, want %v", tech, want)
	}
	if want := []string{"Teamwork", "Stakeholder management"}; !reflect.DeepEqual(prof, want) {
		t.Errorf("professional = %v, want %v", prof, want)
	}
}

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"EXPERIENCE", true},
		{"## Education:", true},
		{"Volunteer Work:", true},
		{"PROJECTS", true},
		{"Interests", true},
		{"MIT", false},
		{"Jane Doe", false},
		{"Relevant Coursework:", false},
		{"• SKILLS", false},
		{"Built REST APIs", false},
	}
	for _, tt := range tests {
		if got := isHeaderLine(tt.line); got != tt.want {
			t.Errorf("isHeaderLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestCollectBlock(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		multi bool
		want  []string
	}{
		{
			name:  "blank line ends a single paragraph",
			lines: []string{"Backend engineer.", "", "I love hiking."},
			want:  []string{"Backend engineer."},
		},
		{
			name:  "leading blanks are skipped",
			lines: []string{"", "Backend engineer.", ""},
			want:  []string{"Backend engineer."},
		},
		{
			name:  "entries survive one blank line",
			lines: []string{"PhD, Caltech, 2012", "", "BA, Yale University, 2006", "", "", "Unrelated"},
			multi: true,
			want:  []string{"PhD, Caltech, 2012", "", "BA, Yale University, 2006"},
		},
		{
			name:  "unknown title case header after a blank",
			lines: []string{"Data Analyst at Foo, 2018 - 2020", "- Built dashboards", "", "Community Service", "Food bank, 2015"},
			multi: true,
			want:  []string{"Data Analyst at Foo, 2018 - 2020", "- Built dashboards"},
		},
		{
			name:  "all caps company name inside an entry",
			lines: []string{"Data Analyst", "GOOGLE", "2018 - 2020"},
			multi: true,
			want:  []string{"Data Analyst", "GOOGLE", "2018 - 2020"},
		},
		{
			name:  "job title after a blank opens an entry",
			lines: []string{"Engineer, Acme, 2019 - 2021", "", "Senior Data Analyst", "Globex, 2016 - 2019"},
			multi: true,
			want:  []string{"Engineer, Acme, 2019 - 2021", "", "Senior Data Analyst", "Globex, 2016 - 2019"},
		},
		{
			name:  "known header without a blank",
			lines: []string{"Python, Go", "Interests", "Chess"},
			want:  []string{"Python, Go"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectBlock(tt.lines, tt.multi)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("collectBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTitleCaseHeader(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Volunteer Work", true},
		{"Community Service", true},
		{"Certificates and Licenses", true},
		{"Data Analyst", false},
		{"Acme Corp", false},
		{"Stanford University", false},
		{"IBM", false},
		{"Built dashboards for sales", false},
		{"Python, Go", false},
		{"Spring 2020", false},
		{"I love hiking.", false},
	}
	for _, tt := range tests {
		if got := isTitleCaseHeader(tt.line); got != tt.want {
			t.Errorf("isTitleCaseHeader(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestExtractExperience_SectionBoundaries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []ExperienceEntry
	}{
		{
			name: "title case headers end the section",
			text: "Experience\nData Analyst at Foo, 2018 - 2020\n- Built dashboards\n\n" +
				"Volunteer Work\nRed Cross Volunteer, 2015 - 2016\n- Sorted donations\n\nInterests\nChess, hiking",
			want: []ExperienceEntry{{
				Title: "Data Analyst", Company: "Foo", StartDate: "2018", EndDate: "2020",
				Bullets: []string{"Built dashboards"},
			}},
		},
		{
			name: "all caps company keeps its dates and bullets",
			text: "Experience\nData Analyst\nGOOGLE\n2018 - 2020\n- Built dashboards",
			want: []ExperienceEntry{{
				Title: "Data Analyst", Company: "GOOGLE", StartDate: "2018", EndDate: "2020",
				Bullets: []string{"Built dashboards"},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractExperience(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractExperience() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractProfile_StopsAtBlankLine(t *testing.T) {
	text := "Jane Doe\n\nSummary\nBackend engineer with 6 years of Go.\n\nI love hiking.\n"
	if got, want := ExtractProfile(text), "Backend engineer with 6 years of Go."; got != want {
		t.Errorf("ExtractProfile() = %q, want %q", got, want)
	}
}
