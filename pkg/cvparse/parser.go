package cvparse

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/pkg/apperror"
)

// skillKeywords maps lowercase keywords to their display form. The scan
// order is fixed so the same document always yields the same skill list.
var skillKeywords = []struct {
	keyword string
	display string
}{
	{"python", "Python"},
	{"javascript", "JavaScript"},
	{"typescript", "TypeScript"},
	{"java", "Java"},
	{"golang", "Go"},
	{"c++", "C++"},
	{"c#", "C#"},
	{"html", "HTML"},
	{"css", "CSS"},
	{"react", "React"},
	{"angular", "Angular"},
	{"vue", "Vue"},
	{"node.js", "Node.js"},
	{"express", "Express"},
	{"django", "Django"},
	{"flask", "Flask"},
	{"spring", "Spring"},
	{"sql", "SQL"},
	{"mysql", "MySQL"},
	{"postgresql", "PostgreSQL"},
	{"mongodb", "MongoDB"},
	{"redis", "Redis"},
	{"docker", "Docker"},
	{"kubernetes", "Kubernetes"},
	{"aws", "AWS"},
	{"azure", "Azure"},
	{"gcp", "GCP"},
	{"git", "Git"},
	{"linux", "Linux"},
	{"machine learning", "Machine Learning"},
	{"data science", "Data Science"},
	{"artificial intelligence", "Artificial Intelligence"},
	{"deep learning", "Deep Learning"},
	{"tensorflow", "TensorFlow"},
	{"pytorch", "PyTorch"},
	{"scikit-learn", "Scikit-Learn"},
	{"pandas", "Pandas"},
	{"numpy", "NumPy"},
	{"project management", "Project Management"},
	{"agile", "Agile"},
	{"scrum", "Scrum"},
	{"leadership", "Leadership"},
	{"communication", "Communication"},
	{"teamwork", "Teamwork"},
	{"problem solving", "Problem Solving"},
	{"time management", "Time Management"},
}

var educationKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "degree", "university", "college",
	"school", "institute", "academy", "certification", "certificate", "diploma",
	"b.s.", "b.a.", "m.s.", "m.a.", "mba", "ph.d.",
}

var experienceKeywords = []string{
	"experience", "work", "employment", "position", "role", "job",
	"company", "corporation", "inc", "ltd", "llc", "manager", "developer",
	"engineer", "analyst", "consultant", "specialist", "coordinator",
	"director", "senior", "junior", "lead",
}

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
)

const (
	maxSkills            = 20
	maxEducationEntries  = 5
	maxExperienceEntries = 10
)

// Parser extracts a candidate profile from a plain-text resume.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse builds a CandidateProfile from the uploaded document. Only
// plain-text payloads are accepted (.txt and .md uploads in practice).
func (p *Parser) Parse(filename string, content []byte) (*entity.CandidateProfile, error) {
	lower := strings.ToLower(filename)
	if !strings.HasSuffix(lower, ".txt") && !strings.HasSuffix(lower, ".md") {
		return nil, apperror.Validation("unsupported file type: " + filename)
	}
	if !utf8.Valid(content) {
		return nil, apperror.Validation("file is not valid UTF-8 text")
	}

	text := strings.TrimSpace(string(content))
	if text == "" {
		return nil, apperror.Validation("no text could be extracted from the file")
	}

	return &entity.CandidateProfile{
		Filename:   filename,
		Content:    text,
		Skills:     extractSkills(text),
		Education:  extractEducation(text),
		Experience: extractExperience(text),
		Contact:    extractContactInfo(text),
		ParsedAt:   time.Now(),
	}, nil
}

func extractSkills(text string) []string {
	textLower := strings.ToLower(text)
	found := make([]string, 0, maxSkills)
	for _, s := range skillKeywords {
		if strings.Contains(textLower, s.keyword) {
			found = append(found, s.display)
			if len(found) == maxSkills {
				break
			}
		}
	}
	return found
}

func extractEducation(text string) []string {
	return matchingLines(text, educationKeywords, 10, maxEducationEntries)
}

func extractExperience(text string) []string {
	return matchingLines(text, experienceKeywords, 15, maxExperienceEntries)
}

// matchingLines collects lines containing any keyword, skipping lines
// shorter than minLen.
func matchingLines(text string, keywords []string, minLen, limit int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= minLen {
			continue
		}
		lineLower := strings.ToLower(trimmed)
		for _, kw := range keywords {
			if strings.Contains(lineLower, kw) {
				out = append(out, trimmed)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

func extractContactInfo(text string) map[string]string {
	contact := make(map[string]string)
	if email := emailPattern.FindString(text); email != "" {
		contact["email"] = email
	}
	if phone := phonePattern.FindString(text); phone != "" {
		contact["phone"] = strings.TrimSpace(phone)
	}
	if linkedin := linkedinPattern.FindString(text); linkedin != "" {
		contact["linkedin"] = linkedin
	}
	return contact
}
