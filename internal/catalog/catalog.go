// Package catalog holds the read-only reference data offered to users:
// architecture patterns, methodologies, best-practice add-ons, frameworks and
// the template gallery.
package catalog

import "strings"

// Descriptor identifies one selectable catalog entry.
type Descriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description"`
}

var architectures = []Descriptor{
	{ID: "mvc", Name: "MVC Architecture", Icon: "🏗️", Description: "Model-View-Controller pattern for organized code structure"},
	{ID: "clean", Name: "Clean Architecture", Icon: "🎯", Description: "Layered architecture with dependency inversion"},
	{ID: "microservices", Name: "Microservices", Icon: "🔗", Description: "Distributed services architecture"},
	{ID: "monolith", Name: "Monolith", Icon: "🧱", Description: "Single unified application"},
	{ID: "serverless", Name: "Serverless", Icon: "☁️", Description: "Cloud-native serverless functions"},
	{ID: "hexagonal", Name: "Hexagonal", Icon: "⬡", Description: "Ports and adapters pattern"},
	{ID: "layered", Name: "Layered", Icon: "📚", Description: "Traditional N-tier architecture"},
}

var methodologies = []Descriptor{
	{ID: "tdd", Name: "Test-Driven Development", Icon: "✅", Description: "Write tests before implementation"},
	{ID: "ddd", Name: "Domain-Driven Design", Icon: "🎨", Description: "Model complex business domains"},
	{ID: "solid", Name: "SOLID Principles", Icon: "💎", Description: "Five design principles for maintainability"},
	{ID: "agile", Name: "Agile Development", Icon: "🔄", Description: "Iterative and incremental approach"},
}

var bestPractices = []Descriptor{
	{ID: "eslint", Name: "ESLint", Icon: "🔍", Description: "Code quality and consistency"},
	{ID: "prettier", Name: "Prettier", Icon: "✨", Description: "Automatic code formatting"},
	{ID: "husky", Name: "Git Hooks", Icon: "🎣", Description: "Pre-commit quality checks"},
	{ID: "documentation", Name: "Documentation", Icon: "📖", Description: "Comprehensive code docs"},
}

var frameworks = map[string][]string{
	"javascript": {"express", "react", "vue"},
	"python":     {"flask", "django", "fastapi"},
	"java":       {"spring"},
}

// Architectures returns a copy of the architecture catalog.
func Architectures() []Descriptor { return clone(architectures) }

// Methodologies returns a copy of the methodology catalog.
func Methodologies() []Descriptor { return clone(methodologies) }

// BestPractices returns a copy of the best-practice catalog.
func BestPractices() []Descriptor { return clone(bestPractices) }

// Architecture looks up an architecture by id.
func Architecture(id string) (Descriptor, bool) { return find(architectures, id) }

// Methodology looks up a methodology by id.
func Methodology(id string) (Descriptor, bool) { return find(methodologies, id) }

// BestPractice looks up a best practice by id.
func BestPractice(id string) (Descriptor, bool) { return find(bestPractices, id) }

// Languages returns the languages with a framework list, sorted.
func Languages() []string {
	return []string{"java", "javascript", "python"}
}

// Frameworks returns the frameworks offered for language, or every framework
// when language is empty. Unknown languages yield an empty list.
func Frameworks(language string) []string {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		var all []string
		for _, lang := range Languages() {
			all = append(all, frameworks[lang]...)
		}
		return all
	}
	return append([]string{}, frameworks[language]...)
}

// UnknownIDs returns the ids in ids that are not present in the catalog list.
func UnknownIDs(list []Descriptor, ids []string) []string {
	var unknown []string
	for _, id := range ids {
		if _, ok := find(list, id); !ok {
			unknown = append(unknown, id)
		}
	}
	return unknown
}

func find(list []Descriptor, id string) (Descriptor, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, d := range list {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

func clone(list []Descriptor) []Descriptor {
	return append([]Descriptor(nil), list...)
}
