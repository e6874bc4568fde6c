package scaffold

import "github.com/ruthina1/Dev-Genie/internal/project"

// Plan is the state threaded through the contributions. Each contribution
// receives its own copy, so earlier plans are never modified.
type Plan struct {
	Mode     project.Mode
	Layout   Layout
	Manifest Manifest
	Entries  []Entry
	Readme   []Section
	// Compose requests docker-compose.yml plus a Dockerfile per entry.
	Compose bool
	// ConfigModule requests <source root>/config/index.js.
	ConfigModule bool
	Files        *FileTree
}

func newPlan(mode project.Mode, layout Layout) Plan {
	return Plan{Mode: mode, Layout: layout, Files: NewFileTree()}
}

func (p Plan) clone() Plan {
	c := p
	c.Manifest = p.Manifest.clone()
	c.Entries = make([]Entry, len(p.Entries))
	for i, e := range p.Entries {
		c.Entries[i] = e.clone()
	}
	c.Readme = append([]Section(nil), p.Readme...)
	c.Files = p.Files.Clone()
	return c
}

// Primary returns the entry that owns shared modules (auth, tests, features).
func (p Plan) Primary() Entry {
	return p.Entries[0]
}

// addEntry registers e and reserves its path so the file keeps its place in
// the tree even though its content is rendered last.
func (p Plan) addEntry(e Entry) Plan {
	p.Entries = append(p.Entries, e)
	p.Files.Set(e.Path, "")
	return p
}

// withPrimary applies fn to the primary entry.
func (p Plan) withPrimary(fn func(*Entry)) Plan {
	fn(&p.Entries[0])
	return p
}

// withEntries applies fn to every entry.
func (p Plan) withEntries(fn func(*Entry)) Plan {
	for i := range p.Entries {
		fn(&p.Entries[i])
	}
	return p
}
