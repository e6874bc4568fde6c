package catalog

import "strings"

// ArchitectureKind is the closed set of project layouts the builder knows how
// to emit. Every architecture id, known or not, maps to exactly one kind.
type ArchitectureKind int

const (
	KindDefault ArchitectureKind = iota
	KindMVC
	KindClean
	KindMicroservices
)

// AllKinds lists every kind. Callers switching over kinds are tested against it.
func AllKinds() []ArchitectureKind {
	return []ArchitectureKind{KindDefault, KindMVC, KindClean, KindMicroservices}
}

// KindOf maps an architecture id to its layout kind. Monolith, serverless,
// hexagonal, layered, empty and unrecognized ids share the default layout.
func KindOf(id string) ArchitectureKind {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "mvc":
		return KindMVC
	case "clean":
		return KindClean
	case "microservices":
		return KindMicroservices
	default:
		return KindDefault
	}
}

func (k ArchitectureKind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindMVC:
		return "mvc"
	case KindClean:
		return "clean"
	case KindMicroservices:
		return "microservices"
	default:
		return "unknown"
	}
}
