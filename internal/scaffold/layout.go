package scaffold

import (
	"fmt"
	"path"

	"github.com/ruthina1/Dev-Genie/internal/catalog"
	"github.com/ruthina1/Dev-Genie/internal/project"
)

// Layout decides where source files live and which structure is emitted.
type Layout struct {
	Kind catalog.ArchitectureKind
	// Basic is set for basic mode, which has no architecture concept.
	Basic bool
	// SourceRoot is the directory that holds the primary entry's modules.
	SourceRoot string
}

// Src joins elem onto the layout's source root.
func (l Layout) Src(elem ...string) string {
	return path.Join(append([]string{l.SourceRoot}, elem...)...)
}

// ResolveLayout picks the layout for a mode and architecture id.
func ResolveLayout(mode project.Mode, architecture string) Layout {
	if mode != project.ModeAdvanced {
		return Layout{Kind: catalog.KindDefault, Basic: true, SourceRoot: "src"}
	}
	kind := catalog.KindOf(architecture)
	l := Layout{Kind: kind, SourceRoot: "src"}
	if kind == catalog.KindMicroservices {
		l.SourceRoot = "services/api-gateway"
	}
	return l
}

// structure returns the contribution that lays down the baseline files for
// the layout. Every kind must be handled.
func structure(l Layout) func(Plan, project.Config) (Plan, error) {
	if l.Basic {
		return basicStructure
	}
	switch l.Kind {
	case catalog.KindMVC:
		return mvcStructure
	case catalog.KindClean:
		return cleanStructure
	case catalog.KindMicroservices:
		return microservicesStructure
	case catalog.KindDefault:
		return defaultStructure
	default:
		panic(fmt.Sprintf("scaffold: no structure for architecture kind %v", l.Kind))
	}
}

func appEntry(root string) Entry {
	return Entry{
		Path:    "src/index.js",
		Service: "app",
		Label:   "Server",
		Port:    3000,
		Root:    root,
	}
}

func basicStructure(p Plan, cfg project.Config) (Plan, error) {
	e := appEntry(fmt.Sprintf("message: %s, status: 'running'", jsString("Welcome to "+cfg.ProjectName)))
	e.HealthRouter = true
	e.ErrorHandler = "./middleware/errorHandler"
	e.Imports = append(e.Imports, Import{Name: "routes", Path: "./routes"})
	e.Mounts = append(e.Mounts, Mount{Prefix: "/", Router: "routes"})
	p = p.addEntry(e)

	p.ConfigModule = true
	p.Files.Set("src/routes/index.js", healthRouter)
	p.Files.Set("src/middleware/errorHandler.js", errorHandlerModule)
	p.Files.Set("src/utils/logger.js", loggerModule)
	return p, nil
}

func mvcStructure(p Plan, cfg project.Config) (Plan, error) {
	p.Files.Set("src/controllers/homeController.js", mvcController)
	p.Files.Set("src/models/User.js", mvcModel)
	p.Files.Set("src/routes/index.js", mvcRouter)

	e := appEntry(fmt.Sprintf("message: %s", jsString("Welcome to "+cfg.ProjectName)))
	e.Imports = append(e.Imports, Import{Name: "routes", Path: "./routes"})
	e.Mounts = append(e.Mounts, Mount{Prefix: "/api", Router: "routes"})
	return p.addEntry(e), nil
}

func cleanStructure(p Plan, cfg project.Config) (Plan, error) {
	p.Files.Set("src/domain/entities/User.js", cleanEntity)
	p.Files.Set("src/usecases/CreateUser.js", cleanUseCase)
	p.Files.Set("src/adapters/UserRepository.js", cleanRepository)

	e := appEntry("message: 'Clean Architecture'")
	e.Imports = append(e.Imports,
		Import{Name: "CreateUser", Path: "./usecases/CreateUser"},
		Import{Name: "UserRepository", Path: "./adapters/UserRepository"},
	)
	e.Setup = append(e.Setup, "const createUser = new CreateUser(new UserRepository());")
	e.Routes = append(e.Routes, cleanRoute)
	return p.addEntry(e), nil
}

func microservicesStructure(p Plan, cfg project.Config) (Plan, error) {
	p = p.addEntry(Entry{
		Path:    "services/api-gateway/index.js",
		Service: "api-gateway",
		Label:   "API Gateway",
		Port:    3000,
		Root:    "service: 'API Gateway'",
	})
	p = p.addEntry(Entry{
		Path:    "services/user-service/index.js",
		Service: "user-service",
		Label:   "User Service",
		Port:    3001,
		Root:    "service: 'User Service'",
		Routes:  []string{usersRoute},
	})
	p.Manifest.Scripts = p.Manifest.Scripts.Set("start:users", "node services/user-service/index.js")
	p.Compose = true
	p.Readme = append(p.Readme, Section{
		Title: "Services",
		Body:  "| Service | Port | Command |\n|---|---|---|\n| api-gateway | 3000 | `npm start` |\n| user-service | 3001 | `npm run start:users` |",
	})
	return p, nil
}

func defaultStructure(p Plan, cfg project.Config) (Plan, error) {
	return p.addEntry(appEntry("message: 'Project Ready'")), nil
}
