package scaffold

import (
	"strings"

	"github.com/ruthina1/Dev-Genie/internal/project"
)

// Dependency versions written into package.json.
var versions = map[string]string{
	"express":      "^4.18.2",
	"dotenv":       "^16.3.1",
	"cors":         "^2.8.5",
	"helmet":       "^7.1.0",
	"mongoose":     "^8.0.0",
	"jsonwebtoken": "^9.0.2",
	"bcrypt":       "^5.1.1",
	"nodemon":      "^3.0.1",
	"jest":         "^29.7.0",
	"supertest":    "^6.3.3",
	"eslint":       "^8.54.0",
	"prettier":     "^3.1.0",
	"husky":        "^8.0.3",
}

const noTestsScript = `echo "No tests configured"`

// contribution is one rule of the scaffold table. apply receives a private
// copy of the plan and returns the updated plan.
type contribution struct {
	name  string
	apply func(Plan, project.Config) (Plan, error)
}

// contributions lists the rules in application order. Entry files, the
// manifest and the documents are rendered by the final step so every earlier
// rule can still wire into them.
func contributions(l Layout) []contribution {
	return []contribution{
		{"base", addBase},
		{"structure", structure(l)},
		{"database", addDatabase},
		{"authentication", addAuthentication},
		{"testing", addTesting},
		{"eslint", addESLint},
		{"prettier", addPrettier},
		{"husky", addHusky},
		{"documentation", addDocumentation},
		{"docker", addDocker},
		{"additional-features", addFeatures},
		{"render", render},
	}
}

func dep(ps Pairs, name string) Pairs {
	return ps.Set(name, versions[name])
}

func addBase(p Plan, cfg project.Config) (Plan, error) {
	// reserved; rendered last
	for _, f := range []string{"package.json", "README.md", ".gitignore", ".env.example"} {
		p.Files.Set(f, "")
	}

	m := Manifest{
		Name:        project.Slug(cfg.ProjectName),
		Version:     "1.0.0",
		Description: cfg.Description,
		Keywords:    cfg.Keywords(),
		License:     "MIT",
	}
	m.Scripts = m.Scripts.Set("start", "").Set("dev", "").Set("test", noTestsScript)
	for _, name := range []string{"express", "dotenv", "cors"} {
		m.Dependencies = dep(m.Dependencies, name)
	}
	if p.Mode == project.ModeAdvanced {
		m.Dependencies = dep(m.Dependencies, "helmet")
	}
	m.DevDependencies = dep(m.DevDependencies, "nodemon")
	p.Manifest = m
	return p, nil
}

func addDatabase(p Plan, cfg project.Config) (Plan, error) {
	if !cfg.Has(project.FlagDatabase) {
		return p, nil
	}
	p.Manifest.Dependencies = dep(p.Manifest.Dependencies, "mongoose")
	return p.withEntries(func(e *Entry) { e.Database = true }), nil
}

func addAuthentication(p Plan, cfg project.Config) (Plan, error) {
	if !cfg.Has(project.FlagAuthentication) {
		return p, nil
	}
	for _, name := range []string{"jsonwebtoken", "bcrypt", "mongoose"} {
		p.Manifest.Dependencies = dep(p.Manifest.Dependencies, name)
	}

	p.Files.Set(p.Layout.Src("routes", "auth.js"), authRouter)
	p.Files.Set(p.Layout.Src("controllers", "authController.js"), authController)
	p.Files.Set(p.Layout.Src("models", "User.js"), userSchemaModel)
	p.ConfigModule = true

	p.Readme = append(p.Readme, Section{
		Title: "Authentication",
		Body:  "- `POST /api/auth/register`\n- `POST /api/auth/login`\n- `GET /api/auth/profile` (Bearer token)",
	})
	return p.withPrimary(func(e *Entry) {
		e.Imports = append(e.Imports, Import{Name: "authRoutes", Path: "./routes/auth"})
		e.Mounts = append(e.Mounts, Mount{Prefix: "/api/auth", Router: "authRoutes"})
	}), nil
}

func addTesting(p Plan, cfg project.Config) (Plan, error) {
	tdd := cfg.HasMethodology("tdd")
	if !cfg.Has(project.FlagTesting) && !tdd {
		return p, nil
	}
	script := "jest"
	if tdd {
		script = "jest --coverage"
	}
	p.Manifest.Scripts = p.Manifest.Scripts.Set("test", script)
	p.Manifest.DevDependencies = dep(dep(p.Manifest.DevDependencies, "jest"), "supertest")
	p.Files.Set("tests/api.test.js", smokeTest(p.Primary()))
	p.Readme = append(p.Readme, commandSection("Testing", "npm test"))
	return p, nil
}

// codeGlob matches every JavaScript file under the top-level source directory.
func codeGlob(l Layout) string {
	top := strings.SplitN(l.SourceRoot, "/", 2)[0]
	return top + "/**/*.js"
}

func addESLint(p Plan, cfg project.Config) (Plan, error) {
	if !cfg.HasBestPractice("eslint") {
		return p, nil
	}
	content, err := renderJSON(eslintConfig)
	if err != nil {
		return p, err
	}
	p.Files.Set(".eslintrc.json", content)
	p.Manifest.Scripts = p.Manifest.Scripts.Set("lint", "eslint "+codeGlob(p.Layout))
	p.Manifest.DevDependencies = dep(p.Manifest.DevDependencies, "eslint")
	p.Readme = append(p.Readme, commandSection("Linting", "npm run lint"))
	return p, nil
}

func addPrettier(p Plan, cfg project.Config) (Plan, error) {
	if !cfg.HasBestPractice("prettier") {
		return p, nil
	}
	content, err := renderJSON(prettierConfig)
	if err != nil {
		return p, err
	}
	p.Files.Set(".prettierrc", content)
	p.Manifest.Scripts = p.Manifest.Scripts.Set("format", `prettier --write "`+codeGlob(p.Layout)+`"`)
	p.Manifest.DevDependencies = dep(p.Manifest.DevDependencies, "prettier")
	p.Readme = append(p.Readme, commandSection("Formatting", "npm run format"))
	return p, nil
}

func addHusky(p Plan, cfg project.Config) (Plan, error) {
	if !cfg.HasBestPractice("husky") {
		return p, nil
	}
	p.Files.Set(".husky/pre-commit", huskyPreCommit)
	p.Manifest.Scripts = p.Manifest.Scripts.Set("prepare", "husky install")
	p.Manifest.DevDependencies = dep(p.Manifest.DevDependencies, "husky")
	return p, nil
}

func addDocumentation(p Plan, cfg project.Config) (Plan, error) {
	if !cfg.HasBestPractice("documentation") {
		return p, nil
	}
	p.Files.Set("docs/ARCHITECTURE.md", renderArchitectureDoc(p, cfg))
	p.Readme = append(p.Readme, Section{Title: "Documentation", Body: "See [docs/ARCHITECTURE.md](docs/ARCHITECTURE.md)."})
	return p, nil
}

func addDocker(p Plan, cfg project.Config) (Plan, error) {
	if cfg.Has(project.FlagDocker) {
		p.Compose = true
	}
	if p.Compose {
		p.Readme = append(p.Readme, commandSection("Docker", "docker compose up --build"))
	}
	return p, nil
}

// addFeatures emits a stub per additional feature whose name mentions a
// known keyword. Other features produce nothing.
func addFeatures(p Plan, cfg project.Config) (Plan, error) {
	if p.Mode != project.ModeAdvanced {
		return p, nil
	}
	for _, f := range cfg.AdditionalFeatures {
		name := strings.ToLower(f.Name)
		if strings.Contains(name, "login") || strings.Contains(name, "auth") {
			p.Files.Set(p.Layout.Src("features", "auth", "login.js"), loginStub(f))
		}
		if strings.Contains(name, "dashboard") {
			p.Files.Set(p.Layout.Src("features", "dashboard", "index.js"), dashboardStub(f))
		}
	}
	return p, nil
}

func render(p Plan, cfg project.Config) (Plan, error) {
	primary := p.Primary()
	p.Manifest.Main = primary.Path
	p.Manifest.Scripts = p.Manifest.Scripts.
		Set("start", "node "+primary.Path).
		Set("dev", "nodemon "+primary.Path)

	if p.ConfigModule {
		p.Files.Set(p.Layout.Src("config", "index.js"), configModule(cfg))
	}

	single := len(p.Entries) == 1
	for _, e := range p.Entries {
		e.Helmet = p.Mode == project.ModeAdvanced
		p.Files.Set(e.Path, e.render())
	}

	if p.Compose {
		for _, e := range p.Entries {
			p.Files.Set(dockerfilePath(e, single), renderDockerfile(e))
		}
		compose, err := renderCompose(p.Entries, single, project.Slug(cfg.ProjectName), cfg.Has(project.FlagDatabase))
		if err != nil {
			return p, err
		}
		p.Files.Set("docker-compose.yml", compose)
		p.Files.Set(".dockerignore", dockerignore)
	}

	p.Files.Set("README.md", renderReadme(p, cfg))
	p.Files.Set(".gitignore", gitignore)
	p.Files.Set(".env.example", envExample(cfg))

	manifest, err := p.Manifest.Render()
	if err != nil {
		return p, err
	}
	p.Files.Set("package.json", manifest)
	return p, nil
}
