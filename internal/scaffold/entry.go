package scaffold

import (
	"fmt"
	"strings"
)

// Import is a top-level `const Name = require('Path');` line.
type Import struct {
	Name string
	Path string
}

// Mount attaches an imported router under a URL prefix.
type Mount struct {
	Prefix string
	Router string
}

// Entry models an Express server entry file. Contributions add imports,
// routes and mounts; the file itself is rendered after every contribution ran.
type Entry struct {
	Path    string
	Service string
	Label   string
	Port    int
	// Root is the object literal body returned by GET /.
	Root string

	Helmet   bool
	Database bool
	// HealthRouter marks entries whose /health route comes from a mounted router.
	HealthRouter bool
	// ErrorHandler is the require path of an error middleware module; empty
	// renders an inline handler.
	ErrorHandler string

	Imports []Import
	Setup   []string
	Routes  []string
	Mounts  []Mount
}

func (e Entry) clone() Entry {
	c := e
	c.Imports = append([]Import(nil), e.Imports...)
	c.Setup = append([]string(nil), e.Setup...)
	c.Routes = append([]string(nil), e.Routes...)
	c.Mounts = append([]Mount(nil), e.Mounts...)
	return c
}

// Dir returns the directory holding the entry file, "" for the repo root.
func (e Entry) Dir() string {
	if i := strings.LastIndex(e.Path, "/"); i >= 0 {
		return e.Path[:i]
	}
	return ""
}

// RequirePath returns the module path used to require the entry from the
// tests/ directory.
func (e Entry) RequirePath() string {
	return "../" + strings.TrimSuffix(e.Path, ".js")
}

func (e Entry) render() string {
	var b strings.Builder

	b.WriteString("const express = require('express');\n")
	b.WriteString("const cors = require('cors');\n")
	if e.Helmet {
		b.WriteString("const helmet = require('helmet');\n")
	}
	if e.Database {
		b.WriteString("const mongoose = require('mongoose');\n")
	}
	b.WriteString("require('dotenv').config();\n")
	if e.ErrorHandler != "" {
		fmt.Fprintf(&b, "const errorHandler = require(%s);\n", jsString(e.ErrorHandler))
	}
	for _, imp := range e.Imports {
		fmt.Fprintf(&b, "const %s = require(%s);\n", imp.Name, jsString(imp.Path))
	}

	b.WriteString("\nconst app = express();\n")
	fmt.Fprintf(&b, "const PORT = process.env.PORT || %d;\n", e.Port)
	for _, s := range e.Setup {
		b.WriteString(s + "\n")
	}

	b.WriteString("\n")
	if e.Helmet {
		b.WriteString("app.use(helmet());\n")
	}
	b.WriteString("app.use(cors());\n")
	b.WriteString("app.use(express.json());\n")
	b.WriteString("app.use(express.urlencoded({ extended: true }));\n")

	if e.Database {
		b.WriteString(`
if (process.env.DATABASE_URL) {
  mongoose.connect(process.env.DATABASE_URL)
    .then(() => console.log('Database connected'))
    .catch((err) => console.error('Database connection error:', err));
}
`)
	}

	fmt.Fprintf(&b, `
app.get('/', (req, res) => {
  res.json({ %s });
});
`, e.Root)

	if !e.HealthRouter {
		b.WriteString(`
app.get('/health', (req, res) => {
  res.json({ status: 'healthy' });
});
`)
	}

	for _, r := range e.Routes {
		b.WriteString("\n" + r)
	}

	if len(e.Mounts) > 0 {
		b.WriteString("\n")
		for _, m := range e.Mounts {
			fmt.Fprintf(&b, "app.use(%s, %s);\n", jsString(m.Prefix), m.Router)
		}
	}

	b.WriteString("\n")
	if e.ErrorHandler != "" {
		b.WriteString("app.use(errorHandler);\n")
	} else {
		b.WriteString(`app.use((err, req, res, next) => {
  console.error(err.stack);
  res.status(500).json({ error: 'Something went wrong!' });
});
`)
	}

	fmt.Fprintf(&b, `
if (require.main === module) {
  app.listen(PORT, () => {
    console.log(%s);
  });
}

module.exports = app;
`, "`"+e.Label+" listening on port ${PORT}`")

	return b.String()
}

// jsString renders s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, "`", "\\`")
	return "'" + r.Replace(s) + "'"
}
