package scaffold

import (
	"bytes"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"
)

const (
	nodeImage  = "node:20-alpine"
	mongoImage = "mongo:7"
	mongoPort  = 27017
)

// quoted forces a double-quoted YAML scalar, the way compose port mappings
// are conventionally written.
type quoted string

func (q quoted) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: string(q)}, nil
}

type composeBuild struct {
	Context    string `yaml:"context"`
	Dockerfile string `yaml:"dockerfile"`
}

type composeService struct {
	Build       *composeBuild `yaml:"build,omitempty"`
	Image       string        `yaml:"image,omitempty"`
	Ports       []quoted      `yaml:"ports,omitempty"`
	Environment []string      `yaml:"environment,omitempty"`
	DependsOn   []string      `yaml:"depends_on,omitempty"`
	Volumes     []string      `yaml:"volumes,omitempty"`
}

type composeFile struct {
	Version  string                    `yaml:"version"`
	Services map[string]composeService `yaml:"services"`
	Volumes  map[string]struct{}       `yaml:"volumes,omitempty"`
}

// dockerfilePath returns where the Dockerfile for e lives: next to a service
// entry, or at the repository root for a single application.
func dockerfilePath(e Entry, single bool) string {
	if single {
		return "Dockerfile"
	}
	return path.Join(e.Dir(), "Dockerfile")
}

func renderDockerfile(e Entry) string {
	return fmt.Sprintf(`FROM %s

WORKDIR /app

COPY package*.json ./
RUN npm install --omit=dev

COPY . .

ENV PORT=%d
EXPOSE %d

CMD ["node", %q]
`, nodeImage, e.Port, e.Port, e.Path)
}

const dockerignore = `node_modules/
npm-debug.log
.env
coverage/
.git/
`

// renderCompose writes one service per entry, plus a mongo service that every
// entry depends on when withDatabase is set.
func renderCompose(entries []Entry, single bool, slug string, withDatabase bool) (string, error) {
	doc := composeFile{
		Version:  "3.8",
		Services: make(map[string]composeService, len(entries)+1),
	}

	for _, e := range entries {
		svc := composeService{
			Build: &composeBuild{Context: ".", Dockerfile: dockerfilePath(e, single)},
			Ports: []quoted{quoted(fmt.Sprintf("%d:%d", e.Port, e.Port))},
			Environment: []string{
				fmt.Sprintf("PORT=%d", e.Port),
				"NODE_ENV=production",
			},
		}
		if withDatabase {
			svc.Environment = append(svc.Environment, fmt.Sprintf("DATABASE_URL=mongodb://mongo:%d/%s", mongoPort, slug))
			svc.DependsOn = []string{"mongo"}
		}
		doc.Services[e.Service] = svc
	}

	if withDatabase {
		doc.Services["mongo"] = composeService{
			Image:   mongoImage,
			Ports:   []quoted{quoted(fmt.Sprintf("%d:%d", mongoPort, mongoPort))},
			Volumes: []string{"mongo-data:/data/db"},
		}
		doc.Volumes = map[string]struct{}{"mongo-data": {}}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encode docker-compose.yml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode docker-compose.yml: %w", err)
	}
	return buf.String(), nil
}
