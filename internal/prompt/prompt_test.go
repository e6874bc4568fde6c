package prompt

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruthina1/Dev-Genie/internal/project"
)

func TestNormalize_NodeMongoAuth(t *testing.T) {
	res := Normalize("Create a project called myApp with Node and MongoDB and auth", nil, project.ModeBasic)

	require.Equal(t, "myApp", res.Config.ProjectName)
	require.Equal(t, "Node.js + Express", res.Framework)
	require.Equal(t, "Node.js + Express", res.Config.Framework)
	require.Contains(t, res.Tags, "REST API")
	require.Contains(t, res.Tags, "MongoDB Database")
	require.Contains(t, res.Tags, "Authentication")
	require.True(t, res.Config.Has(project.FlagAuthentication))
	require.True(t, res.Config.Has(project.FlagDatabase))
	require.False(t, res.Config.Has(project.FlagTesting))
	require.Equal(t, "REST API, Express Server, MongoDB Database, Authentication", res.Config.Features)
	require.Equal(t, "Create a project called myApp with Node and MongoDB and auth", res.Config.Description)
}

func TestNormalize_Names(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		mode   project.Mode
		want   string
	}{
		{"called", "an api called shop-api", project.ModeBasic, "shop-api"},
		{"named quoted", `a tool NAMED "inventory", with auth`, project.ModeBasic, "inventory"},
		{"single quoted", "something named 'todo' please", project.ModeAdvanced, "todo"},
		{"stops at comma", "service called billing, using node", project.ModeBasic, "billing"},
		{"default basic", "a REST service", project.ModeBasic, DefaultBasicName},
		{"default advanced", "a REST service", project.ModeAdvanced, DefaultAdvancedName},
		{"empty", "", project.ModeBasic, DefaultBasicName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.prompt, nil, tt.mode).Config.ProjectName; got != tt.want {
				t.Errorf("ProjectName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_EmptyPrompt(t *testing.T) {
	res := Normalize("", nil, project.ModeBasic)
	require.Empty(t, res.Config.Features)
	require.Empty(t, res.Config.Description)
	require.Empty(t, res.Tags)
	require.Empty(t, res.Framework)
}

func TestNormalize_FrameworkLastMatchWins(t *testing.T) {
	res := Normalize("react frontend with a django backend", nil, project.ModeBasic)
	require.Equal(t, "Django", res.Framework)
	require.Equal(t, "python", res.Language)
	require.Equal(t, []string{"React Components", "Webpack", "Django REST", "Admin Panel"}, res.Tags)
}

func TestNormalize_Keywords(t *testing.T) {
	tests := []struct {
		prompt   string
		wantTags []string
		wantFlag project.Flag
		noFlag   project.Flag
	}{
		{"postgresql store", []string{"PostgreSQL Database"}, "", project.FlagDatabase},
		{"node api on postgres", []string{"REST API", "Express Server", "PostgreSQL Database"}, "", project.FlagDatabase},
		{"mongo store", []string{"MongoDB Database"}, project.FlagDatabase, ""},
		{"needs a database", nil, project.FlagDatabase, ""},
		{"with unit tests", []string{"Testing"}, project.FlagTesting, ""},
		{"ship it in Docker", []string{"Docker"}, project.FlagDocker, ""},
		{"OAuth login", []string{"Authentication"}, project.FlagAuthentication, ""},
	}
	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			res := Normalize(tt.prompt, nil, project.ModeBasic)
			if !reflect.DeepEqual(res.Tags, tt.wantTags) {
				t.Errorf("Tags = %v, want %v", res.Tags, tt.wantTags)
			}
			if tt.wantFlag != "" && !res.Config.Has(tt.wantFlag) {
				t.Errorf("flag %s not set: %v", tt.wantFlag, res.Config.Flags)
			}
			if tt.noFlag != "" && res.Config.Has(tt.noFlag) {
				t.Errorf("flag %s set: %v", tt.noFlag, res.Config.Flags)
			}
		})
	}
}

func TestNormalize_FormPrecedence(t *testing.T) {
	form := &project.Config{
		Framework:     "Express",
		Language:      "javascript",
		Architecture:  "clean",
		Features:      "Payments, rest api",
		Methodologies: []string{"ddd"},
		Flags: map[project.Flag]bool{
			project.FlagAuthentication: false,
			project.FlagDocker:         true,
		},
	}

	res := Normalize("an app called shop built with django and auth", form, project.ModeAdvanced)
	cfg := res.Config

	require.Equal(t, "shop", cfg.ProjectName, "prompt name backstops empty form name")
	require.Equal(t, "Express", cfg.Framework)
	require.Equal(t, "javascript", cfg.Language)
	require.Equal(t, "clean", cfg.Architecture)
	require.Equal(t, []string{"ddd"}, cfg.Methodologies)
	require.False(t, cfg.Has(project.FlagAuthentication), "explicit form flag wins")
	require.True(t, cfg.Has(project.FlagDocker))
	require.Equal(t, "Payments, rest api, Django REST, Admin Panel, Authentication", cfg.Features)
	require.Equal(t, "Django", res.Framework, "inferred framework is still reported")
}

func TestNormalize_FormNameOverridesPrompt(t *testing.T) {
	res := Normalize("called fromprompt", &project.Config{ProjectName: "From Form"}, project.ModeBasic)
	require.Equal(t, "From Form", res.Config.ProjectName)
}

func TestNormalize_Pure(t *testing.T) {
	form := &project.Config{Flags: map[project.Flag]bool{project.FlagDocker: true}}
	a := Normalize("node api called x with tests", form, project.ModeBasic)
	b := Normalize("node api called x with tests", form, project.ModeBasic)
	require.Equal(t, a, b)
	require.Len(t, form.Flags, 1, "form must not be mutated")
}
