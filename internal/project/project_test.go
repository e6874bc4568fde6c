package project

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ruthina1/Dev-Genie/internal/errors"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Cool App", "my-cool-app"},
		{"My   Cool \t App", "my-cool-app"},
		{"  padded  ", "padded"},
		{"myApp", "myapp"},
		{"already-slugged", "already-slugged"},
		{"my/app", "my-app"},
		{`a\\b / c`, "a-b-c"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slug(tt.in); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestArchiveName(t *testing.T) {
	tests := map[string]string{
		"My Cool App":  "my-cool-app.zip",
		"my/app":       "my-app.zip",
		`..\evil/name`: "..-evil-name.zip",
	}
	for in, want := range tests {
		got := ArchiveName(in)
		if got != want {
			t.Errorf("ArchiveName(%q) = %q, want %q", in, got, want)
		}
		if strings.ContainsAny(got, `/\`) {
			t.Errorf("ArchiveName(%q) = %q contains a path separator", in, got)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeBasic, false},
		{"basic", ModeBasic, false},
		{"Advanced", ModeAdvanced, false},
		{"expert", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{ProjectName: "app", Description: "desc"}, false},
		{"missing name", Config{Description: "desc"}, true},
		{"blank name", Config{ProjectName: "   ", Description: "desc"}, true},
		{"missing description", Config{ProjectName: "app"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("Validate() error code = %v, want INVALID_REQUEST", err)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	in := Config{
		ProjectName:   "  Shop API ",
		Description:   " store ",
		Architecture:  " MVC ",
		Methodologies: []string{"tdd", "DDD", "tdd", ""},
		BestPractices: []string{"git-hooks", "eslint", "husky"},
		Flags: map[Flag]bool{
			"Authentication": true,
			FlagDatabase:     false,
			"websockets":     true,
		},
		AdditionalFeatures: []Feature{{Name: " "}, {Name: " Login ", Description: " sign in "}},
	}

	got := in.Canonical()

	if got.ProjectName != "Shop API" || got.Description != "store" || got.Architecture != "mvc" {
		t.Errorf("strings not trimmed: %+v", got)
	}
	if !reflect.DeepEqual(got.Methodologies, []string{"ddd", "tdd"}) {
		t.Errorf("Methodologies = %v", got.Methodologies)
	}
	if !reflect.DeepEqual(got.BestPractices, []string{"eslint", "husky"}) {
		t.Errorf("BestPractices = %v", got.BestPractices)
	}
	if !reflect.DeepEqual(got.Flags, map[Flag]bool{FlagAuthentication: true}) {
		t.Errorf("Flags = %v", got.Flags)
	}
	if !reflect.DeepEqual(got.AdditionalFeatures, []Feature{{Name: "Login", Description: "sign in"}}) {
		t.Errorf("AdditionalFeatures = %v", got.AdditionalFeatures)
	}
	if in.Flags["websockets"] != true {
		t.Error("Canonical() mutated the receiver")
	}
}

func TestCanonical_OrderInsensitive(t *testing.T) {
	a := Config{Methodologies: []string{"solid", "tdd"}}.Canonical()
	b := Config{Methodologies: []string{"tdd", "solid", "tdd"}}.Canonical()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Canonical() differs: %+v vs %+v", a, b)
	}
}

func TestKeywords(t *testing.T) {
	cfg := Config{Features: "REST API, ,Express Server,  Testing "}
	want := []string{"REST API", "Express Server", "Testing"}
	if got := cfg.Keywords(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords() = %v, want %v", got, want)
	}
	if got := (Config{}).Keywords(); got != nil {
		t.Errorf("Keywords() of empty summary = %v, want nil", got)
	}
}

func TestEnabledFlags_DisplayOrder(t *testing.T) {
	cfg := Config{Flags: map[Flag]bool{FlagDocker: true, FlagAuthentication: true, FlagAPI: false}}
	want := []Flag{FlagAuthentication, FlagDocker}
	if got := cfg.EnabledFlags(); !reflect.DeepEqual(got, want) {
		t.Errorf("EnabledFlags() = %v, want %v", got, want)
	}
}
