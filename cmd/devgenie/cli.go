package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/generator"
	"github.com/ruthina1/Dev-Genie/internal/logging"
	"github.com/ruthina1/Dev-Genie/internal/ops"
	"github.com/ruthina1/Dev-Genie/internal/project"
	"github.com/ruthina1/Dev-Genie/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env ops.Env) *cli.App {
	app := &cli.App{
		Name:    "devgenie",
		Usage:   "Generate starter projects from a prompt or a form",
		Version: Version,
		Commands: []*cli.Command{
			generateCmd(env),
			previewCmd(env),
			parseCmd(env),
			catalogCmd(),
			templatesCmd(env),
			healthCmd(env),
			historyCmd(env),
			purgeCmd(env),
			serveCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// requestFlags describe the project; shared by generate and preview.
func requestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "basic", Usage: "Generation mode: basic|advanced"},
		&cli.StringFlag{Name: "prompt", Aliases: []string{"p"}, Usage: "Free-text description (use - to read stdin)"},
		&cli.StringFlag{Name: "template", Aliases: []string{"t"}, Usage: "Start from a gallery template id"},
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Project name"},
		&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Project description"},
		&cli.StringFlag{Name: "features", Usage: "Comma-separated feature summary"},
		&cli.StringFlag{Name: "language", Usage: "Target language"},
		&cli.StringFlag{Name: "framework", Usage: "Target framework"},
		&cli.StringFlag{Name: "architecture", Aliases: []string{"a"}, Usage: "Architecture id (see 'devgenie catalog')"},
		&cli.StringSliceFlag{Name: "methodology", Usage: "Methodology id (repeatable)"},
		&cli.StringSliceFlag{Name: "practice", Usage: "Best-practice id (repeatable)"},
		&cli.StringSliceFlag{Name: "with", Aliases: []string{"w"}, Usage: "Enable an option: authentication|database|testing|docker|api|frontend (repeatable)"},
		&cli.StringSliceFlag{Name: "feature", Usage: `Additional feature as "Name: description" (repeatable)`},
		&cli.BoolFlag{Name: "local", Usage: "Skip the remote API"},
	}
}

// requestFromFlags maps request flags onto an operation request.
func requestFromFlags(c *cli.Context) (ops.Request, error) {
	prompt := c.String("prompt")
	if prompt == "-" {
		text, err := readStdin()
		if err != nil {
			return ops.Request{}, errors.NewInternal(err)
		}
		prompt = text
	}

	form := project.Config{
		ProjectName:   c.String("name"),
		Description:   c.String("description"),
		Features:      c.String("features"),
		Language:      c.String("language"),
		Framework:     c.String("framework"),
		Architecture:  c.String("architecture"),
		Methodologies: parseList(c.StringSlice("methodology")),
		BestPractices: parseList(c.StringSlice("practice")),
	}

	if with := parseList(c.StringSlice("with")); len(with) > 0 {
		form.Flags = make(map[project.Flag]bool, len(with))
		for _, name := range with {
			f, ok := project.ParseFlag(name)
			if !ok {
				return ops.Request{}, errors.NewInvalidRequest(fmt.Sprintf("unknown option %q", name))
			}
			form.Flags[f] = true
		}
	}

	for _, raw := range c.StringSlice("feature") {
		name, desc, _ := strings.Cut(raw, ":")
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		form.AdditionalFeatures = append(form.AdditionalFeatures, project.Feature{
			Name:        name,
			Description: strings.TrimSpace(desc),
		})
	}

	return ops.Request{
		Mode:       c.String("mode"),
		Prompt:     prompt,
		Form:       form,
		TemplateID: c.String("template"),
		Local:      c.Bool("local"),
	}, nil
}

// generateCmd creates the generate command.
func generateCmd(env ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a project archive",
		Flags: append(requestFlags(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output .zip file or directory (default: output_dir config or current directory)"},
			&cli.StringFlag{Name: "unpack", Aliases: []string{"u"}, Usage: "Also extract the project into this directory"},
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Overwrite existing files"},
			&cli.BoolFlag{Name: "publish", Usage: "Upload the archive to the configured object store"},
		),
		Action: func(c *cli.Context) error {
			req, err := requestFromFlags(c)
			if err != nil {
				return outputError(err)
			}

			out := c.String("out")
			if out == "" && env.Config != nil {
				out = env.Config.OutputDir
			}
			if out == "" {
				out = "."
			}

			output, err := ops.Generate(c.Context, env, ops.GenerateInput{
				Request:    req,
				OutputPath: out,
				UnpackDir:  c.String("unpack"),
				Force:      c.Bool("force"),
				Publish:    c.Bool("publish"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// previewCmd creates the preview command.
func previewCmd(env ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "List the files a project would contain, or print one of them",
		ArgsUsage: "[path]",
		Flags:     requestFlags(),
		Action: func(c *cli.Context) error {
			req, err := requestFromFlags(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Preview(c.Context, env, ops.PreviewInput{
				Request: req,
				Path:    c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}

			// A single file is printed raw so it can be piped.
			if output.Content != nil {
				_, err := io.WriteString(os.Stdout, *output.Content)
				return err
			}
			return outputJSON(output)
		},
	}
}

// parseCmd creates the parse command.
func parseCmd(env ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Turn a free-text description into a project configuration",
		ArgsUsage: "<prompt...>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "basic", Usage: "Generation mode: basic|advanced"},
			&cli.BoolFlag{Name: "local", Usage: "Skip the remote API"},
		},
		Action: func(c *cli.Context) error {
			prompt := strings.Join(c.Args().Slice(), " ")
			if prompt == "-" {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				prompt = text
			}

			output, err := ops.ParsePrompt(c.Context, env, ops.ParseInput{
				Prompt: prompt,
				Mode:   c.String("mode"),
				Local:  c.Bool("local"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// catalogCmd creates the catalog command.
func catalogCmd() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "List architectures, methodologies, best practices and frameworks",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "Only list frameworks for this language"},
		},
		Action: func(c *cli.Context) error {
			return outputJSON(ops.Catalog(ops.CatalogInput{Language: c.String("language")}))
		},
	}
}

// templatesCmd creates the templates command.
func templatesCmd(env ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "templates",
		Usage:     "Search the template gallery",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "filter", Value: "all", Usage: "all|fullstack|api or a language name"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Templates(env, ops.TemplatesInput{
				Query:  strings.Join(c.Args().Slice(), " "),
				Filter: c.String("filter"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// healthCmd creates the health command.
func healthCmd(env ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check whether the remote API is reachable",
		Action: func(c *cli.Context) error {
			return outputJSON(ops.Health(c.Context, env))
		},
	}
}

// historyCmd creates the history command.
func historyCmd(env ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "history",
		Usage:     "List recorded generations, or show one by id",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "Filter by mode"},
			&cli.StringFlag{Name: "template", Aliases: []string{"t"}, Usage: "Filter by template id"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Max items to return"},
			&cli.IntFlag{Name: "offset", Usage: "Pagination offset"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				output, err := ops.GetGeneration(env, c.Args().First())
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			output, err := ops.History(env, ops.HistoryInput{
				Mode:       c.String("mode"),
				TemplateID: c.String("template"),
				Limit:      c.Int("limit"),
				Offset:     c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(env ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Permanently delete generation history",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "older-than", Usage: "Only purge records created more than N days ago (e.g., 7d)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.PurgeInput{}

			if olderThan := c.String("older-than"); olderThan != "" {
				days, err := parseDuration(olderThan)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				input.OlderThanDays = &days
			}

			output, err := ops.Purge(env, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(env ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI and JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind to"},
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "Port to listen on"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug|info|warn|error"},
		},
		Action: func(c *cli.Context) error {
			logger := logging.New(os.Stderr, "devgenie", logging.ParseLevel(c.String("log-level")), true)
			env.Logger = logger
			env.Generator = generator.NewRouter(env.Client, logger)

			srv, err := web.NewServer(env, Version, c.String("bind"), c.Int("port"))
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if err := web.Run(srv, logger); err != nil {
				logger.Error("server stopped", slog.Any("error", err))
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if gErr, ok := errors.As(err); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", gErr.Code, gErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseList flattens repeated and comma-separated values, dropping blanks.
func parseList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// parseDuration parses "7d" format to days.
func parseDuration(s string) (int, error) {
	if numStr, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(numStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		if days < 0 {
			return 0, fmt.Errorf("duration must be non-negative")
		}
		return days, nil
	}
	return 0, fmt.Errorf("duration must end with 'd' (days), e.g., 7d")
}
