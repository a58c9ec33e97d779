// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/poiesic/docseek"
	"github.com/poiesic/docseek/config"
	"github.com/poiesic/docseek/corpus"
	"github.com/poiesic/docseek/history"
	"github.com/poiesic/docseek/search"
	"github.com/poiesic/docseek/tui"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "docseek",
		Usage: "Search documentation pages from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML configuration file",
			},
			&cli.StringFlag{
				Name:  "corpus",
				Usage: "Corpus JSON file or directory (overrides corpus_path)",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Recent query storage: badger, sqlite or memory (overrides storage_backend)",
			},
			&cli.StringFlag{
				Name:  "store",
				Usage: "Badger directory or sqlite file (overrides storage_path)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run a single query and print the ranked results",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON",
					},
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Log each search stage to stderr",
					},
					&cli.BoolFlag{
						Name:  "record",
						Usage: "Add the query to the recent query list",
					},
				},
			},
			{
				Name:   "tui",
				Usage:  "Open the interactive search palette",
				Action: tuiCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "log-file",
						Usage: "Write logs to this file while the palette runs",
					},
				},
			},
			{
				Name:  "history",
				Usage: "Inspect the recent query list",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "Print recent queries, most recent first",
						Action: historyListCommand,
					},
					{
						Name:   "clear",
						Usage:  "Forget all recent queries",
						Action: historyClearCommand,
					},
				},
			},
			{
				Name:   "validate",
				Usage:  "Load the corpus and report problems",
				Action: validateCommand,
			},
			{
				Name:   "config",
				Usage:  "Print the effective configuration as TOML",
				Action: configCommand,
			},
		},
	}
}

// loadConfig builds the configuration from the optional file and the
// global flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.LoadFile(path)
		if err != nil {
			return nil, err
		}
	}

	if c.IsSet("corpus") {
		cfg.CorpusPath = c.String("corpus")
	}
	if c.IsSet("backend") {
		cfg.StorageBackend = c.String("backend")
		// A path chosen for another backend does not carry over.
		if !c.IsSet("store") {
			cfg.StoragePath = ""
		}
	}
	if c.IsSet("store") {
		cfg.StoragePath = c.String("store")
	}

	cfg.Normalize()
	return cfg, nil
}

func openWorkspace(c *cli.Context, opts ...docseek.WorkspaceOption) (*docseek.Workspace, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	ws, err := docseek.Open(c.Context, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace: %w", err)
	}
	return ws, nil
}

func openHistory(c *cli.Context) (*history.Store, func() error, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ValidateSettings(); err != nil {
		return nil, nil, err
	}

	kv, err := docseek.OpenStore(c.Context, cfg, slog.Default())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	store, err := history.NewStore(kv, history.WithKey(cfg.HistoryKey))
	if err != nil {
		kv.Close()
		return nil, nil, err
	}
	return store, kv.Close, nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a query is required")
	}

	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	var monitor search.SearchMonitor = &search.LogMonitor{}
	if c.Bool("explain") {
		monitor = &search.LogMonitor{
			Logger: slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})),
		}
	}
	results := ws.Engine().SearchWithMonitor(query, monitor)

	if c.Bool("record") {
		if _, err := ws.History().Add(c.Context, query); err != nil {
			return fmt.Errorf("failed to record query: %w", err)
		}
	}

	out := c.App.Writer
	if c.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintf(out, "No results for %q\n", query)
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(out, "%2d. %s (%d)\n", i+1, r.Title, r.Relevance)
		fmt.Fprintf(out, "    %s", r.Path)
		if r.Section != "" {
			fmt.Fprintf(out, "  [%s]", r.Section)
		}
		fmt.Fprintln(out)
		if r.Excerpt != "" {
			fmt.Fprintf(out, "    %s\n", r.Excerpt)
		}
	}
	return nil
}

func tuiCommand(c *cli.Context) error {
	// The palette owns the terminal, so logs go to a file or nowhere.
	logger := slog.New(slog.DiscardHandler)
	if path := c.String("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel(c)}))
	}

	ws, err := openWorkspace(c, docseek.WithLogger(logger))
	if err != nil {
		return err
	}
	defer ws.Close()

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	model, err := tui.NewModel(ctx, ws.NewSession, tui.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	// Print the last opened page so the palette can feed other tools.
	if path := model.LastPath(); path != "" {
		fmt.Fprintln(c.App.Writer, path)
	}
	return nil
}

func historyListCommand(c *cli.Context) error {
	store, closeStore, err := openHistory(c)
	if err != nil {
		return err
	}
	defer closeStore()

	for i, q := range store.Load(c.Context) {
		fmt.Fprintf(c.App.Writer, "%d  %s\n", i+1, q)
	}
	return nil
}

func historyClearCommand(c *cli.Context) error {
	store, closeStore, err := openHistory(c)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Clear(c.Context); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	fmt.Fprintln(c.App.ErrWriter, "Recent queries cleared")
	return nil
}

func validateCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	loader, err := corpus.NewLoader(corpus.WithPoolSize(cfg.LoadWorkers))
	if err != nil {
		return err
	}
	defer loader.Release()

	documents, err := loader.LoadPath(c.Context, cfg.CorpusPath)
	if err != nil {
		return fmt.Errorf("corpus is invalid: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "%s: %d documents\n", cfg.CorpusPath, len(documents))
	return nil
}

func configCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	return cfg.Encode(c.App.Writer)
}

func logLevel(c *cli.Context) slog.Level {
	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	// Normalize to lowercase
	levelStr := strings.ToLower(s)

	switch levelStr {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}
}

func setupLogger(c *cli.Context) error {
	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return err
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
