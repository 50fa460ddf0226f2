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
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/campusmate"
	"github.com/poiesic/campusmate/batch"
	"github.com/poiesic/campusmate/config"
	"github.com/poiesic/campusmate/core"
	"github.com/poiesic/campusmate/format"
	"github.com/poiesic/campusmate/query"
	"github.com/poiesic/campusmate/search"
	"github.com/poiesic/campusmate/warmup"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "campusmate",
		Usage: "Ask questions about your schedule and university announcements",
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
				Usage:   "Path to YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "schedule",
				Usage: "Path to the schedule CSV (date,time,title,description,location)",
			},
			&cli.StringFlag{
				Name:  "announcements",
				Usage: "Path to the announcement CSV (title,url,category,start_date,end_date)",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
			},
			&cli.StringFlag{
				Name:  "cache",
				Usage: "Path to the BadgerDB embedding cache directory (in memory when empty)",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable the embedding cache",
			},
			&cli.BoolFlag{
				Name:  "degrade",
				Usage: "Return filtered rows when semantic ranking fails",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "schedule",
				Aliases:   []string{"s"},
				Usage:     "Ask about the personal schedule",
				ArgsUsage: "QUERY",
				Action:    scheduleCommand,
				Flags:     queryFlags(),
			},
			{
				Name:      "announcements",
				Aliases:   []string{"a"},
				Usage:     "Ask about university announcements",
				ArgsUsage: "QUERY",
				Action:    announcementsCommand,
				Flags:     queryFlags(),
			},
			{
				Name:   "batch",
				Usage:  "Answer one query per line from a file concurrently",
				Action: batchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "File with one query per line (\"-\" for stdin)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "dataset",
						Usage: "Table for lines without a prefix (schedule, announcements)",
						Value: string(search.DatasetSchedule),
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size (0 picks from the CPU count)",
					},
				},
			},
			{
				Name:  "config",
				Usage: "Manage the configuration file",
				Subcommands: []*cli.Command{
					{
						Name:      "init",
						Usage:     "Write the effective configuration to a YAML file",
						ArgsUsage: "[PATH]",
						Action:    configInitCommand,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "force",
								Usage: "Overwrite an existing file",
							},
						},
					},
				},
			},
			{
				Name:   "warm",
				Usage:  "Pre-embed every table row into the embedding cache",
				Action: warmCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of snippets to embed in each call",
						Value: warmup.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N snippets",
						Value: warmup.DefaultBatchSize,
					},
				},
			},
		},
	}
}

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "examples",
			Usage: "List example questions and exit",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print results as JSON",
		},
	}
}

func scheduleCommand(c *cli.Context) error {
	if c.Bool("examples") {
		return printExamples(c.App.Writer, query.ScheduleExamples)
	}
	text, err := queryArg(c)
	if err != nil {
		return err
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	result, err := assistant.AnswerSchedule(c.Context, text)
	if err != nil {
		return fmt.Errorf("answering query: %w", err)
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, resultRecords(result))
	}
	if notice := search.ScheduleNotice(query.ParseTodo(text)); notice != "" {
		fmt.Fprintln(c.App.Writer, notice)
	}
	return format.Schedule(c.App.Writer, result)
}

func announcementsCommand(c *cli.Context) error {
	if c.Bool("examples") {
		return printExamples(c.App.Writer, query.AnnouncementExamples)
	}
	text, err := queryArg(c)
	if err != nil {
		return err
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	result, err := assistant.AnswerAnnouncements(c.Context, text)
	if err != nil {
		return fmt.Errorf("answering query: %w", err)
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, resultRecords(result))
	}
	return format.Announcements(c.App.Writer, result)
}

func batchCommand(c *cli.Context) error {
	dataset := search.Dataset(c.String("dataset"))
	if dataset != search.DatasetSchedule && dataset != search.DatasetAnnouncements {
		return fmt.Errorf("dataset must be %q or %q", search.DatasetSchedule, search.DatasetAnnouncements)
	}

	var in io.Reader = os.Stdin
	if path := c.String("file"); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open query file: %w", err)
		}
		defer f.Close()
		in = f
	}

	queries, err := batch.ReadQueries(in, dataset)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("workers") {
		cfg.Batch.Workers = c.Int("workers")
	}
	if cfg.Batch.Workers < 0 {
		return config.ErrInvalidWorkers
	}

	assistant, err := campusmate.OpenAssistant(cfg)
	if err != nil {
		return err
	}
	defer assistant.Close()

	var opts []batch.Option
	if cfg.Batch.Workers > 0 {
		opts = append(opts, batch.WithPoolSize(cfg.Batch.Workers))
	}
	runner, err := assistant.NewBatchRunner(opts...)
	if err != nil {
		return err
	}
	defer runner.Release()

	w := c.App.Writer
	failed := 0
	for i, res := range runner.Run(c.Context, queries) {
		fmt.Fprintf(w, "## %d. [%s] %s\n\n", i+1, res.Query.Dataset, res.Query.Text)

		var writeErr error
		switch {
		case res.Err != nil:
			failed++
			fmt.Fprintf(w, "error: %v\n", res.Err)
		case res.Schedule != nil:
			writeErr = format.Schedule(w, *res.Schedule)
		case res.Announcements != nil:
			writeErr = format.Announcements(w, *res.Announcements)
		}
		if writeErr != nil {
			return writeErr
		}
		fmt.Fprintln(w)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(queries))
	}
	return nil
}

func warmCommand(c *cli.Context) error {
	warmConfig := &warmup.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
	}

	if warmConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if warmConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.Cache.Disabled {
		return fmt.Errorf("warm needs the embedding cache: %w", campusmate.ErrCacheDisabled)
	}
	if cfg.Cache.Path == "" {
		fmt.Fprintln(os.Stderr, "Warning: no cache path configured, embeddings will be discarded on exit")
	}

	assistant, err := campusmate.OpenAssistant(cfg)
	if err != nil {
		return err
	}
	defer assistant.Close()

	fmt.Fprintf(os.Stderr, "Cache: %s\n", cfg.Cache.Path)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", cfg.AI.Host)
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", cfg.AI.Model)
	fmt.Fprintln(os.Stderr)

	if _, err := assistant.Warm(c.Context, warmConfig, os.Stderr); err != nil {
		return fmt.Errorf("warm-up failed: %w", err)
	}
	return nil
}

// loadConfig reads --config (or the defaults) and applies global flag overrides.
func configInitCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		path = "campusmate.yaml"
	}
	if !c.Bool("force") {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded

		// The flag wins over the file.
		if !c.IsSet("log-level") {
			level, _ := config.ParseLogLevel(cfg.Logging.Level)
			slog.SetDefault(newLogger(level))
		}
	}

	if c.IsSet("schedule") {
		cfg.Data.Schedule = c.String("schedule")
	}
	if c.IsSet("announcements") {
		cfg.Data.Announcements = c.String("announcements")
	}
	if c.IsSet("embedding-host") {
		cfg.AI.Host = c.String("embedding-host")
	}
	if c.IsSet("embedding-model") {
		cfg.AI.Model = c.String("embedding-model")
	}
	if c.IsSet("cache") {
		cfg.Cache.Path = c.String("cache")
	}
	if c.Bool("no-cache") {
		cfg.Cache.Disabled = true
	}
	if c.Bool("degrade") {
		cfg.Search.DegradeOnRankFailure = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openAssistant(c *cli.Context) (*campusmate.Assistant, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return campusmate.OpenAssistant(cfg)
}

func queryArg(c *cli.Context) (string, error) {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return "", fmt.Errorf("a query is required")
	}
	return text, nil
}

func printExamples(w io.Writer, examples []string) error {
	for _, example := range examples {
		if _, err := fmt.Fprintf(w, "- %s\n", example); err != nil {
			return err
		}
	}
	return nil
}

// resultRecords flattens a result into the list shape printed as JSON:
// the records, or a single {"no_result": ...} object.
func resultRecords[T any](result core.MatchResult[T]) []any {
	if result.IsNoResult() {
		return []any{result.NoResult}
	}
	records := make([]any, len(result.Records))
	for i, r := range result.Records {
		records[i] = r
	}
	return records
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setupLogger(c *cli.Context) error {
	level, err := config.ParseLogLevel(c.String("log-level"))
	if err != nil {
		return err
	}

	slog.SetDefault(newLogger(level))
	return nil
}

// newLogger returns a text logger on stderr at the given level.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
