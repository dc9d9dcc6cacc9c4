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
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/jsonstore"
	"github.com/poiesic/jsonstore/codec"
	"github.com/poiesic/jsonstore/collection"
	"github.com/poiesic/jsonstore/config"
	"github.com/poiesic/jsonstore/core"
	"github.com/poiesic/jsonstore/importer"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v2"
	diff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "jsonstore",
		Usage: "Store JSON documents as files, one folder per item type",
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
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Root folder holding one folder per item type",
			},
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Item type folder to operate on",
			},
			&cli.StringFlag{
				Name:  "store",
				Usage: "Storage backend (fs, badger)",
			},
			&cli.StringFlag{
				Name:  "badger-path",
				Usage: "Path to BadgerDB database directory when --store=badger",
			},
			&cli.IntFlag{
				Name:  "read-concurrency",
				Usage: "Number of files read at the same time",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List the items of a type",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "content",
						Usage: "Print each item's content after its file name",
					},
				},
			},
			{
				Name:      "get",
				Usage:     "Print one item",
				ArgsUsage: "<id>",
				Action:    getCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "gjson path to extract from the item",
					},
					&cli.BoolFlag{
						Name:  "xml",
						Usage: "Print the item as XML rooted at the item type",
					},
				},
			},
			{
				Name:      "put",
				Usage:     "Insert one item from a file or stdin",
				ArgsUsage: "<id> [file|-]",
				Action:    putCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "policy",
						Usage: "What to do when the item exists (skip, overwrite)",
						Value: "overwrite",
					},
					&cli.BoolFlag{
						Name:  "xml",
						Usage: "Read the content as XML and store it as JSON",
					},
				},
			},
			{
				Name:      "import",
				Usage:     "Import every element of a JSON array",
				ArgsUsage: "<file|->",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "id-path",
						Usage: "gjson path of each element's identifier; content hash when empty",
					},
					&cli.StringFlag{
						Name:  "policy",
						Usage: "What to do with items that exist (skip, overwrite); defaults to the config policy",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of items merged per save; defaults to the config batch size",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N items",
					},
				},
			},
			{
				Name:      "diff",
				Usage:     "Compare a stored item with a candidate document",
				ArgsUsage: "<id> <file|->",
				Action:    diffCommand,
			},
		},
	}
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("root") {
		cfg.Root = c.String("root")
	}
	if c.IsSet("type") {
		cfg.ItemType = c.String("type")
	}
	if c.IsSet("store") {
		cfg.Store = c.String("store")
	}
	if c.IsSet("badger-path") {
		cfg.BadgerPath = c.String("badger-path")
	}
	if c.IsSet("read-concurrency") {
		cfg.ReadConcurrency = c.Int("read-concurrency")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// A level from the config file or environment applies unless the flag
	// was given
	if !c.IsSet("log-level") {
		logger, err := newLogger(c.App.ErrWriter, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		slog.SetDefault(logger)
	}
	return cfg, nil
}

func openManager(c *cli.Context) (*jsonstore.Manager, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.ItemType == "" {
		return nil, nil, fmt.Errorf("item type is required (--type or item_type)")
	}

	m, err := jsonstore.Open(cfg, jsonstore.WithLogger(slog.Default()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	return m, cfg, nil
}

// readSource reads the named file, or the app's stdin for "-" or "".
func readSource(c *cli.Context, name string) (string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

func listCommand(c *cli.Context) error {
	m, cfg, err := openManager(c)
	if err != nil {
		return err
	}
	defer m.Close()

	items, err := m.Items(context.Background(), cfg.ItemType)
	if err != nil {
		return err
	}

	w := c.App.Writer
	for _, item := range items {
		if c.Bool("content") {
			fmt.Fprintf(w, "%s\t%s\n", item.FileName, item.Content)
		} else {
			fmt.Fprintln(w, item.FileName)
		}
	}
	return nil
}

func getCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("id is required")
	}

	m, cfg, err := openManager(c)
	if err != nil {
		return err
	}
	defer m.Close()

	item, err := m.Get(context.Background(), cfg.ItemType, id)
	if err != nil {
		return err
	}

	if query := c.String("query"); query != "" {
		result := gjson.Get(item.Content, query)
		if !result.Exists() {
			return fmt.Errorf("query %q matched nothing in %s", query, item.FileName)
		}
		fmt.Fprintln(c.App.Writer, result.String())
		return nil
	}

	if c.Bool("xml") {
		out, err := codec.JSONToXML(item.Content, cfg.ItemType)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, out)
		return nil
	}

	out, err := codec.Indent(item.Content)
	if err != nil {
		// Stored content is opaque; print it as is
		out = item.Content
	}
	fmt.Fprintln(c.App.Writer, out)
	return nil
}

func putCommand(c *cli.Context) error {
	id := c.Args().Get(0)
	if id == "" {
		return fmt.Errorf("id is required")
	}

	policy, err := collection.ParsePolicy(c.String("policy"))
	if err != nil {
		return err
	}

	content, err := readSource(c, c.Args().Get(1))
	if err != nil {
		return err
	}
	content = strings.TrimSpace(content)
	if c.Bool("xml") {
		if content, err = codec.XMLToJSON(content); err != nil {
			return err
		}
	}
	if !gjson.Valid(content) {
		return fmt.Errorf("content is not valid JSON")
	}

	m, cfg, err := openManager(c)
	if err != nil {
		return err
	}
	defer m.Close()

	item, err := core.NewItem(cfg.ItemType, id, content)
	if err != nil {
		return err
	}

	plan, err := m.InsertMany(context.Background(), cfg.ItemType, []*core.Item{item}, policy)
	if err != nil {
		return err
	}

	switch {
	case plan.Skipped > 0:
		fmt.Fprintf(c.App.Writer, "%s exists, skipped\n", item.Path)
	case plan.Overwritten > 0:
		fmt.Fprintf(c.App.Writer, "%s overwritten\n", item.Path)
	default:
		fmt.Fprintf(c.App.Writer, "%s added\n", item.Path)
	}
	return nil
}

func importCommand(c *cli.Context) error {
	doc, err := readSource(c, c.Args().First())
	if err != nil {
		return err
	}

	m, cfg, err := openManager(c)
	if err != nil {
		return err
	}
	defer m.Close()

	policyName := cfg.Policy
	if c.IsSet("policy") {
		policyName = c.String("policy")
	}
	policy, err := collection.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	importConfig := &importer.Config{
		BatchSize:      cfg.BatchSize,
		ReportInterval: c.Int("report-interval"),
		Policy:         policy,
		IDPath:         c.String("id-path"),
	}
	if c.IsSet("batch-size") {
		importConfig.BatchSize = c.Int("batch-size")
	}
	if importConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}

	im, err := importer.NewImporter(m, importConfig, c.App.ErrWriter, slog.Default())
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.ErrWriter, "Root: %s\n", cfg.Root)
	fmt.Fprintf(c.App.ErrWriter, "Store: %s\n", cfg.Store)
	fmt.Fprintf(c.App.ErrWriter, "Type: %s\n", cfg.ItemType)
	fmt.Fprintln(c.App.ErrWriter)

	if _, err := im.Run(context.Background(), cfg.ItemType, doc); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return nil
}

func diffCommand(c *cli.Context) error {
	id := c.Args().Get(0)
	if id == "" {
		return fmt.Errorf("id is required")
	}

	candidate, err := readSource(c, c.Args().Get(1))
	if err != nil {
		return err
	}

	m, cfg, err := openManager(c)
	if err != nil {
		return err
	}
	defer m.Close()

	item, err := m.Get(context.Background(), cfg.ItemType, id)
	if err != nil {
		return err
	}

	out, err := diffDocuments(item.Content, candidate)
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, out)
	return nil
}

// diffDocuments renders the changes from stored to candidate. Both must be
// JSON objects.
func diffDocuments(stored, candidate string) (string, error) {
	d, err := diff.New().Compare([]byte(stored), []byte(candidate))
	if err != nil {
		return "", fmt.Errorf("failed to compare documents: %w", err)
	}
	if !d.Modified() {
		return "no differences\n", nil
	}

	left, err := codec.Deserialize[map[string]interface{}](stored)
	if err != nil {
		return "", err
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       false,
	})
	out, err := f.Format(d)
	if err != nil {
		return "", fmt.Errorf("failed to format diff: %w", err)
	}
	return out, nil
}

func setupLogger(c *cli.Context) error {
	logger, err := newLogger(c.App.ErrWriter, c.String("log-level"))
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

func newLogger(w io.Writer, levelStr string) (*slog.Logger, error) {
	// Normalize to lowercase
	levelStr = strings.ToLower(levelStr)

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})), nil
}
