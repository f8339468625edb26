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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/cadsentinel"
	"github.com/poiesic/cadsentinel/ai"
	"github.com/poiesic/cadsentinel/chat"
	"github.com/poiesic/cadsentinel/core"
	"github.com/poiesic/cadsentinel/ingestion"
	"github.com/poiesic/cadsentinel/reembed"
	"github.com/poiesic/cadsentinel/search"
)

func main() {
	app := &cli.App{
		Name:  "cadsentinel",
		Usage: "Engineering drawing ingestion, retrieval and chat",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to config file (default ~/.cadsentinel/config.toml)",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (overrides config)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest a parsed drawing JSON file",
				ArgsUsage: "<parsed.json>",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dwg",
						Usage: "Source DWG/DXF file; its content hash identifies the version",
					},
					&cli.StringFlag{
						Name:  "document-hash",
						Usage: "Stable document identity hash (defaults to the version hash)",
					},
					&cli.StringFlag{
						Name:  "thumbnail",
						Usage: "Path to a rendered PNG thumbnail to register",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search ingested drawings",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Retrieval mode: vector or hybrid",
						Value: "hybrid",
					},
					&cli.Uint64Flag{
						Name:  "version",
						Usage: "Restrict to one drawing version id",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of results (0 uses the config value)",
					},
					&cli.Float64Flag{
						Name:  "alpha",
						Usage: "Hybrid vector weight in [0,1] (negative uses the config value)",
						Value: -1,
					},
				},
			},
			{
				Name:      "chat",
				Usage:     "Ask a question about one ingested drawing",
				ArgsUsage: "<question>",
				Action:    chatCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:  "version",
						Usage: "Drawing version id to chat with",
					},
					&cli.StringFlag{
						Name:  "document",
						Usage: "Document hash; resolves to its active version",
					},
				},
			},
			{
				Name:      "mode",
				Usage:     "Show or switch the configured AI backend (openai or local)",
				ArgsUsage: "[openai|local]",
				Action:    modeCommand,
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all stored chunks with the configured embedder",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Number of batches processed in parallel (0 = auto)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openDatabase loads the config and opens the store with both AI
// backends registered and the configured one active.
func openDatabase(c *cli.Context) (*cadsentinel.Database, *fileConfig, error) {
	cfg, _, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	mode, err := ai.ParseMode(cfg.Mode)
	if err != nil {
		return nil, nil, err
	}

	dbPath, err := cfg.databasePath(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	db, err := cadsentinel.NewDatabase(dbPath,
		cadsentinel.WithMode(mode),
		cadsentinel.WithOpenAIConfig(cfg.OpenAI.aiConfig(ai.ModeOpenAI)),
		cadsentinel.WithLocalConfig(cfg.Local.aiConfig(ai.ModeLocal)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, cfg, nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one parsed drawing JSON file")
	}
	jsonPath := c.Args().First()

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to read parsed drawing: %w", err)
	}

	var drawing core.ParsedDrawing
	if err := json.Unmarshal(data, &drawing); err != nil {
		return fmt.Errorf("failed to parse drawing JSON: %w", err)
	}

	// The version is identified by the source file's content; without a
	// source file the parsed JSON stands in for it.
	hashSource := c.String("dwg")
	sourceFilename := filepath.Base(jsonPath)
	if hashSource == "" {
		hashSource = jsonPath
	} else {
		sourceFilename = filepath.Base(hashSource)
	}

	versionHash, err := hashFile(hashSource)
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", hashSource, err)
	}

	documentHash := c.String("document-hash")
	if documentHash == "" {
		documentHash = versionHash
	}

	db, _, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	input := ingestion.RunInput{
		DocumentHash:   documentHash,
		VersionHash:    versionHash,
		SourceFilename: sourceFilename,
		Entities:       drawing.Entities,
	}

	if thumb := c.String("thumbnail"); thumb != "" {
		info, err := os.Stat(thumb)
		if err != nil {
			return fmt.Errorf("failed to stat thumbnail: %w", err)
		}
		input.Artifacts = append(input.Artifacts, ingestion.ArtifactInput{
			FileType:  "png_thumb",
			Path:      thumb,
			SizeBytes: info.Size(),
			MimeType:  "image/png",
		})
		input.PreviewRef = thumb
	}

	result, err := db.NewIngestionPipeline().Run(context.Background(), input)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Println("Ingestion complete:")
	fmt.Printf("  document_id: %d\n", uint64(result.DocumentId))
	fmt.Printf("  version_id:  %d\n", uint64(result.VersionId))
	fmt.Printf("  dimensions:  %d\n", result.Dimensions)
	fmt.Printf("  notes:       %d\n", result.Notes)
	fmt.Printf("  embeddings:  %d\n", result.Embeddings)
	if result.Reingest {
		fmt.Println("  reingest:    true (previous derived data replaced)")
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one query string")
	}
	queryText := c.Args().First()

	mode := c.String("mode")
	if mode != "vector" && mode != "hybrid" {
		return fmt.Errorf("invalid mode %q: must be vector or hybrid", mode)
	}

	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}

	topK := c.Int("top-k")
	if topK <= 0 {
		topK = cfg.Search.TopK
	}

	query := search.Query{
		Text:    queryText,
		Filters: search.Filters{VersionId: core.ID(c.Uint64("version"))},
		TopK:    topK,
	}
	if cfg.Search.Threshold >= -1 {
		threshold := float32(cfg.Search.Threshold)
		query.Threshold = &threshold
	}

	ctx := context.Background()
	var results []*core.SearchResult
	if mode == "vector" {
		results, err = searcher.Vector(ctx, query)
	} else {
		alpha := float32(c.Float64("alpha"))
		if alpha < 0 {
			alpha = float32(cfg.Search.Alpha)
		}
		results, err = searcher.Hybrid(ctx, query, alpha)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%2d. [%.3f] (%s, version %d) %s\n",
			i+1, r.Score, r.Chunk.SourceType, uint64(r.Chunk.VersionId), r.Chunk.Content)
		if r.Thumbnail != "" {
			fmt.Printf("    thumbnail: %s\n", r.Thumbnail)
		}
	}
	return nil
}

func chatCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one question string")
	}

	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	assembler, err := db.NewAssembler()
	if err != nil {
		return err
	}

	resp, err := assembler.Ask(context.Background(), chat.Request{
		Question:     c.Args().First(),
		VersionId:    core.ID(c.Uint64("version")),
		DocumentHash: c.String("document"),
		Limits: &chat.Limits{
			Summaries:  cfg.Chat.SummaryChunks,
			Notes:      cfg.Chat.NoteChunks,
			Dimensions: cfg.Chat.DimensionChunks,
		},
	})
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	fmt.Println(resp.Reply)
	if len(resp.Contexts) > 0 {
		fmt.Printf("\nBased on %d retrieved chunks. Open: %s\n", len(resp.Contexts), resp.DeepLink)
	}
	return nil
}

func modeCommand(c *cli.Context) error {
	cfg, path, err := loadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if c.NArg() == 0 {
		fmt.Printf("Active AI backend: %s\n", cfg.Mode)
		return nil
	}

	mode, err := ai.ParseMode(c.Args().First())
	if err != nil {
		return err
	}

	cfg.Mode = string(mode)
	if err := saveConfig(cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("AI backend set to %s (%s)\n", mode, path)
	return nil
}

func reembedCommand(c *cli.Context) error {
	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		Concurrency:    c.Int("concurrency"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	reembedder, err := db.NewReembedder(reembedConfig, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "AI backend: %s\n", cfg.Mode)
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(context.Background()); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

// hashFile computes the hex digest identifying a file's content.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := blake2b.New(32, nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
