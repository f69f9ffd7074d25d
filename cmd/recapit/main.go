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
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/recapit"
	"github.com/poiesic/recapit/ai"
	"github.com/poiesic/recapit/ingestion"
	"github.com/poiesic/recapit/objectstore"
	"github.com/poiesic/recapit/resummarize"
	"github.com/poiesic/recapit/server"
	"github.com/poiesic/recapit/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "recapit",
		Usage: "Media summarization service backed by a generative file API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Set logging format (text, json)",
				Value: "text",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the summarization HTTP server",
				Action: serveCommand,
				Flags: append(geminiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "addr",
						Usage: "HTTP listen address",
						Value: ":8080",
					},
					&cli.IntFlag{
						Name:  "max-concurrent-runs",
						Usage: "Maximum concurrent summarization runs",
						Value: server.DefaultMaxConcurrentRuns,
					},
					&cli.DurationFlag{
						Name:  "poll-interval",
						Usage: "Interval between remote file state checks",
						Value: 5 * time.Second,
					},
					&cli.DurationFlag{
						Name:  "poll-max-wait",
						Usage: "Maximum time to wait for remote file processing",
						Value: 5 * time.Minute,
					},
					&cli.StringFlag{
						Name:    "s3-bucket",
						Usage:   "Object store bucket holding source media",
						EnvVars: []string{"RECAPIT_S3_BUCKET"},
					},
					&cli.StringFlag{
						Name:    "s3-region",
						Usage:   "Object store region",
						EnvVars: []string{"RECAPIT_S3_REGION"},
						Value:   "us-east-1",
					},
					&cli.StringFlag{
						Name:    "s3-endpoint",
						Usage:   "Object store endpoint (empty for AWS S3)",
						EnvVars: []string{"RECAPIT_S3_ENDPOINT"},
					},
					&cli.StringFlag{
						Name:    "s3-access-key",
						Usage:   "Object store access key",
						EnvVars: []string{"RECAPIT_S3_ACCESS_KEY"},
					},
					&cli.StringFlag{
						Name:    "s3-secret-key",
						Usage:   "Object store secret key",
						EnvVars: []string{"RECAPIT_S3_SECRET_KEY"},
					},
					&cli.StringFlag{
						Name:    "captions-url",
						Usage:   "Captions API base URL for remote transcripts",
						EnvVars: []string{"RECAPIT_CAPTIONS_URL"},
					},
					&cli.StringFlag{
						Name:    "captions-api-key",
						Usage:   "Captions API key",
						EnvVars: []string{"RECAPIT_CAPTIONS_API_KEY"},
					},
				),
			},
			{
				Name:   "resummarize",
				Usage:  "Regenerate the summaries of all stored results",
				Action: resummarizeCommand,
				Flags: append(geminiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of results to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N results",
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
				),
			},
			{
				Name:      "get",
				Usage:     "Print a cached summarization result as JSON",
				ArgsUsage: "<sourceID>",
				Action:    getCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "language",
						Usage: "Result language",
						Value: "en",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func geminiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "gemini-host",
			Usage: "Generative service host URL",
			Value: "https://generativelanguage.googleapis.com",
		},
		&cli.StringFlag{
			Name:     "gemini-api-key",
			Usage:    "Generative service API key",
			EnvVars:  []string{"GEMINI_API_KEY"},
			Required: true,
		},
		&cli.StringFlag{
			Name:  "gemini-model",
			Usage: "Generation model identifier",
			Value: "gemini-2.0-flash",
		},
		&cli.Float64Flag{
			Name:  "temperature",
			Usage: "Generation temperature",
			Value: 0.2,
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.String("gemini-host")),
		ai.WithAPIKey(c.String("gemini-api-key")),
		ai.WithModel(c.String("gemini-model")),
		ai.WithTemperature(c.Float64("temperature")),
	)
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	opts := []recapit.ServiceOption{
		recapit.WithAIConfig(aiConfigFromFlags(c)),
	}
	if bucket := c.String("s3-bucket"); bucket != "" {
		opts = append(opts, recapit.WithObjectStoreConfig(objectstore.Config{
			AccessKey: c.String("s3-access-key"),
			SecretKey: c.String("s3-secret-key"),
			Region:    c.String("s3-region"),
			Endpoint:  c.String("s3-endpoint"),
			Bucket:    bucket,
		}))
	}
	if captionsURL := c.String("captions-url"); captionsURL != "" {
		opts = append(opts, recapit.WithCaptionSource(captionsURL, c.String("captions-api-key")))
	}

	svc, err := recapit.NewService(ctx, c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer svc.Close()

	pipeline, err := svc.NewPipeline(
		ingestion.WithPolling(c.Duration("poll-interval"), c.Duration("poll-max-wait")),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	srv, err := server.NewServer(server.Config{
		Addr:              c.String("addr"),
		Pipeline:          pipeline,
		Results:           svc.Results(),
		MaxConcurrentRuns: c.Int("max-concurrent-runs"),
		Logger:            slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("received signal, shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-errCh
}

func resummarizeCommand(c *cli.Context) error {
	ctx := context.Background()

	svc, err := recapit.NewService(ctx, c.String("db"),
		recapit.WithAIConfig(aiConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer svc.Close()

	config := &resummarize.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		ModelName:      c.String("gemini-model"),
	}

	// Validate config
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	r := resummarize.NewResummarizer(svc.Results(), svc.Provider().Generator(), config, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Generation model: %s\n", c.String("gemini-model"))
	fmt.Fprintln(os.Stderr)

	if err := r.Run(ctx); err != nil {
		return fmt.Errorf("resummarization failed: %w", err)
	}
	return nil
}

func getCommand(c *cli.Context) error {
	ctx := context.Background()

	sourceID := c.Args().First()
	if sourceID == "" {
		return fmt.Errorf("sourceID argument is required")
	}

	// Lookup only needs the store, not the generative provider.
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewResultRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	result, err := repo.GetResult(ctx, sourceID, c.String("language"))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.String("log-format")) {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", c.String("log-format"))
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
