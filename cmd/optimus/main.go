// Command optimus cleans a tabular file with a configured list of steps.
//
//	optimus --config clean.yaml [--chunk-size N] [--profile] [--log-level debug]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
	"github.com/wdm0006/optimus/pkg/profile"
)

var version = "0.1.0-dev"

var logger = slog.Default()

type options struct {
	config      string
	chunkSize   int
	profile     bool
	profileJSON string
	show        int
}

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Path to cleaning config (.json, .yaml, .yml or .toml)")
	chunkSize := flag.Int("chunk-size", 0, "Stream with this many rows per chunk; 0 uses chunk_size from the config or reads everything at once")
	prof := flag.Bool("profile", false, "Print a profile of the output to stderr")
	profJSON := flag.String("profile-json", "", "Write a JSON profile of the output to this path")
	show := flag.Int("show", 0, "Print the first N output rows as a table (batch mode only)")
	level := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	flag.Parse()

	if *showVersion {
		fmt.Println("optimus", version)
		return
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*level)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "no config provided; nothing to do. try --config <file> or --version")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := options{config: *configPath, chunkSize: *chunkSize, profile: *prof, profileJSON: *profJSON, show: *show}
	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		logger.Error("run failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	p, err := buildPipeline(cfg.Steps, logger)
	if err != nil {
		return err
	}
	chunk := opts.chunkSize
	if chunk == 0 {
		chunk = cfg.ChunkSize
	}
	logger.Info("starting", "input", cfg.Input.Path, "output", cfg.Output.Path, "steps", p.Steps(), "chunk_size", chunk)

	var collector *profile.Collector
	if chunk > 0 {
		src, closer, err := openSource(cfg.Input, chunk)
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()
		sink, err := openSink(cfg.Output)
		if err != nil {
			return err
		}
		ps := &profilingSink{ChunkSink: sink}
		if opts.profile || opts.profileJSON != "" {
			sink = ps
		}
		rows, err := frame.RunStream(ctx, p, src, sink)
		if err != nil {
			return err
		}
		logger.Info("done", "rows", rows)
		collector = ps.collector
	} else {
		in, err := readAll(cfg.Input)
		if err != nil {
			return err
		}
		out, err := p.Run(ctx, in)
		if err != nil {
			return err
		}
		if err := writeAll(cfg.Output, out); err != nil {
			return err
		}
		logger.Info("done", "rows", out.Rows())
		if opts.show > 0 {
			// keep the table out of the data stream
			w := stdout
			if cfg.Output.Path == "-" {
				w = stderr
			}
			if err := optimus.New(out).Show(w, opts.show); err != nil {
				return err
			}
		}
		if opts.profile || opts.profileJSON != "" {
			collector = profile.NewCollector(out.Schema(), 5, profile.WithExactMedian())
			collector.ConsumeFrame(out)
		}
	}
	return report(collector, opts, stderr)
}

func report(c *profile.Collector, opts options, stderr io.Writer) error {
	if c == nil {
		return nil
	}
	if opts.profile {
		if _, err := io.WriteString(stderr, c.ReportText()); err != nil {
			return err
		}
	}
	if opts.profileJSON != "" {
		b, err := json.MarshalIndent(c.ReportJSON(), "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.profileJSON, b, 0o644); err != nil {
			return fmt.Errorf("write profile: %w", err)
		}
	}
	return nil
}
