// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hashicorp/go-gzipstream"
	"golang.org/x/sync/errgroup"
)

// CLI are the cli parameters for the go-gzipstream binary
type CLI struct {
	Files           []string         `arg:"" name:"files" default:"-" help:"Gzip files to decompress. (\"-\" for STDIN)"`
	BufferSize      int              `optional:"" default:"4096" help:"Size of the read-ahead buffer (in bytes)."`
	MaxInputSize    int64            `optional:"" default:"1073741824" help:"Maximum compressed input size that is allowed (in bytes). (disable check: -1)"`
	NoConcatenation bool             `short:"S" help:"Stop after the first gzip member and fail on trailing data."`
	Stdout          bool             `short:"c" help:"Write decompressed data to STDOUT."`
	Telemetry       bool             `short:"M" optional:"" default:"false" help:"Print telemetry to log after decompression."`
	Timeout         int64            `optional:"" default:"60" help:"Maximum time a decompression should take (in seconds). (disable check: -1)"`
	Verbose         bool             `short:"v" optional:"" help:"Verbose logging."`
	Version         kong.VersionFlag `short:"V" optional:"" help:"Print release version information."`
}

// Run the entrypoint into go-gzipstream as a cli tool
func Run(version, commit, date string) {
	var cli CLI
	kong.Parse(&cli,
		kong.Description("A strict gzip decompression utility"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s), commit %s, built at %s", filepath.Base(os.Args[0]), version, commit, date),
		},
	)

	// Check for verbose output
	logLevel := slog.LevelError
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// setup telemetry hook
	telemetryToLog := func(ctx context.Context, td *gzipstream.TelemetryData) {
		if cli.Telemetry {
			logger.Info("decompression finished", "telemetry", td)
		}
	}

	// process cli params
	cfg := gzipstream.NewConfig(
		gzipstream.WithBufferSize(cli.BufferSize),
		gzipstream.WithConcatenation(!cli.NoConcatenation),
		gzipstream.WithLogger(logger),
		gzipstream.WithMaxInputSize(cli.MaxInputSize),
		gzipstream.WithTelemetryHook(telemetryToLog),
	)

	ctx := context.Background()
	if cli.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second*time.Duration(cli.Timeout))
		defer cancel()
	}

	// decompress the inputs; writing to stdout must stay sequential so
	// the outputs do not interleave
	eg, ctx := errgroup.WithContext(ctx)
	if cli.Stdout {
		eg.SetLimit(1)
	} else {
		eg.SetLimit(runtime.NumCPU())
	}
	for _, file := range cli.Files {
		file := file
		eg.Go(func() error {
			return decompressFile(ctx, logger, cfg, file, cli.Stdout)
		})
	}
	if err := eg.Wait(); err != nil {
		logger.Error("error during decompression", "error", err)
		os.Exit(-1)
	}
}

// decompressFile decompresses a single input file, or STDIN for "-", to
// its destination.
func decompressFile(ctx context.Context, logger *slog.Logger, cfg *gzipstream.Config, file string, toStdout bool) error {

	// open input
	var src io.Reader
	if file == "-" {
		src = os.Stdin
		toStdout = true
	} else {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("cannot open input: %w", err)
		}
		defer f.Close()
		src = f
	}

	// open output
	var dst io.Writer
	if toStdout {
		dst = os.Stdout
	} else {
		name, err := outputName(file)
		if err != nil {
			return err
		}
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("cannot create output: %w", err)
		}
		defer f.Close()
		dst = f
		logger.Debug("decompressing", "input", file, "output", name)
	}

	n, err := gzipstream.Decompress(ctx, dst, src, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	logger.Debug("decompressed", "input", file, "bytes", n)
	return nil
}

// outputName derives the destination filename from the input filename by
// stripping the gzip suffix.
func outputName(file string) (string, error) {
	for _, suffix := range []string{".gz", ".gzip", ".z"} {
		if strings.HasSuffix(strings.ToLower(file), suffix) && len(file) > len(suffix) {
			return file[:len(file)-len(suffix)], nil
		}
	}
	if strings.HasSuffix(strings.ToLower(file), ".tgz") {
		return file[:len(file)-len(".tgz")] + ".tar", nil
	}
	return "", fmt.Errorf("%s: unknown suffix, use -c to write to STDOUT", file)
}
