package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/insomnimus/arcup/config"
	"github.com/insomnimus/arcup/macro"
	"github.com/insomnimus/arcup/transpiler"
)

var (
	outPath    = flag.String("o", "", "output file; only valid with a single input")
	configPath = flag.String("config", "", "path to a TOML configuration file")
	stdDir     = flag.String("std", "", "directory that overrides the built-in std macro library")
	timeout    = flag.Duration("timeout", 0, "compile deadline per document")
	jobs       = flag.Int("j", 0, "number of documents compiled in parallel")
	verbose    = flag.Bool("v", false, "verbose development logging")
	listStd    = flag.Bool("list-std", false, "print the built-in std macro modules and exit")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] [file...]\n\nReads stdin and writes stdout when no file is given.\n\nOptions:\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if *listStd {
		for _, name := range macro.StdNames() {
			fmt.Println("std/" + name)
		}
		return
	}
	if err := run(flag.Args()); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so the deferred logger flush always happens.
func run(files []string) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *stdDir != "" {
		cfg.StdDir = *stdDir
	}
	if *timeout > 0 {
		cfg.CompileTimeout = config.Duration(*timeout)
	}
	if *jobs > 0 {
		cfg.Jobs = *jobs
	}
	if *outPath != "" && len(files) > 1 {
		return errors.New("-o can only be used with a single input file")
	}

	logger, err := newLogger(cfg, *verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := cfg.Options()
	opts.Logger = logger
	ctx := context.Background()

	if len(files) == 0 {
		return compileStream(ctx, os.Stdin, os.Stdout, opts)
	}
	return compileFiles(ctx, files, cfg.Jobs, opts, logger)
}

func newLogger(cfg config.Config, verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func compileStream(ctx context.Context, in io.Reader, out io.Writer, opts transpiler.Options) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	res, err := transpiler.Compile(ctx, string(data), opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, res.HTML)
	return err
}

func compileFiles(ctx context.Context, files []string, jobs int, opts transpiler.Options, logger *zap.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, path := range files {
		path := path
		g.Go(func() error {
			return compileFile(ctx, path, opts, logger)
		})
	}
	return g.Wait()
}

func compileFile(ctx context.Context, path string, opts transpiler.Options, logger *zap.Logger) error {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	o := opts
	o.Logger = logger.With(zap.String("file", path))
	res, err := transpiler.Compile(ctx, string(data), o)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	dest := transpiler.OutputPath(res.Document, path, *outPath)
	if err := os.WriteFile(dest, []byte(res.HTML), 0o644); err != nil {
		return err
	}
	o.Logger.Info("wrote document",
		zap.String("output", dest),
		zap.Int("warnings", len(res.Warnings)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
