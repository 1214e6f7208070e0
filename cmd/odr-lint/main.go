package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Marvin-Brouwer/open-adr/api"
	"github.com/Marvin-Brouwer/open-adr/types"
	"github.com/Marvin-Brouwer/open-adr/types/config"
	"github.com/Marvin-Brouwer/open-adr/types/dataclasses"
	"github.com/Marvin-Brouwer/open-adr/types/helpers"
)

const (
	EXIT_OK            = 0
	EXIT_DIAGNOSTICS   = 1
	EXIT_CONFIGURATION = 2
)

type options struct {
	configFile string
	format     string
	report     string
	serve      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	flags := flag.NewFlagSet("odr-lint", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var opts options
	flags.StringVar(&opts.configFile, "config", "", "path to the config file (default $CONFIG_FILE or "+config.CONFIG_FILE+")")
	flags.StringVar(
		&opts.format,
		"format",
		types.REPORT_FORMAT_TEXT,
		"output format, one of "+helpers.GetListAsQuotedString(types.ReportFormats),
	)
	flags.StringVar(&opts.report, "report", "", "store JSON reports in this directory, or in the configured MINIO bucket")
	flags.BoolVar(&opts.serve, "serve", false, "run the HTTP API instead of linting files")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: odr-lint [flags] files...\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return EXIT_CONFIGURATION
	}

	if opts.configFile != "" {
		os.Setenv("CONFIG_FILE", opts.configFile)
	}
	_config, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "odr-lint: %v\n", err)
		return EXIT_CONFIGURATION
	}

	if opts.serve {
		if err := serve(_config); err != nil {
			fmt.Fprintf(stderr, "odr-lint: %v\n", err)
			return EXIT_CONFIGURATION
		}
		return EXIT_OK
	}

	if flags.NArg() == 0 {
		flags.Usage()
		return EXIT_CONFIGURATION
	}

	return lint(_config, opts, flags.Args(), stdout, stderr)
}

func loadConfig() (_config config.Config, err error) {
	// GetConfig panics on unreadable config files
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("failed to load config: %v", recovered)
		}
	}()
	return config.GetConfig(), nil
}

func lint(_config config.Config, opts options, args []string, stdout io.Writer, stderr io.Writer) int {
	paths, err := expandPaths(args)
	if err != nil {
		fmt.Fprintf(stderr, "odr-lint: %v\n", err)
		return EXIT_CONFIGURATION
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	processor := types.NewProcessor(_config, types.NewLocalStorage(""))
	reports, err := processor.ProcessAll(ctx, paths)
	if err != nil {
		fmt.Fprintf(stderr, "odr-lint: %v\n", err)
		return EXIT_CONFIGURATION
	}

	sources := make(map[string][]byte, len(paths))
	for _, path := range paths {
		if content, err := os.ReadFile(path); err == nil {
			sources[path] = content
		}
	}

	output, err := types.RenderReports(opts.format, reports, sources)
	if err != nil {
		fmt.Fprintf(stderr, "odr-lint: %v\n", err)
		return EXIT_CONFIGURATION
	}
	stdout.Write(output)

	if opts.report != "" {
		if err := storeReports(_config, opts.report, reports, stderr); err != nil {
			fmt.Fprintf(stderr, "odr-lint: failed to store reports: %v\n", err)
			return EXIT_CONFIGURATION
		}
	}

	for _, report := range reports {
		if report.HasFatal() {
			return EXIT_DIAGNOSTICS
		}
	}
	return EXIT_OK
}

func storeReports(_config config.Config, target string, reports []dataclasses.Report, stderr io.Writer) error {
	storageConfig := _config.Storage
	storageConfig.Local.RootPath = target

	storage, directory, err := types.NewReportStorage(storageConfig)
	if err != nil {
		return err
	}

	names, err := types.SaveReports(storage, directory, reports)
	for _, name := range names {
		fmt.Fprintf(stderr, "report: %s\n", name)
	}
	return err
}

// expandPaths turns directories into the markdown files below them and
// expands glob patterns.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			files, err := markdownFiles(arg)
			if err != nil {
				return nil, err
			}
			paths = append(paths, files...)
			continue
		}
		if err == nil {
			paths = append(paths, arg)
			continue
		}

		matches, globErr := doublestar.FilepathGlob(arg)
		if globErr != nil || len(matches) == 0 {
			return nil, fmt.Errorf("no documents found for %s", arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func markdownFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext == ".md" || ext == ".markdown" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func serve(_config config.Config) error {
	server, err := api.NewServerWithConfig(_config)
	if err != nil {
		return err
	}

	server.AddMiddleware(
		middleware.Logger(),
		middleware.RequestID(),
		middleware.Gzip(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{
				"https://localhost",
				"http://localhost:*",
				"http://127.0.0.1:*",
			},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}),
	)
	server.AddLintRoutes()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		errs <- server.Start()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	if err := server.Shutdown(time.Second * 5); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
