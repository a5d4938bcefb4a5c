// Command oasdocs serves MCP query tools over one OpenAPI/Swagger document.
//
// It loads the document given as its single argument (a local file path or an
// http/https URL), indexes it in memory, and then speaks MCP over stdio until
// the client disconnects. All logging goes to stderr; stdout carries only the
// MCP protocol stream.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/oasdocs/oasdocs"
	"github.com/oasdocs/oasdocs/internal/mcpserver"
	"github.com/oasdocs/oasdocs/query"
	"github.com/oasdocs/oasdocs/specdoc"
	"github.com/oasdocs/oasdocs/specindex"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cliFlags contains the flags for the oasdocs command.
type cliFlags struct {
	logLevel     string
	fetchTimeout time.Duration
	version      bool
}

func setupFlags() (*flag.FlagSet, *cliFlags) {
	fs := flag.NewFlagSet("oasdocs", flag.ContinueOnError)
	flags := &cliFlags{}

	fs.StringVar(&flags.logLevel, "log-level", "INFO", "log level: DEBUG, INFO, WARNING, or ERROR")
	fs.DurationVar(&flags.fetchTimeout, "fetch-timeout", specdoc.DefaultFetchTimeout, "timeout for fetching remote specs")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasdocs [flags] <file|url>\n\n")
		_, _ = fmt.Fprintf(output, "Serve MCP query tools over an OpenAPI/Swagger document via stdio.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  oasdocs openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasdocs --log-level DEBUG api/swagger.json\n")
		_, _ = fmt.Fprintf(output, "  oasdocs https://petstore3.swagger.io/api/v3/openapi.json\n")
	}

	return fs, flags
}

func run(args []string) error {
	fs, flags := setupFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if flags.version {
		fmt.Printf("oasdocs v%s\n", oasdocs.Version())
		return nil
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("exactly one spec file path or URL is required")
	}
	source := fs.Arg(0)

	level, err := parseLogLevel(flags.logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	doc, err := specdoc.Load(source,
		specdoc.WithTimeout(flags.fetchTimeout),
		specdoc.WithLogger(specdoc.NewSlogAdapter(logger)),
	)
	if err != nil {
		return err
	}

	idx := specindex.New(doc)
	logger.Info("spec loaded",
		"source", doc.Source(),
		"format", doc.Format(),
		"endpoints", len(idx.Endpoints()),
		"schemas", len(idx.SchemaNames()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mcpserver.New(query.NewEngine(idx))
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// parseLogLevel maps a level name to its slog level, case-insensitively.
// WARNING is accepted as an alias for WARN.
func parseLogLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (want DEBUG, INFO, WARNING, or ERROR)", name)
	}
}
