package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/floorplan-mcp/internal/config"
	"github.com/ironsheep/floorplan-mcp/internal/floorplan"
	"github.com/ironsheep/floorplan-mcp/internal/plancache"
	"github.com/ironsheep/floorplan-mcp/internal/report"
	"github.com/ironsheep/floorplan-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes for the reconstruct command.
const (
	exitOK       = 0
	exitFailure  = 1
	exitInvalid  = 2
	exitBadUsage = 64
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Handle --version and -v flags
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "floorplan-mcp %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return exitOK
		case "--help", "-h", "help":
			printHelp(stdout)
			return exitOK
		case "reconstruct":
			return reconstruct(args[1:], stdin, stdout, stderr)
		case "serve":
		default:
			fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
			printHelp(stderr)
			return exitBadUsage
		}
	}

	cfg := config.Load()
	logger := cfg.NewLogger(stderr)
	logger.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("floorplan MCP server starting")

	engine, err := floorplan.NewEngine(cfg.EngineParams(), logger)
	if err != nil {
		logger.WithError(err).Error("invalid engine configuration")
		return exitFailure
	}

	srv := server.New(engine, plancache.New(cfg.CacheSize), logger)
	if err := srv.Serve(stdin, stdout); err != nil {
		logger.WithError(err).Error("server error")
		return exitFailure
	}
	return exitOK
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "floorplan-mcp - MCP server for floor plan reconstruction")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  floorplan-mcp [serve]                        Run the MCP server on stdin/stdout")
	fmt.Fprintln(w, "  floorplan-mcp reconstruct [-summary] <file>  Reconstruct a plan from a JSON file (- for stdin)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  FLOORPLAN_MCP_LOG_LEVEL=debug    Log level (default info)")
	fmt.Fprintln(w, "  FLOORPLAN_MCP_LOG_FORMAT=json    Log format, text or json")
	fmt.Fprintln(w, "  FLOORPLAN_MCP_CACHE_SIZE=32      Plans kept in memory by the server")
	fmt.Fprintln(w, "  FLOORPLAN_GROUP_THRESHOLD=20     Wall grouping threshold")
	fmt.Fprintln(w, "  FLOORPLAN_ORIENTATION_TOLERANCE=5")
	fmt.Fprintln(w, "  FLOORPLAN_SCALE=4")
	fmt.Fprintln(w, "  FLOORPLAN_MAX_SEGMENTS=5000")
	fmt.Fprintln(w, "  FLOORPLAN_INDEX_THRESHOLD=64")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The server communicates via MCP protocol over stdin/stdout.")
	fmt.Fprintln(w, "Configure it in your MCP client (e.g., Claude Desktop).")
}

// reconstruct runs the engine once on a Primitives JSON document.
func reconstruct(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("reconstruct", flag.ContinueOnError)
	fs.SetOutput(stderr)
	summary := fs.Bool("summary", false, "print a styled summary instead of JSON")
	if err := fs.Parse(args); err != nil {
		return exitBadUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: floorplan-mcp reconstruct [-summary] <file.json|->")
		return exitBadUsage
	}

	cfg := config.Load()
	logger := cfg.NewLogger(stderr)

	in, err := readPrimitives(fs.Arg(0), stdin)
	if err != nil {
		logger.WithError(err).Error("cannot read input")
		return exitFailure
	}

	engine, err := floorplan.NewEngine(cfg.EngineParams(), logger)
	if err != nil {
		logger.WithError(err).Error("invalid engine configuration")
		return exitFailure
	}

	res, err := engine.Reconstruct(in)
	if err != nil {
		logger.WithError(err).Error("reconstruction failed")
		if errors.Is(err, floorplan.ErrInvalidPrimitive) || errors.Is(err, floorplan.ErrTooManySegments) {
			return exitInvalid
		}
		return exitFailure
	}

	if *summary {
		lipgloss.Fprintln(stdout, report.Summary(res))
		return exitOK
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		logger.WithError(err).Error("cannot write result")
		return exitFailure
	}
	return exitOK
}

func readPrimitives(path string, stdin io.Reader) (floorplan.Primitives, error) {
	var in floorplan.Primitives

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return in, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return in, fmt.Errorf("failed to decode input: %w", err)
	}
	return in, nil
}
