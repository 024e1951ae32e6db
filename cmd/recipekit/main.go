package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/keyran/recipekit"
	"github.com/keyran/recipekit/crawl"
	"github.com/keyran/recipekit/fs"
	"github.com/keyran/recipekit/goquery"
	rkhttp "github.com/keyran/recipekit/http"
	"github.com/keyran/recipekit/prometheus"
	"github.com/keyran/recipekit/rod"
	rkslog "github.com/keyran/recipekit/slog"
	"github.com/keyran/recipekit/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Recipe directory used when a command does not name one.
	DataDir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	EntryService recipekit.EntryService

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:  defaultDBPath(),
		DataDir: defaultDataDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	for i := len(m.closers) - 1; i >= 0; i-- {
		_ = m.closers[i].Close()
	}
	m.closers = nil
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("recipekit"),
		kong.Description("Extract structured recipes from recipe web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'recipekit --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	metrics := prometheus.NewMetrics()
	var extractors recipekit.ExtractorRegistry = goquery.NewDefaultRegistry()
	extractors = prometheus.NewMetricsRegistry(extractors, metrics)
	extractors = rkslog.NewLoggingRegistry(extractors, logger)
	deps.Extractors = extractors

	if cmd == "sites" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set RECIPEKIT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	entries := sqlite.NewEntryService(m.DB)
	m.EntryService = entries
	deps.Entries = entries

	var browser bool
	var dir string
	switch cmd {
	case "parse":
		browser, dir = cli.Parse.Browser, cli.Parse.Dir
	case "serve":
		browser, dir = cli.Serve.Browser, m.dir(cli.Serve.Dir)
	case "import":
		browser, dir = cli.Import.Browser, m.dir(cli.Import.Dir)
	default:
		return kongCtx.Run(deps)
	}

	downloader := rkhttp.NewFetcher()
	var fetcher recipekit.Fetcher = downloader
	if browser {
		f, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, f)
		fetcher = f
	}

	recipeParser := &crawl.Parser{
		Fetcher:     rkslog.NewLoggingFetcher(fetcher, logger),
		Extractors:  extractors,
		RetryDelays: crawl.DefaultRetryDelays(),
		Logf: func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		},
	}
	deps.Parser = recipeParser

	if dir != "" {
		files := fs.NewStore(dir)
		files.Logger = logger
		files.Images = rkslog.NewLoggingImageService(
			fs.NewImageWriter(rkslog.NewLoggingDownloader(downloader, logger)),
			logger,
		)
		deps.Store = recipekit.MultiStore{
			rkslog.NewLoggingStore(files, "fs", logger),
			rkslog.NewLoggingStore(entries, "sqlite", logger),
		}
	}

	switch cmd {
	case "serve":
		server := rkhttp.NewServer()
		server.Addr = cli.Serve.Addr
		server.Parser = recipeParser
		server.Store = deps.Store
		server.Metrics = metrics.Handler()
		server.Logger = logger
		deps.Server = server
	case "import":
		deps.Importer = &crawl.Importer{
			Parser: recipeParser,
			Store:  deps.Store,
		}
	}

	return kongCtx.Run(deps)
}

// dir returns flagDir, or the default recipe directory when it is empty.
func (m *Main) dir(flagDir string) string {
	if flagDir != "" {
		return flagDir
	}
	return m.DataDir
}

func defaultDBPath() string {
	if path := os.Getenv("RECIPEKIT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "recipekit.db"
	}
	dir := filepath.Join(home, ".recipekit")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "recipekit.db")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "recipes"
	}
	return filepath.Join(home, ".recipekit", "recipes")
}
