package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mailscout"
	mshttp "github.com/fwojciec/mailscout/http"
	"github.com/fwojciec/mailscout/rod"
	msslog "github.com/fwojciec/mailscout/slog"
	"github.com/fwojciec/mailscout/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database holding the run history.
	DB *sqlite.DB

	// Renderer, if set, is used by scrape instead of launching one.
	Renderer mailscout.Renderer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
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
		kong.Name("mailscout"),
		kong.Description("Harvest contact email addresses from a list of websites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mailscout --help' to see available commands")
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

	logger, logFile := newLogger(cli.LogFile, cli.Verbose, stderr)
	defer logFile.Close()
	deps.Logger = logger

	if cmd == "runs" || (cmd == "scrape" && cli.Scrape.History) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set MAILSCOUT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.Runs = msslog.NewLoggingRunStore(sqlite.NewRunService(m.DB), logger)
	}

	if cmd == "scrape" {
		renderer := m.Renderer
		if renderer == nil {
			if renderer, err = newRenderer(cli.Scrape.RendererConfig(), cli.Scrape.Static); err != nil {
				if !cli.Scrape.Static {
					fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --static")
				}
				return fmt.Errorf("failed to start renderer: %w", err)
			}
		}
		deps.Renderer = msslog.NewLoggingRenderer(renderer, logger)
		defer deps.Renderer.Close()
	}

	return kongCtx.Run(deps)
}

// newRenderer returns the browser renderer, or the plain HTTP one when static is set.
func newRenderer(cfg mailscout.RendererConfig, static bool) (mailscout.Renderer, error) {
	if static {
		return mshttp.NewRenderer(cfg)
	}
	return rod.NewRenderer(cfg)
}

func defaultDBPath() string {
	if path := os.Getenv("MAILSCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "mailscout.db"
	}
	dir := filepath.Join(home, ".mailscout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "mailscout.db")
}
