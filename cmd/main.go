package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gitaura/gitaura/internal/adapters/github"
	"github.com/gitaura/gitaura/internal/adapters/http/api"
	"github.com/gitaura/gitaura/internal/app"
	"github.com/gitaura/gitaura/internal/config"
	"github.com/gitaura/gitaura/pkg/logger"
)

// HTTP server timeout constants for serve mode.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// options holds the parsed command line.
type options struct {
	username     string
	output       string
	width        int
	height       int
	noAnimation  bool
	checkChanges bool
	serve        bool
	verbose      bool
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("gitaura", flag.ContinueOnError)
	opts := &options{}
	fs.StringVar(&opts.output, "o", "", "output SVG path (default from config: aura.svg)")
	fs.IntVar(&opts.width, "width", 0, "SVG width in pixels (default from config: 800)")
	fs.IntVar(&opts.height, "height", 0, "SVG height in pixels (default from config: 800)")
	fs.BoolVar(&opts.noAnimation, "no-animation", false, "disable SVG animation")
	fs.BoolVar(&opts.checkChanges, "check-changes", false, "report whether the output file changed (for CI)")
	fs.BoolVar(&opts.serve, "serve", false, "run as an HTTP service instead of writing one file")
	fs.BoolVar(&opts.verbose, "v", false, "enable verbose logging")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	opts.username = fs.Arg(0)
	return opts, nil
}

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	applyFlags(cfg, opts)

	if opts.verbose {
		logger.SetLevelString("debug") //nolint:errcheck // constant input
	} else if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		log.Error(ctx, "GITHUB_TOKEN environment variable required")
		os.Exit(1)
	}

	fetcher := github.NewClient(ctx, token,
		github.WithLookback(time.Duration(cfg.LookbackDays)*24*time.Hour))
	svc := app.New(
		app.WithFetcher(fetcher),
		app.WithLogger(log),
		app.WithCanvas(cfg.Width, cfg.Height),
		app.WithSteps(cfg.SimulationSteps),
		app.WithReferenceCommits(cfg.ReferenceCommits),
	)

	if opts.serve {
		if err := runServer(ctx, cfg, svc, log); err != nil {
			log.Error(ctx, "server failed", logger.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := runGenerate(ctx, cfg, svc, opts, log); err != nil {
		log.Error(ctx, "generation failed", logger.Error(err))
		os.Exit(1)
	}
}

// applyFlags lets explicit command line values win over the config layer.
func applyFlags(cfg *config.Config, opts *options) {
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.width > 0 {
		cfg.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Height = opts.height
	}
	if opts.noAnimation {
		cfg.Animate = false
	}
}

// runGenerate produces one aura and writes it to the configured path.
func runGenerate(ctx context.Context, cfg *config.Config, svc *app.Service, opts *options, log logger.Logger) error {
	username := opts.username
	if username == "" {
		username = os.Getenv("GITHUB_ACTOR")
	}
	if username == "" {
		return fmt.Errorf("username required: pass as argument or set GITHUB_ACTOR")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.FetchTimeoutSeconds)*time.Second)
	defer cancel()

	log.Info(ctx, "generating aura", logger.String("login", username))
	doc, err := svc.Aura(fetchCtx, app.Request{
		Login:   username,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Animate: cfg.Animate,
	})
	if err != nil {
		return err
	}

	changed, err := app.WriteIfChanged(cfg.Output, doc)
	if err != nil {
		return err
	}
	if opts.checkChanges {
		// Consumed by the scheduled automation wrapper.
		fmt.Printf("AURA_CHANGED=%t\n", changed)
	}
	log.Info(ctx, "aura written", logger.String("path", cfg.Output), logger.Bool("changed", changed))
	return nil
}

// runServer exposes aura generation over HTTP until the context is
// cancelled.
func runServer(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) error {
	mux := http.NewServeMux()
	api.NewServer(svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info(ctx, "server stopped")
	return nil
}
