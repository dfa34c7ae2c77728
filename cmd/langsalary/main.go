package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/logging"
	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
	"github.com/fr4nk3nst1ner/langsalary/internal/ui"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

// printExamples displays usage examples for the program
func printExamples(w io.Writer) {
	fmt.Fprintln(w, "\n📋 langsalary Usage Examples 📋")
	fmt.Fprintln(w, "\n1. Average salaries for the default languages on hh.ru and SuperJob (token from .env):")
	fmt.Fprintln(w, "   langsalary")

	fmt.Fprintln(w, "\n2. Only hh.ru, for Go and Rust, without the banner:")
	fmt.Fprintln(w, "   langsalary -source hh -languages \"Go,Rust\" -silence")

	fmt.Fprintln(w, "\n3. Use a config file for another city and wait between pages:")
	fmt.Fprintln(w, "   langsalary -config spb.yaml -delay 500ms")

	fmt.Fprintln(w, "\n4. Debug the page-by-page collection through a proxy:")
	fmt.Fprintln(w, "   langsalary -debug -proxy http://localhost:8080")
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "langsalary",
		Usage: "Average salaries of programming languages from hh.ru and SuperJob",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file", EnvVars: []string{"LANGSALARY_CONFIG"}},
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file holding " + config.EnvSuperJobToken},
			&cli.StringFlag{Name: "source", Value: utils.SourceAll, Usage: "Source to query (hh, superjob, all)"},
			&cli.StringFlag{Name: "languages", Usage: "Comma-separated languages, overrides the configured list"},
			&cli.StringFlag{Name: "proxy", Usage: "Proxy URL to use"},
			&cli.DurationFlag{Name: "delay", Usage: "Delay between page requests"},
			&cli.IntFlag{Name: "max-pages", Usage: "Maximum pages fetched per language"},
			&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
			&cli.BoolFlag{Name: "silence", Aliases: []string{"nobanner"}, Usage: "Silence the banner"},
			&cli.BoolFlag{Name: "no-progress", Usage: "Hide progress bars"},
			&cli.BoolFlag{Name: "examples", Usage: "Show usage examples"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	logCfg := logging.DefaultConfig()
	if c.Bool("debug") {
		logCfg.Level = logging.LevelDebug
	}
	logging.Setup(logCfg)

	ui.PrintBanner(c.Bool("silence"))

	if c.Bool("examples") {
		printExamples(c.App.Writer)
		return nil
	}

	if err := config.LoadDotEnv(c.String("env-file")); err != nil {
		return err
	}
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if err := applyFlags(c, cfg); err != nil {
		return err
	}

	sources, err := utils.SourcesFor(c.String("source"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var progressOut io.Writer = os.Stderr
	if c.Bool("no-progress") {
		progressOut = nil
	}

	failed := collectAll(ctx, cfg, sources, client.CreateHTTPClient(cfg.Proxy), c.App.Writer, progressOut)
	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(sources))
	}
	return nil
}

// applyFlags overrides config values with flags set on the command line
func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("languages") {
		cfg.Languages = config.ParseLanguages(c.String("languages"))
	}
	if c.IsSet("proxy") {
		cfg.Proxy = c.String("proxy")
	}
	if c.IsSet("delay") {
		cfg.PageDelay = c.Duration("delay")
	}
	if c.IsSet("max-pages") {
		cfg.MaxPages = c.Int("max-pages")
	}
	return cfg.Validate()
}

// collectAll collects and prints one table per source. A failing source is
// logged and skipped so the remaining sources still run. It returns the
// number of failed sources.
func collectAll(ctx context.Context, cfg *config.Config, sources []string, httpClient *http.Client, out, progressOut io.Writer) int {
	logger := logging.NewLogger("driver")
	opts := scraper.Options{MaxPages: cfg.MaxPages, PageDelay: cfg.PageDelay}

	failed := 0
	for _, name := range sources {
		if err := collectSource(ctx, cfg, name, httpClient, opts, out, progressOut); err != nil {
			logger.Error().Err(err).Str("source", name).Msg("collection failed")
			failed++
		}
	}
	return failed
}

func collectSource(ctx context.Context, cfg *config.Config, name string, httpClient *http.Client, opts scraper.Options, out, progressOut io.Writer) error {
	src, title, err := newSource(cfg, name, httpClient)
	if err != nil {
		return err
	}

	progress := ui.NewProgress(progressOut, title, len(cfg.Languages))
	table, err := scraper.CollectTable(ctx, src, title, cfg.Languages, opts, progress)
	progress.Finish()
	if err != nil {
		return err
	}

	rendered, err := ui.RenderTable(table)
	if err != nil {
		return fmt.Errorf("failed to render %s table: %w", name, err)
	}
	fmt.Fprintln(out, rendered)
	return nil
}

func newSource(cfg *config.Config, name string, httpClient *http.Client) (scraper.Source, string, error) {
	switch name {
	case utils.SourceHeadHunter:
		return scraper.NewHeadHunter(cfg.HeadHunter, httpClient), cfg.HeadHunter.Title, nil
	case utils.SourceSuperJob:
		token, err := cfg.SuperJobToken()
		if err != nil {
			return nil, "", err
		}
		return scraper.NewSuperJob(cfg.SuperJob, token, httpClient), cfg.SuperJob.Title, nil
	default:
		return nil, "", fmt.Errorf("unknown source %q", name)
	}
}
