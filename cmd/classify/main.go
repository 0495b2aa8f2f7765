package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/classify/internal/app"
	"github.com/nhle/classify/internal/logging"
	"github.com/nhle/classify/internal/model"
	"github.com/nhle/classify/internal/report"
	"github.com/nhle/classify/internal/store"
	"github.com/nhle/classify/internal/theme"
)

type options struct {
	configPath string
	report     string
	export     string
}

func main() {
	var (
		configPath string
		opts       options
	)
	flag.StringVar(&configPath, "config", model.DefaultConfigPath(), "configuration file")
	flag.StringVar(&opts.report, "report", "", "print a report and exit: subjects, upcoming, today, completed, missing, schedule or all")
	flag.StringVar(&opts.export, "export", "", "with -report, write to a .csv/.xlsx path, or give csv|xlsx to use export.dir")
	flag.Parse()

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts.configPath = configPath
	if err := run(cfg, logger, opts); err != nil {
		logger.Error("classify failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *model.AppConfig, logger *zap.Logger, opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting classify", zap.String("database", cfg.Database.Path))

	s, err := store.NewSQLiteStore(cfg.Database.Path, store.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Error("closing database", zap.Error(err))
		}
	}()

	if err := s.Initialize(ctx); err != nil {
		return err
	}
	if _, err := s.SeedIfEmpty(ctx); err != nil {
		return err
	}
	if cfg.Artifacts.Enabled {
		if err := s.WriteArtifacts(cfg.Artifacts.Dir); err != nil {
			logger.Warn("writing sql artifacts", zap.Error(err))
		}
	}

	svc := report.NewService(s, logger)

	if opts.report != "" {
		return runReport(ctx, svc, cfg, opts)
	}

	if err := theme.Use(cfg.Display.Theme); err != nil {
		return fmt.Errorf("display.theme: %w", err)
	}

	p := tea.NewProgram(
		app.New(s, svc, app.Config{
			ExportDir:  cfg.Export.Dir,
			Logger:     logger,
			Settings:   cfg,
			ConfigPath: opts.configPath,
		}),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// runReport generates one report, or all of them, and prints or exports it.
func runReport(ctx context.Context, svc *report.Service, cfg *model.AppConfig, opts options) error {
	var reports []*report.Report
	if strings.EqualFold(opts.report, "all") {
		all, err := svc.GenerateAll(ctx)
		if err != nil {
			return err
		}
		reports = all
	} else {
		kind, err := report.ParseKind(opts.report)
		if err != nil {
			return err
		}
		r, err := svc.Generate(ctx, kind)
		if err != nil {
			return err
		}
		reports = []*report.Report{r}
	}

	for _, r := range reports {
		if opts.export == "" {
			if err := report.WriteText(os.Stdout, r); err != nil {
				return err
			}
			continue
		}

		path := opts.export
		switch format := strings.ToLower(opts.export); format {
		case report.FormatCSV, report.FormatXLSX:
			path = filepath.Join(cfg.Export.Dir, report.DefaultFilename(r, format))
		default:
			if len(reports) > 1 {
				return fmt.Errorf("-report all needs -export csv or -export xlsx")
			}
		}
		if err := report.ExportFile(path, r); err != nil {
			return err
		}
		fmt.Println("Exported", r.Title, "to", path)
	}
	return nil
}
