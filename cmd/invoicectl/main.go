package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/docai"
	"github.com/joseph-ayodele/invoice-tracker/internal/pipeline"
	repo "github.com/joseph-ayodele/invoice-tracker/internal/repository"
)

type globalFlags struct {
	configPath string
	inmem      bool
	debug      bool
}

func main() {
	var g globalFlags
	var root = &cobra.Command{
		Use:           "invoicectl",
		Short:         "Extract invoices with Document AI and store them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file (yaml, json or toml)")
	root.PersistentFlags().BoolVar(&g.inmem, "inmem", false, "use in-memory SQLite database")
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")

	root.AddCommand(initDBCMD(&g), processCMD(&g), batchCMD(&g), watchCMD(&g), replayCMD(&g), exportCMD(&g))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		printError("Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

// app holds what every subcommand needs: config, logger and an open store with tables created.
type app struct {
	cfg      *common.Config
	logger   *slog.Logger
	store    *repo.Store
	invoices repo.InvoiceRepository
}

func newApp(ctx context.Context, g *globalFlags) (*app, error) {
	level := slog.LevelInfo
	if g.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig(g.configPath)
	if err != nil {
		return nil, err
	}

	var store *repo.Store
	if g.inmem {
		store, err = repo.OpenInMemory(ctx, logger)
	} else {
		if err := cfg.ValidateDatabase(); err != nil {
			return nil, err
		}
		store, err = repo.Open(ctx, repo.ConfigFrom(cfg.Database), logger)
	}
	if err != nil {
		return nil, err
	}

	invoices := repo.NewInvoiceRepository(store, logger)
	if err := invoices.CreateTables(ctx); err != nil {
		repo.Close(store, logger)
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, store: store, invoices: invoices}, nil
}

func (a *app) close() {
	repo.Close(a.store, a.logger)
}

// classifier returns the remote Document AI client, or a replay classifier
// when savedDocument names a previously saved response.
func (a *app) classifier(ctx context.Context, savedDocument string) (docai.Classifier, func(), error) {
	if savedDocument != "" {
		a.logger.Info("using saved classifier response", "path", savedDocument)
		return docai.NewReplayClassifier(savedDocument), func() {}, nil
	}
	if err := a.cfg.ValidateDocumentAI(); err != nil {
		return nil, nil, err
	}
	c, err := docai.NewClient(ctx, a.cfg.DocumentAI, a.logger)
	if err != nil {
		return nil, nil, err
	}
	return c, func() {
		if err := c.Close(); err != nil {
			a.logger.Warn("failed to close document ai client", "error", err)
		}
	}, nil
}

func (a *app) processor(cls docai.Classifier, opts pipeline.Options) *pipeline.Processor {
	return pipeline.NewProcessor(a.logger, cls, a.invoices, opts)
}
