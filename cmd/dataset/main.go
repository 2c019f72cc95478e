package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/barisense-backend/internal/app"
	"github.com/yungbote/barisense-backend/internal/dataset"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

// Set by build flags.
var version = "dev"

var defaultDataset = filepath.Join("db", "dataset.json")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := app.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	root := newRootCmd(log, os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(log *logger.Logger, stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "dataset",
		Short:         "Import, export and inspect Barisense datasets",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.AddCommand(newImportCmd(log, stdout))
	root.AddCommand(newExportCmd(log, stdout))
	root.AddCommand(newSummaryCmd(log, stdout))
	root.AddCommand(newServeCmd())
	return root
}

type importParams struct {
	coffees  string
	shots    string
	tastings string
	waters   string
	output   string
	stdout   io.Writer
}

func runImport(ctx context.Context, log *logger.Logger, p importParams) error {
	doc, err := dataset.Import(dataset.ImportOptions{
		CoffeesPath:  p.coffees,
		ShotsPath:    p.shots,
		TastingsPath: p.tastings,
		WatersPath:   p.waters,
	})
	if err != nil {
		return err
	}
	if err := dataset.Save(ctx, p.output, doc, log); err != nil {
		return err
	}
	log.Info("dataset imported",
		"output", p.output,
		"coffees", len(doc.Coffees),
		"shots", len(doc.Shots),
		"tastings", len(doc.Tastings),
		"verdicts", len(doc.Verdicts),
	)
	fmt.Fprintf(p.stdout, "Dataset sauvegardé dans %s\n", p.output)
	return nil
}

func newImportCmd(log *logger.Logger, stdout io.Writer) *cobra.Command {
	p := importParams{stdout: stdout}
	cmd := &cobra.Command{
		Use:   "import-csv",
		Short: "Import CSV files into a JSON dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd.Context(), log, p)
		},
	}
	cmd.Flags().StringVar(&p.coffees, "coffees", "", "coffees CSV")
	cmd.Flags().StringVar(&p.shots, "shots", "", "shots CSV")
	cmd.Flags().StringVar(&p.tastings, "tastings", "", "tastings CSV")
	cmd.Flags().StringVar(&p.waters, "waters", "", "waters CSV (optional)")
	cmd.Flags().StringVar(&p.output, "output", defaultDataset, "destination JSON dataset")
	_ = cmd.MarkFlagRequired("coffees")
	_ = cmd.MarkFlagRequired("shots")
	_ = cmd.MarkFlagRequired("tastings")
	return cmd
}

type exportParams struct {
	dataset   string
	outputDir string
	stdout    io.Writer
}

func runExport(ctx context.Context, log *logger.Logger, p exportParams) error {
	doc, err := dataset.Load(ctx, p.dataset, log)
	if err != nil {
		return err
	}
	if err := dataset.Export(doc, p.outputDir); err != nil {
		return err
	}
	fmt.Fprintf(p.stdout, "Exports CSV générés dans %s\n", p.outputDir)
	return nil
}

func newExportCmd(log *logger.Logger, stdout io.Writer) *cobra.Command {
	p := exportParams{stdout: stdout}
	cmd := &cobra.Command{
		Use:   "export-csv",
		Short: "Export a JSON dataset to CSV files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), log, p)
		},
	}
	cmd.Flags().StringVar(&p.dataset, "dataset", defaultDataset, "JSON dataset to export")
	cmd.Flags().StringVar(&p.outputDir, "output-dir", filepath.Join("scripts", "exports"), "output directory")
	return cmd
}

type summaryParams struct {
	dataset string
	top     int
	format  string
	stdout  io.Writer
}

func runSummary(ctx context.Context, log *logger.Logger, p summaryParams) error {
	if p.format != "text" && p.format != "json" && p.format != "yaml" {
		return fmt.Errorf("invalid format %q: must be 'text', 'json' or 'yaml'", p.format)
	}
	if p.top < 0 {
		return fmt.Errorf("--top must be >= 0, got %d", p.top)
	}
	doc, err := dataset.Load(ctx, p.dataset, log)
	if err != nil {
		return err
	}
	return dataset.Summarize(doc, p.top).Write(p.stdout, p.format)
}

func newSummaryCmd(log *logger.Logger, stdout io.Writer) *cobra.Command {
	p := summaryParams{stdout: stdout}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print dataset diagnostics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd.Context(), log, p)
		},
	}
	cmd.Flags().StringVar(&p.dataset, "dataset", defaultDataset, "JSON dataset to inspect")
	cmd.Flags().IntVar(&p.top, "top", 5, "number of coffees in the shot-count ranking")
	cmd.Flags().StringVar(&p.format, "format", "text", "output format: text, json or yaml")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Serve(cmd.Context())
		},
	}
}
