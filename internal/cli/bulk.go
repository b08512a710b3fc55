package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deidaraiorek/deirake/internal/abstracts"
	"github.com/deidaraiorek/deirake/internal/logging"
	"github.com/deidaraiorek/deirake/internal/pipeline"
	"github.com/deidaraiorek/deirake/internal/storage"
)

type bulkOptions struct {
	source   string
	typ      string
	sample   float64
	workers  int
	resume   bool
	batch    int
	top      int
	stoplist string
}

func newBulkCommand() *cobra.Command {
	opts := &bulkOptions{}

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Extract keywords from stored abstracts",
		Long: `Run keyword extraction over the abstracts database and store the ranked
keywords of every abstract in the keyword database.

Flags left unset fall back to the BULK_* environment settings.

Examples:
  deirake bulk --type Testing
  deirake bulk --source Hulth2003 --sample 0.1 --workers 4
  deirake bulk --resume`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulk(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.source, "source", "", "Only abstracts from this source")
	cmd.Flags().StringVar(&opts.typ, "type", "", "Only abstracts of this type")
	cmd.Flags().Float64Var(&opts.sample, "sample", 1.0, "Fraction of abstracts to process, in (0, 1]")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "Number of extraction workers")
	cmd.Flags().IntVar(&opts.batch, "batch-size", 100, "Abstracts read per page when nothing is sampled")
	cmd.Flags().BoolVar(&opts.resume, "resume", false, "Skip abstracts that already have keywords")
	cmd.Flags().IntVarP(&opts.top, "top", "n", 0, "Keep only the top N keywords per abstract (0 for all)")
	cmd.Flags().StringVarP(&opts.stoplist, "stoplist", "s", "", "Stoplist file (default: embedded SMART list)")

	return cmd
}

func runBulk(cmd *cobra.Command, opts *bulkOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Bulk.Source = opts.source
	}
	if flags.Changed("type") {
		cfg.Bulk.AbstractType = opts.typ
	}
	if flags.Changed("sample") {
		cfg.Bulk.SamplePercentage = opts.sample
	}
	if flags.Changed("workers") {
		cfg.Bulk.Workers = opts.workers
	}
	if flags.Changed("resume") {
		cfg.Bulk.Resume = opts.resume
	}
	if flags.Changed("batch-size") {
		cfg.Bulk.BatchSize = opts.batch
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.LogFile)
	if err != nil {
		return err
	}
	defer logger.Close()

	extractor, err := newExtractor(cfg.Rake, opts.stoplist)
	if err != nil {
		return err
	}

	source, err := abstracts.NewAbstractDB(cfg.Storage.AbstractDBPath)
	if err != nil {
		return err
	}
	defer source.Close()

	store, err := storage.NewKeywordDB(cfg.Storage.KeywordDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("Abstract DB: %s", cfg.Storage.AbstractDBPath)
	logger.Debug("Keyword DB: %s", cfg.Storage.KeywordDBPath)

	runner := pipeline.New(source, store, extractor, logger, pipeline.Config{
		Filter:           abstracts.Filter{Source: cfg.Bulk.Source, Type: cfg.Bulk.AbstractType},
		SamplePercentage: cfg.Bulk.SamplePercentage,
		Workers:          cfg.Bulk.Workers,
		Method:           cfg.Bulk.Method,
		Resume:           cfg.Bulk.Resume,
		TopN:             opts.top,
		BatchSize:        cfg.Bulk.BatchSize,
	})

	report, err := runner.Run(ctx)
	if report != nil {
		printReport(cmd, report)
	}
	return err
}

func printReport(cmd *cobra.Command, report *pipeline.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", infoColor("Run:"), report.RunID)
	fmt.Fprintf(out, "  abstracts: %d (sampled %d)\n", report.Total, report.Sampled)
	fmt.Fprintf(out, "  %s %d\n", successColor("extracted:"), report.Extracted)
	fmt.Fprintf(out, "  skipped:   %d\n", report.Skipped)
	if report.Failed > 0 {
		fmt.Fprintf(out, "  %s %d\n", warnColor("failed:"), report.Failed)
	} else {
		fmt.Fprintf(out, "  failed:    %d\n", report.Failed)
	}
	fmt.Fprintf(out, "  keywords:  %d\n", report.Keywords)
}
