package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deidaraiorek/deirake/internal/abstracts"
	"github.com/deidaraiorek/deirake/internal/storage"
)

type statusOptions struct {
	method string
	typ    string
}

func newStatusCommand() *cobra.Command {
	opts := &statusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show abstract counts and the last extraction run",
		Long: `Report how many abstracts each source holds, how many of them already have
keywords for the extraction method, and the outcome of the most recent bulk run.

Examples:
  deirake status
  deirake status --type Testing --method RAKE`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.method, "method", "m", "", "Extraction method (default: BULK_METHOD)")
	cmd.Flags().StringVar(&opts.typ, "type", "", "Only count abstracts of this type")

	return cmd
}

func runStatus(cmd *cobra.Command, opts *statusOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	method := cfg.Bulk.Method
	if opts.method != "" {
		method = opts.method
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

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	total, err := source.GetTotalAbstractCount(ctx, abstracts.Filter{Type: opts.typ})
	if err != nil {
		return fmt.Errorf("failed to count abstracts: %w", err)
	}
	fmt.Fprintf(out, "%s %d\n", infoColor("Abstracts:"), total)

	sources, err := source.Sources(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}
	for _, name := range sources {
		count, err := source.GetTotalAbstractCount(ctx, abstracts.Filter{Source: name, Type: opts.typ})
		if err != nil {
			return fmt.Errorf("failed to count abstracts from %s: %w", name, err)
		}
		fmt.Fprintf(out, "  %s: %d\n", name, count)
	}

	extracted, err := store.GetExtractedAbstractCount(ctx, method)
	if err != nil {
		return fmt.Errorf("failed to count extracted abstracts: %w", err)
	}
	fmt.Fprintf(out, "%s %d\n", successColor(fmt.Sprintf("Extracted (%s):", method)), extracted)

	lastRunID, err := store.GetMetadata(ctx, "last_run_id")
	if err != nil {
		return fmt.Errorf("failed to read last run: %w", err)
	}
	if lastRunID == "" {
		fmt.Fprintln(out, warnColor("No extraction runs yet."))
		return nil
	}

	run, err := store.GetRun(ctx, lastRunID)
	if err != nil {
		return fmt.Errorf("failed to read run %s: %w", lastRunID, err)
	}
	fmt.Fprintf(out, "%s %s\n", infoColor("Last run:"), run.ID)
	fmt.Fprintf(out, "  method:    %s\n", run.Method)
	fmt.Fprintf(out, "  filter:    source=%q type=%q\n", run.Source, run.AbstractType)
	fmt.Fprintf(out, "  sample:    %g\n", run.SamplePercentage)
	fmt.Fprintf(out, "  extracted: %d\n", run.AbstractCount)
	fmt.Fprintf(out, "  failed:    %d\n", run.FailedCount)
	return nil
}
