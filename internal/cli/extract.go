package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/deidaraiorek/deirake/internal/rake"
	"github.com/deidaraiorek/deirake/internal/textprocessor"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type extractOptions struct {
	file     string
	stoplist string
	top      int
	graph    bool
	clean    bool
	format   string
}

func newExtractCommand() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [text]",
		Short: "Extract keywords from text",
		Long: `Extract ranked keywords from text given as arguments, read from --file,
or read from standard input when neither is given.

Examples:
  deirake extract "Criteria of compatibility of a system of linear Diophantine equations"
  deirake extract --file abstract.txt --top 5
  deirake extract --file abstract.txt --graph
  cat abstract.txt | deirake extract --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read text from file")
	cmd.Flags().StringVarP(&opts.stoplist, "stoplist", "s", "", "Stoplist file (default: embedded SMART list)")
	cmd.Flags().IntVarP(&opts.top, "top", "n", 0, "Show only the top N keywords (0 for all)")
	cmd.Flags().BoolVarP(&opts.graph, "graph", "g", false, "Print the co-occurrence graph")
	cmd.Flags().BoolVar(&opts.clean, "clean", false, "Strip markup and quotes before extraction")
	cmd.Flags().StringVar(&opts.format, "format", FormatText, "Output format: text, json or yaml")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, opts *extractOptions) error {
	switch opts.format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
	if opts.graph && opts.format != FormatText {
		return fmt.Errorf("--graph requires --format %s", FormatText)
	}
	if opts.top < 0 {
		return fmt.Errorf("--top must not be negative")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, err := readText(cmd, args, opts.file)
	if err != nil {
		return err
	}
	if opts.clean {
		text = textprocessor.Clean(text)
	}

	extractor, err := newExtractor(cfg.Rake, opts.stoplist)
	if err != nil {
		return err
	}

	session, err := extractor.Run(text)
	if err != nil {
		return err
	}

	keywords := session.Keywords()
	if opts.top > 0 && len(keywords) > opts.top {
		keywords = keywords[:opts.top]
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rake.Result{Keywords: keywords})
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(rake.Result{Keywords: keywords})
	}

	printKeywords(out, keywords)
	if opts.graph {
		fmt.Fprintf(out, "\n%s\n", infoColor("Co-occurrence graph:"))
		return session.PrintCoOccGraph(out)
	}
	return nil
}

func readText(cmd *cobra.Command, args []string, file string) (string, error) {
	if file != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("give text either as arguments or with --file, not both")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}
	return string(data), nil
}

func printKeywords(w io.Writer, keywords []rake.Keyword) {
	if len(keywords) == 0 {
		fmt.Fprintln(w, warnColor("No keywords found."))
		return
	}

	fmt.Fprintln(w, infoColor(fmt.Sprintf("Keywords (%d):", len(keywords))))
	for i, kw := range keywords {
		score := strconv.FormatFloat(kw.Score, 'f', -1, 64)
		fmt.Fprintf(w, "%d. %s %s\n", i+1, infoColor(score), successColor(kw.Phrase))
	}
}
