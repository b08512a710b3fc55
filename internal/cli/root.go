// Package cli wires the deirake commands.
package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/deidaraiorek/deirake/internal/config"
	"github.com/deidaraiorek/deirake/internal/rake"
	"github.com/deidaraiorek/deirake/internal/stoplist"
	"github.com/deidaraiorek/deirake/internal/textprocessor"
)

var (
	infoColor    = color.New(color.FgCyan).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	warnColor    = color.New(color.FgYellow).SprintFunc()
)

// NewRootCommand builds the deirake command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "deirake",
		Short: "deirake - RAKE keyword extraction",
		Long: `deirake extracts keywords from text with RAKE: candidate phrases are split at
stop words and punctuation, their words are linked in a co-occurrence graph and
every phrase is scored by the degree/frequency ratio of its words.`,
		SilenceUsage: true,
	}

	root.AddCommand(newExtractCommand())
	root.AddCommand(newBulkCommand())
	root.AddCommand(newServeCommand())
	root.AddCommand(newStoplistCommand())
	root.AddCommand(newStatusCommand())

	return root
}

func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadStoplist(path string) (*stoplist.Stoplist, error) {
	if path == "" {
		return stoplist.Default(), nil
	}
	return stoplist.Load(path)
}

// newExtractor builds an extractor from cfg. A non-empty stoplistPath overrides
// the configured stoplist.
func newExtractor(cfg config.RakeConfig, stoplistPath string) (*rake.Extractor, error) {
	if stoplistPath == "" {
		stoplistPath = cfg.StoplistPath
	}
	stops, err := loadStoplist(stoplistPath)
	if err != nil {
		return nil, err
	}

	opts := []rake.Option{
		rake.WithMinWordLength(cfg.MinWordLength),
		rake.WithMaxWordLength(cfg.MaxWordLength),
		rake.WithNumerals(cfg.KeepNumerals),
		rake.WithMaxPhraseWords(cfg.MaxPhraseWords),
	}
	if cfg.Stem {
		stemmer, err := newStemmer(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, rake.WithStemmer(stemmer))
	}

	return rake.New(stops, opts...), nil
}

func newStemmer(cfg config.RakeConfig) (*textprocessor.Stemmer, error) {
	if cfg.StemLanguage == "" {
		return textprocessor.NewStemmer(), nil
	}
	return textprocessor.NewStemmerForLanguage(cfg.StemLanguage)
}
