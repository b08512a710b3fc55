// Package pipeline runs keyword extraction over stored abstracts and writes the
// scored keywords back to the keyword store.
package pipeline

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/deidaraiorek/deirake/internal/abstracts"
	"github.com/deidaraiorek/deirake/internal/logging"
	"github.com/deidaraiorek/deirake/internal/rake"
	"github.com/deidaraiorek/deirake/internal/storage"
	"github.com/deidaraiorek/deirake/internal/textprocessor"
)

const DefaultBatchSize = 100

type AbstractSource interface {
	ListAbstractIDs(ctx context.Context, filter abstracts.Filter) ([]int, error)
	GetAbstractByID(ctx context.Context, id int) (*abstracts.Abstract, error)
	GetAbstractsAfterID(ctx context.Context, filter abstracts.Filter, afterID int, limit int) ([]*abstracts.Abstract, error)
	GetTotalAbstractCount(ctx context.Context, filter abstracts.Filter) (int, error)
}

type KeywordStore interface {
	StartRun(ctx context.Context, run *storage.Run) error
	FinishRun(ctx context.Context, runID string, abstractCount, failedCount int) error
	IsAbstractExtracted(ctx context.Context, abstractID int, method string) (bool, error)
	SaveKeywords(ctx context.Context, runID string, abstractID int, method string, keywords []storage.Keyword) error
}

type Config struct {
	Filter           abstracts.Filter
	SamplePercentage float64
	Workers          int
	Method           string
	// Resume skips abstracts that already have keywords for Method.
	Resume bool
	// TopN keeps only the best N keywords per abstract; 0 keeps all.
	TopN int
	// BatchSize is the page size used when every abstract is processed.
	BatchSize int
}

type Report struct {
	RunID     string
	Total     int
	Sampled   int
	Extracted int
	Skipped   int
	Failed    int
	Keywords  int
}

type Runner struct {
	source    AbstractSource
	store     KeywordStore
	extractor *rake.Extractor
	logger    *logging.Logger
	config    Config
}

func New(source AbstractSource, store KeywordStore, extractor *rake.Extractor, logger *logging.Logger, config Config) *Runner {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Method == "" {
		config.Method = "RAKE"
	}
	if config.SamplePercentage <= 0 {
		config.SamplePercentage = 1
	}
	if config.BatchSize < 1 {
		config.BatchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	return &Runner{
		source:    source,
		store:     store,
		extractor: extractor,
		logger:    logger,
		config:    config,
	}
}

// job is one abstract to extract. Sampled runs only know the id and read the
// abstract in the worker.
type job struct {
	id       int
	abstract *abstracts.Abstract
}

type result struct {
	abstractID int
	keywords   []storage.Keyword
	skipped    bool
	err        error
}

// Run extracts keywords from the sampled abstracts. A failure on one abstract is
// logged and counted, and the run moves on to the next one. Run returns an error
// only when the abstracts cannot be read, the run cannot be recorded, or ctx
// is cancelled.
//
// When every abstract is processed they are read in pages of BatchSize;
// otherwise the id list is sampled and each abstract is read by id.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}

	var sampled []int
	if r.paged() {
		total, err := r.source.GetTotalAbstractCount(ctx, r.config.Filter)
		if err != nil {
			return nil, fmt.Errorf("failed to count abstracts: %w", err)
		}
		report.Total, report.Sampled = total, total
	} else {
		ids, err := r.source.ListAbstractIDs(ctx, r.config.Filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list abstracts: %w", err)
		}
		sampled = Sample(ids, r.config.SamplePercentage)
		report.Total, report.Sampled = len(ids), len(sampled)
	}

	err := r.store.StartRun(ctx, &storage.Run{
		ID:               report.RunID,
		Method:           r.config.Method,
		Source:           r.config.Filter.Source,
		AbstractType:     r.config.Filter.Type,
		SamplePercentage: r.config.SamplePercentage,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Run %s: extracting %s keywords from %d of %d abstracts with %d workers",
		report.RunID, r.config.Method, report.Sampled, report.Total, r.config.Workers)

	jobs := make(chan job)
	results := make(chan result)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		if r.paged() {
			return r.producePages(gctx, jobs)
		}
		for _, id := range sampled {
			select {
			case jobs <- job{id: id}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var workers sync.WaitGroup
	for range r.config.Workers {
		workers.Add(1)
		g.Go(func() error {
			defer workers.Done()
			for j := range jobs {
				res := r.process(gctx, j)
				select {
				case results <- res:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		workers.Wait()
		close(results)
	}()

	done := 0
	for res := range results {
		done++
		r.write(ctx, report, res, done)
	}

	runErr := g.Wait()

	// recorded even when the run was cancelled
	if err := r.store.FinishRun(context.WithoutCancel(ctx), report.RunID, report.Extracted, report.Failed); err != nil {
		r.logger.Error("Failed to finish run %s: %v", report.RunID, err)
	}

	if runErr != nil {
		return report, fmt.Errorf("run %s interrupted: %w", report.RunID, runErr)
	}

	r.logger.Info("Run %s completed: %d extracted, %d skipped, %d failed, %d keywords",
		report.RunID, report.Extracted, report.Skipped, report.Failed, report.Keywords)
	return report, nil
}

func (r *Runner) paged() bool {
	return r.config.SamplePercentage >= 1
}

func (r *Runner) producePages(ctx context.Context, jobs chan<- job) error {
	afterID := 0
	for {
		page, err := r.source.GetAbstractsAfterID(ctx, r.config.Filter, afterID, r.config.BatchSize)
		if err != nil {
			return fmt.Errorf("failed to read abstracts after %d: %w", afterID, err)
		}
		if len(page) == 0 {
			return nil
		}

		for _, a := range page {
			select {
			case jobs <- job{id: a.ID, abstract: a}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		afterID = page[len(page)-1].ID
	}
}

func (r *Runner) process(ctx context.Context, j job) result {
	id := j.id
	if r.config.Resume {
		extracted, err := r.store.IsAbstractExtracted(ctx, id, r.config.Method)
		if err != nil {
			return result{abstractID: id, err: fmt.Errorf("failed to check abstract: %w", err)}
		}
		if extracted {
			return result{abstractID: id, skipped: true}
		}
	}

	abstract := j.abstract
	if abstract == nil {
		var err error
		abstract, err = r.source.GetAbstractByID(ctx, id)
		if err != nil {
			return result{abstractID: id, err: fmt.Errorf("failed to read abstract: %w", err)}
		}
	}

	keywords, err := r.extractor.Extract(textprocessor.Clean(abstract.Text))
	if err != nil {
		return result{abstractID: id, err: fmt.Errorf("failed to extract keywords: %w", err)}
	}
	if r.config.TopN > 0 && len(keywords) > r.config.TopN {
		keywords = keywords[:r.config.TopN]
	}

	return result{abstractID: id, keywords: toStorage(keywords)}
}

func (r *Runner) write(ctx context.Context, report *Report, res result, done int) {
	switch {
	case res.skipped:
		report.Skipped++
		r.logger.Debug("Skipping abstract %d (%d/%d): already extracted", res.abstractID, done, report.Sampled)
		return
	case res.err != nil:
		report.Failed++
		r.logger.Error("Abstract %d (%d/%d): %v", res.abstractID, done, report.Sampled, res.err)
		return
	}

	if err := r.store.SaveKeywords(ctx, report.RunID, res.abstractID, r.config.Method, res.keywords); err != nil {
		report.Failed++
		r.logger.Error("Abstract %d (%d/%d): failed to save keywords: %v", res.abstractID, done, report.Sampled, err)
		return
	}

	report.Extracted++
	report.Keywords += len(res.keywords)
	r.logger.Info("Extracted %d keywords from abstract %d (%d/%d)", len(res.keywords), res.abstractID, done, report.Sampled)
}

func toStorage(keywords []rake.Keyword) []storage.Keyword {
	out := make([]storage.Keyword, len(keywords))
	for i, kw := range keywords {
		out[i] = storage.Keyword{Phrase: kw.Phrase, Score: kw.Score, Occurrences: kw.Count}
	}
	return out
}

// Sample picks int(len(ids)*percentage) ids, at least one, spread evenly over ids
// with an integer stride of len(ids)/size. A percentage of 1 or more keeps all.
func Sample(ids []int, percentage float64) []int {
	if percentage >= 1 || len(ids) == 0 {
		return slices.Clone(ids)
	}
	if percentage <= 0 {
		return []int{}
	}

	size := max(int(float64(len(ids))*percentage), 1)
	stride := len(ids) / size

	sampled := make([]int, size)
	for i := range size {
		sampled[i] = ids[i*stride]
	}
	return sampled
}
