package service

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/roadtrip/roadtrip/internal/domain"
	"github.com/roadtrip/roadtrip/internal/repository"
)

// TaskError accumulates the errors produced during a bulk export.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error { return e.Errors }

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// ExportStats counts what a bulk export wrote.
type ExportStats struct {
	Countries int
	Borders   int
}

// BulkExporter writes the resolved graph to a graph database using a fixed
// pool of workers.
type BulkExporter struct {
	repo    *repository.Repository
	workers int
}

// NewBulkExporter creates a BulkExporter with the provided concurrency.
func NewBulkExporter(repo *repository.Repository, workers int) *BulkExporter {
	if workers <= 0 {
		workers = 4
	}
	return &BulkExporter{
		repo:    repo,
		workers: workers,
	}
}

// Export writes every country of the graph, then the borders of each one.
// Countries go first so border writes never race on node creation.
func (be *BulkExporter) Export(ctx context.Context, rt *RoadTrip) (ExportStats, error) {
	if err := be.repo.EnsureSchema(ctx); err != nil {
		return ExportStats{}, err
	}

	ids := rt.Graph().Vertices()
	countries := make([]domain.Country, 0, len(ids))
	for _, id := range ids {
		c, ok := rt.Country(id)
		if !ok {
			c = domain.Country{ID: id, DisplayName: id}
		}
		countries = append(countries, c)
	}

	var stats ExportStats
	err := be.run(ctx, len(countries), func(idx int) error {
		return be.repo.UpsertCountry(ctx, countries[idx])
	})
	if err != nil {
		return stats, err
	}
	stats.Countries = len(countries)

	borders := make([][]domain.Hop, len(ids))
	for i, id := range ids {
		edges, err := rt.Graph().Neighbors(id)
		if err != nil {
			return stats, err
		}
		for _, e := range edges {
			borders[i] = append(borders[i], domain.Hop{From: e.From, To: e.To, Distance: e.Weight})
		}
		stats.Borders += len(edges)
	}

	err = be.run(ctx, len(ids), func(idx int) error {
		return be.repo.UpsertBorders(ctx, ids[idx], borders[idx])
	})
	if err != nil {
		stats.Borders = 0
		return stats, err
	}
	return stats, nil
}

func (be *BulkExporter) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < be.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if err := ctx.Err(); err != nil {
		return err
	}

	var taskErr TaskError
	for err := range errCh {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
