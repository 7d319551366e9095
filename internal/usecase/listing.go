package usecase

import (
	"context"

	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
	"github.com/sourcegraph/conc/pool"
)

// loadPage runs the page query and the total count concurrently.
func loadPage[T any](
	ctx context.Context,
	params paging.Params,
	list func(context.Context) ([]T, error),
	count func(context.Context) (int, error),
) (paging.Page[T], error) {
	var (
		items []T
		total int
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		items, err = list(ctx)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		total, err = count(ctx)
		return err
	})
	if err := p.Wait(); err != nil {
		return paging.Page[T]{}, err
	}

	return paging.NewPage(items, params, total), nil
}
