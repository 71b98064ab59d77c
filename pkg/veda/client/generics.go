package client

import (
	"context"
	"fmt"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
)

// QueryIndividuals pages through the results of a query, fetches the matching individuals
// in batches, converts them and hands them to the callback in result order.
//
// Processing stops at the first error. Individuals that were handed to the callback before
// the error are not rolled back in any way.
func QueryIndividuals[T any](ctx context.Context, c VedaClient, query string, batchSize int, convert func(*individuals.Individual) (T, error), callback func(t T), parameters ...RequestDecoratorFunc) (count int, err error) {

	logger := logging.GetFromContext(ctx)

	if batchSize <= 0 {
		batchSize = 50
	}

	from := 0

	for {
		pageParams := make([]RequestDecoratorFunc, 0, len(parameters)+3)
		pageParams = append(pageParams, parameters...)
		pageParams = append(pageParams, From(from), Top(batchSize), Limit(batchSize))

		qr, qerr := c.Query(ctx, query, pageParams...)
		if qerr != nil {
			err = fmt.Errorf("query failed after %d individuals: %w", count, qerr)
			return
		}

		if len(qr.Result) > 0 {
			logger.Debug("fetching query results", "from", from, "count", len(qr.Result))

			list, gerr := c.GetIndividuals(ctx, qr.Result, parameters...)
			if gerr != nil {
				err = fmt.Errorf("failed to fetch individuals after %d: %w", count, gerr)
				return
			}

			for _, i := range list {
				var t T
				t, err = convert(i)
				if err != nil {
					err = fmt.Errorf("failed to convert %s: %w", i.URI(), err)
					return
				}

				callback(t)
				count++
			}
		}

		// a page may be shorter than the batch while there are more results
		if !qr.HasMore() || qr.Cursor <= from {
			break
		}

		from = qr.Cursor
	}

	return
}

// Identity can be used as converter when the individuals should be used as they are
func Identity(i *individuals.Individual) (*individuals.Individual, error) {
	return i, nil
}
