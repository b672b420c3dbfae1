// SPDX-License-Identifier: EPL-2.0

package decodekit

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/audioforge/decodekit/audio"
)

// OpenMany resolves and opens several files concurrently.  Results are
// returned in the order of paths.  On any failure every decoder that
// was already opened is closed and the first error is returned.
func OpenMany(ctx context.Context, paths ...string) ([]*audio.Decoder, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	results := make([]*audio.Decoder, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			dec, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = dec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, dec := range results {
			if dec != nil {
				dec.Close()
			}
		}
		return nil, err
	}

	return results, nil
}
