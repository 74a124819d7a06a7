// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Go runs tasks concurrently and waits for all of them.
//
// The first error cancels the shared context and is returned. A panic inside
// a task is recovered and returned as an Internal error, so handlers that fan
// out keep the same failure semantics as the chain itself.
func Go(ctx context.Context, tasks ...func(ctx context.Context) error) error {
	group, groupCtx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		group.Go(func() (err error) {
			defer func() {
				if recovered := recover(); recovered != nil {
					err = panicError(recovered)
				}
			}()
			return task(groupCtx)
		})
	}

	return group.Wait()
}
