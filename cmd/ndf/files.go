package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	ndf "github.com/sblinch/ndf-go"
	"github.com/sblinch/ndf-go/document"
)

// eachFile calls fn for every file, at most limit at a time, and returns the first error. A limit of 0 means one per
// CPU. fn receives the file's position in files so that results can be reported in order.
func eachFile(ctx context.Context, files []string, limit int, fn func(ctx context.Context, i int, path string) error) error {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, i, path)
		})
	}
	return g.Wait()
}

// parseFile reads and parses path into its root list
func parseFile(path string, log *zap.Logger) (*document.List, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := ndf.ParseWithOptions(bytes.NewReader(src), ndf.ParseOptions{Logger: log.With(zap.String("file", path))})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}
