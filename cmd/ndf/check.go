package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sblinch/ndf-go/document"
	"github.com/sblinch/ndf-go/syntax"
)

var checkCmd = &cobra.Command{
	Use:   "check files...",
	Short: "Parse NDF files and report syntax and structural errors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), cmd.OutOrStdout(), args, cfg.Workers, logger)
	},
}

// runCheck parses every file, writes one line per failing file to w and returns an error if any failed
func runCheck(ctx context.Context, w io.Writer, files []string, limit int, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	failures := make([]error, len(files))
	err := eachFile(ctx, files, limit, func(ctx context.Context, i int, path string) error {
		root, err := parseFile(path, log)
		if err != nil {
			failures[i] = err
			return nil
		}
		log.Debug("checked", zap.String("file", path), zap.Int("rows", root.Len()))
		return nil
	})
	if err != nil {
		return err
	}

	failed := 0
	for _, err := range failures {
		if err == nil {
			continue
		}
		failed++
		if _, werr := fmt.Fprintf(w, "%s: %v\n", category(err), err); werr != nil {
			return werr
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func category(err error) string {
	var se *syntax.Error
	switch {
	case errors.Is(err, document.ErrStructural):
		return "structure"
	case errors.As(err, &se):
		return "syntax"
	}
	return "error"
}
