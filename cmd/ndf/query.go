package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sblinch/ndf-go/document"
)

var queryPattern string

var queryCmd = &cobra.Command{
	Use:   "query --pattern CODE files...",
	Short: "Print the top-level rows that match a pattern",
	Long: `Prints every top-level row of the given files that matches the pattern
row. Fields and members left out of the pattern match anything, and an
object pattern without a type matches objects of every type.

Each match is preceded by a comment naming its file and index, so the
output is itself valid NDF.

Example:
  ndf query -p 'Weapon(Caliber = 5.56)' Weapons.ndf`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd.Context(), cmd.OutOrStdout(), queryPattern, args, cfg.Workers, logger)
	},
}

type queryMatch struct {
	index int
	row   *document.ListRow
}

func runQuery(ctx context.Context, w io.Writer, pattern string, files []string, limit int, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := document.ListRowFromCode(pattern); err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	matches := make([][]queryMatch, len(files))
	err := eachFile(ctx, files, limit, func(ctx context.Context, i int, path string) error {
		root, err := parseFile(path, log)
		if err != nil {
			return err
		}
		m, err := root.MatchPattern(pattern)
		if err != nil {
			return err
		}
		for m.Next() {
			matches[i] = append(matches[i], queryMatch{index: m.Index(), row: m.Row()})
		}
		if err := m.Err(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.Debug("queried", zap.String("file", path), zap.Int("matches", len(matches[i])))
		return nil
	})
	if err != nil {
		return err
	}

	for i, found := range matches {
		for _, match := range found {
			if _, err := fmt.Fprintf(w, "// %s:%d\n%s\n\n", files[i], match.index, match.row); err != nil {
				return err
			}
		}
	}
	return nil
}
