package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ndf "github.com/sblinch/ndf-go"
)

var (
	fmtWrite     bool
	fmtDiff      bool
	fmtLineWidth int
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Reformat NDF files",
	Long: `Parses each file and prints it back in canonical layout.

With no files, standard input is formatted to standard output.

Examples:
  ndf fmt Units.ndf          # print the formatted file
  ndf fmt -w GameData/*.ndf  # rewrite files in place
  ndf fmt -d Units.ndf       # show what would change`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := fmtOptions{
			Write:   fmtWrite,
			Diff:    fmtDiff,
			Workers: cfg.Workers,
			Generate: ndf.GenerateOptions{
				Indent:    cfg.Format.Indent,
				LineWidth: cfg.Format.LineWidth,
			},
			Logger: logger,
		}
		if fmtLineWidth > 0 {
			opts.Generate.LineWidth = fmtLineWidth
		}
		if len(args) == 0 {
			return runFmtStream(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		}
		return runFmt(cmd.Context(), cmd.OutOrStdout(), args, opts)
	},
}

type fmtOptions struct {
	// Write rewrites changed files in place
	Write bool
	// Diff prints a diff per changed file instead of the formatted text
	Diff bool
	// Workers bounds how many files are formatted at once
	Workers  int
	Generate ndf.GenerateOptions
	Logger   *zap.Logger
}

type fmtResult struct {
	original  string
	formatted string
}

func (r fmtResult) changed() bool {
	return r.original != r.formatted
}

func format(src []byte, opts fmtOptions) (string, error) {
	root, err := ndf.ParseWithOptions(bytes.NewReader(src), ndf.ParseOptions{Logger: opts.Logger})
	if err != nil {
		return "", err
	}
	b := strings.Builder{}
	if err := ndf.GenerateWithOptions(root, &b, opts.Generate); err != nil {
		return "", err
	}
	return b.String(), nil
}

func runFmtStream(r io.Reader, w io.Writer, opts fmtOptions) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	out, err := format(src, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func runFmt(ctx context.Context, w io.Writer, files []string, opts fmtOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]fmtResult, len(files))
	err := eachFile(ctx, files, opts.Workers, func(ctx context.Context, i int, path string) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out, err := format(src, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		results[i] = fmtResult{original: string(src), formatted: out}

		if opts.Write && results[i].changed() {
			if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
				return err
			}
			opts.Logger.Info("formatted", zap.String("file", path))
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i, r := range results {
		var err error
		switch {
		case opts.Diff:
			if r.changed() {
				_, err = fmt.Fprintf(w, "%s (-old +new):\n%s", files[i], cmp.Diff(lines(r.original), lines(r.formatted)))
			}
		case opts.Write:
			if r.changed() {
				_, err = fmt.Fprintln(w, files[i])
			}
		default:
			_, err = io.WriteString(w, r.formatted)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
