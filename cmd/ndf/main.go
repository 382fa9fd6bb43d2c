// Command ndf formats, checks and queries NDF files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sblinch/ndf-go/document"
	"github.com/sblinch/ndf-go/internal/config"
	"github.com/sblinch/ndf-go/internal/parser"
)

var (
	verbose    bool
	configPath string
	workers    int

	cfg    = config.Default()
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ndf",
	Short: "Format, check and query NDF files",
	Long: `ndf works on the NDF data files of Eugen Systems games.

Files are parsed into an editable document model and printed back in a
canonical layout.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("config") {
			if _, err := os.Stat(configPath); err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
		}
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("workers") {
			loaded.Workers = workers
		}
		if err := loaded.Validate(); err != nil {
			return err
		}

		level, _ := loaded.Level()
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if logger, err = zc.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg = loaded

		document.SetParser(parser.NewOptions(parser.Options{Logger: logger}))
		logger.Debug("config loaded", zap.String("path", configPath), zap.Int("workers", cfg.Workers))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Configuration file")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "j", 0, "Files processed at once (default: one per CPU)")

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write the result back to each file instead of printing it")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "Print a diff of the changes instead of the result")
	fmtCmd.Flags().IntVar(&fmtLineWidth, "line-width", 0, "Line width (default: from config)")

	queryCmd.Flags().StringVarP(&queryPattern, "pattern", "p", "", "Row pattern, in NDF (required)")
	_ = queryCmd.MarkFlagRequired("pattern")

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(queryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
