package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose     bool
	workspace   string
	configPath  string
	provider    string
	model       string
	timeout     time.Duration
	patternsDir string
	outputDir   string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "backforge",
	Short: "backforge - incremental backend code synthesis",
	Long: `backforge turns natural-language API requests into backend code,
one member at a time.

A request is decomposed into resources and concerns, planned into ordered
generation steps, and each step's fragment is merged into its artifact with
the file kept well-formed between steps. A failed step is skipped, never
fatal.

Run without arguments to start the interactive shell.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", ".", "Workspace directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default <workspace>/.backforge/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "Generation provider (ollama, anthropic, gemini)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Model name override")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Generation call timeout override")
	rootCmd.PersistentFlags().StringVar(&patternsDir, "patterns-dir", "", "Pattern library root override")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "Generated output root override")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(shellCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
