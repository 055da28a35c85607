package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"backforge/internal/synth"
)

var patternMode bool

// generateCmd runs one request through the pipeline
var generateCmd = &cobra.Command{
	Use:   "generate [request]",
	Short: "Generate backend code from a natural-language request",
	Long: `Decomposes the request into resources and concerns, then generates
schema, database setup, seed data, queries, middleware, and routes.

Example:
  backforge generate "CRUD for widgets with categories"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&patternMode, "pattern-mode", false, "Guide fallback generation with AI pattern selection")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	request := strings.Join(args, " ")

	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	logger.Info("generating", zap.String("request", request))
	result := sess.pipeline.Execute(cmd.Context(), request, synth.Options{PatternMode: patternMode})

	if result.FellBack {
		fmt.Println("Request could not be decomposed; generated a single unstructured artifact.")
	}
	if len(result.Artifacts) == 0 {
		fmt.Println("Nothing was generated.")
		return nil
	}

	fmt.Printf("Generated %d artifact(s):\n", len(result.Artifacts))
	for _, path := range result.Artifacts {
		fmt.Printf("  %s\n", path)
	}
	return nil
}
