package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// patternsCmd lists the pattern library
var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List available patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.Close()

		keys := sess.patterns.List()
		if len(keys) == 0 {
			fmt.Println("No patterns found.")
			return nil
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return nil
	},
}
