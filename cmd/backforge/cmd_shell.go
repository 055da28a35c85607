package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"backforge/internal/synth"
)

// shellCmd starts the interactive shell
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive request shell",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd.Context())
	},
}

// shellState is the per-session shell state; pattern mode is a session
// toggle passed to every request.
type shellState struct {
	patternMode bool
}

func runShell(ctx context.Context) error {
	sess, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	fmt.Println("backforge shell. Type a request, or /help for commands.")
	state := &shellState{}
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := handleShellCommand(line, state, sess); quit {
				return nil
			}
			continue
		}

		result := sess.pipeline.Execute(ctx, line, synth.Options{PatternMode: state.patternMode})
		if result.FellBack {
			fmt.Println("(fell back to unstructured generation)")
		}
		for _, path := range result.Artifacts {
			fmt.Printf("  %s\n", path)
		}
	}
}

// handleShellCommand executes one slash command; returns true on quit.
func handleShellCommand(line string, state *shellState, sess *session) bool {
	switch cmd, _, _ := strings.Cut(line, " "); cmd {
	case "/quit", "/exit":
		return true
	case "/pattern":
		state.patternMode = !state.patternMode
		fmt.Printf("pattern mode: %v\n", state.patternMode)
	case "/list":
		for _, key := range sess.patterns.List() {
			fmt.Println(key)
		}
	case "/status":
		fmt.Printf("provider: %s\npattern mode: %v\noutput: %s\n",
			sess.cfg.LLM.Provider, state.patternMode, sess.cfg.Output.Root)
	case "/help":
		fmt.Println("/pattern  toggle pattern mode")
		fmt.Println("/list     list available patterns")
		fmt.Println("/status   show session state")
		fmt.Println("/quit     exit")
	default:
		fmt.Printf("unknown command: %s\n", cmd)
	}
	return false
}
