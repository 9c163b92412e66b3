package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asmit/lexiq/internal/llm"
	"github.com/asmit/lexiq/internal/quiz"
	"github.com/asmit/lexiq/internal/quizgen"
	"github.com/asmit/lexiq/internal/store"
	"github.com/asmit/lexiq/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take a quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

var playLength int

func init() {
	playCmd.Flags().IntVar(&playLength, "questions", quiz.DefaultLength, "Number of questions per session")
}

// runPlay opens the store, builds the generation pipeline, and launches
// the TUI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// The TUI owns the terminal, so logging stays quiet; backend calls
	// are still recorded in the event store.
	log := zap.NewNop()

	provider, err := llm.NewProviderFromEnv(ctx, log, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "generation backend not configured:", err)
		fmt.Fprintln(os.Stderr, "every question will be the built-in fallback.")
		provider = llm.NewMockProvider()
	}

	assembler := quizgen.New(provider, quizgen.DefaultConfig(), log)
	engine := quiz.NewEngine(assembler, quiz.Config{Length: playLength})

	return tui.Run(engine)
}
