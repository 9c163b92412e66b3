package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asmit/lexiq/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show generation backend statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		stats, err := st.EventRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		if stats.Requests == 0 {
			fmt.Println("No generation calls recorded yet.")
			return nil
		}

		fmt.Printf("Requests:       %d\n", stats.Requests)
		fmt.Printf("Failures:       %d\n", stats.Failures)
		fmt.Printf("Success rate:   %.1f%%\n", stats.SuccessRate()*100)
		fmt.Printf("Input tokens:   %d\n", stats.InputTokens)
		fmt.Printf("Output tokens:  %d\n", stats.OutputTokens)
		fmt.Printf("Avg latency:    %.0f ms\n", stats.AvgLatencyMs)
		return nil
	},
}
