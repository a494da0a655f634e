package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vectorwade/newsgrab/history"
)

var historyCmd = &cobra.Command{
	Use:   "history <database>",
	Short: "List recorded scrape runs",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, err := history.Open(args[0])
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns()
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		fmt.Printf("%-36s  %-20s  %-20s  %s\n", "RUN", "STARTED", "FINISHED", "ROWS")
		for _, run := range runs {
			fmt.Printf("%-36s  %-20s  %-20s  %d\n",
				run.RunID,
				run.StartedAt.Format("2006-01-02 15:04:05"),
				run.FinishedAt.Format("2006-01-02 15:04:05"),
				run.RowCount,
			)
		}
		return nil
	},
}
