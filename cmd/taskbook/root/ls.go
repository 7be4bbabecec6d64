package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eugenecsa/taskbook/internal/task"
)

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List tasks in priority order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repo, cleanup, err := openRepo(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := repo.List(ctx)
			if err != nil {
				return err
			}

			now := time.Now()
			days := task.ReminderDaysFromEnv()
			for _, t := range tasks {
				t.RecomputeDueState(now, days)
			}
			task.SortTasks(tasks)

			for _, t := range tasks {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", statusMarker(t), t)
			}
			return nil
		},
	}
}

func statusMarker(t *task.Task) string {
	switch {
	case t.Done:
		return "x"
	case t.Overdue:
		return "!"
	case t.DueSoon:
		return "~"
	default:
		return " "
	}
}
