package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thruflo/tasklist/internal/task"
	"github.com/thruflo/tasklist/internal/tui"
)

var (
	listFilter string
	listDate   bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show tasks",
	Long: `Shows the task list with its filter tabs and the number of active
items left. Each row starts with the task id used by toggle and rm.

Example:
  tasklist list
  tasklist list --filter active`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "which tasks to show: all, active or completed")
	listCmd.Flags().BoolVar(&listDate, "date", false, "show today's date above the list")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	mode, err := task.ParseFilterMode(listFilter)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	s, err := openSession(ctx, cmd.ErrOrStderr(), sessionOptions{showDate: listDate})
	if err != nil {
		return err
	}
	defer s.Close()

	s.app.SetFilter(mode)

	out := cmd.OutOrStdout()
	lines := (&tui.ListView{}).Render(s.app.Frame(), tui.ListOptions{
		Width:    s.cfg.UI.Width,
		Color:    s.cfg.UI.Color && tui.IsTerminalWriter(out),
		Selected: -1,
		ShowIDs:  true,
	})
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}
