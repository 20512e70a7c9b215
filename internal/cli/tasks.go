package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thruflo/tasklist/internal/task"
	"github.com/thruflo/tasklist/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a task",
	Long: `Adds a task with the given text. Arguments are joined with spaces.
Blank text is ignored.

Example:
  tasklist add buy milk`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Mark a task completed, or active again",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Remove a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all completed tasks",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(clearCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx, cmd.ErrOrStderr(), sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	t, ok, err := s.app.Add(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(cmd.OutOrStdout(), formatTask(t))
	}
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	s, err := openSession(ctx, cmd.ErrOrStderr(), sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	found, err := s.app.Toggle(ctx, id)
	if err != nil {
		return err
	}
	if found {
		if t, ok := findTask(s.app.Tasks(), id); ok {
			fmt.Fprintln(cmd.OutOrStdout(), formatTask(t))
		}
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	s, err := openSession(ctx, cmd.ErrOrStderr(), sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	found, err := s.app.Delete(ctx, id)
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d\n", id)
	}
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx, cmd.ErrOrStderr(), sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.app.ClearCompleted(ctx)
	if err != nil {
		return err
	}

	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleared %d completed %s\n", n, noun)
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func findTask(tasks []task.Task, id int64) (task.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// formatTask renders a task the way 'tasklist list' shows it.
func formatTask(t task.Task) string {
	return fmt.Sprintf("%s %d %s", tui.Checkbox(t.Completed), t.ID, t.Text)
}
