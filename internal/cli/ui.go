package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thruflo/tasklist/internal/config"
	"github.com/thruflo/tasklist/internal/storage"
	"github.com/thruflo/tasklist/internal/tui"
)

var uiWatch bool

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive task list",
	Long: `Opens a full-screen task list in the terminal.

Keys:
  up/down, j/k    move the selection
  space, enter    toggle the selected task
  x, d            delete the selected task
  a, n            add a task (enter to save, esc to cancel)
  1, 2, 3, tab    show all, active or completed tasks
  c               clear completed tasks
  q, esc, ctrl+c  quit

With --watch the list reloads when another tasklist process saves.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	uiCmd.Flags().BoolVarP(&uiWatch, "watch", "w", false, "reload when the store changes on disk")
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	s, err := loadSettings()
	if err != nil {
		return err
	}
	if uiWatch && s.cfg.Storage.Backend == config.BackendMemory {
		return fmt.Errorf("--watch needs the file or sqlite backend")
	}

	ui := tui.NewTUI(cmd.OutOrStdout(), tui.Options{
		Width: s.cfg.UI.Width,
		Color: s.cfg.UI.Color,
	})

	sess, err := openSession(ctx, cmd.ErrOrStderr(), sessionOptions{renderer: ui})
	if err != nil {
		return err
	}
	defer sess.Close()

	var reloads <-chan struct{}
	if uiWatch {
		reloads, err = storage.Watch(ctx, sess.cfg.StorePath(sess.dir))
		if err != nil {
			return err
		}
	}

	err = ui.Run(ctx, sess.app, reloads)
	if err != nil && ctx.Err() == nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), sess.app.Frame().Summary)
	return nil
}
