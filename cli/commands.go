package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/biosecret/voice-todo/models"
	"github.com/spf13/cobra"
)

func newRegisterCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "register <email> <password>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().Register(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "registered", args[0])
			return nil
		},
	}
}

func newLoginCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in and print a token valid for one hour",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := opts.client().Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.authed()
			if err != nil {
				return err
			}
			tasks, err := c.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tasks {
				printTask(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add [text...]",
		Short: "Add a task from the arguments, or one task per line read from stdin",
		Long: "Add a task. Without arguments every non-blank stdin line becomes a task,\n" +
			"so a speech-to-text tool can be piped straight in.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.authed()
			if err != nil {
				return err
			}

			var src TextSource
			if len(args) > 0 {
				src = NewArgsSource(args)
			} else {
				src = NewLineSource(cmd.InOrStdin())
			}

			for {
				text, err := src.Next(cmd.Context())
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}
				task, err := c.AddTask(cmd.Context(), text)
				if err != nil {
					return err
				}
				printTask(cmd.OutOrStdout(), *task)
			}
		},
	}
}

func newDoneCmd(opts *options, completed bool) *cobra.Command {
	use, short := "done <id>", "Mark a task completed"
	if !completed {
		use, short = "undone <id>", "Mark a task not completed"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateTask(cmd, opts, args[0], models.TaskPatch{Completed: &completed})
		},
	}
}

func newEditCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Replace a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			return updateTask(cmd, opts, args[0], models.TaskPatch{Text: &text})
		},
	}
}

func newRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.authed()
			if err != nil {
				return err
			}
			if err := c.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
			return nil
		},
	}
}

func updateTask(cmd *cobra.Command, opts *options, id string, patch models.TaskPatch) error {
	c, err := opts.authed()
	if err != nil {
		return err
	}
	task, err := c.UpdateTask(cmd.Context(), id, patch)
	if err != nil {
		return err
	}
	printTask(cmd.OutOrStdout(), *task)
	return nil
}

func printTask(w io.Writer, t models.Task) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "[%s] %s  %s\n", mark, t.ID, t.Text)
}
