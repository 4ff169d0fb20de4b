// Package cli implements the todo command line client.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/biosecret/voice-todo/client"
	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:3000"

type options struct {
	server string
	token  string
}

func (o *options) client() *client.Client {
	c := client.New(o.server)
	c.SetToken(o.token)
	return c
}

func (o *options) authed() (*client.Client, error) {
	if o.token == "" {
		return nil, errors.New("no token: run `todo login` and pass --token or set TODO_TOKEN")
	}
	return o.client(), nil
}

// NewRootCmd builds the todo command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Voice to-do list client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.server, "server", envOr("TODO_SERVER", defaultServer), "API base URL")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("TODO_TOKEN"), "bearer token from `todo login`")

	root.AddCommand(
		newRegisterCmd(opts),
		newLoginCmd(opts),
		newListCmd(opts),
		newAddCmd(opts),
		newDoneCmd(opts, true),
		newDoneCmd(opts, false),
		newEditCmd(opts),
		newRemoveCmd(opts),
	)
	return root
}

// Execute runs the command tree with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
