package cmd

import (
	"github.com/prometheus/common/log"
	"github.com/spf13/cobra"

	"github.com/relayops/mailwatch/pkg/version"
)

const quickStart string = `
  # Serve health checks for the local postfix instance
  mailwatch server

  # Keep the client whitelist in sync with the upstream IP range feed
  mailwatch updater
`

func Root() *cobra.Command {
	logger := log.With("app", "mailwatch")

	command := &cobra.Command{
		Use:     "mailwatch",
		Version: version.Version,
		Short:   "Mailwatch monitors a postfix relay and maintains its client whitelist",
		Example: quickStart,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	command.AddCommand(Server(logger))
	command.AddCommand(Updater(logger))

	return command
}
