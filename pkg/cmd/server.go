package cmd

import (
	"github.com/prometheus/common/log"
	"github.com/spf13/cobra"

	"github.com/relayops/mailwatch/pkg/server"
)

func Server(logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the postfix health check server",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := server.Run(logger)
			if err != nil {
				logger.With("error", err.Error()).Fatal("Failed to start server")
			}
			return nil
		},
	}
}
