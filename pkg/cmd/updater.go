package cmd

import (
	"github.com/prometheus/common/log"
	"github.com/spf13/cobra"

	"github.com/relayops/mailwatch/pkg/updater"
)

func Updater(logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "updater",
		Short: "Start the client whitelist updater",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := updater.Run(logger)
			if err != nil {
				logger.With("error", err.Error()).Fatal("Failed to start updater")
			}
			return nil
		},
	}
}
