package cmd

import (
	"github.com/bnema/protocheck/internal/logger"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		logger.Infof("protocheck %s", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
