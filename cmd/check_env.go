/*
Copyright © 2025 mohamadmonzer-a
*/
package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/mohamadmonzer-a/railwayBackend/config"
)

// checkEnvCmd represents the check-env command
var checkEnvCmd = &cobra.Command{
	Use:   "check-env",
	Short: "Report which required secrets are set",
	Long:  `Prints the same JSON as GET /check_env/. Values are never printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(config.CheckEnv(os.Getenv))
	},
}

func init() {
	rootCmd.AddCommand(checkEnvCmd)
}
