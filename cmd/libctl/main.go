package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "libctl",
	Short: "Administrative tooling for the library backend",
	Long: `libctl performs maintenance tasks that do not belong on the HTTP
surface, such as bootstrapping the first admin account.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Same environment resolution as the API server; a missing
		// .env file is fine when variables come from the shell
		_ = godotenv.Load()
	},
}

func main() {
	rootCmd.AddCommand(createAdminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
