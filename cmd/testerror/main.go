package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "testerror",
	Short: "Abbreviate and render test error reports",
	Long: `testerror renders the error reports of failed tests with the frames of
the test harness hidden, so the report points at the code under test.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
