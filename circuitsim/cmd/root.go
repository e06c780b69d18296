// Package cmd provides the command-line interface for the circuit simulator.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "circuitsim",
	Short: "Circuitsim simulates a DC circuit with time-varying resistors.",
	Long: `Circuitsim simulates a DC circuit where two resistors ramp ` +
		`linearly over time. A voltmeter and an ammeter sample the load ` +
		`periodically, and two ohmmeters estimate the load resistance from ` +
		`the readings.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// Optional; the environment only overrides defaults.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
