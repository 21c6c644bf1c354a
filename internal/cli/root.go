// Package cli provides the hoponhub command line.
package cli

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	intconfig "hoponhub/internal/config"
	"hoponhub/internal/utils"
)

var (
	env     intconfig.Env
	rootCmd = &cobra.Command{
		Use:   "hoponhub",
		Short: "Bus ticket booking website",
		Long: `HopOnHub - search buses, pick seats, book and pay.

Run 'hoponhub api' for the JSON booking backend and 'hoponhub web' for the
booking pages that talk to it. Settings come from HOPONHUB_* environment
variables.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			env = intconfig.LoadEnv()
			utils.InitLogger(env.LogLevel, env.LogFormat)
			if env.GinMode != "" {
				gin.SetMode(env.GinMode)
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
