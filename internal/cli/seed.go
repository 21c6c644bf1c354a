package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	intconfig "hoponhub/internal/config"
	"hoponhub/internal/services"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Wipe the database and load the demo buses and routes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := intconfig.ConnectDB(env.DatabaseDSN)
		if err != nil {
			return err
		}
		defer intconfig.CloseDB()

		res, err := services.SeedService{DB: db, RequestID: "cli"}.Seed(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d buses, %d routes, %d seats\n", res.Buses, res.Routes, res.Seats)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
