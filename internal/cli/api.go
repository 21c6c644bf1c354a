package cli

import (
	"github.com/spf13/cobra"

	intconfig "hoponhub/internal/config"
	router "hoponhub/internal/http"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the JSON booking backend",
	Long: `Run the booking backend on HOPONHUB_API_ADDR.

It serves /api/init-db, /api/buses/search, /api/seats/:routeId,
/api/bookings, /api/payment and /api/booking/:id backed by MySQL
(HOPONHUB_DATABASE_DSN).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := intconfig.ConnectDB(env.DatabaseDSN); err != nil {
			return err
		}
		defer intconfig.CloseDB()
		return serve(cmd.Context(), "api", env.APIAddr, router.NewAPIRouter(env))
	},
}

func init() {
	rootCmd.AddCommand(apiCmd)
}
