package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "init-db-migrate",
	Short: "Create the organic groups tables",
	Long:  `This job runs the goose migrations creating the users, og_membership, og_role and og_users_roles tables for development and test databases.`,
	Run: func(cmd *cobra.Command, args []string) {

		commonSetUp()
		defer ogDB.Close()

		// Run the migrations
		log.Info().Msgf("Running migrations...")
		if err := ogDB.Migrate(cmd.Context()); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		log.Info().Msg("Migrations complete")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
