package cmd

import (
	"github.com/bbenesh/Snippets/db/fixtures"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var clearTables bool

var seedCmd = &cobra.Command{
	Use:   "seed FIXTURE",
	Short: "Load users, memberships and roles from a YAML fixture",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {

		commonSetUp()
		defer ogDB.Close()

		f, err := fixtures.LoadFile(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load fixture")
		}

		gormDB := ogDB.Gorm

		if clearTables {
			if err := fixtures.Clear(cmd.Context(), gormDB); err != nil {
				log.Fatal().Err(err).Msg("failed to clear tables")
			}
		}

		if err := f.Apply(cmd.Context(), gormDB); err != nil {
			log.Fatal().Err(err).Msg("failed to apply fixture")
		}

		log.Info().
			Int("users", len(f.Users)).
			Int("roles", len(f.Roles)).
			Int("memberships", len(f.Memberships)).
			Int("user_roles", len(f.UserRoles)).
			Msg("fixture loaded")
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&clearTables, "clear", false, "empty the tables before loading")
}
