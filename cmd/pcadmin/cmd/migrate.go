package cmd

import (
	"github.com/apex/log"
	"github.com/led-dino/playacamp/pkg/pcdb"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := pcdb.RunMigrations(mustConnect()); err != nil {
			return err
		}

		log.Infof("Migrations complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
