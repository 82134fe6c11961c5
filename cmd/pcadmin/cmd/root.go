/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/led-dino/playacamp/pkg/clog"
	"github.com/led-dino/playacamp/pkg/config"
	"github.com/led-dino/playacamp/pkg/pcdb"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var pcConfig = config.NewViperConfig()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pcadmin",
	Short: "Administer the playacamp database",
	Long: `pcadmin runs the administrative tasks for playacamp: migrations, the daily
headcount report, CSV exports and team maintenance. Connection settings come
from the environment (and PLAYACAMP_DOTENV_PATH) and can be overridden with
flags.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := pcConfig.Load(); err != nil {
			return err
		}
		config.SetConfig(pcConfig)

		if err := clog.SetDefaultLevelFromString(pcConfig.GetKeyWithDefault(config.LogLevelKey, "info")); err != nil {
			return err
		}
		clog.SetOutput(os.Stderr)
		clog.UseAsDefault()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db-connection", "", "Database driver, mysql or sqlite")
	flags.String("sqlite-path", "", "Path to the sqlite database")
	flags.String("db-host", "", "MySQL host")
	flags.String("db-database", "", "MySQL database name")
	flags.String("timezone", "", "Time zone event years are computed in")
	flags.String("log-level", "", "Log level")

	bindings := map[string]string{
		config.DBConnectionKey: "db-connection",
		config.SqlitePathKey:   "sqlite-path",
		config.DBHostKey:       "db-host",
		config.DBDatabaseKey:   "db-database",
		config.TimezoneKey:     "timezone",
		config.LogLevelKey:     "log-level",
	}

	for key, flag := range bindings {
		if err := pcConfig.BindFlag(key, flags.Lookup(flag)); err != nil {
			log.Fatalf("Unable to bind --%s: %s", flag, err)
		}
	}
}

func mustConnect() *gorm.DB {
	return pcdb.MustConnectToDB(pcConfig)
}

func mustOpenStors() *stor.Stors {
	return stor.NewGormStors(mustConnect())
}
