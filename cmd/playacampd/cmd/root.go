/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/led-dino/playacamp/pkg/clog"
	"github.com/led-dino/playacamp/pkg/config"
	"github.com/led-dino/playacamp/pkg/pcdb"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
	"github.com/led-dino/playacamp/pkg/webapi"
	"github.com/spf13/cobra"
)

var migrate bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "playacampd",
	Short: "Run the playacamp API server",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		c := config.MustLoadFromDotenv()
		config.SetConfig(c)

		if err := clog.SetDefaultLevelFromString(c.GetKeyWithDefault(config.LogLevelKey, "info")); err != nil {
			log.Warnf("Ignoring %s: %s", config.LogLevelKey, err)
		}
		clog.UseAsDefault()

		db := pcdb.MustConnectToDB(c)
		if migrate {
			if err := pcdb.RunMigrations(db); err != nil {
				log.Fatalf("Migrations failed: %s", err)
			}
		}

		location := c.GetLocation()
		log.Infof("Computing event years in %s", location)

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())

		webapi.SetupRoutes(e, webapi.NewRouteOpts(stor.NewGormStors(db), location))

		port := c.GetKeyWithDefault(config.PortKey, config.DefaultPort)
		log.Infof("Listening on port %s", port)
		if err := e.Start(":" + port); err != nil {
			log.Fatalf("Unable to start server: %v", err)
		}
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
	rootCmd.Flags().BoolVarP(&migrate, "migrate", "m", false, "Run database migrations before serving")
}
