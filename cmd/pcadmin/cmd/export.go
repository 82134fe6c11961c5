package cmd

import (
	"io"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/led-dino/playacamp/pkg/eventday"
	"github.com/led-dino/playacamp/pkg/profile"
	"github.com/led-dino/playacamp/pkg/report"
	"github.com/spf13/cobra"
)

var (
	exportYear int
	exportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write attendance or profile data as CSV",
}

var exportAttendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Export the year's active attendance records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(report.AttendanceExport, (*report.Exporter).ExportAttendance)
	},
}

var exportProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Export every user profile with the year's attendance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(report.ProfileExport, (*report.Exporter).ExportProfiles)
	},
}

// runExport writes to --out, or to a timestamped file in the current
// directory when --out isn't given. "-" writes to stdout.
func runExport(kind string, export func(e *report.Exporter, w io.Writer, year int) error) error {
	now := time.Now().In(pcConfig.GetLocation())
	year := exportYear
	if year == 0 {
		year = eventday.NextEventYear(now, pcConfig.GetLocation())
	}

	stors := mustOpenStors()
	profiles := profile.NewService(stors.ProfileStor, stors.CatalogStor)
	exporter := report.NewExporter(stors.AttendanceStor, stors.ProfileStor, profiles)

	if exportOut == "-" {
		return export(exporter, os.Stdout, year)
	}

	path := exportOut
	if path == "" {
		path = report.ExportFilename(kind, now)
	}

	err := report.WriteFile(path, func(w io.Writer) error {
		return export(exporter, w, year)
	})
	if err != nil {
		return err
	}

	log.Infof("Wrote %s export for %d to %s", kind, year, path)
	return nil
}

func init() {
	exportCmd.PersistentFlags().IntVarP(&exportYear, "year", "y", 0, "Event year (default is the upcoming event)")
	exportCmd.PersistentFlags().StringVarP(&exportOut, "out", "o", "", "Output file, - for stdout")
	exportCmd.AddCommand(exportAttendanceCmd, exportProfilesCmd)
	rootCmd.AddCommand(exportCmd)
}
