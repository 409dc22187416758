package commands

import (
	"fmt"
	"os"

	"gradefetch-backend/internal/components/telemetry"
	"gradefetch-backend/internal/portal"
	"gradefetch-backend/internal/service"

	"github.com/spf13/cobra"
)

var (
	fetchRoll       string
	fetchSemester   string
	fetchScreenshot string
	fetchHeadful    bool
)

func init() {
	fetchCmd.Flags().StringVar(&fetchRoll, "roll", "", "Roll number, used as both user id and password.")
	fetchCmd.Flags().StringVar(&fetchSemester, "semester", "", "Semester code, see the semesters command.")
	fetchCmd.Flags().StringVar(&fetchScreenshot, "screenshot", "", "Write the full page screenshot to this png file.")
	fetchCmd.Flags().BoolVar(&fetchHeadful, "headful", false, "Show the browser window.")
	fetchCmd.MarkFlagRequired("roll")
	fetchCmd.MarkFlagRequired("semester")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch --roll <roll> --semester <code> [--screenshot out.png]",
	Short: "Logs into the portal and prints a semester's grades, SGPA and CGPA.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		roll, code, err := service.Validate(service.FetchGradeRequest{
			Roll:     fetchRoll,
			Semester: fetchSemester,
		})
		if err != nil {
			return err
		}

		cfg, err := readPortalConfig()
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if fetchHeadful {
			headless := false
			cfg.Headless = &headless
		}

		tel := telemetry.SlogAPI{}
		navigator := portal.NewNavigator(
			portal.NewRodBrowser(cfg, tel),
			cfg,
			portal.WithCustomTelemetryAPI(tel),
		)
		capture, err := navigator.Fetch(cmd.Context(), roll, code)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s), %s\n", capture.StudentName, roll, code.Label())
		renderGrades(out, capture.Grades)
		fmt.Fprintf(out, "CGPA: %s\n", capture.CGPA)

		if fetchScreenshot != "" {
			err = os.WriteFile(fetchScreenshot, capture.Screenshot, 0644)
			if err != nil {
				return fmt.Errorf("write screenshot: %w", err)
			}
		}
		return nil
	},
}
