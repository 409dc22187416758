package commands

import (
	"context"
	"fmt"
	"os"

	"gradefetch-backend/internal/components/telemetry"
	"gradefetch-backend/internal/portal"
	"gradefetch-backend/lib/configutil"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "gradefetch-cli",
	Short: "gradefetch-cli fetches and inspects TKRCET semester results from the terminal.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)
		return configutil.LoadEnv()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging.")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "Path to the config file, only the \"portal\" key is read.")
}

type Config struct {
	Portal portal.Config `json:"portal"`
}

func readPortalConfig() (portal.Config, error) {
	cfg, err := configutil.ReadConfig[Config](configPath)
	if err != nil && !os.IsNotExist(err) {
		return portal.Config{}, err
	}
	configutil.EnvString(&cfg.Portal.Bin, "BROWSER_BIN")
	configutil.EnvString(&cfg.Portal.LoginURL, "PORTAL_LOGIN_URL")
	return cfg.Portal, nil
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
