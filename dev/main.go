package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-rod/rod/lib/launcher"
)

const stateDir = "dev/.state"

type devPortalConfig struct {
	Bin      string `json:"bin"`
	Headless bool   `json:"headless"`
}

type devConfig struct {
	Environment string          `json:"environment"`
	Portal      devPortalConfig `json:"portal"`
}

// downloadBrowser fetches a chromium build pinned by rod into the dev state
// directory, it is reused across runs.
func downloadBrowser() (string, error) {
	browser := launcher.NewBrowser()
	browser.RootDir = filepath.Join(stateDir, "browser")
	return browser.Get()
}

func writeLocalConfig(bin string, recreate bool) error {
	path := "config.local.json5"
	_, err := os.Stat(path)
	if err == nil && !recreate {
		slog.Info("keeping existing local config", "path", path)
		return nil
	}

	content, err := json.MarshalIndent(devConfig{
		Environment: "development",
		Portal: devPortalConfig{
			Bin:      bin,
			Headless: true,
		},
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}

func create(recreate bool) error {
	_, err := os.Stat("go.mod")
	if os.IsNotExist(err) {
		return fmt.Errorf("the dev environment must be created in the repository root (the same directory as the 'go.mod' file)")
	}

	if recreate {
		err = os.RemoveAll(stateDir)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	err = os.MkdirAll(stateDir, 0777)
	if err != nil && !os.IsExist(err) {
		return err
	}

	bin, err := downloadBrowser()
	if err != nil {
		return fmt.Errorf("download browser: %w", err)
	}
	slog.Info("browser ready", "bin", bin)

	err = writeLocalConfig(bin, recreate)
	if err != nil {
		return fmt.Errorf("write local config: %w", err)
	}

	slog.Info("config locations", "server", "config.json5", "local overrides", "config.local.json5", "telemetry", "telemetry.json5")
	return nil
}

func main() {
	recreate := flag.Bool("recreate", false, "recreate the dev environment from scratch")
	flag.Parse()

	err := create(*recreate)
	if err != nil {
		slog.Error("failed to create dev environment", "err", err.Error())
		os.Exit(1)
	}

	slog.Info("dev environment created successfully!")
}
