// Command cashbox runs the railway station ticket cashbox.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cashbox-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cashbox-cli/internal/core/services"
	"github.com/custodia-labs/cashbox-cli/internal/logger"
)

var (
	configDir string
	ephemeral bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setup(ctx)

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// setup registers the global flags and the wiring initializer on the root command.
// Flags are parsed by the time initializers run; the cli package's own
// initializer has already applied --verbose.
func setup(ctx context.Context) *cobra.Command {
	root := cli.RootCommand()
	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.cashbox)")
	root.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "ignore the configuration file and run with defaults")

	cobra.OnInitialize(func() {
		if err := wire(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	})
	return root
}

// wire builds config, settings and station, and hands them to the commands.
func wire(ctx context.Context) error {
	var (
		store     driven.ConfigStore
		fileStore *file.ConfigStore
	)
	if ephemeral {
		store = memory.NewConfigStore()
	} else {
		fs, err := file.NewConfigStore(configDir)
		if err != nil {
			return fmt.Errorf("opening configuration: %w", err)
		}
		store, fileStore = fs, fs
		logger.Debug("Configuration: %s", fs.Path())
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	station, err := services.NewStation(ctx, *settings, memory.NewCashboxStores)
	if err != nil {
		return fmt.Errorf("opening station: %w", err)
	}
	cli.SetServices(station, settingsService)

	if fileStore != nil {
		reloads, err := fileStore.Watch(ctx)
		if err != nil {
			logger.Warn("Configuration changes will not be picked up: %v", err)
			return nil
		}
		go applyReloads(reloads, settingsService, station)
	}
	return nil
}

// applyReloads pushes every reloaded configuration into the running station.
func applyReloads(reloads <-chan struct{}, settingsService *services.SettingsService, station *services.Station) {
	for range reloads {
		settings, err := settingsService.Get()
		if err != nil {
			logger.Warn("Reading reloaded settings: %v", err)
			continue
		}
		if err := station.ApplySettings(*settings); err != nil {
			logger.Warn("Ignoring reloaded settings: %v", err)
			continue
		}
		logger.Info("Settings reloaded")
	}
}
