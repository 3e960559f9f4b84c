// Package cli provides the cobra command tree for the cashbox binary.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cashbox-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services used by commands. Set by SetServices before Execute.
var (
	stationService  driving.StationService
	settingsService driving.SettingsService
)

// isTerminal reports whether the bare command should start the TUI.
// Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "cashbox",
	Short: "Railway station ticket cashbox",
	Long: `Cashbox sells railway tickets at a single station.

Register passengers, maintain the tariff table for the six destinations,
sell tickets and review the takings.

Run without a subcommand to open the terminal UI, or the interactive
shell when input is not a terminal.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isTerminal() {
			return runTUI(cmd, args)
		}
		return runShell(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logging")
	// Registered before any initializer main adds, so wiring logs honour -v.
	cobra.OnInitialize(applyVerbose)
}

func applyVerbose() {
	logger.SetVerbose(verbose)
}

// SetServices injects the core services the commands operate on.
func SetServices(station driving.StationService, settings driving.SettingsService) {
	stationService = station
	settingsService = settings
}

// RootCommand exposes the root command so main can register global flags.
func RootCommand() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx available to every subcommand.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
