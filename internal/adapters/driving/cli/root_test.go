package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cashbox-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/services"
	"github.com/custodia-labs/cashbox-cli/internal/logger"
)

// setupTestServices installs a fresh station and in-memory settings for one test.
func setupTestServices(t *testing.T) *services.Station {
	t.Helper()
	return setupStation(t, domain.DefaultStationSettings())
}

func setupStation(t *testing.T, settings domain.StationSettings) *services.Station {
	t.Helper()
	station, err := services.NewStation(context.Background(), settings, memory.NewCashboxStores)
	require.NoError(t, err)

	oldStation, oldSettings := stationService, settingsService
	SetServices(station, services.NewSettingsService(memory.NewConfigStore()))
	t.Cleanup(func() {
		stationService, settingsService = oldStation, oldSettings
	})
	return station
}

// execute runs the root command with args and input, returning everything written.
func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag in the tree, since cobra keeps parsed
// values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "cashbox", rootCmd.Use)
	assert.Same(t, rootCmd, RootCommand())
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"shell", "tariff", "station", "settings", "tui", "mcp", "version"} {
		assert.True(t, names[want], "%s command should be registered", want)
	}
}

func TestRootCmd_WithoutTerminalRunsShell(t *testing.T) {
	setupTestServices(t)
	oldIsTerminal := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = oldIsTerminal }()

	output, err := execute(t, "4\n")

	require.NoError(t, err)
	assert.Contains(t, output, "=== MAIN MENU - STATION SYSTEM ===")
	assert.Contains(t, output, "Goodbye!")
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	defer func() {
		verbose = false
		logger.SetVerbose(false)
	}()

	_, err := execute(t, "", "--verbose", "version")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestSetServices(t *testing.T) {
	station := setupTestServices(t)

	assert.Same(t, station, stationService)
	assert.NotNil(t, settingsService)
}
