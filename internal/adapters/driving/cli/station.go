package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var stationJSON bool

var stationCmd = &cobra.Command{
	Use:   "station",
	Short: "Station information",
}

var stationInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the station and its cashbox",
	Args:  cobra.NoArgs,
	RunE:  runStationInfo,
}

func init() {
	stationInfoCmd.Flags().BoolVar(&stationJSON, "json", false, "output station information as JSON")
	stationCmd.AddCommand(stationInfoCmd)
	rootCmd.AddCommand(stationCmd)
}

func runStationInfo(cmd *cobra.Command, _ []string) error {
	if stationService == nil {
		return errors.New("station service not configured")
	}

	info, err := stationService.Info(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to describe station: %w", err)
	}

	if stationJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal station: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	pricing := stationService.Cashbox().Pricing()
	cmd.Println("Station Information")
	cmd.Println("===================")
	cmd.Println()
	cmd.Printf("  Name: %s\n", info.Name)
	cmd.Printf("  Address: %s\n", info.Address)
	cmd.Printf("  Cashboxes: %d\n", info.CashboxCount)
	cmd.Printf("  Currency: %s\n", info.Currency)
	cmd.Println()
	cmd.Println("[Cashbox]")
	cmd.Printf("  Passengers: %d\n", info.Summary.PassengerCount)
	cmd.Printf("  Tickets sold: %d\n", info.Summary.TicketCount)
	cmd.Printf("  Tariffs set: %d\n", info.Summary.TariffCount)
	cmd.Printf("  Revenue: %s\n", pricing.Format(info.Summary.TotalRevenue))
	return nil
}
