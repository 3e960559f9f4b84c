package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

var tariffJSON bool

var tariffCmd = &cobra.Command{
	Use:   "tariff",
	Short: "Inspect the tariff table",
}

var tariffListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the price of every destination",
	Long: `List the six destinations with their current price.

A fresh cashbox starts from the default tariffs in the configuration
(tariffs.<destination>), unless tariffs.seed_defaults is false.`,
	Args: cobra.NoArgs,
	RunE: runTariffList,
}

func init() {
	tariffListCmd.Flags().BoolVar(&tariffJSON, "json", false, "output tariffs as JSON")
	tariffCmd.AddCommand(tariffListCmd)
	rootCmd.AddCommand(tariffCmd)
}

// tariffRow is the JSON shape of one destination.
type tariffRow struct {
	Selector    int      `json:"selector"`
	Key         string   `json:"key"`
	Destination string   `json:"destination"`
	Price       *float64 `json:"price"`
}

func runTariffList(cmd *cobra.Command, _ []string) error {
	if stationService == nil {
		return errors.New("station service not configured")
	}

	cashbox := stationService.Cashbox()
	tariffs, err := cashbox.Tariffs(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list tariffs: %w", err)
	}

	if tariffJSON {
		rows := make([]tariffRow, 0, domain.DestinationCount)
		for _, d := range domain.AllDestinations() {
			row := tariffRow{Selector: d.Selector(), Key: d.Key(), Destination: d.Label()}
			if t := tariffFor(tariffs, d); t != nil {
				price := t.Price
				row.Price = &price
			}
			rows = append(rows, row)
		}
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tariffs: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	pricing := cashbox.Pricing()
	cmd.Println("Tariffs")
	cmd.Println("=======")
	for _, d := range domain.AllDestinations() {
		cmd.Printf("  %d. %-18s %s\n", d.Selector(), d.Label(), formatPrice(tariffFor(tariffs, d), pricing))
	}
	return nil
}
