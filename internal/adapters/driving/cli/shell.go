package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/prompt"
	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cashbox-cli/internal/logger"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the interactive cashbox menu",
	Long: `Run the menu-driven cashbox session.

The shell reads answers line by line from standard input and asks again
whenever an answer does not validate, so it can be driven from a script:

  printf '1\n7\n8\n4\n' | cashbox shell`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	if stationService == nil {
		return errors.New("station service not configured")
	}
	sh := &shell{
		ctx:     cmd.Context(),
		station: stationService,
		in:      prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()),
		out:     cmd.OutOrStdout(),
	}
	err := sh.run()
	if errors.Is(err, io.EOF) {
		logger.Debug("shell: input closed")
		return nil
	}
	return err
}

// shell is one interactive session. The cashbox is looked up on every
// action so a reset from another adapter is picked up.
type shell struct {
	ctx     context.Context
	station driving.StationService
	in      *prompt.Prompter
	out     io.Writer
}

func (s *shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

func choice(lo, hi int) func(string) (int, error) {
	return func(line string) (int, error) {
		return prompt.ParseChoice(line, lo, hi)
	}
}

func (s *shell) run() error {
	for {
		s.println("\n=== MAIN MENU - STATION SYSTEM ===")
		s.println("1. Work with cashbox")
		s.println("2. Station information")
		s.println("3. Reset cashbox")
		s.println("4. Exit")

		n, err := prompt.Ask(s.in, "Select action (1-4): ", choice(1, 4))
		if err != nil {
			return err
		}
		switch n {
		case 1:
			if err := s.cashboxMenu(); err != nil {
				return err
			}
		case 2:
			if err := s.stationInfo(); err != nil {
				return err
			}
		case 3:
			if err := s.resetCashbox(); err != nil {
				return err
			}
		case 4:
			s.println("Goodbye!")
			return nil
		}
	}
}

func (s *shell) cashboxMenu() error {
	actions := []func() error{
		s.addTariff,
		s.registerPassenger,
		s.buyTicket,
		s.passengersByDestination,
		s.passengerCost,
		s.showTariffs,
		s.showStatistics,
	}
	for {
		s.println("\n=== STATION CASHBOX ===")
		s.println("1. Add/update tariff")
		s.println("2. Register passenger")
		s.println("3. Buy ticket")
		s.println("4. Passengers by destination")
		s.println("5. Calculate passenger ticket cost")
		s.println("6. Show all tariffs")
		s.println("7. Cashbox statistics")
		s.println("8. Back to main menu")

		n, err := prompt.Ask(s.in, "Select action (1-8): ", choice(1, len(actions)+1))
		if err != nil {
			return err
		}
		if n == len(actions)+1 {
			return nil
		}
		s.println()
		if err := actions[n-1](); err != nil {
			return err
		}
	}
}

func (s *shell) askDestination() (domain.Destination, error) {
	s.println("Select destination:")
	for _, d := range domain.AllDestinations() {
		s.printf("%d. %s\n", d.Selector(), d.Label())
	}
	return prompt.Ask(s.in, "Your choice: ", prompt.ParseDestination)
}

func (s *shell) addTariff() error {
	cashbox := s.station.Cashbox()
	pricing := cashbox.Pricing()

	s.println("=== ADD TARIFF ===")
	d, err := s.askDestination()
	if err != nil {
		return err
	}
	label := fmt.Sprintf("Enter tariff price (%s): ", pricing.Currency)
	price, err := prompt.Ask(s.in, label, func(line string) (float64, error) {
		return prompt.ParsePrice(line, pricing)
	})
	if err != nil {
		return err
	}

	if err := cashbox.AddTariff(s.ctx, d, price); err != nil {
		s.println(outcomeMessage(err))
		return nil
	}
	s.println("Tariff successfully added/updated!")
	return nil
}

func (s *shell) registerPassenger() error {
	cashbox := s.station.Cashbox()

	s.println("=== REGISTER PASSENGER ===")
	passport, err := prompt.Ask(s.in, "Enter passport number: ", prompt.ParsePassport)
	if err != nil {
		return err
	}
	// Report a taken passport before asking for names.
	passengers, err := cashbox.Passengers(s.ctx)
	if err != nil {
		s.println(outcomeMessage(err))
		return nil
	}
	for _, p := range passengers {
		if p.Passport == passport {
			s.println(outcomeMessage(domain.ErrDuplicatePassport))
			return nil
		}
	}

	first, err := prompt.Ask(s.in, "Enter name: ", prompt.ParseName)
	if err != nil {
		return err
	}
	last, err := prompt.Ask(s.in, "Enter surname: ", prompt.ParseName)
	if err != nil {
		return err
	}

	passenger, err := cashbox.RegisterPassenger(s.ctx, passport, first, last)
	if err != nil {
		s.println(outcomeMessage(err))
		return nil
	}
	s.println("Passenger successfully registered!")
	s.printf("Total passengers in system: %d\n", int(passenger.ID)+1)
	return nil
}

// selectPassenger lists passengers and reads a 1-based choice. It returns
// ok=false when there is nobody to choose from. The upper bound is left to
// the cashbox so an out-of-range number is reported as such.
func (s *shell) selectPassenger(cashbox driving.CashboxService) (int, bool, error) {
	passengers, err := cashbox.Passengers(s.ctx)
	if err != nil {
		s.println(outcomeMessage(err))
		return 0, false, nil
	}
	if len(passengers) == 0 {
		s.println("No registered passengers!")
		return 0, false, nil
	}

	s.println("Passenger list:")
	writePassengerList(s.out, passengers)
	idx, err := prompt.Ask(s.in, "Select passenger: ", prompt.ParsePassengerIndex)
	if err != nil {
		return 0, false, err
	}
	return idx, true, nil
}

func (s *shell) buyTicket() error {
	cashbox := s.station.Cashbox()

	s.println("=== BUY TICKET ===")
	idx, ok, err := s.selectPassenger(cashbox)
	if err != nil || !ok {
		return err
	}
	d, err := s.askDestination()
	if err != nil {
		return err
	}

	ticket, err := cashbox.BuyTicket(s.ctx, idx, d)
	if err != nil {
		s.println(outcomeMessage(err))
		return nil
	}
	s.println("Ticket successfully purchased at station cashbox!")
	writeTicket(s.out, ticket, s.passengerOf(cashbox, ticket), cashbox.Pricing())
	s.printf("Total tickets sold: %d\n", ticket.Number)
	return nil
}

// passengerOf resolves the buyer of a ticket from a fresh listing.
func (s *shell) passengerOf(cashbox driving.CashboxService, t domain.Ticket) domain.Passenger {
	passengers, err := cashbox.Passengers(s.ctx)
	if err != nil || int(t.PassengerID) >= len(passengers) {
		return domain.Passenger{}
	}
	return passengers[t.PassengerID]
}

func (s *shell) passengersByDestination() error {
	cashbox := s.station.Cashbox()

	s.println("=== PASSENGERS BY DESTINATION ===")
	d, err := s.askDestination()
	if err != nil {
		return err
	}
	passengers, err := cashbox.PassengersByDestination(s.ctx, d)
	if err != nil {
		s.println(outcomeMessage(err))
		return nil
	}

	s.printf("Passengers who bought tickets for: %s\n", d.Label())
	if len(passengers) == 0 {
		s.println("No tickets sold for this destination.")
		return nil
	}
	for _, p := range passengers {
		writePassenger(s.out, p)
		s.println("---")
	}
	return nil
}

func (s *shell) passengerCost() error {
	cashbox := s.station.Cashbox()

	s.println("=== CALCULATE TICKET COST ===")
	idx, ok, err := s.selectPassenger(cashbox)
	if err != nil || !ok {
		return err
	}

	spend, err := cashbox.TotalSpend(s.ctx, idx)
	if err != nil {
		s.println(outcomeMessage(err))
		return nil
	}
	s.printf("Passenger: %s\n", spend.Passenger.FullName())
	s.printf("Number of tickets from cashbox: %d\n", spend.TicketCount)
	s.printf("Total cost: %s\n", cashbox.Pricing().Format(spend.Total))
	return nil
}

func (s *shell) showTariffs() error {
	cashbox := s.station.Cashbox()

	s.println("=== CASHBOX TARIFFS ===")
	tariffs, err := cashbox.Tariffs(s.ctx)
	if err != nil {
		s.println(outcomeMessage(err))
		return nil
	}
	if len(tariffs) == 0 {
		s.println("No tariffs set.")
		return nil
	}
	pricing := cashbox.Pricing()
	for _, t := range tariffs {
		s.printf("Destination: %s - %s\n", t.Destination.Label(), pricing.Format(t.Price))
	}
	return nil
}

func (s *shell) showStatistics() error {
	cashbox := s.station.Cashbox()

	s.println("=== CASHBOX STATISTICS ===")
	stats, err := cashbox.Statistics(s.ctx)
	if err != nil {
		s.println(outcomeMessage(err))
		return nil
	}
	s.printf("Number of registered passengers: %d\n", stats.PassengerCount)
	s.printf("Number of tickets sold: %d\n", stats.TicketCount)
	s.printf("Number of tariffs set: %d\n", stats.TariffCount)
	s.printf("Total cashbox revenue: %s\n", cashbox.Pricing().Format(stats.TotalRevenue))
	return nil
}

func (s *shell) stationInfo() error {
	info, err := s.station.Info(s.ctx)
	if err != nil {
		s.println(outcomeMessage(err))
		return nil
	}
	s.println("\n=== STATION INFORMATION ===")
	s.printf("Station: %s\n", info.Name)
	s.printf("Address: %s\n", info.Address)
	if info.CashboxCount == 1 {
		s.println("Station has one main cashbox")
	} else {
		s.println("Cashboxes: " + strconv.Itoa(info.CashboxCount))
	}
	return nil
}

func (s *shell) resetCashbox() error {
	ok, err := prompt.Ask(s.in, "All passengers, tickets and tariff changes will be lost. Continue? (y/n): ", prompt.ParseConfirm)
	if err != nil {
		return err
	}
	if !ok {
		s.println("Reset cancelled.")
		return nil
	}
	if err := s.station.Reset(s.ctx); err != nil {
		s.println(outcomeMessage(err))
		return nil
	}
	s.println("Cashbox reset. Passengers and tickets cleared.")
	return nil
}
