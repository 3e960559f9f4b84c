package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/prompt"
	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

// NoInput is the input schema for tools that take no arguments.
type NoInput struct{}

// RegisterPassengerInput is the input schema for the register_passenger tool.
type RegisterPassengerInput struct {
	Passport  string `json:"passport" jsonschema:"passport number, exactly 6 digits"`
	FirstName string `json:"first_name" jsonschema:"first name, letters only"`
	LastName  string `json:"last_name" jsonschema:"last name, letters only"`
}

// SetTariffInput is the input schema for the set_tariff tool.
type SetTariffInput struct {
	Destination string  `json:"destination" jsonschema:"destination key (e.g. sochi), city name or menu number 1-6"`
	Price       float64 `json:"price" jsonschema:"ticket price in the station currency"`
}

// BuyTicketInput is the input schema for the buy_ticket tool.
type BuyTicketInput struct {
	PassengerNumber int    `json:"passenger_number" jsonschema:"1-based passenger number in registration order"`
	Destination     string `json:"destination" jsonschema:"destination key (e.g. sochi), city name or menu number 1-6"`
}

// DestinationInput is the input schema for the passengers_by_destination tool.
type DestinationInput struct {
	Destination string `json:"destination" jsonschema:"destination key (e.g. sochi), city name or menu number 1-6"`
}

// PassengerNumberInput is the input schema for the total_spend tool.
type PassengerNumberInput struct {
	PassengerNumber int `json:"passenger_number" jsonschema:"1-based passenger number in registration order"`
}

// PassengerOutput represents a registered passenger.
type PassengerOutput struct {
	Number    int    `json:"number"`
	Passport  string `json:"passport"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// TicketOutput represents an issued ticket.
type TicketOutput struct {
	ID          string          `json:"id"`
	Number      int             `json:"number"`
	Destination string          `json:"destination"`
	Price       float64         `json:"price"`
	Currency    string          `json:"currency"`
	Passenger   PassengerOutput `json:"passenger"`
}

// TariffOutput represents one row of the tariff table.
type TariffOutput struct {
	Key         string   `json:"key"`
	Destination string   `json:"destination"`
	Price       *float64 `json:"price"`
}

// TariffsOutput is the output schema for the list_tariffs and set_tariff tools.
type TariffsOutput struct {
	Currency string         `json:"currency"`
	Tariffs  []TariffOutput `json:"tariffs"`
}

// PassengersOutput is the output schema for passenger listings.
type PassengersOutput struct {
	Destination string            `json:"destination,omitempty"`
	Passengers  []PassengerOutput `json:"passengers"`
	Count       int               `json:"count"`
}

// SpendOutput is the output schema for the total_spend tool.
type SpendOutput struct {
	Passenger   PassengerOutput `json:"passenger"`
	TicketCount int             `json:"ticket_count"`
	Total       float64         `json:"total"`
	Currency    string          `json:"currency"`
}

// DestinationStatsOutput is one destination's slice of the statistics.
type DestinationStatsOutput struct {
	Destination string  `json:"destination"`
	TicketCount int     `json:"ticket_count"`
	Revenue     float64 `json:"revenue"`
}

// StatisticsOutput is the output schema for the statistics tool.
type StatisticsOutput struct {
	PassengerCount int                      `json:"passenger_count"`
	TicketCount    int                      `json:"ticket_count"`
	TariffCount    int                      `json:"tariff_count"`
	TotalRevenue   float64                  `json:"total_revenue"`
	Currency       string                   `json:"currency"`
	ByDestination  []DestinationStatsOutput `json:"by_destination"`
}

// ResetOutput is the output schema for the reset_station tool.
type ResetOutput struct {
	Reset   bool `json:"reset"`
	Tariffs int  `json:"tariffs"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "register_passenger",
		Description: "Register a passenger at the cashbox. Fails if the passport is already registered.",
	}, s.handleRegisterPassenger)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_tariff",
		Description: "Set or replace the ticket price for a destination",
	}, s.handleSetTariff)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "buy_ticket",
		Description: "Sell a ticket to a registered passenger at the current tariff",
	}, s.handleBuyTicket)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "passengers_by_destination",
		Description: "List the passenger of every ticket sold to a destination, once per ticket",
	}, s.handlePassengersByDestination)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "total_spend",
		Description: "Sum the prices of every ticket bought by a passenger",
	}, s.handleTotalSpend)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "statistics",
		Description: "Passenger, ticket and tariff counts with total revenue",
	}, s.handleStatistics)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_tariffs",
		Description: "List the price of every destination",
	}, s.handleListTariffs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reset_station",
		Description: "Discard every passenger and ticket and open a fresh cashbox",
	}, s.handleResetStation)
}

// parseDestination accepts a destination key, a city name or a menu number.
func parseDestination(s string) (domain.Destination, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	if d, err := domain.ParseDestinationKey(key); err == nil {
		return d, nil
	}
	d, err := prompt.ParseDestination(s)
	if err != nil {
		return 0, fmt.Errorf("%w: unknown destination %q", domain.ErrInvalidInput, s)
	}
	return d, nil
}

func passengerOutput(p domain.Passenger) PassengerOutput {
	return PassengerOutput{
		Number:    int(p.ID) + 1,
		Passport:  p.Passport,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}

func passengersOutput(passengers []domain.Passenger) []PassengerOutput {
	out := make([]PassengerOutput, len(passengers))
	for i, p := range passengers {
		out[i] = passengerOutput(p)
	}
	return out
}

func (s *Server) handleRegisterPassenger(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RegisterPassengerInput,
) (*mcp.CallToolResult, PassengerOutput, error) {
	passport, err := prompt.ParsePassport(input.Passport)
	if err != nil {
		return nil, PassengerOutput{}, err
	}
	first, err := prompt.ParseName(input.FirstName)
	if err != nil {
		return nil, PassengerOutput{}, fmt.Errorf("first name: %w", err)
	}
	last, err := prompt.ParseName(input.LastName)
	if err != nil {
		return nil, PassengerOutput{}, fmt.Errorf("last name: %w", err)
	}

	passenger, err := s.ports.Station.Cashbox().RegisterPassenger(ctx, passport, first, last)
	if err != nil {
		return nil, PassengerOutput{}, err
	}
	return nil, passengerOutput(passenger), nil
}

func (s *Server) handleSetTariff(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetTariffInput,
) (*mcp.CallToolResult, TariffsOutput, error) {
	d, err := parseDestination(input.Destination)
	if err != nil {
		return nil, TariffsOutput{}, err
	}
	cashbox := s.ports.Station.Cashbox()
	if err := cashbox.AddTariff(ctx, d, input.Price); err != nil {
		return nil, TariffsOutput{}, err
	}
	return s.tariffs(ctx)
}

func (s *Server) handleBuyTicket(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BuyTicketInput,
) (*mcp.CallToolResult, TicketOutput, error) {
	idx, err := prompt.PassengerIndex(input.PassengerNumber)
	if err != nil {
		return nil, TicketOutput{}, err
	}
	d, err := parseDestination(input.Destination)
	if err != nil {
		return nil, TicketOutput{}, err
	}

	cashbox := s.ports.Station.Cashbox()
	ticket, err := cashbox.BuyTicket(ctx, idx, d)
	if err != nil {
		return nil, TicketOutput{}, err
	}
	passengers, err := cashbox.Passengers(ctx)
	if err != nil {
		return nil, TicketOutput{}, err
	}

	return nil, ticketOutput(ticket, passengers, cashbox.Pricing().Currency), nil
}

// ticketOutput resolves the ticket's passenger from a registry listing.
func ticketOutput(t domain.Ticket, passengers []domain.Passenger, currency string) TicketOutput {
	out := TicketOutput{
		ID:          t.ID,
		Number:      t.Number,
		Destination: t.Destination.Label(),
		Price:       t.Price,
		Currency:    currency,
	}
	// The registry only grows, so a listing taken after the sale includes the buyer.
	if id := int(t.PassengerID); id >= 0 && id < len(passengers) {
		out.Passenger = passengerOutput(passengers[id])
	}
	return out
}

func (s *Server) handlePassengersByDestination(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DestinationInput,
) (*mcp.CallToolResult, PassengersOutput, error) {
	d, err := parseDestination(input.Destination)
	if err != nil {
		return nil, PassengersOutput{}, err
	}
	passengers, err := s.ports.Station.Cashbox().PassengersByDestination(ctx, d)
	if err != nil {
		return nil, PassengersOutput{}, err
	}
	return nil, PassengersOutput{
		Destination: d.Label(),
		Passengers:  passengersOutput(passengers),
		Count:       len(passengers),
	}, nil
}

func (s *Server) handleTotalSpend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PassengerNumberInput,
) (*mcp.CallToolResult, SpendOutput, error) {
	idx, err := prompt.PassengerIndex(input.PassengerNumber)
	if err != nil {
		return nil, SpendOutput{}, err
	}
	cashbox := s.ports.Station.Cashbox()
	spend, err := cashbox.TotalSpend(ctx, idx)
	if err != nil {
		return nil, SpendOutput{}, err
	}
	return nil, SpendOutput{
		Passenger:   passengerOutput(spend.Passenger),
		TicketCount: spend.TicketCount,
		Total:       spend.Total,
		Currency:    cashbox.Pricing().Currency,
	}, nil
}

func (s *Server) handleStatistics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, StatisticsOutput, error) {
	cashbox := s.ports.Station.Cashbox()
	stats, err := cashbox.Statistics(ctx)
	if err != nil {
		return nil, StatisticsOutput{}, err
	}

	output := StatisticsOutput{
		PassengerCount: stats.PassengerCount,
		TicketCount:    stats.TicketCount,
		TariffCount:    stats.TariffCount,
		TotalRevenue:   stats.TotalRevenue,
		Currency:       cashbox.Pricing().Currency,
		ByDestination:  make([]DestinationStatsOutput, len(stats.ByDestination)),
	}
	for i, d := range stats.ByDestination {
		output.ByDestination[i] = DestinationStatsOutput{
			Destination: d.Destination.Label(),
			TicketCount: d.TicketCount,
			Revenue:     d.Revenue,
		}
	}
	return nil, output, nil
}

func (s *Server) handleListTariffs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, TariffsOutput, error) {
	return s.tariffs(ctx)
}

func (s *Server) tariffs(ctx context.Context) (*mcp.CallToolResult, TariffsOutput, error) {
	output, err := s.tariffTable(ctx)
	if err != nil {
		return nil, TariffsOutput{}, err
	}
	return nil, output, nil
}

// tariffTable lists all destinations; unset prices are null.
func (s *Server) tariffTable(ctx context.Context) (TariffsOutput, error) {
	cashbox := s.ports.Station.Cashbox()
	tariffs, err := cashbox.Tariffs(ctx)
	if err != nil {
		return TariffsOutput{}, err
	}

	prices := make(map[domain.Destination]float64, len(tariffs))
	for _, t := range tariffs {
		prices[t.Destination] = t.Price
	}

	output := TariffsOutput{Currency: cashbox.Pricing().Currency}
	for _, d := range domain.AllDestinations() {
		row := TariffOutput{Key: d.Key(), Destination: d.Label()}
		if price, ok := prices[d]; ok {
			row.Price = &price
		}
		output.Tariffs = append(output.Tariffs, row)
	}
	return output, nil
}

func (s *Server) handleResetStation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NoInput,
) (*mcp.CallToolResult, ResetOutput, error) {
	if err := s.ports.Station.Reset(ctx); err != nil {
		return nil, ResetOutput{}, err
	}
	tariffs, err := s.ports.Station.Cashbox().Tariffs(ctx)
	if err != nil {
		return nil, ResetOutput{}, err
	}
	return nil, ResetOutput{Reset: true, Tariffs: len(tariffs)}, nil
}
