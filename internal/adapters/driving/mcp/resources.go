package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// URIScheme is the custom URI scheme for cashbox resources.
	uriScheme = "cashbox://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "station",
		Name:        "station",
		Description: "Station name, address and cashbox summary",
		MIMEType:    "application/json",
	}, s.handleStationResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "tariffs",
		Name:        "tariffs",
		Description: "Price of every destination",
		MIMEType:    "application/json",
	}, s.handleTariffsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "passengers",
		Name:        "passengers",
		Description: "Registered passengers in registration order",
		MIMEType:    "application/json",
	}, s.handlePassengersResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "tickets",
		Name:        "tickets",
		Description: "Tickets sold in issuance order",
		MIMEType:    "application/json",
	}, s.handleTicketsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "destinations/{destination}/passengers",
		Name:        "destination-passengers",
		Description: "Passengers holding tickets to a destination",
		MIMEType:    "application/json",
	}, s.handleDestinationResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleStationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	info, err := s.ports.Station.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("describing station: %w", err)
	}
	return jsonResource(req.Params.URI, info)
}

func (s *Server) handleTariffsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	output, err := s.tariffTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tariffs: %w", err)
	}
	return jsonResource(req.Params.URI, output)
}

func (s *Server) handlePassengersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	passengers, err := s.ports.Station.Cashbox().Passengers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing passengers: %w", err)
	}
	return jsonResource(req.Params.URI, passengersOutput(passengers))
}

func (s *Server) handleTicketsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	cashbox := s.ports.Station.Cashbox()
	tickets, err := cashbox.Tickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	passengers, err := cashbox.Passengers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing passengers: %w", err)
	}

	currency := cashbox.Pricing().Currency
	infos := make([]TicketOutput, len(tickets))
	for i, t := range tickets {
		infos[i] = ticketOutput(t, passengers, currency)
	}
	return jsonResource(req.Params.URI, infos)
}

func (s *Server) handleDestinationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractDestination(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	d, err := parseDestination(name)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	passengers, err := s.ports.Station.Cashbox().PassengersByDestination(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("listing passengers: %w", err)
	}
	return jsonResource(req.Params.URI, PassengersOutput{
		Destination: d.Label(),
		Passengers:  passengersOutput(passengers),
		Count:       len(passengers),
	})
}

// extractDestination extracts the destination from a URI like
// cashbox://destinations/{destination}/passengers.
func extractDestination(uri string) string {
	const prefix = uriScheme + "destinations/"
	const suffix = "/passengers"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
