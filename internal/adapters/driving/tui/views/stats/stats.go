// Package stats provides the cashbox statistics view for the TUI.
package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driving"
)

var errNoStation = errors.New("station service not available")

// View shows counts and revenue for the current cashbox.
type View struct {
	styles  *styles.Styles
	station driving.StationService

	stats   *domain.Statistics
	pricing domain.PricingSettings
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new statistics view.
func NewView(s *styles.Styles, station driving.StationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, station: station}
}

// Init loads the statistics.
func (v *View) Init() tea.Cmd {
	return func() tea.Msg {
		if v.station == nil {
			return messages.StatsLoaded{Err: errNoStation}
		}
		cashbox := v.station.Cashbox()
		stats, err := cashbox.Statistics(context.Background())
		return messages.StatsLoaded{Stats: stats, Pricing: cashbox.Pricing(), Err: err}
	}
}

// Update handles messages for the statistics view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.String() == "r" {
			return v, v.Init()
		}
	case messages.StatsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		stats := msg.Stats
		v.stats = &stats
		v.pricing = msg.Pricing
		v.err = nil
	}
	return v, nil
}

// View renders the statistics.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Statistics"))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	case v.stats == nil:
		b.WriteString(v.styles.Muted.Render("Loading statistics..."))
		b.WriteString("\n")
	default:
		b.WriteString(v.renderSummary())
		b.WriteString("\n")
		b.WriteString(v.renderDestinations())
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[r] reload  [esc] back"))
	return b.String()
}

func (v *View) renderSummary() string {
	s := v.stats
	lines := []string{
		fmt.Sprintf("Passengers registered: %d", s.PassengerCount),
		fmt.Sprintf("Tickets sold:          %d", s.TicketCount),
		fmt.Sprintf("Tariffs set:           %d of %d", s.TariffCount, domain.DestinationCount),
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(v.styles.Normal.Render(l))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Normal.Render("Total revenue:         "))
	b.WriteString(v.styles.Price.Render(v.pricing.Format(s.TotalRevenue)))
	b.WriteString("\n")
	return b.String()
}

func (v *View) renderDestinations() string {
	var b strings.Builder
	b.WriteString(v.styles.Header.Render(fmt.Sprintf("%-18s %-8s %s", "Destination", "Tickets", "Revenue")))
	b.WriteString("\n")
	for _, d := range v.stats.ByDestination {
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%-18s %-8d ", d.Destination.Label(), d.TicketCount)))
		b.WriteString(v.styles.Price.Render(v.pricing.Format(d.Revenue)))
		b.WriteString("\n")
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Stats returns the loaded statistics, or nil before the first load.
func (v *View) Stats() *domain.Statistics {
	return v.stats
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
