// Package tickets provides the ticket ledger view for the TUI.
package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driving"
)

var errNoStation = errors.New("station service not available")

// View lists issued tickets, or the passengers of one destination when filtered.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	station driving.StationService

	tickets    []domain.Ticket
	passengers []domain.Passenger
	pricing    domain.PricingSettings

	// filter is zero when every ticket is shown.
	filter   domain.Destination
	filtered []domain.Passenger

	offset int
	err    error

	width  int
	height int
	ready  bool
}

// NewView creates a new tickets view.
func NewView(s *styles.Styles, station driving.StationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		station: station,
		height:  24,
	}
}

// Init loads the ledger.
func (v *View) Init() tea.Cmd {
	return v.loadTickets()
}

func (v *View) loadTickets() tea.Cmd {
	return func() tea.Msg {
		if v.station == nil {
			return messages.TicketsLoaded{Err: errNoStation}
		}
		ctx := context.Background()
		cashbox := v.station.Cashbox()
		tickets, err := cashbox.Tickets(ctx)
		if err != nil {
			return messages.TicketsLoaded{Err: err}
		}
		passengers, err := cashbox.Passengers(ctx)
		if err != nil {
			return messages.TicketsLoaded{Err: err}
		}
		return messages.TicketsLoaded{Tickets: tickets, Passengers: passengers, Pricing: cashbox.Pricing()}
	}
}

func (v *View) filterBy(d domain.Destination) tea.Cmd {
	return func() tea.Msg {
		if v.station == nil {
			return messages.DestinationFiltered{Destination: d, Err: errNoStation}
		}
		passengers, err := v.station.Cashbox().PassengersByDestination(context.Background(), d)
		return messages.DestinationFiltered{Destination: d, Passengers: passengers, Err: err}
	}
}

// Update handles messages for the tickets view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.TicketsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.tickets = msg.Tickets
		v.passengers = msg.Passengers
		v.pricing = msg.Pricing
		v.offset = 0
		v.err = nil
		return v, nil

	case messages.DestinationFiltered:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.filter = msg.Destination
		v.filtered = msg.Passengers
		v.offset = 0
		v.err = nil
		return v, nil
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.offset > 0 {
			v.offset--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.offset < v.rowCount()-1 {
			v.offset++
		}
	case keymap.Matches(k, v.keymap.Destination):
		if d, ok := keymap.DestinationFor(k); ok {
			return v, v.filterBy(d)
		}
	case keymap.Matches(k, v.keymap.ClearFilter):
		v.filter = 0
		v.filtered = nil
		v.offset = 0
	case keymap.Matches(k, v.keymap.Reload):
		if v.filter.IsValid() {
			return v, tea.Batch(v.loadTickets(), v.filterBy(v.filter))
		}
		return v, v.loadTickets()
	}
	return v, nil
}

func (v *View) rowCount() int {
	if v.filter.IsValid() {
		return len(v.filtered)
	}
	return len(v.tickets)
}

// View renders the ledger or the destination filter.
func (v *View) View() string {
	var b strings.Builder

	if v.filter.IsValid() {
		b.WriteString(v.styles.Title.Render("Passengers to " + v.filter.Label()))
		b.WriteString("\n\n")
		b.WriteString(v.renderFiltered())
	} else {
		b.WriteString(v.styles.Title.Render("Tickets"))
		b.WriteString("\n\n")
		b.WriteString(v.renderTickets())
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[1-6] passengers by destination  [0] all tickets  [j/k] scroll  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) renderTickets() string {
	if len(v.tickets) == 0 {
		return v.styles.Muted.Render("No tickets sold.") + "\n"
	}

	var b strings.Builder
	b.WriteString(v.styles.Header.Render(fmt.Sprintf("%-5s %-24s %-18s %s", "#", "Passenger", "Destination", "Price")))
	b.WriteString("\n")
	for _, t := range v.visible(v.tickets) {
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%-5d %-24s %-18s ", t.Number, v.passengerName(t.PassengerID), t.Destination.Label())))
		b.WriteString(v.styles.Price.Render(v.pricing.Format(t.Price)))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderFiltered() string {
	if len(v.filtered) == 0 {
		return v.styles.Muted.Render("No passengers for this destination.") + "\n"
	}

	var b strings.Builder
	for i, p := range visible(v.filtered, v.offset, v.pageSize()) {
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%d. %s (passport %s)", v.offset+i+1, p.FullName(), p.Passport)))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) visible(tickets []domain.Ticket) []domain.Ticket {
	return visible(tickets, v.offset, v.pageSize())
}

func visible[T any](rows []T, offset, size int) []T {
	if offset >= len(rows) {
		return nil
	}
	end := min(offset+size, len(rows))
	return rows[offset:end]
}

func (v *View) pageSize() int {
	// Title, header, help and spacing take eight lines.
	return max(v.height-8, 1)
}

func (v *View) passengerName(id domain.PassengerID) string {
	i := int(id)
	if i < 0 || i >= len(v.passengers) {
		return fmt.Sprintf("passenger %d", i+1)
	}
	return v.passengers[i].FullName()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset drops the destination filter.
func (v *View) Reset() {
	v.filter = 0
	v.filtered = nil
	v.offset = 0
	v.err = nil
}

// Tickets returns the loaded tickets.
func (v *View) Tickets() []domain.Ticket {
	return v.tickets
}

// Filter returns the active destination filter, or zero.
func (v *View) Filter() domain.Destination {
	return v.filter
}

// Filtered returns the passengers of the active destination filter.
func (v *View) Filtered() []domain.Passenger {
	return v.filtered
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
