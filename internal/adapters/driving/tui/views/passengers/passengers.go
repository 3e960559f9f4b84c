// Package passengers provides the passenger list, registration form and
// ticket sale view for the TUI.
package passengers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/prompt"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driving"
)

// Mode is what the view is currently doing.
type Mode int

const (
	// ModeList browses passengers and sells tickets.
	ModeList Mode = iota
	// ModeRegister fills in the registration form.
	ModeRegister
)

// Form field positions.
const (
	fieldPassport = iota
	fieldFirstName
	fieldLastName
	fieldCount
)

var errNoStation = errors.New("station service not available")

// View lists passengers, registers new ones and sells tickets.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	station driving.StationService

	passengers []domain.Passenger
	selected   int
	mode       Mode

	fields  [fieldCount]*input.Field
	focused int

	notice  string
	spend   *domain.Spend
	pricing domain.PricingSettings
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new passengers view.
func NewView(s *styles.Styles, station driving.StationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		station: station,
	}
	v.fields[fieldPassport] = input.NewField(s, "Passport", "6 digits", prompt.PassportLength)
	v.fields[fieldFirstName] = input.NewField(s, "First name", "Ivan", prompt.NameMaxLength)
	v.fields[fieldLastName] = input.NewField(s, "Last name", "Petrov", prompt.NameMaxLength)
	return v
}

// Init loads the passenger list.
func (v *View) Init() tea.Cmd {
	return v.loadPassengers()
}

func (v *View) loadPassengers() tea.Cmd {
	return func() tea.Msg {
		if v.station == nil {
			return messages.PassengersLoaded{Err: errNoStation}
		}
		passengers, err := v.station.Cashbox().Passengers(context.Background())
		return messages.PassengersLoaded{Passengers: passengers, Err: err}
	}
}

func (v *View) register(passport, firstName, lastName string) tea.Cmd {
	return func() tea.Msg {
		if v.station == nil {
			return messages.PassengerRegistered{Err: errNoStation}
		}
		p, err := v.station.Cashbox().RegisterPassenger(context.Background(), passport, firstName, lastName)
		return messages.PassengerRegistered{Passenger: p, Err: err}
	}
}

func (v *View) buy(index int, passenger domain.Passenger, d domain.Destination) tea.Cmd {
	return func() tea.Msg {
		if v.station == nil {
			return messages.TicketSold{Err: errNoStation}
		}
		cashbox := v.station.Cashbox()
		ticket, err := cashbox.BuyTicket(context.Background(), index, d)
		return messages.TicketSold{Ticket: ticket, Passenger: passenger, Pricing: cashbox.Pricing(), Err: err}
	}
}

func (v *View) totalSpend(index int) tea.Cmd {
	return func() tea.Msg {
		if v.station == nil {
			return messages.SpendLoaded{Err: errNoStation}
		}
		cashbox := v.station.Cashbox()
		spend, err := cashbox.TotalSpend(context.Background(), index)
		return messages.SpendLoaded{Spend: spend, Pricing: cashbox.Pricing(), Err: err}
	}
}

// Update handles messages for the passengers view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.mode == ModeRegister {
			return v.handleFormKey(msg)
		}
		return v.handleListKey(msg)

	case messages.PassengersLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.passengers = msg.Passengers
		v.err = nil
		if v.selected >= len(v.passengers) {
			v.selected = max(len(v.passengers)-1, 0)
		}
		return v, nil

	case messages.PassengerRegistered:
		if msg.Err != nil {
			// Keep the form open so the entry can be corrected.
			v.err = msg.Err
			return v, nil
		}
		v.closeForm()
		v.err = nil
		v.notice = fmt.Sprintf("Registered %s (passport %s)", msg.Passenger.FullName(), msg.Passenger.Passport)
		v.selected = int(msg.Passenger.ID)
		return v, v.loadPassengers()

	case messages.TicketSold:
		if msg.Err != nil {
			v.err = msg.Err
			v.notice = ""
			return v, nil
		}
		v.err = nil
		v.spend = nil
		v.notice = fmt.Sprintf("Ticket #%d sold to %s: %s, %s",
			msg.Ticket.Number, msg.Passenger.FullName(), msg.Ticket.Destination.Label(),
			msg.Pricing.Format(msg.Ticket.Price))
		return v, nil

	case messages.SpendLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = ""
		spend := msg.Spend
		v.spend = &spend
		v.pricing = msg.Pricing
		return v, nil
	}

	if v.mode == ModeRegister {
		return v, v.updateFocusedField(msg)
	}
	return v, nil
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.spend = nil
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.passengers)-1 {
			v.selected++
			v.spend = nil
		}
	case keymap.Matches(k, v.keymap.Add):
		return v, v.openForm()
	case keymap.Matches(k, v.keymap.Reload):
		return v, v.loadPassengers()
	case keymap.Matches(k, v.keymap.Spend):
		if len(v.passengers) > 0 {
			return v, v.totalSpend(v.selected)
		}
	case keymap.Matches(k, v.keymap.Destination):
		d, ok := keymap.DestinationFor(k)
		if ok && len(v.passengers) > 0 {
			return v, v.buy(v.selected, v.passengers[v.selected], d)
		}
	}
	return v, nil
}

func (v *View) handleFormKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.closeForm()
		v.err = nil
		return v, nil
	case tea.KeyTab, tea.KeyDown:
		return v, v.focus((v.focused + 1) % fieldCount)
	case tea.KeyShiftTab, tea.KeyUp:
		return v, v.focus((v.focused + fieldCount - 1) % fieldCount)
	case tea.KeyEnter:
		if v.focused < fieldCount-1 {
			return v, v.focus(v.focused + 1)
		}
		return v, v.submit()
	}
	return v, v.updateFocusedField(msg)
}

func (v *View) updateFocusedField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	return cmd
}

// submit validates the form the same way the interactive shell does and
// registers the passenger when every field is acceptable.
func (v *View) submit() tea.Cmd {
	passport, err := prompt.ParsePassport(v.fields[fieldPassport].Value())
	if err != nil {
		v.err = err
		return v.focus(fieldPassport)
	}
	first, err := prompt.ParseName(v.fields[fieldFirstName].Value())
	if err != nil {
		v.err = err
		return v.focus(fieldFirstName)
	}
	last, err := prompt.ParseName(v.fields[fieldLastName].Value())
	if err != nil {
		v.err = err
		return v.focus(fieldLastName)
	}
	v.err = nil
	return v.register(passport, first, last)
}

func (v *View) openForm() tea.Cmd {
	v.mode = ModeRegister
	v.notice = ""
	v.spend = nil
	v.err = nil
	for _, f := range v.fields {
		f.Reset()
	}
	return v.focus(fieldPassport)
}

func (v *View) closeForm() {
	v.mode = ModeList
	for _, f := range v.fields {
		f.Reset()
	}
	v.focused = fieldPassport
}

func (v *View) focus(i int) tea.Cmd {
	v.fields[v.focused].Blur()
	v.focused = i
	return v.fields[i].Focus()
}

// View renders the passengers view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Passengers"))
	b.WriteString("\n\n")

	if v.mode == ModeRegister {
		b.WriteString(v.renderForm())
		return b.String()
	}

	if len(v.passengers) == 0 {
		b.WriteString(v.styles.Muted.Render("No passengers registered."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.styles.Header.Render(fmt.Sprintf("  %-4s %-8s %s", "#", "Passport", "Name")))
		b.WriteString("\n")
		for i := range v.passengers {
			b.WriteString(v.renderPassenger(i))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.renderDestinations())

	if v.spend != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%s: %d ticket(s), total ", v.spend.Passenger.FullName(), v.spend.TicketCount)))
		b.WriteString(v.styles.Price.Render(v.pricing.Format(v.spend.Total)))
		b.WriteString("\n")
	}
	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[a] register  [1-6] sell ticket  [s] total spend  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) renderPassenger(i int) string {
	p := v.passengers[i]
	line := fmt.Sprintf("%-4d %-8s %s", i+1, p.Passport, p.FullName())
	if i == v.selected {
		return v.styles.Selected.Render("> " + line)
	}
	return v.styles.Normal.Render("  " + line)
}

func (v *View) renderDestinations() string {
	parts := make([]string, 0, domain.DestinationCount)
	for _, d := range domain.AllDestinations() {
		parts = append(parts, fmt.Sprintf("%d %s", d.Selector(), d.Label()))
	}
	return v.styles.Muted.Render("Destinations: " + strings.Join(parts, "  "))
}

func (v *View) renderForm() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Register passenger"))
	b.WriteString("\n\n")
	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error! %s", v.err.Error())))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[tab] next field  [enter] next/submit  [esc] cancel"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, f := range v.fields {
		f.SetWidth(width / 2)
	}
}

// Reset returns the view to the list and clears transient state.
func (v *View) Reset() {
	v.closeForm()
	v.notice = ""
	v.spend = nil
	v.err = nil
}

// Editing reports whether the registration form is open.
func (v *View) Editing() bool {
	return v.mode == ModeRegister
}

// Mode returns the current mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Passengers returns the loaded passengers.
func (v *View) Passengers() []domain.Passenger {
	return v.passengers
}

// SelectedIndex returns the 0-based index of the highlighted passenger.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Notice returns the last success message.
func (v *View) Notice() string {
	return v.notice
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
