package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/views/passengers"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/views/station"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/views/stats"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/views/tariffs"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/views/tickets"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView       *menu.View
	passengersView *passengers.View
	tariffsView    *tariffs.View
	ticketsView    *tickets.View
	statsView      *stats.View
	stationView    *station.View
	statusBar      *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		menuView:       menu.NewView(s),
		passengersView: passengers.NewView(s, ports.Station),
		tariffsView:    tariffs.NewView(s, ports.Station),
		ticketsView:    tickets.NewView(s, ports.Station),
		statsView:      stats.NewView(s, ports.Station),
		stationView:    station.NewView(s, ports.Station, ports.Settings),
		statusBar:      status.NewBar(s, km),
		currentView:    messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It loads the station so the menu and status
// bar can show its name.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("cashbox"),
		a.stationView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.PassengersLoaded, messages.SpendLoaded:
		a.passengersView, cmd = a.passengersView.Update(msg)
		return a, cmd

	case messages.PassengerRegistered:
		if msg.Err == nil {
			a.statusBar.Notify("Registered " + msg.Passenger.FullName())
		}
		a.passengersView, cmd = a.passengersView.Update(msg)
		return a, cmd

	case messages.TicketSold:
		if msg.Err != nil {
			a.statusBar.Fail(msg.Err)
		} else {
			a.statusBar.Notify(fmt.Sprintf("Ticket #%d sold", msg.Ticket.Number))
		}
		a.passengersView, cmd = a.passengersView.Update(msg)
		return a, cmd

	case messages.TariffsLoaded:
		a.tariffsView, cmd = a.tariffsView.Update(msg)
		return a, cmd

	case messages.TariffSaved:
		if msg.Err == nil {
			a.statusBar.Notify(msg.Tariff.Destination.Label() + " tariff updated")
		}
		a.tariffsView, cmd = a.tariffsView.Update(msg)
		return a, cmd

	case messages.TicketsLoaded, messages.DestinationFiltered:
		a.ticketsView, cmd = a.ticketsView.Update(msg)
		return a, cmd

	case messages.StatsLoaded:
		a.statsView, cmd = a.statsView.Update(msg)
		return a, cmd

	case messages.StationLoaded:
		if msg.Err == nil {
			a.menuView.SetStation(msg.Info.Name)
			a.statusBar.SetStation(msg.Info.Name)
		}
		a.stationView, cmd = a.stationView.Update(msg)
		return a, cmd

	case messages.StationReset:
		if msg.Err != nil {
			a.statusBar.Fail(msg.Err)
		} else {
			a.statusBar.Notify("New cashbox opened")
		}
		a.stationView, cmd = a.stationView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.Fail(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Cursor blinks and other internal messages go to the active view.
	return a, a.forward(msg)
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		var cmd tea.Cmd
		a.menuView, cmd = a.menuView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		if keymap.Matches(msg.String(), a.keymap.Back) {
			a.currentView = messages.ViewMenu
		}
		return a, nil
	}

	// Esc leaves the view unless the view is mid-edit and wants it.
	if keymap.Matches(msg.String(), a.keymap.Back) && !a.editing() {
		a.currentView = messages.ViewMenu
		return a, nil
	}
	if keymap.Matches(msg.String(), a.keymap.Help) && !a.editing() {
		a.currentView = messages.ViewHelp
		return a, nil
	}
	return a, a.forward(msg)
}

// editing reports whether the active view is collecting input.
func (a *App) editing() bool {
	switch a.currentView {
	case messages.ViewPassengers:
		return a.passengersView.Editing()
	case messages.ViewTariffs:
		return a.tariffsView.Editing()
	case messages.ViewStation:
		return a.stationView.Confirming()
	default:
		return false
	}
}

func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.statusBar.Clear()

	switch view {
	case messages.ViewPassengers:
		a.passengersView.Reset()
		return a.passengersView.Init()
	case messages.ViewTariffs:
		a.tariffsView.Reset()
		return a.tariffsView.Init()
	case messages.ViewTickets:
		a.ticketsView.Reset()
		return a.ticketsView.Init()
	case messages.ViewStats:
		return a.statsView.Init()
	case messages.ViewStation:
		a.stationView.Reset()
		return a.stationView.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewPassengers:
		a.passengersView, cmd = a.passengersView.Update(msg)
	case messages.ViewTariffs:
		a.tariffsView, cmd = a.tariffsView.Update(msg)
	case messages.ViewTickets:
		a.ticketsView, cmd = a.ticketsView.Update(msg)
	case messages.ViewStats:
		a.statsView, cmd = a.statsView.Update(msg)
	case messages.ViewStation:
		a.stationView, cmd = a.stationView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewPassengers:
		body = a.passengersView.View()
	case messages.ViewTariffs:
		body = a.tariffsView.View()
	case messages.ViewTickets:
		body = a.ticketsView.View()
	case messages.ViewStats:
		body = a.statsView.View()
	case messages.ViewStation:
		body = a.stationView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}
	return body + "\n\n" + a.statusBar.View()
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ?           This help
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  1-7         Jump to option
  enter       Select option

Passengers:
  a           Register a passenger
  1-6         Sell a ticket to the selected passenger
  s           Total spend of the selected passenger

Tariffs:
  enter       Edit the selected price

Tickets:
  1-6         Passengers travelling to a destination
  0           All tickets

Station:
  R           Reset the cashbox (asks first)

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.passengersView.SetDimensions(width, height)
	a.tariffsView.SetDimensions(width, height)
	a.ticketsView.SetDimensions(width, height)
	a.statsView.SetDimensions(width, height)
	a.stationView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
