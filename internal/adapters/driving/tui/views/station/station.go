// Package station provides the station details and reset view for the TUI.
package station

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

// View shows the station and lets the operator open a fresh cashbox.
type View struct {
	styles   *styles.Styles
	station  driving.StationService
	settings driving.SettingsService

	info       *domain.StationInfo
	pricing    domain.PricingSettings
	configured *domain.StationSettings
	confirming bool
	notice     string
	err        error

	width  int
	height int
	ready  bool
}

// NewView creates a new station view. The settings service may be nil.
func NewView(s *styles.Styles, station driving.StationService, settings driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, station: station, settings: settings}
}

// Init loads the station description.
func (v *View) Init() tea.Cmd {
	return func() tea.Msg {
		if v.station == nil {
			return messages.StationLoaded{Err: errNoStation}
		}
		info, err := v.station.Info(context.Background())
		if err != nil {
			return messages.StationLoaded{Err: err}
		}
		loaded := messages.StationLoaded{Info: info, Pricing: v.station.Cashbox().Pricing()}
		if v.settings != nil {
			// Settings are informational here; a read failure is not fatal.
			if settings, err := v.settings.Get(); err == nil {
				loaded.Settings = settings
			}
		}
		return loaded
	}
}

func (v *View) reset() tea.Cmd {
	return func() tea.Msg {
		if v.station == nil {
			return messages.StationReset{Err: errNoStation}
		}
		return messages.StationReset{Err: v.station.Reset(context.Background())}
	}
}

// Update handles messages for the station view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.StationLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		info := msg.Info
		v.info = &info
		v.pricing = msg.Pricing
		v.configured = msg.Settings
		v.err = nil
		return v, nil

	case messages.StationReset:
		v.confirming = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = "Cashbox reset: passengers, tickets and prices start over"
		return v, v.Init()
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.confirming {
		switch msg.String() {
		case "y", "Y":
			return v, v.reset()
		default:
			v.confirming = false
		}
		return v, nil
	}

	switch msg.String() {
	case "R":
		v.confirming = true
		v.notice = ""
	case "r":
		return v, v.Init()
	}
	return v, nil
}

// View renders the station view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Station"))
	b.WriteString("\n\n")

	if v.info != nil {
		b.WriteString(v.styles.Panel.Render(v.renderInfo()))
		b.WriteString("\n")
	} else if v.err == nil {
		b.WriteString(v.styles.Muted.Render("Loading station..."))
		b.WriteString("\n")
	}

	if v.confirming {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render("Reset the cashbox? All passengers and tickets are discarded. [y/N]"))
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
	b.WriteString(v.styles.Help.Render("[R] reset cashbox  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) renderInfo() string {
	info := v.info
	lines := []string{
		fmt.Sprintf("Name:        %s", info.Name),
		fmt.Sprintf("Address:     %s", info.Address),
		fmt.Sprintf("Cashboxes:   %d", info.CashboxCount),
		fmt.Sprintf("Price range: %s to %s", v.pricing.Format(v.pricing.MinPrice), v.pricing.Format(v.pricing.MaxPrice)),
		fmt.Sprintf("Passengers:  %d", info.Summary.PassengerCount),
		fmt.Sprintf("Tickets:     %d", info.Summary.TicketCount),
		fmt.Sprintf("Revenue:     %s", v.pricing.Format(info.Summary.TotalRevenue)),
	}
	if v.configured != nil {
		seeding := "empty tariff table"
		if v.configured.SeedDefaultTariffs {
			seeding = "default tariffs"
		}
		lines = append(lines, fmt.Sprintf("On reset:    %s", seeding))
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset clears the confirmation prompt and messages.
func (v *View) Reset() {
	v.confirming = false
	v.notice = ""
	v.err = nil
}

// Confirming reports whether the reset confirmation is showing.
func (v *View) Confirming() bool {
	return v.confirming
}

// Info returns the loaded station description, or nil before the first load.
func (v *View) Info() *domain.StationInfo {
	return v.info
}

// Notice returns the last success message.
func (v *View) Notice() string {
	return v.notice
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
