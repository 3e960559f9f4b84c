// Package tariffs provides the tariff table view for the TUI.
package tariffs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/prompt"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cashbox-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driving"
)

var errNoStation = errors.New("station service not available")

// View shows the price of every destination and edits one at a time.
type View struct {
	styles  *styles.Styles
	station driving.StationService

	// prices is indexed by Selector()-1; nil means not set.
	prices   [domain.DestinationCount]*float64
	pricing  domain.PricingSettings
	selected int
	editing  bool
	price    *input.Field

	notice string
	err    error

	width  int
	height int
	ready  bool
}

// NewView creates a new tariffs view.
func NewView(s *styles.Styles, station driving.StationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		station: station,
		price:   input.NewField(s, "Price", "e.g. 1500", 12),
	}
}

// Init loads the tariff table.
func (v *View) Init() tea.Cmd {
	return v.loadTariffs()
}

func (v *View) loadTariffs() tea.Cmd {
	return func() tea.Msg {
		if v.station == nil {
			return messages.TariffsLoaded{Err: errNoStation}
		}
		cashbox := v.station.Cashbox()
		tariffs, err := cashbox.Tariffs(context.Background())
		return messages.TariffsLoaded{Tariffs: tariffs, Pricing: cashbox.Pricing(), Err: err}
	}
}

func (v *View) saveTariff(d domain.Destination, price float64) tea.Cmd {
	return func() tea.Msg {
		if v.station == nil {
			return messages.TariffSaved{Err: errNoStation}
		}
		err := v.station.Cashbox().AddTariff(context.Background(), d, price)
		return messages.TariffSaved{Tariff: domain.Tariff{Destination: d, Price: price}, Err: err}
	}
}

// Update handles messages for the tariffs view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleListKey(msg)

	case messages.TariffsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.prices = [domain.DestinationCount]*float64{}
		for _, t := range msg.Tariffs {
			price := t.Price
			v.prices[t.Destination.Selector()-1] = &price
		}
		v.pricing = msg.Pricing
		v.err = nil
		return v, nil

	case messages.TariffSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.stopEditing()
		v.err = nil
		v.notice = fmt.Sprintf("%s now costs %s", msg.Tariff.Destination.Label(), v.pricing.Format(msg.Tariff.Price))
		return v, v.loadTariffs()
	}

	if v.editing {
		var cmd tea.Cmd
		v.price, cmd = v.price.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < domain.DestinationCount-1 {
			v.selected++
		}
	case "enter", "e":
		v.editing = true
		v.notice = ""
		v.err = nil
		v.price.Reset()
		if p := v.prices[v.selected]; p != nil {
			v.price.SetValue(fmt.Sprintf("%.2f", *p))
		}
		return v, v.price.Focus()
	case "r":
		return v, v.loadTariffs()
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.stopEditing()
		v.err = nil
		return v, nil
	case tea.KeyEnter:
		price, err := prompt.ParsePrice(v.price.Value(), v.pricing)
		if err != nil {
			v.err = err
			return v, nil
		}
		v.err = nil
		return v, v.saveTariff(v.Selected(), price)
	}
	var cmd tea.Cmd
	v.price, cmd = v.price.Update(msg)
	return v, cmd
}

func (v *View) stopEditing() {
	v.editing = false
	v.price.Reset()
}

// View renders the tariff table.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Tariffs"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Header.Render(fmt.Sprintf("  %-3s %-18s %s", "#", "Destination", "Price")))
	b.WriteString("\n")

	for i, d := range domain.AllDestinations() {
		price := v.styles.Muted.Render("not set")
		if p := v.prices[i]; p != nil {
			price = v.styles.Price.Render(v.pricing.Format(*p))
		}
		row := fmt.Sprintf("%-3d %-18s ", d.Selector(), d.Label())
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> "+row) + price)
		} else {
			b.WriteString(v.styles.Normal.Render("  "+row) + price)
		}
		b.WriteString("\n")
	}

	if v.editing {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("New price for " + v.Selected().Label()))
		b.WriteString("\n")
		b.WriteString(v.price.View())
		b.WriteString("\n")
	}
	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error! %s", v.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[enter] edit price  [r] reload  [esc] back"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.price.SetWidth(width / 2)
}

// Reset leaves edit mode and clears messages.
func (v *View) Reset() {
	v.stopEditing()
	v.notice = ""
	v.err = nil
}

// Editing reports whether a price is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Selected returns the highlighted destination.
func (v *View) Selected() domain.Destination {
	return domain.AllDestinations()[v.selected]
}

// Price returns the loaded price for a destination.
func (v *View) Price(d domain.Destination) (float64, bool) {
	if !d.IsValid() {
		return 0, false
	}
	p := v.prices[d.Selector()-1]
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Notice returns the last success message.
func (v *View) Notice() string {
	return v.notice
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
