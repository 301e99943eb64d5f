package viz

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/metrics"
)

// emptyValue is shown when a card has nothing to show.
const emptyValue = "—"

const cardWidth = 24

// card is a single aggregated number.
type card struct {
	spec  Spec
	env   Env
	theme func() Theme

	mu       sync.Mutex
	drawn    Theme
	released bool
}

func (c *card) Spec() Spec { return c.spec }
func (c *card) Kind() Kind { return KindCard }

// PostRender redraws the card when the theme changed since it was rendered.
// Colors are baked into the markup, so the slot gets new content.
func (c *card) PostRender(ctx context.Context) error {
	c.mu.Lock()
	stale := !c.released && c.drawn != c.theme()
	c.mu.Unlock()
	if !stale || !c.env.Host.HasSlot(c.spec.Slot) {
		return nil
	}

	markup, err := c.Render(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return nil
	}
	c.env.Host.Provide(c.spec.Slot, providerKey(c.spec.Slot), markup)
	return nil
}

func (c *card) Release() {
	c.mu.Lock()
	c.released = true
	c.mu.Unlock()
}

// Render loads the entries and returns the finished card.
func (c *card) Render(ctx context.Context) (string, error) {
	entries, err := c.env.Source.LoadMetrics(ctx, c.spec.Metric, c.spec.Child)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrVisualization,
			fmt.Sprintf("Couldn't load %s", c.spec.DisplayName()), "")
	}

	theme := c.theme()
	c.mu.Lock()
	c.drawn = theme
	c.mu.Unlock()

	title, value := c.aggregate(entries)
	name := strings.ReplaceAll(c.spec.DisplayName(), "-", " ")
	return renderCard(theme, title+" "+name, value), nil
}

// aggregate returns the card title and formatted value.
func (c *card) aggregate(entries []metrics.Metric) (string, string) {
	switch c.spec.Type {
	case "sum":
		return "Total", formatNumber(metrics.Sum(entries))
	case "average":
		if len(entries) == 0 {
			return "Average", emptyValue
		}
		return "Average", strconv.FormatFloat(metrics.Average(entries), 'f', 2, 64)
	case "latest":
		m, ok := metrics.Latest(entries)
		if !ok {
			return "Latest", emptyValue
		}
		if f, _ := m.Float(); f == 0 {
			return "Latest", emptyValue
		}
		return "Latest", strings.TrimSpace(string(m.Value))
	default:
		return "Count", formatNumber(float64(len(entries)))
	}
}

func formatNumber(v float64) string {
	if v == 0 {
		return emptyValue
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderCard(theme Theme, title, value string) string {
	width := cardWidth
	if w := lipgloss.Width(title) + 2; w > width {
		width = w
	}

	header := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Background(theme.Surface).
		Render(title)

	body := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Text).
		Padding(1, 0).
		Render(value)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(lipgloss.JoinVertical(lipgloss.Center, header, body))
}
