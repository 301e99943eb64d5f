package metrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/outline"
)

// JournalPageName names the journal page for the entry's day.
func (r *Repository) JournalPageName(entry Metric) (string, int, error) {
	t, err := entry.Time()
	if err != nil {
		return "", 0, errors.WrapWithCode(err, errors.ErrParse,
			fmt.Sprintf("Entry date %q isn't a date", entry.Date), "Use an ISO-8601 date like 2024-01-31T08:00:00Z.")
	}
	t = t.Local()
	return t.Format(r.dateFormat), JournalDay(t), nil
}

// AddToJournal records the entry on its day's journal page as a node
// carrying the metric's journal property.
func (r *Repository) AddToJournal(ctx context.Context, name, child string, entry Metric) (*outline.Node, error) {
	pageName, day, err := r.JournalPageName(entry)
	if err != nil {
		return nil, err
	}

	if _, err := r.store.GetPage(ctx, pageName); err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		r.log.Info("Creating page %s", pageName)
		if _, err := r.store.CreatePage(ctx, pageName, outline.PageOptions{JournalDay: day}); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrCreate,
				fmt.Sprintf("Couldn't create journal page %q", pageName), "")
		}
	}

	text := strings.ReplaceAll(r.journalTitle, "${metric}", FullName(name, child))
	props := map[string]string{JournalProperty(name, child): string(entry.Value)}

	n, err := r.store.AppendToPage(ctx, pageName, text, props)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCreate,
			fmt.Sprintf("Couldn't add %s to journal page %q", FullName(name, child), pageName), "")
	}
	return n, nil
}
