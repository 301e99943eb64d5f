package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/rileyhilliard/tally/internal/errors"
)

// PropertiesQuery builds one dataset per journal property. Each record's
// journal day becomes a local-midnight date; records whose value is not a
// number are skipped.
func (r *Repository) PropertiesQuery(ctx context.Context, props []string, cumulative bool) ([]Dataset, error) {
	datasets := make([]Dataset, 0, len(props))
	for _, prop := range props {
		metrics, err := r.propertyMetrics(ctx, prop)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, Dataset{Label: prop, Points: PrepareSeries(metrics, cumulative)})
	}
	return datasets, nil
}

func (r *Repository) propertyMetrics(ctx context.Context, prop string) ([]Metric, error) {
	if r.index == nil {
		return nil, nil
	}

	records, err := r.index.QueryProperty(ctx, prop)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			fmt.Sprintf("Couldn't query property %q", prop), "")
	}

	var metrics []Metric
	for _, rec := range records {
		value := Value(rec.Properties[prop])
		if _, ok := value.Float(); !ok {
			r.log.Debug("Skipping %s=%q: not a number", prop, rec.Properties[prop])
			continue
		}
		day, ok := JournalDate(rec.Page.JournalDay)
		if !ok {
			r.log.Debug("Skipping %s on page %s: bad journal day %d", prop, rec.Page.ID, rec.Page.JournalDay)
			continue
		}
		metrics = append(metrics, Metric{Date: day.Format(time.RFC3339), Value: value})
	}
	return metrics, nil
}
