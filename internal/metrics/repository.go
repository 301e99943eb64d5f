package metrics

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/logger"
	"github.com/rileyhilliard/tally/internal/outline"
)

// Defaults used when no option overrides them.
const (
	DefaultDataPage     = "metrics-data"
	DefaultJournalTitle = "${metric}"
	DefaultDateFormat   = "Jan 2, 2006"
)

// Notifier receives the user-visible outcome of a write.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify calls f(msg).
func (f NotifierFunc) Notify(msg string) { f(msg) }

// Option configures a Repository.
type Option func(*Repository)

// WithDataPage sets the page metrics are stored under.
func WithDataPage(name string) Option {
	return func(r *Repository) {
		if name != "" {
			r.dataPage = name
		}
	}
}

// WithJournalTitle sets the template for journal entries. Every ${metric}
// is replaced with the metric's display name.
func WithJournalTitle(title string) Option {
	return func(r *Repository) {
		if title != "" {
			r.journalTitle = title
		}
	}
}

// WithDateFormat sets the Go time layout used to name journal pages.
func WithDateFormat(layout string) Option {
	return func(r *Repository) {
		if layout != "" {
			r.dateFormat = layout
		}
	}
}

// WithNotifier sets where success messages go.
func WithNotifier(n Notifier) Option {
	return func(r *Repository) {
		r.notifier = n
	}
}

// WithLogger sets the repository logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Repository) {
		r.log = l
	}
}

// Repository maps metric key paths onto outline nodes.
type Repository struct {
	store outline.Store
	index outline.PropertyIndex

	dataPage     string
	journalTitle string
	dateFormat   string
	notifier     Notifier
	log          logger.Logger

	// writeMu serializes multi-step writes within the process.
	writeMu sync.Mutex
}

// NewRepository creates a repository over store. index may be nil, in which
// case property queries return no data.
func NewRepository(store outline.Store, index outline.PropertyIndex, opts ...Option) *Repository {
	r := &Repository{
		store:        store,
		index:        index,
		dataPage:     DefaultDataPage,
		journalTitle: DefaultJournalTitle,
		dateFormat:   DefaultDateFormat,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = logger.OrDefault(r.log)
	return r
}

// DataPage returns the name of the page metrics are stored under.
func (r *Repository) DataPage() string {
	return r.dataPage
}

// DateFormat returns the layout journal pages are named with.
func (r *Repository) DateFormat() string {
	return r.dateFormat
}

// rootTree returns the data page's root nodes, creating the page on first use.
func (r *Repository) rootTree(ctx context.Context) ([]*outline.Node, error) {
	if _, err := r.store.GetPage(ctx, r.dataPage); err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		if _, err := r.store.CreatePage(ctx, r.dataPage, outline.PageOptions{}); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrCreate,
				fmt.Sprintf("Couldn't create page %q", r.dataPage), "")
		}
		r.log.Info("Created page %s", r.dataPage)
	}
	return r.store.PageTree(ctx, r.dataPage)
}

// existingTree is rootTree without the create. A missing page is an empty tree.
func (r *Repository) existingTree(ctx context.Context) ([]*outline.Node, error) {
	nodes, err := r.store.PageTree(ctx, r.dataPage)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	return nodes, err
}

// FindNode returns the first node whose content equals name, or nil.
func FindNode(nodes []*outline.Node, name string) *outline.Node {
	for _, n := range nodes {
		if n != nil && n.Content == name {
			return n
		}
	}
	return nil
}

// FindNode returns the first node in nodes whose content equals name.
func (r *Repository) FindNode(nodes []*outline.Node, name string) *outline.Node {
	return FindNode(nodes, name)
}

// FindOrCreateNode returns the node named name in nodes, inserting it after
// the last element when absent. nodes must not be empty.
func (r *Repository) FindOrCreateNode(ctx context.Context, nodes []*outline.Node, name string) (*outline.Node, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	return r.findOrCreate(ctx, nodes, name)
}

func (r *Repository) findOrCreate(ctx context.Context, nodes []*outline.Node, name string) (*outline.Node, error) {
	if n := FindNode(nodes, name); n != nil {
		return n, nil
	}
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrCreate,
			fmt.Sprintf("Can't place %q: there are no sibling nodes to insert after", name),
			"Append the node to the page instead.")
	}

	// nodes may be a stale snapshot. Re-read the level before creating so a
	// node added since is reused instead of duplicated.
	current, err := r.store.Siblings(ctx, nodes[len(nodes)-1].ID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCreate,
			fmt.Sprintf("Couldn't create node %q", name), "")
	}
	if n := FindNode(current, name); n != nil {
		return n, nil
	}

	anchor := current[len(current)-1]
	r.log.Debug("Node %q not found, inserting after %s", name, anchor.ID)

	n, err := r.store.InsertNode(ctx, anchor.ID, name, outline.InsertOptions{Sibling: true})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCreate,
			fmt.Sprintf("Couldn't create node %q", name), "")
	}
	r.log.Debug("Created node %q with id %s", name, n.ID)
	return n, nil
}

// StoreMetric writes entry under [name] or [name, childName], creating the
// page and path nodes as needed. The write is not transactional: nodes
// created before a failure are left in place.
func (r *Repository) StoreMetric(ctx context.Context, name, childName string, entry Metric) error {
	if name == "" {
		return errors.New(errors.ErrCreate, "Metric name is empty", "Pass the metric name, e.g. tally add Weight --value 80.")
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	content, err := entry.JSON()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrParse, "Couldn't encode the metric entry", "")
	}

	if err := r.storeMetric(ctx, name, childName, content); err != nil {
		r.log.Warn("Failed to insert metric %s: %v", FullName(name, childName), err)
		if errors.IsCode(err, errors.ErrCreate) {
			return err
		}
		return errors.WrapWithCode(err, errors.ErrCreate,
			fmt.Sprintf("Couldn't store a data point for %s", FullName(name, childName)), "")
	}

	r.log.Info("Metric inserted successfully: %s", content)
	if r.notifier != nil {
		r.notifier.Notify(fmt.Sprintf("Inserted data point for metric %s.", FullName(name, childName)))
	}
	return nil
}

func (r *Repository) storeMetric(ctx context.Context, name, childName, content string) error {
	tree, err := r.rootTree(ctx)
	if err != nil {
		return err
	}

	var parent *outline.Node
	if len(tree) == 0 {
		r.log.Debug("Page is empty, appending node %s", name)
		parent, err = r.store.AppendToPage(ctx, r.dataPage, name, nil)
	} else {
		parent, err = r.findOrCreate(ctx, tree, name)
	}
	if err != nil {
		return err
	}

	if childName != "" {
		node, err := r.store.GetNode(ctx, parent.ID, true)
		if err != nil {
			return err
		}
		if len(node.Children) == 0 {
			parent, err = r.store.InsertNode(ctx, node.ID, childName, outline.InsertOptions{})
		} else {
			parent, err = r.findOrCreate(ctx, node.Children, childName)
		}
		if err != nil {
			return err
		}
	}

	_, err = r.store.InsertNode(ctx, parent.ID, content, outline.InsertOptions{})
	return err
}

// resolve walks the key path from the data page. A missing page or node
// yields nil without an error.
func (r *Repository) resolve(ctx context.Context, name, childName string) (*outline.Node, error) {
	tree, err := r.existingTree(ctx)
	if err != nil {
		return nil, err
	}
	node := FindNode(tree, name)
	if node == nil {
		return nil, nil
	}
	if childName != "" {
		node = FindNode(node.Children, childName)
	}
	return node, nil
}

// LoadMetrics returns the entries stored under [name] or [name, childName].
// Without a child, entries of every child group are included too.
func (r *Repository) LoadMetrics(ctx context.Context, name, childName string) ([]Metric, error) {
	node, err := r.resolve(ctx, name, childName)
	if err != nil || node == nil {
		return nil, err
	}

	var metrics []Metric
	for _, child := range node.Children {
		m, res := ParseMetric(child.Content)
		switch {
		case res == Parsed:
			metrics = append(metrics, m)
		case res == NotJSON && childName == "":
			metrics = append(metrics, parseChildren(child)...)
		}
	}

	r.log.Debug("Loaded %d metrics for %s", len(metrics), FullName(name, childName))
	return metrics, nil
}

func parseChildren(n *outline.Node) []Metric {
	var out []Metric
	for _, c := range n.Children {
		if m, res := ParseMetric(c.Content); res == Parsed {
			out = append(out, m)
		}
	}
	return out
}

// MetricName is a metric or child group found in the outline. ID is its
// position in the listing.
type MetricName struct {
	ID    int
	UUID  string
	Label string
}

// LoadMetricNames lists metric names on the data page, or the child group
// labels of parent when it is set.
func (r *Repository) LoadMetricNames(ctx context.Context, parent string) ([]MetricName, error) {
	tree, err := r.existingTree(ctx)
	if err != nil {
		return nil, err
	}

	nodes := tree
	if parent != "" {
		p := FindNode(tree, parent)
		if p == nil {
			return nil, nil
		}
		nodes = p.Children
	}

	var names []MetricName
	for _, n := range nodes {
		if !isLabel(n.Content) {
			continue
		}
		names = append(names, MetricName{ID: len(names), UUID: n.ID, Label: n.Content})
	}
	return names, nil
}

func isLabel(content string) bool {
	return content != "" && !isJSON(content) && !strings.Contains(content, DirectiveMarker)
}

// MetricGroup is the entries under one child label.
type MetricGroup struct {
	Label   string
	Metrics []Metric
}

// LoadChildMetrics groups the entries of name by child label, in outline
// order. A repeated label replaces the earlier group's entries but keeps its
// position.
func (r *Repository) LoadChildMetrics(ctx context.Context, name string) ([]MetricGroup, error) {
	node, err := r.resolve(ctx, name, "")
	if err != nil || node == nil {
		return nil, err
	}

	var groups []MetricGroup
	pos := make(map[string]int)
	for _, child := range node.Children {
		if _, res := ParseMetric(child.Content); res != NotJSON || child.Content == "" {
			continue
		}
		g := MetricGroup{Label: child.Content, Metrics: parseChildren(child)}
		if i, ok := pos[g.Label]; ok {
			groups[i] = g
			continue
		}
		pos[g.Label] = len(groups)
		groups = append(groups, g)
	}
	return groups, nil
}

// LineDatasets returns one dataset per child group of name, or a single
// unlabeled dataset of its direct entries when it has no groups.
func (r *Repository) LineDatasets(ctx context.Context, name string, cumulative bool) ([]Dataset, error) {
	labels, err := r.LoadMetricNames(ctx, name)
	if err != nil {
		return nil, err
	}

	if len(labels) == 0 {
		metrics, err := r.LoadMetrics(ctx, name, "")
		if err != nil {
			return nil, err
		}
		return []Dataset{{Points: PrepareSeries(metrics, cumulative)}}, nil
	}

	datasets := make([]Dataset, 0, len(labels))
	for _, l := range labels {
		metrics, err := r.LoadMetrics(ctx, name, l.Label)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, Dataset{Label: l.Label, Points: PrepareSeries(metrics, cumulative)})
	}
	return datasets, nil
}
