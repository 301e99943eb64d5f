package outline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rileyhilliard/tally/internal/errors"
)

// location records where a node lives so inserts can find its sibling list.
type location struct {
	page   *Page
	parent *Node // nil for root nodes
	node   *Node
}

// siblings returns a pointer to the slice that holds the node.
func (l *location) siblings() *[]*Node {
	if l.parent != nil {
		return &l.parent.Children
	}
	return &l.page.Nodes
}

// MemoryStore is an in-process Store and PropertyIndex.
// It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	pages   []*Page
	byName  map[string]*Page
	byID    map[string]*Page
	nodes   map[string]*location
	newID   func() string
	persist func(pages []*Page) error
}

// NewMemoryStore creates an empty outline.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{newID: uuid.NewString}
	s.reset(nil)
	return s
}

// pageKey normalizes page names: lookups are case-insensitive.
func pageKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// reset replaces all content and rebuilds the indexes.
// Must be called with s.mu held (or before the store is shared).
// reset replaces the outline. Null entries from a hand-edited file are
// dropped.
func (s *MemoryStore) reset(pages []*Page) {
	s.pages = pages[:0]
	s.byName = make(map[string]*Page, len(pages))
	s.byID = make(map[string]*Page, len(pages))
	s.nodes = make(map[string]*location)
	for _, p := range pages {
		if p == nil {
			continue
		}
		if p.ID == "" {
			p.ID = s.newID()
		}
		s.pages = append(s.pages, p)
		s.byName[pageKey(p.Name)] = p
		s.byID[p.ID] = p
		p.Nodes = s.indexNodes(p, nil, p.Nodes)
	}
}

// indexNodes indexes a node list and returns it without nil entries.
func (s *MemoryStore) indexNodes(page *Page, parent *Node, nodes []*Node) []*Node {
	kept := nodes[:0]
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.ID == "" {
			n.ID = s.newID()
		}
		kept = append(kept, n)
		s.nodes[n.ID] = &location{page: page, parent: parent, node: n}
		n.Children = s.indexNodes(page, n, n.Children)
	}
	return kept
}

// commit runs the persistence hook after a mutation.
// Must be called with s.mu held.
func (s *MemoryStore) commit() error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist(s.pages); err != nil {
		return errors.Wrap(err, "Failed to save the outline")
	}
	return nil
}

// GetPage returns the named page with its full tree.
func (s *MemoryStore) GetPage(ctx context.Context, name string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byName[pageKey(name)]
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("Page %q", name))
	}
	return clonePage(p, true), nil
}

// GetPageByID returns the page with the given ID.
func (s *MemoryStore) GetPageByID(ctx context.Context, id string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("Page %s", id))
	}
	return clonePage(p, true), nil
}

// CreatePage creates a page. Creating a page that already exists returns the
// existing page unchanged.
func (s *MemoryStore) CreatePage(ctx context.Context, name string, opts PageOptions) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New(errors.ErrCreate, "Page name is empty", "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.byName[pageKey(name)]; ok {
		return clonePage(p, true), nil
	}

	p := &Page{ID: s.newID(), Name: name, JournalDay: opts.JournalDay}
	s.pages = append(s.pages, p)
	s.byName[pageKey(name)] = p
	s.byID[p.ID] = p

	if err := s.commit(); err != nil {
		return nil, err
	}
	return clonePage(p, true), nil
}

// Pages lists every page in creation order.
func (s *MemoryStore) Pages(ctx context.Context) ([]*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Page, len(s.pages))
	for i, p := range s.pages {
		out[i] = clonePage(p, true)
	}
	return out, nil
}

// PageTree returns the root nodes of a page, each with its full subtree.
func (s *MemoryStore) PageTree(ctx context.Context, name string) ([]*Node, error) {
	p, err := s.GetPage(ctx, name)
	if err != nil {
		return nil, err
	}
	return p.Nodes, nil
}

// GetNode returns a node, with or without its subtree.
func (s *MemoryStore) GetNode(ctx context.Context, id string, includeChildren bool) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.nodes[id]
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("Node %s", id))
	}
	return cloneNode(loc.node, includeChildren), nil
}

// Siblings returns the current sibling list that contains the node, the node
// itself included, each with its full subtree.
func (s *MemoryStore) Siblings(ctx context.Context, id string) ([]*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.nodes[id]
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("Node %s", id))
	}
	return cloneNodes(*loc.siblings()), nil
}

// InsertNode creates a node next to or under the anchor node.
// As a child, the node is appended last unless opts.Before is set.
func (s *MemoryStore) InsertNode(ctx context.Context, anchorID, content string, opts InsertOptions) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	anchor, ok := s.nodes[anchorID]
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("Anchor node %s", anchorID))
	}

	n := &Node{ID: s.newID(), Content: content, Properties: cloneProps(opts.Properties)}

	if opts.Sibling {
		list := anchor.siblings()
		idx := indexOf(*list, anchor.node)
		if !opts.Before {
			idx++
		}
		*list = insertAt(*list, idx, n)
		s.nodes[n.ID] = &location{page: anchor.page, parent: anchor.parent, node: n}
	} else {
		if opts.Before {
			anchor.node.Children = insertAt(anchor.node.Children, 0, n)
		} else {
			anchor.node.Children = append(anchor.node.Children, n)
		}
		s.nodes[n.ID] = &location{page: anchor.page, parent: anchor.node, node: n}
	}

	if err := s.commit(); err != nil {
		return nil, err
	}
	return cloneNode(n, false), nil
}

// AppendToPage adds a root node at the end of a page. The page must exist.
func (s *MemoryStore) AppendToPage(ctx context.Context, pageName, content string, properties map[string]string) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byName[pageKey(pageName)]
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("Page %q", pageName))
	}

	n := &Node{ID: s.newID(), Content: content, Properties: cloneProps(properties)}
	p.Nodes = append(p.Nodes, n)
	s.nodes[n.ID] = &location{page: p, node: n}

	if err := s.commit(); err != nil {
		return nil, err
	}
	return cloneNode(n, false), nil
}

// QueryProperty returns every node on a journal page that carries property.
func (s *MemoryStore) QueryProperty(ctx context.Context, property string) ([]PropertyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []PropertyRecord
	for _, p := range s.pages {
		if !p.IsJournal() {
			continue
		}
		Walk(p.Nodes, func(n *Node) bool {
			if _, ok := n.Properties[property]; ok {
				records = append(records, PropertyRecord{
					Properties: cloneProps(n.Properties),
					Page:       PageRef{ID: p.ID, JournalDay: p.JournalDay},
				})
			}
			return true
		})
	}
	return records, nil
}

func indexOf(list []*Node, n *Node) int {
	for i, c := range list {
		if c == n {
			return i
		}
	}
	return len(list) - 1
}

func insertAt(list []*Node, idx int, n *Node) []*Node {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(list) {
		return append(list, n)
	}
	list = append(list, nil)
	copy(list[idx+1:], list[idx:])
	list[idx] = n
	return list
}

var (
	_ Store         = (*MemoryStore)(nil)
	_ PropertyIndex = (*MemoryStore)(nil)
)
