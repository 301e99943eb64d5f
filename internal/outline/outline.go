// Package outline is the hierarchical store tally keeps its data in.
//
// An outline is a list of pages. Each page owns an ordered list of root
// nodes, and each node owns an ordered list of children. Nodes carry a text
// content and, optionally, a set of properties. There is no other schema:
// metrics, group labels and visualization directives are all just nodes.
//
// Store is the contract the rest of tally depends on. MemoryStore is the
// reference implementation and FileStore persists it to a YAML document.
package outline

import "context"

// Node is a single outline entry with ordered children.
type Node struct {
	ID         string            `yaml:"id"`
	Content    string            `yaml:"content"`
	Properties map[string]string `yaml:"properties,omitempty"`
	Children   []*Node           `yaml:"children,omitempty"`
}

// Page is a named container of root nodes. Journal pages carry the day they
// belong to as a yyyymmdd integer.
type Page struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	JournalDay int     `yaml:"journal_day,omitempty"`
	Nodes      []*Node `yaml:"nodes,omitempty"`
}

// IsJournal reports whether the page is a journal page.
func (p *Page) IsJournal() bool {
	return p.JournalDay != 0
}

// PageOptions controls page creation.
type PageOptions struct {
	// JournalDay marks the page as a journal page for that yyyymmdd day.
	JournalDay int
}

// InsertOptions controls where InsertNode places the new node relative to the anchor.
type InsertOptions struct {
	// Sibling inserts next to the anchor instead of under it.
	Sibling bool
	// Before inserts ahead of the anchor (sibling) or as first child.
	Before bool
	// Properties are attached to the new node.
	Properties map[string]string
}

// Store is the outline contract. Every method may fail with a NOT_FOUND
// coded error (see internal/errors) when a page or node is absent; callers
// treat that as recoverable. Returned pages and nodes are snapshots.
type Store interface {
	GetPage(ctx context.Context, name string) (*Page, error)
	GetPageByID(ctx context.Context, id string) (*Page, error)
	CreatePage(ctx context.Context, name string, opts PageOptions) (*Page, error)
	Pages(ctx context.Context) ([]*Page, error)
	PageTree(ctx context.Context, name string) ([]*Node, error)
	GetNode(ctx context.Context, id string, includeChildren bool) (*Node, error)
	Siblings(ctx context.Context, id string) ([]*Node, error)
	InsertNode(ctx context.Context, anchorID, content string, opts InsertOptions) (*Node, error)
	AppendToPage(ctx context.Context, pageName, content string, properties map[string]string) (*Node, error)
}

// PageRef identifies the page a property record was found on.
type PageRef struct {
	ID         string
	JournalDay int
}

// PropertyRecord is one node on a journal page that carries a queried property.
type PropertyRecord struct {
	Properties map[string]string
	Page       PageRef
}

// PropertyIndex answers property queries across journal pages.
type PropertyIndex interface {
	QueryProperty(ctx context.Context, property string) ([]PropertyRecord, error)
}

// Walk visits nodes depth-first in outline order. Returning false from fn
// skips the node's children.
func Walk(nodes []*Node, fn func(n *Node) bool) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if fn(n) {
			Walk(n.Children, fn)
		}
	}
}

// cloneNode deep-copies a node, optionally dropping its subtree.
func cloneNode(n *Node, includeChildren bool) *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		ID:         n.ID,
		Content:    n.Content,
		Properties: cloneProps(n.Properties),
	}
	if includeChildren && len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = cloneNode(c, true)
		}
	}
	return out
}

func cloneNodes(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = cloneNode(n, true)
	}
	return out
}

func clonePage(p *Page, includeNodes bool) *Page {
	out := &Page{ID: p.ID, Name: p.Name, JournalDay: p.JournalDay}
	if includeNodes {
		out.Nodes = cloneNodes(p.Nodes)
	}
	return out
}

func cloneProps(props map[string]string) map[string]string {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]string, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
