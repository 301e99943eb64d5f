package dashboard

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/rileyhilliard/tally/internal/outline"
	"github.com/rileyhilliard/tally/internal/viz"
)

// Page is a navigation target: an outline page with metrics directives.
type Page struct {
	Name   string
	Blocks []Block
}

// Block is a node holding one or more metrics directives.
type Block struct {
	NodeID     string
	Directives [][]string
}

// Slots returns the number of visualizations on the page.
func (p Page) Slots() int {
	n := 0
	for _, b := range p.Blocks {
		n += len(b.Directives)
	}
	return n
}

// SlotID names the slot of the n-th directive in a node.
func SlotID(nodeID string, n int) string {
	return nodeID + "#" + strconv.Itoa(n)
}

// Discover lists the pages that contain metrics directives, sorted by name.
// Directives for other renderers are ignored.
func Discover(ctx context.Context, store outline.Store) ([]Page, error) {
	all, err := store.Pages(ctx)
	if err != nil {
		return nil, err
	}

	var pages []Page
	for _, p := range all {
		tree, err := store.PageTree(ctx, p.Name)
		if err != nil {
			return nil, err
		}

		page := Page{Name: p.Name}
		outline.Walk(tree, func(n *outline.Node) bool {
			var directives [][]string
			for _, args := range viz.FindDirectives(n.Content) {
				if _, ok := viz.ParseArgs(args); ok {
					directives = append(directives, args)
				}
			}
			if len(directives) > 0 {
				page.Blocks = append(page.Blocks, Block{NodeID: n.ID, Directives: directives})
			}
			return true
		})

		if len(page.Blocks) > 0 {
			pages = append(pages, page)
		}
	}

	sort.SliceStable(pages, func(i, j int) bool {
		return strings.ToLower(pages[i].Name) < strings.ToLower(pages[j].Name)
	})
	return pages, nil
}

// indexOf finds a page by name, ignoring case.
func indexOf(pages []Page, name string) int {
	for i, p := range pages {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}
