// Package dashboard implements the interactive TUI that shows the metric
// visualizations embedded in outline pages.
//
// The dashboard is the UI host of the visualization registry. Every page
// that contains at least one metrics directive is a navigation target.
// Entering a page releases every live visualization, clears the slots and
// mounts each directive again. Slots are named "<node-id>#<n>", n being the
// directive's position in the node's content.
//
// # Architecture
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: pages, current page, viewport, help overlay, mount bookkeeping
//   - Update: key presses, window size, mount results, reload requests
//   - View: header, the slot contents in a scrollable viewport, footer
//
// # Message Flow
//
//  1. Init() discovers the pages (pagesMsg)
//  2. enterPage() opens a slot per directive and returns one mount tea.Cmd each
//  3. mountedMsg arrives as each visualization finishes; the view refreshes
//  4. ReloadMsg (sent by the file watcher or the r key) reloads the store
//     and goes back to step 1, staying on the same page when it still exists
//
// Mount results carry the generation they were started in. Results from a
// page the user already left are ignored; the registry itself drops renders
// whose slot has gone away.
package dashboard
