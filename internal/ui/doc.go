// Package ui provides the terminal output helpers shared by tally's commands.
//
// Charts and cards are drawn by viz and termchart; this package covers
// everything around them: status lines, spinners and tables.
//
// # Color Scheme
//
// Colors are ANSI codes so they follow the terminal's own palette:
//
//	ColorSuccess   (green)  - Data point stored, command done
//	ColorError     (red)    - Failures
//	ColorWarning   (yellow) - Recoverable problems
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - In-progress indicators
//
// Use DisableColors() to switch to monochrome output (for --no-color).
//
// # Spinner Usage
//
//	s := ui.NewSpinner("Saving weight")
//	s.Start()
//	// ... write to the graph ...
//	s.Success() // or s.Fail()
//
// SpinnerComponent wraps the Bubble Tea spinner for the dashboard, where
// charts are mounted asynchronously.
//
// # Tables
//
// RenderMetricTable prints the output of `tally list`:
//
//	METRIC     ENTRIES  LATEST  TREND
//	weight     12       180     ▃▄▅▄▃▂▁
package ui
